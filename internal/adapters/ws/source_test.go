package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	logAdapter "github.com/bft-labs/ballchaser/internal/adapters/log"
)

// newServer starts a websocket server that runs handle for each connection.
func newServer(t *testing.T, handle func(conn *websocket.Conn)) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		handle(conn)
	}))
	t.Cleanup(ts.Close)
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func imageMessage(t *testing.T, img Image, wrapped bool) []byte {
	t.Helper()
	var v interface{} = img
	if wrapped {
		v = map[string]interface{}{"op": "publish", "topic": DefaultTopic, "msg": img}
	}
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestDecodeFrame(t *testing.T) {
	img := Image{Height: 1, Width: 3, Encoding: "rgb8", Step: 9, Data: []byte{0, 0, 0, 255, 255, 255, 0, 0, 0}}

	for _, wrapped := range []bool{false, true} {
		f, err := DecodeFrame(imageMessage(t, img, wrapped))
		if err != nil {
			t.Fatalf("DecodeFrame(wrapped=%v) error = %v", wrapped, err)
		}
		if f.Height != 1 || f.Step != 9 || f.Encoding != "rgb8" || len(f.Pixels) != 9 || f.Pixels[3] != 255 {
			t.Errorf("DecodeFrame(wrapped=%v) = %+v", wrapped, f)
		}
	}

	bad := [][]byte{
		[]byte("not json"),
		[]byte(`{"op":"status","msg":{}}`),
		[]byte(`{"height":"tall"}`),
	}
	for _, b := range bad {
		if _, err := DecodeFrame(b); err == nil {
			t.Errorf("DecodeFrame(%s) error = nil, want error", b)
		}
	}
}

func TestSource_SubscribesAndReceives(t *testing.T) {
	subscribed := make(chan subscribe, 1)
	img := Image{Height: 1, Width: 3, Encoding: "rgb8", Step: 9, Data: make([]byte, 9)}

	url := newServer(t, func(conn *websocket.Conn) {
		var req subscribe
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		subscribed <- req
		_ = conn.WriteMessage(websocket.TextMessage, []byte("garbage"))
		_ = conn.WriteMessage(websocket.TextMessage, imageMessage(t, img, true))
		// Hold the connection open until the client leaves.
		_, _, _ = conn.ReadMessage()
	})

	src := NewSource(url, DefaultTopic, logAdapter.NewNoopLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := src.Open(ctx); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	select {
	case req := <-subscribed:
		if req.Op != "subscribe" || req.Topic != DefaultTopic || req.Type != "sensor_msgs/Image" {
			t.Errorf("subscribe request = %+v", req)
		}
	case <-ctx.Done():
		t.Fatal("no subscribe request received")
	}

	f, err := src.Next(ctx)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if f.Seq != 1 || f.Step != 9 || f.ReceivedAt.IsZero() {
		t.Errorf("Next() = %+v, want first decoded frame", f)
	}
}

func TestSource_ConnectionLoss(t *testing.T) {
	url := newServer(t, func(conn *websocket.Conn) {
		// Close immediately.
	})

	src := NewSource(url, "", logAdapter.NewNoopLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := src.Open(ctx); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	_, err := src.Next(ctx)
	if err == nil || errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Next() error = %v, want read error", err)
	}
	if err := src.Close(); err != nil {
		t.Logf("Close() error = %v", err)
	}

	if _, err := src.Next(ctx); !errors.Is(err, ErrNotOpen) {
		t.Errorf("Next() after Close error = %v, want ErrNotOpen", err)
	}
}

func TestSource_DialFailure(t *testing.T) {
	src := NewSource("ws://127.0.0.1:1", "", logAdapter.NewNoopLogger())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := src.Open(ctx); err == nil {
		src.Close()
		t.Fatal("Open() error = nil, want dial error")
	}
}

func TestDecodeFrame_ValidGeometry(t *testing.T) {
	data := make([]byte, 27)
	data[0], data[1], data[2] = 255, 255, 255
	f, err := DecodeFrame(imageMessage(t, Image{Height: 3, Width: 3, Encoding: "bgr8", Step: 9, Data: data}, false))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
