// Package ws receives camera frames over a rosbridge-style websocket.
//
// Each text or binary message carries one sensor_msgs/Image in JSON, either
// bare or wrapped in a rosbridge "publish" envelope. Pixel data is base64,
// as produced by encoding/json for byte slices.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bft-labs/ballchaser/internal/domain"
	"github.com/bft-labs/ballchaser/internal/mailbox"
	"github.com/bft-labs/ballchaser/internal/ports"
)

// Defaults match the camera topic of the simulated robot.
const (
	DefaultURL   = "ws://localhost:9090"
	DefaultTopic = "/camera/rgb/image_raw"
)

// ErrNotOpen is returned by Next before Open or after Close.
var ErrNotOpen = errors.New("ws: source not open")

// Image mirrors the fields of sensor_msgs/Image that the pipeline needs.
type Image struct {
	Height   int    `json:"height"`
	Width    int    `json:"width"`
	Encoding string `json:"encoding"`
	Step     int    `json:"step"`
	Data     []byte `json:"data"`
}

type envelope struct {
	Op    string          `json:"op"`
	Topic string          `json:"topic"`
	Msg   json.RawMessage `json:"msg"`
}

type subscribe struct {
	Op    string `json:"op"`
	Topic string `json:"topic"`
	Type  string `json:"type"`
}

// Source implements ports.FrameSource over a websocket connection.
// A reader goroutine keeps only the newest frame; older unprocessed frames
// are dropped.
type Source struct {
	url    string
	topic  string
	dialer *websocket.Dialer
	logger ports.Logger
	seq    atomic.Uint64

	mu      sync.Mutex
	conn    *websocket.Conn
	box     *mailbox.Mailbox
	done    chan struct{}
	readErr error
}

// NewSource creates a websocket frame source. If topic is non-empty a
// rosbridge subscribe request is sent after connecting.
func NewSource(url, topic string, logger ports.Logger) *Source {
	return &Source{
		url:   url,
		topic: topic,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Open dials the websocket and starts receiving frames.
func (s *Source) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return nil
	}

	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", s.url, err)
	}

	if s.topic != "" {
		req := subscribe{Op: "subscribe", Topic: s.topic, Type: "sensor_msgs/Image"}
		if err := conn.WriteJSON(req); err != nil {
			conn.Close()
			return fmt.Errorf("subscribe %s: %w", s.topic, err)
		}
	}

	s.conn = conn
	s.box = mailbox.New()
	s.done = make(chan struct{})
	s.readErr = nil

	go s.readLoop(conn, s.box, s.done)

	s.logger.Info("websocket connected", ports.String("url", s.url), ports.String("topic", s.topic))
	return nil
}

func (s *Source) readLoop(conn *websocket.Conn, box *mailbox.Mailbox, done chan struct{}) {
	defer close(done)
	defer box.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.mu.Lock()
			s.readErr = err
			s.mu.Unlock()
			return
		}

		frame, err := DecodeFrame(data)
		if err != nil {
			s.logger.Warn("skipping undecodable message", ports.Err(err), ports.Int("bytes", len(data)))
			continue
		}
		frame.Seq = s.seq.Add(1)
		frame.ReceivedAt = time.Now()
		box.Put(frame)
	}
}

// Next returns the newest received frame, blocking until one arrives.
// When the connection fails it returns the read error; the caller should
// Close and Open again.
func (s *Source) Next(ctx context.Context) (domain.Frame, error) {
	s.mu.Lock()
	box := s.box
	s.mu.Unlock()

	if box == nil {
		return domain.Frame{}, ErrNotOpen
	}

	frame, err := box.Take(ctx)
	if errors.Is(err, mailbox.ErrClosed) {
		s.mu.Lock()
		readErr := s.readErr
		s.mu.Unlock()
		if readErr == nil {
			return domain.Frame{}, ErrNotOpen
		}
		return domain.Frame{}, fmt.Errorf("websocket read: %w", readErr)
	}
	return frame, err
}

// Close drops the connection and waits for the reader to exit.
func (s *Source) Close() error {
	s.mu.Lock()
	conn, done := s.conn, s.done
	s.conn, s.box, s.done = nil, nil, nil
	s.mu.Unlock()

	if conn == nil {
		return nil
	}

	// Best effort close handshake; the read loop exits once the socket is closed.
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	err := conn.Close()
	<-done
	return err
}

// Dropped returns how many frames were replaced before being processed on
// the current connection.
func (s *Source) Dropped() uint64 {
	s.mu.Lock()
	box := s.box
	s.mu.Unlock()
	if box == nil {
		return 0
	}
	return box.Stats().Drops
}

// DecodeFrame parses a sensor_msgs/Image message, bare or inside a
// rosbridge publish envelope. Geometry is not validated here; that is the
// scanner's job.
func DecodeFrame(data []byte) (domain.Frame, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return domain.Frame{}, fmt.Errorf("decode message: %w", err)
	}

	payload := data
	if env.Op != "" {
		if env.Op != "publish" || len(env.Msg) == 0 {
			return domain.Frame{}, fmt.Errorf("unexpected op %q", env.Op)
		}
		payload = env.Msg
	}

	var img Image
	if err := json.Unmarshal(payload, &img); err != nil {
		return domain.Frame{}, fmt.Errorf("decode image: %w", err)
	}

	return domain.Frame{
		Height:   img.Height,
		Step:     img.Step,
		Pixels:   img.Data,
		Encoding: img.Encoding,
	}, nil
}

var _ ports.FrameSource = (*Source)(nil)
