// Package fs provides file-system adapters: a directory frame source and an
// atomic status file writer.
package fs

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // register png
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	_ "github.com/lmittmann/ppm" // register ppm

	"github.com/bft-labs/ballchaser/internal/domain"
	"github.com/bft-labs/ballchaser/internal/mailbox"
	"github.com/bft-labs/ballchaser/internal/ports"
)

// frameExts are the file extensions picked up from the frame directory.
var frameExts = map[string]bool{
	".ppm": true,
	".pnm": true,
	".png": true,
}

// DirSource implements ports.FrameSource over a directory of image files.
//
// Files present at Open are delivered in name order. Unless once is set,
// the directory is then watched and each newly written file is delivered,
// newest wins. Writers should create files under a temporary name and
// rename them into place.
type DirSource struct {
	dir    string
	once   bool
	logger ports.Logger
	seq    atomic.Uint64

	mu      sync.Mutex
	pending []string
	watcher *fsnotify.Watcher
	box     *mailbox.Mailbox
	done    chan struct{}
}

// NewDirSource creates a directory frame source.
func NewDirSource(dir string, once bool, logger ports.Logger) *DirSource {
	return &DirSource{
		dir:    dir,
		once:   once,
		logger: logger,
	}
}

// Open lists the directory and, unless in once mode, starts watching it.
func (s *DirSource) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.box != nil {
		return nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read frame dir: %w", err)
	}

	pending := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && isFrameFile(e.Name()) {
			pending = append(pending, filepath.Join(s.dir, e.Name()))
		}
	}
	sort.Strings(pending)

	box := mailbox.New()
	if !s.once {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		if err := watcher.Add(s.dir); err != nil {
			watcher.Close()
			return fmt.Errorf("watch %s: %w", s.dir, err)
		}
		s.watcher = watcher
		s.done = make(chan struct{})
		go s.watchLoop(watcher, box, s.done)
	}

	s.pending = pending
	s.box = box
	s.logger.Info("frame directory open",
		ports.String("dir", s.dir),
		ports.Int("existing", len(pending)),
		ports.Bool("watch", !s.once),
	)
	return nil
}

func (s *DirSource) watchLoop(watcher *fsnotify.Watcher, box *mailbox.Mailbox, done chan struct{}) {
	defer close(done)
	defer box.Close()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 || !isFrameFile(event.Name) {
				continue
			}
			frame, err := s.load(event.Name)
			if err != nil {
				// Usually a file still being written; a later event retries it.
				s.logger.Debug("skipping unreadable frame file", ports.String("file", event.Name), ports.Err(err))
				continue
			}
			box.Put(frame)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("frame directory watcher error", ports.Err(err))
		}
	}
}

// Next returns the next existing file in name order, then (when watching)
// blocks for the newest written file. In once mode it returns
// ports.ErrNoMoreFrames after the existing files.
func (s *DirSource) Next(ctx context.Context) (domain.Frame, error) {
	for {
		s.mu.Lock()
		box := s.box
		if box == nil {
			s.mu.Unlock()
			return domain.Frame{}, fmt.Errorf("frame directory %s not open", s.dir)
		}
		if len(s.pending) > 0 {
			path := s.pending[0]
			s.pending = s.pending[1:]
			s.mu.Unlock()

			frame, err := s.load(path)
			if err != nil {
				s.logger.Warn("skipping unreadable frame file", ports.String("file", path), ports.Err(err))
				continue
			}
			return frame, nil
		}
		s.mu.Unlock()

		if s.once {
			return domain.Frame{}, ports.ErrNoMoreFrames
		}

		frame, err := box.Take(ctx)
		if err == mailbox.ErrClosed {
			return domain.Frame{}, fmt.Errorf("frame directory watcher stopped")
		}
		return frame, err
	}
}

// Close stops watching the directory.
func (s *DirSource) Close() error {
	s.mu.Lock()
	watcher, done := s.watcher, s.done
	s.watcher, s.done, s.box, s.pending = nil, nil, nil, nil
	s.mu.Unlock()

	if watcher == nil {
		return nil
	}
	err := watcher.Close()
	<-done
	return err
}

// load decodes an image file into an rgb8 frame.
func (s *DirSource) load(path string) (domain.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Frame{}, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return domain.Frame{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	frame := ImageToFrame(img)
	frame.Seq = s.seq.Add(1)
	frame.ReceivedAt = time.Now()

	s.logger.Debug("frame loaded",
		ports.String("file", filepath.Base(path)),
		ports.String("format", format),
		ports.Int("width", frame.Width()),
		ports.Int("height", frame.Height),
	)
	return frame, nil
}

// ImageToFrame flattens img into a row-major rgb8 frame.
// Alpha is dropped after un-premultiplying.
func ImageToFrame(img image.Image) domain.Frame {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	step := w * domain.ChannelsPerPixel
	px := make([]byte, h*step)

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			px[i], px[i+1], px[i+2] = c.R, c.G, c.B
			i += domain.ChannelsPerPixel
		}
	}

	return domain.Frame{
		Height:   h,
		Step:     step,
		Pixels:   px,
		Encoding: domain.EncodingRGB8,
	}
}

func isFrameFile(name string) bool {
	return frameExts[strings.ToLower(filepath.Ext(name))]
}

var _ ports.FrameSource = (*DirSource)(nil)
