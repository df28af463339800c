// Package mailbox provides a single-slot, overwrite-on-put frame buffer.
//
// Push-style frame sources (a websocket reader, a directory watcher) put
// every frame they receive; the pipeline worker takes the newest one. When
// delivery outpaces processing, unconsumed frames are replaced and counted
// as drops instead of queueing up behind a slow consumer.
package mailbox

import (
	"context"
	"errors"
	"sync"

	"github.com/bft-labs/ballchaser/internal/domain"
)

// ErrClosed is returned by Take after Close, once the slot is empty.
var ErrClosed = errors.New("mailbox: closed")

// Mailbox is a single-slot frame buffer. The zero value is not usable;
// call New.
type Mailbox struct {
	mu     sync.Mutex
	frame  *domain.Frame
	ready  chan struct{} // buffered(1), signalled on put/close
	closed bool

	puts  uint64
	drops uint64
}

// Stats holds mailbox counters.
type Stats struct {
	Puts  uint64
	Drops uint64
}

// New creates an empty mailbox.
func New() *Mailbox {
	return &Mailbox{ready: make(chan struct{}, 1)}
}

// Put stores frame, replacing any unconsumed frame. Never blocks.
// Frames put after Close are discarded.
func (m *Mailbox) Put(frame domain.Frame) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	if m.frame != nil {
		m.drops++
	}
	m.puts++
	m.frame = &frame
	m.mu.Unlock()

	m.signal()
}

// Take blocks until a frame is available and removes it from the slot.
// Returns ErrClosed once the mailbox is closed and drained, or the context
// error if ctx is done first.
func (m *Mailbox) Take(ctx context.Context) (domain.Frame, error) {
	for {
		m.mu.Lock()
		if m.frame != nil {
			f := *m.frame
			m.frame = nil
			m.mu.Unlock()
			return f, nil
		}
		if m.closed {
			m.mu.Unlock()
			return domain.Frame{}, ErrClosed
		}
		m.mu.Unlock()

		select {
		case <-ctx.Done():
			return domain.Frame{}, ctx.Err()
		case <-m.ready:
		}
	}
}

// Close wakes any blocked Take. A frame already in the slot can still be taken.
func (m *Mailbox) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.signal()
}

// Stats returns a snapshot of the mailbox counters.
func (m *Mailbox) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{Puts: m.puts, Drops: m.drops}
}

func (m *Mailbox) signal() {
	select {
	case m.ready <- struct{}{}:
	default:
	}
}
