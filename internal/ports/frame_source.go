package ports

import (
	"context"
	"io"

	"github.com/bft-labs/ballchaser/internal/domain"
)

// FrameSource delivers camera frames to the pipeline.
// Back-pressure and drop policy belong to the implementation: a source that
// receives frames faster than they are consumed should keep only the newest.
type FrameSource interface {
	// Open connects to the underlying transport.
	// It may be called again after Next returns a non-EOF error.
	Open(ctx context.Context) error

	// Next blocks until a frame is available.
	// Returns ErrNoMoreFrames when a finite source is drained.
	// Returns other errors when the transport failed; the caller may
	// reopen the source after a delay.
	Next(ctx context.Context) (domain.Frame, error)

	// Close releases all resources held by the source.
	Close() error
}

// ErrNoMoreFrames indicates that there are no more frames to read.
// The caller should poll and retry after a delay, or stop in once mode.
var ErrNoMoreFrames = io.EOF
