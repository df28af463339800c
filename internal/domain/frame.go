package domain

import (
	"fmt"
	"time"
)

// ChannelsPerPixel is the size of one channel group in Frame.Pixels.
const ChannelsPerPixel = 3

// Supported pixel encodings. Both are 3 bytes per pixel; an empty
// encoding is treated as rgb8.
const (
	EncodingRGB8 = "rgb8"
	EncodingBGR8 = "bgr8"
)

// Frame is one camera sample delivered in row-major order.
// Pixels must not be modified once the frame has been handed to the pipeline.
type Frame struct {
	// Height is the number of rows
	Height int

	// Step is the byte count of one full row (width * 3)
	Step int

	// Pixels holds Height*Step bytes, grouped in runs of 3 per pixel
	Pixels []byte

	// Encoding is the channel order reported by the source (optional)
	Encoding string

	// Seq is a source-assigned sequence number
	Seq uint64

	// ReceivedAt is when the source obtained the frame
	ReceivedAt time.Time
}

// Width returns the number of pixels per row.
func (f Frame) Width() int {
	if f.Step <= 0 {
		return 0
	}
	return f.Step / ChannelsPerPixel
}

// Validate checks the structural invariants of the frame.
// It returns a *MalformedFrameError describing the first violation found.
func (f Frame) Validate() error {
	switch {
	case f.Height <= 0:
		return &MalformedFrameError{Reason: fmt.Sprintf("height must be positive, got %d", f.Height)}
	case f.Step <= 0:
		return &MalformedFrameError{Reason: fmt.Sprintf("step must be positive, got %d", f.Step)}
	case f.Step%ChannelsPerPixel != 0:
		return &MalformedFrameError{Reason: fmt.Sprintf("step %d is not a multiple of %d", f.Step, ChannelsPerPixel)}
	case len(f.Pixels)%ChannelsPerPixel != 0:
		return &MalformedFrameError{Reason: fmt.Sprintf("pixel buffer length %d is not a multiple of %d", len(f.Pixels), ChannelsPerPixel)}
	case len(f.Pixels) != f.Height*f.Step:
		return &MalformedFrameError{Reason: fmt.Sprintf("pixel buffer length %d does not match height %d * step %d", len(f.Pixels), f.Height, f.Step)}
	}

	switch f.Encoding {
	case "", EncodingRGB8, EncodingBGR8:
		return nil
	default:
		return &MalformedFrameError{Reason: fmt.Sprintf("unsupported encoding %q", f.Encoding)}
	}
}
