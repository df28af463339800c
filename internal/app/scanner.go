package app

import "github.com/bft-labs/ballchaser/internal/domain"

// DefaultMarker is the channel value of a pure white marker pixel.
const DefaultMarker byte = 255

// Scanner locates the marker in a frame.
type Scanner struct {
	// Marker is the value all three channels of a target pixel must equal.
	Marker byte
}

// Scan returns the zone of the first marker pixel in row-major order, or
// ZoneNone if the frame has none. Later marker pixels never change the
// result: the first hit of a blob lies nearest its top edge, which is
// enough to pick a third of the row.
//
// A frame that fails validation yields a *domain.MalformedFrameError.
func (s Scanner) Scan(frame domain.Frame) (domain.Zone, error) {
	if err := frame.Validate(); err != nil {
		return domain.ZoneNone, err
	}

	px := frame.Pixels
	for i := 0; i < len(px); i += domain.ChannelsPerPixel {
		if px[i] == s.Marker && px[i+1] == s.Marker && px[i+2] == s.Marker {
			return classify(i%frame.Step, frame.Step), nil
		}
	}
	return domain.ZoneNone, nil
}

// classify maps a byte offset within a row to a zone.
// offset < step/3 is Left, offset > 2*step/3 is Right, ties go to Middle.
func classify(offset, step int) domain.Zone {
	switch {
	case offset*3 < step:
		return domain.ZoneLeft
	case offset*3 > 2*step:
		return domain.ZoneRight
	default:
		return domain.ZoneMiddle
	}
}
