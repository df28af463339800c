package domain

import "fmt"

// Zone is where the first marker pixel of a frame was found, relative to
// the horizontal thirds of its row.
type Zone int

const (
	// ZoneNone means no marker pixel exists anywhere in the frame.
	ZoneNone Zone = iota
	ZoneLeft
	ZoneMiddle
	ZoneRight
)

// Zones lists every zone in declaration order.
var Zones = []Zone{ZoneNone, ZoneLeft, ZoneMiddle, ZoneRight}

// String returns a human-readable representation of the zone.
func (z Zone) String() string {
	switch z {
	case ZoneNone:
		return "none"
	case ZoneLeft:
		return "left"
	case ZoneMiddle:
		return "middle"
	case ZoneRight:
		return "right"
	default:
		return "unknown"
	}
}

// Valid reports whether z is one of the declared zones.
func (z Zone) Valid() bool {
	return z >= ZoneNone && z <= ZoneRight
}

// ParseZone converts the output of Zone.String back into a Zone.
func ParseZone(s string) (Zone, error) {
	for _, z := range Zones {
		if z.String() == s {
			return z, nil
		}
	}
	return ZoneNone, fmt.Errorf("unknown zone %q", s)
}
