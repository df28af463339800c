package app

import "github.com/bft-labs/ballchaser/internal/domain"

// Update compares zone with the last emitted zone in state.
// On a transition it commits zone and returns the mapped command with
// ok == true. A repeated zone returns ok == false and leaves state as is.
// The first call on a fresh state is always a transition.
func Update(state *domain.DebounceState, zone domain.Zone) (cmd domain.VelocityCommand, ok bool) {
	if !state.Changed(zone) {
		return domain.VelocityCommand{}, false
	}
	state.Commit(zone)
	return domain.CommandFor(zone), true
}

// zoneMessage is the log line for entering a zone.
func zoneMessage(z domain.Zone) string {
	switch z {
	case domain.ZoneLeft:
		return "BALL ON LEFT"
	case domain.ZoneMiddle:
		return "BALL IN MIDDLE"
	case domain.ZoneRight:
		return "BALL ON RIGHT"
	default:
		return "NO BALL"
	}
}
