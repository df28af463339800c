package domain

// VelocityCommand is a drive request for the mobile base.
// Positive Angular rotates the base toward a target seen on the left.
type VelocityCommand struct {
	Linear  float64 `json:"linear_x"`
	Angular float64 `json:"angular_z"`
}

// Fixed zone-to-velocity mapping.
var (
	CommandStop       = VelocityCommand{Linear: 0, Angular: 0}
	CommandTurnLeft   = VelocityCommand{Linear: 0, Angular: 0.1}
	CommandDriveAhead = VelocityCommand{Linear: 2.0, Angular: 0}
	CommandTurnRight  = VelocityCommand{Linear: 0, Angular: -0.1}
)

// CommandFor returns the velocity command for a zone.
// Unknown zones map to CommandStop.
func CommandFor(z Zone) VelocityCommand {
	switch z {
	case ZoneLeft:
		return CommandTurnLeft
	case ZoneMiddle:
		return CommandDriveAhead
	case ZoneRight:
		return CommandTurnRight
	default:
		return CommandStop
	}
}
