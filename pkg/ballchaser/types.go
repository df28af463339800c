package ballchaser

import (
	"github.com/bft-labs/ballchaser/internal/app"
	"github.com/bft-labs/ballchaser/internal/domain"
	"github.com/bft-labs/ballchaser/internal/ports"
)

type (
	// Frame is one raw camera image, three bytes per pixel.
	Frame = domain.Frame

	// Zone is the horizontal third of the frame holding the target.
	Zone = domain.Zone

	// VelocityCommand is a linear/angular motion request for the base.
	VelocityCommand = domain.VelocityCommand

	// FrameSource delivers frames to the agent.
	FrameSource = ports.FrameSource

	// ActuationSink delivers velocity commands to the base.
	ActuationSink = ports.ActuationSink

	// HTTPClient is the interface for making HTTP requests.
	// *http.Client satisfies this interface.
	HTTPClient = ports.HTTPClient

	// Logger is the interface for structured logging.
	Logger = ports.Logger

	// LogField represents a structured log field.
	LogField = ports.Field

	// Stats holds pipeline counters.
	Stats = app.Stats

	// MalformedFrameError reports a frame with inconsistent geometry.
	MalformedFrameError = domain.MalformedFrameError

	// ActuationDeliveryError reports a command the sink failed to deliver.
	ActuationDeliveryError = domain.ActuationDeliveryError
)

const (
	ZoneNone   = domain.ZoneNone
	ZoneLeft   = domain.ZoneLeft
	ZoneMiddle = domain.ZoneMiddle
	ZoneRight  = domain.ZoneRight
)

// Errors re-exported for errors.Is checks.
var (
	ErrMalformedFrame    = domain.ErrMalformedFrame
	ErrActuationDelivery = domain.ErrActuationDelivery
	ErrAlreadyRunning    = domain.ErrAlreadyRunning
	ErrNotRunning        = domain.ErrNotRunning
	ErrShutdownTimeout   = domain.ErrShutdownTimeout
	ErrInvalidConfig     = domain.ErrInvalidConfig
	ErrNoMoreFrames      = ports.ErrNoMoreFrames
)

// CommandFor returns the velocity command mapped to zone.
func CommandFor(zone Zone) VelocityCommand {
	return domain.CommandFor(zone)
}

// State is the lifecycle state of a Ballchaser instance.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

func (s State) String() string {
	return toAppState(s).String()
}

func convertState(s app.State) State {
	switch s {
	case app.StateStarting:
		return StateStarting
	case app.StateRunning:
		return StateRunning
	case app.StateStopping:
		return StateStopping
	case app.StateCrashed:
		return StateCrashed
	default:
		return StateStopped
	}
}

func toAppState(s State) app.State {
	switch s {
	case StateStarting:
		return app.StateStarting
	case StateRunning:
		return app.StateRunning
	case StateStopping:
		return app.StateStopping
	case StateCrashed:
		return app.StateCrashed
	default:
		return app.StateStopped
	}
}
