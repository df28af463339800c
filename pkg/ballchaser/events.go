package ballchaser

import (
	"github.com/bft-labs/ballchaser/internal/app"
	"github.com/bft-labs/ballchaser/internal/domain"
)

// StateChangeEvent is emitted on lifecycle transitions.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// ZoneChangeEvent is emitted when the target moves to a new zone, just
// before the command is delivered.
type ZoneChangeEvent struct {
	Previous Zone
	Current  Zone
	Command  VelocityCommand
}

// DeliveryErrorEvent is emitted when the sink fails to deliver a command.
type DeliveryErrorEvent struct {
	Command VelocityCommand
	Error   error
}

// EventHandler receives ballchaser events. Calls are synchronous and should
// return quickly.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnZoneChange(event ZoneChangeEvent)
	OnDeliveryError(event DeliveryErrorEvent)
}

// BaseEventHandler implements EventHandler with no-ops. Embed it to handle
// only some events.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent)     {}
func (BaseEventHandler) OnZoneChange(ZoneChangeEvent)       {}
func (BaseEventHandler) OnDeliveryError(DeliveryErrorEvent) {}

// eventEmitterWrapper adapts EventHandler to the internal emitter interfaces.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: convertState(previous),
		Current:  convertState(current),
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnZoneChange(previous, current domain.Zone, cmd domain.VelocityCommand) {
	if e.handler == nil {
		return
	}
	e.handler.OnZoneChange(ZoneChangeEvent{Previous: previous, Current: current, Command: cmd})
}

func (e *eventEmitterWrapper) OnDeliveryError(err *domain.ActuationDeliveryError) {
	if e.handler == nil {
		return
	}
	e.handler.OnDeliveryError(DeliveryErrorEvent{Command: err.Command, Error: err})
}
