package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent error conditions in the ballchaser domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrMalformedFrame matches every *MalformedFrameError.
	ErrMalformedFrame = errors.New("ballchaser: malformed frame")

	// ErrActuationDelivery matches every *ActuationDeliveryError.
	ErrActuationDelivery = errors.New("ballchaser: actuation delivery failed")

	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("ballchaser: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped instance.
	ErrNotRunning = errors.New("ballchaser: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("ballchaser: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("ballchaser: invalid configuration")
)

// MalformedFrameError reports a frame that violates its structural invariants.
// The frame is dropped and the debounce state is left untouched.
type MalformedFrameError struct {
	Reason string
}

func (e *MalformedFrameError) Error() string {
	return "malformed frame: " + e.Reason
}

// Is makes errors.Is(err, ErrMalformedFrame) succeed.
func (e *MalformedFrameError) Is(target error) bool {
	return target == ErrMalformedFrame
}

// ActuationDeliveryError reports that the actuation sink rejected or failed
// to deliver a command. The zone transition that produced the command
// stays committed.
type ActuationDeliveryError struct {
	Command VelocityCommand
	Err     error
}

func (e *ActuationDeliveryError) Error() string {
	return fmt.Sprintf("deliver command (linear=%.2f angular=%.2f): %v", e.Command.Linear, e.Command.Angular, e.Err)
}

// Is makes errors.Is(err, ErrActuationDelivery) succeed.
func (e *ActuationDeliveryError) Is(target error) bool {
	return target == ErrActuationDelivery
}

func (e *ActuationDeliveryError) Unwrap() error {
	return e.Err
}
