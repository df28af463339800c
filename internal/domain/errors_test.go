package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActuationDeliveryError(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("process: %w", &ActuationDeliveryError{Command: CommandTurnLeft, Err: cause})

	if !errors.Is(err, ErrActuationDelivery) {
		t.Error("errors.Is(err, ErrActuationDelivery) = false")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false")
	}
	if errors.Is(err, ErrMalformedFrame) {
		t.Error("delivery error matched ErrMalformedFrame")
	}
	if !strings.Contains(err.Error(), "angular=0.10") {
		t.Errorf("Error() = %q, want command in message", err.Error())
	}
}

func TestMalformedFrameError(t *testing.T) {
	err := &MalformedFrameError{Reason: "step 4 is not a multiple of 3"}
	if !errors.Is(err, ErrMalformedFrame) {
		t.Error("errors.Is(err, ErrMalformedFrame) = false")
	}
	if err.Error() != "malformed frame: step 4 is not a multiple of 3" {
		t.Errorf("Error() = %q", err.Error())
	}
}
