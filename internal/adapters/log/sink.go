package log

import (
	"context"

	"github.com/bft-labs/ballchaser/internal/domain"
	"github.com/bft-labs/ballchaser/internal/ports"
)

// Sink is an actuation sink that only logs commands. Used for --dry-run.
type Sink struct {
	logger ports.Logger
}

// NewSink creates a logging sink.
func NewSink(logger ports.Logger) *Sink {
	return &Sink{logger: logger}
}

// Drive logs cmd and always succeeds.
func (s *Sink) Drive(ctx context.Context, cmd domain.VelocityCommand) error {
	s.logger.Info("drive (dry run)",
		ports.Float64("linear_x", cmd.Linear),
		ports.Float64("angular_z", cmd.Angular),
	)
	return nil
}

var _ ports.ActuationSink = (*Sink)(nil)
