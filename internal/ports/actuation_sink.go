package ports

import (
	"context"

	"github.com/bft-labs/ballchaser/internal/domain"
)

// ActuationSink delivers velocity commands to the drive subsystem.
type ActuationSink interface {
	// Drive sends a single command. Returns nil once the drive subsystem
	// accepted it. Implementations bound their own latency (timeouts) and
	// must not retry internally; the caller owns retry policy.
	Drive(ctx context.Context, cmd domain.VelocityCommand) error
}
