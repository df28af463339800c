package app

import (
	"context"
	"errors"
	"time"

	"github.com/bft-labs/ballchaser/internal/domain"
	"github.com/bft-labs/ballchaser/internal/ports"
)

// AgentConfig contains configuration for the frame loop.
type AgentConfig struct {
	// PollInterval is the wait after a drained source before asking again.
	PollInterval time.Duration

	// Once stops the loop the first time the source is drained.
	Once bool
}

// Agent pulls frames from a source and feeds them to the pipeline, one at a
// time, on the calling goroutine.
type Agent struct {
	config   AgentConfig
	source   ports.FrameSource
	pipeline *Pipeline
	logger   ports.Logger
	backoff  *backoff
}

// NewAgent creates a new agent with the given dependencies.
func NewAgent(config AgentConfig, source ports.FrameSource, pipeline *Pipeline, logger ports.Logger) *Agent {
	return &Agent{
		config:   config,
		source:   source,
		pipeline: pipeline,
		logger:   logger,
		backoff:  newBackoff(DefaultBackoffInitial, DefaultBackoffMax),
	}
}

// Run executes the frame loop until ctx is canceled, the source is drained
// in once mode, or the source cannot be opened in once mode.
// Per-frame errors never stop the loop.
func (a *Agent) Run(ctx context.Context) error {
	open := false
	defer func() {
		if open {
			if err := a.source.Close(); err != nil {
				a.logger.Warn("close frame source", ports.Err(err))
			}
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !open {
			if err := a.source.Open(ctx); err != nil {
				if a.config.Once {
					return err
				}
				a.logger.Error("open frame source", ports.Err(err), ports.Duration("retry_in", a.backoff.Current()))
				if err := a.backoff.Wait(ctx); err != nil {
					return err
				}
				continue
			}
			open = true
			a.logger.Info("frame source open")
		}

		frame, err := a.source.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			if errors.Is(err, ports.ErrNoMoreFrames) {
				if a.config.Once {
					return nil
				}
				if err := sleepCtx(ctx, a.config.PollInterval); err != nil {
					return err
				}
				continue
			}

			// Transport failure: drop the connection and reopen after backoff.
			a.logger.Error("read frame", ports.Err(err), ports.Duration("retry_in", a.backoff.Current()))
			if cerr := a.source.Close(); cerr != nil {
				a.logger.Warn("close frame source", ports.Err(cerr))
			}
			open = false
			if err := a.backoff.Wait(ctx); err != nil {
				return err
			}
			continue
		}
		a.backoff.Reset()

		a.handle(ctx, frame)
	}
}

// handle processes a single frame and logs the outcome.
func (a *Agent) handle(ctx context.Context, frame domain.Frame) {
	err := a.pipeline.Process(ctx, frame)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrMalformedFrame):
		a.logger.Warn("dropping malformed frame", ports.Err(err), ports.Uint64("seq", frame.Seq))
	case errors.Is(err, domain.ErrActuationDelivery):
		// Already reported by the pipeline.
	default:
		a.logger.Error("process frame", ports.Err(err), ports.Uint64("seq", frame.Seq))
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
