package ballchaser

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/bft-labs/ballchaser/internal/adapters/fs"
	httpAdapter "github.com/bft-labs/ballchaser/internal/adapters/http"
	logAdapter "github.com/bft-labs/ballchaser/internal/adapters/log"
	"github.com/bft-labs/ballchaser/internal/adapters/ws"
	"github.com/bft-labs/ballchaser/internal/app"
	"github.com/bft-labs/ballchaser/internal/domain"
	"github.com/bft-labs/ballchaser/internal/ports"
)

// Ballchaser is a ball-chasing agent that can be embedded in other
// applications. Use New() to create an instance, then Start() to begin.
type Ballchaser struct {
	config    Config
	lifecycle *app.Lifecycle
	pipeline  *app.Pipeline
	agent     *app.Agent
	source    ports.FrameSource
	logger    ports.Logger
	plugins   []Plugin
	status    *fs.StatusFile

	mu          sync.Mutex
	cancel      context.CancelFunc
	done        chan struct{}
	initialized []Plugin
}

// New creates a new Ballchaser instance in StateStopped.
// Returns an error wrapping ErrInvalidConfig if the configuration is unusable.
func New(cfg Config, opts ...Option) (*Ballchaser, error) {
	cfg.SetDefaults()

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.validate(o); err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = logAdapter.NewNoopLogger()
	}

	emitter := &eventEmitterWrapper{handler: o.eventHandler}

	source := o.source
	if source == nil {
		switch cfg.Source {
		case SourceDir:
			source = fs.NewDirSource(cfg.FrameDir, cfg.Once, logger)
		default:
			source = ws.NewSource(cfg.ImageURL, cfg.ImageTopic, logger)
		}
	}

	sink := o.sink
	if sink == nil {
		if cfg.DryRun {
			sink = logAdapter.NewSink(logger)
		} else {
			client := o.httpClient
			if client == nil {
				client = &http.Client{Timeout: cfg.DriveTimeout}
			}
			sink = httpAdapter.NewDriveSink(client, cfg.DriveURL, logger)
		}
	}

	pipeline := app.NewPipeline(o.marker, sink, logger, emitter)
	agent := app.NewAgent(app.AgentConfig{
		PollInterval: cfg.PollInterval,
		Once:         cfg.Once,
	}, source, pipeline, logger)

	done := make(chan struct{})
	close(done)

	return &Ballchaser{
		config:    cfg,
		lifecycle: app.NewLifecycle(logger, emitter),
		pipeline:  pipeline,
		agent:     agent,
		source:    source,
		logger:    logger,
		plugins:   o.plugins,
		status:    cfg.statusFile(),
		done:      done,
	}, nil
}

// Start runs the frame loop in the background and returns immediately.
// Returns ErrAlreadyRunning if already started.
func (b *Ballchaser) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}
	if b.cancel != nil {
		// A crashed run that was never stopped still has workers and plugins.
		if err := b.cleanupCrashedRun(); err != nil {
			return err
		}
	}
	if err := b.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)

	pluginCfg := PluginConfig{
		ConfigPath: b.config.ConfigPath,
		Logger:     b.logger,
		Tuner:      b,
	}
	b.initialized = b.initialized[:0]
	for _, p := range b.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			b.logger.Error("plugin initialization failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
			cancel()
			err = multierr.Append(err, b.shutdownPlugins())
			_ = b.lifecycle.TransitionTo(app.StateCrashed, "plugin init failed: "+p.Name())
			return err
		}
		b.initialized = append(b.initialized, p)
		b.logger.Info("plugin initialized", ports.String("plugin", p.Name()))
	}

	b.cancel = cancel
	done := make(chan struct{})
	b.done = done

	if b.status != nil {
		b.lifecycle.Go(func() { b.statusLoop(runCtx) })
	}

	b.lifecycle.Go(func() {
		defer close(done)

		if err := b.lifecycle.TransitionTo(app.StateRunning, "frame loop starting"); err != nil {
			b.logger.Error("failed to transition to running", ports.Err(err))
			return
		}

		err := b.agent.Run(runCtx)
		switch {
		case err == nil:
			b.logger.Info("frame source drained")
		case errors.Is(err, context.Canceled):
		default:
			b.logger.Error("frame loop error", ports.Err(err))
			_ = b.lifecycle.TransitionTo(app.StateCrashed, err.Error())
		}
	})

	return nil
}

// Stop cancels the frame loop, shuts plugins down in reverse order, and
// writes a final status snapshot. It waits up to 30 seconds for the loop to
// exit and returns ErrShutdownTimeout if it does not.
//
// Stop also cleans up after a crashed run, in which case the state stays
// StateCrashed.
func (b *Ballchaser) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	crashed := b.lifecycle.State() == app.StateCrashed
	if !b.lifecycle.CanStop() && !(crashed && b.cancel != nil) {
		return domain.ErrNotRunning
	}
	if !crashed {
		if err := b.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
			return err
		}
	}

	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}

	err := b.lifecycle.WaitWithTimeout(app.ShutdownTimeout)
	err = multierr.Append(err, b.shutdownPlugins())
	if b.status != nil {
		err = multierr.Append(err, b.writeStatus())
	}

	switch {
	case crashed:
	case errors.Is(err, domain.ErrShutdownTimeout):
		_ = b.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	default:
		_ = b.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}
	return err
}

// cleanupCrashedRun cancels the previous run and waits for its workers.
func (b *Ballchaser) cleanupCrashedRun() error {
	b.cancel()
	b.cancel = nil
	err := b.lifecycle.WaitWithTimeout(app.ShutdownTimeout)
	return multierr.Append(err, b.shutdownPlugins())
}

// shutdownPlugins shuts down initialized plugins in reverse order.
func (b *Ballchaser) shutdownPlugins() error {
	var errs error
	ctx := context.Background()
	for i := len(b.initialized) - 1; i >= 0; i-- {
		p := b.initialized[i]
		if err := p.Shutdown(ctx); err != nil {
			b.logger.Error("plugin shutdown failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
			errs = multierr.Append(errs, err)
			continue
		}
		b.logger.Info("plugin shutdown complete", ports.String("plugin", p.Name()))
	}
	b.initialized = b.initialized[:0]
	return errs
}

// Done is closed when the frame loop of the current run exits, either
// because Stop was called, the source drained in once mode, or the loop
// crashed. Before the first Start it is already closed.
func (b *Ballchaser) Done() <-chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.done
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (b *Ballchaser) Status() State {
	return convertState(b.lifecycle.State())
}

// Process runs one frame through the pipeline without a frame source.
// The sink is called at most once.
func (b *Ballchaser) Process(ctx context.Context, frame Frame) error {
	return b.pipeline.Process(ctx, frame)
}

// Stats returns a snapshot of the pipeline counters.
func (b *Ballchaser) Stats() Stats {
	return b.pipeline.Stats()
}

// Zone returns the zone of the most recently issued command.
func (b *Ballchaser) Zone() Zone {
	return b.pipeline.Zone()
}

// Reset forgets the last zone so the next frame always issues a command.
func (b *Ballchaser) Reset() {
	b.pipeline.Reset()
}

// Marker returns the marker channel value in use.
func (b *Ballchaser) Marker() byte {
	return b.pipeline.Marker()
}

// SetMarker changes the marker channel value from the next frame on.
func (b *Ballchaser) SetMarker(marker byte) {
	b.pipeline.SetMarker(marker)
}

var _ Tuner = (*Ballchaser)(nil)

// statusLoop writes a status snapshot every StatusInterval.
func (b *Ballchaser) statusLoop(ctx context.Context) {
	ticker := time.NewTicker(b.config.StatusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := b.writeStatus(); err != nil {
				b.logger.Warn("write status file", ports.Err(err), ports.String("path", b.status.Path()))
			}
		}
	}
}
