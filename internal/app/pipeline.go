package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bft-labs/ballchaser/internal/domain"
	"github.com/bft-labs/ballchaser/internal/ports"
)

// PipelineEventEmitter is called on zone transitions and delivery failures.
// Calls happen synchronously on the processing goroutine.
type PipelineEventEmitter interface {
	OnZoneChange(previous, current domain.Zone, cmd domain.VelocityCommand)
	OnDeliveryError(err *domain.ActuationDeliveryError)
}

// Stats holds pipeline counters.
type Stats struct {
	Frames           uint64
	Malformed        uint64
	NoTarget         uint64
	Commands         uint64
	DeliveryFailures uint64
	LastZone         domain.Zone
	LastCommandAt    time.Time
}

// Pipeline scans frames, debounces zones, and drives the base.
// Process calls are serialized by procMu. mu only guards state and stats, so
// Stats and Zone do not wait on an in-flight Drive.
type Pipeline struct {
	procMu  sync.Mutex
	mu      sync.Mutex
	state   domain.DebounceState
	stats   Stats
	marker  atomic.Uint32
	sink    ports.ActuationSink
	logger  ports.Logger
	emitter PipelineEventEmitter
}

// NewPipeline creates a pipeline in the initial ZoneNone state.
// emitter may be nil.
func NewPipeline(marker byte, sink ports.ActuationSink, logger ports.Logger, emitter PipelineEventEmitter) *Pipeline {
	p := &Pipeline{
		sink:    sink,
		logger:  logger,
		emitter: emitter,
	}
	p.marker.Store(uint32(marker))
	return p
}

// Process runs one frame through the pipeline and calls the sink at most once.
//
// A malformed frame returns its *domain.MalformedFrameError without touching
// the debounce state. If the sink fails, the zone transition stays committed
// and a *domain.ActuationDeliveryError is returned.
func (p *Pipeline) Process(ctx context.Context, frame domain.Frame) error {
	p.procMu.Lock()
	defer p.procMu.Unlock()

	zone, scanErr := Scanner{Marker: p.Marker()}.Scan(frame)

	p.mu.Lock()
	p.stats.Frames++
	if scanErr != nil {
		p.stats.Malformed++
		p.mu.Unlock()
		return scanErr
	}
	if zone == domain.ZoneNone {
		p.stats.NoTarget++
	}
	previous := p.state.Last()
	cmd, changed := Update(&p.state, zone)
	if changed {
		p.stats.Commands++
		p.stats.LastZone = zone
		p.stats.LastCommandAt = time.Now()
	}
	p.mu.Unlock()

	if !changed {
		return nil
	}

	p.logger.Info(zoneMessage(zone),
		ports.String("from", previous.String()),
		ports.String("to", zone.String()),
		ports.Float64("linear_x", cmd.Linear),
		ports.Float64("angular_z", cmd.Angular),
		ports.Uint64("seq", frame.Seq),
	)
	if p.emitter != nil {
		p.emitter.OnZoneChange(previous, zone, cmd)
	}

	if err := p.sink.Drive(ctx, cmd); err != nil {
		p.mu.Lock()
		p.stats.DeliveryFailures++
		p.mu.Unlock()

		derr := &domain.ActuationDeliveryError{Command: cmd, Err: err}
		p.logger.Error("failed to call drive service",
			ports.Err(err),
			ports.String("zone", zone.String()),
		)
		if p.emitter != nil {
			p.emitter.OnDeliveryError(derr)
		}
		return derr
	}
	return nil
}

// Marker returns the marker channel value currently in use.
func (p *Pipeline) Marker() byte {
	return byte(p.marker.Load())
}

// SetMarker changes the marker value; it applies from the next frame.
func (p *Pipeline) SetMarker(marker byte) {
	old := byte(p.marker.Swap(uint32(marker)))
	if old != marker {
		p.logger.Info("marker changed", ports.Int("from", int(old)), ports.Int("to", int(marker)))
	}
}

// Zone returns the most recently emitted zone.
func (p *Pipeline) Zone() domain.Zone {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Last()
}

// Reset returns the debounce state to its initial value, so the next frame
// emits a command whatever its zone.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Reset()
}

// Stats returns a snapshot of the pipeline counters.
func (p *Pipeline) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}
