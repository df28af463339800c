package ballchaser

import "time"

// Snapshot is the JSON document written to Config.StatusPath.
type Snapshot struct {
	State            string    `json:"state"`
	Zone             string    `json:"zone"`
	Marker           int       `json:"marker"`
	Frames           uint64    `json:"frames"`
	Malformed        uint64    `json:"malformed"`
	NoTarget         uint64    `json:"no_target"`
	Commands         uint64    `json:"commands"`
	DeliveryFailures uint64    `json:"delivery_failures"`
	DroppedFrames    uint64    `json:"dropped_frames"`
	LastCommandAt    time.Time `json:"last_command_at,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// dropCounter is implemented by sources that discard stale frames.
type dropCounter interface {
	Dropped() uint64
}

// Snapshot returns the current status of the instance.
func (b *Ballchaser) Snapshot() Snapshot {
	stats := b.pipeline.Stats()
	s := Snapshot{
		State:            b.Status().String(),
		Zone:             b.pipeline.Zone().String(),
		Marker:           int(b.pipeline.Marker()),
		Frames:           stats.Frames,
		Malformed:        stats.Malformed,
		NoTarget:         stats.NoTarget,
		Commands:         stats.Commands,
		DeliveryFailures: stats.DeliveryFailures,
		LastCommandAt:    stats.LastCommandAt,
		UpdatedAt:        time.Now().UTC(),
	}
	if dc, ok := b.source.(dropCounter); ok {
		s.DroppedFrames = dc.Dropped()
	}
	return s
}

func (b *Ballchaser) writeStatus() error {
	return b.status.Save(b.Snapshot())
}
