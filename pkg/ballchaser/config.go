package ballchaser

import (
	"fmt"
	"time"

	"github.com/bft-labs/ballchaser/internal/adapters/fs"
	httpAdapter "github.com/bft-labs/ballchaser/internal/adapters/http"
	"github.com/bft-labs/ballchaser/internal/adapters/ws"
	"github.com/bft-labs/ballchaser/internal/domain"
)

// Built-in frame sources.
const (
	SourceWebsocket = "ws"
	SourceDir       = "dir"
)

// Config holds the configuration of a Ballchaser instance.
// Zero values are replaced by defaults in SetDefaults.
type Config struct {
	// Source selects the built-in frame source. Ignored with WithFrameSource.
	Source string

	// ImageURL and ImageTopic locate the websocket camera feed.
	ImageURL   string
	ImageTopic string

	// FrameDir is the directory read by the "dir" source.
	FrameDir string

	// DriveURL is the drive service endpoint. Ignored with WithActuationSink
	// or DryRun.
	DriveURL string

	// DriveTimeout bounds each drive request. Default: 2s
	DriveTimeout time.Duration

	// DryRun logs commands instead of sending them.
	DryRun bool

	// PollInterval is the wait after the source runs dry. Default: 200ms
	PollInterval time.Duration

	// Once stops the agent when the source runs dry.
	Once bool

	// StatusPath, when set, receives a JSON snapshot every StatusInterval
	// and on Stop. Default interval: 5s
	StatusPath     string
	StatusInterval time.Duration

	// ConfigPath is handed to plugins that watch the config file.
	ConfigPath string
}

// SetDefaults fills zero-valued fields.
func (c *Config) SetDefaults() {
	if c.Source == "" {
		c.Source = SourceWebsocket
	}
	if c.ImageURL == "" {
		c.ImageURL = ws.DefaultURL
	}
	if c.ImageTopic == "" {
		c.ImageTopic = ws.DefaultTopic
	}
	if c.DriveURL == "" {
		c.DriveURL = httpAdapter.DefaultDriveURL
	}
	if c.DriveTimeout <= 0 {
		c.DriveTimeout = 2 * time.Second
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 200 * time.Millisecond
	}
	if c.StatusInterval <= 0 {
		c.StatusInterval = 5 * time.Second
	}
}

// validate checks the settings that the chosen options leave in use.
func (c Config) validate(o options) error {
	if o.source == nil {
		switch c.Source {
		case SourceWebsocket:
		case SourceDir:
			if c.FrameDir == "" {
				return fmt.Errorf("%w: FrameDir is required for source %q", domain.ErrInvalidConfig, c.Source)
			}
		default:
			return fmt.Errorf("%w: unknown source %q", domain.ErrInvalidConfig, c.Source)
		}
	}
	return nil
}

func (c Config) statusFile() *fs.StatusFile {
	if c.StatusPath == "" {
		return nil
	}
	return fs.NewStatusFile(c.StatusPath)
}
