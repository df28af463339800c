package ballchaser

import "context"

// Plugin extends a Ballchaser instance with work that runs alongside the
// frame loop.
type Plugin interface {
	// Name identifies the plugin in logs.
	Name() string

	// Initialize is called from Start. A returned error aborts Start.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown is called from Stop and must release everything Initialize
	// acquired.
	Shutdown(ctx context.Context) error
}

// PluginConfig is passed to Plugin.Initialize.
type PluginConfig struct {
	// ConfigPath is the config file the instance was loaded from, if any.
	ConfigPath string

	Logger Logger

	// Tuner adjusts the running pipeline.
	Tuner Tuner
}

// Tuner exposes the runtime-adjustable settings of the pipeline.
type Tuner interface {
	Marker() byte
	SetMarker(marker byte)
}

// BasePlugin implements Plugin with no-ops. Embed it and override what you need.
type BasePlugin struct{}

func (BasePlugin) Name() string                                   { return "base" }
func (BasePlugin) Initialize(context.Context, PluginConfig) error { return nil }
func (BasePlugin) Shutdown(context.Context) error                 { return nil }
