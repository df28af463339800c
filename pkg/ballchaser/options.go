package ballchaser

import (
	"github.com/bft-labs/ballchaser/internal/app"
	"github.com/bft-labs/ballchaser/internal/ports"
)

// Option configures optional behavior of Ballchaser.
type Option func(*options)

type options struct {
	httpClient   ports.HTTPClient
	logger       ports.Logger
	source       ports.FrameSource
	sink         ports.ActuationSink
	eventHandler EventHandler
	plugins      []Plugin
	marker       byte
}

func defaultOptions() options {
	return options{marker: app.DefaultMarker}
}

// WithHTTPClient sets the client used by the built-in drive sink.
// If not provided, an *http.Client with Config.DriveTimeout is used.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFrameSource replaces the built-in frame source.
func WithFrameSource(source FrameSource) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithActuationSink replaces the built-in drive sink.
func WithActuationSink(sink ActuationSink) Option {
	return func(o *options) {
		o.sink = sink
	}
}

// WithMarker sets the channel value that marks the target. Default: 255.
func WithMarker(marker byte) Option {
	return func(o *options) {
		o.marker = marker
	}
}

// WithEventHandler sets a handler for ballchaser events.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithPlugin registers a plugin to be initialized when Ballchaser starts.
// Plugins are initialized in registration order and shut down in reverse.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}
