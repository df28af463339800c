package configwatcher

import "github.com/bft-labs/ballchaser/pkg/ballchaser"

// WithConfigWatcher returns a ballchaser Option that enables config file
// watching. The watched file is ballchaser.Config.ConfigPath.
//
// Usage:
//
//	b, err := ballchaser.New(cfg,
//	    configwatcher.WithConfigWatcher(configwatcher.Config{
//	        DebounceDelay: 250 * time.Millisecond,
//	    }),
//	)
func WithConfigWatcher(cfg Config) ballchaser.Option {
	return ballchaser.WithPlugin(New(cfg))
}

// WithDefaultConfigWatcher enables config watching with default settings.
func WithDefaultConfigWatcher() ballchaser.Option {
	return WithConfigWatcher(DefaultConfig())
}
