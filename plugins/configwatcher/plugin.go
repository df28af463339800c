// Package configwatcher reloads tunable settings when the config file
// changes. Currently the marker value is applied to the running pipeline
// without a restart; other settings need one.
package configwatcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/ballchaser/internal/cliconfig"
	"github.com/bft-labs/ballchaser/internal/ports"
	"github.com/bft-labs/ballchaser/pkg/ballchaser"
)

// Plugin watches the config file and applies changes through the Tuner.
type Plugin struct {
	debounceDelay time.Duration

	mu     sync.Mutex
	path   string
	logger ballchaser.Logger
	tuner  ballchaser.Tuner
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Config holds configuration options for the config watcher plugin.
type Config struct {
	// DebounceDelay is how long writes must settle before reloading.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{DebounceDelay: 100 * time.Millisecond}
}

// New creates a new config watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	return &Plugin{debounceDelay: cfg.DebounceDelay}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "configwatcher"
}

// Initialize starts watching cfg.ConfigPath. With no config path the
// plugin stays idle.
func (p *Plugin) Initialize(ctx context.Context, cfg ballchaser.PluginConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.path = cfg.ConfigPath
	p.logger = cfg.Logger
	p.tuner = cfg.Tuner

	if p.path == "" || p.tuner == nil {
		p.logger.Warn("config watcher disabled: no config file")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory; editors replace files by rename.
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(p.path), err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)

	p.logger.Info("config watcher started", ports.String("path", p.path))
	return nil
}

// Shutdown stops the watcher and waits for it to exit.
func (p *Plugin) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
	return nil
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	debounced := debounce.New(p.debounceDelay)
	name := filepath.Base(p.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounced(func() {
				if ctx.Err() == nil {
					p.reload()
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("config watcher error", ports.Err(err))
		}
	}
}

// reload re-reads the config file and applies the marker value.
func (p *Plugin) reload() {
	fc, err := cliconfig.LoadFileConfig(p.path)
	if err != nil {
		p.logger.Warn("config reload failed", ports.String("path", p.path), ports.Err(err))
		return
	}
	if fc.Marker == nil {
		return
	}
	if *fc.Marker < 0 || *fc.Marker > 255 {
		p.logger.Warn("ignoring out-of-range marker", ports.Int("marker", *fc.Marker))
		return
	}
	p.tuner.SetMarker(byte(*fc.Marker))
}

var _ ballchaser.Plugin = (*Plugin)(nil)
