// Package ballchaser drives a mobile base toward a marker-colored ball.
//
// Example usage:
//
//	cfg := ballchaser.DefaultConfig()
//	cfg.Source = "dir"
//	cfg.FrameDir = "/var/lib/frames"
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := ballchaser.Run(context.Background(), cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// For embedding with options, events and plugins see pkg/ballchaser.
package ballchaser

import (
	"context"
	"fmt"

	logAdapter "github.com/bft-labs/ballchaser/internal/adapters/log"
	"github.com/bft-labs/ballchaser/internal/cliconfig"
	"github.com/bft-labs/ballchaser/pkg/ballchaser"
)

// Config holds the configuration of the ball chaser.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Run chases the ball with the given configuration, logging to stderr.
// It blocks until the context is cancelled, the source is drained in once
// mode, or the frame loop fails.
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ballchaser.ErrInvalidConfig, err)
	}

	logger := logAdapter.NewZerologAdapterWithLogger(cliconfig.Logger(cfg.LogLevel))
	b, err := ballchaser.New(ballchaser.Config{
		Source:         cfg.Source,
		ImageURL:       cfg.ImageURL,
		ImageTopic:     cfg.ImageTopic,
		FrameDir:       cfg.FrameDir,
		DriveURL:       cfg.DriveURL,
		DriveTimeout:   cfg.DriveTimeout,
		DryRun:         cfg.DryRun,
		PollInterval:   cfg.PollInterval,
		Once:           cfg.Once,
		StatusPath:     cfg.StatusPath,
		StatusInterval: cfg.StatusInterval,
	}, ballchaser.WithLogger(logger), ballchaser.WithMarker(byte(cfg.Marker)))
	if err != nil {
		return err
	}

	if err := b.Start(ctx); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
	case <-b.Done():
	}

	crashed := b.Status() == ballchaser.StateCrashed
	if err := b.Stop(); err != nil {
		return err
	}
	if crashed {
		return fmt.Errorf("frame loop crashed")
	}
	return nil
}
