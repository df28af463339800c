package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	logAdapter "github.com/bft-labs/ballchaser/internal/adapters/log"
	"github.com/bft-labs/ballchaser/internal/cliconfig"
	"github.com/bft-labs/ballchaser/pkg/ballchaser"
	"github.com/bft-labs/ballchaser/plugins/configwatcher"
)

const helpDescription = `
Chase a white ball with a mobile base.

Each camera frame is scanned for the first pure-white pixel. The column it
falls in picks a command: turn left, drive ahead, or turn right. With no
ball in view the base stops. A command is only sent when the zone changes.

Frames come from a rosbridge websocket (--source ws) or from image files
dropped into a directory (--source dir). Commands are POSTed as JSON to
the drive service.
`

var exampleUsage = strings.TrimSpace(`
  ballchaser --image-url ws://robot:9090 --drive-url http://robot:8000/ball_chaser/command_robot
  ballchaser --source dir --frame-dir ./frames --once --dry-run
  ballchaser --config $HOME/.ballchaser/config.toml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:          "ballchaser",
		Short:        "Drive a mobile base toward a white ball seen by its camera",
		Long:         strings.TrimSpace(helpDescription),
		Example:      exampleUsage,
		Version:      fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &cfg, cfgPath)
		},
	}

	// Flags
	f := root.Flags()
	f.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.ballchaser/config.toml)")
	f.StringVar(&cfg.Source, "source", cfg.Source, "frame source: ws or dir")
	f.StringVar(&cfg.ImageURL, "image-url", cfg.ImageURL, "rosbridge websocket URL")
	f.StringVar(&cfg.ImageTopic, "image-topic", cfg.ImageTopic, "camera topic to subscribe to (empty: server pushes frames unasked)")
	f.StringVar(&cfg.FrameDir, "frame-dir", cfg.FrameDir, "directory of .ppm/.png frames (source dir)")
	f.StringVar(&cfg.DriveURL, "drive-url", cfg.DriveURL, "drive service endpoint")
	f.DurationVar(&cfg.DriveTimeout, "drive-timeout", cfg.DriveTimeout, "timeout of one drive request")
	f.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "log commands instead of sending them")
	f.IntVar(&cfg.Marker, "marker", cfg.Marker, "channel value (0-255) of the target color")
	f.DurationVar(&cfg.PollInterval, "poll", cfg.PollInterval, "poll interval when no frames are available")
	f.StringVar(&cfg.StatusPath, "status-file", cfg.StatusPath, "write a JSON status snapshot to this file")
	f.DurationVar(&cfg.StatusInterval, "status-interval", cfg.StatusInterval, "status file refresh interval")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	f.BoolVar(&cfg.Once, "once", cfg.Once, "process available frames and exit (source dir)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, cfg *cliconfig.Config, cfgPath string) error {
	// Load config file first (default $HOME/.ballchaser/config.toml), then
	// env, with explicitly set flags winning over both.
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	} else if cfgPath != "" {
		return fmt.Errorf("config file %s not found", cfgPath)
	} else {
		cfgFile = ""
	}

	if err := cliconfig.ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := cliconfig.Logger(cfg.LogLevel)
	log.Info().Interface("config", cfg).Msg("configuration")

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
		ConfigPath:     cfgFile,
	},
		ballchaser.WithLogger(logAdapter.NewZerologAdapterWithLogger(log)),
		ballchaser.WithMarker(byte(cfg.Marker)),
		configwatcher.WithDefaultConfigWatcher(),
	)
	if err != nil {
		log.Error().Err(err).Msg("create ballchaser")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := b.Start(ctx); err != nil {
		log.Error().Err(err).Msg("start ballchaser")
		return err
	}

	select {
	case <-ctx.Done():
		log.Info().Msg("received signal, stopping...")
	case <-b.Done():
		if b.Status() == ballchaser.StateCrashed {
			log.Error().Msg("frame loop crashed")
		}
	}

	crashed := b.Status() == ballchaser.StateCrashed
	if err := b.Stop(); err != nil {
		log.Error().Err(err).Msg("stop ballchaser")
		return err
	}
	if crashed {
		return fmt.Errorf("frame loop crashed")
	}

	s := b.Stats()
	log.Info().
		Uint64("frames", s.Frames).
		Uint64("commands", s.Commands).
		Uint64("delivery_failures", s.DeliveryFailures).
		Msg("stopped")
	return nil
}
