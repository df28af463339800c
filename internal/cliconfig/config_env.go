package cliconfig

import "os"

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig.
const EnvPrefix = "BALLCHASER_"

// ApplyEnvConfig applies configuration from environment variables (BALLCHASER_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)
	env := func(name string) string { return os.Getenv(EnvPrefix + name) }

	s.setString("source", env("SOURCE"), &cfg.Source)
	s.setString("image-url", env("IMAGE_URL"), &cfg.ImageURL)
	s.setString("image-topic", env("IMAGE_TOPIC"), &cfg.ImageTopic)
	s.setString("frame-dir", env("FRAME_DIR"), &cfg.FrameDir)
	s.setString("drive-url", env("DRIVE_URL"), &cfg.DriveURL)
	s.setString("status-file", env("STATUS_FILE"), &cfg.StatusPath)
	s.setString("log-level", env("LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("drive-timeout", env("DRIVE_TIMEOUT"), &cfg.DriveTimeout); err != nil {
		return err
	}
	if err := s.setDuration("poll", env("POLL_INTERVAL"), &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("status-interval", env("STATUS_INTERVAL"), &cfg.StatusInterval); err != nil {
		return err
	}

	if err := s.setIntFromString("marker", env("MARKER"), &cfg.Marker); err != nil {
		return err
	}

	s.setBoolFromString("dry-run", env("DRY_RUN"), &cfg.DryRun)
	s.setBoolFromString("once", env("ONCE"), &cfg.Once)

	return nil
}
