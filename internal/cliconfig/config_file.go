package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
// Pointer fields distinguish "unset" from a zero value.
type FileConfig struct {
	Source         string `toml:"source"`
	ImageURL       string `toml:"image_url"`
	ImageTopic     string `toml:"image_topic"`
	FrameDir       string `toml:"frame_dir"`
	DriveURL       string `toml:"drive_url"`
	DriveTimeout   string `toml:"drive_timeout"`
	DryRun         *bool  `toml:"dry_run"`
	Marker         *int   `toml:"marker"`
	PollInterval   string `toml:"poll_interval"`
	StatusPath     string `toml:"status_path"`
	StatusInterval string `toml:"status_interval"`
	LogLevel       string `toml:"log_level"`
	Once           *bool  `toml:"once"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.ballchaser/config.toml, or "" if the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".ballchaser", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("source", fc.Source, &cfg.Source)
	s.setString("image-url", fc.ImageURL, &cfg.ImageURL)
	s.setString("image-topic", fc.ImageTopic, &cfg.ImageTopic)
	s.setString("frame-dir", fc.FrameDir, &cfg.FrameDir)
	s.setString("drive-url", fc.DriveURL, &cfg.DriveURL)
	s.setString("status-file", fc.StatusPath, &cfg.StatusPath)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("drive-timeout", fc.DriveTimeout, &cfg.DriveTimeout); err != nil {
		return err
	}
	if err := s.setDuration("poll", fc.PollInterval, &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("status-interval", fc.StatusInterval, &cfg.StatusInterval); err != nil {
		return err
	}

	s.setIntPtr("marker", fc.Marker, &cfg.Marker)

	s.setBool("dry-run", fc.DryRun, &cfg.DryRun)
	s.setBool("once", fc.Once, &cfg.Once)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
