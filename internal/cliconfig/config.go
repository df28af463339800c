package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Frame source kinds.
const (
	SourceWebsocket = "ws"
	SourceDir       = "dir"
)

// Defaults for a local simulated robot.
const (
	DefaultImageURL   = "ws://localhost:9090"
	DefaultImageTopic = "/camera/rgb/image_raw"
	DefaultDriveURL   = "http://localhost:8000/ball_chaser/command_robot"
	DefaultMarker     = 255
)

// Config holds CLI configuration for ballchaser.
type Config struct {
	Source     string
	ImageURL   string
	ImageTopic string
	FrameDir   string

	DriveURL     string
	DriveTimeout time.Duration
	DryRun       bool

	Marker int

	PollInterval   time.Duration
	StatusPath     string
	StatusInterval time.Duration
	LogLevel       string
	Once           bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Source:         SourceWebsocket,
		ImageURL:       DefaultImageURL,
		ImageTopic:     DefaultImageTopic,
		DriveURL:       DefaultDriveURL,
		DriveTimeout:   2 * time.Second,
		Marker:         DefaultMarker,
		PollInterval:   200 * time.Millisecond,
		StatusInterval: 5 * time.Second,
		LogLevel:       "info",
	}
}

// Validate checks the configuration for errors and normalizes values.
func (c *Config) Validate() error {
	c.Source = strings.ToLower(strings.TrimSpace(c.Source))
	switch c.Source {
	case SourceWebsocket:
		if c.ImageURL == "" {
			return fmt.Errorf("image-url is required for source %q", c.Source)
		}
	case SourceDir:
		if c.FrameDir == "" {
			return fmt.Errorf("frame-dir is required for source %q", c.Source)
		}
	default:
		return fmt.Errorf("unknown source %q (want %q or %q)", c.Source, SourceWebsocket, SourceDir)
	}

	if !c.DryRun && c.DriveURL == "" {
		return fmt.Errorf("drive-url is required unless dry-run is set")
	}
	if c.DriveTimeout <= 0 {
		return fmt.Errorf("drive timeout must be positive")
	}
	if c.Marker < 0 || c.Marker > 255 {
		return fmt.Errorf("marker must be within 0-255, got %d", c.Marker)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if c.StatusPath != "" && c.StatusInterval <= 0 {
		return fmt.Errorf("status interval must be positive")
	}
	return nil
}

// configSetter applies values from a lower-precedence layer, skipping any
// setting whose flag was explicitly changed on the command line.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setIntPtr sets an int from an optional value; zero is a legal setting.
func (s *configSetter) setIntPtr(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses an environment string to int; zero is a legal setting.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

// setBoolFromString parses an environment string; "true" and "1" are true.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
