package cliconfig

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.Marker != 255 {
		t.Errorf("Marker = %d, want 255", cfg.Marker)
	}
	if cfg.ImageTopic != "/camera/rgb/image_raw" {
		t.Errorf("ImageTopic = %q", cfg.ImageTopic)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"dir source needs dir", func(c *Config) { c.Source = "dir" }, "frame-dir"},
		{"dir source ok", func(c *Config) { c.Source = " DIR "; c.FrameDir = "/frames" }, ""},
		{"unknown source", func(c *Config) { c.Source = "rtsp" }, "unknown source"},
		{"ws needs url", func(c *Config) { c.ImageURL = "" }, "image-url"},
		{"drive url required", func(c *Config) { c.DriveURL = "" }, "drive-url"},
		{"dry run needs no drive url", func(c *Config) { c.DriveURL = ""; c.DryRun = true }, ""},
		{"marker too large", func(c *Config) { c.Marker = 256 }, "marker"},
		{"marker negative", func(c *Config) { c.Marker = -1 }, "marker"},
		{"marker zero ok", func(c *Config) { c.Marker = 0 }, ""},
		{"zero timeout", func(c *Config) { c.DriveTimeout = 0 }, "timeout"},
		{"zero poll", func(c *Config) { c.PollInterval = 0 }, "poll"},
		{"status interval", func(c *Config) { c.StatusPath = "/tmp/s.json"; c.StatusInterval = 0 }, "status interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateNormalizesSource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source = " WS "
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Source != SourceWebsocket {
		t.Errorf("Source = %q, want %q", cfg.Source, SourceWebsocket)
	}
}

func TestConfigSetter_RespectsChanged(t *testing.T) {
	s := newConfigSetter(map[string]bool{"drive-url": true, "marker": true})
	cfg := DefaultConfig()

	s.setString("drive-url", "http://other", &cfg.DriveURL)
	m := 10
	s.setIntPtr("marker", &m, &cfg.Marker)
	if err := s.setDuration("poll", "1s", &cfg.PollInterval); err != nil {
		t.Fatal(err)
	}

	if cfg.DriveURL != DefaultDriveURL {
		t.Errorf("DriveURL = %q, want flag value kept", cfg.DriveURL)
	}
	if cfg.Marker != DefaultMarker {
		t.Errorf("Marker = %d, want flag value kept", cfg.Marker)
	}
	if cfg.PollInterval != time.Second {
		t.Errorf("PollInterval = %v, want 1s", cfg.PollInterval)
	}
}
