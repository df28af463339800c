package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndApplyFileConfig(t *testing.T) {
	path := writeConfig(t, `
source = "dir"
frame_dir = "/var/frames"
drive_url = "http://robot:8000/drive"
drive_timeout = "500ms"
marker = 0
poll_interval = "1s"
status_path = "/run/ballchaser/status.json"
dry_run = true
once = true
log_level = "debug"
`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err != nil {
		t.Fatalf("ApplyFileConfig() error = %v", err)
	}

	if cfg.Source != "dir" || cfg.FrameDir != "/var/frames" {
		t.Errorf("source = %q dir = %q", cfg.Source, cfg.FrameDir)
	}
	if cfg.DriveURL != "http://robot:8000/drive" || cfg.DriveTimeout != 500*time.Millisecond {
		t.Errorf("drive = %q %v", cfg.DriveURL, cfg.DriveTimeout)
	}
	if cfg.Marker != 0 {
		t.Errorf("Marker = %d, want 0 from file", cfg.Marker)
	}
	if cfg.PollInterval != time.Second {
		t.Errorf("PollInterval = %v", cfg.PollInterval)
	}
	if !cfg.DryRun || !cfg.Once {
		t.Errorf("DryRun = %v Once = %v, want true", cfg.DryRun, cfg.Once)
	}
	if cfg.LogLevel != "debug" || cfg.StatusPath != "/run/ballchaser/status.json" {
		t.Errorf("LogLevel = %q StatusPath = %q", cfg.LogLevel, cfg.StatusPath)
	}
	// Unset keys keep defaults.
	if cfg.ImageTopic != DefaultImageTopic {
		t.Errorf("ImageTopic = %q, want default", cfg.ImageTopic)
	}
}

func TestApplyFileConfig_FlagsWin(t *testing.T) {
	fc, err := LoadFileConfig(writeConfig(t, "marker = 200\nsource = \"dir\"\n"))
	if err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Marker = 128
	if err := ApplyFileConfig(&cfg, fc, map[string]bool{"marker": true}); err != nil {
		t.Fatal(err)
	}
	if cfg.Marker != 128 {
		t.Errorf("Marker = %d, want flag value 128", cfg.Marker)
	}
	if cfg.Source != "dir" {
		t.Errorf("Source = %q, want dir from file", cfg.Source)
	}
}

func TestApplyFileConfig_BadDuration(t *testing.T) {
	fc, err := LoadFileConfig(writeConfig(t, `poll_interval = "soon"`))
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err == nil {
		t.Error("ApplyFileConfig() error = nil, want parse error")
	}
}

func TestLoadFileConfig_Errors(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadFileConfig(missing) error = nil")
	}
	if _, err := LoadFileConfig(writeConfig(t, "marker = [")); err == nil {
		t.Error("LoadFileConfig(invalid) error = nil")
	}
}

func TestFileExists(t *testing.T) {
	path := writeConfig(t, "")
	if !FileExists(path) {
		t.Error("FileExists() = false for existing file")
	}
	if FileExists(path + ".nope") {
		t.Error("FileExists() = true for missing file")
	}
}
