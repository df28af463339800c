package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// StatusFile writes a JSON status snapshot for operators and scripts.
type StatusFile struct {
	path string
}

// NewStatusFile creates a writer for path.
func NewStatusFile(path string) *StatusFile {
	return &StatusFile{path: path}
}

// Save replaces the file with v encoded as indented JSON.
// It writes to a temp file and renames it so readers never see a partial file.
func (f *StatusFile) Save(v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create status dir: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal status: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Path returns the full path to the status file.
func (f *StatusFile) Path() string {
	return f.path
}
