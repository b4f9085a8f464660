package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrInvalidJSON is returned by LoadJSON when the file exists but cannot be decoded
var ErrInvalidJSON = errors.New("invalid JSON document")

// LoadJSON reads a JSON file and unmarshals it into the target interface.
// A decode failure wraps ErrInvalidJSON; a missing file wraps fs.ErrNotExist.
func LoadJSON(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: failed to unmarshal JSON from %s: %v", ErrInvalidJSON, path, err)
	}
	return nil
}

// SaveJSON marshals the data and replaces the file atomically.
// The document is written to a temp file in the same directory and renamed over the target,
// so a crash mid-write never leaves a truncated file behind.
func SaveJSON(path string, data interface{}) error {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(bytes); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
