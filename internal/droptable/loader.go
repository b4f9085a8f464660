package droptable

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/osse101/LuckBot_Go/internal/utils"
)

// Config is the JSON layout of a base table override file
type Config struct {
	Version     string     `json:"version"`
	Description string     `json:"description"`
	Items       []BaseItem `json:"items"`
}

// LoadBaseItems reads a base table override. A missing file yields the default table.
func LoadBaseItems(path string) ([]BaseItem, error) {
	if path == "" {
		return DefaultBaseItems, nil
	}

	var cfg Config
	if err := utils.LoadJSON(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Info("Drop table override not found, using defaults", "path", path)
			return DefaultBaseItems, nil
		}
		return nil, fmt.Errorf(ErrMsgReadConfigFailed, err)
	}

	if err := Validate(cfg.Items); err != nil {
		return nil, err
	}
	slog.Info("Loaded drop table override", "path", path, "items", len(cfg.Items), "version", cfg.Version)
	return cfg.Items, nil
}
