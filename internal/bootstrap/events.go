package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/LuckBot_Go/internal/config"
	"github.com/osse101/LuckBot_Go/internal/event"
)

// InitializeEventSystem creates the event bus and the resilient publisher the
// engine publishes through. Events that still fail after the retries are
// appended to the dead-letter file at cfg.DeadLetterPath.
func InitializeEventSystem(cfg *config.Config) (*event.MemoryBus, *event.ResilientPublisher, error) {
	eventBus := event.NewMemoryBus()

	if err := os.MkdirAll(filepath.Dir(cfg.DeadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}
	reportDeadLetters(cfg.DeadLetterPath)

	policy := event.DefaultRetryPolicy()
	resilientPublisher, err := event.NewResilientPublisher(eventBus, policy, cfg.DeadLetterPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", policy.MaxRetries,
		"retry_delay", policy.BaseDelay,
		"deadletter_path", cfg.DeadLetterPath)

	return eventBus, resilientPublisher, nil
}

// reportDeadLetters warns about events earlier runs could not deliver.
// They are left in place for an operator to inspect.
func reportDeadLetters(path string) {
	entries, skipped, err := event.ReadDeadLetters(path)
	if err != nil {
		slog.Warn(LogMsgDeadLetterReadFailed, "path", path, "error", err)
		return
	}
	if len(entries) == 0 && skipped == 0 {
		return
	}
	byType := make(map[event.Type]int)
	for _, e := range entries {
		byType[e.Event.Type]++
	}
	slog.Warn(LogMsgDeadLetterBacklog, "path", path, "count", len(entries), "unreadable", skipped, "by_type", byType)
}
