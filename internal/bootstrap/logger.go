package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/LuckBot_Go/internal/config"
	"github.com/osse101/LuckBot_Go/internal/handler"
	"github.com/osse101/LuckBot_Go/internal/logger"
)

// SetupLogger installs the process logger. Output goes to stdout and, when
// cfg.LogDir is set, to a new timestamped session file in that directory.
// Returns the log file handle (caller must close), nil when no file is used.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	logCfg := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.ServiceName,
		handler.CurrentVersion(),
		cfg.Environment,
		cfg.Environment == config.DefaultEnvironment,
	)

	var out io.Writer = os.Stdout
	var logFile *os.File
	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
			return nil, fmt.Errorf(ErrMsgCreateLogsDirFmt, err)
		}
		cleanupLogs(cfg.LogDir, LogFileRetentionCount)

		name := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, time.Now().Format(LogFileTimestampFormat)))
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgOpenLogFileFmt, err)
		}
		logFile = f
		out = io.MultiWriter(os.Stdout, f)
	}

	logger.InitLoggerWithWriter(logCfg, out)

	slog.Info(LogMsgLoggingInitialized, "level", logCfg.LogLevel(), "log_dir", cfg.LogDir)
	slog.Info(LogMsgStartingLuckBot,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"version", logCfg.Version)
	slog.Debug(LogMsgConfigurationLoaded,
		"data_dir", cfg.DataDir,
		"port", cfg.Port,
		"discord_disabled", cfg.DiscordDisabled,
		"admins", len(cfg.AdminIDs),
		"auto_roll_duration", cfg.AutoRollDuration)
	for _, w := range cfg.Warnings() {
		slog.Warn(LogMsgConfigWarning, "detail", w)
	}

	return logFile, nil
}

// cleanupLogs removes old session logs so that at most keep remain
func cleanupLogs(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var logFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			logFiles = append(logFiles, entry.Name())
		}
	}
	if len(logFiles) <= keep {
		return
	}

	// Timestamped names sort oldest first
	sort.Strings(logFiles)
	for _, name := range logFiles[:len(logFiles)-keep] {
		if err := os.Remove(filepath.Join(logDir, name)); err != nil {
			fmt.Fprintf(os.Stderr, "%s %s: %v\n", LogMsgFailedDeleteOldLog, name, err)
		}
	}
}
