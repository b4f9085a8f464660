package logger

import (
	"log/slog"
	"strings"
)

// Config selects the handler and the attributes stamped on every record
type Config struct {
	Level       string // debug, info, warn, error
	Format      string // json or text
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// NewConfig builds a Config from the application settings
func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	if serviceName == "" {
		serviceName = ServiceName
	}
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   addSource,
	}
}

// LogLevel maps Level to a slog level. Unknown names log at info.
func (c Config) LogLevel() slog.Level {
	var lvl slog.Level
	name := strings.ToLower(strings.TrimSpace(c.Level))
	if name == "warning" {
		name = "warn"
	}
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// IsJSON reports whether records are written as JSON
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, FormatJSON)
}

func (c Config) baseAttrs() []slog.Attr {
	attrs := []slog.Attr{slog.String(AttrService, c.ServiceName)}
	if c.Version != "" {
		attrs = append(attrs, slog.String(AttrVersion, c.Version))
	}
	if c.Environment != "" {
		attrs = append(attrs, slog.String(AttrEnvironment, c.Environment))
	}
	return attrs
}
