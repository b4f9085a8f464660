package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port           int      `validate:"min=1,max=65535"`
	APIKey         string   // enables the /api/v1 read endpoints when set
	TrustedProxies []string `validate:"dive,ip"`
	LogLevel       string   `validate:"oneof=debug info warn error"`
	LogFormat      string   `validate:"oneof=text json"`
	LogDir         string   // session log files are also written here when set
	Environment    string   `validate:"required"`

	DiscordToken    string `validate:"required_unless=DiscordDisabled true"`
	DiscordAppID    string
	DiscordGuildID  string // register commands to one guild instead of globally
	DiscordDisabled bool
	// DiscordForceCommandUpdate overwrites slash commands even when they look unchanged
	DiscordForceCommandUpdate bool
	AdminIDs                  []string `validate:"dive,required,numeric"`

	DataDir        string `validate:"required"`
	DropTablePath  string
	DeadLetterPath string `validate:"required"`

	AutoRollDuration       time.Duration `validate:"gt=0"`
	AutoRollInterval       time.Duration `validate:"gt=0"`
	AutoRollSaveEveryRolls int           `validate:"gt=0"`
	AutoRollSaveEvery      time.Duration `validate:"gt=0"`

	RareNotifyThreshold     int64   `validate:"gt=0"`
	CommonDenominatorCutoff int64   `validate:"gte=0"`
	CommonLuckExponent      float64 `validate:"gt=0,lte=1"`

	PresenceInterval time.Duration `validate:"gt=0"`
	ConfirmTimeout   time.Duration `validate:"gt=0"`
	ShutdownTimeout  time.Duration `validate:"gt=0"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:         getEnv(EnvAPIKey, ""),
		TrustedProxies: getEnvAsList(EnvTrustedProxies),

		LogLevel:    strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		LogDir:      getEnv(EnvLogDir, DefaultLogDir),
		Environment: getEnv(EnvEnvironment, DefaultEnvironment),

		DiscordToken:              getEnv(EnvDiscordToken, ""),
		DiscordAppID:              getEnv(EnvDiscordAppID, ""),
		DiscordGuildID:            getEnv(EnvDiscordGuildID, ""),
		DiscordDisabled:           getEnvAsBool(EnvDiscordDisabled, false),
		DiscordForceCommandUpdate: getEnvAsBool(EnvDiscordForceCommandUpdate, false),
		AdminIDs:                  getEnvAsList(EnvAdminIDs),

		DataDir:        getEnv(EnvDataDir, DefaultDataDir),
		DropTablePath:  getEnv(EnvDropTablePath, ""),
		DeadLetterPath: getEnv(EnvDeadLetterPath, DefaultDeadLetterPath),

		AutoRollDuration:       getEnvAsDuration(EnvAutoRollDuration, DefaultAutoRollDuration),
		AutoRollInterval:       getEnvAsDuration(EnvAutoRollInterval, DefaultAutoRollInterval),
		AutoRollSaveEveryRolls: getEnvAsInt(EnvAutoRollSaveEveryRolls, DefaultAutoRollSaveEveryRolls),
		AutoRollSaveEvery:      getEnvAsDuration(EnvAutoRollSaveEvery, DefaultAutoRollSaveEvery),

		RareNotifyThreshold:     getEnvAsInt64(EnvRareNotifyThreshold, DefaultRareNotifyThreshold),
		CommonDenominatorCutoff: getEnvAsInt64(EnvCommonDenominatorCutoff, DefaultCommonDenominatorCutoff),
		CommonLuckExponent:      getEnvAsFloat(EnvCommonLuckExponent, DefaultCommonLuckExponent),

		PresenceInterval: getEnvAsDuration(EnvPresenceInterval, DefaultPresenceInterval),
		ConfirmTimeout:   getEnvAsDuration(EnvConfirmTimeout, DefaultConfirmTimeout),
		ShutdownTimeout:  getEnvAsDuration(EnvShutdownTimeout, DefaultShutdownTimeout),
	}

	port, err := strconv.Atoi(getEnv(EnvPort, strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgInvalidPortFmt, err)
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	v, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsDuration parses Go duration syntax ("90s", "6h"); bare numbers fall back to the default
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsList splits a comma separated value, dropping blanks
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
