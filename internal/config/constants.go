package config

import "time"

// Defaults applied when the environment leaves a value unset
const (
	DefaultPort                    = 8080
	DefaultLogLevel                = "info"
	DefaultLogFormat               = "text"
	DefaultLogDir                  = "logs"
	DefaultEnvironment             = "dev"
	DefaultDataDir                 = "data"
	DefaultDeadLetterPath          = "data/deadletter.jsonl"
	DefaultAutoRollDuration        = 6 * time.Hour
	DefaultAutoRollInterval        = time.Second
	DefaultAutoRollSaveEveryRolls  = 100
	DefaultAutoRollSaveEvery       = 60 * time.Second
	DefaultRareNotifyThreshold     = 100_000
	DefaultCommonDenominatorCutoff = 50
	DefaultCommonLuckExponent      = 0.1
	DefaultPresenceInterval        = 20 * time.Second
	DefaultConfirmTimeout          = 10 * time.Second
	DefaultShutdownTimeout         = 30 * time.Second
)

// Environment variable names
const (
	EnvDiscordToken              = "DISCORD_TOKEN"
	EnvDiscordAppID              = "DISCORD_APP_ID"
	EnvDiscordGuildID            = "DISCORD_GUILD_ID"
	EnvDiscordDisabled           = "DISCORD_DISABLED"
	EnvDiscordForceCommandUpdate = "DISCORD_FORCE_COMMAND_UPDATE"
	EnvAdminIDs                  = "ADMIN_IDS"
	EnvDataDir                   = "DATA_DIR"
	EnvDropTablePath             = "DROP_TABLE_PATH"
	EnvDeadLetterPath            = "DEAD_LETTER_PATH"
	EnvAutoRollDuration          = "AUTO_ROLL_DURATION"
	EnvAutoRollInterval          = "AUTO_ROLL_INTERVAL"
	EnvAutoRollSaveEveryRolls    = "AUTO_ROLL_SAVE_EVERY_ROLLS"
	EnvAutoRollSaveEvery         = "AUTO_ROLL_SAVE_EVERY"
	EnvRareNotifyThreshold       = "RARE_NOTIFY_THRESHOLD"
	EnvCommonDenominatorCutoff   = "COMMON_DENOMINATOR_CUTOFF"
	EnvCommonLuckExponent        = "COMMON_LUCK_EXPONENT"
	EnvPresenceInterval          = "PRESENCE_INTERVAL"
	EnvConfirmTimeout            = "CONFIRM_TIMEOUT"
	EnvShutdownTimeout           = "SHUTDOWN_TIMEOUT"
	EnvPort                      = "PORT"
	EnvAPIKey                    = "API_KEY"
	EnvTrustedProxies            = "TRUSTED_PROXIES"
	EnvLogLevel                  = "LOG_LEVEL"
	EnvLogFormat                 = "LOG_FORMAT"
	EnvLogDir                    = "LOG_DIR"
	EnvEnvironment               = "ENVIRONMENT"
)

// ExampleDiscordToken is the placeholder shipped in .env.example
const ExampleDiscordToken = "your_discord_bot_token"

// ==================== Error Messages ====================

const (
	ErrMsgInvalidPortFmt = "invalid PORT value: %w"
	ErrMsgInvalidFmt     = "invalid configuration: %s"
	ErrMsgFieldFmt       = "%s (%s=%s)"
	ErrMsgFieldNoParam   = "%s (%s)"
)

// ==================== Warnings ====================

const (
	WarnMsgNoAdmins       = "ADMIN_IDS is empty - admin commands will be refused for everyone"
	WarnMsgExampleToken   = "DISCORD_TOKEN appears to be the example value - set a real bot token"
	WarnMsgNoAppID        = "DISCORD_APP_ID is not set - slash commands are registered from the session user id"
	WarnMsgDiscordOffline = "DISCORD_DISABLED is set - running without the chat platform"
	WarnMsgNoAPIKey       = "API_KEY is not set - the /api/v1 read endpoints are disabled"
)
