package bootstrap

// =============================================================================
// Session Log Files
// =============================================================================

// Session logs are named session_<timestamp>.log so that a lexical sort is chronological
const (
	DirPermission          = 0o755
	LogFilePermission      = 0o640
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"
	LogFileRetentionCount  = 9 // older files kept next to the new one
)

const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingLuckBot     = "Starting LuckBot"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"

	ErrMsgCreateLogsDirFmt = "failed to create logs directory: %w"
	ErrMsgOpenLogFileFmt   = "failed to open log file: %w"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgDeadLetterBacklog              = "Dead-letter file holds undelivered events from earlier runs"
	LogMsgDeadLetterReadFailed           = "Failed to read dead-letter file"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// =============================================================================
// Catalog and Store
// =============================================================================

const (
	LogMsgCatalogLoaded = "Drop table ready"
	LogMsgStoreLoaded   = "Economy store loaded"

	ErrMsgLoadBaseItemsFmt = "failed to load drop table: %w"
	ErrMsgBuildCatalogFmt  = "failed to build drop table: %w"
	ErrMsgCreateDataDirFmt = "failed to create data directory: %w"
	ErrMsgLoadStoreFmt     = "failed to load economy store: %w"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

// Log messages for event handler registration
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgNotifierRegistered         = "Discord notifier registered"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
)

// =============================================================================
// Startup Jobs
// =============================================================================

const (
	LogMsgBoostExpiryRestored      = "Pending admin boost expiry restored"
	LogMsgBoostExpiryRestoreFailed = "Failed to restore admin boost expiry"
	LogMsgSessionsResumed          = "Auto-roll sessions resumed"
	LogMsgPresenceScheduled        = "Presence refresh scheduled"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDown               = "Shutting down..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgStopped                    = "LuckBot stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgStoreFlushFailed           = "Final store flush failed"
	LogMsgStoreFlushed               = "Economy store flushed"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"

	// Component names for shutdown logging
	ComponentNameAutoRoll    = "autoroll"
	ComponentNameBoostExpiry = "boost expiry worker"
	ComponentNameDiscord     = "discord"

	// LogMsgComponentShutdownFailed is prefixed with the component name
	LogMsgComponentShutdownFailed = " shutdown failed"
)
