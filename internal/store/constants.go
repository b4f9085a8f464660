package store

import "errors"

// Default document file names inside the data directory
const (
	UsersFileName    = "user_data.json"
	SettingsFileName = "bot_settings.json"
	SessionsFileName = "auto_rng_sessions.json"
)

// QuarantineTimeLayout is appended to a corrupt file's name as ".bak.<timestamp>"
const QuarantineTimeLayout = "20060102150405"

// Document labels used in logs and metrics
const (
	DocUsers    = "users"
	DocSettings = "settings"
	DocSessions = "sessions"
)

// Log messages
const (
	LogMsgDocumentQuarantined = "Corrupt document quarantined, starting empty"
	LogMsgDocumentMissing     = "Document not found, starting empty"
	LogMsgDocumentLoaded      = "Document loaded"
	LogMsgRecordsMigrated     = "Migrated user records to current schema"
	LogMsgSaveFailed          = "Failed to save document"
	LogMsgFlushed             = "Store flushed"
)

// Error messages
const (
	ErrMsgLoadFailed       = "failed to load %s: %w"
	ErrMsgSaveFailed       = "failed to save %s: %w"
	ErrMsgQuarantineFailed = "failed to quarantine %s: %w"
	ErrMsgCreateDirFailed  = "failed to create data directory: %w"
	ErrMsgHealthFmt        = "data directory %s unavailable: %w"
)

// ErrNotDirectory is reported when the data path exists but is a file
var ErrNotDirectory = errors.New("not a directory")
