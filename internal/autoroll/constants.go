package autoroll

import "time"

// Session defaults
const (
	DefaultDuration       = 6 * time.Hour
	DefaultInterval       = time.Second
	DefaultSaveEveryRolls = 100
	DefaultSaveEvery      = 60 * time.Second
)

// DiscardReasonDeleted is logged when an admin deletes a user with a running session
const DiscardReasonDeleted = "deleted by admin"

// ==================== Error Messages ====================

const (
	ErrMsgNoSessionFmt     = "%w: user %s"
	ErrMsgAlreadyRunFmt    = "%w: user %s"
	ErrMsgPersistFailedFmt = "failed to persist auto-roll session for %s: %w"
	ErrMsgManagerClosed    = "auto-roll manager is shut down"
	ErrMsgPanicFmt         = "auto-roll task panicked: %v"
)

// ==================== Log Messages ====================

const (
	LogMsgSessionStarted   = "Auto-roll session started"
	LogMsgSessionResumed   = "Auto-roll session resumed"
	LogMsgSessionFinished  = "Auto-roll session finished"
	LogMsgSessionDiscarded = "Auto-roll session discarded"
	LogMsgSessionSuspended = "Auto-roll session suspended for shutdown"
	LogMsgExpiredOffline   = "Auto-roll session expired while offline"
	LogMsgSessionError     = "Auto-roll session failed"
	LogMsgCheckpointFailed = "Auto-roll checkpoint failed"
	LogMsgRemoveFailed     = "Failed to remove auto-roll session"
	LogMsgShutdownStarted  = "Stopping auto-roll sessions"
	LogMsgShutdownComplete = "Auto-roll sessions stopped"
	LogMsgShutdownTimeout  = "Timed out waiting for auto-roll sessions"
)
