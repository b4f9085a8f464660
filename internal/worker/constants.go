package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for pool operations
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgWorkerJobPanic  = "Worker job panicked"
	LogMsgQueueFull       = "Worker queue full, job skipped"
	LogMsgPoolStopped     = "Worker pool stopped, job dropped"
	LogMsgJobsDiscarded   = "Worker pool stopped before starting, queued jobs discarded"
)

// ============================================================================
// Log Messages - Boost Expiry Worker
// ============================================================================

// Log messages for the admin boost expiry worker
const (
	LogMsgBoostExpiryScheduled = "Admin boost expiry scheduled"
	LogMsgBoostExpiryRunning   = "Expiring admin boosts"
	LogMsgBoostExpiryFailed    = "Admin boost expiry failed"
	LogMsgBoostExpiryDone      = "Admin boost expiry completed"
	LogMsgBoostExpiryShutdown  = "Shutting down admin boost expiry worker"
)

// ============================================================================
// Log Messages - Presence Job
// ============================================================================

const (
	LogMsgPresenceUpdated = "Presence updated"
)

// ============================================================================
// Errors
// ============================================================================

const (
	ErrMsgSchedulerCreateFailed = "failed to create boost expiry scheduler: %w"
	ErrMsgScheduleJobFailed     = "failed to schedule admin boost expiry: %w"
	ErrMsgPresenceFailed        = "failed to update presence: %w"
)

// ============================================================================
// Job identity
// ============================================================================

// BoostExpiryJobTag tags the single pending admin boost expiry job
const BoostExpiryJobTag = "admin-boost-expiry"
