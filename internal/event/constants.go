package event

import "time"

// Schema versions
const (
	EventSchemaVersion      = "1.0"
	DeadLetterSchemaVersion = "1.0"
)

// Retry configuration
const (
	RetryQueueBufferSize = 1000
	RetryMaxAttempts     = 5
	RetryInitialDelay    = 2 * time.Second
)

// Dead letter file configuration
const (
	DeadLetterFilePermissions = 0600
	// DeadLetterMaxLineBytes caps one entry when reading the file back
	DeadLetterMaxLineBytes = 1 << 20
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event sent to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventDeadLettered     = "Event dead-lettered"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgEventDroppedShutdown  = "Event undeliverable during shutdown"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgHandlersFailedFmt = "%d handler(s) failed for event %s: %w"
	ErrMsgNilPayloadFmt     = "event payload is nil, want %T"
	ErrMsgDecodePayloadFmt  = "decode event payload as %T: %w"
)
