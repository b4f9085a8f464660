package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgMissingPathParam = "Missing %s path parameter"
	ErrMsgGetStatusFailed  = "Failed to retrieve status"
	ErrMsgGetItemsFailed   = "Failed to retrieve item list"
)

// User-facing messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgUserNotFoundError   = "User not found"
	ErrMsgRecipeNotFoundError = "Recipe not found"
	ErrMsgNoSessionError      = "No auto-roll session running"
	ErrMsgInvalidInputError   = "Invalid request. Please check your inputs."
	ErrMsgUnavailableError    = "Server is temporarily unavailable. Please try again later."
)

// Log messages
const (
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
	LogMsgReadinessFailed = "Readiness check failed"
	LogMsgStatusRequested = "Status requested"
)

// Health statuses
const (
	EnvVersion     = "VERSION"
	DefaultVersion = "dev"
)

const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
)
