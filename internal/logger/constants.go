package logger

// ServiceName is the default service attribute
const ServiceName = "luck-bot"

// Formats
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Attribute keys
const (
	ContextKeyRequestID = "request_id"
	ContextKeyUserID    = "user_id"

	AttrService     = "service"
	AttrVersion     = "version"
	AttrEnvironment = "environment"
)
