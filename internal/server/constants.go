package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

const SecurityAlertFailedAuth = "⚠️ SECURITY ALERT: Repeated failed authentication attempts"

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
	LogMsgRateLimited      = "Request rate limited"
	LogMsgBadTrustedProxy  = "Ignoring invalid trusted proxy entry"
	LogMsgAPIDisabled      = "API key not configured, /api/v1 routes disabled"
)

// HTTP header names
const (
	HeaderAPIKey        = "X-API-Key"
	HeaderAuthorization = "Authorization"
	HeaderForwardedFor  = "X-Forwarded-For"
	HeaderRetryAfter    = "Retry-After"
	HeaderRequestID     = "X-Request-ID"
	BearerPrefix        = "Bearer "
)

// Client limits
const (
	RequestsPerSecond = 5
	RequestBurst      = 20
	RetryAfterSeconds = "1"
	FailedAuthAlertAt = 5
	MaxTrackedClients = 4096
	ClientIdleTTL     = 10 * time.Minute
	ReadHeaderTimeout = 5 * time.Second
	WriteTimeout      = 15 * time.Second
	IdleTimeout       = 60 * time.Second
)

// QuietPaths are served without request logging
var QuietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}

// RedactedValue replaces secret header values in logs
const RedactedValue = "[REDACTED]"
