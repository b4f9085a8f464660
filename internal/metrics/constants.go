package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Game metric names
const (
	MetricNameRollsTotal             = "rolls_total"
	MetricNameRareDropsTotal         = "rare_drops_total"
	MetricNameCraftsTotal            = "crafts_total"
	MetricNamePotionsConsumed        = "potions_consumed_total"
	MetricNameDailyLogins            = "daily_logins_total"
	MetricNameBoostsExpired          = "boosts_expired_total"
	MetricNameAutoRollSessionsActive = "autoroll_sessions_active"
	MetricNameAutoRollSessionsEnded  = "autoroll_sessions_finished_total"
)

// Discord metric names
const (
	MetricNameDiscordCommandsTotal   = "discord_commands_total"
	MetricNameDiscordDeliveryFailure = "discord_delivery_failures_total"
	MetricNameDiscordHandlerPanics   = "discord_handler_panics_total"
)

// Persistence metric names
const (
	MetricNamePersistenceWriteDuration = "persistence_write_duration_seconds"
	MetricNamePersistenceWriteErrors   = "persistence_write_errors_total"
	MetricNameDocumentsQuarantined     = "persistence_documents_quarantined_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Game metric help text
const (
	HelpTextRollsTotal             = "Total number of rolls performed"
	HelpTextRareDropsTotal         = "Total number of drops at or above the notify threshold"
	HelpTextCraftsTotal            = "Total number of items and potions crafted"
	HelpTextPotionsConsumed        = "Total number of queued luck potions applied to rolls"
	HelpTextDailyLogins            = "Total number of daily login claims"
	HelpTextBoostsExpired          = "Total number of boosts reset to neutral"
	HelpTextAutoRollSessionsActive = "Current number of running auto-roll sessions"
	HelpTextAutoRollSessionsEnded  = "Total number of auto-roll sessions that ended"
)

// Discord metric help text
const (
	HelpTextDiscordCommandsTotal   = "Total number of slash commands and component interactions handled"
	HelpTextDiscordDeliveryFailure = "Total number of notifications that could not be delivered"
	HelpTextDiscordHandlerPanics   = "Total number of interaction handlers that panicked"
)

// Persistence metric help text
const (
	HelpTextPersistenceWriteDuration = "Time spent writing a JSON document in seconds"
	HelpTextPersistenceWriteErrors   = "Total number of failed document writes"
	HelpTextDocumentsQuarantined     = "Total number of corrupt documents renamed aside on load"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelTier     = "tier"
	LabelSource   = "source"
	LabelKind     = "kind"
	LabelPotion   = "potion"
	LabelReason   = "reason"
	LabelDocument = "document"
	LabelCommand  = "command"
)

// UnmatchedRouteLabel is the path label for requests no route matched
const UnmatchedRouteLabel = "unmatched"

// Craft kinds
const (
	CraftKindItem   = "item"
	CraftKindPotion = "potion"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// PersistenceLatencyBuckets covers fsync-bound JSON writes from 100µs to 2.5s
var PersistenceLatencyBuckets = []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, 1, 2.5}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Failed to decode event payload for metrics"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
