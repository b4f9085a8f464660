package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Game Metrics
var (
	RollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRollsTotal,
			Help: HelpTextRollsTotal,
		},
		[]string{LabelTier, LabelSource},
	)

	RareDropsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRareDropsTotal,
			Help: HelpTextRareDropsTotal,
		},
		[]string{LabelSource},
	)

	CraftsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCraftsTotal,
			Help: HelpTextCraftsTotal,
		},
		[]string{LabelKind},
	)

	PotionsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePotionsConsumed,
			Help: HelpTextPotionsConsumed,
		},
		[]string{LabelPotion},
	)

	DailyLogins = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDailyLogins,
			Help: HelpTextDailyLogins,
		},
	)

	BoostsExpired = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBoostsExpired,
			Help: HelpTextBoostsExpired,
		},
		[]string{LabelKind},
	)

	AutoRollSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameAutoRollSessionsActive,
			Help: HelpTextAutoRollSessionsActive,
		},
	)

	AutoRollSessionsFinished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAutoRollSessionsEnded,
			Help: HelpTextAutoRollSessionsEnded,
		},
		[]string{LabelReason},
	)
)

// Discord Metrics
var (
	DiscordCommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDiscordCommandsTotal,
			Help: HelpTextDiscordCommandsTotal,
		},
		[]string{LabelCommand},
	)

	DiscordHandlerPanics = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDiscordHandlerPanics,
			Help: HelpTextDiscordHandlerPanics,
		},
		[]string{LabelCommand},
	)

	DiscordDeliveryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDiscordDeliveryFailure,
			Help: HelpTextDiscordDeliveryFailure,
		},
		[]string{LabelType},
	)
)

// Persistence Metrics
var (
	PersistenceWriteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNamePersistenceWriteDuration,
			Help:    HelpTextPersistenceWriteDuration,
			Buckets: PersistenceLatencyBuckets,
		},
		[]string{LabelDocument},
	)

	PersistenceWriteErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePersistenceWriteErrors,
			Help: HelpTextPersistenceWriteErrors,
		},
		[]string{LabelDocument},
	)

	DocumentsQuarantined = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDocumentsQuarantined,
			Help: HelpTextDocumentsQuarantined,
		},
		[]string{LabelDocument},
	)
)
