package metrics

import (
	"context"

	"github.com/osse101/LuckBot_Go/internal/event"
	"github.com/osse101/LuckBot_Go/internal/logger"
)

// recorder updates the counters specific to one event type
type recorder func(evt event.Event) error

// observe decodes the payload before handing it to fn
func observe[T any](fn func(T)) recorder {
	return func(evt event.Event) error {
		p, err := event.DecodePayload[T](evt.Payload)
		if err != nil {
			return err
		}
		fn(p)
		return nil
	}
}

// EventMetricsCollector turns engine events into Prometheus counters
type EventMetricsCollector struct {
	recorders map[event.Type]recorder
}

// NewEventMetricsCollector creates a collector for every engine event type
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{recorders: map[event.Type]recorder{
		event.RareItemDropped: func(evt event.Event) error {
			RareDropsTotal.WithLabelValues(evt.Source).Inc()
			return nil
		},
		event.AutoRollFinished: observe(func(p event.AutoRollFinishedPayloadV1) {
			AutoRollSessionsFinished.WithLabelValues(p.Reason).Inc()
		}),
		event.BoostExpired: observe(func(p event.BoostExpiredPayloadV1) {
			BoostsExpired.WithLabelValues(string(p.Kind)).Inc()
		}),
		event.PotionConsumed: observe(func(p event.PotionConsumedPayloadV1) {
			PotionsConsumed.WithLabelValues(p.PotionID).Inc()
		}),
		event.AutoRollResumed: nil,
	}}
}

// Register subscribes the collector to each type it records
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for t := range e.recorders {
		bus.Subscribe(t, e.HandleEvent)
	}
	return nil
}

// HandleEvent counts the event. A payload that cannot be decoded is logged and skipped.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	log := logger.FromContext(ctx)
	if rec := e.recorders[evt.Type]; rec != nil {
		if err := rec(evt); err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
	}
	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
