package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/LuckBot_Go/internal/event"
	"github.com/osse101/LuckBot_Go/internal/metrics"
)

// EventSubscriber is anything that attaches its own handlers to the bus
type EventSubscriber interface {
	Register(bus event.Bus)
}

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus event.Bus
	// Notifier delivers events to the chat platform; nil when it is disabled
	Notifier EventSubscriber
}

// RegisterEventHandlers sets up all event subscribers:
// the metrics collector and, when present, the platform notifier.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.Notifier != nil {
		deps.Notifier.Register(deps.EventBus)
		slog.Info(LogMsgNotifierRegistered)
	}

	return nil
}
