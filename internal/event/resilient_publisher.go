package event

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/LuckBot_Go/internal/logger"
)

// RetryPolicy bounds redelivery of events the bus rejected.
// Retry n waits BaseDelay * 2^(n-1).
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// Delay returns the wait before retry n (1-based)
func (p RetryPolicy) Delay(n int) time.Duration {
	if n < 1 {
		n = 1
	}
	return p.BaseDelay << (n - 1)
}

// DefaultRetryPolicy is five retries starting at two seconds
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: RetryMaxAttempts, BaseDelay: RetryInitialDelay}
}

type pending struct {
	evt      Event
	failures int
	due      time.Time
	lastErr  error
}

// ResilientPublisher publishes through a Bus and redelivers failures in the
// background. Events that run out of retries, or arrive while the queue is
// full or the publisher is shut down, go to the dead-letter file.
type ResilientPublisher struct {
	bus    Bus
	policy RetryPolicy
	queue  chan pending
	dead   *DeadLetterWriter

	done     chan struct{}
	closed   atomic.Bool
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewResilientPublisher opens the dead-letter file and starts the retry worker
func NewResilientPublisher(bus Bus, policy RetryPolicy, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	p := &ResilientPublisher{
		bus:    bus,
		policy: policy,
		queue:  make(chan pending, RetryQueueBufferSize),
		dead:   dl,
		done:   make(chan struct{}),
	}
	p.wg.Add(1)
	go p.run()
	return p, nil
}

// PublishWithRetry publishes once synchronously and schedules a retry on failure
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	err := p.bus.Publish(ctx, evt)
	if err == nil {
		return
	}
	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_id", evt.ID, "event_type", evt.Type, "error", err)
	p.schedule(pending{evt: evt, failures: 1, lastErr: err})
}

func (p *ResilientPublisher) schedule(item pending) {
	if item.failures > p.policy.MaxRetries {
		slog.Error(LogMsgEventRetryExhausted, "event_id", item.evt.ID, "event_type", item.evt.Type, "attempts", item.failures)
		p.deadLetter(item)
		return
	}
	if p.closed.Load() {
		slog.Warn(LogMsgEventDroppedShutdown, "event_id", item.evt.ID, "event_type", item.evt.Type)
		p.deadLetter(item)
		return
	}

	item.due = time.Now().Add(p.policy.Delay(item.failures))
	select {
	case p.queue <- item:
	default:
		slog.Error(LogMsgRetryQueueFull, "event_id", item.evt.ID, "event_type", item.evt.Type)
		p.deadLetter(item)
	}
}

func (p *ResilientPublisher) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			p.flush()
			return
		case item := <-p.queue:
			if !p.waitUntil(item.due) {
				p.lastChance(item)
				p.flush()
				return
			}
			p.retry(item)
		}
	}
}

// waitUntil reports false when shutdown interrupts the wait
func (p *ResilientPublisher) waitUntil(due time.Time) bool {
	d := time.Until(due)
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-p.done:
		return false
	}
}

func (p *ResilientPublisher) retry(item pending) {
	err := p.bus.Publish(context.Background(), item.evt)
	if err == nil {
		slog.Info(LogMsgEventRetrySucceeded, "event_id", item.evt.ID, "event_type", item.evt.Type, "retry", item.failures)
		return
	}
	item.failures++
	item.lastErr = err
	slog.Warn(LogMsgEventRetryFailed, "event_id", item.evt.ID, "event_type", item.evt.Type, "failures", item.failures, "error", err)
	p.schedule(item)
}

// lastChance publishes once more during shutdown without waiting for the backoff
func (p *ResilientPublisher) lastChance(item pending) {
	err := p.bus.Publish(context.Background(), item.evt)
	if err == nil {
		return
	}
	item.failures++
	item.lastErr = err
	slog.Warn(LogMsgEventDroppedShutdown, "event_id", item.evt.ID, "event_type", item.evt.Type, "error", err)
	p.deadLetter(item)
}

func (p *ResilientPublisher) flush() {
	n := 0
	for {
		select {
		case item := <-p.queue:
			p.lastChance(item)
			n++
		default:
			if n > 0 {
				slog.Info(LogMsgQueueDrainedShutdown, "count", n)
			}
			return
		}
	}
}

func (p *ResilientPublisher) deadLetter(item pending) {
	if err := p.dead.Write(item.evt, item.failures, item.lastErr); err != nil {
		slog.Error(LogMsgDeadLetterWriteFailed, "event_id", item.evt.ID, "event_type", item.evt.Type, "error", err)
	}
}

// Shutdown gives queued events one final attempt, then closes the dead-letter file.
// Events published afterwards are dead-lettered directly.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	var err error
	p.stopOnce.Do(func() {
		p.closed.Store(true)
		close(p.done)

		finished := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(finished)
		}()

		select {
		case <-finished:
			err = p.dead.Close()
		case <-ctx.Done():
			slog.Warn(LogMsgShutdownTimeout)
			err = ctx.Err()
		}
	})
	return err
}
