package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/osse101/LuckBot_Go/internal/logger"
)

// BoostExpirer resets admin boosts whose end time has passed
type BoostExpirer interface {
	ExpireAdminBoosts(ctx context.Context) (int, error)
}

// BoostExpiryWorker runs a one-shot sweep at the admin boost end time.
// Scheduling a new end time replaces the pending sweep.
type BoostExpiryWorker struct {
	expirer BoostExpirer
	sched   gocron.Scheduler

	mu      sync.Mutex
	pending time.Time
}

// NewBoostExpiryWorker creates and starts the worker's scheduler
func NewBoostExpiryWorker(expirer BoostExpirer) (*BoostExpiryWorker, error) {
	sched, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgSchedulerCreateFailed, err)
	}
	sched.Start()
	return &BoostExpiryWorker{
		expirer: expirer,
		sched:   sched,
	}, nil
}

// ScheduleAt queues the expiry sweep for the given time. A time in the past runs immediately.
func (w *BoostExpiryWorker) ScheduleAt(ctx context.Context, at time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.sched.RemoveByTags(BoostExpiryJobTag)

	start := gocron.OneTimeJobStartImmediately()
	if at.After(time.Now()) {
		start = gocron.OneTimeJobStartDateTime(at)
	}
	_, err := w.sched.NewJob(
		gocron.OneTimeJob(start),
		gocron.NewTask(w.run),
		gocron.WithTags(BoostExpiryJobTag),
		gocron.WithName(BoostExpiryJobTag),
	)
	if err != nil {
		return fmt.Errorf(ErrMsgScheduleJobFailed, err)
	}
	w.pending = at

	logger.FromContext(ctx).Info(LogMsgBoostExpiryScheduled, "at", at.UTC())
	return nil
}

// Pending returns the end time of the scheduled sweep, if any
func (w *BoostExpiryWorker) Pending() (time.Time, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending, !w.pending.IsZero()
}

func (w *BoostExpiryWorker) run() {
	ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
	log := logger.FromContext(ctx)
	log.Info(LogMsgBoostExpiryRunning)

	n, err := w.expirer.ExpireAdminBoosts(ctx)
	if err != nil {
		log.Error(LogMsgBoostExpiryFailed, "error", err)
		return
	}

	w.mu.Lock()
	w.pending = time.Time{}
	w.mu.Unlock()
	log.Info(LogMsgBoostExpiryDone, "users", n)
}

// Shutdown stops the scheduler and waits for a running sweep to finish
func (w *BoostExpiryWorker) Shutdown(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgBoostExpiryShutdown)

	done := make(chan error, 1)
	go func() {
		done <- w.sched.Shutdown()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
