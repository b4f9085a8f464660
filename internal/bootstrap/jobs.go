package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/osse101/LuckBot_Go/internal/scheduler"
	"github.com/osse101/LuckBot_Go/internal/worker"
)

// BoostEndSource reports the admin boost end time still recorded on users
type BoostEndSource interface {
	AdminBoostEnd() (time.Time, bool)
}

// ExpiryScheduler arranges the one-shot admin boost sweep
type ExpiryScheduler interface {
	ScheduleAt(ctx context.Context, at time.Time) error
}

// RestoreBoostExpiry re-arms the admin boost sweep lost with the previous
// process. A boost that ended while the bot was down is swept right away.
func RestoreBoostExpiry(ctx context.Context, src BoostEndSource, sched ExpiryScheduler) {
	end, ok := src.AdminBoostEnd()
	if !ok {
		return
	}
	if err := sched.ScheduleAt(ctx, end); err != nil {
		slog.Warn(LogMsgBoostExpiryRestoreFailed, "ends_at", end, "error", err)
		return
	}
	slog.Info(LogMsgBoostExpiryRestored, "ends_at", end)
}

// SessionResumer reschedules auto-roll sessions saved before the last shutdown
type SessionResumer interface {
	Resume(ctx context.Context) (resumed, expired int)
}

// ResumeSessions restarts saved auto-roll sessions
func ResumeSessions(ctx context.Context, r SessionResumer) {
	resumed, expired := r.Resume(ctx)
	slog.Info(LogMsgSessionsResumed, "resumed", resumed, "expired", expired)
}

// SchedulePresence refreshes the bot activity with the total roll count every interval
func SchedulePresence(s *scheduler.Scheduler, interval time.Duration, counter worker.RollCounter, setter worker.PresenceSetter) {
	s.ScheduleNow(interval, worker.NewPresenceJob(counter, setter))
	slog.Info(LogMsgPresenceScheduled, "interval", interval)
}
