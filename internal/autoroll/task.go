package autoroll

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/LuckBot_Go/internal/domain"
	"github.com/osse101/LuckBot_Go/internal/event"
	"github.com/osse101/LuckBot_Go/internal/logger"
	"github.com/osse101/LuckBot_Go/internal/metrics"
)

// launchLocked registers and starts the task for sess. m.mu must be held.
func (m *Manager) launchLocked(sess *domain.AutoRollSession) {
	ctx, cancel := context.WithCancel(logger.WithRequestID(context.Background(), sess.ID))
	t := &task{
		cancel: cancel,
		done:   make(chan struct{}),
		sess:   sess.Clone(),
	}
	m.running[sess.UserID] = t
	metrics.AutoRollSessionsActive.Inc()

	m.wg.Add(1)
	go m.run(ctx, t)
}

func (m *Manager) run(ctx context.Context, t *task) {
	defer m.wg.Done()
	defer close(t.done)
	defer t.cancel()

	reason, err := m.loop(ctx, t)
	m.finish(ctx, t, reason, err)
}

// loop rolls until the session expires, is cancelled or fails.
// A panic inside a roll ends only this session.
func (m *Manager) loop(ctx context.Context, t *task) (reason domain.StopReason, err error) {
	defer func() {
		if r := recover(); r != nil {
			reason = domain.ReasonInternalError
			err = fmt.Errorf(ErrMsgPanicFmt, r)
		}
	}()

	userID := t.snapshot().UserID
	sinceSave := 0
	lastSave := m.clock.Now()

	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for {
		if ctx.Err() != nil {
			return domain.ReasonManualStop, nil
		}

		t.mu.Lock()
		remaining := t.sess.Remaining(m.clock.Now())
		t.mu.Unlock()
		if remaining <= 0 {
			return domain.ReasonTimeExpired, nil
		}

		res, err := m.roller.AutoRoll(ctx, userID)
		if err != nil {
			return domain.ReasonInternalError, err
		}

		t.mu.Lock()
		domain.AddCount(t.sess.FoundItemsLog, res.Item, 1)
		t.sess.RollsPerformed++
		t.mu.Unlock()

		sinceSave++
		if sinceSave >= m.cfg.SaveEveryRolls || m.clock.Since(lastSave) >= m.cfg.SaveEvery {
			m.checkpoint(ctx, t)
			sinceSave = 0
			lastSave = m.clock.Now()
		}

		timer.Reset(m.cfg.Interval)
		select {
		case <-ctx.Done():
			return domain.ReasonManualStop, nil
		case <-timer.C:
		}
	}
}

func (m *Manager) checkpoint(ctx context.Context, t *task) {
	if err := m.repo.Checkpoint(t.snapshot()); err != nil {
		logger.FromContext(ctx).Warn(LogMsgCheckpointFailed, "user_id", t.snapshot().UserID, "error", err)
	}
}

// finish unregisters the task and settles the session according to how it ended
func (m *Manager) finish(ctx context.Context, t *task, reason domain.StopReason, runErr error) {
	log := logger.FromContext(ctx)
	sess := t.snapshot()

	m.mu.Lock()
	if m.running[sess.UserID] == t {
		delete(m.running, sess.UserID)
	}
	m.mu.Unlock()
	metrics.AutoRollSessionsActive.Dec()

	mode := t.currentMode()
	if runErr == nil && reason == domain.ReasonManualStop {
		switch mode {
		case stopShutdown:
			// Keep the durable session so the next start resumes it
			m.checkpoint(ctx, t)
			log.Info(LogMsgSessionSuspended, "user_id", sess.UserID, "rolls", sess.RollsPerformed)
			return
		case stopDiscard:
			if err := m.repo.RemoveSession(sess.UserID); err != nil {
				log.Warn(LogMsgRemoveFailed, "user_id", sess.UserID, "error", err)
			}
			return
		}
	}

	if err := m.repo.RemoveSession(sess.UserID); err != nil {
		log.Warn(LogMsgRemoveFailed, "user_id", sess.UserID, "error", err)
	}

	result := resultOf(sess, reason, runErr)
	t.mu.Lock()
	t.result = result
	t.mu.Unlock()

	if runErr != nil {
		log.Error(LogMsgSessionError, "user_id", sess.UserID, "rolls", sess.RollsPerformed, "error", runErr)
	} else {
		log.Info(LogMsgSessionFinished, "user_id", sess.UserID, "reason", reason, "rolls", sess.RollsPerformed)
	}
	// The task context is already cancelled; delivery must outlive it
	m.publish(context.WithoutCancel(ctx), event.NewAutoRollFinishedEvent(*result))
}
