package autoroll

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/LuckBot_Go/internal/clock"
	"github.com/osse101/LuckBot_Go/internal/domain"
	"github.com/osse101/LuckBot_Go/internal/economy"
	"github.com/osse101/LuckBot_Go/internal/event"
	"github.com/osse101/LuckBot_Go/internal/logger"
)

// ErrManagerClosed is returned by Start after Shutdown
var ErrManagerClosed = errors.New(ErrMsgManagerClosed)

// Roller performs one buffered roll on a user's behalf
type Roller interface {
	AutoRoll(ctx context.Context, userID string) (*economy.RollResult, error)
}

// Repository persists durable session state
type Repository interface {
	Sessions() []*domain.AutoRollSession
	PutSession(sess *domain.AutoRollSession) error
	Checkpoint(sess *domain.AutoRollSession) error
	RemoveSession(userID string) error
	SaveUsers() error
}

// Config controls session length, cadence and checkpoint throttling
type Config struct {
	Duration       time.Duration
	Interval       time.Duration
	SaveEveryRolls int
	SaveEvery      time.Duration
}

// DefaultConfig returns the shipped session settings
func DefaultConfig() Config {
	return Config{
		Duration:       DefaultDuration,
		Interval:       DefaultInterval,
		SaveEveryRolls: DefaultSaveEveryRolls,
		SaveEvery:      DefaultSaveEvery,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Duration <= 0 {
		c.Duration = d.Duration
	}
	if c.Interval <= 0 {
		c.Interval = d.Interval
	}
	if c.SaveEveryRolls <= 0 {
		c.SaveEveryRolls = d.SaveEveryRolls
	}
	if c.SaveEvery <= 0 {
		c.SaveEvery = d.SaveEvery
	}
	return c
}

// stopMode records why a task's context was cancelled
type stopMode int

const (
	stopNone stopMode = iota
	stopManual
	stopDiscard
	stopShutdown
)

// task is the live execution handle of one session. It is never persisted.
type task struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	sess   *domain.AutoRollSession
	mode   stopMode
	result *domain.AutoRollResult
}

func (t *task) snapshot() *domain.AutoRollSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sess.Clone()
}

func (t *task) stop(mode stopMode) {
	t.mu.Lock()
	if t.mode == stopNone {
		t.mode = mode
	}
	t.mu.Unlock()
	t.cancel()
}

func (t *task) currentMode() stopMode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// Manager runs at most one auto-roll session per user
type Manager struct {
	repo      Repository
	roller    Roller
	publisher event.Publisher
	clock     clock.Clock
	cfg       Config

	mu      sync.Mutex
	running map[string]*task
	closed  bool
	wg      sync.WaitGroup
}

// Option configures a Manager
type Option func(*Manager)

// WithClock overrides the clock used for elapsed-time checks
func WithClock(c clock.Clock) Option {
	return func(m *Manager) {
		m.clock = c
	}
}

// NewManager creates a session manager. Call Resume once after the store is loaded.
func NewManager(repo Repository, roller Roller, publisher event.Publisher, cfg Config, opts ...Option) *Manager {
	m := &Manager{
		repo:      repo,
		roller:    roller,
		publisher: publisher,
		clock:     clock.NewReal(),
		cfg:       cfg.withDefaults(),
		running:   make(map[string]*task),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start begins a new session for the user
func (m *Manager) Start(ctx context.Context, userID string) (*domain.SessionInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrManagerClosed
	}
	if _, ok := m.running[userID]; ok {
		return nil, fmt.Errorf(ErrMsgAlreadyRunFmt, domain.ErrSessionAlreadyRunning, userID)
	}

	sess := &domain.AutoRollSession{
		ID:                 uuid.New().String(),
		UserID:             userID,
		FoundItemsLog:      make(map[string]int),
		StartTime:          m.clock.Now(),
		MaxDurationSeconds: int(m.cfg.Duration / time.Second),
	}
	if err := m.repo.PutSession(sess); err != nil {
		return nil, fmt.Errorf(ErrMsgPersistFailedFmt, userID, err)
	}

	m.launchLocked(sess)
	logger.FromContext(ctx).Info(LogMsgSessionStarted, "user_id", userID, "session_id", sess.ID, "duration", m.cfg.Duration)
	return m.info(sess), nil
}

// Stop cancels the user's session and waits for it to report its results.
// If the session ends without results because it was discarded or suspended,
// Stop fails with domain.ErrSessionNotFound.
func (m *Manager) Stop(ctx context.Context, userID string) (*domain.AutoRollResult, error) {
	t, err := m.lookup(userID)
	if err != nil {
		return nil, err
	}
	t.stop(stopManual)

	select {
	case <-t.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	t.mu.Lock()
	res := t.result
	t.mu.Unlock()
	if res == nil {
		// An admin discard or shutdown got there first; nothing is reported
		return nil, fmt.Errorf(ErrMsgNoSessionFmt, domain.ErrSessionNotFound, userID)
	}
	return res, nil
}

// Discard stops the user's session without reporting results and removes it from storage.
// It returns after the task has exited, so no roll can land afterwards.
func (m *Manager) Discard(ctx context.Context, userID string) bool {
	t, err := m.lookup(userID)
	if err != nil {
		if rmErr := m.repo.RemoveSession(userID); rmErr != nil {
			logger.FromContext(ctx).Warn(LogMsgRemoveFailed, "user_id", userID, "error", rmErr)
		}
		return false
	}
	t.stop(stopDiscard)
	<-t.done
	logger.FromContext(ctx).Info(LogMsgSessionDiscarded, "user_id", userID, "reason", DiscardReasonDeleted)
	return true
}

// DiscardAll discards every running session and returns how many there were
func (m *Manager) DiscardAll(ctx context.Context) int {
	tasks := m.snapshotTasks()
	for _, t := range tasks {
		t.stop(stopDiscard)
	}
	for _, t := range tasks {
		<-t.done
	}
	return len(tasks)
}

// Remaining returns the time left on the user's session
func (m *Manager) Remaining(userID string) (time.Duration, error) {
	t, err := m.lookup(userID)
	if err != nil {
		return 0, err
	}
	sess := t.snapshot()
	remaining := sess.Remaining(m.clock.Now())
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// IsRunning reports whether the user has a live session
func (m *Manager) IsRunning(userID string) bool {
	_, err := m.lookup(userID)
	return err == nil
}

// List returns every running session ordered by user id
func (m *Manager) List() []domain.SessionInfo {
	tasks := m.snapshotTasks()
	out := make([]domain.SessionInfo, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, *m.info(t.snapshot()))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// Resume reschedules sessions saved before the last shutdown. Sessions whose
// duration elapsed while the process was down are discarded and reported.
func (m *Manager) Resume(ctx context.Context) (resumed, expired int) {
	log := logger.FromContext(ctx)
	now := m.clock.Now()

	for _, sess := range m.repo.Sessions() {
		remaining := sess.Remaining(now)
		if remaining <= 0 {
			if err := m.repo.RemoveSession(sess.UserID); err != nil {
				log.Warn(LogMsgRemoveFailed, "user_id", sess.UserID, "error", err)
			}
			result := resultOf(sess, domain.ReasonExpiredOffline, nil)
			m.publish(ctx, event.NewAutoRollFinishedEvent(*result))
			log.Info(LogMsgExpiredOffline, "user_id", sess.UserID, "session_id", sess.ID, "rolls", sess.RollsPerformed)
			expired++
			continue
		}

		if sess.ID == "" {
			sess.ID = uuid.New().String()
		}
		m.mu.Lock()
		_, running := m.running[sess.UserID]
		if !running && !m.closed {
			m.launchLocked(sess)
		}
		m.mu.Unlock()
		if running {
			continue
		}

		m.publish(ctx, event.NewAutoRollResumedEvent(sess.UserID, sess.ID, remaining))
		log.Info(LogMsgSessionResumed, "user_id", sess.UserID, "session_id", sess.ID, "remaining", remaining)
		resumed++
	}
	return resumed, expired
}

// Shutdown suspends every session so it can be resumed on the next start,
// then flushes buffered user changes
func (m *Manager) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)

	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	tasks := m.snapshotTasks()
	log.Info(LogMsgShutdownStarted, "sessions", len(tasks))
	for _, t := range tasks {
		t.stop(stopShutdown)
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	var waitErr error
	select {
	case <-done:
		log.Info(LogMsgShutdownComplete)
	case <-ctx.Done():
		log.Warn(LogMsgShutdownTimeout)
		waitErr = ctx.Err()
	}
	return errors.Join(waitErr, m.repo.SaveUsers())
}

func (m *Manager) lookup(userID string) (*task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.running[userID]
	if !ok {
		return nil, fmt.Errorf(ErrMsgNoSessionFmt, domain.ErrSessionNotFound, userID)
	}
	return t, nil
}

func (m *Manager) snapshotTasks() []*task {
	m.mu.Lock()
	defer m.mu.Unlock()
	tasks := make([]*task, 0, len(m.running))
	for _, t := range m.running {
		tasks = append(tasks, t)
	}
	return tasks
}

func (m *Manager) info(sess *domain.AutoRollSession) *domain.SessionInfo {
	remaining := sess.Remaining(m.clock.Now())
	if remaining < 0 {
		remaining = 0
	}
	return &domain.SessionInfo{
		UserID:    sess.UserID,
		SessionID: sess.ID,
		StartTime: sess.StartTime,
		Remaining: remaining,
		Rolls:     sess.RollsPerformed,
	}
}

func (m *Manager) publish(ctx context.Context, evt event.Event) {
	if m.publisher != nil {
		m.publisher.PublishWithRetry(ctx, evt)
	}
}

func resultOf(sess *domain.AutoRollSession, reason domain.StopReason, err error) *domain.AutoRollResult {
	found := make(map[string]int, len(sess.FoundItemsLog))
	for k, v := range sess.FoundItemsLog {
		found[k] = v
	}
	res := &domain.AutoRollResult{
		UserID:     sess.UserID,
		SessionID:  sess.ID,
		FoundItems: found,
		TotalRolls: sess.RollsPerformed,
		Reason:     reason,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}
