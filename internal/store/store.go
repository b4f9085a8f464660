package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/osse101/LuckBot_Go/internal/clock"
	"github.com/osse101/LuckBot_Go/internal/domain"
	"github.com/osse101/LuckBot_Go/internal/metrics"
	"github.com/osse101/LuckBot_Go/internal/utils"
)

// Files names the three persisted documents
type Files struct {
	Users    string
	Settings string
	Sessions string
}

// DefaultFiles places the documents in dir
func DefaultFiles(dir string) Files {
	return Files{
		Users:    filepath.Join(dir, UsersFileName),
		Settings: filepath.Join(dir, SettingsFileName),
		Sessions: filepath.Join(dir, SessionsFileName),
	}
}

// Tx gives a mutation read access to the rest of the store while the lock is held
type Tx struct {
	// User is a working copy of the record; it is committed only if the mutation succeeds
	User *domain.UserRecord
	// Created is true when the record did not exist before this mutation
	Created bool

	userID string
	store  *Store
}

// TotalOwned sums an item across every user, counting the working copy for the current user
func (tx *Tx) TotalOwned(item string) int {
	total := 0
	for id, u := range tx.store.users {
		if id == tx.userID {
			continue
		}
		total += u.Inventory[item]
	}
	return total + tx.User.Inventory[item]
}

// MutateFunc changes a user record. Returning an error discards every change.
type MutateFunc func(tx *Tx) error

// RankEntry is one row of the roll leaderboard
type RankEntry struct {
	UserID string
	Rolls  int
}

// Store owns every user record, the settings document and the durable auto-roll sessions.
// All access goes through one mutex; records never leave the store without being cloned.
type Store struct {
	mu       sync.Mutex
	files    Files
	clock    clock.Clock
	users    map[string]*domain.UserRecord
	settings domain.BotSettings
	sessions map[string]*domain.AutoRollSession
	dirty    bool
}

// Option configures a Store
type Option func(*Store)

// WithClock sets the clock used for quarantine timestamps
func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// New creates an empty store. Call Load before serving.
func New(files Files, opts ...Option) *Store {
	s := &Store{
		files:    files,
		clock:    clock.NewReal(),
		users:    make(map[string]*domain.UserRecord),
		sessions: make(map[string]*domain.AutoRollSession),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads all documents. Corrupt documents are quarantined and replaced with empty ones.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, path := range []string{s.files.Users, s.files.Settings, s.files.Sessions} {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return fmt.Errorf(ErrMsgCreateDirFailed, err)
		}
	}

	users := make(map[string]*domain.UserRecord)
	ok, err := s.loadDocument(DocUsers, s.files.Users, &users, map[string]*domain.UserRecord{})
	if err != nil {
		return err
	}
	if !ok {
		users = make(map[string]*domain.UserRecord)
	}
	migrated := 0
	for id, u := range users {
		if u == nil {
			users[id] = domain.NewUserRecord()
			migrated++
			continue
		}
		if u.Migrate() {
			migrated++
		}
	}
	s.users = users
	if migrated > 0 {
		slog.Info(LogMsgRecordsMigrated, "count", migrated)
		if err := s.saveUsersLocked(); err != nil {
			return err
		}
	}

	var settings domain.BotSettings
	ok, err = s.loadDocument(DocSettings, s.files.Settings, &settings, domain.BotSettings{})
	if err != nil {
		return err
	}
	if !ok {
		settings = domain.BotSettings{}
	}
	s.settings = settings

	sessions := make(map[string]*domain.AutoRollSession)
	ok, err = s.loadDocument(DocSessions, s.files.Sessions, &sessions, map[string]*domain.AutoRollSession{})
	if err != nil {
		return err
	}
	if !ok {
		sessions = make(map[string]*domain.AutoRollSession)
	}
	for id, sess := range sessions {
		if sess == nil {
			delete(sessions, id)
			continue
		}
		sess.UserID = id
	}
	s.sessions = sessions
	return nil
}

// loadDocument decodes path into target and reports whether it did.
// A missing file is not an error. A corrupt file is renamed aside and empty is written in its place.
func (s *Store) loadDocument(doc, path string, target, empty interface{}) (bool, error) {
	err := utils.LoadJSON(path, target)
	switch {
	case err == nil:
		slog.Debug(LogMsgDocumentLoaded, "document", doc, "path", path)
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		slog.Info(LogMsgDocumentMissing, "document", doc, "path", path)
		return false, nil
	case errors.Is(err, utils.ErrInvalidJSON):
		backup, qerr := s.quarantine(path)
		if qerr != nil {
			return false, fmt.Errorf(ErrMsgQuarantineFailed, doc, qerr)
		}
		slog.Error(LogMsgDocumentQuarantined, "document", doc, "backup", backup, "error", fmt.Errorf("%w: %v", domain.ErrDataCorrupt, err))
		metrics.DocumentsQuarantined.WithLabelValues(doc).Inc()
		return false, s.write(doc, path, empty)
	default:
		return false, fmt.Errorf(ErrMsgLoadFailed, doc, err)
	}
}

func (s *Store) quarantine(path string) (string, error) {
	backup := path + ".bak." + s.clock.Now().Format(QuarantineTimeLayout)
	if err := os.Rename(path, backup); err != nil {
		return "", err
	}
	return backup, nil
}

func (s *Store) write(doc, path string, data interface{}) error {
	start := time.Now()
	err := utils.SaveJSON(path, data)
	metrics.PersistenceWriteDuration.WithLabelValues(doc).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PersistenceWriteErrors.WithLabelValues(doc).Inc()
		slog.Error(LogMsgSaveFailed, "document", doc, "path", path, "error", err)
		return fmt.Errorf(ErrMsgSaveFailed, doc, err)
	}
	return nil
}

func (s *Store) saveUsersLocked() error {
	if err := s.write(DocUsers, s.files.Users, s.users); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

func (s *Store) saveSessionsLocked() error {
	return s.write(DocSessions, s.files.Sessions, s.sessions)
}

// Update applies fn to the user's record, creating it lazily, and writes the users document
// before returning. On error from fn or from the write, the previous record is kept.
func (s *Store) Update(userID string, fn MutateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, err := s.mutateLocked(userID, fn)
	if err != nil {
		return err
	}
	if err := s.saveUsersLocked(); err != nil {
		s.restoreLocked(userID, prev)
		return err
	}
	return nil
}

// UpdateBuffered applies fn like Update but defers the write to the next SaveUsers or Flush
func (s *Store) UpdateBuffered(userID string, fn MutateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.mutateLocked(userID, fn); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

func (s *Store) mutateLocked(userID string, fn MutateFunc) (*domain.UserRecord, error) {
	prev, exists := s.users[userID]
	var working *domain.UserRecord
	if exists {
		working = prev.Clone()
	} else {
		working = domain.NewUserRecord()
	}

	tx := &Tx{User: working, Created: !exists, userID: userID, store: s}
	if err := fn(tx); err != nil {
		return nil, err
	}
	s.users[userID] = working
	return prev, nil
}

func (s *Store) restoreLocked(userID string, prev *domain.UserRecord) {
	if prev == nil {
		delete(s.users, userID)
		return
	}
	s.users[userID] = prev
}

// UpdateAll applies fn to every existing record and writes once if anything changed.
// fn reports whether it changed the record.
func (s *Store) UpdateAll(fn func(userID string, u *domain.UserRecord) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for id, u := range s.users {
		if fn(id, u) {
			changed++
		}
	}
	if changed == 0 && !s.dirty {
		return 0, nil
	}
	return changed, s.saveUsersLocked()
}

// ForEach calls fn for every record under the lock. fn must not retain or modify u.
func (s *Store) ForEach(fn func(userID string, u *domain.UserRecord)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.users {
		fn(id, u)
	}
}

// Files returns the document paths this store reads and writes
func (s *Store) Files() Files {
	return s.files
}

// CheckHealth reports whether the data directory is still a usable directory
func (s *Store) CheckHealth(ctx context.Context) error {
	dir := filepath.Dir(s.files.Users)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf(ErrMsgHealthFmt, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf(ErrMsgHealthFmt, dir, ErrNotDirectory)
	}
	return ctx.Err()
}

// Get returns a copy of the user's record. The second value is false if no record exists.
func (s *Store) Get(userID string) (*domain.UserRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, false
	}
	return u.Clone(), true
}

// UserIDs returns every known user id, sorted
func (s *Store) UserIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of user records
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// TotalRolls sums roll counts across all users
func (s *Store) TotalRolls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, u := range s.users {
		total += u.Rolls
	}
	return total
}

// ItemTotals returns the server-wide owned count of every item
func (s *Store) ItemTotals() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	totals := make(map[string]int)
	for _, u := range s.users {
		for item, n := range u.Inventory {
			totals[item] += n
		}
	}
	return totals
}

// TopRollers returns up to n users ordered by roll count, ties by user id
func (s *Store) TopRollers(n int) []RankEntry {
	s.mu.Lock()
	entries := make([]RankEntry, 0, len(s.users))
	for id, u := range s.users {
		entries = append(entries, RankEntry{UserID: id, Rolls: u.Rolls})
	}
	s.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Rolls != entries[j].Rolls {
			return entries[i].Rolls > entries[j].Rolls
		}
		return entries[i].UserID < entries[j].UserID
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Delete removes one user's record and writes through. Returns false if it did not exist.
func (s *Store) Delete(userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.users[userID]
	if !ok {
		return false, nil
	}
	delete(s.users, userID)
	if err := s.saveUsersLocked(); err != nil {
		s.users[userID] = prev
		return false, err
	}
	return true, nil
}

// ResetAll removes every user record and every saved session
func (s *Store) ResetAll() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.users)
	prevUsers, prevSessions := s.users, s.sessions
	s.users = make(map[string]*domain.UserRecord)
	s.sessions = make(map[string]*domain.AutoRollSession)
	if err := s.saveUsersLocked(); err != nil {
		s.users, s.sessions = prevUsers, prevSessions
		return 0, err
	}
	if err := s.saveSessionsLocked(); err != nil {
		return n, err
	}
	return n, nil
}

// SaveUsers writes the users document if buffered changes are pending
func (s *Store) SaveUsers() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}
	return s.saveUsersLocked()
}

// Flush writes users and sessions unconditionally. Used at shutdown.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := errors.Join(s.saveUsersLocked(), s.saveSessionsLocked())
	if err == nil {
		slog.Info(LogMsgFlushed, "users", len(s.users), "sessions", len(s.sessions))
	}
	return err
}
