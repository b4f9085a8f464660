package store

import (
	"sort"

	"github.com/osse101/LuckBot_Go/internal/domain"
)

// Sessions returns copies of all durable auto-roll sessions, ordered by user id
func (s *Store) Sessions() []*domain.AutoRollSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.AutoRollSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// Session returns a copy of one user's durable session
func (s *Store) Session(userID string) (*domain.AutoRollSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return nil, false
	}
	return sess.Clone(), true
}

// PutSession records a session and writes the sessions document
func (s *Store) PutSession(sess *domain.AutoRollSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.UserID] = sess.Clone()
	return s.saveSessionsLocked()
}

// Checkpoint writes buffered user changes together with the session's progress
func (s *Store) Checkpoint(sess *domain.AutoRollSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.UserID] = sess.Clone()
	if err := s.saveUsersLocked(); err != nil {
		return err
	}
	return s.saveSessionsLocked()
}

// RemoveSession drops a session from durable storage and writes any buffered user changes
func (s *Store) RemoveSession(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
	if s.dirty {
		if err := s.saveUsersLocked(); err != nil {
			return err
		}
	}
	return s.saveSessionsLocked()
}
