package domain

import (
	"encoding/json"
	"time"
)

// StopReason is the user-facing reason an auto-roll session ended
type StopReason string

// Reportable termination reasons
const (
	ReasonTimeExpired    StopReason = "time expired"
	ReasonManualStop     StopReason = "manually stopped"
	ReasonExpiredOffline StopReason = "expired while offline"
	ReasonInternalError  StopReason = "internal error"
)

// AutoRollSession is the durable state of one user's auto-roll session.
// The running task handle is never part of this struct.
type AutoRollSession struct {
	ID                 string         `json:"session_id"`
	UserID             string         `json:"user_id"`
	FoundItemsLog      map[string]int `json:"found_items_log"`
	StartTime          time.Time      `json:"-"`
	MaxDurationSeconds int            `json:"max_duration_seconds"`
	RollsPerformed     int            `json:"rolls_performed"`
}

// MaxDuration returns the session duration limit
func (s *AutoRollSession) MaxDuration() time.Duration {
	return time.Duration(s.MaxDurationSeconds) * time.Second
}

// Remaining returns the time left before the session expires (may be negative)
func (s *AutoRollSession) Remaining(now time.Time) time.Duration {
	return s.MaxDuration() - now.Sub(s.StartTime)
}

// Clone returns a deep copy
func (s *AutoRollSession) Clone() *AutoRollSession {
	c := *s
	c.FoundItemsLog = cloneCounts(s.FoundItemsLog)
	return &c
}

type sessionAlias AutoRollSession

type sessionJSON struct {
	*sessionAlias
	StartTime float64 `json:"start_time"`
}

// MarshalJSON stores StartTime as epoch seconds
func (s AutoRollSession) MarshalJSON() ([]byte, error) {
	alias := sessionAlias(s)
	return json.Marshal(sessionJSON{
		sessionAlias: &alias,
		StartTime:    float64(s.StartTime.UnixNano()) / float64(time.Second),
	})
}

// UnmarshalJSON reads StartTime from epoch seconds
func (s *AutoRollSession) UnmarshalJSON(data []byte) error {
	aux := sessionJSON{sessionAlias: (*sessionAlias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	sec := int64(aux.StartTime)
	nsec := int64((aux.StartTime - float64(sec)) * float64(time.Second))
	s.StartTime = time.Unix(sec, nsec).UTC()
	if s.FoundItemsLog == nil {
		s.FoundItemsLog = make(map[string]int)
	}
	return nil
}

// AutoRollResult is the summary handed to the presentation layer when a session ends
type AutoRollResult struct {
	UserID     string         `json:"user_id"`
	SessionID  string         `json:"session_id"`
	FoundItems map[string]int `json:"found_items"`
	TotalRolls int            `json:"total_rolls"`
	Reason     StopReason     `json:"reason"`
	Error      string         `json:"error,omitempty"`
}

// SessionInfo describes a running session for status displays
type SessionInfo struct {
	UserID    string        `json:"user_id"`
	SessionID string        `json:"session_id"`
	StartTime time.Time     `json:"start_time"`
	Remaining time.Duration `json:"remaining"`
	Rolls     int           `json:"rolls"`
}
