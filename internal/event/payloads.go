package event

import (
	"time"

	"github.com/osse101/LuckBot_Go/internal/domain"
)

// Output event types
const (
	RareItemDropped  Type = domain.EventTypeRareItemDropped
	AutoRollFinished Type = domain.EventTypeAutoRollFinished
	AutoRollResumed  Type = domain.EventTypeAutoRollResumed
	BoostExpired     Type = domain.EventTypeBoostExpired
	PotionConsumed   Type = domain.EventTypePotionConsumed
)

// Event sources, recorded on Event.Source
const (
	SourceManualRoll = "roll"
	SourceAutoRoll   = "autoroll"
)

// RareItemDroppedPayloadV1 is published when a roll yields an item whose base odds meet the notify threshold
type RareItemDroppedPayloadV1 struct {
	UserID           string `json:"user_id"`
	Item             string `json:"item"`
	BaseDenominator  int64  `json:"base_denominator"`
	ServerTotalOwned int    `json:"server_total_owned"`
	FoundAt          int64  `json:"found_at"`
}

// AutoRollFinishedPayloadV1 is published once per terminated auto-roll session
type AutoRollFinishedPayloadV1 struct {
	UserID     string         `json:"user_id"`
	SessionID  string         `json:"session_id"`
	ResultsLog map[string]int `json:"results_log"`
	TotalRolls int            `json:"total_rolls"`
	Reason     string         `json:"reason"`
	Error      string         `json:"error,omitempty"`
}

// AutoRollResumedPayloadV1 is published when a saved session is rescheduled after a restart
type AutoRollResumedPayloadV1 struct {
	UserID           string  `json:"user_id"`
	SessionID        string  `json:"session_id"`
	RemainingSeconds float64 `json:"remaining_seconds"`
}

// BoostExpiredPayloadV1 is published when a boost channel resets to neutral.
// UserID is domain.BroadcastUserID when every user's admin boost ended together.
type BoostExpiredPayloadV1 struct {
	UserID string           `json:"user_id"`
	Kind   domain.BoostKind `json:"kind"`
}

// PotionConsumedPayloadV1 is published when a queued potion is applied to a roll
type PotionConsumedPayloadV1 struct {
	UserID     string  `json:"user_id"`
	PotionID   string  `json:"potion_id"`
	Multiplier float64 `json:"multiplier"`
	Remaining  int     `json:"remaining"`
}

// NewRareItemDroppedEvent creates a rare drop event
func NewRareItemDroppedEvent(userID, item string, baseDenominator int64, serverTotal int, source string) Event {
	return newEvent(RareItemDropped, source, RareItemDroppedPayloadV1{
		UserID:           userID,
		Item:             item,
		BaseDenominator:  baseDenominator,
		ServerTotalOwned: serverTotal,
		FoundAt:          time.Now().Unix(),
	})
}

// NewAutoRollFinishedEvent creates a session summary event
func NewAutoRollFinishedEvent(result domain.AutoRollResult) Event {
	return newEvent(AutoRollFinished, SourceAutoRoll, AutoRollFinishedPayloadV1{
		UserID:     result.UserID,
		SessionID:  result.SessionID,
		ResultsLog: result.FoundItems,
		TotalRolls: result.TotalRolls,
		Reason:     string(result.Reason),
		Error:      result.Error,
	})
}

// NewAutoRollResumedEvent creates a session resumed event
func NewAutoRollResumedEvent(userID, sessionID string, remaining time.Duration) Event {
	return newEvent(AutoRollResumed, SourceAutoRoll, AutoRollResumedPayloadV1{
		UserID:           userID,
		SessionID:        sessionID,
		RemainingSeconds: remaining.Seconds(),
	})
}

// NewBoostExpiredEvent creates a boost expiry event
func NewBoostExpiredEvent(userID string, kind domain.BoostKind) Event {
	return newEvent(BoostExpired, "", BoostExpiredPayloadV1{UserID: userID, Kind: kind})
}

// NewPotionConsumedEvent creates a potion consumption event
func NewPotionConsumedEvent(userID string, effect domain.PotionEffect, remaining int, source string) Event {
	return newEvent(PotionConsumed, source, PotionConsumedPayloadV1{
		UserID:     userID,
		PotionID:   effect.PotionID,
		Multiplier: effect.Multiplier,
		Remaining:  remaining,
	})
}
