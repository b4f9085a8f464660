package domain

// Event type constants published by the economy engine.
//
// Event types follow the pattern: <entity>.<action>
const (
	// EventTypeRareItemDropped is published when a roll yields an item at or above the notify threshold
	EventTypeRareItemDropped = "rare_item.dropped"

	// EventTypeAutoRollFinished is published once when an auto-roll session terminates
	EventTypeAutoRollFinished = "autoroll.finished"

	// EventTypeAutoRollResumed is published when a saved session is rescheduled after a restart
	EventTypeAutoRollResumed = "autoroll.resumed"

	// EventTypeBoostExpired is published when a login or admin boost is reset to neutral
	EventTypeBoostExpired = "boost.expired"

	// EventTypePotionConsumed is published when a queued potion is applied to a roll
	EventTypePotionConsumed = "potion.consumed"
)

// BoostKind identifies which boost channel expired
type BoostKind string

// Boost channels
const (
	BoostKindLogin BoostKind = "login"
	BoostKindAdmin BoostKind = "admin"
)

// BroadcastUserID marks an event that concerns every user
const BroadcastUserID = "*"
