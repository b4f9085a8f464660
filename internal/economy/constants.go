package economy

import "time"

// ==================== Roll Policy ====================

// DefaultRareThreshold is the base denominator at or above which a drop is announced
const DefaultRareThreshold int64 = 100_000

// ==================== Daily Login ====================

const (
	// LoginBoostStep is added to the multiplier for every consecutive day
	LoginBoostStep = 0.1
	// LoginBoostCap is the highest multiplier a streak can grant
	LoginBoostCap = 2.0
	// LoginBoostBaseDuration is the boost length on day one
	LoginBoostBaseDuration = 5 * time.Minute
	// LoginBoostMaxDuration caps the boost length
	LoginBoostMaxDuration = 15 * time.Minute
)

// ==================== Leaderboard ====================

// DefaultRankingSize is how many users the ranking shows
const DefaultRankingSize = 10

// ==================== Error Messages ====================

const (
	ErrMsgRollFailedFmt        = "failed to record roll for %s: %w"
	ErrMsgLoginFailedFmt       = "failed to record login for %s: %w"
	ErrMsgBoostFailedFmt       = "failed to apply admin boost: %w"
	ErrMsgBoostMultiplierFmt   = "%w: multiplier must be positive (got %v)"
	ErrMsgBoostDurationFmt     = "%w: duration must be positive (got %s)"
	ErrMsgChannelEmptyFmt      = "%w: channel id cannot be empty"
	ErrMsgSettingsFailedFmt    = "failed to save settings: %w"
	ErrMsgDeleteFailedFmt      = "failed to delete user %s: %w"
	ErrMsgResetFailedFmt       = "failed to reset user data: %w"
	ErrMsgExpireBoostFailedFmt = "failed to expire admin boosts: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgRollCompleted      = "Roll completed"
	LogMsgRareDrop           = "Rare item dropped"
	LogMsgBoostExpired       = "Boost expired during roll"
	LogMsgLoginClaimed       = "Daily login claimed"
	LogMsgAdminBoostApplied  = "Admin boost applied"
	LogMsgAdminBoostsExpired = "Admin boosts expired"
	LogMsgUserDeleted        = "User data deleted"
	LogMsgAllReset           = "All user data reset"
	LogMsgChannelSet         = "Notification channel set"
)
