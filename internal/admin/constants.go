package admin

// TargetAll addresses every known user in delete and give-auto-roll commands
const TargetAll = "all"

// ==================== Error Messages ====================

const (
	ErrMsgNotAdminFmt       = "%w: user %s is not an admin"
	ErrMsgBoostRequestFmt   = "%w: %s"
	ErrMsgTargetEmptyFmt    = "%w: target user cannot be empty"
	ErrMsgUserNotFoundFmt   = "%w: %s"
	ErrMsgScheduleExpiryFmt = "boost applied but expiry was not scheduled: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgDenied            = "Admin command denied"
	LogMsgBoostApplied      = "Admin luck boost applied"
	LogMsgResetAll          = "Admin reset all user data"
	LogMsgUserDeleted       = "Admin deleted user"
	LogMsgAutoRollGiven     = "Admin started auto-roll sessions"
	LogMsgAutoRollSkipped   = "Skipped auto-roll for user"
	LogMsgChannelConfigured = "Admin set notification channel"
)
