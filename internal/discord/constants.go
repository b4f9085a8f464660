package discord

import "time"

// ============================================================================
// Command Names
// ============================================================================

// User commands
const (
	CommandPing     = "ping"
	CommandHelp     = "help"
	CommandRoll     = "roll"
	CommandStatus   = "status"
	CommandItemList = "itemlist"
	CommandRanking  = "ranking"
	CommandLogin    = "login"
	CommandCraft    = "craft"
	CommandMake     = "make"
	CommandUse      = "use"
	CommandRecipe   = "recipe"
	CommandAutoRoll = "autoroll"
	CommandAutoStop = "autostop"
	CommandAutoTime = "autotime"
)

// Admin commands
const (
	CommandSetup            = "setup"
	CommandBoostLuck        = "boostluck"
	CommandResetAll         = "resetall"
	CommandDelete           = "delete"
	CommandGiveAutoRoll     = "giveautoroll"
	CommandAutoRollSessions = "autorollsessions"
)

// Option names
const (
	OptionItem       = "item"
	OptionPotion     = "potion"
	OptionQuantity   = "quantity"
	OptionMultiplier = "multiplier"
	OptionSeconds    = "seconds"
	OptionTarget     = "target"
	OptionChannel    = "channel"
)

// ============================================================================
// Embed Styling
// ============================================================================

// Embed colors
const (
	ColorInfo    = 0x3498db
	ColorSuccess = 0x2ecc71
	ColorRoll    = 0x9b59b6
	ColorList    = 0xe67e22
	ColorRare    = 0xf1c40f
	ColorAdmin   = 0xe74c3c
	ColorNeutral = 0x95a5a6
)

// Footer constants for standardized embed footers
const (
	FooterLuckBot      = "LuckBot"
	FooterLuckBotAdmin = "LuckBot Admin"
	FooterRareDrop     = "Congratulations!"
)

// ============================================================================
// Components
// ============================================================================

// Custom id prefixes. Arguments follow the prefix separated by CustomIDSeparator.
const (
	CustomIDItemList  = "itemlist"
	CustomIDConfirm   = "confirm"
	CustomIDCancel    = "cancel"
	CustomIDSeparator = ":"
)

// Item list navigation actions
const (
	NavCategory = "cat"
	NavPrev     = "prev"
	NavNext     = "next"
)

// ItemsPerPage is the number of catalog entries on one item list page
const ItemsPerPage = 10

// Confirmation prompt limits
const (
	MaxPendingConfirmations = 64
	DefaultConfirmTimeout   = 10 * time.Second
)

// ============================================================================
// Delivery Limits
// ============================================================================

const (
	// MessageLimit is the longest plain message Discord accepts
	MessageLimit = 2000
	// MessageChunkSize leaves headroom below MessageLimit when splitting
	MessageChunkSize = 1900
)

// Display name cache
const (
	NameCacheSize = 512
	NameCacheTTL  = 30 * time.Minute
)

// TargetAll selects every user in admin commands
const TargetAll = "all"

// ============================================================================
// Errors
// ============================================================================

const (
	ErrMsgCreateSessionFmt  = "error creating Discord session: %w"
	ErrMsgOpenConnectionFmt = "error opening connection: %w"
	ErrMsgFetchCommandsFmt  = "failed to fetch existing commands: %w"
	ErrMsgOverwriteFmt      = "failed to update commands: %w"
	ErrMsgNotConnected      = "discord gateway not connected"
	ErrMsgPresenceFmt       = "failed to update presence: %w"
	ErrMsgDeliveryFmt       = "%w: %s to %s: %v"
	ErrMsgMissingOptionFmt  = "%w: missing option %q"
	ErrMsgInvalidTargetFmt  = "%w: %q is not a user mention, id, or \"all\""
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgBotReady            = "Bot is ready"
	LogMsgBotRunning          = "Discord bot is running"
	LogMsgBotStopped          = "Discord bot stopped"
	LogMsgCheckingCommands    = "Checking Discord commands"
	LogMsgCommandsUnchanged   = "Commands unchanged, skipping registration"
	LogMsgCommandsChanged     = "Commands changed, updating"
	LogMsgCommandsUpdated     = "Commands updated successfully"
	LogMsgCommandHandled      = "Command handled"
	LogMsgUnknownCommand      = "Unknown command"
	LogMsgUnknownComponent    = "Unknown component"
	LogMsgHandlerPanic        = "Interaction handler panicked, interaction dropped"
	LogMsgDeferFailed         = "Failed to send deferred response"
	LogMsgRespondFailed       = "Failed to respond to interaction"
	LogMsgEditFailed          = "Failed to edit interaction response"
	LogMsgActionFailed        = "Command action failed"
	LogMsgDeliveryFailed      = "Notification delivery failed"
	LogMsgNotificationSent    = "Notification sent"
	LogMsgNotificationDropped = "Notification dropped, delivery queue stopped"
	LogMsgNoNotifyChannel     = "Rare drop not announced, no notification channel"
	LogMsgPayloadDecodeFailed = "Failed to decode event payload for notification"
	LogMsgNameLookupFailed    = "Failed to resolve display name"
	LogMsgConfirmExpired      = "Confirmation prompt expired"
	LogMsgConfirmed           = "Destructive admin action confirmed"
	LogMsgCloseFailed         = "Failed to close Discord session"
)
