package crafting

// ==================== Error Messages ====================

const (
	ErrMsgRecipeNotFoundFmt = "%q"
	ErrMsgQuantityFmt       = "quantity must be positive (got %d)"
	ErrMsgPotionNotOwnedFmt = "%s: requested %d, owned %d"
	ErrMsgEmptyNameFmt      = "name cannot be empty"
)

// ==================== Log Messages ====================

const (
	LogMsgCraftCompleted   = "Craft completed"
	LogMsgPotionCrafted    = "Potion crafted"
	LogMsgPotionQueued     = "Potions queued for upcoming rolls"
	LogMsgCraftRejected    = "Craft rejected"
	LogMsgPotionUseRefused = "Potion use rejected"
)
