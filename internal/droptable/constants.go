package droptable

// ==================== Configuration ====================

// ConfigFileName is the optional base drop table override file
const ConfigFileName = "drop_table.json"

// Recipe ratios between tiers
const (
	// TierCraftCost is how many items of one tier make one item of the next
	TierCraftCost = 10

	// TierCraftOutput is how many items a tier craft produces
	TierCraftOutput = 1
)

// ==================== Error Messages ====================

const (
	ErrMsgEmptyTable            = "base table has no items"
	ErrMsgEmptyItemName         = "item has empty name"
	ErrMsgNonPositiveDenom      = "item %q has non-positive denominator %d"
	ErrMsgTieredBaseName        = "base item %q must not carry a tier prefix"
	ErrMsgDuplicateItem         = "duplicate item %q"
	ErrMsgDenominatorOverflow   = "item %q denominator %d overflows when scaled to rainbow tier"
	ErrMsgPotionNoMaterials     = "potion recipe %q has no materials"
	ErrMsgPotionBadMultiplier   = "potion recipe %q has non-positive luck multiplier"
	ErrMsgPotionUnknownMaterial = "potion recipe %q uses unknown material %q"
	ErrMsgReadConfigFailed      = "failed to read drop table config: %w"
)
