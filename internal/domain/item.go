package domain

import "strings"

// Tier is the rarity tier of an item
type Tier string

// Item tiers
const (
	TierNormal  Tier = "normal"
	TierGolden  Tier = "golden"
	TierRainbow Tier = "rainbow"
)

// Tier name prefixes and denominator scale factors
const (
	GoldenPrefix  = "golden "
	RainbowPrefix = "rainbow "

	GoldenScale  = 10
	RainbowScale = 100
)

// TierOf derives the tier from an item name
func TierOf(name string) Tier {
	switch {
	case strings.HasPrefix(name, GoldenPrefix):
		return TierGolden
	case strings.HasPrefix(name, RainbowPrefix):
		return TierRainbow
	default:
		return TierNormal
	}
}

// DropEntry is one droppable item and its "1 in N" denominator
type DropEntry struct {
	Name        string `json:"name"`
	BaseItem    string `json:"base_item"`
	Tier        Tier   `json:"tier"`
	Denominator int64  `json:"denominator"`
}

// ItemTable is the immutable item-probability table. Entries keep generation order.
type ItemTable struct {
	entries []DropEntry
	index   map[string]int
}

// NewItemTable builds a table from entries. Later duplicates replace earlier ones.
func NewItemTable(entries []DropEntry) *ItemTable {
	t := &ItemTable{
		entries: make([]DropEntry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if i, ok := t.index[e.Name]; ok {
			t.entries[i] = e
			continue
		}
		t.index[e.Name] = len(t.entries)
		t.entries = append(t.entries, e)
	}
	return t
}

// Entries returns a copy of all entries in generation order
func (t *ItemTable) Entries() []DropEntry {
	out := make([]DropEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of items
func (t *ItemTable) Len() int {
	return len(t.entries)
}

// Lookup returns the entry for an item name
func (t *ItemTable) Lookup(name string) (DropEntry, bool) {
	i, ok := t.index[name]
	if !ok {
		return DropEntry{}, false
	}
	return t.entries[i], true
}

// Denominator returns the base denominator of an item, or 0 if unknown
func (t *ItemTable) Denominator(name string) int64 {
	e, ok := t.Lookup(name)
	if !ok {
		return 0
	}
	return e.Denominator
}
