package droptable

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/osse101/LuckBot_Go/internal/domain"
)

// BaseItem is an entry of the base table: a normal-tier item and its "1 in N" odds
type BaseItem struct {
	Name        string `json:"name"`
	Denominator int64  `json:"denominator"`
}

// DefaultBaseItems is the shipped base table. Golden and rainbow tiers are derived from it.
var DefaultBaseItems = []BaseItem{
	{Name: "haka", Denominator: 1_000_000},
	{Name: "shiny haka", Denominator: 3_000_000},
	{Name: "hage uku", Denominator: 50},
	{Name: "うくうく", Denominator: 2},
	{Name: "ごあ", Denominator: 100_000_000},
	{Name: "はかうく", Denominator: 4},
	{Name: "じゃうく", Denominator: 10_000_000},
	{Name: "ピグパイセン", Denominator: 1_000_000_000},
	{Name: "みず", Denominator: 30},
	{Name: "激ヤバみず", Denominator: 10_000_000_000},
	{Name: "ねこぶる", Denominator: 100_000},
	{Name: "pro bot", Denominator: 5_000},
}

// DefaultPotionRecipes are the shipped luck potion recipes, strongest first
var DefaultPotionRecipes = []domain.PotionRecipe{
	{
		Name:           "rtx4070",
		Materials:      []domain.Ingredient{{Name: "rainbow じゃうく", Quantity: 1}},
		Output:         domain.Ingredient{Name: "one_billion_luck_potion", Quantity: 1},
		LuckMultiplier: 1_000_000_000,
	},
	{
		Name: "ねこぶるpc",
		Materials: []domain.Ingredient{
			{Name: "rainbow hage uku", Quantity: 3},
			{Name: "rainbow みず", Quantity: 3},
		},
		Output:         domain.Ingredient{Name: "ten_thousand_luck_potion", Quantity: 1},
		LuckMultiplier: 10_000,
	},
}

// Catalog holds the generated item table, crafting graph and potion definitions.
// It is immutable after construction and safe for concurrent reads.
type Catalog struct {
	items         *domain.ItemTable
	recipes       []domain.CraftingRecipe
	recipeIndex   map[string]int
	potions       []domain.PotionRecipe
	potionIndex   map[string]int
	potionByID    map[string]int
	effectsSorted []domain.PotionEffect
}

// NewCatalog generates the full table from base items and attaches potion recipes
func NewCatalog(base []BaseItem, potions []domain.PotionRecipe) (*Catalog, error) {
	items, recipes, err := Generate(base)
	if err != nil {
		return nil, err
	}
	if err := validatePotions(items, potions); err != nil {
		return nil, err
	}

	c := &Catalog{
		items:       items,
		recipes:     recipes,
		recipeIndex: make(map[string]int, len(recipes)),
		potions:     make([]domain.PotionRecipe, len(potions)),
		potionIndex: make(map[string]int, len(potions)),
		potionByID:  make(map[string]int, len(potions)),
	}
	for i, r := range recipes {
		c.recipeIndex[FoldName(r.Name)] = i
	}
	copy(c.potions, potions)
	for i, p := range c.potions {
		c.potionIndex[FoldName(p.Name)] = i
		if _, ok := c.potionByID[p.Output.Name]; !ok {
			c.potionByID[p.Output.Name] = i
		}
		c.effectsSorted = append(c.effectsSorted, domain.PotionEffect{
			PotionID:   p.Output.Name,
			Multiplier: p.LuckMultiplier,
		})
	}
	// Stable sort keeps declaration order among equal multipliers
	sort.SliceStable(c.effectsSorted, func(i, j int) bool {
		return c.effectsSorted[i].Multiplier > c.effectsSorted[j].Multiplier
	})
	return c, nil
}

// MustDefault returns the catalog built from the shipped tables
func MustDefault() *Catalog {
	c, err := NewCatalog(DefaultBaseItems, DefaultPotionRecipes)
	if err != nil {
		panic(err)
	}
	return c
}

// FoldName normalizes a user-supplied name for case-insensitive matching
func FoldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// Items returns the item probability table
func (c *Catalog) Items() *domain.ItemTable {
	return c.items
}

// CraftingRecipes returns all tier crafting recipes in generation order
func (c *Catalog) CraftingRecipes() []domain.CraftingRecipe {
	out := make([]domain.CraftingRecipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}

// FindCraftingRecipe looks up a crafting recipe by output name, ignoring case
func (c *Catalog) FindCraftingRecipe(name string) (domain.CraftingRecipe, bool) {
	i, ok := c.recipeIndex[FoldName(name)]
	if !ok {
		return domain.CraftingRecipe{}, false
	}
	return c.recipes[i], true
}

// PotionRecipes returns all potion recipes in declaration order
func (c *Catalog) PotionRecipes() []domain.PotionRecipe {
	out := make([]domain.PotionRecipe, len(c.potions))
	copy(out, c.potions)
	return out
}

// FindPotionRecipe looks up a potion recipe by its display name, ignoring case
func (c *Catalog) FindPotionRecipe(name string) (domain.PotionRecipe, bool) {
	i, ok := c.potionIndex[FoldName(name)]
	if !ok {
		return domain.PotionRecipe{}, false
	}
	return c.potions[i], true
}

// PotionDisplayName maps an internal potion id back to the recipe name users type
func (c *Catalog) PotionDisplayName(potionID string) string {
	i, ok := c.potionByID[potionID]
	if !ok {
		return potionID
	}
	return c.potions[i].Name
}

// EffectsByStrength returns potion effects ordered by multiplier, strongest first.
// Equal multipliers keep declaration order.
func (c *Catalog) EffectsByStrength() []domain.PotionEffect {
	out := make([]domain.PotionEffect, len(c.effectsSorted))
	copy(out, c.effectsSorted)
	return out
}

// ItemsByTier groups the table by tier, rarest first within each tier
func (c *Catalog) ItemsByTier() map[domain.Tier][]domain.DropEntry {
	out := map[domain.Tier][]domain.DropEntry{}
	for _, e := range c.items.Entries() {
		out[e.Tier] = append(out[e.Tier], e)
	}
	for _, entries := range out {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Denominator > entries[j].Denominator
		})
	}
	return out
}

func validatePotions(items *domain.ItemTable, potions []domain.PotionRecipe) error {
	for _, p := range potions {
		if len(p.Materials) == 0 {
			return errorf(ErrMsgPotionNoMaterials, p.Name)
		}
		if p.LuckMultiplier <= 0 {
			return errorf(ErrMsgPotionBadMultiplier, p.Name)
		}
		for _, m := range p.Materials {
			if _, ok := items.Lookup(m.Name); !ok {
				return errorf(ErrMsgPotionUnknownMaterial, p.Name, m.Name)
			}
		}
	}
	return nil
}
