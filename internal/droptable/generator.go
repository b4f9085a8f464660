package droptable

import (
	"fmt"
	"math"
	"strings"

	"github.com/osse101/LuckBot_Go/internal/domain"
)

// Generate derives the full item table and tier crafting graph from the base table.
// For every base item X with denominator d it emits X (d), "golden X" (10d) and
// "rainbow X" (100d), plus the recipes X×10 → golden X and golden X×10 → rainbow X.
func Generate(base []BaseItem) (*domain.ItemTable, []domain.CraftingRecipe, error) {
	if err := Validate(base); err != nil {
		return nil, nil, err
	}

	entries := make([]domain.DropEntry, 0, len(base)*3)
	recipes := make([]domain.CraftingRecipe, 0, len(base)*2)

	for _, b := range base {
		golden := domain.GoldenPrefix + b.Name
		rainbow := domain.RainbowPrefix + b.Name

		entries = append(entries,
			domain.DropEntry{Name: b.Name, BaseItem: b.Name, Tier: domain.TierNormal, Denominator: b.Denominator},
			domain.DropEntry{Name: golden, BaseItem: b.Name, Tier: domain.TierGolden, Denominator: b.Denominator * domain.GoldenScale},
			domain.DropEntry{Name: rainbow, BaseItem: b.Name, Tier: domain.TierRainbow, Denominator: b.Denominator * domain.RainbowScale},
		)

		recipes = append(recipes,
			domain.CraftingRecipe{
				Name:      golden,
				Materials: []domain.Ingredient{{Name: b.Name, Quantity: TierCraftCost}},
				Output:    domain.Ingredient{Name: golden, Quantity: TierCraftOutput},
			},
			domain.CraftingRecipe{
				Name:      rainbow,
				Materials: []domain.Ingredient{{Name: golden, Quantity: TierCraftCost}},
				Output:    domain.Ingredient{Name: rainbow, Quantity: TierCraftOutput},
			},
		)
	}

	return domain.NewItemTable(entries), recipes, nil
}

// Validate rejects malformed base tables at load time
func Validate(base []BaseItem) error {
	if len(base) == 0 {
		return errorf(ErrMsgEmptyTable)
	}
	seen := make(map[string]bool, len(base))
	for _, b := range base {
		name := strings.TrimSpace(b.Name)
		if name == "" {
			return errorf(ErrMsgEmptyItemName)
		}
		if b.Denominator <= 0 {
			return errorf(ErrMsgNonPositiveDenom, b.Name, b.Denominator)
		}
		if b.Denominator > math.MaxInt64/domain.RainbowScale {
			return errorf(ErrMsgDenominatorOverflow, b.Name, b.Denominator)
		}
		if domain.TierOf(b.Name) != domain.TierNormal {
			return errorf(ErrMsgTieredBaseName, b.Name)
		}
		if seen[b.Name] {
			return errorf(ErrMsgDuplicateItem, b.Name)
		}
		seen[b.Name] = true
	}
	return nil
}

func errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{domain.ErrInvalidDropTable}, args...)...)
}
