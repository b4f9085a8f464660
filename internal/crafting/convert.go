package crafting

import (
	"fmt"

	"github.com/osse101/LuckBot_Go/internal/domain"
)

// MaxCraftable returns how many times materials can be paid from owned.
// A material with a zero requirement does not constrain the result.
func MaxCraftable(owned map[string]int, materials []domain.Ingredient) int {
	maxCrafts := -1
	for _, m := range materials {
		if m.Quantity <= 0 {
			continue
		}
		have := owned[m.Name]
		if have <= 0 {
			return 0
		}
		n := have / m.Quantity
		if maxCrafts < 0 || n < maxCrafts {
			maxCrafts = n
		}
	}
	if maxCrafts < 0 {
		return 0
	}
	return maxCrafts
}

// Shortfalls lists every material that is short for the given number of crafts
func Shortfalls(owned map[string]int, materials []domain.Ingredient, crafts int) []domain.Shortfall {
	var out []domain.Shortfall
	for _, m := range materials {
		required := m.Quantity * crafts
		have := owned[m.Name]
		if have < required {
			out = append(out, domain.Shortfall{
				Material: m.Name,
				Required: required,
				Owned:    have,
				Missing:  required - have,
			})
		}
	}
	return out
}

// resolveCrafts turns a quantity request into a craft count against owned materials
func resolveCrafts(recipe string, owned map[string]int, materials []domain.Ingredient, qty domain.Quantity) (int, error) {
	maxCrafts := MaxCraftable(owned, materials)

	if qty.IsAll() {
		if maxCrafts == 0 {
			return 0, &domain.InsufficientMaterialsError{
				Recipe:       recipe,
				Shortfalls:   Shortfalls(owned, materials, 1),
				MaxCraftable: 0,
			}
		}
		return maxCrafts, nil
	}

	n := qty.Count()
	if n <= 0 {
		return 0, fmt.Errorf("%w: "+ErrMsgQuantityFmt, domain.ErrInvalidQuantity, n)
	}
	if n > maxCrafts {
		return 0, &domain.InsufficientMaterialsError{
			Recipe:       recipe,
			Shortfalls:   Shortfalls(owned, materials, n),
			MaxCraftable: maxCrafts,
		}
	}
	return n, nil
}

// convert consumes materials from src and adds the output to dst, crafts times.
// Callers must have validated crafts against MaxCraftable; nothing is applied on failure.
func convert(src, dst map[string]int, materials []domain.Ingredient, output domain.Ingredient, crafts int) []domain.Ingredient {
	consumed := make([]domain.Ingredient, 0, len(materials))
	for _, m := range materials {
		n := m.Quantity * crafts
		if n == 0 {
			continue
		}
		domain.SubtractCount(src, m.Name, n)
		consumed = append(consumed, domain.Ingredient{Name: m.Name, Quantity: n})
	}
	domain.AddCount(dst, output.Name, output.Quantity*crafts)
	return consumed
}
