package droptable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LuckBot_Go/internal/domain"
)

func TestGenerate_TierDenominators(t *testing.T) {
	items, _, err := Generate(DefaultBaseItems)
	require.NoError(t, err)

	assert.Equal(t, len(DefaultBaseItems)*3, items.Len())

	for _, b := range DefaultBaseItems {
		assert.Equal(t, b.Denominator, items.Denominator(b.Name), b.Name)
		assert.Equal(t, 10*b.Denominator, items.Denominator("golden "+b.Name), b.Name)
		assert.Equal(t, 100*b.Denominator, items.Denominator("rainbow "+b.Name), b.Name)
	}
}

func TestGenerate_Recipes(t *testing.T) {
	_, recipes, err := Generate([]BaseItem{{Name: "みず", Denominator: 30}})
	require.NoError(t, err)
	require.Len(t, recipes, 2)

	golden := recipes[0]
	assert.Equal(t, "golden みず", golden.Name)
	assert.Equal(t, []domain.Ingredient{{Name: "みず", Quantity: 10}}, golden.Materials)
	assert.Equal(t, domain.Ingredient{Name: "golden みず", Quantity: 1}, golden.Output)

	rainbow := recipes[1]
	assert.Equal(t, "rainbow みず", rainbow.Name)
	assert.Equal(t, []domain.Ingredient{{Name: "golden みず", Quantity: 10}}, rainbow.Materials)
	assert.Equal(t, domain.Ingredient{Name: "rainbow みず", Quantity: 1}, rainbow.Output)
}

func TestGenerate_Deterministic(t *testing.T) {
	a, ra, err := Generate(DefaultBaseItems)
	require.NoError(t, err)
	b, rb, err := Generate(DefaultBaseItems)
	require.NoError(t, err)

	assert.Equal(t, a.Entries(), b.Entries())
	assert.Equal(t, ra, rb)
}

func TestValidate_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		base []BaseItem
	}{
		{"empty", nil},
		{"zero denominator", []BaseItem{{Name: "a", Denominator: 0}}},
		{"negative denominator", []BaseItem{{Name: "a", Denominator: -5}}},
		{"blank name", []BaseItem{{Name: "  ", Denominator: 5}}},
		{"duplicate", []BaseItem{{Name: "a", Denominator: 5}, {Name: "a", Denominator: 6}}},
		{"tier prefixed", []BaseItem{{Name: "golden a", Denominator: 5}}},
		{"overflow", []BaseItem{{Name: "a", Denominator: 1 << 62}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Generate(tt.base)
			assert.ErrorIs(t, err, domain.ErrInvalidDropTable)
		})
	}
}

func TestCatalog_Lookups(t *testing.T) {
	c := MustDefault()

	t.Run("crafting recipe ignores case", func(t *testing.T) {
		r, ok := c.FindCraftingRecipe("GOLDEN Haka")
		require.True(t, ok)
		assert.Equal(t, "golden haka", r.Name)
	})

	t.Run("unknown recipe", func(t *testing.T) {
		_, ok := c.FindCraftingRecipe("golden nothing")
		assert.False(t, ok)
	})

	t.Run("potion recipe ignores case", func(t *testing.T) {
		p, ok := c.FindPotionRecipe("RTX4070")
		require.True(t, ok)
		assert.Equal(t, "one_billion_luck_potion", p.Output.Name)
	})

	t.Run("potion display name", func(t *testing.T) {
		assert.Equal(t, "ねこぶるpc", c.PotionDisplayName("ten_thousand_luck_potion"))
		assert.Equal(t, "mystery", c.PotionDisplayName("mystery"))
	})
}

func TestCatalog_EffectsByStrength(t *testing.T) {
	potions := []domain.PotionRecipe{
		{Name: "weak", Materials: []domain.Ingredient{{Name: "a", Quantity: 1}}, Output: domain.Ingredient{Name: "weak_potion", Quantity: 1}, LuckMultiplier: 10},
		{Name: "first", Materials: []domain.Ingredient{{Name: "a", Quantity: 1}}, Output: domain.Ingredient{Name: "first_potion", Quantity: 1}, LuckMultiplier: 100},
		{Name: "second", Materials: []domain.Ingredient{{Name: "a", Quantity: 1}}, Output: domain.Ingredient{Name: "second_potion", Quantity: 1}, LuckMultiplier: 100},
	}
	c, err := NewCatalog([]BaseItem{{Name: "a", Denominator: 2}}, potions)
	require.NoError(t, err)

	effects := c.EffectsByStrength()
	require.Len(t, effects, 3)
	assert.Equal(t, "first_potion", effects[0].PotionID)
	assert.Equal(t, "second_potion", effects[1].PotionID)
	assert.Equal(t, "weak_potion", effects[2].PotionID)
}

func TestNewCatalog_RejectsBadPotions(t *testing.T) {
	base := []BaseItem{{Name: "a", Denominator: 2}}

	_, err := NewCatalog(base, []domain.PotionRecipe{{Name: "p", Output: domain.Ingredient{Name: "x", Quantity: 1}, LuckMultiplier: 2}})
	assert.ErrorIs(t, err, domain.ErrInvalidDropTable)

	_, err = NewCatalog(base, []domain.PotionRecipe{{Name: "p", Materials: []domain.Ingredient{{Name: "zzz", Quantity: 1}}, Output: domain.Ingredient{Name: "x", Quantity: 1}, LuckMultiplier: 2}})
	assert.ErrorIs(t, err, domain.ErrInvalidDropTable)

	_, err = NewCatalog(base, []domain.PotionRecipe{{Name: "p", Materials: []domain.Ingredient{{Name: "a", Quantity: 1}}, Output: domain.Ingredient{Name: "x", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrInvalidDropTable)
}

func TestCatalog_ItemsByTier(t *testing.T) {
	c := MustDefault()
	groups := c.ItemsByTier()

	for _, tier := range []domain.Tier{domain.TierNormal, domain.TierGolden, domain.TierRainbow} {
		entries := groups[tier]
		require.Len(t, entries, len(DefaultBaseItems))
		for i := 1; i < len(entries); i++ {
			assert.GreaterOrEqual(t, entries[i-1].Denominator, entries[i].Denominator)
		}
	}
	assert.Equal(t, "rainbow 激ヤバみず", groups[domain.TierRainbow][0].Name)
}

func TestLoadBaseItems(t *testing.T) {
	t.Run("empty path uses defaults", func(t *testing.T) {
		items, err := LoadBaseItems("")
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseItems, items)
	})

	t.Run("missing file uses defaults", func(t *testing.T) {
		items, err := LoadBaseItems(filepath.Join(t.TempDir(), ConfigFileName))
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseItems, items)
	})

	t.Run("reads override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ConfigFileName)
		content := `{"version":"2","items":[{"name":"coin","denominator":3},{"name":"gem","denominator":500}]}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		items, err := LoadBaseItems(path)
		require.NoError(t, err)
		assert.Equal(t, []BaseItem{{Name: "coin", Denominator: 3}, {Name: "gem", Denominator: 500}}, items)
	})

	t.Run("rejects invalid override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte(`{"items":[{"name":"coin","denominator":0}]}`), 0600))

		_, err := LoadBaseItems(path)
		assert.ErrorIs(t, err, domain.ErrInvalidDropTable)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0600))

		_, err := LoadBaseItems(path)
		assert.Error(t, err)
	})
}
