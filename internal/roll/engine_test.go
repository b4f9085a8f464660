package roll

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LuckBot_Go/internal/domain"
	"github.com/osse101/LuckBot_Go/internal/droptable"
)

func seeded(seed int64) func() float64 {
	r := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic test source
	return r.Float64
}

func newDefaultEngine(t testing.TB, opts ...Option) *Engine {
	t.Helper()
	return NewEngine(droptable.MustDefault().Items(), DefaultPolicy(), opts...)
}

func TestPerformRoll_AlwaysReturnsTableItem(t *testing.T) {
	table := droptable.MustDefault().Items()
	e := NewEngine(table, DefaultPolicy(), WithRandom(seeded(1)))

	for _, luck := range []float64{0, 0.5, 1, 10, 1e9, 1e15} {
		for i := 0; i < 1000; i++ {
			res := e.PerformRoll(luck)
			entry, ok := table.Lookup(res.Item)
			require.True(t, ok, "unknown item %q", res.Item)
			assert.Equal(t, entry.Denominator, res.BaseDenominator)
			assert.GreaterOrEqual(t, res.DisplayDenominator, int64(1))
		}
	}
}

func TestPerformRoll_ConvergesAtNeutralLuck(t *testing.T) {
	table := droptable.MustDefault().Items()
	e := NewEngine(table, DefaultPolicy(), WithRandom(seeded(42)))

	const n = 100_000
	counts := map[string]int{}
	for i := 0; i < n; i++ {
		counts[e.PerformRoll(1).Item]++
	}

	total := 0.0
	for _, entry := range table.Entries() {
		total += 1.0 / float64(entry.Denominator)
	}

	// A drop is guaranteed, so the observed rate is 1/d normalised over the table
	for _, entry := range table.Entries() {
		p := (1.0 / float64(entry.Denominator)) / total
		if p < 0.001 {
			continue
		}
		observed := float64(counts[entry.Name]) / n
		sigma := math.Sqrt(p * (1 - p) / n)
		assert.InDelta(t, p, observed, 5*sigma, entry.Name)
	}
}

func TestEffectiveProbability_Dampening(t *testing.T) {
	e := newDefaultEngine(t)

	t.Run("common items are damped", func(t *testing.T) {
		before := e.EffectiveProbability(50, 1)
		after := e.EffectiveProbability(50, 1000)
		ratio := after / before
		assert.Greater(t, ratio, 1.0)
		assert.Less(t, ratio, 1000.0)
		assert.InDelta(t, math.Pow(1000, 0.1), ratio, 1e-9)
	})

	t.Run("rare items scale linearly", func(t *testing.T) {
		before := e.EffectiveProbability(1_000_000, 1)
		after := e.EffectiveProbability(1_000_000, 1000)
		assert.InDelta(t, 1000.0, after/before, 1e-6)
	})

	t.Run("rare items clamp at certain drop", func(t *testing.T) {
		assert.Equal(t, 1.0, e.EffectiveProbability(51, 1000))
	})

	t.Run("luck below one worsens common items fully", func(t *testing.T) {
		assert.InDelta(t, 1.0/60, e.EffectiveProbability(30, 0.5), 1e-12)
	})

	t.Run("neutral luck leaves odds unchanged", func(t *testing.T) {
		assert.InDelta(t, 1.0/30, e.EffectiveProbability(30, 1), 1e-12)
		assert.InDelta(t, 1.0/5000, e.EffectiveProbability(5000, 1), 1e-12)
	})

	t.Run("zero luck yields zero weight", func(t *testing.T) {
		assert.Equal(t, 0.0, e.EffectiveProbability(5000, 0))
		assert.Equal(t, 0.0, e.EffectiveProbability(2, 0))
	})
}

func TestPerformRoll_UniformFallback(t *testing.T) {
	table := domain.NewItemTable([]domain.DropEntry{
		{Name: "a", Denominator: 100},
		{Name: "b", Denominator: 200},
	})
	e := NewEngine(table, DefaultPolicy(), WithRandom(func() float64 { return 0.75 }))

	res := e.PerformRoll(0)
	assert.Equal(t, "b", res.Item)
	assert.Equal(t, int64(200), res.BaseDenominator)
}

func TestPerformRoll_DisplayDenominator(t *testing.T) {
	table := domain.NewItemTable([]domain.DropEntry{{Name: "gem", Denominator: 1000}})

	tests := []struct {
		name string
		luck float64
		want int64
	}{
		{"neutral", 1, 1000},
		{"floors fractional", 3, 333},
		{"clamps below one", 5000, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(table, DefaultPolicy(), WithRandom(func() float64 { return 0 }))
			res := e.PerformRoll(tt.luck)
			assert.Equal(t, tt.want, res.DisplayDenominator)
			assert.Equal(t, int64(1000), res.BaseDenominator)
		})
	}
}

func TestPerformRoll_HighLuckFavoursRare(t *testing.T) {
	e := newDefaultEngine(t, WithRandom(seeded(7)))

	rare := 0
	for i := 0; i < 1000; i++ {
		if e.PerformRoll(1e12).BaseDenominator > DefaultCommonCutoff {
			rare++
		}
	}
	// 30 of 36 entries are rare and clamp to certain drop; commons keep roughly 4 units of weight
	assert.Greater(t, rare, 800)
}

func TestPick(t *testing.T) {
	weights := []float64{0.5, 0, 0.5}
	assert.Equal(t, 0, pick(weights, 1, 0))
	assert.Equal(t, 0, pick(weights, 1, 0.49))
	assert.Equal(t, 2, pick(weights, 1, 0.5))
	assert.Equal(t, 2, pick(weights, 1, 0.9999))
	// r == 1 is outside [0,1) but must still land on a weighted item
	assert.Equal(t, 1, pick([]float64{0.5, 0.5, 0}, 1, 1))
}

func BenchmarkPerformRoll(b *testing.B) {
	e := newDefaultEngine(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.PerformRoll(1)
	}
}

func BenchmarkPerformRoll_Boosted(b *testing.B) {
	e := newDefaultEngine(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.PerformRoll(1e9)
	}
}
