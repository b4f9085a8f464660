package roll

import (
	"math"

	"github.com/osse101/LuckBot_Go/internal/domain"
	"github.com/osse101/LuckBot_Go/internal/utils"
)

// Policy controls how a luck factor is applied to base denominators
type Policy struct {
	CommonCutoff   int64
	CommonExponent float64
	MinDenominator float64
}

// DefaultPolicy returns the shipped dampening policy
func DefaultPolicy() Policy {
	return Policy{
		CommonCutoff:   DefaultCommonCutoff,
		CommonExponent: DefaultCommonExponent,
		MinDenominator: DefaultMinDenominator,
	}
}

// Result is the outcome of a single roll
type Result struct {
	Item string
	// DisplayDenominator is the floored effective denominator of the chosen item, never below 1
	DisplayDenominator int64
	// BaseDenominator is the pre-luck denominator from the table
	BaseDenominator int64
}

// Engine performs weighted draws over an item table. It keeps no per-user state.
type Engine struct {
	entries []domain.DropEntry
	policy  Policy
	rnd     func() float64
}

// Option configures an Engine
type Option func(*Engine)

// WithRandom replaces the uniform [0,1) source used for draws
func WithRandom(rnd func() float64) Option {
	return func(e *Engine) {
		e.rnd = rnd
	}
}

// NewEngine creates a roll engine over the given table
func NewEngine(table *domain.ItemTable, policy Policy, opts ...Option) *Engine {
	e := &Engine{
		entries: table.Entries(),
		policy:  policy,
		rnd:     utils.RandomFloat,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the engine's dampening policy
func (e *Engine) Policy() Policy {
	return e.policy
}

// EffectiveDenominator applies the luck factor to a base denominator.
// Common items get luck^exponent when luck > 1 and the full factor when luck < 1.
// Rare items get the full factor and are floored at MinDenominator.
func (e *Engine) EffectiveDenominator(base int64, luck float64) float64 {
	d := float64(base)
	if base <= e.policy.CommonCutoff {
		factor := 1.0
		if luck > 1 {
			factor = math.Pow(luck, e.policy.CommonExponent)
		} else if luck < 1 {
			factor = luck
		}
		return d / factor
	}
	return math.Max(e.policy.MinDenominator, d/luck)
}

// EffectiveProbability is 1/EffectiveDenominator clamped to [0, 1]
func (e *Engine) EffectiveProbability(base int64, luck float64) float64 {
	p := 1.0 / e.EffectiveDenominator(base, luck)
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	return math.Min(p, 1.0)
}

// PerformRoll draws exactly one item using luck-adjusted weights.
// If every weight is zero the draw falls back to uniform weights.
func (e *Engine) PerformRoll(luck float64) Result {
	weights := make([]float64, len(e.entries))
	total := 0.0
	for i, entry := range e.entries {
		weights[i] = e.EffectiveProbability(entry.Denominator, luck)
		total += weights[i]
	}
	if total == 0 {
		for i := range weights {
			weights[i] = 1
		}
		total = float64(len(weights))
	}

	idx := pick(weights, total, e.rnd())
	chosen := e.entries[idx]

	return Result{
		Item:               chosen.Name,
		DisplayDenominator: displayDenominator(e.EffectiveDenominator(chosen.Denominator, luck)),
		BaseDenominator:    chosen.Denominator,
	}
}

func pick(weights []float64, total, r float64) int {
	target := r * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if target < cumulative {
			return i
		}
	}
	// Rounding can leave target at the very top of the range
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return len(weights) - 1
}

// displayDenominator is 1/p for the clamped probability p, which equals max(d, 1)
func displayDenominator(d float64) int64 {
	switch {
	case math.IsNaN(d) || d >= math.MaxInt64:
		return math.MaxInt64
	case d < 1:
		return 1
	default:
		return int64(math.Floor(d))
	}
}
