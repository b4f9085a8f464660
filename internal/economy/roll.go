package economy

import (
	"context"
	"fmt"

	"github.com/osse101/LuckBot_Go/internal/domain"
	"github.com/osse101/LuckBot_Go/internal/event"
	"github.com/osse101/LuckBot_Go/internal/logger"
	"github.com/osse101/LuckBot_Go/internal/metrics"
	"github.com/osse101/LuckBot_Go/internal/roll"
	"github.com/osse101/LuckBot_Go/internal/store"
)

// RollResult is the outcome of one roll
type RollResult struct {
	Item               string      `json:"item"`
	Tier               domain.Tier `json:"tier"`
	DisplayDenominator int64       `json:"display_denominator"`
	BaseDenominator    int64       `json:"base_denominator"`
	Luck               float64     `json:"luck"`
	// Potion is the potion consumed by this roll, if any
	Potion         *domain.PotionEffect `json:"potion,omitempty"`
	PotionUsesLeft int                  `json:"potion_uses_left"`
	ExpiredBoosts  []domain.BoostKind   `json:"expired_boosts,omitempty"`
	TotalRolls     int                  `json:"total_rolls"`
	Owned          int                  `json:"owned"`
	Rare           bool                 `json:"rare"`
	// ServerTotal is the server-wide owned count, set only for rare drops
	ServerTotal int `json:"server_total,omitempty"`
}

// Roll performs one manual roll and writes the result through to storage
func (s *service) Roll(ctx context.Context, userID string) (*RollResult, error) {
	return s.roll(ctx, userID, event.SourceManualRoll, s.repo.Update)
}

// AutoRoll performs one roll on behalf of an auto-roll session.
// The record is updated in memory only; the session checkpoint persists it.
func (s *service) AutoRoll(ctx context.Context, userID string) (*RollResult, error) {
	return s.roll(ctx, userID, event.SourceAutoRoll, s.repo.UpdateBuffered)
}

func (s *service) roll(ctx context.Context, userID, source string, update func(string, store.MutateFunc) error) (*RollResult, error) {
	log := logger.FromContext(ctx)
	now := s.clock.Now()

	var result *RollResult
	err := update(userID, func(tx *store.Tx) error {
		luck := roll.Prepare(tx.User, now, s.effects)
		drop := s.roller.PerformRoll(luck.Factor)

		tx.User.Rolls++
		domain.AddCount(tx.User.Inventory, drop.Item, 1)

		result = &RollResult{
			Item:               drop.Item,
			Tier:               domain.TierOf(drop.Item),
			DisplayDenominator: drop.DisplayDenominator,
			BaseDenominator:    drop.BaseDenominator,
			Luck:               luck.Factor,
			Potion:             luck.Potion,
			ExpiredBoosts:      luck.Expired,
			TotalRolls:         tx.User.Rolls,
			Owned:              tx.User.Inventory[drop.Item],
			Rare:               drop.BaseDenominator >= s.cfg.RareThreshold,
		}
		if luck.Potion != nil {
			result.PotionUsesLeft = tx.User.ActiveLuckPotionUses[luck.Potion.PotionID]
		}
		if result.Rare {
			// Aggregate scan happens under the store lock so the total includes this drop
			result.ServerTotal = tx.TotalOwned(drop.Item)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgRollFailedFmt, userID, err)
	}

	metrics.RollsTotal.WithLabelValues(string(result.Tier), source).Inc()

	for _, kind := range result.ExpiredBoosts {
		log.Info(LogMsgBoostExpired, "user_id", userID, "kind", kind)
		s.publish(ctx, event.NewBoostExpiredEvent(userID, kind))
	}
	if result.Potion != nil {
		s.publish(ctx, event.NewPotionConsumedEvent(userID, *result.Potion, result.PotionUsesLeft, source))
	}
	if result.Rare {
		log.Info(LogMsgRareDrop, "user_id", userID, "item", result.Item, "base_denominator", result.BaseDenominator, "server_total", result.ServerTotal)
		s.publish(ctx, event.NewRareItemDroppedEvent(userID, result.Item, result.BaseDenominator, result.ServerTotal, source))
	}

	log.Debug(LogMsgRollCompleted, "user_id", userID, "item", result.Item, "luck", result.Luck, "source", source)
	return result, nil
}
