package economy

import (
	"context"
	"sort"
	"time"

	"github.com/osse101/LuckBot_Go/internal/domain"
	"github.com/osse101/LuckBot_Go/internal/roll"
)

// BoostStatus describes one boost channel at the time of the status read
type BoostStatus struct {
	Kind       domain.BoostKind `json:"kind"`
	Multiplier float64          `json:"multiplier"`
	Active     bool             `json:"active"`
	Remaining  time.Duration    `json:"remaining"`
}

// InventoryLine is one owned item with its base odds
type InventoryLine struct {
	Item  string      `json:"item"`
	Tier  domain.Tier `json:"tier"`
	Count int         `json:"count"`
	// Denominator is zero for items no longer in the table
	Denominator int64 `json:"denominator"`
}

// PotionLine is an owned or queued potion count
type PotionLine struct {
	PotionID string `json:"potion_id"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
}

// Status is a read-only snapshot of a user's economy state
type Status struct {
	UserID string `json:"user_id"`
	// Exists is false when the user has never interacted with the bot
	Exists        bool            `json:"exists"`
	Rolls         int             `json:"rolls"`
	Luck          float64         `json:"luck"`
	BaseLuck      float64         `json:"base_luck"`
	Streak        int             `json:"streak"`
	LoginBoost    BoostStatus     `json:"login_boost"`
	AdminBoost    BoostStatus     `json:"admin_boost"`
	Inventory     []InventoryLine `json:"inventory"`
	Potions       []PotionLine    `json:"potions"`
	QueuedPotions []PotionLine    `json:"queued_potions"`
}

// GetStatus returns a consistent snapshot of the user's record.
// Expired boosts are shown as inactive but are not reset here.
func (s *service) GetStatus(ctx context.Context, userID string) (*Status, error) {
	now := s.clock.Now()

	u, exists := s.repo.Get(userID)
	if !exists {
		u = domain.NewUserRecord()
	}

	return &Status{
		UserID:        userID,
		Exists:        exists,
		Rolls:         u.Rolls,
		Luck:          roll.BaseLuck(u, now),
		BaseLuck:      u.Luck,
		Streak:        u.DailyLogin.ConsecutiveDays,
		LoginBoost:    boostStatus(domain.BoostKindLogin, u.DailyLogin.ActiveBoost, now),
		AdminBoost:    boostStatus(domain.BoostKindAdmin, u.AdminBoost, now),
		Inventory:     s.inventoryLines(u.Inventory),
		Potions:       s.potionLines(u.LuckPotions),
		QueuedPotions: s.potionLines(u.ActiveLuckPotionUses),
	}, nil
}

func boostStatus(kind domain.BoostKind, b domain.BoostState, now time.Time) BoostStatus {
	return BoostStatus{
		Kind:       kind,
		Multiplier: b.Multiplier,
		Active:     b.Active(now),
		Remaining:  b.Remaining(now),
	}
}

// inventoryLines sorts rarest first; unknown items sort last with a zero denominator
func (s *service) inventoryLines(inv map[string]int) []InventoryLine {
	table := s.catalog.Items()
	lines := make([]InventoryLine, 0, len(inv))
	for name, count := range inv {
		if count <= 0 {
			continue
		}
		lines = append(lines, InventoryLine{
			Item:        name,
			Tier:        domain.TierOf(name),
			Count:       count,
			Denominator: table.Denominator(name),
		})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Denominator != lines[j].Denominator {
			return lines[i].Denominator > lines[j].Denominator
		}
		return lines[i].Item < lines[j].Item
	})
	return lines
}

func (s *service) potionLines(counts map[string]int) []PotionLine {
	lines := make([]PotionLine, 0, len(counts))
	for _, eff := range s.effects {
		if n := counts[eff.PotionID]; n > 0 {
			lines = append(lines, PotionLine{
				PotionID: eff.PotionID,
				Name:     s.catalog.PotionDisplayName(eff.PotionID),
				Count:    n,
			})
		}
	}
	return lines
}
