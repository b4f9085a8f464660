package roll

import (
	"time"

	"github.com/osse101/LuckBot_Go/internal/domain"
)

// Luck is the composed luck factor for one roll and what went into it
type Luck struct {
	Factor float64
	// Potion is set when a queued potion was consumed for this roll
	Potion *domain.PotionEffect
	// Expired lists boost channels reset to neutral while composing
	Expired []domain.BoostKind
}

// ExpireBoosts resets login and admin boosts whose end time has passed.
// Each channel is checked independently; resetting one never touches the other.
func ExpireBoosts(u *domain.UserRecord, now time.Time) []domain.BoostKind {
	var expired []domain.BoostKind
	if u.DailyLogin.ActiveBoost.Expired(now) {
		u.DailyLogin.ActiveBoost = domain.NeutralBoost()
		expired = append(expired, domain.BoostKindLogin)
	}
	if u.AdminBoost.Expired(now) {
		u.AdminBoost = domain.NeutralBoost()
		expired = append(expired, domain.BoostKindAdmin)
	}
	return expired
}

// BaseLuck returns luck × unexpired login boost × unexpired admin boost.
// It does not mutate the record or consume potions.
func BaseLuck(u *domain.UserRecord, now time.Time) float64 {
	luck := u.Luck
	if u.DailyLogin.ActiveBoost.Active(now) {
		luck *= u.DailyLogin.ActiveBoost.Multiplier
	}
	if u.AdminBoost.Active(now) {
		luck *= u.AdminBoost.Multiplier
	}
	return luck
}

// ConsumePotion takes one queued use of the strongest potion the user has queued.
// effects must be ordered strongest first.
func ConsumePotion(u *domain.UserRecord, effects []domain.PotionEffect) (domain.PotionEffect, bool) {
	for _, eff := range effects {
		if u.ActiveLuckPotionUses[eff.PotionID] > 0 {
			domain.SubtractCount(u.ActiveLuckPotionUses, eff.PotionID, 1)
			return eff, true
		}
	}
	return domain.PotionEffect{}, false
}

// Prepare expires stale boosts, consumes at most one queued potion and returns
// the composed luck factor for the next roll. The record is mutated in place.
func Prepare(u *domain.UserRecord, now time.Time, effects []domain.PotionEffect) Luck {
	l := Luck{Expired: ExpireBoosts(u, now)}
	l.Factor = BaseLuck(u, now)
	if eff, ok := ConsumePotion(u, effects); ok {
		l.Factor *= eff.Multiplier
		l.Potion = &eff
	}
	return l
}
