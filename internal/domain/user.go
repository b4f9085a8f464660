package domain

import "time"

// UserSchemaVersion is the current version of the persisted user record.
// Increment this when adding fields that need a non-zero default on load.
const UserSchemaVersion = 1

// Default multipliers for a fresh record
const (
	DefaultLuck            = 1.0
	NeutralBoostMultiplier = 1.0
)

// LoginDateLayout is the calendar-day layout used for daily login tracking
const LoginDateLayout = "2006-01-02"

// BoostState is a temporary luck multiplier with an optional expiry.
// EndTime is epoch seconds; nil means the boost is not active.
type BoostState struct {
	Multiplier float64  `json:"multiplier"`
	EndTime    *float64 `json:"end_time"`
}

// NeutralBoost returns an inactive boost
func NeutralBoost() BoostState {
	return BoostState{Multiplier: NeutralBoostMultiplier}
}

// NewBoost returns a boost that ends at the given time
func NewBoost(multiplier float64, end time.Time) BoostState {
	epoch := float64(end.UnixNano()) / float64(time.Second)
	return BoostState{Multiplier: multiplier, EndTime: &epoch}
}

// EndsAt returns the boost end time. The second value is false when no end time is set.
func (b BoostState) EndsAt() (time.Time, bool) {
	if b.EndTime == nil {
		return time.Time{}, false
	}
	sec := int64(*b.EndTime)
	nsec := int64((*b.EndTime - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec), true
}

// Active reports whether the boost applies at the given time
func (b BoostState) Active(now time.Time) bool {
	end, ok := b.EndsAt()
	return ok && now.Before(end)
}

// Expired reports whether the boost has an end time that has passed
func (b BoostState) Expired(now time.Time) bool {
	end, ok := b.EndsAt()
	return ok && !now.Before(end)
}

// Remaining returns the time left on an active boost, or zero
func (b BoostState) Remaining(now time.Time) time.Duration {
	end, ok := b.EndsAt()
	if !ok || !now.Before(end) {
		return 0
	}
	return end.Sub(now)
}

// DailyLogin tracks the login streak and the streak boost it grants
type DailyLogin struct {
	LastLoginDate   *string    `json:"last_login_date"`
	ConsecutiveDays int        `json:"consecutive_days"`
	ActiveBoost     BoostState `json:"active_boost"`
}

// UserRecord is the persisted per-user economy state, keyed by platform user id
type UserRecord struct {
	SchemaVersion        int            `json:"schema_version"`
	Rolls                int            `json:"rolls"`
	Luck                 float64        `json:"luck"`
	Inventory            map[string]int `json:"inventory"`
	LuckPotions          map[string]int `json:"luck_potions"`
	ActiveLuckPotionUses map[string]int `json:"active_luck_potion_uses"`
	DailyLogin           DailyLogin     `json:"daily_login"`
	AdminBoost           BoostState     `json:"admin_boost"`
}

// NewUserRecord returns a record with default values
func NewUserRecord() *UserRecord {
	return &UserRecord{
		SchemaVersion:        UserSchemaVersion,
		Luck:                 DefaultLuck,
		Inventory:            make(map[string]int),
		LuckPotions:          make(map[string]int),
		ActiveLuckPotionUses: make(map[string]int),
		DailyLogin: DailyLogin{
			ActiveBoost: NeutralBoost(),
		},
		AdminBoost: NeutralBoost(),
	}
}

// Migrate backfills fields missing from records written by older versions.
// It never removes data. Returns true if the record was changed.
func (u *UserRecord) Migrate() bool {
	changed := false
	if u.Inventory == nil {
		u.Inventory = make(map[string]int)
		changed = true
	}
	if u.LuckPotions == nil {
		u.LuckPotions = make(map[string]int)
		changed = true
	}
	if u.ActiveLuckPotionUses == nil {
		u.ActiveLuckPotionUses = make(map[string]int)
		changed = true
	}

	if u.SchemaVersion < 1 {
		// Version 0 records predate the schema field; zero multipliers there mean "absent".
		if u.Luck == 0 {
			u.Luck = DefaultLuck
		}
		if u.DailyLogin.ActiveBoost.Multiplier == 0 {
			u.DailyLogin.ActiveBoost.Multiplier = NeutralBoostMultiplier
		}
		if u.AdminBoost.Multiplier == 0 {
			u.AdminBoost.Multiplier = NeutralBoostMultiplier
		}
		u.SchemaVersion = UserSchemaVersion
		changed = true
	}
	return changed
}

// Clone returns a deep copy that shares no maps with the receiver
func (u *UserRecord) Clone() *UserRecord {
	c := *u
	c.Inventory = cloneCounts(u.Inventory)
	c.LuckPotions = cloneCounts(u.LuckPotions)
	c.ActiveLuckPotionUses = cloneCounts(u.ActiveLuckPotionUses)
	if u.DailyLogin.LastLoginDate != nil {
		d := *u.DailyLogin.LastLoginDate
		c.DailyLogin.LastLoginDate = &d
	}
	c.DailyLogin.ActiveBoost = u.DailyLogin.ActiveBoost.clone()
	c.AdminBoost = u.AdminBoost.clone()
	return &c
}

func (b BoostState) clone() BoostState {
	if b.EndTime == nil {
		return b
	}
	end := *b.EndTime
	return BoostState{Multiplier: b.Multiplier, EndTime: &end}
}

func cloneCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
