package economy

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/osse101/LuckBot_Go/internal/domain"
	"github.com/osse101/LuckBot_Go/internal/logger"
	"github.com/osse101/LuckBot_Go/internal/metrics"
	"github.com/osse101/LuckBot_Go/internal/roll"
	"github.com/osse101/LuckBot_Go/internal/store"
)

// LoginResult describes a claimed daily login
type LoginResult struct {
	Streak     int           `json:"streak"`
	Multiplier float64       `json:"multiplier"`
	Duration   time.Duration `json:"duration"`
	EndsAt     time.Time     `json:"ends_at"`
	// Luck is the composed luck right after the claim
	Luck float64 `json:"luck"`
}

// LoginBoostFor returns the streak boost multiplier and duration for a streak length
func LoginBoostFor(days int) (float64, time.Duration) {
	if days < 1 {
		days = 1
	}
	multiplier := math.Min(1+LoginBoostStep*float64(days), LoginBoostCap)
	multiplier = math.Round(multiplier*100) / 100

	duration := LoginBoostBaseDuration + time.Duration(days-1)*time.Minute
	if duration > LoginBoostMaxDuration {
		duration = LoginBoostMaxDuration
	}
	return multiplier, duration
}

// Login claims the daily login boost. Days are UTC calendar days.
func (s *service) Login(ctx context.Context, userID string) (*LoginResult, error) {
	log := logger.FromContext(ctx)
	now := s.clock.Now()
	today := now.UTC().Format(domain.LoginDateLayout)
	yesterday := now.UTC().AddDate(0, 0, -1).Format(domain.LoginDateLayout)

	var result *LoginResult
	err := s.repo.Update(userID, func(tx *store.Tx) error {
		dl := &tx.User.DailyLogin

		last := ""
		if dl.LastLoginDate != nil {
			last = *dl.LastLoginDate
		}
		if last == today {
			return domain.ErrAlreadyLoggedIn
		}
		if last == yesterday {
			dl.ConsecutiveDays++
		} else {
			dl.ConsecutiveDays = 1
		}

		multiplier, duration := LoginBoostFor(dl.ConsecutiveDays)
		end := now.Add(duration)
		dl.ActiveBoost = domain.NewBoost(multiplier, end)
		dl.LastLoginDate = &today

		result = &LoginResult{
			Streak:     dl.ConsecutiveDays,
			Multiplier: multiplier,
			Duration:   duration,
			EndsAt:     end,
			Luck:       roll.BaseLuck(tx.User, now),
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyLoggedIn) {
			return nil, err
		}
		return nil, fmt.Errorf(ErrMsgLoginFailedFmt, userID, err)
	}

	metrics.DailyLogins.Inc()
	log.Info(LogMsgLoginClaimed, "user_id", userID, "streak", result.Streak, "multiplier", result.Multiplier, "duration", result.Duration)
	return result, nil
}
