package economy

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/LuckBot_Go/internal/domain"
	"github.com/osse101/LuckBot_Go/internal/event"
	"github.com/osse101/LuckBot_Go/internal/logger"
)

// AdminBoost describes an applied server-wide admin boost
type AdminBoost struct {
	Multiplier float64       `json:"multiplier"`
	Duration   time.Duration `json:"duration"`
	EndsAt     time.Time     `json:"ends_at"`
	Users      int           `json:"users"`
}

// ApplyAdminBoost sets the admin boost channel of every known user.
// The persisted base luck and the login boost are left untouched.
func (s *service) ApplyAdminBoost(ctx context.Context, multiplier float64, duration time.Duration) (*AdminBoost, error) {
	if !(multiplier > 0) {
		return nil, fmt.Errorf(ErrMsgBoostMultiplierFmt, domain.ErrInvalidInput, multiplier)
	}
	if duration <= 0 {
		return nil, fmt.Errorf(ErrMsgBoostDurationFmt, domain.ErrInvalidInput, duration)
	}

	end := s.clock.Now().Add(duration)
	n, err := s.repo.UpdateAll(func(_ string, u *domain.UserRecord) bool {
		u.AdminBoost = domain.NewBoost(multiplier, end)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBoostFailedFmt, err)
	}

	logger.FromContext(ctx).Info(LogMsgAdminBoostApplied, "multiplier", multiplier, "duration", duration, "users", n)
	return &AdminBoost{Multiplier: multiplier, Duration: duration, EndsAt: end, Users: n}, nil
}

// ExpireAdminBoosts resets every admin boost whose end time has passed and
// announces the expiry once for all users
func (s *service) ExpireAdminBoosts(ctx context.Context) (int, error) {
	now := s.clock.Now()
	n, err := s.repo.UpdateAll(func(_ string, u *domain.UserRecord) bool {
		if !u.AdminBoost.Expired(now) {
			return false
		}
		u.AdminBoost = domain.NeutralBoost()
		return true
	})
	if err != nil {
		return n, fmt.Errorf(ErrMsgExpireBoostFailedFmt, err)
	}
	if n > 0 {
		logger.FromContext(ctx).Info(LogMsgAdminBoostsExpired, "users", n)
		s.publish(ctx, event.NewBoostExpiredEvent(domain.BroadcastUserID, domain.BoostKindAdmin))
	}
	return n, nil
}

func (s *service) AdminBoostEnd() (time.Time, bool) {
	var latest time.Time
	s.repo.ForEach(func(_ string, u *domain.UserRecord) {
		if end, ok := u.AdminBoost.EndsAt(); ok && end.After(latest) {
			latest = end
		}
	})
	return latest, !latest.IsZero()
}

// DeleteUser removes one user's record. Session cleanup is the caller's concern.
func (s *service) DeleteUser(ctx context.Context, userID string) (bool, error) {
	ok, err := s.repo.Delete(userID)
	if err != nil {
		return false, fmt.Errorf(ErrMsgDeleteFailedFmt, userID, err)
	}
	if ok {
		logger.FromContext(ctx).Info(LogMsgUserDeleted, "user_id", userID)
	}
	return ok, nil
}

// ResetAll removes every user record and every saved session
func (s *service) ResetAll(ctx context.Context) (int, error) {
	n, err := s.repo.ResetAll()
	if err != nil {
		return 0, fmt.Errorf(ErrMsgResetFailedFmt, err)
	}
	logger.FromContext(ctx).Info(LogMsgAllReset, "users", n)
	return n, nil
}

// NotificationChannel returns the channel rare drops are announced in
func (s *service) NotificationChannel() domain.Snowflake {
	return s.repo.Settings().NotificationChannelID
}

func (s *service) SetNotificationChannel(ctx context.Context, channelID domain.Snowflake) error {
	if channelID == "" {
		return fmt.Errorf(ErrMsgChannelEmptyFmt, domain.ErrInvalidInput)
	}
	err := s.repo.UpdateSettings(func(b *domain.BotSettings) {
		b.NotificationChannelID = channelID
	})
	if err != nil {
		return fmt.Errorf(ErrMsgSettingsFailedFmt, err)
	}
	logger.FromContext(ctx).Info(LogMsgChannelSet, "channel_id", channelID)
	return nil
}
