package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/LuckBot_Go/internal/domain"
	"github.com/osse101/LuckBot_Go/internal/economy"
	"github.com/osse101/LuckBot_Go/internal/logger"
)

// Economy is the part of the economy service admins drive
type Economy interface {
	ApplyAdminBoost(ctx context.Context, multiplier float64, duration time.Duration) (*economy.AdminBoost, error)
	DeleteUser(ctx context.Context, userID string) (bool, error)
	ResetAll(ctx context.Context) (int, error)
	KnownUsers() []string
	SetNotificationChannel(ctx context.Context, channelID domain.Snowflake) error
}

// Sessions is the part of the auto-roll manager admins drive
type Sessions interface {
	Start(ctx context.Context, userID string) (*domain.SessionInfo, error)
	Discard(ctx context.Context, userID string) bool
	DiscardAll(ctx context.Context) int
	List() []domain.SessionInfo
}

// ExpiryScheduler arranges the global admin boost sweep
type ExpiryScheduler interface {
	ScheduleAt(ctx context.Context, at time.Time) error
}

// BoostRequest is a global luck boost issued by an admin
type BoostRequest struct {
	Multiplier float64       `validate:"gt=0,lte=1000000000000"`
	Duration   time.Duration `validate:"gt=0,lte=168h"`
}

// ResetResult reports what a full reset removed
type ResetResult struct {
	Users    int
	Sessions int
}

// DeleteResult reports what a delete command removed
type DeleteResult struct {
	Target   string
	Users    int
	Sessions int
}

// GiveResult reports which users got a new auto-roll session
type GiveResult struct {
	Started []domain.SessionInfo
	Skipped []string
}

// Service defines the admin-gated operations
type Service interface {
	IsAdmin(userID string) bool
	BoostLuck(ctx context.Context, actorID string, req BoostRequest) (*economy.AdminBoost, error)
	ResetAll(ctx context.Context, actorID string) (*ResetResult, error)
	DeleteUser(ctx context.Context, actorID, target string) (*DeleteResult, error)
	GiveAutoRoll(ctx context.Context, actorID, target string) (*GiveResult, error)
	ListSessions(ctx context.Context, actorID string) ([]domain.SessionInfo, error)
	SetNotificationChannel(ctx context.Context, actorID string, channelID domain.Snowflake) error
}

type service struct {
	admins   map[string]struct{}
	econ     Economy
	sessions Sessions
	expiry   ExpiryScheduler
	validate *validator.Validate
}

// NewService creates the admin service. adminIDs is the static allow-list.
func NewService(adminIDs []string, econ Economy, sessions Sessions, expiry ExpiryScheduler) Service {
	admins := make(map[string]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		if id != "" {
			admins[id] = struct{}{}
		}
	}
	return &service{
		admins:   admins,
		econ:     econ,
		sessions: sessions,
		expiry:   expiry,
		validate: validator.New(),
	}
}

func (s *service) IsAdmin(userID string) bool {
	_, ok := s.admins[userID]
	return ok
}

func (s *service) authorize(ctx context.Context, actorID, command string) error {
	if s.IsAdmin(actorID) {
		return nil
	}
	logger.FromContext(ctx).Warn(LogMsgDenied, "user_id", actorID, "command", command)
	return fmt.Errorf(ErrMsgNotAdminFmt, domain.ErrNotAuthorized, actorID)
}

// BoostLuck applies a global boost and schedules its expiry sweep
func (s *service) BoostLuck(ctx context.Context, actorID string, req BoostRequest) (*economy.AdminBoost, error) {
	if err := s.authorize(ctx, actorID, "boostluck"); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf(ErrMsgBoostRequestFmt, domain.ErrInvalidInput, err)
	}

	boost, err := s.econ.ApplyAdminBoost(ctx, req.Multiplier, req.Duration)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgBoostApplied,
		"admin_id", actorID, "multiplier", boost.Multiplier, "duration", boost.Duration, "users", boost.Users)

	if s.expiry != nil {
		if err := s.expiry.ScheduleAt(ctx, boost.EndsAt); err != nil {
			return boost, fmt.Errorf(ErrMsgScheduleExpiryFmt, err)
		}
	}
	return boost, nil
}

// ResetAll stops every session without reporting, then clears all user data
func (s *service) ResetAll(ctx context.Context, actorID string) (*ResetResult, error) {
	if err := s.authorize(ctx, actorID, "resetall"); err != nil {
		return nil, err
	}
	res, err := s.resetAll(ctx)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgResetAll, "admin_id", actorID, "users", res.Users, "sessions", res.Sessions)
	return res, nil
}

func (s *service) resetAll(ctx context.Context) (*ResetResult, error) {
	stopped := s.sessions.DiscardAll(ctx)
	users, err := s.econ.ResetAll(ctx)
	if err != nil {
		return nil, err
	}
	return &ResetResult{Users: users, Sessions: stopped}, nil
}

// DeleteUser removes one user's data, or everyone's when target is "all".
// A running session is discarded first so no in-flight roll recreates the record.
func (s *service) DeleteUser(ctx context.Context, actorID, target string) (*DeleteResult, error) {
	if err := s.authorize(ctx, actorID, "deleteuser"); err != nil {
		return nil, err
	}
	if target == "" {
		return nil, fmt.Errorf(ErrMsgTargetEmptyFmt, domain.ErrInvalidInput)
	}

	if target == TargetAll {
		res, err := s.resetAll(ctx)
		if err != nil {
			return nil, err
		}
		logger.FromContext(ctx).Info(LogMsgUserDeleted, "admin_id", actorID, "target", target, "users", res.Users)
		return &DeleteResult{Target: target, Users: res.Users, Sessions: res.Sessions}, nil
	}

	res := &DeleteResult{Target: target}
	if s.sessions.Discard(ctx, target) {
		res.Sessions = 1
	}
	deleted, err := s.econ.DeleteUser(ctx, target)
	if err != nil {
		return nil, err
	}
	if deleted {
		res.Users = 1
	}
	if res.Users == 0 && res.Sessions == 0 {
		return nil, fmt.Errorf(ErrMsgUserNotFoundFmt, domain.ErrUserNotFound, target)
	}
	logger.FromContext(ctx).Info(LogMsgUserDeleted, "admin_id", actorID, "target", target, "session_discarded", res.Sessions == 1)
	return res, nil
}

// GiveAutoRoll starts a session for one user, or for every known user without one
func (s *service) GiveAutoRoll(ctx context.Context, actorID, target string) (*GiveResult, error) {
	if err := s.authorize(ctx, actorID, "giveautoroll"); err != nil {
		return nil, err
	}
	if target == "" {
		return nil, fmt.Errorf(ErrMsgTargetEmptyFmt, domain.ErrInvalidInput)
	}

	if target != TargetAll {
		info, err := s.sessions.Start(ctx, target)
		if err != nil {
			return nil, err
		}
		logger.FromContext(ctx).Info(LogMsgAutoRollGiven, "admin_id", actorID, "started", 1)
		return &GiveResult{Started: []domain.SessionInfo{*info}}, nil
	}

	res := &GiveResult{}
	var errs []error
	for _, userID := range s.econ.KnownUsers() {
		info, err := s.sessions.Start(ctx, userID)
		switch {
		case err == nil:
			res.Started = append(res.Started, *info)
		case errors.Is(err, domain.ErrSessionAlreadyRunning):
			res.Skipped = append(res.Skipped, userID)
			logger.FromContext(ctx).Debug(LogMsgAutoRollSkipped, "user_id", userID)
		default:
			errs = append(errs, err)
		}
	}
	logger.FromContext(ctx).Info(LogMsgAutoRollGiven,
		"admin_id", actorID, "started", len(res.Started), "skipped", len(res.Skipped), "failed", len(errs))
	return res, errors.Join(errs...)
}

// ListSessions returns every running auto-roll session
func (s *service) ListSessions(ctx context.Context, actorID string) ([]domain.SessionInfo, error) {
	if err := s.authorize(ctx, actorID, "autorollsessions"); err != nil {
		return nil, err
	}
	return s.sessions.List(), nil
}

func (s *service) SetNotificationChannel(ctx context.Context, actorID string, channelID domain.Snowflake) error {
	if err := s.authorize(ctx, actorID, "setchannel"); err != nil {
		return err
	}
	if err := s.econ.SetNotificationChannel(ctx, channelID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgChannelConfigured, "admin_id", actorID, "channel_id", channelID)
	return nil
}
