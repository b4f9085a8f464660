package admin

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/LuckBot_Go/internal/domain"
	"github.com/osse101/LuckBot_Go/internal/economy"
)

type MockEconomy struct {
	mock.Mock
}

func (m *MockEconomy) ApplyAdminBoost(ctx context.Context, multiplier float64, duration time.Duration) (*economy.AdminBoost, error) {
	args := m.Called(ctx, multiplier, duration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.AdminBoost), args.Error(1)
}

func (m *MockEconomy) DeleteUser(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEconomy) ResetAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockEconomy) KnownUsers() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockEconomy) SetNotificationChannel(ctx context.Context, channelID domain.Snowflake) error {
	args := m.Called(ctx, channelID)
	return args.Error(0)
}

type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) Start(ctx context.Context, userID string) (*domain.SessionInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionInfo), args.Error(1)
}

func (m *MockSessions) Discard(ctx context.Context, userID string) bool {
	args := m.Called(ctx, userID)
	return args.Bool(0)
}

func (m *MockSessions) DiscardAll(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}

func (m *MockSessions) List() []domain.SessionInfo {
	args := m.Called()
	return args.Get(0).([]domain.SessionInfo)
}

type MockExpiryScheduler struct {
	mock.Mock
}

func (m *MockExpiryScheduler) ScheduleAt(ctx context.Context, at time.Time) error {
	args := m.Called(ctx, at)
	return args.Error(0)
}
