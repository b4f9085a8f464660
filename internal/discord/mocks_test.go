package discord

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/LuckBot_Go/internal/admin"
	"github.com/osse101/LuckBot_Go/internal/crafting"
	"github.com/osse101/LuckBot_Go/internal/domain"
	"github.com/osse101/LuckBot_Go/internal/economy"
	"github.com/osse101/LuckBot_Go/internal/worker"
)

type MockEconomy struct {
	mock.Mock
}

func (m *MockEconomy) Roll(ctx context.Context, userID string) (*economy.RollResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.RollResult), args.Error(1)
}

func (m *MockEconomy) GetStatus(ctx context.Context, userID string) (*economy.Status, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.Status), args.Error(1)
}

func (m *MockEconomy) Login(ctx context.Context, userID string) (*economy.LoginResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.LoginResult), args.Error(1)
}

func (m *MockEconomy) ItemList(ctx context.Context, userID string) (*economy.ItemCatalog, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.ItemCatalog), args.Error(1)
}

func (m *MockEconomy) Ranking(ctx context.Context) []economy.RankingEntry {
	args := m.Called(ctx)
	return args.Get(0).([]economy.RankingEntry)
}

type MockCrafting struct {
	mock.Mock
}

func (m *MockCrafting) Craft(ctx context.Context, userID, itemName string, qty domain.Quantity) (*crafting.Result, error) {
	args := m.Called(ctx, userID, itemName, qty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crafting.Result), args.Error(1)
}

func (m *MockCrafting) MakePotion(ctx context.Context, userID, potionName string, qty domain.Quantity) (*crafting.Result, error) {
	args := m.Called(ctx, userID, potionName, qty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crafting.Result), args.Error(1)
}

func (m *MockCrafting) UsePotion(ctx context.Context, userID, potionName string, qty domain.Quantity) (*crafting.UsePotionResult, error) {
	args := m.Called(ctx, userID, potionName, qty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crafting.UsePotionResult), args.Error(1)
}

func (m *MockCrafting) GetRecipe(itemName string) (*domain.CraftingRecipe, error) {
	args := m.Called(itemName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CraftingRecipe), args.Error(1)
}

func (m *MockCrafting) PotionRecipes() []domain.PotionRecipe {
	args := m.Called()
	return args.Get(0).([]domain.PotionRecipe)
}

type MockAutoRoller struct {
	mock.Mock
}

func (m *MockAutoRoller) Start(ctx context.Context, userID string) (*domain.SessionInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionInfo), args.Error(1)
}

func (m *MockAutoRoller) Stop(ctx context.Context, userID string) (*domain.AutoRollResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AutoRollResult), args.Error(1)
}

func (m *MockAutoRoller) Remaining(userID string) (time.Duration, error) {
	args := m.Called(userID)
	return args.Get(0).(time.Duration), args.Error(1)
}

type MockAdmin struct {
	mock.Mock
}

func (m *MockAdmin) IsAdmin(userID string) bool {
	return m.Called(userID).Bool(0)
}

func (m *MockAdmin) BoostLuck(ctx context.Context, actorID string, req admin.BoostRequest) (*economy.AdminBoost, error) {
	args := m.Called(ctx, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.AdminBoost), args.Error(1)
}

func (m *MockAdmin) ResetAll(ctx context.Context, actorID string) (*admin.ResetResult, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*admin.ResetResult), args.Error(1)
}

func (m *MockAdmin) DeleteUser(ctx context.Context, actorID, target string) (*admin.DeleteResult, error) {
	args := m.Called(ctx, actorID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*admin.DeleteResult), args.Error(1)
}

func (m *MockAdmin) GiveAutoRoll(ctx context.Context, actorID, target string) (*admin.GiveResult, error) {
	args := m.Called(ctx, actorID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*admin.GiveResult), args.Error(1)
}

func (m *MockAdmin) ListSessions(ctx context.Context, actorID string) ([]domain.SessionInfo, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SessionInfo), args.Error(1)
}

func (m *MockAdmin) SetNotificationChannel(ctx context.Context, actorID string, channelID domain.Snowflake) error {
	return m.Called(ctx, actorID, channelID).Error(0)
}

type stubChannels struct {
	channel domain.Snowflake
}

func (s stubChannels) NotificationChannel() domain.Snowflake {
	return s.channel
}

// syncQueue runs jobs as soon as they are queued
type syncQueue struct {
	jobs int
}

func (q *syncQueue) Enqueue(job worker.Job) bool {
	q.jobs++
	_ = job.Process(context.Background())
	return true
}
