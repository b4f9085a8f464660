package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/LuckBot_Go/internal/domain"
	"github.com/osse101/LuckBot_Go/internal/economy"
)

type MockEconomy struct {
	mock.Mock
}

func (m *MockEconomy) GetStatus(ctx context.Context, userID string) (*economy.Status, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.Status), args.Error(1)
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

func (m *MockEconomy) TotalRolls() int {
	return m.Called().Int(0)
}

type MockRecipes struct {
	mock.Mock
}

func (m *MockRecipes) GetRecipe(itemName string) (*domain.CraftingRecipe, error) {
	args := m.Called(itemName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CraftingRecipe), args.Error(1)
}

func (m *MockRecipes) PotionRecipes() []domain.PotionRecipe {
	return m.Called().Get(0).([]domain.PotionRecipe)
}

type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) List() []domain.SessionInfo {
	return m.Called().Get(0).([]domain.SessionInfo)
}

type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) CheckHealth(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
