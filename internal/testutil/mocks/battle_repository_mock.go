package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ilyakor/quizarena/internal/models"
)

// MockBattleRepository is a mock implementation of repository.BattleRepository
type MockBattleRepository struct {
	mock.Mock
}

func (m *MockBattleRepository) Insert(ctx context.Context, battle models.Battle) error {
	args := m.Called(ctx, battle)
	return args.Error(0)
}

func (m *MockBattleRepository) Get(ctx context.Context, id string) (*models.Battle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Battle), args.Error(1)
}

func (m *MockBattleRepository) ListWaiting(ctx context.Context, createdAfter time.Time, limit int) ([]models.Battle, error) {
	args := m.Called(ctx, createdAfter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Battle), args.Error(1)
}

func (m *MockBattleRepository) Join(ctx context.Context, battleID, opponentID, opponentName string, createdAfter time.Time) (bool, error) {
	args := m.Called(ctx, battleID, opponentID, opponentName, createdAfter)
	return args.Bool(0), args.Error(1)
}

func (m *MockBattleRepository) UpdateSide(ctx context.Context, battleID string, side models.BattleSideName, p models.SideProgress) (bool, error) {
	args := m.Called(ctx, battleID, side, p)
	return args.Bool(0), args.Error(1)
}

func (m *MockBattleRepository) MarkSideFinished(ctx context.Context, battleID string, side models.BattleSideName) (bool, error) {
	args := m.Called(ctx, battleID, side)
	return args.Bool(0), args.Error(1)
}

func (m *MockBattleRepository) TryResolve(ctx context.Context, battleID string) (bool, error) {
	args := m.Called(ctx, battleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBattleRepository) SetOutcome(ctx context.Context, battleID string, outcome models.BattleOutcome, winnerID string, creatorPoints, opponentPoints int) error {
	args := m.Called(ctx, battleID, outcome, winnerID, creatorPoints, opponentPoints)
	return args.Error(0)
}

func (m *MockBattleRepository) ListStaleWaiting(ctx context.Context, olderThan time.Time) ([]string, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBattleRepository) DeleteIfWaiting(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
