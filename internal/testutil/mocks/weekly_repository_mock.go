package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ilyakor/quizarena/internal/models"
)

// MockWeeklyRepository is a mock implementation of repository.WeeklyRepository
type MockWeeklyRepository struct {
	mock.Mock
}

func (m *MockWeeklyRepository) UpsertBest(ctx context.Context, entry models.WeeklyEntry) (bool, error) {
	args := m.Called(ctx, entry)
	return args.Bool(0), args.Error(1)
}

func (m *MockWeeklyRepository) Get(ctx context.Context, weekID, mode, userID string) (*models.WeeklyEntry, error) {
	args := m.Called(ctx, weekID, mode, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeeklyEntry), args.Error(1)
}

func (m *MockWeeklyRepository) Top(ctx context.Context, weekID, mode string, limit int) ([]models.WeeklyEntry, error) {
	args := m.Called(ctx, weekID, mode, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WeeklyEntry), args.Error(1)
}
