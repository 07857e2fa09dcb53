package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ilyakor/quizarena/internal/models"
)

// MockProfileRepository is a mock implementation of repository.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) Upsert(ctx context.Context, userID, name string) error {
	args := m.Called(ctx, userID, name)
	return args.Error(0)
}

func (m *MockProfileRepository) TouchActivity(ctx context.Context, userID string, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

func (m *MockProfileRepository) ApplyQuizResult(ctx context.Context, userID, mode string, points, correctCount, totalQuestions, elapsedSeconds int) error {
	args := m.Called(ctx, userID, mode, points, correctCount, totalQuestions, elapsedSeconds)
	return args.Error(0)
}

func (m *MockProfileRepository) CategoryStats(ctx context.Context, userID string) ([]models.CategoryStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CategoryStats), args.Error(1)
}

func (m *MockProfileRepository) ApplyStreak(ctx context.Context, userID string, qualified bool, today time.Time) (int, error) {
	args := m.Called(ctx, userID, qualified, today)
	return args.Int(0), args.Error(1)
}

func (m *MockProfileRepository) GrantAchievement(ctx context.Context, userID, achievement, earnedOn string) (bool, error) {
	args := m.Called(ctx, userID, achievement, earnedOn)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileRepository) Achievements(ctx context.Context, userID string) (map[string]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockProfileRepository) GrantDailyBonus(ctx context.Context, userID, mode string, points int, date string) (bool, error) {
	args := m.Called(ctx, userID, mode, points, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileRepository) ApplyDuelResult(ctx context.Context, userID string, result models.DuelResult, bonusPoints int) error {
	args := m.Called(ctx, userID, result, bonusPoints)
	return args.Error(0)
}

func (m *MockProfileRepository) Position(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockProfileRepository) Page(ctx context.Context, page, pageSize int) ([]models.LeaderboardRow, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LeaderboardRow), args.Error(1)
}

func (m *MockProfileRepository) CategoryPage(ctx context.Context, category string, limit int) ([]models.CategoryRow, error) {
	args := m.Called(ctx, category, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CategoryRow), args.Error(1)
}

func (m *MockProfileRepository) ContextPage(ctx context.Context, categories []string, limit int) ([]models.ContextRow, error) {
	args := m.Called(ctx, categories, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ContextRow), args.Error(1)
}

func (m *MockProfileRepository) PointsToNextRank(ctx context.Context, userID string) (*int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int), args.Error(1)
}
