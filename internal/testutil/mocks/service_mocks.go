package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ilyakor/quizarena/internal/models"
	"github.com/ilyakor/quizarena/internal/services"
)

// MockRankingService is a mock implementation of services.RankingService
type MockRankingService struct {
	mock.Mock
}

func (m *MockRankingService) RecordQuizResult(ctx context.Context, userID, mode string, correctCount, totalQuestions, elapsedSeconds int) (int, error) {
	args := m.Called(ctx, userID, mode, correctCount, totalQuestions, elapsedSeconds)
	return args.Int(0), args.Error(1)
}

func (m *MockRankingService) Position(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockRankingService) Page(ctx context.Context, page int) ([]models.LeaderboardRow, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LeaderboardRow), args.Error(1)
}

func (m *MockRankingService) CategoryPage(ctx context.Context, category string, limit int) ([]models.CategoryRow, error) {
	args := m.Called(ctx, category, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CategoryRow), args.Error(1)
}

func (m *MockRankingService) ContextPage(ctx context.Context, limit int) ([]models.ContextRow, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ContextRow), args.Error(1)
}

func (m *MockRankingService) PointsToNextRank(ctx context.Context, userID string) (*int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int), args.Error(1)
}

func (m *MockRankingService) UpdateWeekly(ctx context.Context, userID, userName, mode string, score, elapsedSeconds int) (bool, error) {
	args := m.Called(ctx, userID, userName, mode, score, elapsedSeconds)
	return args.Bool(0), args.Error(1)
}

func (m *MockRankingService) WeeklyTop(ctx context.Context, mode string, limit int) ([]models.WeeklyEntry, error) {
	args := m.Called(ctx, mode, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WeeklyEntry), args.Error(1)
}

func (m *MockRankingService) CategoryStatsFor(ctx context.Context, userID string) ([]models.CategoryStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CategoryStats), args.Error(1)
}

func (m *MockRankingService) Profile(ctx context.Context, userID string) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

// MockAchievementService is a mock implementation of services.AchievementService
type MockAchievementService struct {
	mock.Mock
}

func (m *MockAchievementService) ApplyResult(ctx context.Context, userID, mode string, correctCount, totalQuestions int) (*services.AchievementOutcome, error) {
	args := m.Called(ctx, userID, mode, correctCount, totalQuestions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AchievementOutcome), args.Error(1)
}

func (m *MockAchievementService) Achievements(ctx context.Context, userID string) (map[string]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}
