package services

import (
	"context"
	"time"

	"github.com/ilyakor/quizarena/internal/models"
	"github.com/ilyakor/quizarena/internal/repository"
	"github.com/ilyakor/quizarena/internal/scoring"
)

// RankingService owns point accounting and every leaderboard view.
type RankingService interface {
	// RecordQuizResult folds a finished quiz into the user's profile and
	// returns the points the quiz contributed.
	RecordQuizResult(ctx context.Context, userID, mode string, correctCount, totalQuestions, elapsedSeconds int) (int, error)
	// Position reports the 1-based global rank; 0 means no profile.
	Position(ctx context.Context, userID string) (int, error)
	Page(ctx context.Context, page int) ([]models.LeaderboardRow, error)
	CategoryPage(ctx context.Context, category string, limit int) ([]models.CategoryRow, error)
	ContextPage(ctx context.Context, limit int) ([]models.ContextRow, error)
	PointsToNextRank(ctx context.Context, userID string) (*int, error)
	UpdateWeekly(ctx context.Context, userID, userName, mode string, score, elapsedSeconds int) (bool, error)
	WeeklyTop(ctx context.Context, mode string, limit int) ([]models.WeeklyEntry, error)
	CategoryStatsFor(ctx context.Context, userID string) ([]models.CategoryStats, error)
	Profile(ctx context.Context, userID string) (*models.UserProfile, error)
}

type rankingService struct {
	profiles repository.ProfileRepository
	weekly   repository.WeeklyRepository
	pageSize int
	now      func() time.Time
}

func NewRankingService(profiles repository.ProfileRepository, weekly repository.WeeklyRepository, pageSize int) RankingService {
	return &rankingService{
		profiles: profiles,
		weekly:   weekly,
		pageSize: pageSize,
		now:      time.Now,
	}
}

func (s *rankingService) RecordQuizResult(ctx context.Context, userID, mode string, correctCount, totalQuestions, elapsedSeconds int) (int, error) {
	points := scoring.QuizPoints(mode, correctCount)
	err := s.profiles.ApplyQuizResult(ctx, userID, mode, points, correctCount, totalQuestions, elapsedSeconds)
	if err != nil {
		return 0, err
	}
	return points, nil
}

func (s *rankingService) Position(ctx context.Context, userID string) (int, error) {
	return s.profiles.Position(ctx, userID)
}

func (s *rankingService) Page(ctx context.Context, page int) ([]models.LeaderboardRow, error) {
	if page < 1 {
		page = 1
	}
	return s.profiles.Page(ctx, page-1, s.pageSize)
}

func (s *rankingService) CategoryPage(ctx context.Context, category string, limit int) ([]models.CategoryRow, error) {
	if limit <= 0 {
		limit = s.pageSize
	}
	return s.profiles.CategoryPage(ctx, category, limit)
}

func (s *rankingService) ContextPage(ctx context.Context, limit int) ([]models.ContextRow, error) {
	if limit <= 0 {
		limit = s.pageSize
	}
	return s.profiles.ContextPage(ctx, scoring.ContextCategories(), limit)
}

func (s *rankingService) PointsToNextRank(ctx context.Context, userID string) (*int, error) {
	return s.profiles.PointsToNextRank(ctx, userID)
}

func (s *rankingService) UpdateWeekly(ctx context.Context, userID, userName, mode string, score, elapsedSeconds int) (bool, error) {
	entry := models.WeeklyEntry{
		WeekID:          scoring.WeekID(s.now()),
		Mode:            mode,
		UserID:          userID,
		UserName:        userName,
		BestScore:       score,
		BestTimeSeconds: elapsedSeconds,
	}
	return s.weekly.UpsertBest(ctx, entry)
}

func (s *rankingService) WeeklyTop(ctx context.Context, mode string, limit int) ([]models.WeeklyEntry, error) {
	if limit <= 0 {
		limit = s.pageSize
	}
	return s.weekly.Top(ctx, scoring.WeekID(s.now()), mode, limit)
}

func (s *rankingService) CategoryStatsFor(ctx context.Context, userID string) ([]models.CategoryStats, error) {
	return s.profiles.CategoryStats(ctx, userID)
}

func (s *rankingService) Profile(ctx context.Context, userID string) (*models.UserProfile, error) {
	return s.profiles.Get(ctx, userID)
}
