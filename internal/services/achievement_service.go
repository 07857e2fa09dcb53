package services

import (
	"context"
	"time"

	"github.com/ilyakor/quizarena/internal/logger"
	"github.com/ilyakor/quizarena/internal/models"
	"github.com/ilyakor/quizarena/internal/repository"
	"github.com/ilyakor/quizarena/internal/scoring"
)

// AchievementOutcome is what a finished quiz earned beyond its base points.
type AchievementOutcome struct {
	BonusPoints int      `json:"bonus_points"`
	StreakCount int      `json:"streak_count"`
	Unlocked    []string `json:"unlocked,omitempty"`
}

// AchievementService applies the daily bonus, the streak transition and the
// one-time achievement grants after a quiz finishes. The three steps are
// independent: a failure in one is logged and the rest still run, so a
// partial application can be retried without double-granting anything.
type AchievementService interface {
	ApplyResult(ctx context.Context, userID, mode string, correctCount, totalQuestions int) (*AchievementOutcome, error)
	Achievements(ctx context.Context, userID string) (map[string]string, error)
}

type achievementService struct {
	profiles repository.ProfileRepository
	now      func() time.Time
}

func NewAchievementService(profiles repository.ProfileRepository) AchievementService {
	return &achievementService{
		profiles: profiles,
		now:      time.Now,
	}
}

func (s *achievementService) ApplyResult(ctx context.Context, userID, mode string, correctCount, totalQuestions int) (*AchievementOutcome, error) {
	log := logger.FromContext(ctx).WithPrefix("achievement_service")
	today := s.now()
	dateKey := scoring.DateKey(today)
	out := &AchievementOutcome{}

	if bonus := scoring.DailyBonus(mode, correctCount); bonus > 0 {
		granted, err := s.profiles.GrantDailyBonus(ctx, userID, mode, bonus, dateKey)
		if err != nil {
			log.WithField("user_id", userID).Error("grant daily bonus: %v", err)
		} else if granted {
			out.BonusPoints = bonus
		}
	}

	if scoring.HasBonusSchedule(mode) {
		qualified := scoring.StreakQualifies(mode, correctCount)
		count, err := s.profiles.ApplyStreak(ctx, userID, qualified, today)
		if err != nil {
			log.WithField("user_id", userID).Error("apply streak: %v", err)
		} else {
			out.StreakCount = count
			if count >= scoring.StreakAchievementAt {
				s.grant(ctx, out, userID, models.AchievementStreak, dateKey)
			}
		}
	}

	if scoring.IsPerfect(correctCount, totalQuestions) {
		s.grant(ctx, out, userID, models.AchievementPerfect, dateKey)
	}

	return out, nil
}

func (s *achievementService) grant(ctx context.Context, out *AchievementOutcome, userID, achievement, dateKey string) {
	granted, err := s.profiles.GrantAchievement(ctx, userID, achievement, dateKey)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("achievement_service").WithField("user_id", userID).Error("grant %s: %v", achievement, err)
		return
	}
	if granted {
		out.Unlocked = append(out.Unlocked, achievement)
	}
}

func (s *achievementService) Achievements(ctx context.Context, userID string) (map[string]string, error) {
	return s.profiles.Achievements(ctx, userID)
}
