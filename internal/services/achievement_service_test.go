package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ilyakor/quizarena/internal/models"
	"github.com/ilyakor/quizarena/internal/services"
	"github.com/ilyakor/quizarena/internal/testutil/mocks"
)

func TestAchievementServiceChallengeResult(t *testing.T) {
	profiles := new(mocks.MockProfileRepository)
	svc := services.NewAchievementService(profiles)

	// 19/20 in challenge: bonus tier 18+ pays 5, streak qualifies.
	profiles.On("GrantDailyBonus", mock.Anything, "u1", "challenge", 5, mock.Anything).Return(true, nil)
	profiles.On("ApplyStreak", mock.Anything, "u1", true, mock.Anything).Return(2, nil)

	out, err := svc.ApplyResult(context.Background(), "u1", "challenge", 19, 20)
	require.NoError(t, err)
	assert.Equal(t, 5, out.BonusPoints)
	assert.Equal(t, 2, out.StreakCount)
	assert.Empty(t, out.Unlocked)
	profiles.AssertExpectations(t)
}

func TestAchievementServiceStreakUnlockAtThree(t *testing.T) {
	profiles := new(mocks.MockProfileRepository)
	svc := services.NewAchievementService(profiles)

	profiles.On("GrantDailyBonus", mock.Anything, "u1", "challenge", 5, mock.Anything).Return(true, nil)
	profiles.On("ApplyStreak", mock.Anything, "u1", true, mock.Anything).Return(3, nil)
	profiles.On("GrantAchievement", mock.Anything, "u1", models.AchievementStreak, mock.Anything).Return(true, nil)

	out, err := svc.ApplyResult(context.Background(), "u1", "challenge", 18, 20)
	require.NoError(t, err)
	assert.Contains(t, out.Unlocked, models.AchievementStreak)
}

func TestAchievementServiceStreakUnlockOnlyOnce(t *testing.T) {
	profiles := new(mocks.MockProfileRepository)
	svc := services.NewAchievementService(profiles)

	profiles.On("GrantDailyBonus", mock.Anything, "u1", "challenge", 5, mock.Anything).Return(false, nil)
	profiles.On("ApplyStreak", mock.Anything, "u1", true, mock.Anything).Return(5, nil)
	// Day five of the streak: the write-once grant reports already-present.
	profiles.On("GrantAchievement", mock.Anything, "u1", models.AchievementStreak, mock.Anything).Return(false, nil)

	out, err := svc.ApplyResult(context.Background(), "u1", "challenge", 18, 20)
	require.NoError(t, err)
	assert.Empty(t, out.Unlocked)
	assert.Equal(t, 0, out.BonusPoints)
}

func TestAchievementServicePerfectScore(t *testing.T) {
	profiles := new(mocks.MockProfileRepository)
	svc := services.NewAchievementService(profiles)

	// easy is not a bonus mode: no daily bonus, no streak.
	profiles.On("GrantAchievement", mock.Anything, "u1", models.AchievementPerfect, mock.Anything).Return(true, nil)

	out, err := svc.ApplyResult(context.Background(), "u1", "easy", 20, 20)
	require.NoError(t, err)
	assert.Contains(t, out.Unlocked, models.AchievementPerfect)
	profiles.AssertNotCalled(t, "ApplyStreak", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	profiles.AssertNotCalled(t, "GrantDailyBonus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAchievementServiceLowScoreResetsStreak(t *testing.T) {
	profiles := new(mocks.MockProfileRepository)
	svc := services.NewAchievementService(profiles)

	// 14/20 in marathon: below every bonus tier, streak does not qualify.
	profiles.On("ApplyStreak", mock.Anything, "u1", false, mock.Anything).Return(0, nil)

	out, err := svc.ApplyResult(context.Background(), "u1", "marathon", 14, 20)
	require.NoError(t, err)
	assert.Equal(t, 0, out.BonusPoints)
	assert.Equal(t, 0, out.StreakCount)
	profiles.AssertNotCalled(t, "GrantDailyBonus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
