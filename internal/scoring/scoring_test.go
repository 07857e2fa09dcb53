package scoring_test

import (
	"testing"
	"time"

	"github.com/ilyakor/quizarena/internal/models"
	"github.com/ilyakor/quizarena/internal/scoring"
	"github.com/stretchr/testify/assert"
)

func TestQuizPoints_Multipliers(t *testing.T) {
	tests := []struct {
		mode    string
		correct int
		want    int
	}{
		{scoring.ModeEasy, 8, 8},
		{scoring.ModeMedium, 10, 20},
		{scoring.ModeHard, 5, 15},
		{scoring.ModeMovies, 4, 12},
		{scoring.CategoryHistory, 10, 0},
		{scoring.CategoryCulture, 7, 0},
		{"unknown", 3, 0},
		{scoring.ModeEasy, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, scoring.QuizPoints(tt.mode, tt.correct), "mode=%s correct=%d", tt.mode, tt.correct)
	}
}

func TestIsContextCategory(t *testing.T) {
	assert.True(t, scoring.IsContextCategory(scoring.CategoryHistory))
	assert.True(t, scoring.IsContextCategory(scoring.CategoryCulture))
	assert.False(t, scoring.IsContextCategory(scoring.ModeEasy))
	assert.False(t, scoring.IsContextCategory(scoring.ModeChallenge))
}

func TestDailyBonus_HighestThresholdWins(t *testing.T) {
	tests := []struct {
		mode  string
		score int
		want  int
	}{
		{scoring.ModeChallenge, 20, 10},
		{scoring.ModeChallenge, 19, 5},
		{scoring.ModeChallenge, 18, 5},
		{scoring.ModeChallenge, 15, 3},
		{scoring.ModeChallenge, 14, 0},
		{scoring.ModeMarathon, 20, 15},
		{scoring.ModeMarathon, 18, 8},
		{scoring.ModeMarathon, 16, 4},
		{scoring.ModeMarathon, 10, 0},
		{scoring.ModeEasy, 20, 0}, // no schedule outside challenge modes
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, scoring.DailyBonus(tt.mode, tt.score), "mode=%s score=%d", tt.mode, tt.score)
	}
}

func TestNextStreak(t *testing.T) {
	today := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	yesterday := scoring.DateKey(today.AddDate(0, 0, -1))

	tests := []struct {
		name      string
		current   int
		lastDate  string
		qualified bool
		want      int
	}{
		{"first ever", 0, "", true, 1},
		{"consecutive day", 2, yesterday, true, 3},
		{"same day repeat", 2, scoring.DateKey(today), true, 2},
		{"gap resets", 5, "2026-08-20", true, 1},
		{"low score resets", 5, yesterday, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoring.NextStreak(tt.current, tt.lastDate, today, tt.qualified))
		})
	}
}

func TestStreakQualifies(t *testing.T) {
	assert.True(t, scoring.StreakQualifies(scoring.ModeChallenge, 18))
	assert.True(t, scoring.StreakQualifies(scoring.ModeMarathon, 20))
	assert.False(t, scoring.StreakQualifies(scoring.ModeChallenge, 17))
	assert.False(t, scoring.StreakQualifies(scoring.ModeEasy, 20), "non-challenge modes never qualify")
}

func TestIsPerfect(t *testing.T) {
	assert.True(t, scoring.IsPerfect(20, 20))
	assert.False(t, scoring.IsPerfect(19, 20))
	assert.False(t, scoring.IsPerfect(0, 0), "empty quiz is not perfect")
}

func TestWeekID(t *testing.T) {
	assert.Equal(t, "2026-W35", scoring.WeekID(time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)))
	// ISO week of Jan 1st can belong to the previous year.
	assert.Equal(t, "2020-W53", scoring.WeekID(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDecideBattle(t *testing.T) {
	tests := []struct {
		name          string
		cScore, cTime int
		oScore, oTime int
		want          models.BattleOutcome
	}{
		{"higher score wins", 18, 120, 15, 60, models.OutcomeCreatorWon},
		{"tie broken by lower time", 18, 90, 18, 70, models.OutcomeOpponentWon},
		{"full tie is a draw", 10, 100, 10, 100, models.OutcomeDraw},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := models.BattleSide{Score: tt.cScore, TimeSeconds: tt.cTime}
			opponent := models.BattleSide{Score: tt.oScore, TimeSeconds: tt.oTime}
			assert.Equal(t, tt.want, scoring.DecideBattle(creator, opponent))
		})
	}
}

func TestBattleBonuses(t *testing.T) {
	c, o := scoring.BattleBonuses(models.OutcomeOpponentWon)
	assert.Equal(t, 0, c)
	assert.Equal(t, 5, o)

	c, o = scoring.BattleBonuses(models.OutcomeDraw)
	assert.Equal(t, 2, c)
	assert.Equal(t, 2, o)
}
