package models

import "time"

// Achievement identifiers. The earned date for a key is written once and
// never overwritten.
const (
	AchievementStreak  = "streak_master"
	AchievementPerfect = "perfect_score"
)

// DuelResult is one participant's view of a resolved battle.
type DuelResult string

const (
	DuelWon  DuelResult = "won"
	DuelLost DuelResult = "lost"
	DuelDraw DuelResult = "draw"
)

type UserProfile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TotalPoints int    `json:"total_points"`

	TotalTests             int `json:"total_tests"`
	TotalQuestionsAnswered int `json:"total_questions_answered"`
	TotalCorrectAnswers    int `json:"total_correct_answers"`
	TotalTimeSpent         int `json:"total_time_spent"` // seconds

	StreakCount    int    `json:"streak_count"`
	StreakLastDate string `json:"streak_last_date"` // YYYY-MM-DD, empty when no streak recorded

	DuelsPlayed int `json:"duels_played"`
	DuelsWon    int `json:"duels_won"`
	DuelsLost   int `json:"duels_lost"`
	DuelsDraw   int `json:"duels_draw"`

	LastActivity time.Time `json:"last_activity"`
	CreatedAt    time.Time `json:"created_at"`
}

// CategoryStats holds the per-mode counters of a single profile.
type CategoryStats struct {
	UserID         string `json:"user_id"`
	Category       string `json:"category"`
	Attempts       int    `json:"attempts"`
	Correct        int    `json:"correct"`
	TotalQuestions int    `json:"total_questions"`
	BestScore      int    `json:"best_score"`
}

// LeaderboardRow is one line of the global points board.
type LeaderboardRow struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	TotalPoints int    `json:"total_points"`
}

// CategoryRow is one line of a per-category board, ordered by correct answers.
type CategoryRow struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Correct  int    `json:"correct"`
	Attempts int    `json:"attempts"`
}

// ContextRow merges the context categories for one user. Accuracy is a
// rounded percentage, 0 when the user has no answered questions there.
type ContextRow struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Correct  int    `json:"correct"`
	Total    int    `json:"total"`
	Accuracy int    `json:"accuracy"`
}
