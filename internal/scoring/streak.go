package scoring

import "time"

const (
	// StreakQualifyingScore is the minimum score (out of 20) that extends
	// a day streak in a qualifying mode; anything below resets it.
	StreakQualifyingScore = 18

	// StreakAchievementAt is the streak length that unlocks the one-time
	// streak achievement.
	StreakAchievementAt = 3
)

// StreakQualifies reports whether a result extends the day streak.
func StreakQualifies(mode string, score int) bool {
	return HasBonusSchedule(mode) && score >= StreakQualifyingScore
}

// IsPerfect reports a flawless quiz.
func IsPerfect(correctCount, totalQuestions int) bool {
	return totalQuestions > 0 && correctCount == totalQuestions
}

// DateKey formats a timestamp as the calendar-day key used for streaks and
// daily bonus gating.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// NextStreak computes the streak transition. lastDate is the stored
// YYYY-MM-DD key, empty when no streak was ever recorded.
func NextStreak(current int, lastDate string, today time.Time, qualified bool) int {
	if !qualified {
		return 0
	}
	switch lastDate {
	case "":
		return 1
	case DateKey(today):
		return current
	case DateKey(today.AddDate(0, 0, -1)):
		return current + 1
	default:
		return 1
	}
}
