package scoring

// Known modes. Base and themed categories contribute points per correct
// answer; context categories are tracked for accuracy statistics only and
// never touch total_points.
const (
	ModeEasy      = "easy"
	ModeMedium    = "medium"
	ModeHard      = "hard"
	ModeGeography = "geography"
	ModeScience   = "science"
	ModeMovies    = "movies"
	ModeChallenge = "challenge"
	ModeMarathon  = "marathon"

	CategoryHistory = "history"
	CategoryCulture = "culture"
)

var pointsPerCorrect = map[string]int{
	ModeEasy:      1,
	ModeMedium:    2,
	ModeHard:      3,
	ModeGeography: 2,
	ModeScience:   2,
	ModeMovies:    3,
	ModeChallenge: 2,
	ModeMarathon:  3,
}

var contextCategories = []string{CategoryHistory, CategoryCulture}

// PointsPerCorrect returns the per-correct-answer multiplier for a mode,
// 0 for context categories and unknown modes.
func PointsPerCorrect(mode string) int {
	return pointsPerCorrect[mode]
}

// QuizPoints is the total points a quiz result contributes.
func QuizPoints(mode string, correctCount int) int {
	if correctCount <= 0 {
		return 0
	}
	return PointsPerCorrect(mode) * correctCount
}

// IsContextCategory reports whether the mode is one of the accuracy-only
// context categories.
func IsContextCategory(mode string) bool {
	for _, c := range contextCategories {
		if c == mode {
			return true
		}
	}
	return false
}

// ContextCategories returns the fixed set of context categories merged by
// the context leaderboard.
func ContextCategories() []string {
	out := make([]string, len(contextCategories))
	copy(out, contextCategories)
	return out
}
