package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ilyakor/quizarena/internal/models"
)

// ErrDuplicateActiveSession is returned by SessionRepository.Insert when the
// user already holds an in_progress session. The store enforces this with a
// partial unique index, so the error also covers races the caller's
// read-then-insert check cannot see.
var ErrDuplicateActiveSession = errors.New("user already has an active session")

// ProfileRepository handles user profile data access. All counter mutations
// are single-statement atomic increments; nothing here composes a new value
// from a prior read.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	Upsert(ctx context.Context, userID, name string) error
	TouchActivity(ctx context.Context, userID string, at time.Time) error

	// ApplyQuizResult atomically increments total_points, the aggregate
	// totals and the per-mode counters, and raises the mode's best_score.
	ApplyQuizResult(ctx context.Context, userID, mode string, points, correctCount, totalQuestions, elapsedSeconds int) error
	CategoryStats(ctx context.Context, userID string) ([]models.CategoryStats, error)

	// ApplyStreak runs the streak transition as one guarded update and
	// returns the resulting streak count.
	ApplyStreak(ctx context.Context, userID string, qualified bool, today time.Time) (int, error)
	// GrantAchievement writes the key once; it reports false when the
	// achievement was already present.
	GrantAchievement(ctx context.Context, userID, achievement, earnedOn string) (bool, error)
	Achievements(ctx context.Context, userID string) (map[string]string, error)
	// GrantDailyBonus adds points gated by the per-mode last-bonus date;
	// it reports false when the bonus was already taken today.
	GrantDailyBonus(ctx context.Context, userID, mode string, points int, date string) (bool, error)
	ApplyDuelResult(ctx context.Context, userID string, result models.DuelResult, bonusPoints int) error

	// Position returns the 1-based leaderboard rank, ties sharing the
	// higher rank. 0 means the user has no profile; it is never a rank.
	Position(ctx context.Context, userID string) (int, error)
	Page(ctx context.Context, page, pageSize int) ([]models.LeaderboardRow, error)
	CategoryPage(ctx context.Context, category string, limit int) ([]models.CategoryRow, error)
	ContextPage(ctx context.Context, categories []string, limit int) ([]models.ContextRow, error)
	// PointsToNextRank returns nil when the user is already at the top or
	// has no profile.
	PointsToNextRank(ctx context.Context, userID string) (*int, error)
}

// SessionRepository handles quiz session data access.
type SessionRepository interface {
	// Insert returns ErrDuplicateActiveSession when the user already has an
	// in_progress session.
	Insert(ctx context.Context, session models.QuizSession) error
	Get(ctx context.Context, id string) (*models.QuizSession, error)
	GetActive(ctx context.Context, userID string) (*models.QuizSession, error)

	// AppendAnswer records one answer and advances current_index by exactly
	// one, guarded on the expected index so duplicate concurrent
	// submissions cannot double-advance. Reports false when the guard fails.
	AppendAnswer(ctx context.Context, sessionID string, expectedIndex int, rec models.AnswerRecord, now time.Time) (bool, error)

	// SetStatus performs the guarded in_progress -> finished/cancelled
	// transition. Reports false when the session is not in the from state.
	SetStatus(ctx context.Context, sessionID string, from, to models.SessionStatus, at time.Time) (bool, error)
}

// BattleRepository handles battle data access. The two sides' columns are
// disjoint, so cross-side updates never conflict.
type BattleRepository interface {
	Insert(ctx context.Context, battle models.Battle) error
	Get(ctx context.Context, id string) (*models.Battle, error)
	ListWaiting(ctx context.Context, createdAfter time.Time, limit int) ([]models.Battle, error)

	// Join sets the opponent at most once: waiting status, no opponent yet,
	// inside the matchmaking window, creator != opponent.
	Join(ctx context.Context, battleID, opponentID, opponentName string, createdAfter time.Time) (bool, error)

	UpdateSide(ctx context.Context, battleID string, side models.BattleSideName, p models.SideProgress) (bool, error)
	MarkSideFinished(ctx context.Context, battleID string, side models.BattleSideName) (bool, error)

	// TryResolve flips active -> finished only when both sides are done;
	// exactly one caller observes true per battle.
	TryResolve(ctx context.Context, battleID string) (bool, error)
	SetOutcome(ctx context.Context, battleID string, outcome models.BattleOutcome, winnerID string, creatorPoints, opponentPoints int) error

	ListStaleWaiting(ctx context.Context, olderThan time.Time) ([]string, error)
	// DeleteIfWaiting re-checks status at delete time; a battle joined
	// between scan and delete survives.
	DeleteIfWaiting(ctx context.Context, id string) (bool, error)
}

// WeeklyRepository handles the per-week personal-best entries.
type WeeklyRepository interface {
	// UpsertBest stores the entry only when it strictly improves on the
	// stored one (higher score, or equal score with lower time).
	UpsertBest(ctx context.Context, entry models.WeeklyEntry) (bool, error)
	Get(ctx context.Context, weekID, mode, userID string) (*models.WeeklyEntry, error)
	Top(ctx context.Context, weekID, mode string, limit int) ([]models.WeeklyEntry, error)
}

// QuestionStatRepository accumulates append-only per-question counters.
type QuestionStatRepository interface {
	RecordAttempt(ctx context.Context, questionID string, correct bool, timeSeconds int) error
	Get(ctx context.Context, questionID string) (*models.QuestionStat, error)
}

// ReportRepository handles user problem reports.
type ReportRepository interface {
	Insert(ctx context.Context, report models.Report) error
	ListUndelivered(ctx context.Context, limit int) ([]models.Report, error)
	MarkDelivered(ctx context.Context, id string) (bool, error)
}
