package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/ilyakor/quizarena/internal/db"
	"github.com/ilyakor/quizarena/internal/logger"
	"github.com/ilyakor/quizarena/internal/models"
	"github.com/ilyakor/quizarena/internal/repository"
	"github.com/ilyakor/quizarena/internal/scoring"
)

type profileRepository struct {
	db *db.DB
}

// NewProfileRepository creates a new ProfileRepository implementation
func NewProfileRepository(db *db.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	if !r.db.Available() {
		return nil, nil
	}
	log := logger.FromContext(ctx).WithPrefix("profile_repo")

	var p models.UserProfile
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, total_points, total_tests, total_questions_answered, total_correct_answers,
       total_time_spent, streak_count, streak_last_date, duels_played, duels_won, duels_lost,
       duels_draw, last_activity, created_at
FROM user_profiles
WHERE id = ?
`, userID).Scan(&p.ID, &p.Name, &p.TotalPoints, &p.TotalTests, &p.TotalQuestionsAnswered,
		&p.TotalCorrectAnswers, &p.TotalTimeSpent, &p.StreakCount, &p.StreakLastDate,
		&p.DuelsPlayed, &p.DuelsWon, &p.DuelsLost, &p.DuelsDraw, &p.LastActivity, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("profile not found: user_id=%s", userID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Upsert(ctx context.Context, userID, name string) error {
	if !r.db.Available() {
		return nil
	}
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("upserting profile: user_id=%s", userID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_profiles (id, name)
VALUES (?, ?)
ON CONFLICT(id) DO UPDATE SET name = excluded.name
`, userID, name)
	if err != nil {
		log.Error("failed to upsert profile: %v", err)
	}
	return err
}

func (r *profileRepository) TouchActivity(ctx context.Context, userID string, at time.Time) error {
	if !r.db.Available() {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `UPDATE user_profiles SET last_activity = ? WHERE id = ?`, at, userID)
	return err
}

func (r *profileRepository) ApplyQuizResult(ctx context.Context, userID, mode string, points, correctCount, totalQuestions, elapsedSeconds int) error {
	if !r.db.Available() {
		return nil
	}
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("applying quiz result: user_id=%s, mode=%s, points=%d, correct=%d/%d",
		userID, mode, points, correctCount, totalQuestions)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO user_profiles (id) VALUES (?) ON CONFLICT(id) DO NOTHING
`, userID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
UPDATE user_profiles SET
    total_points = total_points + ?,
    total_tests = total_tests + 1,
    total_questions_answered = total_questions_answered + ?,
    total_correct_answers = total_correct_answers + ?,
    total_time_spent = total_time_spent + ?,
    last_activity = CURRENT_TIMESTAMP
WHERE id = ?
`, points, totalQuestions, correctCount, elapsedSeconds, userID); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, `
INSERT INTO profile_categories (user_id, category, attempts, correct, total_questions, best_score)
VALUES (?, ?, 1, ?, ?, ?)
ON CONFLICT(user_id, category) DO UPDATE SET
    attempts = attempts + 1,
    correct = correct + excluded.correct,
    total_questions = total_questions + excluded.total_questions,
    best_score = MAX(best_score, excluded.best_score)
`, userID, mode, correctCount, totalQuestions, correctCount)
		return err
	})
}

func (r *profileRepository) CategoryStats(ctx context.Context, userID string) ([]models.CategoryStats, error) {
	if !r.db.Available() {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT user_id, category, attempts, correct, total_questions, best_score
FROM profile_categories
WHERE user_id = ?
ORDER BY category
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.CategoryStats
	for rows.Next() {
		var s models.CategoryStats
		if err := rows.Scan(&s.UserID, &s.Category, &s.Attempts, &s.Correct, &s.TotalQuestions, &s.BestScore); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *profileRepository) ApplyStreak(ctx context.Context, userID string, qualified bool, today time.Time) (int, error) {
	if !r.db.Available() {
		return 0, nil
	}
	log := logger.FromContext(ctx).WithPrefix("profile_repo")

	todayKey := scoring.DateKey(today)
	yesterdayKey := scoring.DateKey(today.AddDate(0, 0, -1))
	qualifiedFlag := 0
	if qualified {
		qualifiedFlag = 1
	}

	// The whole transition is one statement so concurrent scoring events
	// cannot interleave a read-modify-write.
	var count int
	err := r.db.QueryRowContext(ctx, `
UPDATE user_profiles SET
    streak_count = CASE
        WHEN ? = 0 THEN 0
        WHEN streak_last_date = ? THEN streak_count
        WHEN streak_last_date = ? THEN streak_count + 1
        ELSE 1
    END,
    streak_last_date = ?
WHERE id = ?
RETURNING streak_count
`, qualifiedFlag, todayKey, yesterdayKey, todayKey, userID).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		log.Error("failed to apply streak: %v", err)
		return 0, err
	}
	log.Debug("streak applied: user_id=%s, count=%d", userID, count)
	return count, nil
}

func (r *profileRepository) GrantAchievement(ctx context.Context, userID, achievement, earnedOn string) (bool, error) {
	if !r.db.Available() {
		return false, nil
	}
	log := logger.FromContext(ctx).WithPrefix("profile_repo")

	res, err := r.db.ExecContext(ctx, `
INSERT OR IGNORE INTO achievements (user_id, achievement, earned_on)
VALUES (?, ?, ?)
`, userID, achievement, earnedOn)
	if err != nil {
		log.Error("failed to grant achievement: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		log.Info("achievement unlocked: user_id=%s, achievement=%s", userID, achievement)
	}
	return n > 0, nil
}

func (r *profileRepository) Achievements(ctx context.Context, userID string) (map[string]string, error) {
	if !r.db.Available() {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT achievement, earned_on FROM achievements WHERE user_id = ?
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	earned := make(map[string]string)
	for rows.Next() {
		var name, date string
		if err := rows.Scan(&name, &date); err != nil {
			return nil, err
		}
		earned[name] = date
	}
	return earned, rows.Err()
}

func (r *profileRepository) GrantDailyBonus(ctx context.Context, userID, mode string, points int, date string) (bool, error) {
	if !r.db.Available() {
		return false, nil
	}
	log := logger.FromContext(ctx).WithPrefix("profile_repo")

	granted := false
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		// The date row is the once-per-day gate: the upsert only takes
		// effect when the stored date differs from today.
		res, err := tx.ExecContext(ctx, `
INSERT INTO bonus_dates (user_id, mode, last_date)
VALUES (?, ?, ?)
ON CONFLICT(user_id, mode) DO UPDATE SET last_date = excluded.last_date
WHERE last_date <> excluded.last_date
`, userID, mode, date)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		granted = true
		_, err = tx.ExecContext(ctx, `
UPDATE user_profiles SET total_points = total_points + ? WHERE id = ?
`, points, userID)
		return err
	})
	if err != nil {
		log.Error("failed to grant daily bonus: %v", err)
		return false, err
	}
	if granted {
		log.Info("daily bonus granted: user_id=%s, mode=%s, points=%d", userID, mode, points)
	}
	return granted, nil
}

func (r *profileRepository) ApplyDuelResult(ctx context.Context, userID string, result models.DuelResult, bonusPoints int) error {
	if !r.db.Available() {
		return nil
	}
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("applying duel result: user_id=%s, result=%s, bonus=%d", userID, result, bonusPoints)

	won, lost, draw := 0, 0, 0
	switch result {
	case models.DuelWon:
		won = 1
	case models.DuelLost:
		lost = 1
	case models.DuelDraw:
		draw = 1
	}

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO user_profiles (id) VALUES (?) ON CONFLICT(id) DO NOTHING
`, userID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
UPDATE user_profiles SET
    duels_played = duels_played + 1,
    duels_won = duels_won + ?,
    duels_lost = duels_lost + ?,
    duels_draw = duels_draw + ?,
    total_points = total_points + ?,
    last_activity = CURRENT_TIMESTAMP
WHERE id = ?
`, won, lost, draw, bonusPoints, userID)
		return err
	})
}

func (r *profileRepository) Position(ctx context.Context, userID string) (int, error) {
	if !r.db.Available() {
		return 0, nil
	}
	log := logger.FromContext(ctx).WithPrefix("profile_repo")

	var points int
	err := r.db.QueryRowContext(ctx, `SELECT total_points FROM user_profiles WHERE id = ?`, userID).Scan(&points)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		log.Error("failed to get profile points: %v", err)
		return 0, err
	}

	var position int
	err = r.db.QueryRowContext(ctx, `
SELECT 1 + COUNT(*) FROM user_profiles WHERE total_points > ?
`, points).Scan(&position)
	if err != nil {
		log.Error("failed to compute position: %v", err)
		return 0, err
	}
	return position, nil
}

func (r *profileRepository) Page(ctx context.Context, page, pageSize int) ([]models.LeaderboardRow, error) {
	if !r.db.Available() {
		return nil, nil
	}
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	query := sqlBuilder.Select("id", "name", "total_points").
		From("user_profiles").
		OrderBy("total_points DESC", "id ASC").
		Limit(uint64(pageSize)).
		Offset(uint64(page * pageSize))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query leaderboard page: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.LeaderboardRow
	for rows.Next() {
		var row models.LeaderboardRow
		if err := rows.Scan(&row.UserID, &row.Name, &row.TotalPoints); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *profileRepository) CategoryPage(ctx context.Context, category string, limit int) ([]models.CategoryRow, error) {
	if !r.db.Available() {
		return nil, nil
	}
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	if limit <= 0 {
		limit = 10
	}

	query := sqlBuilder.Select("pc.user_id", "up.name", "pc.correct", "pc.attempts").
		From("profile_categories pc").
		Join("user_profiles up ON up.id = pc.user_id").
		Where(squirrel.Eq{"pc.category": category}).
		Where(squirrel.Gt{"pc.attempts": 0}).
		OrderBy("pc.correct DESC", "pc.user_id ASC").
		Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query category page: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.CategoryRow
	for rows.Next() {
		var row models.CategoryRow
		if err := rows.Scan(&row.UserID, &row.Name, &row.Correct, &row.Attempts); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *profileRepository) ContextPage(ctx context.Context, categories []string, limit int) ([]models.ContextRow, error) {
	if !r.db.Available() {
		return nil, nil
	}
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	if limit <= 0 {
		limit = 10
	}
	if len(categories) == 0 {
		return nil, nil
	}

	query := sqlBuilder.Select("pc.user_id", "up.name", "SUM(pc.correct)", "SUM(pc.total_questions)").
		From("profile_categories pc").
		Join("user_profiles up ON up.id = pc.user_id").
		Where(squirrel.Eq{"pc.category": categories}).
		GroupBy("pc.user_id", "up.name").
		OrderBy("SUM(pc.correct) DESC", "pc.user_id ASC").
		Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query context page: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.ContextRow
	for rows.Next() {
		var row models.ContextRow
		if err := rows.Scan(&row.UserID, &row.Name, &row.Correct, &row.Total); err != nil {
			return nil, err
		}
		if row.Total > 0 {
			row.Accuracy = int(math.Round(float64(row.Correct) / float64(row.Total) * 100))
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *profileRepository) PointsToNextRank(ctx context.Context, userID string) (*int, error) {
	if !r.db.Available() {
		return nil, nil
	}
	log := logger.FromContext(ctx).WithPrefix("profile_repo")

	var points int
	err := r.db.QueryRowContext(ctx, `SELECT total_points FROM user_profiles WHERE id = ?`, userID).Scan(&points)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var next sql.NullInt64
	err = r.db.QueryRowContext(ctx, `
SELECT MIN(total_points) FROM user_profiles WHERE total_points > ?
`, points).Scan(&next)
	if err != nil {
		log.Error("failed to compute points to next rank: %v", err)
		return nil, err
	}
	if !next.Valid {
		return nil, nil
	}
	gap := int(next.Int64) - points
	return &gap, nil
}
