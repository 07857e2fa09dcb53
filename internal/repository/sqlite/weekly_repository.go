package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ilyakor/quizarena/internal/db"
	"github.com/ilyakor/quizarena/internal/logger"
	"github.com/ilyakor/quizarena/internal/models"
	"github.com/ilyakor/quizarena/internal/repository"
)

type weeklyRepository struct {
	db *db.DB
}

// NewWeeklyRepository creates a new WeeklyRepository implementation
func NewWeeklyRepository(db *db.DB) repository.WeeklyRepository {
	return &weeklyRepository{db: db}
}

func (r *weeklyRepository) UpsertBest(ctx context.Context, entry models.WeeklyEntry) (bool, error) {
	if !r.db.Available() {
		return false, nil
	}
	log := logger.FromContext(ctx).WithPrefix("weekly_repo")

	// The row only ever improves: the upsert's WHERE keeps equal-or-worse
	// resubmissions from touching the stored best.
	res, err := r.db.ExecContext(ctx, `
INSERT INTO weekly_entries (week_id, mode, user_id, user_name, best_score, best_time, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(week_id, mode, user_id) DO UPDATE SET
    user_name = excluded.user_name,
    best_score = excluded.best_score,
    best_time = excluded.best_time,
    updated_at = excluded.updated_at
WHERE excluded.best_score > best_score
   OR (excluded.best_score = best_score AND excluded.best_time < best_time)
`, entry.WeekID, entry.Mode, entry.UserID, entry.UserName, entry.BestScore, entry.BestTimeSeconds, entry.UpdatedAt)
	if err != nil {
		log.Error("failed to upsert weekly entry: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		log.Debug("weekly best updated: week=%s, mode=%s, user=%s, score=%d",
			entry.WeekID, entry.Mode, entry.UserID, entry.BestScore)
	}
	return n > 0, nil
}

func (r *weeklyRepository) Get(ctx context.Context, weekID, mode, userID string) (*models.WeeklyEntry, error) {
	if !r.db.Available() {
		return nil, nil
	}
	var e models.WeeklyEntry
	err := r.db.QueryRowContext(ctx, `
SELECT week_id, mode, user_id, user_name, best_score, best_time, updated_at
FROM weekly_entries
WHERE week_id = ? AND mode = ? AND user_id = ?
`, weekID, mode, userID).Scan(&e.WeekID, &e.Mode, &e.UserID, &e.UserName, &e.BestScore, &e.BestTimeSeconds, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *weeklyRepository) Top(ctx context.Context, weekID, mode string, limit int) ([]models.WeeklyEntry, error) {
	if !r.db.Available() {
		return nil, nil
	}
	log := logger.FromContext(ctx).WithPrefix("weekly_repo")
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT week_id, mode, user_id, user_name, best_score, best_time, updated_at
FROM weekly_entries
WHERE week_id = ? AND mode = ?
ORDER BY best_score DESC, best_time ASC
LIMIT ?
`, weekID, mode, limit)
	if err != nil {
		log.Error("failed to query weekly top: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.WeeklyEntry
	for rows.Next() {
		var e models.WeeklyEntry
		if err := rows.Scan(&e.WeekID, &e.Mode, &e.UserID, &e.UserName, &e.BestScore, &e.BestTimeSeconds, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
