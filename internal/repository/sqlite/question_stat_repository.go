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

type questionStatRepository struct {
	db *db.DB
}

// NewQuestionStatRepository creates a new QuestionStatRepository implementation
func NewQuestionStatRepository(db *db.DB) repository.QuestionStatRepository {
	return &questionStatRepository{db: db}
}

func (r *questionStatRepository) RecordAttempt(ctx context.Context, questionID string, correct bool, timeSeconds int) error {
	if !r.db.Available() {
		return nil
	}
	log := logger.FromContext(ctx).WithPrefix("question_stat_repo")

	correctDelta := 0
	if correct {
		correctDelta = 1
	}
	if timeSeconds < 0 {
		timeSeconds = 0
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO question_stats (question_id, total_attempts, correct_attempts, total_time)
VALUES (?, 1, ?, ?)
ON CONFLICT(question_id) DO UPDATE SET
    total_attempts = total_attempts + 1,
    correct_attempts = correct_attempts + excluded.correct_attempts,
    total_time = total_time + excluded.total_time
`, questionID, correctDelta, timeSeconds)
	if err != nil {
		log.Error("failed to record question attempt: %v", err)
	}
	return err
}

func (r *questionStatRepository) Get(ctx context.Context, questionID string) (*models.QuestionStat, error) {
	if !r.db.Available() {
		return nil, nil
	}
	var s models.QuestionStat
	err := r.db.QueryRowContext(ctx, `
SELECT question_id, total_attempts, correct_attempts, total_time
FROM question_stats
WHERE question_id = ?
`, questionID).Scan(&s.QuestionID, &s.TotalAttempts, &s.CorrectAttempts, &s.TotalTimeSeconds)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
