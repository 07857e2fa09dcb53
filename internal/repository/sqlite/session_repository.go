package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ilyakor/quizarena/internal/db"
	"github.com/ilyakor/quizarena/internal/logger"
	"github.com/ilyakor/quizarena/internal/models"
	"github.com/ilyakor/quizarena/internal/repository"
)

type sessionRepository struct {
	db *db.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *db.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Insert(ctx context.Context, session models.QuizSession) error {
	if !r.db.Available() {
		return nil
	}
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("inserting session: id=%s, user_id=%s, mode=%s", session.ID, session.UserID, session.Mode)

	questionsData, err := marshalQuestions(session.Questions)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO quiz_sessions (id, user_id, mode, questions_data, current_index, correct_count,
                           time_limit, question_sent_at, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, session.ID, session.UserID, session.Mode, questionsData, session.CurrentIndex,
		session.CorrectCount, session.TimeLimit, session.QuestionSentAt, session.Status,
		session.CreatedAt, session.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("active session already exists: user_id=%s", session.UserID)
			return repository.ErrDuplicateActiveSession
		}
		log.Error("failed to insert session: %v", err)
	}
	return err
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*models.QuizSession, error) {
	if !r.db.Available() {
		return nil, nil
	}
	return r.getWhere(ctx, `id = ?`, id)
}

func (r *sessionRepository) GetActive(ctx context.Context, userID string) (*models.QuizSession, error) {
	if !r.db.Available() {
		return nil, nil
	}
	return r.getWhere(ctx, `user_id = ? AND status = 'in_progress'`, userID)
}

func (r *sessionRepository) getWhere(ctx context.Context, where string, arg any) (*models.QuizSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	var (
		s             models.QuizSession
		questionsData string
		sentAt        sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, mode, questions_data, current_index, correct_count, time_limit,
       question_sent_at, status, created_at, updated_at
FROM quiz_sessions
WHERE `+where, arg).Scan(&s.ID, &s.UserID, &s.Mode, &questionsData, &s.CurrentIndex,
		&s.CorrectCount, &s.TimeLimit, &sentAt, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, err
	}
	if sentAt.Valid {
		t := sentAt.Time
		s.QuestionSentAt = &t
	}
	if s.Questions, err = unmarshalQuestions(questionsData); err != nil {
		log.Error("failed to decode question snapshot: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT question_id, user_answer, is_correct, answered_at
FROM session_answers
WHERE session_id = ?
ORDER BY id
`, s.ID)
	if err != nil {
		log.Error("failed to load session answers: %v", err)
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var rec models.AnswerRecord
		if err := rows.Scan(&rec.QuestionID, &rec.UserAnswer, &rec.IsCorrect, &rec.AnsweredAt); err != nil {
			return nil, err
		}
		s.Answers = append(s.Answers, rec)
	}
	return &s, rows.Err()
}

func (r *sessionRepository) AppendAnswer(ctx context.Context, sessionID string, expectedIndex int, rec models.AnswerRecord, now time.Time) (bool, error) {
	if !r.db.Available() {
		return false, nil
	}
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	correctDelta := 0
	if rec.IsCorrect {
		correctDelta = 1
	}

	applied := false
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		// The index guard makes the advance a compare-and-increment:
		// duplicate rapid submissions fail the WHERE instead of both
		// observing the same pre-increment index.
		res, err := tx.ExecContext(ctx, `
UPDATE quiz_sessions SET
    current_index = current_index + 1,
    correct_count = correct_count + ?,
    question_sent_at = ?,
    updated_at = ?
WHERE id = ? AND status = 'in_progress' AND current_index = ?
`, correctDelta, now, now, sessionID, expectedIndex)
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
		applied = true
		_, err = tx.ExecContext(ctx, `
INSERT INTO session_answers (session_id, question_id, user_answer, is_correct, answered_at)
VALUES (?, ?, ?, ?, ?)
`, sessionID, rec.QuestionID, rec.UserAnswer, rec.IsCorrect, rec.AnsweredAt)
		return err
	})
	if err != nil {
		log.Error("failed to append answer: %v", err)
		return false, err
	}
	if !applied {
		log.Debug("answer rejected by index guard: session_id=%s, expected_index=%d", sessionID, expectedIndex)
	}
	return applied, nil
}

func (r *sessionRepository) SetStatus(ctx context.Context, sessionID string, from, to models.SessionStatus, at time.Time) (bool, error) {
	if !r.db.Available() {
		return false, nil
	}
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	res, err := r.db.ExecContext(ctx, `
UPDATE quiz_sessions SET status = ?, updated_at = ? WHERE id = ? AND status = ?
`, to, at, sessionID, from)
	if err != nil {
		log.Error("failed to set session status: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		log.Debug("session %s: %s -> %s", sessionID, from, to)
	}
	return n > 0, nil
}
