package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"

	"github.com/ilyakor/quizarena/internal/db"
	"github.com/ilyakor/quizarena/internal/logger"
	"github.com/ilyakor/quizarena/internal/models"
)

// Helper functions shared across repository implementations

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

func tx(ctx context.Context, db *db.DB, fn func(*sql.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("repo")
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		log.Debug("transaction rolled back due to error: %v", err)
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction: %v", err)
		return err
	}
	return nil
}

func marshalQuestions(questions []models.Question) (string, error) {
	if questions == nil {
		questions = []models.Question{}
	}
	b, err := json.Marshal(questions)
	return string(b), err
}

func unmarshalQuestions(data string) ([]models.Question, error) {
	var questions []models.Question
	if data == "" {
		return questions, nil
	}
	err := json.Unmarshal([]byte(data), &questions)
	return questions, err
}

func marshalAnswers(answers []models.AnswerRecord) (string, error) {
	if answers == nil {
		answers = []models.AnswerRecord{}
	}
	b, err := json.Marshal(answers)
	return string(b), err
}

func unmarshalAnswers(data string) ([]models.AnswerRecord, error) {
	var answers []models.AnswerRecord
	if data == "" || data == "[]" {
		return answers, nil
	}
	err := json.Unmarshal([]byte(data), &answers)
	return answers, err
}
