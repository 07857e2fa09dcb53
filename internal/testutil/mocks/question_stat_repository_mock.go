package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ilyakor/quizarena/internal/models"
)

// MockQuestionStatRepository is a mock implementation of repository.QuestionStatRepository
type MockQuestionStatRepository struct {
	mock.Mock
}

func (m *MockQuestionStatRepository) RecordAttempt(ctx context.Context, questionID string, correct bool, timeSeconds int) error {
	args := m.Called(ctx, questionID, correct, timeSeconds)
	return args.Error(0)
}

func (m *MockQuestionStatRepository) Get(ctx context.Context, questionID string) (*models.QuestionStat, error) {
	args := m.Called(ctx, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuestionStat), args.Error(1)
}
