package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ilyakor/quizarena/internal/models"
)

// MockSessionRepository is a mock implementation of repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Insert(ctx context.Context, session models.QuizSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(ctx context.Context, id string) (*models.QuizSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizSession), args.Error(1)
}

func (m *MockSessionRepository) GetActive(ctx context.Context, userID string) (*models.QuizSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizSession), args.Error(1)
}

func (m *MockSessionRepository) AppendAnswer(ctx context.Context, sessionID string, expectedIndex int, rec models.AnswerRecord, now time.Time) (bool, error) {
	args := m.Called(ctx, sessionID, expectedIndex, rec, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionRepository) SetStatus(ctx context.Context, sessionID string, from, to models.SessionStatus, at time.Time) (bool, error) {
	args := m.Called(ctx, sessionID, from, to, at)
	return args.Bool(0), args.Error(1)
}
