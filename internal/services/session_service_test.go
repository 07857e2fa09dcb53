package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ilyakor/quizarena/internal/cache"
	apperrors "github.com/ilyakor/quizarena/internal/errors"
	"github.com/ilyakor/quizarena/internal/models"
	"github.com/ilyakor/quizarena/internal/repository"
	"github.com/ilyakor/quizarena/internal/services"
	"github.com/ilyakor/quizarena/internal/testutil/mocks"
)

func sessionQuestions() []models.Question {
	return []models.Question{
		{ID: "q1", Text: "2+2?", Options: []string{"3", "4"}, Answer: "4", Category: "easy"},
		{ID: "q2", Text: "Capital of France?", Options: []string{"Paris", "Lyon"}, Answer: "Paris", Category: "easy"},
	}
}

type sessionFixture struct {
	sessions     *mocks.MockSessionRepository
	profiles     *mocks.MockProfileRepository
	stats        *mocks.MockQuestionStatRepository
	ranking      *mocks.MockRankingService
	achievements *mocks.MockAchievementService
	workingSet   *cache.WorkingSet
	svc          services.SessionService
}

func newSessionFixture() *sessionFixture {
	f := &sessionFixture{
		sessions:     new(mocks.MockSessionRepository),
		profiles:     new(mocks.MockProfileRepository),
		stats:        new(mocks.MockQuestionStatRepository),
		ranking:      new(mocks.MockRankingService),
		achievements: new(mocks.MockAchievementService),
		workingSet:   cache.NewWorkingSet(),
	}
	f.svc = services.NewSessionService(f.sessions, f.profiles, f.stats, f.ranking, f.achievements, f.workingSet)
	return f
}

func appErr(t *testing.T, err error) *apperrors.AppError {
	t.Helper()
	var ae *apperrors.AppError
	require.True(t, errors.As(err, &ae), "expected AppError, got %v", err)
	return ae
}

func TestSessionServiceStart(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()

	f.sessions.On("GetActive", mock.Anything, "u1").Return(nil, nil)
	f.profiles.On("Upsert", mock.Anything, "u1", "Alice").Return(nil)
	f.sessions.On("Insert", mock.Anything, mock.AnythingOfType("models.QuizSession")).Return(nil)

	session, err := f.svc.Start(ctx, "u1", "Alice", "easy", sessionQuestions(), 30)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, models.SessionInProgress, session.Status)
	assert.Equal(t, 0, session.CurrentIndex)
	assert.Equal(t, 30, session.TimeLimit)

	entry := f.workingSet.Get("u1")
	require.NotNil(t, entry)
	assert.Equal(t, session.ID, entry.SessionID)

	f.sessions.AssertExpectations(t)
	f.profiles.AssertExpectations(t)
}

func TestSessionServiceStartRejectsSecondActive(t *testing.T) {
	f := newSessionFixture()

	existing := &models.QuizSession{ID: "s0", UserID: "u1", Status: models.SessionInProgress}
	f.sessions.On("GetActive", mock.Anything, "u1").Return(existing, nil)

	_, err := f.svc.Start(context.Background(), "u1", "Alice", "easy", sessionQuestions(), 0)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeConflict, appErr(t, err).Code)
	f.sessions.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSessionServiceStartRacingInsertIsConflict(t *testing.T) {
	f := newSessionFixture()

	// GetActive sees nothing, but a concurrent Start wins the insert and
	// the unique index rejects ours.
	f.sessions.On("GetActive", mock.Anything, "u1").Return(nil, nil)
	f.profiles.On("Upsert", mock.Anything, "u1", "Alice").Return(nil)
	f.sessions.On("Insert", mock.Anything, mock.AnythingOfType("models.QuizSession")).
		Return(repository.ErrDuplicateActiveSession)

	_, err := f.svc.Start(context.Background(), "u1", "Alice", "easy", sessionQuestions(), 0)
	require.Error(t, err)
	ae := appErr(t, err)
	assert.Equal(t, apperrors.ErrCodeConflict, ae.Code)
	assert.Nil(t, f.workingSet.Get("u1"))
}

func TestSessionServiceStartValidation(t *testing.T) {
	f := newSessionFixture()

	_, err := f.svc.Start(context.Background(), "u1", "Alice", "easy", nil, 0)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr(t, err).Code)

	_, err = f.svc.Start(context.Background(), "", "Alice", "easy", sessionQuestions(), 0)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr(t, err).Code)
}

func inProgressSession() *models.QuizSession {
	now := time.Now()
	return &models.QuizSession{
		ID:             "s1",
		UserID:         "u1",
		Mode:           "challenge",
		Questions:      sessionQuestions(),
		CurrentIndex:   0,
		Status:         models.SessionInProgress,
		QuestionSentAt: &now,
		CreatedAt:      now.Add(-time.Minute),
		UpdatedAt:      now,
	}
}

func TestSessionServiceRecordAnswer(t *testing.T) {
	f := newSessionFixture()

	f.sessions.On("Get", mock.Anything, "s1").Return(inProgressSession(), nil)
	f.sessions.On("AppendAnswer", mock.Anything, "s1", 0, mock.AnythingOfType("models.AnswerRecord"), mock.Anything).Return(true, nil)
	f.stats.On("RecordAttempt", mock.Anything, "q1", true, mock.Anything).Return(nil)

	session, err := f.svc.RecordAnswer(context.Background(), "s1", "4")
	require.NoError(t, err)
	assert.Equal(t, 1, session.CurrentIndex)
	assert.Equal(t, 1, session.CorrectCount)
	require.Len(t, session.Answers, 1)
	assert.True(t, session.Answers[0].IsCorrect)

	f.sessions.AssertExpectations(t)
	f.stats.AssertExpectations(t)
}

func TestSessionServiceRecordAnswerRejectsUnknownOption(t *testing.T) {
	f := newSessionFixture()
	f.sessions.On("Get", mock.Anything, "s1").Return(inProgressSession(), nil)

	_, err := f.svc.RecordAnswer(context.Background(), "s1", "5")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr(t, err).Code)
	f.sessions.AssertNotCalled(t, "AppendAnswer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionServiceRecordAnswerGuardFailure(t *testing.T) {
	f := newSessionFixture()
	f.sessions.On("Get", mock.Anything, "s1").Return(inProgressSession(), nil)
	f.sessions.On("AppendAnswer", mock.Anything, "s1", 0, mock.Anything, mock.Anything).Return(false, nil)

	_, err := f.svc.RecordAnswer(context.Background(), "s1", "4")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeConflict, appErr(t, err).Code)
}

func TestSessionServiceRecordAnswerOnFinishedSession(t *testing.T) {
	f := newSessionFixture()
	sess := inProgressSession()
	sess.Status = models.SessionFinished
	f.sessions.On("Get", mock.Anything, "s1").Return(sess, nil)

	_, err := f.svc.RecordAnswer(context.Background(), "s1", "4")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeConflict, appErr(t, err).Code)
}

func TestSessionServiceRecordAnswerMissingSession(t *testing.T) {
	f := newSessionFixture()
	f.sessions.On("Get", mock.Anything, "nope").Return(nil, nil)

	_, err := f.svc.RecordAnswer(context.Background(), "nope", "4")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr(t, err).Code)
}

func TestSessionServiceFinish(t *testing.T) {
	f := newSessionFixture()
	sess := inProgressSession()
	sess.CurrentIndex = 2
	sess.CorrectCount = 2
	f.workingSet.Put("u1", "s1")

	f.sessions.On("Get", mock.Anything, "s1").Return(sess, nil)
	f.sessions.On("SetStatus", mock.Anything, "s1", models.SessionInProgress, models.SessionFinished, mock.Anything).Return(true, nil)
	f.ranking.On("RecordQuizResult", mock.Anything, "u1", "challenge", 2, 2, mock.Anything).Return(4, nil)
	f.profiles.On("Get", mock.Anything, "u1").Return(&models.UserProfile{ID: "u1", Name: "Alice"}, nil)
	f.ranking.On("UpdateWeekly", mock.Anything, "u1", "Alice", "challenge", 2, mock.Anything).Return(true, nil)
	f.achievements.On("ApplyResult", mock.Anything, "u1", "challenge", 2, 2).
		Return(&services.AchievementOutcome{Unlocked: []string{models.AchievementPerfect}}, nil)
	f.ranking.On("Position", mock.Anything, "u1").Return(7, nil)

	result, err := f.svc.Finish(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 4, result.PointsEarned)
	assert.Equal(t, 2, result.CorrectCount)
	assert.Equal(t, []string{models.AchievementPerfect}, result.Unlocked)
	assert.Equal(t, 7, result.Rank)
	assert.Nil(t, f.workingSet.Get("u1"))

	f.ranking.AssertExpectations(t)
	f.achievements.AssertExpectations(t)
}

func TestSessionServiceFinishOnlyOnce(t *testing.T) {
	f := newSessionFixture()
	sess := inProgressSession()
	sess.Status = models.SessionFinished
	f.sessions.On("Get", mock.Anything, "s1").Return(sess, nil)
	f.sessions.On("SetStatus", mock.Anything, "s1", models.SessionInProgress, models.SessionFinished, mock.Anything).Return(false, nil)

	_, err := f.svc.Finish(context.Background(), "s1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeConflict, appErr(t, err).Code)
	f.ranking.AssertNotCalled(t, "RecordQuizResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionServiceCancelSkipsScoring(t *testing.T) {
	f := newSessionFixture()
	f.workingSet.Put("u1", "s1")
	f.sessions.On("Get", mock.Anything, "s1").Return(inProgressSession(), nil)
	f.sessions.On("SetStatus", mock.Anything, "s1", models.SessionInProgress, models.SessionCancelled, mock.Anything).Return(true, nil)

	require.NoError(t, f.svc.Cancel(context.Background(), "s1"))
	assert.Nil(t, f.workingSet.Get("u1"))
	f.ranking.AssertNotCalled(t, "RecordQuizResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
