package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ilyakor/quizarena/internal/cache"
	apperrors "github.com/ilyakor/quizarena/internal/errors"
	"github.com/ilyakor/quizarena/internal/logger"
	"github.com/ilyakor/quizarena/internal/models"
	"github.com/ilyakor/quizarena/internal/repository"
)

// SessionService drives the quiz session state machine: start, answer,
// finish, cancel. A user holds at most one in_progress session at a time.
type SessionService interface {
	Start(ctx context.Context, userID, userName, mode string, questions []models.Question, timeLimitSeconds int) (*models.QuizSession, error)
	Get(ctx context.Context, sessionID string) (*models.QuizSession, error)
	GetActive(ctx context.Context, userID string) (*models.QuizSession, error)

	// RecordAnswer validates the answer against the current question and
	// advances the session by exactly one question.
	RecordAnswer(ctx context.Context, sessionID, answer string) (*models.QuizSession, error)

	// Finish closes the session and settles points, weekly entries and
	// achievements. Exactly one Finish call succeeds per session.
	Finish(ctx context.Context, sessionID string) (*models.QuizResult, error)
	Cancel(ctx context.Context, sessionID string) error
}

type sessionService struct {
	sessions     repository.SessionRepository
	profiles     repository.ProfileRepository
	stats        repository.QuestionStatRepository
	ranking      RankingService
	achievements AchievementService
	workingSet   *cache.WorkingSet
	now          func() time.Time
}

func NewSessionService(
	sessions repository.SessionRepository,
	profiles repository.ProfileRepository,
	stats repository.QuestionStatRepository,
	ranking RankingService,
	achievements AchievementService,
	workingSet *cache.WorkingSet,
) SessionService {
	return &sessionService{
		sessions:     sessions,
		profiles:     profiles,
		stats:        stats,
		ranking:      ranking,
		achievements: achievements,
		workingSet:   workingSet,
		now:          time.Now,
	}
}

func (s *sessionService) Start(ctx context.Context, userID, userName, mode string, questions []models.Question, timeLimitSeconds int) (*models.QuizSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_service")

	if userID == "" {
		return nil, apperrors.NewValidationError("user_id", "must not be empty")
	}
	if len(questions) == 0 {
		return nil, apperrors.NewValidationError("questions", "must not be empty")
	}

	active, err := s.sessions.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, apperrors.NewConflictError("user already has an active session")
	}

	if err := s.profiles.Upsert(ctx, userID, userName); err != nil {
		return nil, err
	}

	now := s.now()
	sentAt := now
	session := models.QuizSession{
		ID:             uuid.NewString(),
		UserID:         userID,
		Mode:           mode,
		Questions:      questions,
		CurrentIndex:   0,
		TimeLimit:      timeLimitSeconds,
		QuestionSentAt: &sentAt,
		Status:         models.SessionInProgress,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.sessions.Insert(ctx, session); err != nil {
		// A concurrent Start can slip past the GetActive check; the store's
		// unique index catches it.
		if errors.Is(err, repository.ErrDuplicateActiveSession) {
			return nil, apperrors.NewConflictError("user already has an active session")
		}
		return nil, err
	}
	s.workingSet.Put(userID, session.ID)

	log.WithFields(map[string]any{"session_id": session.ID, "mode": mode}).Info("session started")
	return &session, nil
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*models.QuizSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperrors.NewNotFoundError("session", sessionID)
	}
	return session, nil
}

func (s *sessionService) GetActive(ctx context.Context, userID string) (*models.QuizSession, error) {
	return s.sessions.GetActive(ctx, userID)
}

func (s *sessionService) RecordAnswer(ctx context.Context, sessionID, answer string) (*models.QuizSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_service")

	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status.Terminal() {
		return nil, apperrors.NewConflictError("session is already " + string(session.Status))
	}

	question := session.CurrentQuestion()
	if question == nil {
		return nil, apperrors.NewConflictError("all questions already answered")
	}
	if !question.HasOption(answer) {
		return nil, apperrors.NewValidationError("answer", "not one of the question's options")
	}

	now := s.now()
	rec := models.AnswerRecord{
		QuestionID: question.ID,
		UserAnswer: answer,
		IsCorrect:  answer == question.Answer,
		AnsweredAt: now,
	}
	applied, err := s.sessions.AppendAnswer(ctx, sessionID, session.CurrentIndex, rec, now)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperrors.NewConflictError("answer already recorded for this question")
	}

	elapsed := 0
	if session.QuestionSentAt != nil {
		elapsed = int(now.Sub(*session.QuestionSentAt).Seconds())
	}
	if err := s.stats.RecordAttempt(ctx, question.ID, rec.IsCorrect, elapsed); err != nil {
		log.WithField("question_id", question.ID).Warn("record question stat: %v", err)
	}
	s.workingSet.Touch(session.UserID)

	session.Answers = append(session.Answers, rec)
	session.CurrentIndex++
	if rec.IsCorrect {
		session.CorrectCount++
	}
	session.QuestionSentAt = &now
	session.UpdatedAt = now
	return session, nil
}

func (s *sessionService) Finish(ctx context.Context, sessionID string) (*models.QuizResult, error) {
	log := logger.FromContext(ctx).WithPrefix("session_service")

	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	ok, err := s.sessions.SetStatus(ctx, sessionID, models.SessionInProgress, models.SessionFinished, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NewConflictError("session is already " + string(session.Status))
	}

	elapsed := int(now.Sub(session.CreatedAt).Seconds())
	result := &models.QuizResult{
		SessionID:      session.ID,
		UserID:         session.UserID,
		Mode:           session.Mode,
		CorrectCount:   session.CorrectCount,
		TotalQuestions: len(session.Questions),
		ElapsedSeconds: elapsed,
	}

	points, err := s.ranking.RecordQuizResult(ctx, session.UserID, session.Mode, session.CorrectCount, len(session.Questions), elapsed)
	if err != nil {
		log.WithField("session_id", sessionID).Error("record quiz result: %v", err)
	} else {
		result.PointsEarned = points
	}

	if _, err := s.ranking.UpdateWeekly(ctx, session.UserID, s.userName(ctx, session.UserID), session.Mode, session.CorrectCount, elapsed); err != nil {
		log.WithField("session_id", sessionID).Warn("update weekly entry: %v", err)
	}

	outcome, err := s.achievements.ApplyResult(ctx, session.UserID, session.Mode, session.CorrectCount, len(session.Questions))
	if err != nil {
		log.WithField("session_id", sessionID).Warn("apply achievements: %v", err)
	} else if outcome != nil {
		result.BonusPoints = outcome.BonusPoints
		result.Unlocked = outcome.Unlocked
	}

	if rank, err := s.ranking.Position(ctx, session.UserID); err == nil {
		result.Rank = rank
	}

	s.workingSet.Remove(session.UserID)
	log.WithFields(map[string]any{"session_id": sessionID, "points": result.PointsEarned}).Info("session finished")
	return result, nil
}

func (s *sessionService) Cancel(ctx context.Context, sessionID string) error {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	ok, err := s.sessions.SetStatus(ctx, sessionID, models.SessionInProgress, models.SessionCancelled, s.now())
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewConflictError("session is already " + string(session.Status))
	}
	s.workingSet.Remove(session.UserID)
	return nil
}

func (s *sessionService) userName(ctx context.Context, userID string) string {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil || profile == nil {
		return ""
	}
	return profile.Name
}
