package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/ilyakor/quizarena/internal/errors"
	"github.com/ilyakor/quizarena/internal/logger"
	"github.com/ilyakor/quizarena/internal/models"
	"github.com/ilyakor/quizarena/internal/repository"
	"github.com/ilyakor/quizarena/internal/scoring"
)

// BattleService orchestrates two-player battles: open challenges, joins,
// per-side progress and the one-time resolution once both sides finish.
type BattleService interface {
	Create(ctx context.Context, creatorID, creatorName string, questions []models.Question) (*models.Battle, error)
	Get(ctx context.Context, battleID string) (*models.Battle, error)
	ListWaiting(ctx context.Context, limit int) ([]models.Battle, error)

	// Join attaches the opponent to a waiting battle. Exactly one joiner can
	// win the slot; everyone else gets a precise rejection reason.
	Join(ctx context.Context, battleID, opponentID, opponentName string) (*models.Battle, error)

	RecordSideProgress(ctx context.Context, battleID string, side models.BattleSideName, p models.SideProgress) error

	// MarkSideFinished marks one side done. The call that completes the pair
	// resolves the battle and returns the result; every other call returns a
	// nil result.
	MarkSideFinished(ctx context.Context, battleID string, side models.BattleSideName) (*models.BattleResult, error)
}

type battleService struct {
	battles    repository.BattleRepository
	profiles   repository.ProfileRepository
	waitWindow time.Duration
	now        func() time.Time
}

func NewBattleService(battles repository.BattleRepository, profiles repository.ProfileRepository, waitWindow time.Duration) BattleService {
	return &battleService{
		battles:    battles,
		profiles:   profiles,
		waitWindow: waitWindow,
		now:        time.Now,
	}
}

func (s *battleService) Create(ctx context.Context, creatorID, creatorName string, questions []models.Question) (*models.Battle, error) {
	if creatorID == "" {
		return nil, apperrors.NewValidationError("creator_id", "must not be empty")
	}
	if len(questions) == 0 {
		return nil, apperrors.NewValidationError("questions", "must not be empty")
	}
	if err := s.profiles.Upsert(ctx, creatorID, creatorName); err != nil {
		return nil, err
	}

	battle := models.Battle{
		ID: uuid.NewString(),
		Creator: models.BattleSide{
			UserID:   creatorID,
			UserName: creatorName,
		},
		Questions: questions,
		Status:    models.BattleWaiting,
		CreatedAt: s.now(),
	}
	if err := s.battles.Insert(ctx, battle); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).WithPrefix("battle_service").WithField("battle_id", battle.ID).Info("battle created")
	return &battle, nil
}

func (s *battleService) Get(ctx context.Context, battleID string) (*models.Battle, error) {
	battle, err := s.battles.Get(ctx, battleID)
	if err != nil {
		return nil, err
	}
	if battle == nil {
		return nil, apperrors.NewNotFoundError("battle", battleID)
	}
	return battle, nil
}

func (s *battleService) ListWaiting(ctx context.Context, limit int) ([]models.Battle, error) {
	return s.battles.ListWaiting(ctx, s.now().Add(-s.waitWindow), limit)
}

func (s *battleService) Join(ctx context.Context, battleID, opponentID, opponentName string) (*models.Battle, error) {
	if opponentID == "" {
		return nil, apperrors.NewValidationError("opponent_id", "must not be empty")
	}
	if err := s.profiles.Upsert(ctx, opponentID, opponentName); err != nil {
		return nil, err
	}

	joined, err := s.battles.Join(ctx, battleID, opponentID, opponentName, s.now().Add(-s.waitWindow))
	if err != nil {
		return nil, err
	}
	if !joined {
		return nil, s.joinRejection(ctx, battleID, opponentID)
	}

	battle, err := s.Get(ctx, battleID)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).WithPrefix("battle_service").WithFields(map[string]any{
		"battle_id":   battleID,
		"opponent_id": opponentID,
	}).Info("battle joined")
	return battle, nil
}

// joinRejection re-reads the battle to classify why the guarded join did
// not apply.
func (s *battleService) joinRejection(ctx context.Context, battleID, opponentID string) error {
	battle, err := s.battles.Get(ctx, battleID)
	if err != nil {
		return err
	}
	switch {
	case battle == nil:
		return apperrors.NewNotFoundError("battle", battleID)
	case battle.Creator.UserID == opponentID:
		return apperrors.NewValidationError("opponent_id", "cannot join your own battle")
	case battle.Status != models.BattleWaiting:
		return apperrors.NewConflictError("battle has already started")
	case battle.CreatedAt.Before(s.now().Add(-s.waitWindow)):
		return apperrors.NewExpiredError("battle", battleID)
	default:
		return apperrors.NewConflictError("battle could not be joined")
	}
}

func (s *battleService) RecordSideProgress(ctx context.Context, battleID string, side models.BattleSideName, p models.SideProgress) error {
	if !side.Valid() {
		return apperrors.NewValidationError("side", "must be creator or opponent")
	}
	ok, err := s.battles.UpdateSide(ctx, battleID, side, p)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewConflictError("battle is not active")
	}
	return nil
}

func (s *battleService) MarkSideFinished(ctx context.Context, battleID string, side models.BattleSideName) (*models.BattleResult, error) {
	log := logger.FromContext(ctx).WithPrefix("battle_service")
	if !side.Valid() {
		return nil, apperrors.NewValidationError("side", "must be creator or opponent")
	}

	ok, err := s.battles.MarkSideFinished(ctx, battleID, side)
	if err != nil {
		return nil, err
	}
	if !ok {
		battle, err := s.battles.Get(ctx, battleID)
		if err != nil {
			return nil, err
		}
		if battle == nil {
			return nil, apperrors.NewNotFoundError("battle", battleID)
		}
		return nil, apperrors.NewConflictError("battle is not active")
	}

	resolved, err := s.battles.TryResolve(ctx, battleID)
	if err != nil {
		return nil, err
	}
	if !resolved {
		return nil, nil
	}

	battle, err := s.Get(ctx, battleID)
	if err != nil {
		return nil, err
	}
	outcome := scoring.DecideBattle(battle.Creator, battle.Opponent)
	creatorBonus, opponentBonus := scoring.BattleBonuses(outcome)

	winnerID := ""
	creatorResult, opponentResult := models.DuelDraw, models.DuelDraw
	switch outcome {
	case models.OutcomeCreatorWon:
		winnerID = battle.Creator.UserID
		creatorResult, opponentResult = models.DuelWon, models.DuelLost
	case models.OutcomeOpponentWon:
		winnerID = battle.Opponent.UserID
		creatorResult, opponentResult = models.DuelLost, models.DuelWon
	}

	if err := s.battles.SetOutcome(ctx, battleID, outcome, winnerID, creatorBonus, opponentBonus); err != nil {
		return nil, err
	}
	if err := s.profiles.ApplyDuelResult(ctx, battle.Creator.UserID, creatorResult, creatorBonus); err != nil {
		log.WithField("battle_id", battleID).Error("apply creator duel result: %v", err)
	}
	if err := s.profiles.ApplyDuelResult(ctx, battle.Opponent.UserID, opponentResult, opponentBonus); err != nil {
		log.WithField("battle_id", battleID).Error("apply opponent duel result: %v", err)
	}

	log.WithFields(map[string]any{"battle_id": battleID, "outcome": outcome}).Info("battle resolved")
	return &models.BattleResult{
		BattleID:      battleID,
		Outcome:       outcome,
		WinnerID:      winnerID,
		CreatorBonus:  creatorBonus,
		OpponentBonus: opponentBonus,
	}, nil
}
