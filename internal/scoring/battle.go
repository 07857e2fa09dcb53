package scoring

import "github.com/ilyakor/quizarena/internal/models"

const (
	// BattleWinBonus is awarded to the winner of a resolved battle.
	BattleWinBonus = 5
	// BattleDrawBonus is awarded to each participant of a drawn battle.
	BattleDrawBonus = 2
)

// DecideBattle resolves a both-sides-finished battle: higher score wins,
// equal scores fall back to lower elapsed time, and a full tie is a draw.
func DecideBattle(creator, opponent models.BattleSide) models.BattleOutcome {
	switch {
	case creator.Score > opponent.Score:
		return models.OutcomeCreatorWon
	case creator.Score < opponent.Score:
		return models.OutcomeOpponentWon
	case creator.TimeSeconds < opponent.TimeSeconds:
		return models.OutcomeCreatorWon
	case creator.TimeSeconds > opponent.TimeSeconds:
		return models.OutcomeOpponentWon
	default:
		return models.OutcomeDraw
	}
}

// BattleBonuses returns the (creator, opponent) point bonuses for an outcome.
func BattleBonuses(outcome models.BattleOutcome) (int, int) {
	switch outcome {
	case models.OutcomeCreatorWon:
		return BattleWinBonus, 0
	case models.OutcomeOpponentWon:
		return 0, BattleWinBonus
	case models.OutcomeDraw:
		return BattleDrawBonus, BattleDrawBonus
	}
	return 0, 0
}
