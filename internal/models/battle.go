package models

import "time"

type BattleStatus string

const (
	BattleWaiting   BattleStatus = "waiting"
	BattleActive    BattleStatus = "active"
	BattleFinished  BattleStatus = "finished"
	BattleCancelled BattleStatus = "cancelled"
)

// BattleSideName selects one of the two mirrored field sets of a battle.
type BattleSideName string

const (
	SideCreator  BattleSideName = "creator"
	SideOpponent BattleSideName = "opponent"
)

func (n BattleSideName) Valid() bool {
	return n == SideCreator || n == SideOpponent
}

// BattleSide holds one participant's progress. The two sides' fields are
// disjoint sub-documents of the battle, so updates from the two players
// never contend on the same region.
type BattleSide struct {
	UserID      string         `json:"user_id"`
	UserName    string         `json:"user_name"`
	Score       int            `json:"score"`
	TimeSeconds int            `json:"time_seconds"`
	Points      int            `json:"points"`
	Answers     []AnswerRecord `json:"answers"`
	Finished    bool           `json:"finished"`
}

type BattleOutcome string

const (
	OutcomeCreatorWon  BattleOutcome = "creator_won"
	OutcomeOpponentWon BattleOutcome = "opponent_won"
	OutcomeDraw        BattleOutcome = "draw"
)

type Battle struct {
	ID        string        `json:"id"`
	Creator   BattleSide    `json:"creator"`
	Opponent  BattleSide    `json:"opponent"` // zero UserID until joined
	Questions []Question    `json:"questions"`
	Status    BattleStatus  `json:"status"`
	Outcome   BattleOutcome `json:"outcome,omitempty"`
	WinnerID  string        `json:"winner_id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// Side returns the named side, or nil for an unknown name.
func (b *Battle) Side(name BattleSideName) *BattleSide {
	switch name {
	case SideCreator:
		return &b.Creator
	case SideOpponent:
		return &b.Opponent
	}
	return nil
}

// SideProgress carries one participant's incremental update.
type SideProgress struct {
	Score       int            `json:"score"`
	TimeSeconds int            `json:"time_seconds"`
	Answers     []AnswerRecord `json:"answers"`
}

// BattleResult reports a resolved battle.
type BattleResult struct {
	BattleID      string        `json:"battle_id"`
	Outcome       BattleOutcome `json:"outcome"`
	WinnerID      string        `json:"winner_id,omitempty"`
	CreatorBonus  int           `json:"creator_bonus"`
	OpponentBonus int           `json:"opponent_bonus"`
}
