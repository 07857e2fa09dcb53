package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/ilyakor/quizarena/internal/db"
	"github.com/ilyakor/quizarena/internal/logger"
	"github.com/ilyakor/quizarena/internal/models"
	"github.com/ilyakor/quizarena/internal/repository"
)

type battleRepository struct {
	db *db.DB
}

// NewBattleRepository creates a new BattleRepository implementation
func NewBattleRepository(db *db.DB) repository.BattleRepository {
	return &battleRepository{db: db}
}

const battleColumns = `id, creator_id, creator_name, opponent_id, opponent_name, questions_data,
       creator_score, creator_time, creator_points, creator_answers, creator_finished,
       opponent_score, opponent_time, opponent_points, opponent_answers, opponent_finished,
       status, outcome, winner_id, created_at`

func (r *battleRepository) Insert(ctx context.Context, battle models.Battle) error {
	if !r.db.Available() {
		return nil
	}
	log := logger.FromContext(ctx).WithPrefix("battle_repo")
	log.Debug("inserting battle: id=%s, creator=%s", battle.ID, battle.Creator.UserID)

	questionsData, err := marshalQuestions(battle.Questions)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO battles (id, creator_id, creator_name, questions_data, status, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`, battle.ID, battle.Creator.UserID, battle.Creator.UserName, questionsData, battle.Status, battle.CreatedAt)
	if err != nil {
		log.Error("failed to insert battle: %v", err)
	}
	return err
}

func (r *battleRepository) Get(ctx context.Context, id string) (*models.Battle, error) {
	if !r.db.Available() {
		return nil, nil
	}
	log := logger.FromContext(ctx).WithPrefix("battle_repo")

	row := r.db.QueryRowContext(ctx, `SELECT `+battleColumns+` FROM battles WHERE id = ?`, id)
	b, err := scanBattle(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get battle: %v", err)
		return nil, err
	}
	return b, nil
}

func scanBattle(scan func(...any) error) (*models.Battle, error) {
	var (
		b               models.Battle
		opponentID      sql.NullString
		opponentName    sql.NullString
		questionsData   string
		creatorAnswers  string
		opponentAnswers string
	)
	err := scan(&b.ID, &b.Creator.UserID, &b.Creator.UserName, &opponentID, &opponentName,
		&questionsData,
		&b.Creator.Score, &b.Creator.TimeSeconds, &b.Creator.Points, &creatorAnswers, &b.Creator.Finished,
		&b.Opponent.Score, &b.Opponent.TimeSeconds, &b.Opponent.Points, &opponentAnswers, &b.Opponent.Finished,
		&b.Status, &b.Outcome, &b.WinnerID, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	b.Opponent.UserID = opponentID.String
	b.Opponent.UserName = opponentName.String
	if b.Questions, err = unmarshalQuestions(questionsData); err != nil {
		return nil, err
	}
	if b.Creator.Answers, err = unmarshalAnswers(creatorAnswers); err != nil {
		return nil, err
	}
	if b.Opponent.Answers, err = unmarshalAnswers(opponentAnswers); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *battleRepository) ListWaiting(ctx context.Context, createdAfter time.Time, limit int) ([]models.Battle, error) {
	if !r.db.Available() {
		return nil, nil
	}
	log := logger.FromContext(ctx).WithPrefix("battle_repo")
	if limit <= 0 {
		limit = 10
	}

	query := sqlBuilder.Select(battleColumns).
		From("battles").
		Where(squirrel.Eq{"status": models.BattleWaiting}).
		Where(squirrel.GtOrEq{"created_at": createdAfter}).
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list waiting battles: %v", err)
		return nil, err
	}
	defer rows.Close()

	var battles []models.Battle
	for rows.Next() {
		b, err := scanBattle(rows.Scan)
		if err != nil {
			log.Error("failed to scan battle row: %v", err)
			return nil, err
		}
		battles = append(battles, *b)
	}
	log.Debug("found %d waiting battles", len(battles))
	return battles, rows.Err()
}

func (r *battleRepository) Join(ctx context.Context, battleID, opponentID, opponentName string, createdAfter time.Time) (bool, error) {
	if !r.db.Available() {
		return false, nil
	}
	log := logger.FromContext(ctx).WithPrefix("battle_repo")

	// Opponent is set at most once: the guard covers status, the empty
	// opponent slot, the matchmaking window and self-join in one statement.
	res, err := r.db.ExecContext(ctx, `
UPDATE battles SET opponent_id = ?, opponent_name = ?, status = ?
WHERE id = ? AND status = ? AND opponent_id IS NULL AND creator_id <> ? AND created_at >= ?
`, opponentID, opponentName, models.BattleActive, battleID, models.BattleWaiting, opponentID, createdAfter)
	if err != nil {
		log.Error("failed to join battle: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		log.Info("battle joined: id=%s, opponent=%s", battleID, opponentID)
	}
	return n > 0, nil
}

func sideColumn(side models.BattleSideName, column string) (string, error) {
	if !side.Valid() {
		return "", fmt.Errorf("unknown battle side: %q", side)
	}
	return string(side) + "_" + column, nil
}

func (r *battleRepository) UpdateSide(ctx context.Context, battleID string, side models.BattleSideName, p models.SideProgress) (bool, error) {
	if !r.db.Available() {
		return false, nil
	}
	log := logger.FromContext(ctx).WithPrefix("battle_repo")

	if !side.Valid() {
		return false, fmt.Errorf("unknown battle side: %q", side)
	}
	answersData, err := marshalAnswers(p.Answers)
	if err != nil {
		return false, err
	}

	// Column names derive from the validated side constant, the two sides'
	// column sets are disjoint.
	query := fmt.Sprintf(`
UPDATE battles SET %[1]s_score = ?, %[1]s_time = ?, %[1]s_answers = ?
WHERE id = ? AND status = ?
`, side)
	res, err := r.db.ExecContext(ctx, query, p.Score, p.TimeSeconds, answersData, battleID, models.BattleActive)
	if err != nil {
		log.Error("failed to update battle side: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *battleRepository) MarkSideFinished(ctx context.Context, battleID string, side models.BattleSideName) (bool, error) {
	if !r.db.Available() {
		return false, nil
	}
	log := logger.FromContext(ctx).WithPrefix("battle_repo")

	if !side.Valid() {
		return false, fmt.Errorf("unknown battle side: %q", side)
	}
	query := fmt.Sprintf(`UPDATE battles SET %s_finished = 1 WHERE id = ? AND status = ?`, side)
	res, err := r.db.ExecContext(ctx, query, battleID, models.BattleActive)
	if err != nil {
		log.Error("failed to mark side finished: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if n > 0 {
		log.Debug("battle side finished: id=%s, side=%s", battleID, side)
	}
	return n > 0, err
}

func (r *battleRepository) TryResolve(ctx context.Context, battleID string) (bool, error) {
	if !r.db.Available() {
		return false, nil
	}
	log := logger.FromContext(ctx).WithPrefix("battle_repo")

	// active -> finished happens at most once per battle, whichever caller
	// wins this update owns outcome computation.
	res, err := r.db.ExecContext(ctx, `
UPDATE battles SET status = ?
WHERE id = ? AND status = ? AND creator_finished = 1 AND opponent_finished = 1
`, models.BattleFinished, battleID, models.BattleActive)
	if err != nil {
		log.Error("failed to resolve battle: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if n > 0 {
		log.Info("battle resolved: id=%s", battleID)
	}
	return n > 0, err
}

func (r *battleRepository) SetOutcome(ctx context.Context, battleID string, outcome models.BattleOutcome, winnerID string, creatorPoints, opponentPoints int) error {
	if !r.db.Available() {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `
UPDATE battles SET outcome = ?, winner_id = ?, creator_points = ?, opponent_points = ?
WHERE id = ?
`, outcome, winnerID, creatorPoints, opponentPoints, battleID)
	return err
}

func (r *battleRepository) ListStaleWaiting(ctx context.Context, olderThan time.Time) ([]string, error) {
	if !r.db.Available() {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id FROM battles WHERE status = ? AND created_at < ?
`, models.BattleWaiting, olderThan)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *battleRepository) DeleteIfWaiting(ctx context.Context, id string) (bool, error) {
	if !r.db.Available() {
		return false, nil
	}
	log := logger.FromContext(ctx).WithPrefix("battle_repo")

	res, err := r.db.ExecContext(ctx, `DELETE FROM battles WHERE id = ? AND status = ?`, id, models.BattleWaiting)
	if err != nil {
		log.Error("failed to delete waiting battle: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if n > 0 {
		log.Debug("stale waiting battle deleted: id=%s", id)
	}
	return n > 0, err
}
