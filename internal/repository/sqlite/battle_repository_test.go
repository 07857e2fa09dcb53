package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ilyakor/quizarena/internal/db"
	"github.com/ilyakor/quizarena/internal/models"
	"github.com/ilyakor/quizarena/internal/repository"
	"github.com/ilyakor/quizarena/internal/repository/sqlite"
	"github.com/ilyakor/quizarena/internal/testutil"
)

type BattleRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.BattleRepository
}

func (s *BattleRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewBattleRepository(s.db)
}

func (s *BattleRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *BattleRepositorySuite) newBattle(id string, createdAt time.Time) models.Battle {
	return models.Battle{
		ID:        id,
		Creator:   models.BattleSide{UserID: "creator", UserName: "Creator"},
		Questions: testQuestions(),
		Status:    models.BattleWaiting,
		CreatedAt: createdAt,
	}
}

func (s *BattleRepositorySuite) window() time.Time {
	return time.Now().Add(-10 * time.Minute)
}

func (s *BattleRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, s.newBattle("b1", time.Now())))

	got, err := s.repo.Get(ctx, "b1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(models.BattleWaiting, got.Status)
	s.Equal("creator", got.Creator.UserID)
	s.Empty(got.Opponent.UserID)
	s.Len(got.Questions, 2)
}

func (s *BattleRepositorySuite) TestListWaitingExcludesStale() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, s.newBattle("fresh", time.Now())))
	s.Require().NoError(s.repo.Insert(ctx, s.newBattle("stale", time.Now().Add(-11*time.Minute))))

	battles, err := s.repo.ListWaiting(ctx, s.window(), 10)
	s.Require().NoError(err)
	s.Require().Len(battles, 1)
	s.Equal("fresh", battles[0].ID)
}

func (s *BattleRepositorySuite) TestJoin() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, s.newBattle("b1", time.Now())))

	joined, err := s.repo.Join(ctx, "b1", "opponent", "Opponent", s.window())
	s.Require().NoError(err)
	s.True(joined)

	got, err := s.repo.Get(ctx, "b1")
	s.Require().NoError(err)
	s.Equal(models.BattleActive, got.Status)
	s.Equal("opponent", got.Opponent.UserID)

	// The slot is taken: a second joiner loses.
	joined, err = s.repo.Join(ctx, "b1", "third", "Third", s.window())
	s.Require().NoError(err)
	s.False(joined)
}

func (s *BattleRepositorySuite) TestJoinRejectsSelf() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, s.newBattle("b1", time.Now())))

	joined, err := s.repo.Join(ctx, "b1", "creator", "Creator", s.window())
	s.Require().NoError(err)
	s.False(joined)
}

func (s *BattleRepositorySuite) TestJoinRejectsStale() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, s.newBattle("b1", time.Now().Add(-11*time.Minute))))

	joined, err := s.repo.Join(ctx, "b1", "opponent", "Opponent", s.window())
	s.Require().NoError(err)
	s.False(joined)
}

func (s *BattleRepositorySuite) activeBattle(id string) {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, s.newBattle(id, time.Now())))
	joined, err := s.repo.Join(ctx, id, "opponent", "Opponent", s.window())
	s.Require().NoError(err)
	s.Require().True(joined)
}

func (s *BattleRepositorySuite) TestUpdateSide() {
	ctx := context.Background()
	s.activeBattle("b1")

	now := time.Now().UTC().Truncate(time.Second)
	ok, err := s.repo.UpdateSide(ctx, "b1", models.SideCreator, models.SideProgress{
		Score:       12,
		TimeSeconds: 80,
		Answers:     []models.AnswerRecord{{QuestionID: "q1", UserAnswer: "4", IsCorrect: true, AnsweredAt: now}},
	})
	s.Require().NoError(err)
	s.True(ok)

	got, err := s.repo.Get(ctx, "b1")
	s.Require().NoError(err)
	s.Equal(12, got.Creator.Score)
	s.Equal(80, got.Creator.TimeSeconds)
	s.Len(got.Creator.Answers, 1)
	// The other side is untouched.
	s.Equal(0, got.Opponent.Score)
}

func (s *BattleRepositorySuite) TestUpdateSideRejectsUnknownSide() {
	ctx := context.Background()
	s.activeBattle("b1")
	_, err := s.repo.UpdateSide(ctx, "b1", "referee", models.SideProgress{})
	s.Error(err)
}

func (s *BattleRepositorySuite) TestTryResolveOnce() {
	ctx := context.Background()
	s.activeBattle("b1")

	// One side done: not resolvable yet.
	ok, err := s.repo.MarkSideFinished(ctx, "b1", models.SideCreator)
	s.Require().NoError(err)
	s.True(ok)
	resolved, err := s.repo.TryResolve(ctx, "b1")
	s.Require().NoError(err)
	s.False(resolved)

	ok, err = s.repo.MarkSideFinished(ctx, "b1", models.SideOpponent)
	s.Require().NoError(err)
	s.True(ok)

	// Both done: exactly one resolve wins.
	resolved, err = s.repo.TryResolve(ctx, "b1")
	s.Require().NoError(err)
	s.True(resolved)
	resolved, err = s.repo.TryResolve(ctx, "b1")
	s.Require().NoError(err)
	s.False(resolved)

	got, err := s.repo.Get(ctx, "b1")
	s.Require().NoError(err)
	s.Equal(models.BattleFinished, got.Status)
}

func (s *BattleRepositorySuite) TestSetOutcome() {
	ctx := context.Background()
	s.activeBattle("b1")

	s.Require().NoError(s.repo.SetOutcome(ctx, "b1", models.OutcomeOpponentWon, "opponent", 0, 5))
	got, err := s.repo.Get(ctx, "b1")
	s.Require().NoError(err)
	s.Equal(models.OutcomeOpponentWon, got.Outcome)
	s.Equal("opponent", got.WinnerID)
	s.Equal(5, got.Opponent.Points)
}

func (s *BattleRepositorySuite) TestDeleteIfWaiting() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, s.newBattle("stale", time.Now().Add(-11*time.Minute))))
	s.Require().NoError(s.repo.Insert(ctx, s.newBattle("joined", time.Now().Add(-11*time.Minute))))

	ids, err := s.repo.ListStaleWaiting(ctx, s.window())
	s.Require().NoError(err)
	s.ElementsMatch([]string{"stale", "joined"}, ids)

	// A battle joined between the scan and the delete survives.
	_, err = s.db.ExecContext(ctx, `UPDATE battles SET status = 'active', opponent_id = 'opponent' WHERE id = 'joined'`)
	s.Require().NoError(err)

	deleted, err := s.repo.DeleteIfWaiting(ctx, "stale")
	s.Require().NoError(err)
	s.True(deleted)
	deleted, err = s.repo.DeleteIfWaiting(ctx, "joined")
	s.Require().NoError(err)
	s.False(deleted)

	got, err := s.repo.Get(ctx, "joined")
	s.Require().NoError(err)
	s.NotNil(got)
}

func (s *BattleRepositorySuite) TestDegradedModeNoops() {
	ctx := context.Background()
	repo := sqlite.NewBattleRepository(db.Degraded())

	s.NoError(repo.Insert(ctx, s.newBattle("b1", time.Now())))
	got, err := repo.Get(ctx, "b1")
	s.NoError(err)
	s.Nil(got)

	joined, err := repo.Join(ctx, "b1", "opponent", "Opponent", s.window())
	s.NoError(err)
	s.False(joined)
}

func TestBattleRepositorySuite(t *testing.T) {
	suite.Run(t, new(BattleRepositorySuite))
}
