package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ilyakor/quizarena/internal/db"
	"github.com/ilyakor/quizarena/internal/repository"
	"github.com/ilyakor/quizarena/internal/repository/sqlite"
	"github.com/ilyakor/quizarena/internal/testutil"
)

type QuestionStatRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.QuestionStatRepository
}

func (s *QuestionStatRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewQuestionStatRepository(s.db)
}

func (s *QuestionStatRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *QuestionStatRepositorySuite) TestRecordAttemptAccumulates() {
	ctx := context.Background()

	s.Require().NoError(s.repo.RecordAttempt(ctx, "q1", true, 12))
	s.Require().NoError(s.repo.RecordAttempt(ctx, "q1", false, 20))
	s.Require().NoError(s.repo.RecordAttempt(ctx, "q1", true, 8))

	stat, err := s.repo.Get(ctx, "q1")
	s.Require().NoError(err)
	s.Require().NotNil(stat)
	s.Equal(3, stat.TotalAttempts)
	s.Equal(2, stat.CorrectAttempts)
	s.Equal(40, stat.TotalTimeSeconds)
}

func (s *QuestionStatRepositorySuite) TestGetMissingReturnsNil() {
	stat, err := s.repo.Get(context.Background(), "unknown")
	s.Require().NoError(err)
	s.Nil(stat)
}

func (s *QuestionStatRepositorySuite) TestNegativeTimeClamped() {
	ctx := context.Background()
	s.Require().NoError(s.repo.RecordAttempt(ctx, "q1", true, -5))

	stat, err := s.repo.Get(ctx, "q1")
	s.Require().NoError(err)
	s.Equal(0, stat.TotalTimeSeconds)
}

func TestQuestionStatRepositorySuite(t *testing.T) {
	suite.Run(t, new(QuestionStatRepositorySuite))
}
