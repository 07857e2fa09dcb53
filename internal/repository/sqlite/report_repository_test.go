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

type ReportRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.ReportRepository
}

func (s *ReportRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewReportRepository(s.db)
}

func (s *ReportRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func report(id string, createdAt time.Time) models.Report {
	return models.Report{
		ID:        id,
		UserID:    "u1",
		UserName:  "Alice",
		Type:      "bug",
		Text:      "the question had no correct option",
		Context:   `{"session_id":"s1"}`,
		CreatedAt: createdAt,
	}
}

func (s *ReportRepositorySuite) TestInsertAndListUndelivered() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	s.Require().NoError(s.repo.Insert(ctx, report("r2", now)))
	s.Require().NoError(s.repo.Insert(ctx, report("r1", now.Add(-time.Hour))))

	reports, err := s.repo.ListUndelivered(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(reports, 2)
	// Oldest first.
	s.Equal("r1", reports[0].ID)
	s.Equal("r2", reports[1].ID)
	s.Equal("the question had no correct option", reports[0].Text)
}

func (s *ReportRepositorySuite) TestMarkDelivered() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, report("r1", time.Now())))

	ok, err := s.repo.MarkDelivered(ctx, "r1")
	s.Require().NoError(err)
	s.True(ok)

	// Already delivered or unknown: no-op.
	ok, err = s.repo.MarkDelivered(ctx, "r1")
	s.Require().NoError(err)
	s.False(ok)
	ok, err = s.repo.MarkDelivered(ctx, "missing")
	s.Require().NoError(err)
	s.False(ok)

	reports, err := s.repo.ListUndelivered(ctx, 10)
	s.Require().NoError(err)
	s.Empty(reports)
}

func (s *ReportRepositorySuite) TestDegradedModeNoops() {
	ctx := context.Background()
	repo := sqlite.NewReportRepository(db.Degraded())

	s.NoError(repo.Insert(ctx, report("r1", time.Now())))
	reports, err := repo.ListUndelivered(ctx, 10)
	s.NoError(err)
	s.Nil(reports)
}

func TestReportRepositorySuite(t *testing.T) {
	suite.Run(t, new(ReportRepositorySuite))
}
