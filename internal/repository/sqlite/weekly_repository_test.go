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

type WeeklyRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.WeeklyRepository
}

func (s *WeeklyRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewWeeklyRepository(s.db)
}

func (s *WeeklyRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func entry(userID string, score, timeSeconds int) models.WeeklyEntry {
	return models.WeeklyEntry{
		WeekID:          "2026-W11",
		Mode:            "challenge",
		UserID:          userID,
		UserName:        userID,
		BestScore:       score,
		BestTimeSeconds: timeSeconds,
		UpdatedAt:       time.Now().UTC().Truncate(time.Second),
	}
}

func (s *WeeklyRepositorySuite) TestUpsertBestOnlyImproves() {
	ctx := context.Background()

	applied, err := s.repo.UpsertBest(ctx, entry("u1", 15, 100))
	s.Require().NoError(err)
	s.True(applied)

	// Same score with a worse time is not an improvement.
	applied, err = s.repo.UpsertBest(ctx, entry("u1", 15, 120))
	s.Require().NoError(err)
	s.False(applied)

	got, err := s.repo.Get(ctx, "2026-W11", "challenge", "u1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(15, got.BestScore)
	s.Equal(100, got.BestTimeSeconds)

	// Same score, faster time improves.
	applied, err = s.repo.UpsertBest(ctx, entry("u1", 15, 90))
	s.Require().NoError(err)
	s.True(applied)

	// A lower score never replaces a higher one.
	applied, err = s.repo.UpsertBest(ctx, entry("u1", 12, 10))
	s.Require().NoError(err)
	s.False(applied)

	applied, err = s.repo.UpsertBest(ctx, entry("u1", 18, 150))
	s.Require().NoError(err)
	s.True(applied)

	got, err = s.repo.Get(ctx, "2026-W11", "challenge", "u1")
	s.Require().NoError(err)
	s.Equal(18, got.BestScore)
	s.Equal(150, got.BestTimeSeconds)
}

func (s *WeeklyRepositorySuite) TestGetMissingReturnsNil() {
	got, err := s.repo.Get(context.Background(), "2026-W11", "challenge", "nobody")
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *WeeklyRepositorySuite) TestTopOrdering() {
	ctx := context.Background()
	_, err := s.repo.UpsertBest(ctx, entry("slow", 18, 140))
	s.Require().NoError(err)
	_, err = s.repo.UpsertBest(ctx, entry("fast", 18, 90))
	s.Require().NoError(err)
	_, err = s.repo.UpsertBest(ctx, entry("low", 12, 60))
	s.Require().NoError(err)

	// Other weeks and modes stay out.
	other := entry("other", 20, 50)
	other.WeekID = "2026-W10"
	_, err = s.repo.UpsertBest(ctx, other)
	s.Require().NoError(err)

	top, err := s.repo.Top(ctx, "2026-W11", "challenge", 10)
	s.Require().NoError(err)
	s.Require().Len(top, 3)
	s.Equal("fast", top[0].UserID)
	s.Equal("slow", top[1].UserID)
	s.Equal("low", top[2].UserID)
}

func (s *WeeklyRepositorySuite) TestDegradedModeNoops() {
	ctx := context.Background()
	repo := sqlite.NewWeeklyRepository(db.Degraded())

	applied, err := repo.UpsertBest(ctx, entry("u1", 15, 100))
	s.NoError(err)
	s.False(applied)

	got, err := repo.Get(ctx, "2026-W11", "challenge", "u1")
	s.NoError(err)
	s.Nil(got)
}

func TestWeeklyRepositorySuite(t *testing.T) {
	suite.Run(t, new(WeeklyRepositorySuite))
}
