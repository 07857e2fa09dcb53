package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ilyakor/quizarena/internal/db"
)

// NewTestDB opens an in-memory database with all migrations applied. No TTL
// policies are installed; tests that need sweeping call SweepExpired directly.
func NewTestDB(t *testing.T) *db.DB {
	d, err := db.Open(":memory:")
	require.NoError(t, err)
	return d
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
