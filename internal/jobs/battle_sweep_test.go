package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ilyakor/quizarena/internal/cache"
	"github.com/ilyakor/quizarena/internal/jobs"
	"github.com/ilyakor/quizarena/internal/testutil/mocks"
)

func TestBattleSweepJob(t *testing.T) {
	battles := new(mocks.MockBattleRepository)
	job := &jobs.BattleSweepJob{Battles: battles, Window: 10 * time.Minute}

	battles.On("ListStaleWaiting", mock.Anything, mock.Anything).Return([]string{"stale", "joined"}, nil)
	battles.On("DeleteIfWaiting", mock.Anything, "stale").Return(true, nil)
	// Joined between scan and delete: the guarded delete leaves it alone.
	battles.On("DeleteIfWaiting", mock.Anything, "joined").Return(false, nil)

	require.NoError(t, job.Run(context.Background()))
	battles.AssertExpectations(t)
}

func TestBattleSweepJobNothingStale(t *testing.T) {
	battles := new(mocks.MockBattleRepository)
	job := &jobs.BattleSweepJob{Battles: battles, Window: 10 * time.Minute}

	battles.On("ListStaleWaiting", mock.Anything, mock.Anything).Return([]string{}, nil)

	require.NoError(t, job.Run(context.Background()))
	battles.AssertNotCalled(t, "DeleteIfWaiting", mock.Anything, mock.Anything)
}

func TestWorkingSetPruneJob(t *testing.T) {
	ws := cache.NewWorkingSet()
	ws.Put("u1", "s1")

	job := &jobs.WorkingSetPruneJob{WorkingSet: ws, MaxAge: 24 * time.Hour}
	require.NoError(t, job.Run(context.Background()))
	// A fresh entry survives the prune.
	assert.Equal(t, 1, ws.Len())
}
