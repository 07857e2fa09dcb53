package jobs

import (
	"context"
	"time"

	"github.com/ilyakor/quizarena/internal/logger"
	"github.com/ilyakor/quizarena/internal/repository"
)

// BattleSweepJob removes waiting battles that outlived the matchmaking
// window. The delete re-checks status per battle, so a challenge joined
// between the scan and the delete survives.
type BattleSweepJob struct {
	Battles repository.BattleRepository
	Window  time.Duration
}

func (j *BattleSweepJob) Name() string { return "battle-sweep" }

func (j *BattleSweepJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	ids, err := j.Battles.ListStaleWaiting(ctx, time.Now().Add(-j.Window))
	if err != nil {
		return err
	}
	deleted := 0
	for _, id := range ids {
		ok, err := j.Battles.DeleteIfWaiting(ctx, id)
		if err != nil {
			log.Warn("failed to delete stale battle %s: %v", id, err)
			continue
		}
		if ok {
			deleted++
		}
	}
	if deleted > 0 {
		log.Info("swept %d stale waiting battles", deleted)
	}
	return nil
}
