package jobs

import (
	"context"
	"time"

	"github.com/ilyakor/quizarena/internal/cache"
	"github.com/ilyakor/quizarena/internal/logger"
)

// WorkingSetPruneJob evicts per-user scratch entries untouched for longer
// than MaxAge. Memory reclamation only, nothing durable is touched.
type WorkingSetPruneJob struct {
	WorkingSet *cache.WorkingSet
	MaxAge     time.Duration
}

func (j *WorkingSetPruneJob) Name() string { return "working-set-prune" }

func (j *WorkingSetPruneJob) Run(ctx context.Context) error {
	if dropped := j.WorkingSet.Prune(j.MaxAge); dropped > 0 {
		logger.FromContext(ctx).Info("pruned %d idle working set entries", dropped)
	}
	return nil
}

// CooldownPruneJob drops expired report cooldown records.
type CooldownPruneJob struct {
	Cooldown *cache.CooldownTracker
}

func (j *CooldownPruneJob) Name() string { return "cooldown-prune" }

func (j *CooldownPruneJob) Run(ctx context.Context) error {
	j.Cooldown.Prune()
	return nil
}
