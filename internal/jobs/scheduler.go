package jobs

import (
	"context"
	"time"

	"github.com/ilyakor/quizarena/internal/logger"
	"github.com/ilyakor/quizarena/internal/worker"
)

// Scheduler submits the maintenance jobs to the pool on a fixed interval.
type Scheduler struct {
	pool     *worker.Pool
	interval time.Duration
	jobs     []worker.Job
	cancel   context.CancelFunc
	done     chan struct{}
	log      *logger.Logger
}

func NewScheduler(pool *worker.Pool, interval time.Duration, jobs ...worker.Job) *Scheduler {
	return &Scheduler{
		pool:     pool,
		interval: interval,
		jobs:     jobs,
		done:     make(chan struct{}),
		log:      logger.Default().WithPrefix("scheduler"),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.log.Info("scheduling %d maintenance jobs every %s", len(s.jobs), s.interval)

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for _, job := range s.jobs {
					s.pool.TrySubmit(job)
				}
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
}
