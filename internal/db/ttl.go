package db

import (
	"context"
	"fmt"
	"time"
)

// TTLPolicy expires rows of one table a fixed duration after the reference
// column's timestamp.
type TTLPolicy struct {
	Table  string
	Column string
	MaxAge time.Duration
}

// TTL builds a TTLPolicy for Open.
func TTL(table, column string, maxAge time.Duration) TTLPolicy {
	return TTLPolicy{Table: table, Column: column, MaxAge: maxAge}
}

const ttlSweepInterval = time.Minute

type ttlSweeper struct {
	db       *DB
	policies []TTLPolicy
	cancel   context.CancelFunc
	done     chan struct{}
}

func newTTLSweeper(db *DB, policies []TTLPolicy) *ttlSweeper {
	return &ttlSweeper{db: db, policies: policies, done: make(chan struct{})}
}

func (s *ttlSweeper) start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	for _, p := range s.policies {
		s.db.log.Info("ttl policy installed: %s.%s max_age=%s", p.Table, p.Column, p.MaxAge)
	}

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(ttlSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

func (s *ttlSweeper) stop() {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
}

func (s *ttlSweeper) sweep(ctx context.Context) {
	for _, p := range s.policies {
		cutoff := time.Now().Add(-p.MaxAge)
		// Table and column names come from compile-time policies, never
		// from user input.
		query := fmt.Sprintf(`DELETE FROM %s WHERE %s < ?`, p.Table, p.Column)
		res, err := s.db.ExecContext(ctx, query, cutoff)
		if err != nil {
			s.db.log.Error("ttl sweep failed for %s: %v", p.Table, err)
			continue
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			s.db.log.Info("ttl sweep expired %d rows from %s", n, p.Table)
		}
	}
}

// SweepExpired runs every TTL policy once, outside the timer. Exposed for
// tests and admin tooling.
func (db *DB) SweepExpired(ctx context.Context) {
	if db.sweeper == nil || !db.Available() {
		return
	}
	db.sweeper.sweep(ctx)
}
