package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ilyakor/quizarena/internal/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps the SQLite handle together with the store-owned TTL sweeper.
// A degraded DB carries no handle: reads return nothing, writes are no-ops,
// and repositories check Available before touching it.
type DB struct {
	*sql.DB
	log     *logger.Logger
	sweeper *ttlSweeper
}

// Open opens the database, applies embedded migrations and installs the
// given TTL policies. TTL enforcement belongs to the store and is configured
// exactly once here.
func Open(path string, ttls ...TTLPolicy) (*DB, error) {
	log := logger.Default().WithPrefix("db")

	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL", path)
	log.Info("opening database: %s", path)

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Error("failed to open database: %v", err)
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1) // SQLite best practice for single writer

	db := &DB{DB: sqlDB, log: log}

	log.Debug("applying migrations")
	if err := db.applyMigrations(context.Background()); err != nil {
		log.Error("failed to apply migrations: %v", err)
		sqlDB.Close()
		return nil, err
	}

	if len(ttls) > 0 {
		db.sweeper = newTTLSweeper(db, ttls)
		db.sweeper.start()
	}

	log.Info("database ready")
	return db, nil
}

// Degraded returns a DB without a store behind it. Every operation routed
// through it degrades to "no persistence" instead of failing the request.
func Degraded() *DB {
	log := logger.Default().WithPrefix("db")
	log.Warn("running without a persistent store, all state is lost on restart")
	return &DB{log: log}
}

// Available reports whether a persistent store is attached.
func (db *DB) Available() bool {
	return db != nil && db.DB != nil
}

// Close stops the TTL sweeper and closes the handle.
func (db *DB) Close() error {
	if db.sweeper != nil {
		db.sweeper.stop()
	}
	if db.DB == nil {
		return nil
	}
	return db.DB.Close()
}

func (db *DB) applyMigrations(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at DATETIME DEFAULT CURRENT_TIMESTAMP)`); err != nil {
		return err
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return err
	}

	for _, entry := range entries {
		version := entry.Name()
		applied, err := db.isMigrationApplied(ctx, version)
		if err != nil {
			return err
		}
		if applied {
			db.log.Debug("migration %s already applied, skipping", version)
			continue
		}
		sqlBytes, err := migrationsFS.ReadFile("migrations/" + version)
		if err != nil {
			return err
		}
		db.log.Info("applying migration: %s", version)
		if _, err := db.ExecContext(ctx, string(sqlBytes)); err != nil {
			db.log.Error("migration %s failed: %v", version, err)
			return fmt.Errorf("apply migration %s: %w", version, err)
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			return err
		}
		db.log.Info("migration %s applied successfully", version)
	}
	return nil
}

func (db *DB) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var v string
	err := db.QueryRowContext(ctx, `SELECT version FROM schema_migrations WHERE version = ?`, version).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
