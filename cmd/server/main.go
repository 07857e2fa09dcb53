package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ilyakor/quizarena/internal/api"
	"github.com/ilyakor/quizarena/internal/cache"
	"github.com/ilyakor/quizarena/internal/config"
	"github.com/ilyakor/quizarena/internal/db"
	"github.com/ilyakor/quizarena/internal/jobs"
	"github.com/ilyakor/quizarena/internal/logger"
	"github.com/ilyakor/quizarena/internal/repository/sqlite"
	"github.com/ilyakor/quizarena/internal/services"
	"github.com/ilyakor/quizarena/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	logger.SetDefault(log)

	log.Info("QuizArena Server Starting")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("session_ttl=%s", cfg.SessionTTL)
	log.Debug("battle_ttl=%s", cfg.BattleTTL)
	log.Debug("waiting_battle_window=%s", cfg.WaitingBattleWindow)
	log.Debug("sweep_interval=%s", cfg.SweepInterval)

	// TTL policies live with the store: configured once here, enforced by
	// the store's own sweeper.
	database, err := db.Open(cfg.DBPath,
		db.TTL("quiz_sessions", "updated_at", cfg.SessionTTL),
		db.TTL("battles", "created_at", cfg.BattleTTL),
	)
	if err != nil {
		// Degraded mode: every request is served, nothing is persisted.
		log.Error("failed to open database: %v", err)
		database = db.Degraded()
	}
	defer database.Close()

	profileRepo := sqlite.NewProfileRepository(database)
	sessionRepo := sqlite.NewSessionRepository(database)
	battleRepo := sqlite.NewBattleRepository(database)
	weeklyRepo := sqlite.NewWeeklyRepository(database)
	statRepo := sqlite.NewQuestionStatRepository(database)
	reportRepo := sqlite.NewReportRepository(database)

	workingSet := cache.NewWorkingSet()
	cooldown := cache.NewCooldownTracker(cfg.ReportCooldown)

	rankingService := services.NewRankingService(profileRepo, weeklyRepo, cfg.PageSize)
	achievementService := services.NewAchievementService(profileRepo)
	sessionService := services.NewSessionService(sessionRepo, profileRepo, statRepo, rankingService, achievementService, workingSet)
	battleService := services.NewBattleService(battleRepo, profileRepo, cfg.WaitingBattleWindow)
	reportService := services.NewReportService(reportRepo, cooldown)

	pool := worker.NewPool(cfg.GCWorkerCount, cfg.GCQueueSize)
	scheduler := jobs.NewScheduler(pool, cfg.SweepInterval,
		&jobs.BattleSweepJob{Battles: battleRepo, Window: cfg.WaitingBattleWindow},
		&jobs.WorkingSetPruneJob{WorkingSet: workingSet, MaxAge: cfg.WorkingSetMaxAge},
		&jobs.CooldownPruneJob{Cooldown: cooldown},
	)

	srv := &api.Server{
		DB:           database,
		Sessions:     sessionService,
		Battles:      battleService,
		Ranking:      rankingService,
		Achievements: achievementService,
		Reports:      reportService,
		Pool:         pool,
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)
	scheduler.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}
	scheduler.Stop()
	pool.Stop()

	log.Info("QuizArena Server Stopped")
}
