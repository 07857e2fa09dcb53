package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ilyakor/quizarena/internal/db"
	"github.com/ilyakor/quizarena/internal/services"
	"github.com/ilyakor/quizarena/internal/worker"
)

type Server struct {
	DB           *db.DB
	Sessions     services.SessionService
	Battles      services.BattleService
	Ranking      services.RankingService
	Achievements services.AchievementService
	Reports      services.ReportService
	Pool         *worker.Pool
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", s.handleStartSession)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Post("/sessions/{id}/answers", s.handleRecordAnswer)
		r.Post("/sessions/{id}/finish", s.handleFinishSession)
		r.Post("/sessions/{id}/cancel", s.handleCancelSession)

		r.Post("/battles", s.handleCreateBattle)
		r.Get("/battles", s.handleListWaitingBattles)
		r.Get("/battles/{id}", s.handleGetBattle)
		r.Post("/battles/{id}/join", s.handleJoinBattle)
		r.Put("/battles/{id}/sides/{side}/progress", s.handleBattleProgress)
		r.Post("/battles/{id}/sides/{side}/finish", s.handleBattleSideFinish)

		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/leaderboard/categories/{category}", s.handleCategoryLeaderboard)
		r.Get("/leaderboard/context", s.handleContextLeaderboard)
		r.Get("/leaderboard/weekly/{mode}", s.handleWeeklyLeaderboard)

		r.Get("/users/{id}/profile", s.handleUserProfile)
		r.Get("/users/{id}/sessions/active", s.handleActiveSession)

		r.Post("/reports", s.handleSubmitReport)
		r.Get("/reports/undelivered", s.handleUndeliveredReports)
		r.Post("/reports/{id}/delivered", s.handleReportDelivered)
	})

	return r
}
