package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	rows, err := s.Ranking.Page(r.Context(), page)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"page": page, "rows": rows})
}

func (s *Server) handleCategoryLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := s.Ranking.CategoryPage(r.Context(), chi.URLParam(r, "category"), queryInt(r, "limit", 10))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func (s *Server) handleContextLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := s.Ranking.ContextPage(r.Context(), queryInt(r, "limit", 10))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func (s *Server) handleWeeklyLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.Ranking.WeeklyTop(r.Context(), chi.URLParam(r, "mode"), queryInt(r, "limit", 10))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleUserProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "id")

	profile, err := s.Ranking.Profile(ctx, userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if profile == nil {
		respondJSON(w, http.StatusNotFound, map[string]any{
			"error": map[string]any{"code": "NOT_FOUND", "message": "profile not found: " + userID},
		})
		return
	}

	rank, err := s.Ranking.Position(ctx, userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	gap, err := s.Ranking.PointsToNextRank(ctx, userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	categories, err := s.Ranking.CategoryStatsFor(ctx, userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	achievements, err := s.Achievements.Achievements(ctx, userID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"profile":             profile,
		"rank":                rank,
		"points_to_next_rank": gap,
		"categories":          categories,
		"achievements":        achievements,
	})
}
