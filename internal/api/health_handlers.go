package api

import "net/http"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	store := "ok"
	if !s.DB.Available() {
		// Degraded, not down: requests are served without persistence.
		store = "degraded"
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"store":       store,
		"queued_jobs": s.Pool.QueueSize(),
	})
}
