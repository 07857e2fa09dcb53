package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ilyakor/quizarena/internal/models"
)

type createBattleRequest struct {
	UserID    string            `json:"user_id"`
	UserName  string            `json:"user_name"`
	Questions []models.Question `json:"questions"`
}

func (s *Server) handleCreateBattle(w http.ResponseWriter, r *http.Request) {
	var req createBattleRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	battle, err := s.Battles.Create(r.Context(), req.UserID, req.UserName, req.Questions)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, battle)
}

func (s *Server) handleListWaitingBattles(w http.ResponseWriter, r *http.Request) {
	battles, err := s.Battles.ListWaiting(r.Context(), queryInt(r, "limit", 10))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"battles": battles})
}

func (s *Server) handleGetBattle(w http.ResponseWriter, r *http.Request) {
	battle, err := s.Battles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, battle)
}

type joinBattleRequest struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

func (s *Server) handleJoinBattle(w http.ResponseWriter, r *http.Request) {
	var req joinBattleRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	battle, err := s.Battles.Join(r.Context(), chi.URLParam(r, "id"), req.UserID, req.UserName)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, battle)
}

func (s *Server) handleBattleProgress(w http.ResponseWriter, r *http.Request) {
	var progress models.SideProgress
	if err := decodeJSON(r, &progress); err != nil {
		handleError(w, r, err)
		return
	}

	side := models.BattleSideName(chi.URLParam(r, "side"))
	if err := s.Battles.RecordSideProgress(r.Context(), chi.URLParam(r, "id"), side, progress); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleBattleSideFinish(w http.ResponseWriter, r *http.Request) {
	side := models.BattleSideName(chi.URLParam(r, "side"))
	result, err := s.Battles.MarkSideFinished(r.Context(), chi.URLParam(r, "id"), side)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if result == nil {
		// This side is done, the other is still playing.
		respondJSON(w, http.StatusOK, map[string]any{"resolved": false})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"resolved": true, "result": result})
}
