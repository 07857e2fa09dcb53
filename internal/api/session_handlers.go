package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ilyakor/quizarena/internal/models"
)

type startSessionRequest struct {
	UserID    string            `json:"user_id"`
	UserName  string            `json:"user_name"`
	Mode      string            `json:"mode"`
	Questions []models.Question `json:"questions"`
	TimeLimit int               `json:"time_limit"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.Sessions.Start(r.Context(), req.UserID, req.UserName, req.Mode, req.Questions, req.TimeLimit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	// The time limit is advisory: the caller decides what to do with a
	// late answer, nothing here expires the question.
	respondJSON(w, http.StatusOK, map[string]any{
		"session":   session,
		"timed_out": session.TimedOut(time.Now()),
	})
}

func (s *Server) handleActiveSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.Sessions.GetActive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if session == nil {
		respondJSON(w, http.StatusOK, map[string]any{"active": false})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"active": true, "session": session})
}

type recordAnswerRequest struct {
	Answer string `json:"answer"`
}

func (s *Server) handleRecordAnswer(w http.ResponseWriter, r *http.Request) {
	var req recordAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.Sessions.RecordAnswer(r.Context(), chi.URLParam(r, "id"), req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleFinishSession(w http.ResponseWriter, r *http.Request) {
	result, err := s.Sessions.Finish(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Cancel(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
