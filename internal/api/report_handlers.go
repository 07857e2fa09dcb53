package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type submitReportRequest struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Type     string `json:"type"`
	Text     string `json:"text"`
	Context  string `json:"context"`
}

func (s *Server) handleSubmitReport(w http.ResponseWriter, r *http.Request) {
	var req submitReportRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	report, err := s.Reports.Submit(r.Context(), req.UserID, req.UserName, req.Type, req.Text, req.Context)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, report)
}

func (s *Server) handleUndeliveredReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.Reports.ListUndelivered(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

func (s *Server) handleReportDelivered(w http.ResponseWriter, r *http.Request) {
	if err := s.Reports.MarkDelivered(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "delivered"})
}
