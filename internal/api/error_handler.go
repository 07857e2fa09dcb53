package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	apperrors "github.com/ilyakor/quizarena/internal/errors"
	"github.com/ilyakor/quizarena/internal/logger"
)

// handleError centralizes error responses. Everything is JSON; rate-limited
// errors additionally carry a Retry-After header and the remaining seconds
// in the body.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else {
		log.Warn("client error: %v", appErr)
	}

	body := map[string]any{
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if appErr.Code == apperrors.ErrCodeRateLimited {
		body["retry_after_seconds"] = appErr.RetryAfterSeconds
		w.Header().Set("Retry-After", strconv.Itoa(appErr.RetryAfterSeconds))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	json.NewEncoder(w).Encode(map[string]any{"error": body})
}
