package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mathhub/mathhub/internal/exam"
	"github.com/mathhub/mathhub/internal/results"
	"github.com/mathhub/mathhub/internal/scoring"
	"github.com/mathhub/mathhub/internal/submission"
)

type errorBody struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorBody{Error: msg})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, scoring.ErrInvalidInput), errors.Is(err, exam.ErrInvalidExam):
		return http.StatusBadRequest
	case errors.Is(err, submission.ErrExamNotFound), errors.Is(err, exam.ErrNotFound), errors.Is(err, results.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, submission.ErrAlreadySubmitted):
		return http.StatusConflict
	case errors.Is(err, scoring.ErrComputation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, submission.ErrUpstreamFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err to the client; 5xx details are logged, not returned.
func fail(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := statusFor(err)
	if status >= 500 {
		logger.Error("request failed", "path", r.URL.Path, "status", status, "error", err)
		respondError(w, status, http.StatusText(status))
		return
	}
	respondError(w, status, err.Error())
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
