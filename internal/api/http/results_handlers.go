package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	auth "github.com/mathhub/mathhub/internal/auth/middleware"
	"github.com/mathhub/mathhub/internal/results"
	"github.com/mathhub/mathhub/internal/submission"
)

// GET /results?limit=50&offset=0
func ListMyResultsHandler(store results.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := auth.SubjectFromContext(r.Context())
		list, err := store.ListByUser(r.Context(), sub,
			parseIntDefault(r.URL.Query().Get("limit"), 50),
			parseIntDefault(r.URL.Query().Get("offset"), 0))
		if err != nil {
			fail(w, r, logger, err)
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

// GET /results/{examID}
func GetMyResultHandler(store results.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := auth.SubjectFromContext(r.Context())
		rec, err := store.Get(r.Context(), sub, chi.URLParam(r, "examID"))
		if err != nil {
			fail(w, r, logger, err)
			return
		}
		respondJSON(w, http.StatusOK, rec)
	}
}

// GET /exams/{examID}/leaderboard?limit=100
func LeaderboardHandler(svc *submission.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.Standings(r.Context(), chi.URLParam(r, "examID"),
			parseIntDefault(r.URL.Query().Get("limit"), 100))
		if err != nil {
			fail(w, r, logger, err)
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}
