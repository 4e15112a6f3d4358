package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mathhub/mathhub/internal/exam"
)

// GET /exams?q=...&kind=board|entrance&limit=50&offset=0
func ListExamsHandler(store exam.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		list, err := store.ListExams(r.Context(), exam.ListOpts{
			Q:      strings.TrimSpace(q.Get("q")),
			Kind:   exam.Kind(strings.TrimSpace(q.Get("kind"))),
			Limit:  parseIntDefault(q.Get("limit"), 50),
			Offset: parseIntDefault(q.Get("offset"), 0),
		})
		if err != nil {
			fail(w, r, logger, err)
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

// GET /exams/{examID}; answer keys are stripped.
func GetExamHandler(store exam.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := store.GetExam(r.Context(), chi.URLParam(r, "examID"))
		if err != nil {
			fail(w, r, logger, err)
			return
		}
		respondJSON(w, http.StatusOK, e)
	}
}

// POST /exams
func UploadExamHandler(store exam.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var e exam.Exam
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			fail(w, r, logger, fmt.Errorf("%w: %v", exam.ErrInvalidExam, err))
			return
		}
		if err := exam.Validate(e); err != nil {
			fail(w, r, logger, err)
			return
		}
		if err := store.PutExam(r.Context(), e); err != nil {
			fail(w, r, logger, err)
			return
		}
		logger.Info("exam stored", "exam_id", e.ID, "questions", len(e.Questions))
		respondJSON(w, http.StatusCreated, map[string]string{"status": "ok", "id": e.ID})
	}
}
