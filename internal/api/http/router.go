package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	auth "github.com/mathhub/mathhub/internal/auth/middleware"
	"github.com/mathhub/mathhub/internal/exam"
	"github.com/mathhub/mathhub/internal/rbac"
	"github.com/mathhub/mathhub/internal/results"
	"github.com/mathhub/mathhub/internal/submission"
)

type Deps struct {
	Exams      exam.Store
	Results    results.Store
	Submission *submission.Service
	Auth       *auth.AuthService
	Logger     *slog.Logger
}

// Mount registers the JSON API on r. Everything except health checks
// requires a bearer token.
func Mount(r chi.Router, d Deps) {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(d.Auth))

		pr.With(rbac.Require("exam:view")).
			Get("/exams", ListExamsHandler(d.Exams, d.Logger))
		pr.With(rbac.Require("exam:view")).
			Get("/exams/{examID}", GetExamHandler(d.Exams, d.Logger))
		pr.With(rbac.Require("exam:create")).
			Post("/exams", UploadExamHandler(d.Exams, d.Logger))

		pr.With(rbac.Require("exam:validate")).
			Post("/validate-answers", ValidateAnswersHandler(d.Submission, d.Logger))
		pr.With(rbac.Require("result:submit")).
			Post("/submissions", SubmitHandler(d.Submission, d.Logger))

		pr.With(rbac.Require("result:view-own")).
			Get("/results", ListMyResultsHandler(d.Results, d.Logger))
		pr.With(rbac.Require("result:view-own")).
			Get("/results/{examID}", GetMyResultHandler(d.Results, d.Logger))

		pr.With(rbac.Require("leaderboard:view")).
			Get("/exams/{examID}/leaderboard", LeaderboardHandler(d.Submission, d.Logger))
	})
}
