package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/mathhub/mathhub/internal/api/http"
	auth "github.com/mathhub/mathhub/internal/auth/middleware"
	"github.com/mathhub/mathhub/internal/config"
	"github.com/mathhub/mathhub/internal/db"
	"github.com/mathhub/mathhub/internal/exam"
	"github.com/mathhub/mathhub/internal/leaderboard"
	"github.com/mathhub/mathhub/internal/results"
	"github.com/mathhub/mathhub/internal/submission"
	syncx "github.com/mathhub/mathhub/internal/sync"
)

func main() {
	cfg := config.FromEnv()
	logger := cfg.NewLogger()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		logger.Error("db open failed", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer dbh.Close()

	exams := exam.NewSQLStore(dbh)
	rs := results.NewSQLStore(dbh)

	// --- Leaderboard: Redis when configured, else ranked from results ---
	var board leaderboard.Board = leaderboard.NewSQLBoard(rs)
	if cfg.RedisAddr != "" {
		rb, err := leaderboard.NewRedisBoard(ctx, leaderboard.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			logger.Error("redis leaderboard unavailable", "error", err)
			os.Exit(1)
		}
		defer rb.Close()
		board = rb
	}

	svc := submission.New(exams, rs, board, syncx.NewEventRepo(dbh, cfg.SiteID), logger)
	authSvc := auth.NewAuthService(cfg.AuthHMACSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	api.Mount(r, api.Deps{
		Exams:      exams,
		Results:    rs,
		Submission: svc,
		Auth:       authSvc,
		Logger:     logger,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("listening", "addr", cfg.HTTPAddr, "db", cfg.DBDriver, "redis", cfg.RedisAddr != "")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
