package submission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mathhub/mathhub/internal/exam"
	"github.com/mathhub/mathhub/internal/leaderboard"
	"github.com/mathhub/mathhub/internal/results"
	"github.com/mathhub/mathhub/internal/scoring"
	syncx "github.com/mathhub/mathhub/internal/sync"
)

var (
	ErrInvalidInput     = scoring.ErrInvalidInput
	ErrExamNotFound     = errors.New("exam not found")
	ErrUpstreamFetch    = errors.New("question fetch failed")
	ErrAlreadySubmitted = errors.New("exam already submitted")
)

type EventAppender interface {
	Append(ctx context.Context, typ, key string, payload any) error
}

type Request struct {
	UserID       string
	ExamID       string
	Answers      map[string]string
	TimeTakenSec int
}

type Service struct {
	exams   exam.Store
	results results.Store
	board   leaderboard.Board
	events  EventAppender
	logger  *slog.Logger
}

// New wires the service. board and events may be nil.
func New(exams exam.Store, rs results.Store, board leaderboard.Board, events EventAppender, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{exams: exams, results: rs, board: board, events: events, logger: logger}
}

// Validate scores answers against the exam without persisting anything.
func (s *Service) Validate(ctx context.Context, examID string, answers map[string]string) (scoring.Result, error) {
	examID = strings.TrimSpace(examID)
	if examID == "" {
		return scoring.Result{}, fmt.Errorf("%w: examId is required", ErrInvalidInput)
	}
	if answers == nil {
		return scoring.Result{}, fmt.Errorf("%w: userAnswers is required", ErrInvalidInput)
	}

	e, err := s.exams.GetExamAdmin(ctx, examID)
	if err != nil {
		if errors.Is(err, exam.ErrNotFound) {
			return scoring.Result{}, fmt.Errorf("%w: %s", ErrExamNotFound, examID)
		}
		return scoring.Result{}, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}
	return scoring.Score(e.ScoringQuestions(), answers)
}

// Submit scores the attempt and records one result per (user, exam).
func (s *Service) Submit(ctx context.Context, req Request) (scoring.Result, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return scoring.Result{}, fmt.Errorf("%w: user is required", ErrInvalidInput)
	}
	if req.TimeTakenSec < 0 {
		return scoring.Result{}, fmt.Errorf("%w: timeTaken must not be negative", ErrInvalidInput)
	}
	examID := strings.TrimSpace(req.ExamID)

	res, err := s.Validate(ctx, examID, req.Answers)
	if err != nil {
		return scoring.Result{}, err
	}

	rec := results.FromScore(req.UserID, examID, res, req.TimeTakenSec)
	if err := s.results.Insert(ctx, rec); err != nil {
		if errors.Is(err, results.ErrAlreadyRecorded) {
			return scoring.Result{}, ErrAlreadySubmitted
		}
		return scoring.Result{}, fmt.Errorf("store result: %w", err)
	}
	log := s.logger.With("user_id", rec.UserID, "exam_id", rec.ExamID, "result_id", rec.ID)
	log.Info("result recorded", "score", rec.Score, "obtained_marks", rec.ObtainedMarks, "total_marks", rec.TotalMarks)

	// The result row is authoritative; ranking and events are best effort.
	if s.board != nil {
		entry := leaderboard.Entry{
			UserID:        rec.UserID,
			ObtainedMarks: rec.ObtainedMarks,
			Percentage:    rec.Percentage,
			TimeTakenSec:  rec.TimeTakenSec,
		}
		if err := s.board.Record(ctx, examID, entry); err != nil {
			log.Warn("leaderboard update failed", "error", err)
		}
	}
	if s.events != nil {
		if err := s.events.Append(ctx, syncx.TypeResultRecorded, rec.ID, rec); err != nil {
			log.Warn("event append failed", "error", err)
		}
	}
	return res, nil
}

func (s *Service) Standings(ctx context.Context, examID string, limit int) ([]leaderboard.Standing, error) {
	if _, err := s.exams.GetExam(ctx, examID); err != nil {
		if errors.Is(err, exam.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrExamNotFound, examID)
		}
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}
	if s.board == nil {
		return []leaderboard.Standing{}, nil
	}
	return s.board.Standings(ctx, examID, limit)
}
