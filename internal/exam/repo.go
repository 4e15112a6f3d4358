package exam

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("exam not found")

type ListOpts struct {
	Q      string // title substring, case-insensitive
	Kind   Kind
	Limit  int
	Offset int
}

type Store interface {
	PutExam(ctx context.Context, e Exam) error
	GetExam(ctx context.Context, id string) (Exam, error)      // learner-safe (no answer keys)
	GetExamAdmin(ctx context.Context, id string) (Exam, error) // full exam, for scoring
	ListExams(ctx context.Context, opts ListOpts) ([]ExamSummary, error)
}
