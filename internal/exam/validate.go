package exam

import (
	"errors"
	"fmt"
	"slices"
)

var ErrInvalidExam = errors.New("invalid exam")

// Validate enforces structural rules on uploaded exam content.
// Board exams do not use negative marking; entrance exams may.
func Validate(e Exam) error {
	if e.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidExam)
	}
	switch e.Kind {
	case KindBoard, KindEntrance:
	default:
		return fmt.Errorf("%w: unsupported kind %q", ErrInvalidExam, e.Kind)
	}
	if e.TimeLimitSec < 0 {
		return fmt.Errorf("%w: negative time_limit_sec", ErrInvalidExam)
	}
	if len(e.Questions) == 0 {
		return fmt.Errorf("%w: exam %s has no questions", ErrInvalidExam, e.ID)
	}

	seen := map[string]bool{}
	for _, q := range e.Questions {
		if q.ID == "" {
			return fmt.Errorf("%w: question.id is required", ErrInvalidExam)
		}
		if seen[q.ID] {
			return fmt.Errorf("%w: duplicate question id %s", ErrInvalidExam, q.ID)
		}
		seen[q.ID] = true

		if !(q.Marks > 0) {
			return fmt.Errorf("%w: question %s must carry positive marks", ErrInvalidExam, q.ID)
		}
		if q.NegativeMarks < 0 {
			return fmt.Errorf("%w: question %s has negative negative_marks", ErrInvalidExam, q.ID)
		}
		if e.Kind == KindBoard && q.NegativeMarks > 0 {
			return fmt.Errorf("%w: board exam question %s cannot use negative marking", ErrInvalidExam, q.ID)
		}
		if err := validateKey(q); err != nil {
			return err
		}
	}
	return nil
}

func validateKey(q Question) error {
	if len(q.CorrectAnswer) == 0 {
		return fmt.Errorf("%w: question %s has no correct_answer", ErrInvalidExam, q.ID)
	}
	if !q.MultiCorrect && len(q.CorrectAnswer) != 1 {
		return fmt.Errorf("%w: single-correct question %s lists %d answers", ErrInvalidExam, q.ID, len(q.CorrectAnswer))
	}
	seen := map[string]bool{}
	for _, t := range q.CorrectAnswer {
		if !slices.Contains(OptionTokens, t) {
			return fmt.Errorf("%w: question %s has unknown option %q", ErrInvalidExam, q.ID, t)
		}
		if seen[t] {
			return fmt.Errorf("%w: question %s repeats option %q", ErrInvalidExam, q.ID, t)
		}
		seen[t] = true
	}
	return nil
}
