package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

var (
	// ErrInvalidInput means the caller passed a missing question list or answer map.
	ErrInvalidInput = errors.New("invalid input")
	// ErrComputation means a question has a shape the scorer refuses to coerce.
	ErrComputation = errors.New("computation error")
)

// Question is the minimal view of an exam question needed for scoring.
// Correct holds option tokens; single-correct questions carry exactly one.
type Question struct {
	ID            string
	Correct       []string
	MultiCorrect  bool
	Marks         float64
	NegativeMarks float64
}

// Result is the outcome of scoring one exam attempt.
type Result struct {
	Score          int             `json:"score"`
	TotalMarks     float64         `json:"totalMarks"`
	ObtainedMarks  float64         `json:"obtainedMarks"`
	TotalQuestions int             `json:"totalQuestions"`
	Results        map[string]bool `json:"results"`
}

// Percentage of total marks obtained, 0 when the exam carries no marks.
func (r Result) Percentage() float64 {
	if r.TotalMarks <= 0 {
		return 0
	}
	return r.ObtainedMarks / r.TotalMarks * 100
}

// Score compares answers against every question and aggregates marks.
// A question missing from answers counts as not attempted: false, no penalty.
// Multi-select answers are comma-joined tokens and must match the key exactly.
func Score(questions []Question, answers map[string]string) (Result, error) {
	if len(questions) == 0 {
		return Result{}, fmt.Errorf("%w: question list is empty", ErrInvalidInput)
	}
	if answers == nil {
		return Result{}, fmt.Errorf("%w: answer map is missing", ErrInvalidInput)
	}
	if err := checkQuestions(questions); err != nil {
		return Result{}, err
	}

	res := Result{
		TotalQuestions: len(questions),
		Results:        make(map[string]bool, len(questions)),
	}
	obtained := 0.0
	for _, q := range questions {
		res.TotalMarks += q.Marks

		submitted, attempted := answers[q.ID]
		if !attempted {
			res.Results[q.ID] = false
			continue
		}

		var correct bool
		if q.MultiCorrect {
			correct = equalTokens(sortedTokens(q.Correct), SplitTokens(submitted))
		} else {
			correct = submitted == q.Correct[0]
		}

		res.Results[q.ID] = correct
		if correct {
			res.Score++
			obtained += q.Marks
		} else {
			obtained -= q.NegativeMarks
		}
	}
	if obtained < 0 {
		obtained = 0
	}
	res.ObtainedMarks = obtained
	return res, nil
}

func checkQuestions(questions []Question) error {
	seen := make(map[string]struct{}, len(questions))
	for i, q := range questions {
		if q.ID == "" {
			return fmt.Errorf("%w: question %d has no id", ErrComputation, i)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%w: duplicate question id %s", ErrComputation, q.ID)
		}
		seen[q.ID] = struct{}{}

		if !(q.Marks > 0) {
			return fmt.Errorf("%w: question %s has non-positive marks %v", ErrComputation, q.ID, q.Marks)
		}
		if q.NegativeMarks < 0 || math.IsNaN(q.NegativeMarks) {
			return fmt.Errorf("%w: question %s has negative penalty %v", ErrComputation, q.ID, q.NegativeMarks)
		}
		switch {
		case len(q.Correct) == 0:
			return fmt.Errorf("%w: question %s has no correct answer", ErrComputation, q.ID)
		case !q.MultiCorrect && len(q.Correct) != 1:
			return fmt.Errorf("%w: single-correct question %s has %d answers", ErrComputation, q.ID, len(q.Correct))
		}
	}
	return nil
}

// SplitTokens parses a comma-joined answer into sorted, trimmed tokens.
// Empty segments are dropped; duplicates are kept so "a,a" never equals "a".
func SplitTokens(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

func sortedTokens(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}

func equalTokens(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
