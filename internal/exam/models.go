package exam

import (
	"github.com/mathhub/mathhub/internal/scoring"
)

type Kind string

const (
	KindBoard    Kind = "board"    // fixed-curriculum school exam
	KindEntrance Kind = "entrance" // competitive admission exam
)

// Option tokens accepted in answer keys.
var OptionTokens = []string{"a", "b", "c", "d"}

type Option struct {
	Token     string `json:"token"`
	LabelHTML string `json:"label_html,omitempty"`
}

type Question struct {
	ID            string    `json:"id"`
	PromptHTML    string    `json:"prompt_html,omitempty"`
	Options       []Option  `json:"options,omitempty"`
	CorrectAnswer AnswerKey `json:"correct_answer,omitempty"`
	MultiCorrect  bool      `json:"multi_correct"`
	Marks         float64   `json:"marks"`
	NegativeMarks float64   `json:"negative_marks,omitempty"`
}

type Exam struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Kind         Kind       `json:"kind"`
	Board        string     `json:"board,omitempty"` // e.g. CBSE, JEE Main
	Subject      string     `json:"subject,omitempty"`
	Year         int        `json:"year,omitempty"`
	TimeLimitSec int        `json:"time_limit_sec"`
	Questions    []Question `json:"questions"`

	CreatedAt int64 `json:"created_at,omitempty"`
}

type ExamSummary struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Kind          Kind    `json:"kind"`
	Board         string  `json:"board,omitempty"`
	Subject       string  `json:"subject,omitempty"`
	Year          int     `json:"year,omitempty"`
	TimeLimitSec  int     `json:"time_limit_sec"`
	QuestionCount int     `json:"question_count"`
	TotalMarks    float64 `json:"total_marks"`
	CreatedAt     int64   `json:"created_at"`
}

// ScoringQuestions projects the exam onto the scorer's input.
func (e Exam) ScoringQuestions() []scoring.Question {
	out := make([]scoring.Question, 0, len(e.Questions))
	for _, q := range e.Questions {
		out = append(out, scoring.Question{
			ID:            q.ID,
			Correct:       []string(q.CorrectAnswer),
			MultiCorrect:  q.MultiCorrect,
			Marks:         q.Marks,
			NegativeMarks: q.NegativeMarks,
		})
	}
	return out
}

func (e Exam) Summary() ExamSummary {
	s := ExamSummary{
		ID:            e.ID,
		Title:         e.Title,
		Kind:          e.Kind,
		Board:         e.Board,
		Subject:       e.Subject,
		Year:          e.Year,
		TimeLimitSec:  e.TimeLimitSec,
		QuestionCount: len(e.Questions),
		CreatedAt:     e.CreatedAt,
	}
	for _, q := range e.Questions {
		s.TotalMarks += q.Marks
	}
	return s
}

// stripKeys returns a copy safe to serve to learners.
func (e Exam) stripKeys() Exam {
	qs := make([]Question, len(e.Questions))
	copy(qs, e.Questions)
	for i := range qs {
		qs[i].CorrectAnswer = nil
	}
	e.Questions = qs
	return e
}
