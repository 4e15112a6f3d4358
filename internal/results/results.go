package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mathhub/mathhub/internal/scoring"
)

var (
	ErrNotFound        = errors.New("result not found")
	ErrAlreadyRecorded = errors.New("result already recorded for this exam")
)

// Record is one stored attempt; there is at most one per (user, exam).
type Record struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	ExamID         string          `json:"exam_id"`
	Score          int             `json:"score"`
	ObtainedMarks  float64         `json:"obtained_marks"`
	TotalMarks     float64         `json:"total_marks"`
	TotalQuestions int             `json:"total_questions"`
	Percentage     float64         `json:"percentage"`
	TimeTakenSec   int             `json:"time_taken_sec"`
	Results        map[string]bool `json:"results"`
	CompletedAt    int64           `json:"completed_at"`
}

// FromScore builds a record for a freshly scored attempt.
func FromScore(userID, examID string, res scoring.Result, timeTakenSec int) Record {
	return Record{
		ID:             uuid.NewString(),
		UserID:         userID,
		ExamID:         examID,
		Score:          res.Score,
		ObtainedMarks:  res.ObtainedMarks,
		TotalMarks:     res.TotalMarks,
		TotalQuestions: res.TotalQuestions,
		Percentage:     res.Percentage(),
		TimeTakenSec:   timeTakenSec,
		Results:        res.Results,
		CompletedAt:    time.Now().Unix(),
	}
}

type Store interface {
	Insert(ctx context.Context, r Record) error
	Get(ctx context.Context, userID, examID string) (Record, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error)
	ListByExam(ctx context.Context, examID string) ([]Record, error)
}

type SQLStore struct{ db *sql.DB }

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// Insert writes r unless the user already has a result for the exam.
func (s *SQLStore) Insert(ctx context.Context, r Record) error {
	rj, err := json.Marshal(r.Results)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO results
		(id,user_id,exam_id,score,obtained_marks,total_marks,total_questions,percentage,time_taken_sec,results_json,completed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (user_id, exam_id) DO NOTHING`,
		r.ID, r.UserID, r.ExamID, r.Score, r.ObtainedMarks, r.TotalMarks, r.TotalQuestions,
		r.Percentage, r.TimeTakenSec, string(rj), r.CompletedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyRecorded
	}
	return nil
}

const selectCols = `SELECT id,user_id,exam_id,score,obtained_marks,total_marks,total_questions,percentage,time_taken_sec,results_json,completed_at FROM results`

func (s *SQLStore) Get(ctx context.Context, userID, examID string) (Record, error) {
	row := s.db.QueryRowContext(ctx, selectCols+` WHERE user_id=$1 AND exam_id=$2`, userID, examID)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return r, err
}

func (s *SQLStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, selectCols+` WHERE user_id=$1 ORDER BY completed_at DESC, id ASC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// ListByExam returns every result for the exam in leaderboard order.
func (s *SQLStore) ListByExam(ctx context.Context, examID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, selectCols+` WHERE exam_id=$1
		ORDER BY obtained_marks DESC, time_taken_sec ASC, user_id ASC`, examID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var r Record
	var rj string
	if err := sc.Scan(&r.ID, &r.UserID, &r.ExamID, &r.Score, &r.ObtainedMarks, &r.TotalMarks,
		&r.TotalQuestions, &r.Percentage, &r.TimeTakenSec, &rj, &r.CompletedAt); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal([]byte(rj), &r.Results); err != nil {
		r.Results = map[string]bool{}
	}
	return r, nil
}

func collect(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()
	out := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
