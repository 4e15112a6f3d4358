package exam

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) PutExam(ctx context.Context, e Exam) error {
	qj, err := json.Marshal(e.Questions)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO exams (id,title,kind,board,subject,year,time_limit_sec,questions_json,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, kind=EXCLUDED.kind, board=EXCLUDED.board,
			subject=EXCLUDED.subject, year=EXCLUDED.year, time_limit_sec=EXCLUDED.time_limit_sec,
			questions_json=EXCLUDED.questions_json`,
		e.ID, e.Title, string(e.Kind), e.Board, e.Subject, e.Year, e.TimeLimitSec, string(qj), time.Now().Unix())
	return err
}

func (s *SQLStore) GetExam(ctx context.Context, id string) (Exam, error) {
	e, err := s.GetExamAdmin(ctx, id)
	if err != nil {
		return Exam{}, err
	}
	return e.stripKeys(), nil
}

func (s *SQLStore) GetExamAdmin(ctx context.Context, id string) (Exam, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,kind,board,subject,year,time_limit_sec,questions_json,created_at
		FROM exams WHERE id=$1`, id)
	e, err := scanExam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Exam{}, ErrNotFound
	}
	return e, err
}

func (s *SQLStore) ListExams(ctx context.Context, opts ListOpts) ([]ExamSummary, error) {
	limit := opts.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	like := "%" + strings.ToLower(strings.TrimSpace(opts.Q)) + "%"
	rows, err := s.db.QueryContext(ctx, `SELECT id,title,kind,board,subject,year,time_limit_sec,questions_json,created_at
		FROM exams
		WHERE ($1 = '' OR kind = $1) AND LOWER(title) LIKE $2
		ORDER BY created_at DESC, id ASC
		LIMIT $3 OFFSET $4`,
		string(opts.Kind), like, limit, opts.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ExamSummary{}
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e.Summary())
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExam(sc scanner) (Exam, error) {
	var e Exam
	var kind, qjson string
	if err := sc.Scan(&e.ID, &e.Title, &kind, &e.Board, &e.Subject, &e.Year, &e.TimeLimitSec, &qjson, &e.CreatedAt); err != nil {
		return Exam{}, err
	}
	e.Kind = Kind(kind)
	if err := json.Unmarshal([]byte(qjson), &e.Questions); err != nil {
		return Exam{}, err
	}
	return e, nil
}
