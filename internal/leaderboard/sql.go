package leaderboard

import (
	"context"

	"github.com/mathhub/mathhub/internal/results"
)

// SQLBoard derives standings from the results table.
type SQLBoard struct {
	results results.Store
}

func NewSQLBoard(rs results.Store) *SQLBoard { return &SQLBoard{results: rs} }

// Record is a no-op: the result row already carries the entry.
func (b *SQLBoard) Record(context.Context, string, Entry) error { return nil }

func (b *SQLBoard) Standings(ctx context.Context, examID string, limit int) ([]Standing, error) {
	recs, err := b.results.ListByExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(recs))
	for _, r := range recs {
		entries = append(entries, Entry{
			UserID:        r.UserID,
			ObtainedMarks: r.ObtainedMarks,
			Percentage:    r.Percentage,
			TimeTakenSec:  r.TimeTakenSec,
		})
	}
	return truncate(Rank(entries), limit), nil
}
