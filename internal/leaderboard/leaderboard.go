package leaderboard

import (
	"context"
	"sort"
)

type Entry struct {
	UserID        string
	ObtainedMarks float64
	Percentage    float64
	TimeTakenSec  int
}

type Standing struct {
	Rank          int     `json:"rank"`
	UserID        string  `json:"user_id"`
	ObtainedMarks float64 `json:"obtained_marks"`
	Percentage    float64 `json:"percentage"`
}

// Board ranks attempts of one exam by obtained marks.
type Board interface {
	Record(ctx context.Context, examID string, e Entry) error
	Standings(ctx context.Context, examID string, limit int) ([]Standing, error)
}

// Rank orders entries by obtained marks descending and assigns competition
// ranks: equal marks share a rank and the next rank skips (1, 1, 3).
// Within a tie, shorter time taken comes first, then user id.
func Rank(entries []Entry) []Standing {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.ObtainedMarks != b.ObtainedMarks {
			return a.ObtainedMarks > b.ObtainedMarks
		}
		if a.TimeTakenSec != b.TimeTakenSec {
			return a.TimeTakenSec < b.TimeTakenSec
		}
		return a.UserID < b.UserID
	})

	out := make([]Standing, len(sorted))
	for i, e := range sorted {
		rank := i + 1
		if i > 0 && e.ObtainedMarks == sorted[i-1].ObtainedMarks {
			rank = out[i-1].Rank
		}
		out[i] = Standing{Rank: rank, UserID: e.UserID, ObtainedMarks: e.ObtainedMarks, Percentage: e.Percentage}
	}
	return out
}

func truncate(s []Standing, limit int) []Standing {
	if limit > 0 && limit < len(s) {
		return s[:limit]
	}
	return s
}
