package exam_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mathhub/mathhub/internal/db"
	"github.com/mathhub/mathhub/internal/exam"
)

func openSQLStore(t *testing.T) exam.Store {
	t.Helper()
	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite, "file:"+filepath.Join(t.TempDir(), "exam.db"))
	require.NoError(t, err)
	t.Cleanup(func() { dbh.Close() })
	return exam.NewSQLStore(dbh)
}

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) exam.Store{
		"memory": func(*testing.T) exam.Store { return exam.NewInMemoryStore() },
		"sqlite": openSQLStore,
	}
	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			e := validExam()
			require.NoError(t, s.PutExam(ctx, e))

			board := exam.Exam{
				ID: "cbse-2022-maths", Title: "CBSE Class 12 Mathematics 2022", Kind: exam.KindBoard,
				Questions: []exam.Question{{ID: "q1", CorrectAnswer: exam.AnswerKey{"c"}, Marks: 1}},
			}
			require.NoError(t, s.PutExam(ctx, board))

			full, err := s.GetExamAdmin(ctx, e.ID)
			require.NoError(t, err)
			require.Equal(t, exam.AnswerKey{"b", "d"}, full.Questions[1].CorrectAnswer)
			require.Equal(t, 1.0, full.Questions[0].NegativeMarks)

			safe, err := s.GetExam(ctx, e.ID)
			require.NoError(t, err)
			for _, q := range safe.Questions {
				require.Nil(t, q.CorrectAnswer)
			}

			// stripping a learner copy must not leak into the stored exam
			again, err := s.GetExamAdmin(ctx, e.ID)
			require.NoError(t, err)
			require.NotNil(t, again.Questions[0].CorrectAnswer)

			_, err = s.GetExam(ctx, "missing")
			require.ErrorIs(t, err, exam.ErrNotFound)

			all, err := s.ListExams(ctx, exam.ListOpts{})
			require.NoError(t, err)
			require.Len(t, all, 2)

			boards, err := s.ListExams(ctx, exam.ListOpts{Kind: exam.KindBoard})
			require.NoError(t, err)
			require.Len(t, boards, 1)
			require.Equal(t, "cbse-2022-maths", boards[0].ID)

			byTitle, err := s.ListExams(ctx, exam.ListOpts{Q: "jee main"})
			require.NoError(t, err)
			require.Len(t, byTitle, 1)
			require.Equal(t, 8.0, byTitle[0].TotalMarks)

			paged, err := s.ListExams(ctx, exam.ListOpts{Limit: 1, Offset: 1})
			require.NoError(t, err)
			require.Len(t, paged, 1)
		})
	}
}
