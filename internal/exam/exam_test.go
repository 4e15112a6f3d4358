package exam_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mathhub/mathhub/internal/exam"
)

func TestAnswerKey_DecodesBothShapes(t *testing.T) {
	var q struct {
		Key exam.AnswerKey `json:"k"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"k":"c, a"}`), &q))
	require.Equal(t, exam.AnswerKey{"a", "c"}, q.Key)

	require.NoError(t, json.Unmarshal([]byte(`{"k":["d","b"]}`), &q))
	require.Equal(t, exam.AnswerKey{"b", "d"}, q.Key)

	require.NoError(t, json.Unmarshal([]byte(`{"k":"b"}`), &q))
	require.Equal(t, exam.AnswerKey{"b"}, q.Key)
	require.Equal(t, "b", q.Key.String())
}

func TestAnswerKey_RejectsAmbiguousShapes(t *testing.T) {
	var k exam.AnswerKey
	for _, in := range []string{`1`, `{"a":true}`, `[1,2]`, `"a,,c"`, `""`, `["a",""]`, `true`} {
		require.Error(t, json.Unmarshal([]byte(in), &k), in)
	}
}

func validExam() exam.Exam {
	return exam.Exam{
		ID:    "jee-2023-p1",
		Title: "JEE Main 2023 Paper 1",
		Kind:  exam.KindEntrance,
		Questions: []exam.Question{
			{ID: "q1", CorrectAnswer: exam.AnswerKey{"a"}, Marks: 4, NegativeMarks: 1},
			{ID: "q2", CorrectAnswer: exam.AnswerKey{"b", "d"}, MultiCorrect: true, Marks: 4, NegativeMarks: 2},
		},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, exam.Validate(validExam()))

	tests := []struct {
		name   string
		mutate func(e *exam.Exam)
	}{
		{name: "missing id", mutate: func(e *exam.Exam) { e.ID = "" }},
		{name: "unknown kind", mutate: func(e *exam.Exam) { e.Kind = "olympiad" }},
		{name: "no questions", mutate: func(e *exam.Exam) { e.Questions = nil }},
		{name: "duplicate question", mutate: func(e *exam.Exam) { e.Questions[1].ID = "q1" }},
		{name: "zero marks", mutate: func(e *exam.Exam) { e.Questions[0].Marks = 0 }},
		{name: "negative penalty", mutate: func(e *exam.Exam) { e.Questions[0].NegativeMarks = -1 }},
		{name: "single with two keys", mutate: func(e *exam.Exam) { e.Questions[0].CorrectAnswer = exam.AnswerKey{"a", "b"} }},
		{name: "unknown token", mutate: func(e *exam.Exam) { e.Questions[0].CorrectAnswer = exam.AnswerKey{"e"} }},
		{name: "uppercase token", mutate: func(e *exam.Exam) { e.Questions[0].CorrectAnswer = exam.AnswerKey{"A"} }},
		{name: "repeated token", mutate: func(e *exam.Exam) { e.Questions[1].CorrectAnswer = exam.AnswerKey{"b", "b"} }},
		{name: "missing key", mutate: func(e *exam.Exam) { e.Questions[1].CorrectAnswer = nil }},
		{name: "board with penalty", mutate: func(e *exam.Exam) { e.Kind = exam.KindBoard }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := validExam()
			tc.mutate(&e)
			require.ErrorIs(t, exam.Validate(e), exam.ErrInvalidExam)
		})
	}
}

func TestScoringQuestions(t *testing.T) {
	qs := validExam().ScoringQuestions()
	require.Len(t, qs, 2)
	require.Equal(t, "q2", qs[1].ID)
	require.Equal(t, []string{"b", "d"}, qs[1].Correct)
	require.True(t, qs[1].MultiCorrect)
	require.Equal(t, 2.0, qs[1].NegativeMarks)
}

func TestSummary(t *testing.T) {
	s := validExam().Summary()
	require.Equal(t, 2, s.QuestionCount)
	require.Equal(t, 8.0, s.TotalMarks)
}
