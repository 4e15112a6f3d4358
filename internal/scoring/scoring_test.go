package scoring_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mathhub/mathhub/internal/scoring"
)

func single(id, key string, marks, neg float64) scoring.Question {
	return scoring.Question{ID: id, Correct: []string{key}, Marks: marks, NegativeMarks: neg}
}

func multi(id string, key []string, marks, neg float64) scoring.Question {
	return scoring.Question{ID: id, Correct: key, MultiCorrect: true, Marks: marks, NegativeMarks: neg}
}

func TestScore_MixedSingleCorrect(t *testing.T) {
	qs := []scoring.Question{
		single("q1", "a", 1, 0.25),
		single("q2", "b", 1, 0.25),
		single("q3", "c", 1, 0.25),
	}
	got, err := scoring.Score(qs, map[string]string{"q1": "a", "q2": "d"})
	require.NoError(t, err)
	require.Equal(t, 1, got.Score)
	require.Equal(t, 3.0, got.TotalMarks)
	require.Equal(t, 0.75, got.ObtainedMarks)
	require.Equal(t, 3, got.TotalQuestions)
	require.Equal(t, map[string]bool{"q1": true, "q2": false, "q3": false}, got.Results)
}

func TestScore_MultiCorrect(t *testing.T) {
	qs := []scoring.Question{multi("m1", []string{"a", "c"}, 2, 1)}

	tests := []struct {
		name     string
		answer   string
		correct  bool
		obtained float64
	}{
		{name: "exact set", answer: "a,c", correct: true, obtained: 2},
		{name: "order insensitive", answer: "c,a", correct: true, obtained: 2},
		{name: "spaces tolerated", answer: " c , a ", correct: true, obtained: 2},
		{name: "subset clamps to zero", answer: "a", correct: false, obtained: 0},
		{name: "superset", answer: "a,b,c", correct: false, obtained: 0},
		{name: "duplicate token", answer: "a,a,c", correct: false, obtained: 0},
		{name: "empty string counts as attempted", answer: "", correct: false, obtained: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := scoring.Score(qs, map[string]string{"m1": tc.answer})
			require.NoError(t, err)
			require.Equal(t, tc.correct, got.Results["m1"])
			require.Equal(t, tc.obtained, got.ObtainedMarks)
			require.Equal(t, 2.0, got.TotalMarks)
		})
	}
}

func TestScore_SingleCorrectIsCaseSensitive(t *testing.T) {
	qs := []scoring.Question{single("q1", "b", 4, 1), single("q2", "c", 4, 1)}
	got, err := scoring.Score(qs, map[string]string{"q1": "B", "q2": "c"})
	require.NoError(t, err)
	require.False(t, got.Results["q1"])
	require.True(t, got.Results["q2"])
	require.Equal(t, 3.0, got.ObtainedMarks)
}

func TestScore_EmptyAnswerMap(t *testing.T) {
	qs := make([]scoring.Question, 0, 5)
	for _, id := range []string{"q1", "q2", "q3", "q4", "q5"} {
		qs = append(qs, single(id, "a", 1, 0.5))
	}
	got, err := scoring.Score(qs, map[string]string{})
	require.NoError(t, err)
	require.Equal(t, 0, got.Score)
	require.Equal(t, 0.0, got.ObtainedMarks)
	require.Equal(t, 5.0, got.TotalMarks)
	require.Len(t, got.Results, 5)
	for id, ok := range got.Results {
		require.False(t, ok, id)
	}
}

func TestScore_UnattemptedCarriesNoPenalty(t *testing.T) {
	qs := []scoring.Question{single("q1", "a", 2, 1), single("q2", "b", 2, 1)}
	got, err := scoring.Score(qs, map[string]string{"q1": "a"})
	require.NoError(t, err)
	require.Equal(t, 2.0, got.ObtainedMarks)
	require.False(t, got.Results["q2"])
}

func TestScore_NeverNegative(t *testing.T) {
	qs := []scoring.Question{
		single("q1", "a", 1, 5),
		single("q2", "a", 1, 5),
		multi("q3", []string{"b", "d"}, 1, 5),
	}
	got, err := scoring.Score(qs, map[string]string{"q1": "b", "q2": "c", "q3": "b"})
	require.NoError(t, err)
	require.Equal(t, 0, got.Score)
	require.Equal(t, 0.0, got.ObtainedMarks)
}

func TestScore_ObtainedNeverExceedsTotal(t *testing.T) {
	qs := []scoring.Question{
		single("q1", "a", 1.5, 0),
		multi("q2", []string{"a", "b"}, 2.5, 1),
		single("q3", "d", 4, 1),
	}
	got, err := scoring.Score(qs, map[string]string{"q1": "a", "q2": "b,a", "q3": "d"})
	require.NoError(t, err)
	require.Equal(t, 3, got.Score)
	require.Equal(t, got.TotalMarks, got.ObtainedMarks)
	require.LessOrEqual(t, got.ObtainedMarks, got.TotalMarks)
	require.Equal(t, 100.0, got.Percentage())
}

func TestScore_TotalMarksIndependentOfOrder(t *testing.T) {
	qs := []scoring.Question{
		single("q1", "a", 1, 0),
		single("q2", "b", 2, 0),
		multi("q3", []string{"c", "d"}, 3, 0),
	}
	answers := map[string]string{"q2": "b"}
	a, err := scoring.Score(qs, answers)
	require.NoError(t, err)

	reversed := []scoring.Question{qs[2], qs[1], qs[0]}
	b, err := scoring.Score(reversed, answers)
	require.NoError(t, err)

	require.Equal(t, 6.0, a.TotalMarks)
	require.Equal(t, a, b)
}

func TestScore_Deterministic(t *testing.T) {
	qs := []scoring.Question{
		single("q1", "a", 1, 0.25),
		multi("q2", []string{"a", "c"}, 2, 1),
		single("q3", "c", 1, 0.25),
	}
	answers := map[string]string{"q1": "a", "q2": "c,a", "q3": "b"}

	first, err := scoring.Score(qs, answers)
	require.NoError(t, err)
	second, err := scoring.Score(qs, answers)
	require.NoError(t, err)

	b1, err := json.Marshal(first)
	require.NoError(t, err)
	b2, err := json.Marshal(second)
	require.NoError(t, err)
	require.Equal(t, b1, b2)
	require.JSONEq(t, `{"score":2,"totalMarks":4,"obtainedMarks":2.75,"totalQuestions":3,"results":{"q1":true,"q2":true,"q3":false}}`, string(b1))
}

func TestScore_DoesNotMutateInputs(t *testing.T) {
	key := []string{"c", "a"}
	qs := []scoring.Question{multi("q1", key, 1, 0)}
	answers := map[string]string{"q1": "a,c"}

	_, err := scoring.Score(qs, answers)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "a"}, key)
	require.Equal(t, map[string]string{"q1": "a,c"}, answers)
}

func TestScore_InvalidInput(t *testing.T) {
	_, err := scoring.Score(nil, map[string]string{})
	require.ErrorIs(t, err, scoring.ErrInvalidInput)

	_, err = scoring.Score([]scoring.Question{single("q1", "a", 1, 0)}, nil)
	require.ErrorIs(t, err, scoring.ErrInvalidInput)
}

func TestScore_RejectsMalformedQuestions(t *testing.T) {
	tests := []struct {
		name string
		qs   []scoring.Question
	}{
		{name: "negative penalty", qs: []scoring.Question{single("q1", "a", 1, -1)}},
		{name: "zero marks", qs: []scoring.Question{single("q1", "a", 0, 0)}},
		{name: "negative marks", qs: []scoring.Question{single("q1", "a", -2, 0)}},
		{name: "missing id", qs: []scoring.Question{single("", "a", 1, 0)}},
		{name: "duplicate id", qs: []scoring.Question{single("q1", "a", 1, 0), single("q1", "b", 1, 0)}},
		{name: "no key", qs: []scoring.Question{{ID: "q1", Marks: 1}}},
		{name: "single with two keys", qs: []scoring.Question{{ID: "q1", Correct: []string{"a", "b"}, Marks: 1}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := scoring.Score(tc.qs, map[string]string{})
			require.ErrorIs(t, err, scoring.ErrComputation)
		})
	}
}

func TestSplitTokens(t *testing.T) {
	require.Equal(t, []string{"a", "c"}, scoring.SplitTokens("c,a"))
	require.Equal(t, []string{"b"}, scoring.SplitTokens(" b ,,"))
	require.Empty(t, scoring.SplitTokens(""))
}
