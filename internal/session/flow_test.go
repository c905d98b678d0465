package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/psyquest/internal/catalog"
	"github.com/abhisek/psyquest/internal/quiz"
	"github.com/abhisek/psyquest/internal/scoring"
)

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return cat
}

func repeat(l quiz.Letter, n int) []quiz.Letter {
	out := make([]quiz.Letter, n)
	for i := range out {
		out[i] = l
	}
	return out
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "presenting", PhasePresenting.String())
	assert.Equal(t, "completed", PhaseCompleted.String())
	assert.Equal(t, "abandoned", PhaseAbandoned.String())
	assert.Equal(t, "phase(9)", Phase(9).String())
	assert.False(t, PhasePresenting.Terminal())
	assert.True(t, PhaseCompleted.Terminal())
}

func TestSubmitDoesNotMutateInput(t *testing.T) {
	questions := []quiz.Question{
		{Text: "q1", Options: quiz.Options{A: "a", B: "b", C: "c"}},
		{Text: "q2", Options: quiz.Options{A: "a", B: "b", C: "c"}},
	}
	s0 := NewState()
	s1, err := Submit(s0, questions, quiz.B)
	require.NoError(t, err)

	assert.Empty(t, s0.Answers)
	assert.Equal(t, 0, s0.Step)
	assert.Equal(t, 1, s1.Step)
	assert.Equal(t, []quiz.Letter{quiz.B}, s1.Answers)
	assert.Equal(t, PhasePresenting, s1.Phase)

	s2, err := Submit(s1, questions, quiz.C)
	require.NoError(t, err)
	assert.Equal(t, PhaseCompleted, s2.Phase)
	assert.Equal(t, []quiz.Letter{quiz.B}, s1.Answers)
	assert.Equal(t, []quiz.Letter{quiz.B, quiz.C}, s2.Answers)
}

func TestSubmitRejectsInvalidChoice(t *testing.T) {
	questions := []quiz.Question{
		{Text: "q1", Options: quiz.Options{A: "a", B: "b", C: "c"}},
	}
	tests := []struct {
		name   string
		choice quiz.Letter
	}{
		{"D without fourth option", quiz.D},
		{"lowercase", quiz.Letter("a")},
		{"out of alphabet", quiz.Letter("E")},
		{"empty", quiz.Letter("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Submit(NewState(), questions, tt.choice)
			require.ErrorIs(t, err, ErrInvalidChoice)
			assert.Equal(t, NewState(), s)
		})
	}
}

func TestSubmitAfterTerminal(t *testing.T) {
	questions := []quiz.Question{
		{Text: "q1", Options: quiz.Options{A: "a", B: "b", C: "c"}},
	}
	done, err := Submit(NewState(), questions, quiz.A)
	require.NoError(t, err)

	_, err = Submit(done, questions, quiz.A)
	var oor *OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 1, oor.Step)
	assert.Equal(t, 1, oor.Len)

	abandoned, err := Cancel(NewState())
	require.NoError(t, err)
	_, err = Submit(abandoned, questions, quiz.A)
	assert.ErrorIs(t, err, ErrAbandoned)
}

func TestCancel(t *testing.T) {
	questions := []quiz.Question{
		{Text: "q1", Options: quiz.Options{A: "a", B: "b", C: "c"}},
		{Text: "q2", Options: quiz.Options{A: "a", B: "b", C: "c"}},
	}
	s, err := Submit(NewState(), questions, quiz.A)
	require.NoError(t, err)

	c, err := Cancel(s)
	require.NoError(t, err)
	assert.Equal(t, PhaseAbandoned, c.Phase)
	assert.Empty(t, c.Answers)

	_, err = Cancel(c)
	assert.ErrorIs(t, err, ErrNotPresenting)
}

func TestQuestionAtOutOfRange(t *testing.T) {
	_, err := QuestionAt(nil, 0)
	var oor *OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, "question 0 out of range (test has 0)", err.Error())

	_, err = QuestionAt([]quiz.Question{{Text: "x"}}, -1)
	assert.Error(t, err)
}

func TestFlowTraitRoundTrip(t *testing.T) {
	cat := defaultCatalog(t)
	f, err := Start(cat, "1", quiz.GenderNone)
	require.NoError(t, err)
	assert.NotEmpty(t, f.ID)

	answers := []quiz.Letter{quiz.A, quiz.B, quiz.C, quiz.B, quiz.B}
	for i, a := range answers {
		cur, total := f.Progress()
		assert.Equal(t, i+1, cur)
		assert.Equal(t, len(answers), total)

		q, err := f.CurrentQuestion()
		require.NoError(t, err)
		assert.NotEmpty(t, q.Text)

		c, err := f.Submit(a)
		require.NoError(t, err)
		if i < len(answers)-1 {
			assert.Nil(t, c)
		} else {
			require.NotNil(t, c)
		}
	}

	c := f.Completion()
	require.NotNil(t, c)
	assert.Equal(t, "ABCBB", c.Encoded)
	assert.Equal(t, "1", c.Link.TestID)
	assert.Equal(t, "ABCBB", c.Link.Data)
	assert.Equal(t, "https://psyquest.example/test/1/result?data=ABCBB", c.URL("https://psyquest.example/"))

	_, err = f.CurrentQuestion()
	assert.Error(t, err)

	res, err := scoring.Resolve(cat, c.TestID, c.Encoded, c.Gender)
	require.NoError(t, err)
	assert.Equal(t, "B", res.Key)
}

func TestFlowEncodesScoreRange(t *testing.T) {
	cat := defaultCatalog(t)
	tests := []struct {
		name    string
		id      string
		answers []quiz.Letter
		want    string
	}{
		{"ascending", "4", repeat(quiz.A, 5), "11111"},
		{"descending", "5", repeat(quiz.A, 5), "44444"},
		{"default encoding", "6", repeat(quiz.C, 6), "222222"},
		{"per question", "7", []quiz.Letter{quiz.A, quiz.B, quiz.C, quiz.A, quiz.A}, "33333"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Run(cat, tt.id, quiz.GenderNone, tt.answers)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Encoded)
			assert.Len(t, c.Encoded, len(tt.answers))
		})
	}
}

func TestFlowGenderBased(t *testing.T) {
	cat := defaultCatalog(t)

	_, err := Start(cat, "3", quiz.GenderNone)
	assert.ErrorIs(t, err, quiz.ErrMissingGender)

	f, err := Start(cat, "3", quiz.GenderFemale)
	require.NoError(t, err)
	assert.Equal(t, quiz.GenderFemale, f.Gender())

	for i := 0; i < f.Len(); i++ {
		_, err := f.Submit(quiz.D)
		require.NoError(t, err)
	}
	c := f.Completion()
	require.NotNil(t, c)
	assert.Equal(t, quiz.GenderFemale, c.Link.Gender)
	assert.Contains(t, c.URL(""), "gender=female")
}

func TestFlowIgnoresGenderForOtherTests(t *testing.T) {
	cat := defaultCatalog(t)
	f, err := Start(cat, "1", quiz.GenderMale)
	require.NoError(t, err)
	assert.Equal(t, quiz.GenderNone, f.Gender())
}

func TestFlowUnknownTest(t *testing.T) {
	_, err := Start(defaultCatalog(t), "404", quiz.GenderNone)
	assert.True(t, errors.Is(err, quiz.ErrUnknownTest))
}

func TestFlowCancelDiscardsAnswers(t *testing.T) {
	f, err := Start(defaultCatalog(t), "1", quiz.GenderNone)
	require.NoError(t, err)
	_, err = f.Submit(quiz.A)
	require.NoError(t, err)

	require.NoError(t, f.Cancel())
	assert.Equal(t, PhaseAbandoned, f.Phase())
	assert.Empty(t, f.State().Answers)
	assert.Nil(t, f.Completion())

	_, err = f.Submit(quiz.A)
	assert.ErrorIs(t, err, ErrAbandoned)
}

func TestRunAnswerCount(t *testing.T) {
	cat := defaultCatalog(t)

	_, err := Run(cat, "1", quiz.GenderNone, repeat(quiz.A, 3))
	assert.ErrorIs(t, err, ErrIncomplete)

	_, err = Run(cat, "1", quiz.GenderNone, repeat(quiz.A, 6))
	var oor *OutOfRangeError
	assert.ErrorAs(t, err, &oor)

	_, err = Run(cat, "1", quiz.GenderNone, []quiz.Letter{quiz.A, quiz.D})
	assert.ErrorIs(t, err, ErrInvalidChoice)
}
