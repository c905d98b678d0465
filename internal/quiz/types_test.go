package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGender(t *testing.T) {
	tests := []struct {
		in      string
		want    Gender
		wantErr bool
	}{
		{"", GenderNone, false},
		{"male", GenderMale, false},
		{" Female ", GenderFemale, false},
		{"other", GenderNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGender(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidGender)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuestionOffers(t *testing.T) {
	three := Question{Options: Options{A: "a", B: "b", C: "c"}}
	four := Question{Options: Options{A: "a", B: "b", C: "c", D: "d"}}

	assert.False(t, three.Offers(D))
	assert.True(t, four.Offers(D))
	assert.False(t, four.Offers(Letter("E")))
	assert.Equal(t, []Letter{A, B, C}, three.Choices())
	assert.Equal(t, []Letter{A, B, C, D}, four.Choices())
	assert.Equal(t, "d", four.OptionText(D))
	assert.Equal(t, "", three.OptionText(D))
}

func TestBucketRuleKeyFor(t *testing.T) {
	r := &BucketRule{
		Letter:    B,
		Tiers:     []BucketTier{{Min: 7, Key: "high"}, {Min: 4, Key: "mid"}},
		Otherwise: "low",
	}
	assert.Equal(t, "high", r.KeyFor(10))
	assert.Equal(t, "high", r.KeyFor(7))
	assert.Equal(t, "mid", r.KeyFor(6))
	assert.Equal(t, "mid", r.KeyFor(4))
	assert.Equal(t, "low", r.KeyFor(3))
	assert.Equal(t, "low", r.KeyFor(0))
}

func TestAdviceLines(t *testing.T) {
	d := ResultDetail{Advice: "1. Rest more.\n2.Drink water\n\n  3.  Walk daily  \nNo number"}
	assert.Equal(t, []string{"Rest more.", "Drink water", "Walk daily", "No number"}, d.AdviceLines())
	assert.Nil(t, ResultDetail{}.AdviceLines())
}

func TestResultSetLookup(t *testing.T) {
	rs := ResultSet{{Key: "x", Detail: ResultDetail{Title: "X"}}, {Key: "y"}}
	e, ok := rs.Lookup("y")
	assert.True(t, ok)
	assert.Equal(t, "y", e.Key)
	_, ok = rs.Lookup("z")
	assert.False(t, ok)

	first, ok := rs.First()
	assert.True(t, ok)
	assert.Equal(t, "X", first.Detail.Title)
	_, ok = ResultSet(nil).First()
	assert.False(t, ok)
}

func TestTestSelect(t *testing.T) {
	plain := &Test{Content: map[Gender]Content{GenderNone: {Questions: make([]Question, 3)}}}
	c, err := plain.Select(GenderFemale)
	require.NoError(t, err)
	assert.Len(t, c.Questions, 3)
	assert.Equal(t, 3, plain.QuestionCount())

	gendered := &Test{
		GenderBased: true,
		Content: map[Gender]Content{
			GenderMale:   {Questions: make([]Question, 4)},
			GenderFemale: {Questions: make([]Question, 5)},
		},
	}
	_, err = gendered.Select(GenderNone)
	assert.ErrorIs(t, err, ErrMissingGender)
	_, err = gendered.Select(Gender("x"))
	assert.ErrorIs(t, err, ErrInvalidGender)

	c, err = gendered.Select(GenderFemale)
	require.NoError(t, err)
	assert.Len(t, c.Questions, 5)
	assert.Equal(t, 4, gendered.QuestionCount())
}
