package scoring

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/psyquest/internal/quiz"
)

type mapCatalog map[string]*quiz.Test

func (m mapCatalog) Test(id string) (*quiz.Test, error) {
	t, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("test %q: %w", id, quiz.ErrUnknownTest)
	}
	return t, nil
}

func q3() quiz.Question {
	return quiz.Question{Text: "q", Options: quiz.Options{A: "a", B: "b", C: "c"}}
}

func q4() quiz.Question {
	return quiz.Question{Text: "q", Options: quiz.Options{A: "a", B: "b", C: "c", D: "d"}}
}

func traitTest(tb quiz.TieBreak) *quiz.Test {
	return &quiz.Test{
		ID:      "t",
		Title:   "Trait",
		Scoring: quiz.Scoring{Type: quiz.TraitCount, TieBreak: tb},
		Content: map[quiz.Gender]quiz.Content{
			quiz.GenderNone: {
				Questions: []quiz.Question{q3(), q3(), q3()},
				Results: quiz.ResultSet{
					{Key: "A", Detail: quiz.ResultDetail{Title: "Alpha"}},
					{Key: "B", Detail: quiz.ResultDetail{Title: "Beta"}},
					{Key: "C", Detail: quiz.ResultDetail{Title: "Gamma"}},
				},
			},
		},
	}
}

func rangeTest() *quiz.Test {
	return &quiz.Test{
		ID:      "r",
		Title:   "Range",
		Scoring: quiz.Scoring{Type: quiz.ScoreRange},
		Content: map[quiz.Gender]quiz.Content{
			quiz.GenderNone: {
				Questions: []quiz.Question{q4(), q4()},
				Results: quiz.ResultSet{
					{Key: "low", Detail: quiz.ResultDetail{Title: "Low", Range: &quiz.Range{Min: 2, Max: 4}}},
					{Key: "high", Detail: quiz.ResultDetail{Title: "High", Range: &quiz.Range{Min: 5, Max: 8}}},
				},
			},
		},
	}
}

func TestEncodeTraitIsIdentity(t *testing.T) {
	s := quiz.Scoring{Type: quiz.TraitCount}
	got := Encode(s, []quiz.Letter{quiz.A, quiz.C, quiz.D, quiz.B}, nil)
	assert.Equal(t, "ACDB", got)
}

func TestEncodeFixedTables(t *testing.T) {
	answers := []quiz.Letter{quiz.A, quiz.B, quiz.C, quiz.D, quiz.Letter("Z")}
	asc := Encode(quiz.Scoring{Type: quiz.ScoreRange, Encoding: quiz.EncodingAscending}, answers, nil)
	desc := Encode(quiz.Scoring{Type: quiz.ScoreRange, Encoding: quiz.EncodingDescending}, answers, nil)

	assert.Equal(t, "12341", asc)
	assert.Equal(t, "43211", desc)
}

func TestEncodePerQuestion(t *testing.T) {
	questions := []quiz.Question{
		{Options: quiz.Options{A: "a", B: "b", C: "c"}, Scores: map[quiz.Letter]int{quiz.A: 3, quiz.B: 2, quiz.C: 1}},
		{Options: quiz.Options{A: "a", B: "b", C: "c"}, Scores: map[quiz.Letter]int{quiz.A: 12}},
		{Options: quiz.Options{A: "a", B: "b", C: "c"}},
	}
	s := quiz.Scoring{Type: quiz.ScoreRange}
	assert.Equal(t, quiz.EncodingPerQuestion, EncodingFor(s, questions))

	got := Encode(s, []quiz.Letter{quiz.A, quiz.A, quiz.B, quiz.C}, questions)
	assert.Equal(t, "3000", got)
}

func TestEncodePerQuestionZeroScore(t *testing.T) {
	q := quiz.Question{
		Options: quiz.Options{A: "a", B: "b", C: "c", D: "d"},
		Scores:  map[quiz.Letter]int{quiz.A: 1, quiz.B: 3, quiz.C: 2, quiz.D: 0},
	}
	s := quiz.Scoring{Type: quiz.ScoreRange, Encoding: quiz.EncodingPerQuestion}
	qs := []quiz.Question{q, q}

	assert.Equal(t, "3", Encode(s, []quiz.Letter{quiz.B}, qs[:1]))
	assert.Equal(t, "30", Encode(s, []quiz.Letter{quiz.B, quiz.D}, qs))
	assert.Equal(t, 3, SumDigits("30"))
}

func TestEncodingForDefaultsToDescending(t *testing.T) {
	s := quiz.Scoring{Type: quiz.ScoreRange}
	assert.Equal(t, quiz.EncodingDescending, EncodingFor(s, []quiz.Question{q3()}))
	assert.Equal(t, "432", Encode(s, []quiz.Letter{quiz.A, quiz.B, quiz.C}, []quiz.Question{q3(), q3(), q3()}))
}

func TestSumDigits(t *testing.T) {
	assert.Equal(t, 0, SumDigits(""))
	assert.Equal(t, 15, SumDigits("12345"))
	assert.Equal(t, 10, SumDigits("ABCD"))
	assert.Equal(t, 3, SumDigits("1x2?"))
}

func TestCountLetters(t *testing.T) {
	assert.Equal(t, map[quiz.Letter]int{quiz.A: 0, quiz.B: 0, quiz.C: 0}, CountLetters(""))
	assert.Equal(t, map[quiz.Letter]int{quiz.A: 2, quiz.B: 0, quiz.C: 1, quiz.D: 1}, CountLetters("AACDx"))
}

func TestResolveTrait(t *testing.T) {
	tests := []struct {
		name     string
		tieBreak quiz.TieBreak
		encoded  string
		wantKey  string
		fallback bool
	}{
		{"plurality", quiz.TieBreakFirst, "BBA", "B", false},
		{"tie first", quiz.TieBreakFirst, "ABC", "A", false},
		{"tie last", quiz.TieBreakLast, "ABC", "C", false},
		{"empty first", quiz.TieBreakFirst, "", "A", false},
		{"empty last", quiz.TieBreakLast, "", "C", false},
		{"winner without result", quiz.TieBreakFirst, "DDA", "A", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := mapCatalog{"t": traitTest(tt.tieBreak)}
			res, err := Resolve(cat, "t", tt.encoded, quiz.GenderNone)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, res.Key)
			assert.Equal(t, tt.fallback, res.Fallback)
		})
	}
}

func TestResolveBucket(t *testing.T) {
	tr := traitTest(quiz.TieBreakFirst)
	tr.Scoring.Bucket = &quiz.BucketRule{
		Letter:    quiz.B,
		Tiers:     []quiz.BucketTier{{Min: 2, Key: "C"}, {Min: 1, Key: "B"}},
		Otherwise: "A",
	}
	cat := mapCatalog{"t": tr}

	for encoded, want := range map[string]string{"BBB": "C", "ABA": "B", "AAA": "A", "": "A"} {
		res, err := Resolve(cat, "t", encoded, quiz.GenderNone)
		require.NoError(t, err)
		assert.Equal(t, want, res.Key, "encoded %q", encoded)
	}
}

func TestResolveRange(t *testing.T) {
	cat := mapCatalog{"r": rangeTest()}
	tests := []struct {
		encoded  string
		wantKey  string
		total    int
		fallback bool
	}{
		{"11", "low", 2, false},
		{"22", "low", 4, false},
		{"23", "high", 5, false},
		{"44", "high", 8, false},
		{"", "low", 0, true},
		{"99", "low", 18, true},
		{"AD", "high", 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.encoded, func(t *testing.T) {
			res, err := Resolve(cat, "r", tt.encoded, quiz.GenderNone)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, res.Key)
			assert.Equal(t, tt.total, res.Total)
			assert.Equal(t, tt.fallback, res.Fallback)
		})
	}
}

func TestResolveErrors(t *testing.T) {
	gendered := &quiz.Test{
		ID:          "g",
		Title:       "Gendered",
		GenderBased: true,
		Scoring:     quiz.Scoring{Type: quiz.TraitCount},
		Content: map[quiz.Gender]quiz.Content{
			quiz.GenderMale: {Questions: []quiz.Question{q3()}, Results: quiz.ResultSet{{Key: "A"}}},
		},
	}
	empty := &quiz.Test{
		ID:      "e",
		Scoring: quiz.Scoring{Type: quiz.TraitCount},
		Content: map[quiz.Gender]quiz.Content{quiz.GenderNone: {}},
	}
	cat := mapCatalog{"g": gendered, "e": empty}

	tests := []struct {
		name   string
		id     string
		gender quiz.Gender
		want   error
	}{
		{"unknown test", "nope", quiz.GenderNone, quiz.ErrUnknownTest},
		{"missing gender", "g", quiz.GenderNone, quiz.ErrMissingGender},
		{"gender without content", "g", quiz.GenderFemale, quiz.ErrInvalidGender},
		{"no results", "e", quiz.GenderNone, quiz.ErrNoResults},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(cat, tt.id, "A", tt.gender)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var rerr *ResolutionError
			require.True(t, errors.As(err, &rerr))
			assert.Equal(t, tt.id, rerr.TestID)
		})
	}

	res, err := Resolve(cat, "g", "A", quiz.GenderMale)
	require.NoError(t, err)
	assert.Equal(t, quiz.GenderMale, res.Gender)
}

func TestShareText(t *testing.T) {
	res, err := Resolve(mapCatalog{"t": traitTest(quiz.TieBreakFirst)}, "t", "BB", quiz.GenderNone)
	require.NoError(t, err)
	assert.Equal(t, "[Trait] result: you are 'Beta'! Check yours.", res.ShareText())
}

func TestTotalBounds(t *testing.T) {
	lo, hi := TotalBounds(quiz.Scoring{Type: quiz.ScoreRange, Encoding: quiz.EncodingAscending}, []quiz.Question{q3(), q4()})
	assert.Equal(t, 2, lo)
	assert.Equal(t, 7, hi)

	lo, hi = TotalBounds(quiz.Scoring{Type: quiz.ScoreRange}, []quiz.Question{q3(), q3()})
	assert.Equal(t, 4, lo)
	assert.Equal(t, 8, hi)
}
