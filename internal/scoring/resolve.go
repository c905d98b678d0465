package scoring

import (
	"errors"
	"fmt"

	"github.com/abhisek/psyquest/internal/quiz"
)

// Catalog is the read access Resolve needs.
type Catalog interface {
	Test(id string) (*quiz.Test, error)
}

// Resolution is a resolved result.
type Resolution struct {
	Test   *quiz.Test
	Gender quiz.Gender
	Key    string
	Detail quiz.ResultDetail

	// Total is the digit sum (SCORE_RANGE only).
	Total int

	// Counts holds letter occurrences (TRAIT_COUNT only).
	Counts map[quiz.Letter]int

	// Fallback is set when no entry matched and the first entry was used.
	Fallback bool
}

// ShareText is the message offered when sharing a result.
func (r *Resolution) ShareText() string {
	return fmt.Sprintf("[%s] result: you are '%s'! Check yours.", r.Test.Title, r.Detail.Title)
}

// legacyLetterScores reads letters found in score-range data produced before
// digits were encoded.
var legacyLetterScores = map[rune]int{'A': 1, 'B': 2, 'C': 3, 'D': 4}

// Resolve maps an encoded response to a result of test testID. Only an
// unknown test or a missing/invalid gender on a gender-based test fail; every
// other irregularity in encoded falls back to a declared default.
func Resolve(cat Catalog, testID, encoded string, gender quiz.Gender) (*Resolution, error) {
	t, err := cat.Test(testID)
	if err != nil {
		if errors.Is(err, quiz.ErrUnknownTest) {
			return nil, &ResolutionError{TestID: testID, Err: quiz.ErrUnknownTest}
		}
		return nil, &ResolutionError{TestID: testID, Err: err}
	}

	content, err := t.Select(gender)
	if err != nil {
		return nil, &ResolutionError{TestID: testID, Err: err}
	}
	if len(content.Results) == 0 {
		return nil, &ResolutionError{TestID: testID, Err: quiz.ErrNoResults}
	}

	res := &Resolution{Test: t}
	if t.GenderBased {
		res.Gender = gender
	}

	var entry quiz.ResultEntry
	if t.Scoring.Type == quiz.ScoreRange {
		res.Total = SumDigits(encoded)
		entry, res.Fallback = pickRange(content.Results, res.Total)
	} else {
		res.Counts = CountLetters(encoded)
		key := traitKey(t.Scoring, res.Counts)
		entry, res.Fallback = pickKey(content.Results, key)
	}

	res.Key = entry.Key
	res.Detail = entry.Detail
	return res, nil
}

// SumDigits totals an encoded score-range response. Digits count as their
// value, the letters A-D as 1-4, anything else as zero.
func SumDigits(encoded string) int {
	total := 0
	for _, r := range encoded {
		switch {
		case r >= '0' && r <= '9':
			total += int(r - '0')
		default:
			total += legacyLetterScores[r]
		}
	}
	return total
}

// CountLetters counts A, B and C, and D when it occurs at least once.
func CountLetters(encoded string) map[quiz.Letter]int {
	counts := map[quiz.Letter]int{quiz.A: 0, quiz.B: 0, quiz.C: 0}
	for _, r := range encoded {
		switch l := quiz.Letter(string(r)); l {
		case quiz.A, quiz.B, quiz.C, quiz.D:
			counts[l]++
		}
	}
	return counts
}

// traitKey picks the result key for a trait test.
func traitKey(s quiz.Scoring, counts map[quiz.Letter]int) string {
	if s.Bucket != nil {
		return s.Bucket.KeyFor(counts[s.Bucket.Letter])
	}

	var best quiz.Letter
	bestCount := -1
	for _, l := range quiz.Letters() {
		n, ok := counts[l]
		if !ok {
			continue
		}
		switch {
		case n > bestCount:
			best, bestCount = l, n
		case n == bestCount && s.TieBreak == quiz.TieBreakLast:
			best = l
		}
	}
	return string(best)
}

func pickRange(results quiz.ResultSet, total int) (quiz.ResultEntry, bool) {
	for _, e := range results {
		if e.Detail.Range != nil && e.Detail.Range.Contains(total) {
			return e, false
		}
	}
	first, _ := results.First()
	return first, true
}

func pickKey(results quiz.ResultSet, key string) (quiz.ResultEntry, bool) {
	if e, ok := results.Lookup(key); ok {
		return e, false
	}
	first, _ := results.First()
	return first, true
}
