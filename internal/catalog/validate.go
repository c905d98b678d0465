package catalog

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/abhisek/psyquest/internal/quiz"
	"github.com/abhisek/psyquest/internal/scoring"
)

// ValidationError lists every problem found in a catalog.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("catalog validation failed:\n  %s", strings.Join(e.Problems, "\n  "))
}

// validateTests performs all structural checks on the given tests.
// Returns a *ValidationError describing all problems found, or nil if valid.
func validateTests(tests []*quiz.Test) error {
	var errs []string

	if len(tests) == 0 {
		errs = append(errs, "catalog has no tests")
	}

	seen := make(map[string]bool, len(tests))
	for _, t := range tests {
		if t == nil {
			errs = append(errs, "nil test")
			continue
		}
		if t.ID == "" {
			errs = append(errs, fmt.Sprintf("test %q: empty id", t.Title))
		}
		if seen[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate test ID: %q", t.ID))
		}
		seen[t.ID] = true
		errs = append(errs, validateTest(t)...)
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}

func validateTest(t *quiz.Test) []string {
	var errs []string
	prefix := fmt.Sprintf("test %q", t.ID)

	if t.Title == "" {
		errs = append(errs, prefix+": empty title")
	}
	errs = append(errs, validateScoring(prefix, t.Scoring)...)

	var keys []quiz.Gender
	if t.GenderBased {
		keys = quiz.Genders()
	} else {
		keys = []quiz.Gender{quiz.GenderNone}
	}
	for _, g := range keys {
		content, ok := t.Content[g]
		p := prefix
		if g != quiz.GenderNone {
			p = fmt.Sprintf("%s %s", prefix, g)
		}
		if !ok {
			errs = append(errs, p+": no content")
			continue
		}
		errs = append(errs, validateContent(p, t.Scoring, content)...)
	}
	return errs
}

func validateScoring(prefix string, s quiz.Scoring) []string {
	var errs []string
	switch s.Type {
	case quiz.TraitCount:
		if s.Encoding != "" {
			errs = append(errs, fmt.Sprintf("%s: encoding %q only applies to %s", prefix, s.Encoding, quiz.ScoreRange))
		}
		switch s.TieBreak {
		case "", quiz.TieBreakFirst, quiz.TieBreakLast:
		default:
			errs = append(errs, fmt.Sprintf("%s: unknown tie break %q", prefix, s.TieBreak))
		}
		if b := s.Bucket; b != nil {
			if !b.Letter.Valid() {
				errs = append(errs, fmt.Sprintf("%s: bucket letter %q is not A-D", prefix, b.Letter))
			}
			for i := 1; i < len(b.Tiers); i++ {
				if b.Tiers[i].Min >= b.Tiers[i-1].Min {
					errs = append(errs, fmt.Sprintf("%s: bucket tiers must have strictly descending minimums", prefix))
					break
				}
			}
		}
	case quiz.ScoreRange:
		if s.Bucket != nil {
			errs = append(errs, fmt.Sprintf("%s: bucket only applies to %s", prefix, quiz.TraitCount))
		}
		switch s.Encoding {
		case "", quiz.EncodingAscending, quiz.EncodingDescending, quiz.EncodingPerQuestion:
		default:
			errs = append(errs, fmt.Sprintf("%s: unknown encoding %q", prefix, s.Encoding))
		}
	default:
		errs = append(errs, fmt.Sprintf("%s: unknown scoring type %q", prefix, s.Type))
	}
	return errs
}

func validateContent(prefix string, s quiz.Scoring, c quiz.Content) []string {
	var errs []string

	if len(c.Questions) == 0 {
		errs = append(errs, prefix+": no questions")
	}
	for i, q := range c.Questions {
		qp := fmt.Sprintf("%s question %d", prefix, i+1)
		if q.Text == "" {
			errs = append(errs, qp+": empty text")
		}
		if q.Options.A == "" || q.Options.B == "" || q.Options.C == "" {
			errs = append(errs, qp+": options A, B and C are required")
		}
		for _, l := range slices.Sorted(maps.Keys(q.Scores)) {
			v := q.Scores[l]
			if !q.Offers(l) {
				errs = append(errs, fmt.Sprintf("%s: score for option %q that is not offered", qp, l))
			}
			if v < 0 || v > 9 {
				errs = append(errs, fmt.Sprintf("%s: score %d for %q must be a single digit", qp, v, l))
			}
		}
	}

	if len(c.Results) == 0 {
		errs = append(errs, prefix+": no results")
		return errs
	}

	keys := make(map[string]bool, len(c.Results))
	for _, e := range c.Results {
		if e.Key != "" && keys[e.Key] {
			errs = append(errs, fmt.Sprintf("%s: duplicate result key %q", prefix, e.Key))
		}
		keys[e.Key] = true
	}

	switch s.Type {
	case quiz.TraitCount:
		for _, e := range c.Results {
			if e.Key == "" {
				errs = append(errs, fmt.Sprintf("%s: result %q has no key", prefix, e.Detail.Title))
			}
		}
		if b := s.Bucket; b != nil {
			for _, k := range bucketKeys(b) {
				if !keys[k] {
					errs = append(errs, fmt.Sprintf("%s: bucket key %q has no result", prefix, k))
				}
			}
		}
	case quiz.ScoreRange:
		errs = append(errs, validateRanges(prefix, s, c)...)
	}
	return errs
}

func bucketKeys(b *quiz.BucketRule) []string {
	keys := make([]string, 0, len(b.Tiers)+1)
	for _, t := range b.Tiers {
		keys = append(keys, t.Key)
	}
	return append(keys, b.Otherwise)
}

// validateRanges checks that score windows neither overlap nor leave a gap
// inside the totals a complete response can reach.
func validateRanges(prefix string, s quiz.Scoring, c quiz.Content) []string {
	var errs []string

	ranges := make([]quiz.Range, 0, len(c.Results))
	for _, e := range c.Results {
		if e.Detail.Range == nil {
			errs = append(errs, fmt.Sprintf("%s: result %q has no range", prefix, e.Detail.Title))
			continue
		}
		r := *e.Detail.Range
		if r.Min > r.Max {
			errs = append(errs, fmt.Sprintf("%s: result %q range [%d, %d] is inverted", prefix, e.Detail.Title, r.Min, r.Max))
			continue
		}
		ranges = append(ranges, r)
	}
	if len(errs) > 0 {
		return errs
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Min < ranges[j].Min })
	for i := 1; i < len(ranges); i++ {
		if ranges[i].Min <= ranges[i-1].Max {
			errs = append(errs, fmt.Sprintf("%s: ranges [%d, %d] and [%d, %d] overlap",
				prefix, ranges[i-1].Min, ranges[i-1].Max, ranges[i].Min, ranges[i].Max))
		}
	}

	lo, hi := scoring.TotalBounds(s, c.Questions)
	next := lo
	for _, r := range ranges {
		if r.Max < next {
			continue
		}
		if r.Min > next {
			break
		}
		next = r.Max + 1
	}
	if next <= hi {
		errs = append(errs, fmt.Sprintf("%s: reachable total %d is not covered by any range (reachable %d-%d)",
			prefix, next, lo, hi))
	}
	return errs
}
