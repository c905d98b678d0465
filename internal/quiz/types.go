package quiz

import (
	"regexp"
	"strings"
)

// ScoringType selects how answers are turned into a result.
type ScoringType string

const (
	// TraitCount resolves by the answer letter chosen most often.
	TraitCount ScoringType = "TRAIT_COUNT"
	// ScoreRange sums per-answer digits and buckets the total into a range.
	ScoreRange ScoringType = "SCORE_RANGE"
)

// Encoding selects how a SCORE_RANGE answer is turned into a digit.
type Encoding string

const (
	EncodingAscending   Encoding = "ascending"    // A=1 B=2 C=3 D=4
	EncodingDescending  Encoding = "descending"   // A=4 B=3 C=2 D=1
	EncodingPerQuestion Encoding = "per_question" // Question.Scores lookup
)

// TieBreak decides which letter wins when trait counts are equal.
type TieBreak string

const (
	TieBreakFirst TieBreak = "first" // first letter in A, B, C, D order
	TieBreakLast  TieBreak = "last"  // last letter in A, B, C, D order
)

// Letter is a single answer choice.
type Letter string

const (
	A Letter = "A"
	B Letter = "B"
	C Letter = "C"
	D Letter = "D"
)

// Letters returns all answer letters in declared order.
func Letters() []Letter {
	return []Letter{A, B, C, D}
}

// Valid reports whether l is one of A, B, C, D.
func (l Letter) Valid() bool {
	switch l {
	case A, B, C, D:
		return true
	}
	return false
}

// Gender partitions the content of a gender-based test.
type Gender string

const (
	GenderNone   Gender = ""
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Genders returns the genders a gender-based test must define content for.
func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale}
}

// Valid reports whether g is male or female.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// ParseGender parses a gender parameter. An empty string is GenderNone.
func ParseGender(s string) (Gender, error) {
	g := Gender(strings.ToLower(strings.TrimSpace(s)))
	if g == GenderNone || g.Valid() {
		return g, nil
	}
	return GenderNone, ErrInvalidGender
}

// BucketTier maps a minimum letter count to a result key.
type BucketTier struct {
	Min int    `json:"min" yaml:"min"`
	Key string `json:"key" yaml:"key"`
}

// BucketRule replaces plurality voting for a trait test: the count of a single
// letter is compared against descending thresholds.
type BucketRule struct {
	Letter    Letter       `json:"letter" yaml:"letter"`
	Tiers     []BucketTier `json:"tiers" yaml:"tiers"`
	Otherwise string       `json:"otherwise" yaml:"otherwise"`
}

// KeyFor returns the result key for the given letter count. Tiers are checked
// in declared order; the first one whose Min is reached wins.
func (r *BucketRule) KeyFor(count int) string {
	for _, t := range r.Tiers {
		if count >= t.Min {
			return t.Key
		}
	}
	return r.Otherwise
}

// Scoring is the per-test scoring strategy descriptor.
type Scoring struct {
	Type     ScoringType `json:"type" yaml:"type"`
	Encoding Encoding    `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	Bucket   *BucketRule `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	TieBreak TieBreak    `json:"tieBreak,omitempty" yaml:"tieBreak,omitempty"`
}

// Options holds the answer texts of a question. D is optional.
type Options struct {
	A string `json:"a" yaml:"a"`
	B string `json:"b" yaml:"b"`
	C string `json:"c" yaml:"c"`
	D string `json:"d,omitempty" yaml:"d,omitempty"`
}

// Question is a single multiple-choice prompt.
type Question struct {
	Text    string         `json:"text" yaml:"text"`
	Options Options        `json:"options" yaml:"options"`
	Scores  map[Letter]int `json:"scores,omitempty" yaml:"scores,omitempty"`
}

// HasD reports whether the question offers a fourth option.
func (q Question) HasD() bool {
	return q.Options.D != ""
}

// Offers reports whether l is a choice this question presents.
func (q Question) Offers(l Letter) bool {
	switch l {
	case A, B, C:
		return true
	case D:
		return q.HasD()
	}
	return false
}

// Choices returns the offered letters in order.
func (q Question) Choices() []Letter {
	if q.HasD() {
		return []Letter{A, B, C, D}
	}
	return []Letter{A, B, C}
}

// OptionText returns the text shown for l, or "" if not offered.
func (q Question) OptionText(l Letter) string {
	switch l {
	case A:
		return q.Options.A
	case B:
		return q.Options.B
	case C:
		return q.Options.C
	case D:
		return q.Options.D
	}
	return ""
}

// Range is an inclusive [Min, Max] score window.
type Range struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Contains reports whether total lies inside the window.
func (r Range) Contains(total int) bool {
	return total >= r.Min && total <= r.Max
}

// ResultDetail is the content shown for a resolved result.
type ResultDetail struct {
	Title      string `json:"title" yaml:"title"`
	Desc       string `json:"desc" yaml:"desc"`
	Color      string `json:"color,omitempty" yaml:"color,omitempty"`
	Strengths  string `json:"strengths,omitempty" yaml:"strengths,omitempty"`
	Weaknesses string `json:"weaknesses,omitempty" yaml:"weaknesses,omitempty"`
	Advice     string `json:"advice,omitempty" yaml:"advice,omitempty"`
	Quests     string `json:"quests,omitempty" yaml:"quests,omitempty"`
	Range      *Range `json:"range,omitempty" yaml:"range,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
}

var adviceNumbering = regexp.MustCompile(`^\d+\.\s*`)

// AdviceLines splits Advice into trimmed lines with any leading "N." removed.
func (d ResultDetail) AdviceLines() []string {
	if strings.TrimSpace(d.Advice) == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(d.Advice, "\n") {
		line = adviceNumbering.ReplaceAllString(strings.TrimSpace(line), "")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ResultEntry is a keyed result in declared order.
type ResultEntry struct {
	Key    string       `json:"key" yaml:"key"`
	Detail ResultDetail `json:"detail" yaml:",inline"`
}

// ResultSet is the ordered result list of one content partition.
type ResultSet []ResultEntry

// Lookup finds the entry with the given key.
func (rs ResultSet) Lookup(key string) (ResultEntry, bool) {
	for _, e := range rs {
		if e.Key == key {
			return e, true
		}
	}
	return ResultEntry{}, false
}

// First returns the first declared entry.
func (rs ResultSet) First() (ResultEntry, bool) {
	if len(rs) == 0 {
		return ResultEntry{}, false
	}
	return rs[0], true
}

// Content is the question list and result set for one gender partition.
type Content struct {
	Questions []Question `json:"questions"`
	Results   ResultSet  `json:"results"`
}

// Test is a complete quiz definition.
type Test struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Scoring     Scoring `json:"scoring"`
	GenderBased bool    `json:"genderBased"`

	// Content is keyed by gender; non-gender tests use GenderNone.
	Content map[Gender]Content `json:"content"`
}

// QuestionCount returns the number of questions shown on listings. Gender-based
// tests report the male list.
func (t *Test) QuestionCount() int {
	if t.GenderBased {
		return len(t.Content[GenderMale].Questions)
	}
	return len(t.Content[GenderNone].Questions)
}

// Select returns the content partition for g. Gender is ignored for tests that
// are not gender-based.
func (t *Test) Select(g Gender) (Content, error) {
	if !t.GenderBased {
		return t.Content[GenderNone], nil
	}
	if g == GenderNone {
		return Content{}, ErrMissingGender
	}
	if !g.Valid() {
		return Content{}, ErrInvalidGender
	}
	c, ok := t.Content[g]
	if !ok {
		return Content{}, ErrInvalidGender
	}
	return c, nil
}
