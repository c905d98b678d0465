package scoring

import (
	"strconv"
	"strings"

	"github.com/abhisek/psyquest/internal/quiz"
)

// fallbackDigit is written for letters missing from a fixed digit table.
const fallbackDigit = "1"

// missingScoreDigit is written when a per-question score cannot be found.
const missingScoreDigit = "0"

var (
	ascendingDigits = map[quiz.Letter]string{
		quiz.A: "1", quiz.B: "2", quiz.C: "3", quiz.D: "4",
	}
	descendingDigits = map[quiz.Letter]string{
		quiz.A: "4", quiz.B: "3", quiz.C: "2", quiz.D: "1",
	}
)

// EncodingFor returns the digit encoding a SCORE_RANGE test uses. An explicit
// descriptor value wins; otherwise per-question tables are used when any
// question carries scores, and the descending table when none does.
func EncodingFor(s quiz.Scoring, questions []quiz.Question) quiz.Encoding {
	if s.Encoding != "" {
		return s.Encoding
	}
	for _, q := range questions {
		if len(q.Scores) > 0 {
			return quiz.EncodingPerQuestion
		}
	}
	return quiz.EncodingDescending
}

// Encode converts raw answers into the encoded response carried by a result
// link. The result has exactly one character per answer. Encoding never fails:
// unknown letters and missing scores degrade to fixed digits.
func Encode(s quiz.Scoring, answers []quiz.Letter, questions []quiz.Question) string {
	var b strings.Builder
	b.Grow(len(answers))

	if s.Type != quiz.ScoreRange {
		for _, a := range answers {
			b.WriteString(string(a))
		}
		return b.String()
	}

	switch EncodingFor(s, questions) {
	case quiz.EncodingPerQuestion:
		for i, a := range answers {
			b.WriteString(questionDigit(questions, i, a))
		}
	case quiz.EncodingAscending:
		writeTable(&b, ascendingDigits, answers)
	default:
		writeTable(&b, descendingDigits, answers)
	}
	return b.String()
}

func writeTable(b *strings.Builder, table map[quiz.Letter]string, answers []quiz.Letter) {
	for _, a := range answers {
		if d, ok := table[a]; ok {
			b.WriteString(d)
		} else {
			b.WriteString(fallbackDigit)
		}
	}
}

// questionDigit looks up the score of answer a on question i. Scores must fit
// in one digit so the encoded length stays equal to the answer count.
func questionDigit(questions []quiz.Question, i int, a quiz.Letter) string {
	if i >= len(questions) {
		return missingScoreDigit
	}
	score, ok := questions[i].Scores[a]
	if !ok || score < 0 || score > 9 {
		return missingScoreDigit
	}
	return strconv.Itoa(score)
}
