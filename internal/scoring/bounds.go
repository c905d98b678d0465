package scoring

import "github.com/abhisek/psyquest/internal/quiz"

// TotalBounds returns the smallest and largest digit sum a complete, honestly
// answered SCORE_RANGE response can reach.
func TotalBounds(s quiz.Scoring, questions []quiz.Question) (lo, hi int) {
	enc := EncodingFor(s, questions)
	for _, q := range questions {
		qlo, qhi := -1, -1
		for _, l := range q.Choices() {
			v := digitValue(enc, q, l)
			if qlo < 0 || v < qlo {
				qlo = v
			}
			if v > qhi {
				qhi = v
			}
		}
		lo += qlo
		hi += qhi
	}
	return lo, hi
}

func digitValue(enc quiz.Encoding, q quiz.Question, l quiz.Letter) int {
	var d string
	switch enc {
	case quiz.EncodingPerQuestion:
		d = questionDigit([]quiz.Question{q}, 0, l)
	case quiz.EncodingAscending:
		d = ascendingDigits[l]
	default:
		d = descendingDigits[l]
	}
	return SumDigits(d)
}
