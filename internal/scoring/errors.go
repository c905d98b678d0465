package scoring

import "fmt"

// ResolutionError reports why a result could not be resolved. Err is one of
// quiz.ErrUnknownTest, quiz.ErrMissingGender, quiz.ErrInvalidGender or
// quiz.ErrNoResults.
type ResolutionError struct {
	TestID string
	Err    error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve test %q: %v", e.TestID, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }
