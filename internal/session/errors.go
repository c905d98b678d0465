package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidChoice indicates a letter outside A-D or a D on a question
	// without a fourth option.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrAbandoned indicates an answer submitted to a cancelled flow.
	ErrAbandoned = errors.New("flow was abandoned")

	// ErrNotPresenting indicates a cancel on a flow that already finished.
	ErrNotPresenting = errors.New("flow is not presenting a question")

	// ErrIncomplete indicates an answer list shorter than the question list.
	ErrIncomplete = errors.New("not every question was answered")
)

// OutOfRangeError reports access to a question index past the active list.
// It signals a flow-control bug in the caller, not a respondent mistake.
type OutOfRangeError struct {
	Step int
	Len  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("question %d out of range (test has %d)", e.Step, e.Len)
}
