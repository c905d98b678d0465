package session

import (
	"fmt"

	"github.com/abhisek/psyquest/internal/quiz"
)

// Phase represents the current phase of a flow.
type Phase int

const (
	PhasePresenting Phase = iota // Waiting for the answer to State.Step
	PhaseCompleted               // Every question answered (terminal)
	PhaseAbandoned               // Cancelled before completion (terminal)
)

func (p Phase) String() string {
	switch p {
	case PhasePresenting:
		return "presenting"
	case PhaseCompleted:
		return "completed"
	case PhaseAbandoned:
		return "abandoned"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Terminal reports whether no further transition is possible.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseAbandoned
}

// State is the complete value of a flow: the question being presented, the
// answers collected so far and the phase.
type State struct {
	Step    int
	Answers []quiz.Letter
	Phase   Phase
}

// NewState returns the state at quiz start.
func NewState() State {
	return State{Phase: PhasePresenting}
}

// QuestionAt returns questions[step] or an *OutOfRangeError.
func QuestionAt(questions []quiz.Question, step int) (quiz.Question, error) {
	if step < 0 || step >= len(questions) {
		return quiz.Question{}, &OutOfRangeError{Step: step, Len: len(questions)}
	}
	return questions[step], nil
}

// Submit records choice for the current question and returns the next state.
// The input state is never modified.
func Submit(s State, questions []quiz.Question, choice quiz.Letter) (State, error) {
	switch s.Phase {
	case PhaseAbandoned:
		return s, ErrAbandoned
	case PhaseCompleted:
		return s, &OutOfRangeError{Step: len(s.Answers), Len: len(questions)}
	}

	q, err := QuestionAt(questions, s.Step)
	if err != nil {
		return s, err
	}
	if !q.Offers(choice) {
		return s, fmt.Errorf("%w: %q for question %d", ErrInvalidChoice, choice, s.Step+1)
	}

	answers := make([]quiz.Letter, len(s.Answers), len(s.Answers)+1)
	copy(answers, s.Answers)
	next := State{
		Step:    s.Step,
		Answers: append(answers, choice),
		Phase:   PhasePresenting,
	}

	if s.Step < len(questions)-1 {
		next.Step++
	} else {
		next.Phase = PhaseCompleted
	}
	return next, nil
}

// Cancel abandons a presenting flow and discards its answers.
func Cancel(s State) (State, error) {
	if s.Phase != PhasePresenting {
		return s, ErrNotPresenting
	}
	return State{Step: s.Step, Phase: PhaseAbandoned}, nil
}
