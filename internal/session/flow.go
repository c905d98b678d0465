package session

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/psyquest/internal/link"
	"github.com/abhisek/psyquest/internal/quiz"
	"github.com/abhisek/psyquest/internal/scoring"
)

// TestSource provides test definitions to a flow.
type TestSource interface {
	Test(id string) (*quiz.Test, error)
}

// Completion is the terminal output of a finished flow.
type Completion struct {
	TestID  string
	Gender  quiz.Gender
	Answers []quiz.Letter
	Encoded string
	Link    link.Link
}

// URL returns the shareable result link under base.
func (c *Completion) URL(base string) string {
	return link.Build(base, c.Link)
}

// Option configures a Flow.
type Option func(*Flow)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(f *Flow) {
		if l != nil {
			f.logger = l
		}
	}
}

// Flow drives one respondent through the questions of a test. A Flow is not
// safe for concurrent use.
type Flow struct {
	// ID correlates log lines of one flow. It is never persisted.
	ID string

	test       *quiz.Test
	gender     quiz.Gender
	questions  []quiz.Question
	state      State
	completion *Completion
	logger     *zap.Logger
}

// Start begins a flow for testID. Gender-based tests require gender; other
// tests ignore it.
func Start(src TestSource, testID string, gender quiz.Gender, opts ...Option) (*Flow, error) {
	t, err := src.Test(testID)
	if err != nil {
		return nil, err
	}
	content, err := t.Select(gender)
	if err != nil {
		return nil, fmt.Errorf("test %q: %w", testID, err)
	}
	if !t.GenderBased {
		gender = quiz.GenderNone
	}

	f := &Flow{
		ID:        uuid.New().String(),
		test:      t,
		gender:    gender,
		questions: content.Questions,
		state:     NewState(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = f.logger.With(zap.String("flow_id", f.ID), zap.String("test_id", t.ID))
	f.logger.Debug("flow started", zap.Int("questions", len(f.questions)), zap.String("gender", string(gender)))
	return f, nil
}

// Test returns the test being taken.
func (f *Flow) Test() *quiz.Test { return f.test }

// Gender returns the gender the flow was started with.
func (f *Flow) Gender() quiz.Gender { return f.gender }

// State returns a copy of the current state.
func (f *Flow) State() State {
	s := f.state
	s.Answers = append([]quiz.Letter(nil), f.state.Answers...)
	return s
}

// Phase returns the current phase.
func (f *Flow) Phase() Phase { return f.state.Phase }

// Len returns the number of questions in the active list.
func (f *Flow) Len() int { return len(f.questions) }

// Progress returns the 1-based number of the question being presented and
// the total. A completed flow reports total/total.
func (f *Flow) Progress() (current, total int) {
	total = len(f.questions)
	if f.state.Phase == PhaseCompleted {
		return total, total
	}
	return f.state.Step + 1, total
}

// QuestionAt returns the question at step of the active list.
func (f *Flow) QuestionAt(step int) (quiz.Question, error) {
	return QuestionAt(f.questions, step)
}

// CurrentQuestion returns the question awaiting an answer.
func (f *Flow) CurrentQuestion() (quiz.Question, error) {
	if f.state.Phase != PhasePresenting {
		return quiz.Question{}, &OutOfRangeError{Step: len(f.state.Answers), Len: len(f.questions)}
	}
	return f.QuestionAt(f.state.Step)
}

// Submit records an answer. When it answers the last question the flow
// completes and the returned Completion is non-nil.
func (f *Flow) Submit(choice quiz.Letter) (*Completion, error) {
	next, err := Submit(f.state, f.questions, choice)
	if err != nil {
		return nil, err
	}
	f.state = next
	if next.Phase != PhaseCompleted {
		return nil, nil
	}

	encoded := scoring.Encode(f.test.Scoring, next.Answers, f.questions)
	f.completion = &Completion{
		TestID:  f.test.ID,
		Gender:  f.gender,
		Answers: append([]quiz.Letter(nil), next.Answers...),
		Encoded: encoded,
		Link: link.Link{
			TestID: f.test.ID,
			Data:   encoded,
			Gender: f.gender,
		},
	}
	f.logger.Debug("flow completed", zap.String("data", encoded))
	return f.completion, nil
}

// Cancel abandons the flow. Collected answers are discarded.
func (f *Flow) Cancel() error {
	next, err := Cancel(f.state)
	if err != nil {
		return err
	}
	f.state = next
	f.logger.Debug("flow abandoned", zap.Int("step", next.Step))
	return nil
}

// Completion returns the terminal output, or nil before completion.
func (f *Flow) Completion() *Completion { return f.completion }

// Run feeds answers through a new flow and returns its completion. The
// answer count must match the active question list exactly.
func Run(src TestSource, testID string, gender quiz.Gender, answers []quiz.Letter, opts ...Option) (*Completion, error) {
	f, err := Start(src, testID, gender, opts...)
	if err != nil {
		return nil, err
	}
	for _, a := range answers {
		if _, err := f.Submit(a); err != nil {
			return nil, err
		}
	}
	if c := f.Completion(); c != nil {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %d of %d", ErrIncomplete, len(answers), f.Len())
}
