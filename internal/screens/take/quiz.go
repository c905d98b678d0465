package take

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/psyquest/internal/quiz"
	"github.com/abhisek/psyquest/internal/router"
	"github.com/abhisek/psyquest/internal/scoring"
	"github.com/abhisek/psyquest/internal/screen"
	"github.com/abhisek/psyquest/internal/screens/notice"
	"github.com/abhisek/psyquest/internal/session"
	"github.com/abhisek/psyquest/internal/ui/components"
	"github.com/abhisek/psyquest/internal/ui/layout"
	"github.com/abhisek/psyquest/internal/ui/theme"
)

// QuizScreen presents the questions of one flow in order. Esc asks for
// confirmation before the flow is abandoned.
type QuizScreen struct {
	env        Env
	flow       *session.Flow
	choice     components.MultiChoice
	confirming bool
	err        error
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)

// NewQuiz starts a flow for testID and returns the screen driving it.
func NewQuiz(env Env, testID string, gender quiz.Gender) (*QuizScreen, error) {
	flow, err := session.Start(env.Catalog, testID, gender, session.WithLogger(env.logger()))
	if err != nil {
		return nil, err
	}
	q, err := flow.CurrentQuestion()
	if err != nil {
		return nil, err
	}
	return &QuizScreen{
		env:    env,
		flow:   flow,
		choice: components.NewMultiChoice(q),
	}, nil
}

// Flow returns the underlying flow.
func (s *QuizScreen) Flow() *session.Flow {
	return s.flow
}

// Confirming reports whether the quit prompt is showing.
func (s *QuizScreen) Confirming() bool {
	return s.confirming
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return s.flow.Test().Title
}

func (s *QuizScreen) Status() string {
	current, total := s.flow.Progress()
	return fmt.Sprintf("%d / %d", current, total)
}

func (s *QuizScreen) HandlesEscape() bool {
	return true
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "y", Description: "Leave test"},
			{Key: "n", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "A-D", Description: "Answer"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Quit test"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.confirming {
		switch kmsg.String() {
		case "y", "enter":
			return s, s.abandon()
		case "n", "esc":
			s.confirming = false
		}
		return s, nil
	}

	if kmsg.String() == "esc" {
		s.confirming = true
		return s, nil
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if l, chosen := s.choice.Chosen(); chosen {
		return s, s.submit(l)
	}
	return s, cmd
}

func (s *QuizScreen) submit(l quiz.Letter) tea.Cmd {
	completion, err := s.flow.Submit(l)
	if err != nil {
		s.err = err
		q, qerr := s.flow.CurrentQuestion()
		if qerr == nil {
			s.choice = components.NewMultiChoice(q)
		}
		return nil
	}
	s.err = nil

	if completion == nil {
		q, err := s.flow.CurrentQuestion()
		if err != nil {
			s.err = err
			return nil
		}
		s.choice = components.NewMultiChoice(q)
		return nil
	}

	var next screen.Screen
	res, err := scoring.Resolve(s.env.Catalog, completion.TestID, completion.Encoded, completion.Gender)
	if err != nil {
		s.env.logger().Error("resolve completed flow", zap.String("flow_id", s.flow.ID), zap.Error(err))
		next = notice.FromError("Cannot show result", err)
	} else {
		next = NewResult(s.env, res, completion.URL(s.env.BaseURL))
	}
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *QuizScreen) abandon() tea.Cmd {
	if err := s.flow.Cancel(); err != nil {
		s.env.logger().Warn("cancel flow", zap.String("flow_id", s.flow.ID), zap.Error(err))
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *QuizScreen) View(width, height int) string {
	cw := layout.ColumnWidth(width)
	current, total := s.flow.Progress()

	var b strings.Builder
	b.WriteString(components.NewProgressBar("Progress", current-1, total, cw).View())
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Question %d of %d", current, total)))
	b.WriteString("\n\n")
	b.WriteString(s.choice.View(cw))

	if s.err != nil {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(s.err.Error()))
	}

	if s.confirming {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 2).
			Render("Leave this test? Your answers will be discarded. (y/n)"))
	}

	return layout.Center(b.String(), width, height)
}
