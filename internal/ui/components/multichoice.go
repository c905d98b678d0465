package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/psyquest/internal/quiz"
	"github.com/abhisek/psyquest/internal/ui/theme"
)

// MultiChoice presents one question's lettered options. An option is picked
// with Enter on the highlighted row or directly with its letter key.
type MultiChoice struct {
	Question  quiz.Question
	Choices   []quiz.Letter
	Selected  int
	Submitted bool
	chosen    quiz.Letter
}

// NewMultiChoice creates a selector for q.
func NewMultiChoice(q quiz.Question) MultiChoice {
	return MultiChoice{
		Question: q,
		Choices:  q.Choices(),
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Choices)-1 {
			m.Selected++
		}
	case "enter":
		m.choose(m.Selected)
	default:
		l := quiz.Letter(strings.ToUpper(key))
		for i, c := range m.Choices {
			if c == l {
				m.choose(i)
				break
			}
		}
	}

	return m, nil
}

func (m *MultiChoice) choose(i int) {
	if i < 0 || i >= len(m.Choices) {
		return
	}
	m.Selected = i
	m.Submitted = true
	m.chosen = m.Choices[i]
}

// Chosen returns the picked letter once submitted.
func (m MultiChoice) Chosen() (quiz.Letter, bool) {
	return m.chosen, m.Submitted
}

// View renders the question and its options, wrapped to width.
func (m MultiChoice) View(width int) string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width)
	s := questionStyle.Render(m.Question.Text) + "\n\n"

	for i, l := range m.Choices {
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, l, m.Question.OptionText(l))

		style := lipgloss.NewStyle().Foreground(theme.Text).Width(width)
		switch {
		case m.Submitted && i == m.Selected:
			style = style.Foreground(theme.Success).Bold(true)
		case m.Submitted:
			style = style.Foreground(theme.TextDim)
		case i == m.Selected:
			style = style.Foreground(theme.Primary).Bold(true)
		}
		s += style.Render(line) + "\n"
	}

	return s
}
