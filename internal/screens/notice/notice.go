package notice

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/psyquest/internal/router"
	"github.com/abhisek/psyquest/internal/screen"
	"github.com/abhisek/psyquest/internal/ui/layout"
	"github.com/abhisek/psyquest/internal/ui/theme"
)

// NoticeScreen shows a single message, typically an error that stopped a
// quiz from starting. Enter or Esc goes back.
type NoticeScreen struct {
	title   string
	message string
}

var _ screen.Screen = (*NoticeScreen)(nil)
var _ screen.KeyHintProvider = (*NoticeScreen)(nil)

// New creates a new NoticeScreen with the given title and message.
func New(title, message string) *NoticeScreen {
	return &NoticeScreen{title: title, message: message}
}

// FromError creates a NoticeScreen describing err.
func FromError(title string, err error) *NoticeScreen {
	return New(title, err.Error())
}

func (n *NoticeScreen) Init() tea.Cmd {
	return nil
}

func (n *NoticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return n, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return n, nil
}

func (n *NoticeScreen) View(width, height int) string {
	body := lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true).
		Render(n.title) +
		"\n\n" +
		lipgloss.NewStyle().
			Foreground(theme.Text).
			Width(layout.ColumnWidth(width)).
			Align(lipgloss.Center).
			Render(n.message)

	return layout.Center(body, width, height)
}

func (n *NoticeScreen) Title() string {
	return n.title
}

func (n *NoticeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Message returns the text shown.
func (n *NoticeScreen) Message() string {
	return n.message
}
