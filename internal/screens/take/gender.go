package take

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/psyquest/internal/quiz"
	"github.com/abhisek/psyquest/internal/router"
	"github.com/abhisek/psyquest/internal/screen"
	"github.com/abhisek/psyquest/internal/screens/notice"
	"github.com/abhisek/psyquest/internal/ui/components"
	"github.com/abhisek/psyquest/internal/ui/layout"
	"github.com/abhisek/psyquest/internal/ui/theme"
)

// GenderScreen asks which question set of a gender-based test to take. The
// choice replaces this screen with the quiz so Esc from the quiz goes home.
type GenderScreen struct {
	env  Env
	test *quiz.Test
	menu components.Menu
}

var _ screen.Screen = (*GenderScreen)(nil)

// NewGender creates the picker for t.
func NewGender(env Env, t *quiz.Test) *GenderScreen {
	g := &GenderScreen{env: env, test: t}
	g.menu = components.NewMenu([]components.MenuItem{
		{Label: "Male", Action: func() tea.Cmd { return g.pick(quiz.GenderMale) }},
		{Label: "Female", Action: func() tea.Cmd { return g.pick(quiz.GenderFemale) }},
	})
	return g
}

func (g *GenderScreen) pick(gender quiz.Gender) tea.Cmd {
	var next screen.Screen
	s, err := NewQuiz(g.env, g.test.ID, gender)
	if err != nil {
		next = notice.FromError("Cannot start test", err)
	} else {
		next = s
	}
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (g *GenderScreen) Init() tea.Cmd {
	return nil
}

func (g *GenderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	g.menu, cmd = g.menu.Update(msg)
	return g, cmd
}

func (g *GenderScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render(g.test.Title))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render("This test has separate questions for each gender."))
	b.WriteString("\n\n")
	b.WriteString(g.menu.View())

	return layout.Center(lipgloss.NewStyle().Width(layout.ColumnWidth(width)).Render(b.String()), width, height)
}

func (g *GenderScreen) Title() string {
	return g.test.Title
}
