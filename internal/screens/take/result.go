package take

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/psyquest/internal/quiz"
	"github.com/abhisek/psyquest/internal/router"
	"github.com/abhisek/psyquest/internal/scoring"
	"github.com/abhisek/psyquest/internal/screen"
	"github.com/abhisek/psyquest/internal/ui/components"
	"github.com/abhisek/psyquest/internal/ui/layout"
	"github.com/abhisek/psyquest/internal/ui/theme"
)

// ResultScreen shows a resolved result, its share link and the other tests.
// The detail scrolls with PgUp/PgDn when it does not fit.
type ResultScreen struct {
	env      Env
	res      *scoring.Resolution
	shareURL string
	menu     components.Menu
	offset   int
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// NewResult creates the screen for res. shareURL may be empty.
func NewResult(env Env, res *scoring.Resolution, shareURL string) *ResultScreen {
	r := &ResultScreen{env: env, res: res, shareURL: shareURL}

	items := []components.MenuItem{
		{Label: "Take this test again", Action: func() tea.Cmd { return r.retake(res.Test) }},
	}
	for _, t := range env.Catalog.Others(res.Test.ID) {
		t := t
		items = append(items, components.MenuItem{
			Label:  t.Title,
			Detail: fmt.Sprintf("%d questions", t.QuestionCount()),
			Action: func() tea.Cmd { return r.retake(t) },
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Back to tests",
		Action: func() tea.Cmd { return func() tea.Msg { return router.PopToRootMsg{} } },
	})
	r.menu = components.NewMenu(items)
	return r
}

// retake unwinds to the home screen before opening t so results do not pile
// up on the stack.
func (r *ResultScreen) retake(t *quiz.Test) tea.Cmd {
	return tea.Sequence(
		func() tea.Msg { return router.PopToRootMsg{} },
		Begin(r.env, t),
	)
}

// Resolution returns the result shown.
func (r *ResultScreen) Resolution() *scoring.Resolution {
	return r.res
}

func (r *ResultScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultScreen) Title() string {
	return r.res.Test.Title
}

func (r *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (r *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "pgdown", "space":
			r.offset += 5
			return r, nil
		case "pgup":
			r.offset -= 5
			if r.offset < 0 {
				r.offset = 0
			}
			return r, nil
		}
	}
	var cmd tea.Cmd
	r.menu, cmd = r.menu.Update(msg)
	return r, cmd
}

// Body renders the result detail without the menu.
func (r *ResultScreen) Body(width int) string {
	d := r.res.Detail
	var sections []string

	titleStyle := lipgloss.NewStyle().Foreground(theme.ResultColor(d.Color)).Bold(true)
	sections = append(sections, theme.Hint.Render("Your result")+"\n"+titleStyle.Render(d.Title))

	if r.res.Test.Scoring.Type == quiz.ScoreRange {
		sections = append(sections, theme.Hint.Render(fmt.Sprintf("Score: %d", r.res.Total)))
	}

	para := lipgloss.NewStyle().Foreground(theme.Text).Width(width)
	if d.Desc != "" {
		sections = append(sections, para.Render(d.Desc))
	}
	if d.Strengths != "" {
		sections = append(sections, theme.Heading.Render("Strengths")+"\n"+para.Render(d.Strengths))
	}
	if d.Weaknesses != "" {
		sections = append(sections, theme.Heading.Render("Watch out for")+"\n"+para.Render(d.Weaknesses))
	}
	if lines := d.AdviceLines(); len(lines) > 0 {
		var b strings.Builder
		b.WriteString(theme.Heading.Render("Advice"))
		for i, l := range lines {
			b.WriteString("\n")
			b.WriteString(para.Render(fmt.Sprintf("%d. %s", i+1, l)))
		}
		sections = append(sections, b.String())
	}
	if d.Quests != "" {
		sections = append(sections, theme.Heading.Render("Try this")+"\n"+para.Render(d.Quests))
	}

	share := theme.Heading.Render("Share") + "\n" + para.Render(r.res.ShareText())
	if r.shareURL != "" {
		share += "\n" + lipgloss.NewStyle().Foreground(theme.Secondary).Render(r.shareURL)
	}
	sections = append(sections, share)

	return strings.Join(sections, "\n\n")
}

func (r *ResultScreen) View(width, height int) string {
	cw := layout.ColumnWidth(width)
	menu := theme.Heading.Render("More tests") + "\n" + r.menu.View()

	bodyHeight := height - lipgloss.Height(menu) - 1
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	lines := strings.Split(r.Body(cw), "\n")
	if last := len(lines) - bodyHeight; r.offset > last {
		r.offset = last
	}
	if r.offset < 0 {
		r.offset = 0
	}
	end := r.offset + bodyHeight
	if end > len(lines) {
		end = len(lines)
	}
	body := strings.Join(lines[r.offset:end], "\n")

	content := lipgloss.NewStyle().Width(cw).Render(body + "\n\n" + menu)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}
