package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/psyquest/internal/router"
	"github.com/abhisek/psyquest/internal/screen"
	"github.com/abhisek/psyquest/internal/screens/openlink"
	"github.com/abhisek/psyquest/internal/screens/take"
	"github.com/abhisek/psyquest/internal/ui/components"
)

// HomeScreen lists the tests of the catalog.
type HomeScreen struct {
	env    take.Env
	source string
	menu   components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. source describes where the catalog was
// loaded from and is shown under the title.
func New(env take.Env, source string) *HomeScreen {
	var items []components.MenuItem
	for _, t := range env.Catalog.Tests() {
		t := t
		detail := fmt.Sprintf("%d questions", t.QuestionCount())
		if t.GenderBased {
			detail += ", by gender"
		}
		items = append(items, components.MenuItem{
			Label:  t.Title,
			Detail: detail,
			Action: func() tea.Cmd { return take.Begin(env, t) },
		})
	}

	items = append(items,
		components.MenuItem{Label: "Open a result link", Action: func() tea.Cmd {
			s := openlink.New(env)
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	return &HomeScreen{
		env:    env,
		source: source,
		menu:   components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 22 || width < 70
	cw := contentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderCatalogBar(len(h.env.Catalog.Tests()), h.source, cw),
		h.menu.View(),
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Tests"
}

// Selected returns the index of the highlighted menu item.
func (h *HomeScreen) Selected() int {
	return h.menu.Selected
}
