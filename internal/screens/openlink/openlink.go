package openlink

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/psyquest/internal/link"
	"github.com/abhisek/psyquest/internal/quiz"
	"github.com/abhisek/psyquest/internal/router"
	"github.com/abhisek/psyquest/internal/scoring"
	"github.com/abhisek/psyquest/internal/screen"
	"github.com/abhisek/psyquest/internal/screens/take"
	"github.com/abhisek/psyquest/internal/ui/components"
	"github.com/abhisek/psyquest/internal/ui/layout"
	"github.com/abhisek/psyquest/internal/ui/theme"
)

// OpenLinkScreen reads a pasted result link and shows the result it names.
type OpenLinkScreen struct {
	env   take.Env
	input components.TextInput
}

var _ screen.Screen = (*OpenLinkScreen)(nil)
var _ screen.KeyHintProvider = (*OpenLinkScreen)(nil)

// New creates the screen.
func New(env take.Env) *OpenLinkScreen {
	return &OpenLinkScreen{
		env:   env,
		input: components.NewTextInput("https://…/test/1/result?data=ABCBB", 0),
	}
}

func (o *OpenLinkScreen) Init() tea.Cmd {
	return o.input.Init()
}

func (o *OpenLinkScreen) Title() string {
	return "Open a result link"
}

func (o *OpenLinkScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (o *OpenLinkScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return o, o.open()
	}
	var cmd tea.Cmd
	o.input, cmd = o.input.Update(msg)
	return o, cmd
}

// SetValue replaces the typed link.
func (o *OpenLinkScreen) SetValue(v string) {
	o.input.SetValue(v)
}

// Err returns the message shown for the last failed attempt.
func (o *OpenLinkScreen) Err() string {
	return o.input.Err()
}

func (o *OpenLinkScreen) open() tea.Cmd {
	raw := strings.TrimSpace(o.input.Value())
	if raw == "" {
		o.input.Fail("paste a result link first")
		return nil
	}

	l, err := link.Parse(raw)
	if err != nil {
		o.input.Fail("that is not a result link")
		return nil
	}

	res, err := scoring.Resolve(o.env.Catalog, l.TestID, l.Data, l.Gender)
	if err != nil {
		o.input.Fail(describe(err))
		return nil
	}
	if o.env.Logger != nil && res.Fallback {
		o.env.Logger.Debug("link resolved by fallback", zap.String("test_id", l.TestID), zap.String("data", l.Data))
	}

	s := take.NewResult(o.env, res, link.Build(o.env.BaseURL, l))
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: s} }
}

func describe(err error) string {
	switch {
	case errors.Is(err, quiz.ErrUnknownTest):
		return "no test with that id"
	case errors.Is(err, quiz.ErrMissingGender):
		return "this test needs a gender in the link"
	case errors.Is(err, quiz.ErrInvalidGender):
		return "the link names an unknown gender"
	}
	return err.Error()
}

func (o *OpenLinkScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Paste a result link"))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Links look like /test/{id}/result?data=…"))
	b.WriteString("\n\n")
	b.WriteString(o.input.View())
	return layout.Center(b.String(), width, height)
}
