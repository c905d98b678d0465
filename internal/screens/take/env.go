// Package take holds the screens a respondent moves through: the gender
// picker, the question flow and the result view.
package take

import (
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/psyquest/internal/quiz"
	"github.com/abhisek/psyquest/internal/router"
	"github.com/abhisek/psyquest/internal/screens/notice"
)

// Catalog is the catalog access the screens need.
type Catalog interface {
	Test(id string) (*quiz.Test, error)
	Tests() []*quiz.Test
	Others(id string) []*quiz.Test
}

// Env carries what every quiz screen needs.
type Env struct {
	Catalog Catalog
	BaseURL string
	Logger  *zap.Logger
}

func (e Env) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Begin returns the command that opens test t: the gender picker for
// gender-based tests, otherwise the question flow directly.
func Begin(env Env, t *quiz.Test) tea.Cmd {
	if t.GenderBased {
		s := NewGender(env, t)
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
	s, err := NewQuiz(env, t.ID, quiz.GenderNone)
	if err != nil {
		n := notice.FromError("Cannot start test", err)
		return func() tea.Msg { return router.PushScreenMsg{Screen: n} }
	}
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}
