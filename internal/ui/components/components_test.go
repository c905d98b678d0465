package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/psyquest/internal/quiz"
)

func threeOptions() quiz.Question {
	return quiz.Question{Text: "Pick one", Options: quiz.Options{A: "red", B: "green", C: "blue"}}
}

func TestMultiChoiceEnterPicksHighlighted(t *testing.T) {
	m := NewMultiChoice(threeOptions())
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	got, ok := m.Chosen()
	if !ok {
		t.Fatal("expected a choice after enter")
	}
	if got != quiz.B {
		t.Errorf("chosen = %s, want B", got)
	}
}

func TestMultiChoiceLetterKey(t *testing.T) {
	m := NewMultiChoice(threeOptions())
	m, _ = m.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})

	got, ok := m.Chosen()
	if !ok || got != quiz.C {
		t.Errorf("chosen = %s (%v), want C", got, ok)
	}
}

func TestMultiChoiceIgnoresUnofferedLetter(t *testing.T) {
	m := NewMultiChoice(threeOptions())
	m, _ = m.Update(tea.KeyPressMsg{Code: 'd', Text: "d"})

	if _, ok := m.Chosen(); ok {
		t.Error("D is not offered and must not be chosen")
	}
}

func TestMultiChoiceFourthOption(t *testing.T) {
	q := threeOptions()
	q.Options.D = "black"
	m := NewMultiChoice(q)
	for i := 0; i < 5; i++ {
		m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if m.Selected != 3 {
		t.Errorf("selected = %d, want 3 (clamped)", m.Selected)
	}
	if !strings.Contains(m.View(60), "black") {
		t.Error("view should list option D")
	}
}

func TestMultiChoiceLocksAfterSubmit(t *testing.T) {
	m := NewMultiChoice(threeOptions())
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m, _ = m.Update(tea.KeyPressMsg{Code: 'b', Text: "b"})

	got, _ := m.Chosen()
	if got != quiz.A {
		t.Errorf("chosen = %s, want A to stick", got)
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	var picked string
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "one", Action: func() tea.Cmd { picked = "one"; return nil }},
		{Label: "two", Action: func() tea.Cmd { picked = "two"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("selected = %d, want first enabled item", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("selected = %d, up must not land on a disabled item", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if picked != "two" {
		t.Errorf("picked = %q, want two", picked)
	}
}

func TestProgressBarPercent(t *testing.T) {
	tests := []struct {
		current, total int
		want           float64
	}{
		{0, 5, 0},
		{2, 4, 0.5},
		{7, 5, 1},
		{1, 0, 0},
	}
	for _, tt := range tests {
		p := NewProgressBar("", tt.current, tt.total, 40)
		if got := p.Percent(); got != tt.want {
			t.Errorf("Percent(%d/%d) = %v, want %v", tt.current, tt.total, got, tt.want)
		}
	}
	if !strings.Contains(NewProgressBar("Q", 2, 5, 40).View(), "2/5") {
		t.Error("view should show the counter")
	}
}
