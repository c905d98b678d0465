package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{MinWidth, MinHeight, false},
		{MinWidth - 1, MinHeight, true},
		{MinWidth, MinHeight - 1, true},
		{200, 60, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Stress Gauge", "2 / 5", 80)
	for _, want := range []string{"psyquest", "Stress Gauge", "2 / 5"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderFooter(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 80)
	if !strings.Contains(f, "Esc") || !strings.Contains(f, "Back") {
		t.Errorf("footer missing hint: %q", f)
	}
}

func TestColumnWidth(t *testing.T) {
	if got := ColumnWidth(200); got != 72 {
		t.Errorf("ColumnWidth(200) = %d, want 72", got)
	}
	if got := ColumnWidth(10); got != 20 {
		t.Errorf("ColumnWidth(10) = %d, want 20", got)
	}
	if got := ColumnWidth(60); got != 52 {
		t.Errorf("ColumnWidth(60) = %d, want 52", got)
	}
}
