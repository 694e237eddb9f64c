package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/bubblepop/internal/core"
)

func TestTickCmdCarriesGeneration(t *testing.T) {
	cmd := tickCmd(7, 1000)
	if cmd == nil {
		t.Fatal("tickCmd returned nil")
	}
	msg, ok := cmd().(TickMsg)
	if !ok {
		t.Fatalf("tick command produced %T, expected TickMsg", msg)
	}
	if msg.Gen != 7 {
		t.Errorf("Gen = %d, expected 7", msg.Gen)
	}
	if msg.Time.IsZero() {
		t.Error("tick time should be set")
	}
}

func TestNextGenIsUnique(t *testing.T) {
	seen := map[int]bool{}
	for range 100 {
		g := nextGen()
		if seen[g] {
			t.Fatalf("generation %d handed out twice", g)
		}
		seen[g] = true
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(2, 0, 'c', core.ColorRed)
	s.SetColored(3, 0, 'd', core.ColorRed)
	s.DrawTextColored(0, 1, "xyz", core.ColorCyan)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen produced %d lines, expected 2", len(lines))
	}
	for _, want := range []string{"ab", "cd", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen output %q does not contain %q", out, want)
		}
	}
}
