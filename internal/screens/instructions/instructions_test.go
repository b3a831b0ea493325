package instructions

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestInstructions_Navigation(t *testing.T) {
	s := New()
	if s.Title() != "How to Play" {
		t.Errorf("Title = %q", s.Title())
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if s.Step() != 0 {
		t.Errorf("left on first step moved to %d", s.Step())
	}

	for range 10 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	}
	if s.Step() != len(steps)-1 {
		t.Errorf("Step = %d, want %d", s.Step(), len(steps)-1)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if s.Step() != len(steps)-2 {
		t.Errorf("Step = %d, want %d", s.Step(), len(steps)-2)
	}
}

func TestInstructions_View(t *testing.T) {
	s := New()
	v := s.View(80, 20)
	if !strings.Contains(v, "Step One") {
		t.Error("expected first step title in view")
	}
	if !strings.Contains(v, "1 / 4") {
		t.Error("expected step counter in view")
	}
}
