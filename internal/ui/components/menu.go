package components

import (
	tea "charm.land/bubbletea/v2"
)

// Option is one button in an arcade menu.
type Option struct {
	Label  string
	Action func() tea.Cmd
}

// Menu tracks the cursor over a column of arcade buttons. The cursor
// wraps at both ends, and digit keys 1-9 fire the matching option
// directly.
type Menu struct {
	options  []Option
	selected int
}

// NewMenu creates a menu with the cursor on the first option.
func NewMenu(options ...Option) Menu {
	return Menu{options: options}
}

// Selected returns the cursor index.
func (m Menu) Selected() int { return m.selected }

// Labels returns the option labels in order.
func (m Menu) Labels() []string {
	labels := make([]string, len(m.options))
	for i, o := range m.options {
		labels[i] = o.Label
	}
	return labels
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.options) == 0 {
		return m, nil
	}

	n := len(m.options)
	switch key := kmsg.String(); key {
	case "up", "k":
		m.selected = (m.selected - 1 + n) % n
	case "down", "j", "tab":
		m.selected = (m.selected + 1) % n
	case "enter", "space":
		return m, m.fire()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < n {
				m.selected = i
				return m, m.fire()
			}
		}
	}
	return m, nil
}

func (m Menu) fire() tea.Cmd {
	if a := m.options[m.selected].Action; a != nil {
		return a()
	}
	return nil
}

// View renders bordered buttons centered in cw, or plain lines when
// compact is set for short terminals.
func (m Menu) View(cw, buttonWidth int, compact bool) string {
	if compact {
		return ArcadeMenuCompact(m.Labels(), m.selected, cw)
	}
	return ArcadeMenu(m.Labels(), m.selected, buttonWidth, cw)
}
