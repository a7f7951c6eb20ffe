package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// MenuItem represents a single item in a selection menu.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical selection menu. An unfocused menu ignores keys and
// renders dimmed.
type Menu struct {
	Items    []MenuItem
	Selected int
	Focused  bool
}

// NewMenu creates a focused menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{
		Items:    items,
		Selected: selected,
		Focused:  true,
	}
}

// SetItems replaces the items, keeping the cursor on the same label when it
// is still present.
func (m *Menu) SetItems(items []MenuItem) {
	var current string
	if m.Selected >= 0 && m.Selected < len(m.Items) {
		current = m.Items[m.Selected].Label
	}
	focused := m.Focused
	*m = NewMenu(items)
	m.Focused = focused
	for i, item := range items {
		if item.Label == current && !item.Disabled {
			m.Selected = i
			return
		}
	}
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.Focused {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		prefix := "    "
		switch {
		case item.Disabled:
			style = style.Foreground(theme.TextDim)
		case i == m.Selected && m.Focused:
			style = style.Foreground(theme.Primary).Bold(true)
			prefix = "  ▸ "
		case i == m.Selected:
			style = style.Foreground(theme.TextDim).Bold(true)
			prefix = "  ▹ "
		}
		b.WriteString(style.Render(prefix+item.Label) + "\n")
	}
	return b.String()
}
