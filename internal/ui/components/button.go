package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// Button triggers OnPress on enter or space while it is Active and not
// Busy. Busy marks a press that is still being served.
type Button struct {
	Label   string
	KeyHint string
	Active  bool
	Busy    bool
	OnPress func() tea.Cmd
}

// NewButton creates an inactive button showing keyHint next to its label.
func NewButton(label, keyHint string, onPress func() tea.Cmd) Button {
	return Button{Label: label, KeyHint: keyHint, OnPress: onPress}
}

func (b Button) pressable() bool {
	return b.Active && !b.Busy && b.OnPress != nil
}

func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !b.pressable() {
		return b, nil
	}
	switch kmsg.String() {
	case "enter", "space":
		return b, b.OnPress()
	}
	return b, nil
}

func (b Button) View() string {
	switch {
	case b.Busy:
		return theme.ButtonInactive.Render(b.Label + "…")
	case b.Active:
		s := theme.ButtonActive.Render("▸ " + b.Label)
		if b.KeyHint != "" {
			s += " " + theme.Hint.Render(b.KeyHint)
		}
		return s
	}
	return theme.ButtonInactive.Render(b.Label)
}
