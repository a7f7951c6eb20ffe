package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pickedMsg string

func items(labels ...string) []MenuItem {
	out := make([]MenuItem, len(labels))
	for i, l := range labels {
		label := l
		out[i] = MenuItem{Label: l, Action: func() tea.Cmd {
			return func() tea.Msg { return pickedMsg(label) }
		}}
	}
	return out
}

func TestMenu_NavigateAndSelect(t *testing.T) {
	m := NewMenu(items("easy", "medium", "hard"))

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 2, m.Selected)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, pickedMsg("hard"), cmd())
}

func TestMenu_UnfocusedIgnoresKeys(t *testing.T) {
	m := NewMenu(items("a", "b"))
	m.Focused = false

	m, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 0, m.Selected)
	assert.Nil(t, cmd)
}

func TestMenu_SetItemsKeepsCursor(t *testing.T) {
	m := NewMenu(items("a", "b", "c"))
	m.Selected = 2

	m.SetItems(items("c", "a"))
	assert.Equal(t, 0, m.Selected)

	m.SetItems(items("x", "y"))
	assert.Equal(t, 0, m.Selected)
}

func TestButton_PressOnlyWhenActive(t *testing.T) {
	pressed := 0
	b := NewButton("Next question", "enter", func() tea.Cmd {
		pressed++
		return nil
	})

	b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, 0, pressed)

	b.Active = true
	b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, 1, pressed)

	b.Busy = true
	b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, 1, pressed)
	assert.Contains(t, b.View(), "Next question…")
}

func TestAccuracyBar_Fraction(t *testing.T) {
	assert.Equal(t, 0.0, AccuracyBar{}.Fraction())
	assert.Equal(t, 0.75, AccuracyBar{Correct: 3, Attempts: 4}.Fraction())

	view := AccuracyBar{Label: "scalar", Correct: 1, Attempts: 2, Width: 40}.View()
	assert.Contains(t, view, "1/2")
	assert.Contains(t, view, "50%")
}
