package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func typeInto(m MatrixInput, text string) MatrixInput {
	for _, r := range text {
		m, _ = m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return m
}

func TestMatrixInput_FillsRowMajor(t *testing.T) {
	m := NewMatrixInput(2, 2)
	assert.Equal(t, 0, m.Focused())

	for i, v := range []string{"1", "-2", "3", "4"} {
		m = typeInto(m, v)
		if i < 3 {
			m.Next()
		}
	}

	assert.True(t, m.AtLast())
	assert.Equal(t, []string{"1", "-2", "3", "4"}, m.Values())
}

func TestMatrixInput_TabNavigation(t *testing.T) {
	m := NewMatrixInput(1, 3)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, 1, m.Focused())

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, 0, m.Focused())

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, 0, m.Focused(), "focus stays on the first cell")
}

func TestMatrixInput_DropsLetters(t *testing.T) {
	m := typeInto(NewMatrixInput(1, 1), "a1b2")
	assert.Equal(t, []string{"12"}, m.Values())
}

func TestMatrixInput_UpDownMoveByRow(t *testing.T) {
	m := NewMatrixInput(2, 3)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 3, m.Focused())

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 3, m.Focused())

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, m.Focused())
}

func TestMatrixInput_PlaceholdersShowCoordinates(t *testing.T) {
	view := NewMatrixInput(2, 2).View()
	// The leading bracket sits under the cursor cell and is styled apart.
	assert.Contains(t, view, "1,0]")
	assert.Contains(t, view, "1,1]")
}
