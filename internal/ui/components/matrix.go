package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// cellWidth is the visible width of one matrix cell.
const cellWidth = 6

// MatrixInput is a grid of numeric cells filled in row-major order.
type MatrixInput struct {
	Rows, Cols int

	cells   []textinput.Model
	focus   int
	flagged map[int]bool
}

// NewMatrixInput creates a rows×cols grid with the first cell focused.
// Each empty cell shows its [row,col] coordinates.
func NewMatrixInput(rows, cols int) MatrixInput {
	m := MatrixInput{
		Rows:    rows,
		Cols:    cols,
		cells:   make([]textinput.Model, rows*cols),
		flagged: make(map[int]bool),
	}
	for i := range m.cells {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = fmt.Sprintf("[%d,%d]", i/cols, i%cols)
		ti.CharLimit = 12
		ti.SetWidth(cellWidth)
		m.cells[i] = ti
	}
	if len(m.cells) > 0 {
		m.cells[0].Focus()
	}
	return m
}

// Focused returns the row-major index of the focused cell.
func (m MatrixInput) Focused() int { return m.focus }

// AtLast reports whether the final cell is focused.
func (m MatrixInput) AtLast() bool { return m.focus == len(m.cells)-1 }

// Values returns the raw cell contents in row-major order.
func (m MatrixInput) Values() []string {
	out := make([]string, len(m.cells))
	for i, c := range m.cells {
		out[i] = c.Value()
	}
	return out
}

// SetFocus moves focus to cell i.
func (m *MatrixInput) SetFocus(i int) tea.Cmd {
	if i < 0 || i >= len(m.cells) {
		return nil
	}
	m.cells[m.focus].Blur()
	m.focus = i
	return m.cells[i].Focus()
}

// Next moves focus one cell forward, stopping at the last cell.
func (m *MatrixInput) Next() tea.Cmd { return m.SetFocus(m.focus + 1) }

// Prev moves focus one cell back.
func (m *MatrixInput) Prev() tea.Cmd { return m.SetFocus(m.focus - 1) }

// Blur removes focus from every cell.
func (m *MatrixInput) Blur() {
	for i := range m.cells {
		m.cells[i].Blur()
	}
}

// Flag highlights the given cells, replacing any earlier highlight.
func (m *MatrixInput) Flag(indices ...int) {
	m.flagged = make(map[int]bool, len(indices))
	for _, i := range indices {
		m.flagged[i] = true
	}
}

// Update routes key input to the focused cell. Tab and shift+tab move
// between cells; everything else is left to the owner.
func (m MatrixInput) Update(msg tea.Msg) (MatrixInput, tea.Cmd) {
	if len(m.cells) == 0 {
		return m, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		switch key {
		case "tab", "right":
			if key == "tab" || m.cells[m.focus].Position() == len(m.cells[m.focus].Value()) {
				return m, m.Next()
			}
		case "shift+tab", "left":
			if key == "shift+tab" || m.cells[m.focus].Position() == 0 {
				return m, m.Prev()
			}
		case "up":
			return m, m.SetFocus(m.focus - m.Cols)
		case "down":
			return m, m.SetFocus(m.focus + m.Cols)
		default:
			if len(key) == 1 && !numericRune(key[0]) {
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.cells[m.focus], cmd = m.cells[m.focus].Update(msg)
	return m, cmd
}

// View renders the grid with each row on its own line.
func (m MatrixInput) View() string {
	rows := make([]string, 0, m.Rows)
	for r := 0; r < m.Rows; r++ {
		row := make([]string, 0, m.Cols)
		for c := 0; c < m.Cols; c++ {
			i := r*m.Cols + c
			style := theme.CellBlurred
			switch {
			case m.flagged[i]:
				style = theme.CellFlagged
			case m.cells[i].Focused():
				style = theme.CellFocused
			}
			row = append(row, style.Width(cellWidth+2).Render(m.cells[i].View()))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}
