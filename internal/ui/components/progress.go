package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// AccuracyBar renders correct/attempted as a filled bar followed by the
// raw tally and a rounded percentage.
type AccuracyBar struct {
	Label    string
	Correct  int
	Attempts int
	Width    int
}

// Fraction is Correct/Attempts clamped to [0, 1]; zero attempts is 0.
func (a AccuracyBar) Fraction() float64 {
	if a.Attempts <= 0 {
		return 0
	}
	return min(max(float64(a.Correct)/float64(a.Attempts), 0), 1)
}

func (a AccuracyBar) View() string {
	var label string
	if a.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(a.Label) + "  "
	}
	tally := fmt.Sprintf("  %d/%d %3.0f%%", a.Correct, a.Attempts, a.Fraction()*100)

	barWidth := max(a.Width-lipgloss.Width(label)-len(tally), 4)
	filled := int(float64(barWidth)*a.Fraction() + 0.5)

	fill := theme.Success
	if a.Fraction() < 0.5 {
		fill = theme.Accent
	}
	bar := lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	return label + bar + lipgloss.NewStyle().Foreground(theme.TextDim).Render(tally)
}
