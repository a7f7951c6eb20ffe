package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// recentLimit bounds how many attempts the screen lists.
const recentLimit = 50

type historyLoadedMsg struct {
	Attempts []store.AttemptRecord
	Stats    []store.ModeStats
	Err      error
}

// HistoryScreen displays per-mode accuracy and recent attempts.
type HistoryScreen struct {
	repo     store.AttemptRepo
	attempts []store.AttemptRecord
	stats    []store.ModeStats
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.AttemptRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		stats, err := s.repo.Stats(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		attempts, err := s.repo.Recent(ctx, recentLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Attempts: attempts, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempts yet. Answer a question first!")
	}

	inner := min(width-4, 76)
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(inner).Render(str))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(theme.Title.Render("Accuracy by mode")))
	b.WriteString("\n")
	for _, st := range s.stats {
		label := fmt.Sprintf("%-18s %4d", truncate(st.ModeID, 18), st.Attempts)
		bar := components.AccuracyBar{Label: label, Correct: st.Correct, Attempts: st.Attempts, Width: inner - 9}
		avg := lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %5.1fs", st.AvgElapsed.Seconds()))
		b.WriteString(center(bar.View() + avg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(theme.Title.Render("Recent attempts")))
	b.WriteString("\n")

	// Keep the selected row on screen.
	rows := max(height-len(s.stats)-6, 3)
	start := 0
	if s.selected >= rows {
		start = s.selected - rows + 1
	}

	for i := start; i < len(s.attempts) && i < start+rows; i++ {
		a := s.attempts[i]
		mark := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		if !a.Correct {
			mark = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-18s %-6s %s",
			prefix,
			a.Timestamp.Local().Format("Jan 02 15:04"),
			truncate(a.ModeID, 18),
			a.Setting,
			formatElapsed(a.ElapsedMs),
		)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(center(style.Render(line) + "  " + mark))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := lipgloss.NewStyle().Foreground(theme.TextDim).PaddingLeft(4)
			b.WriteString(center(detail.Render(strings.TrimRight(a.Prompt, "\n"))))
			b.WriteString("\n")
			b.WriteString(center(detail.Render(fmt.Sprintf("answered %s, key %s", a.Submission, a.AnswerKey))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func formatElapsed(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).Round(100 * time.Millisecond).String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
