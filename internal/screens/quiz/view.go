package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/mathdrill/internal/quiz"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// feedbackText renders a feedback event for display.
func feedbackText(fb qz.Feedback, shape qz.Shape) string {
	switch fb.Kind {
	case qz.FeedbackCorrect:
		return "Correct!"
	case qz.FeedbackIncorrect:
		return "Incorrect. The answer was " + fb.Key
	case qz.FeedbackIncompleteInput:
		return "Please fill in all matrix elements"
	case qz.FeedbackInvalidInput:
		if shape == qz.ShapeMatrix {
			return "Please enter valid numbers"
		}
		return "Please enter a valid number"
	}
	return ""
}

func paramHeading(kind qz.ParamKind) string {
	if kind == qz.ParamDifficulty {
		return "Difficulty"
	}
	return "Digits"
}

func (s *QuizScreen) View(width, height int) string {
	v := s.engine.View()

	menus := s.renderMenus(v)
	body := s.renderQuestion(v, width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, menus))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, body))
	return b.String()
}

func (s *QuizScreen) renderMenus(v qz.View) string {
	modeCard := theme.Card
	if s.focus == focusModes {
		modeCard = theme.FocusedCard
	}
	modes := theme.Title.Render("Modes") + "\n"
	if len(s.modeMenu.Items) == 0 {
		modes += theme.Hint.Render("  loading…")
	} else {
		modes += strings.TrimRight(s.modeMenu.View(), "\n")
	}
	cards := []string{modeCard.Render(modes)}

	if v.HasMode && v.Required != qz.ParamNone {
		paramCard := theme.Card
		if s.focus == focusParams {
			paramCard = theme.FocusedCard
		}
		params := theme.Title.Render(paramHeading(v.Required)) + "\n"
		if len(s.paramMenu.Items) == 0 {
			params += theme.Hint.Render("  loading…")
		} else {
			params += strings.TrimRight(s.paramMenu.View(), "\n")
		}
		cards = append(cards, "  ", paramCard.Render(params))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (s *QuizScreen) renderQuestion(v qz.View, width int) string {
	cardWidth := min(width-4, 72)
	card := theme.Card
	if s.focus == focusAnswer {
		card = theme.FocusedCard
	}
	card = card.Width(cardWidth).Padding(1, 2)

	var b strings.Builder
	switch {
	case v.State != qz.StateIdle:
		b.WriteString(theme.Prompt.Render(strings.TrimRight(v.Prompt, "\n")))
		b.WriteString("\n\n")
		if v.Shape == qz.ShapeMatrix {
			b.WriteString(s.matrix.View())
		} else {
			b.WriteString(s.input.View())
		}
		b.WriteString("\n")
		if line := feedbackText(v.Feedback, v.Shape); line != "" {
			style := theme.Warning
			switch v.Feedback.Kind {
			case qz.FeedbackCorrect:
				style = theme.Correct
			case qz.FeedbackIncorrect:
				style = theme.Incorrect
			}
			b.WriteString("\n" + style.Render(line) + "\n")
		}
		if v.State == qz.StateResolved {
			next := s.next
			next.Busy = v.Loading
			b.WriteString("\n" + next.View())
		}
	case v.Loading:
		b.WriteString(theme.Hint.Render("Fetching question…"))
	case !v.HasMode:
		b.WriteString(theme.Hint.Render("Pick a mode to begin."))
	case !v.Ready:
		b.WriteString(theme.Hint.Render("Choose " + strings.ToLower(paramHeading(v.Required)) + " to get a question."))
	}

	if s.errMsg != "" {
		b.WriteString("\n" + theme.Incorrect.Render(s.errMsg) + "\n")
		b.WriteString(theme.Hint.Render("Press r to retry."))
	}
	if s.journalErr != "" {
		b.WriteString("\n" + theme.Warning.Render(s.journalErr))
	}
	if v.Counters.Answered > 0 {
		b.WriteString("\n\n" + theme.Hint.Render(summaryLine(v.Counters)))
	}

	return card.Render(b.String())
}

func summaryLine(c qz.Counters) string {
	return fmt.Sprintf("Answered %d   Best streak %d", c.Answered, c.BestStreak)
}
