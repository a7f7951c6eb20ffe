package quiz

import (
	"time"

	qz "github.com/abhisek/mathdrill/internal/quiz"
)

// responseMsg carries a finished retrieval back to the event loop.
type responseMsg struct {
	Resp qz.Response
}

// modeChosenMsg is sent when a mode is picked from the menu.
type modeChosenMsg struct {
	ID string
}

// paramChosenMsg is sent when a digit count or difficulty is picked.
type paramChosenMsg struct {
	Param qz.Parameter
}

// advanceMsg asks for the next question after a resolved one.
type advanceMsg struct{}

// timerTickMsg is sent every second to refresh the question timer.
type timerTickMsg time.Time

// journalSavedMsg reports the outcome of persisting an attempt.
type journalSavedMsg struct {
	Err error
}
