package quiz

// FeedbackKind classifies the outcome of a submission.
type FeedbackKind int

const (
	FeedbackNone FeedbackKind = iota
	FeedbackInvalidInput
	FeedbackIncompleteInput
	FeedbackCorrect
	FeedbackIncorrect
)

func (k FeedbackKind) String() string {
	switch k {
	case FeedbackInvalidInput:
		return "invalid_input"
	case FeedbackIncompleteInput:
		return "incomplete_input"
	case FeedbackCorrect:
		return "correct"
	case FeedbackIncorrect:
		return "incorrect"
	default:
		return "none"
	}
}

// Feedback is the event emitted for a submission. The core never decides
// presentation text; renderers switch on Kind.
type Feedback struct {
	Kind FeedbackKind

	// Key is the literal answer key, set for Correct and Incorrect.
	Key string

	// Cells lists the offending matrix cells for input failures.
	Cells []Cell

	// Err is the *InputError behind an input failure.
	Err error
}

// Resolved reports whether the feedback ended the attempt.
func (f Feedback) Resolved() bool {
	return f.Kind == FeedbackCorrect || f.Kind == FeedbackIncorrect
}

// Counters is the running session score.
type Counters struct {
	Score      int
	Streak     int
	BestStreak int
	Answered   int
}

// record applies the scoring policy for one resolved attempt.
func (c *Counters) record(correct bool) {
	c.Answered++
	if !correct {
		c.Streak = 0
		return
	}
	c.Score++
	c.Streak++
	if c.Streak > c.BestStreak {
		c.BestStreak = c.Streak
	}
}
