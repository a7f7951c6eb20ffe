package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMode is returned when selecting a mode that was never loaded.
	ErrUnknownMode = errors.New("unknown mode")

	// ErrParameterNotApplicable is returned when a parameter does not fit
	// the selected mode.
	ErrParameterNotApplicable = errors.New("parameter not applicable")

	// ErrInvalidInput marks a submission with a non-integer value.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIncompleteInput marks a matrix submission with missing cells.
	ErrIncompleteInput = errors.New("incomplete input")

	// ErrRetrievalFailure marks a question service call that failed or
	// returned malformed data.
	ErrRetrievalFailure = errors.New("retrieval failure")
)

// Cell addresses one entry of a matrix answer.
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("[%d,%d]", c.Row, c.Col)
}

// InputError describes why a submission was rejected before checking.
// Kind is ErrInvalidInput or ErrIncompleteInput.
type InputError struct {
	Kind  error
	Cells []Cell // offending cells; empty for scalar questions
}

func (e *InputError) Error() string {
	if len(e.Cells) == 0 {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v at %v", e.Kind, e.Cells)
}

func (e *InputError) Unwrap() error { return e.Kind }

// RetrievalError wraps a failed call to the question source.
type RetrievalError struct {
	Op  string // "modes", "options" or "question"
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve %s: %v", e.Op, e.Err)
}

// Is reports ErrRetrievalFailure so callers need not know the concrete type.
func (e *RetrievalError) Is(target error) bool { return target == ErrRetrievalFailure }

func (e *RetrievalError) Unwrap() error { return e.Err }
