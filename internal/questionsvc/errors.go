package questionsvc

import (
	"encoding/json"
	"fmt"
)

// ErrStatus indicates the service answered with a non-2xx status.
// Message carries the service's {"error": ...} text when present.
type ErrStatus struct {
	Path    string
	Code    int
	Message string
}

func (e *ErrStatus) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("GET %s: status %d: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("GET %s: status %d", e.Path, e.Code)
}

// ErrInvalidPayload indicates the service returned a body that does not
// match the expected shape.
type ErrInvalidPayload struct {
	Path    string
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidPayload) Error() string {
	return fmt.Sprintf("GET %s: invalid payload: %v", e.Path, e.Err)
}

func (e *ErrInvalidPayload) Unwrap() error { return e.Err }

// ErrUnavailable indicates the service could not be reached.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("question service unavailable: %v", e.Err)
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }
