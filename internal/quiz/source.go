package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Source is the question service as seen by the engine. Implementations
// must be safe for concurrent use; the engine calls them off the event loop.
type Source interface {
	// Modes lists the available practice modes.
	Modes(ctx context.Context) ([]Mode, error)

	// DigitOptions lists the digit counts offered for a mode.
	DigitOptions(ctx context.Context, modeID string) ([]Option, error)

	// DifficultyOptions lists the difficulties offered for a mode, in
	// easy, medium, hard order.
	DifficultyOptions(ctx context.Context, modeID string) ([]Option, error)

	// Question fetches a fresh question for a mode and setting. The setting
	// is the parameter value or NoParameterSetting.
	Question(ctx context.Context, modeID, setting string) (*Question, error)
}

// MockQuestion is a canned response for MockSource.
type MockQuestion struct {
	Question *Question
	Err      error
}

// MockSource is a deterministic Source for tests. Questions are served in
// FIFO order and every question call is recorded.
type MockSource struct {
	mu         sync.Mutex
	modes      []Mode
	digits     map[string][]Option
	difficulty map[string][]Option
	questions  []MockQuestion
	Calls      []string // "mode/setting" per Question call
}

// NewMockSource creates a MockSource offering the given modes.
func NewMockSource(modes ...Mode) *MockSource {
	return &MockSource{
		modes:      modes,
		digits:     make(map[string][]Option),
		difficulty: make(map[string][]Option),
	}
}

// SetModes replaces the modes returned by later Modes calls.
func (m *MockSource) SetModes(modes ...Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modes = modes
}

// SetDigits sets the digit options returned for modeID.
func (m *MockSource) SetDigits(modeID string, opts ...Option) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.digits[modeID] = opts
}

// SetDifficulties sets the difficulty options returned for modeID.
func (m *MockSource) SetDifficulties(modeID string, opts ...Option) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.difficulty[modeID] = opts
}

// AddQuestion appends a canned question response to the queue.
func (m *MockSource) AddQuestion(resp MockQuestion) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions = append(m.questions, resp)
}

func (m *MockSource) Modes(context.Context) ([]Mode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Mode, len(m.modes))
	copy(out, m.modes)
	return out, nil
}

func (m *MockSource) DigitOptions(_ context.Context, modeID string) ([]Option, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	opts, ok := m.digits[modeID]
	if !ok {
		return nil, fmt.Errorf("mode %q has no digit options", modeID)
	}
	return opts, nil
}

func (m *MockSource) DifficultyOptions(_ context.Context, modeID string) ([]Option, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	opts, ok := m.difficulty[modeID]
	if !ok {
		return nil, fmt.Errorf("mode %q has no difficulty options", modeID)
	}
	return opts, nil
}

// Question returns the next canned question, or an error once the queue is
// empty.
func (m *MockSource) Question(_ context.Context, modeID, setting string) (*Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, modeID+"/"+setting)
	if len(m.questions) == 0 {
		return nil, errors.New("no canned questions left")
	}
	resp := m.questions[0]
	m.questions = m.questions[1:]
	if resp.Err != nil {
		return nil, resp.Err
	}
	q := *resp.Question
	return &q, nil
}

// CallCount returns the number of Question calls made.
func (m *MockSource) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
