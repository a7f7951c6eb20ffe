package history

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/store"
)

type fakeRepo struct {
	attempts []store.AttemptRecord
	stats    []store.ModeStats
	err      error
}

func (f *fakeRepo) Append(context.Context, store.AttemptRecord) error { return nil }

func (f *fakeRepo) Recent(_ context.Context, limit int) ([]store.AttemptRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && len(f.attempts) > limit {
		return f.attempts[:limit], nil
	}
	return f.attempts, nil
}

func (f *fakeRepo) Stats(context.Context) ([]store.ModeStats, error) {
	return f.stats, f.err
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	msg := s.Init()()
	_, cmd := s.Update(msg)
	require.Nil(t, cmd)
}

func TestHistory_RendersStatsAndAttempts(t *testing.T) {
	repo := &fakeRepo{
		attempts: []store.AttemptRecord{
			{ID: 2, Timestamp: time.Now(), ModeID: "matrix_addition", Setting: "easy", Prompt: "Add matrices", Submission: `["1","2"]`, AnswerKey: "[[1,2]]", Correct: true, ElapsedMs: 4200},
			{ID: 1, Timestamp: time.Now(), ModeID: "scalar_addition", Setting: "2", Prompt: "12 + 30", Submission: "41", AnswerKey: "42", ElapsedMs: 1500},
		},
		stats: []store.ModeStats{
			{ModeID: "matrix_addition", Attempts: 1, Correct: 1, AvgElapsed: 4200 * time.Millisecond},
			{ModeID: "scalar_addition", Attempts: 1, Correct: 0, AvgElapsed: 1500 * time.Millisecond},
		},
	}
	s := New(repo)
	load(t, s)

	out := s.View(100, 40)
	assert.Contains(t, out, "Accuracy by mode")
	assert.Contains(t, out, "matrix_addition")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "scalar_addition")
	assert.NotContains(t, out, "12 + 30")

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	out = s.View(100, 40)
	assert.Contains(t, out, "12 + 30")
	assert.Contains(t, out, "key 42")
}

func TestHistory_Empty(t *testing.T) {
	s := New(&fakeRepo{})
	load(t, s)
	assert.Contains(t, s.View(80, 24), "No attempts yet")
}

func TestHistory_Error(t *testing.T) {
	s := New(&fakeRepo{err: errors.New("disk gone")})
	load(t, s)
	assert.Contains(t, s.View(80, 24), "disk gone")
}

func TestHistory_EscPops(t *testing.T) {
	s := New(&fakeRepo{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestHistory_SelectionBounded(t *testing.T) {
	s := New(&fakeRepo{attempts: []store.AttemptRecord{{ModeID: "a"}, {ModeID: "b"}}})
	load(t, s)

	for range 5 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	assert.Equal(t, 1, s.selected)

	for range 5 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	}
	assert.Equal(t, 0, s.selected)
}
