// Package quiz is the interactive drill screen. It owns a quiz engine,
// performs the engine's retrievals as commands and journals every resolved
// attempt.
package quiz

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	qz "github.com/abhisek/mathdrill/internal/quiz"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/screens/history"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/layout"
)

// focusArea is the part of the screen receiving keys.
type focusArea int

const (
	focusModes focusArea = iota
	focusParams
	focusAnswer
)

// QuizScreen implements screen.Screen for a drill session.
type QuizScreen struct {
	ctx       context.Context
	engine    *qz.Engine
	journal   store.AttemptRepo
	logger    *zap.Logger
	sessionID string

	focus     focusArea
	modeMenu  components.Menu
	paramMenu components.Menu
	input     components.TextInput
	matrix    components.MatrixInput
	next      components.Button

	// failed is the retrieval to repeat on retry; errMsg is non-empty
	// while a failure is shown.
	failed     qz.Target
	errMsg     string
	journalErr string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// Option configures a QuizScreen.
type Option func(*QuizScreen)

// WithJournal records resolved attempts to repo and enables the history view.
func WithJournal(repo store.AttemptRepo) Option {
	return func(s *QuizScreen) { s.journal = repo }
}

// WithLogger sets the screen logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *QuizScreen) { s.logger = l }
}

// WithContext sets the context retrievals and journal writes run under.
func WithContext(ctx context.Context) Option {
	return func(s *QuizScreen) { s.ctx = ctx }
}

// New creates a QuizScreen driving engine.
func New(engine *qz.Engine, opts ...Option) *QuizScreen {
	s := &QuizScreen{
		ctx:       context.Background(),
		engine:    engine,
		logger:    zap.NewNop(),
		sessionID: uuid.New().String(),
		modeMenu:  components.NewMenu(nil),
		paramMenu: components.NewMenu(nil),
		input:     components.NewTextInput("Your answer", true, 16),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.paramMenu.Focused = false
	s.input.Blur()
	s.next = components.NewButton("Next question", "enter", func() tea.Cmd {
		return func() tea.Msg { return advanceMsg{} }
	})
	return s
}

// SessionID identifies this run in the journal.
func (s *QuizScreen) SessionID() string { return s.sessionID }

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(
		s.fetch(s.engine.LoadModes()),
		tickCmd(),
	)
}

func (s *QuizScreen) Title() string {
	if m := s.engine.View(); m.HasMode {
		return m.Mode.Name
	}
	return "Choose a mode"
}

func (s *QuizScreen) Status() layout.Status {
	v := s.engine.View()
	st := layout.Status{
		Score:  v.Counters.Score,
		Streak: v.Counters.Streak,
		Timer:  -1,
	}
	if v.State != qz.StateIdle {
		st.Timer = v.Elapsed
	}
	return st
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	v := s.engine.View()
	if s.errMsg != "" {
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	if s.focus == focusAnswer {
		switch v.State {
		case qz.StateResolved:
			return []layout.KeyHint{
				{Key: "any key", Description: "Next question"},
				{Key: "Esc", Description: "Modes"},
			}
		case qz.StateAwaitingInput:
			hints := []layout.KeyHint{{Key: "Enter", Description: "Submit"}}
			if v.Shape == qz.ShapeMatrix {
				hints = []layout.KeyHint{
					{Key: "Enter", Description: "Next cell / Submit"},
					{Key: "Tab", Description: "Move"},
				}
			}
			return append(hints, layout.KeyHint{Key: "Esc", Description: "Modes"})
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if v.Required != qz.ParamNone {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Switch list"})
	}
	if s.journal != nil {
		hints = append(hints, layout.KeyHint{Key: "H", Description: "History"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case responseMsg:
		return s.handleResponse(msg.Resp)

	case modeChosenMsg:
		return s.handleModeChosen(msg.ID)

	case paramChosenMsg:
		return s.handleParamChosen(msg.Param)

	case advanceMsg:
		return s.advance()

	case journalSavedMsg:
		if msg.Err != nil {
			s.logger.Warn("journal write failed", zap.Error(msg.Err))
			s.journalErr = "Attempt not saved to history"
		}
		return s, nil

	case timerTickMsg:
		return s, tickCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.focus == focusAnswer {
		return s.forwardToInput(msg)
	}
	return s, nil
}

// fetch runs req off the event loop and reports back with a responseMsg.
func (s *QuizScreen) fetch(req qz.Request) tea.Cmd {
	ctx, e := s.ctx, s.engine
	return func() tea.Msg {
		return responseMsg{Resp: e.Retrieve(ctx, req)}
	}
}

func (s *QuizScreen) handleResponse(resp qz.Response) (screen.Screen, tea.Cmd) {
	applied, err := s.engine.Apply(resp)
	if !applied {
		return s, nil
	}
	if err != nil {
		s.failed = resp.Request.Target
		s.errMsg = failureText(resp.Request.Target, err)
		return s, nil
	}
	s.errMsg = ""

	v := s.engine.View()
	switch resp.Request.Target {
	case qz.TargetModes:
		items := make([]components.MenuItem, 0, len(v.Modes))
		for _, m := range v.Modes {
			id := m.ID
			items = append(items, components.MenuItem{
				Label:  m.Name,
				Action: func() tea.Cmd { return func() tea.Msg { return modeChosenMsg{ID: id} } },
			})
		}
		s.modeMenu.SetItems(items)
		if !v.HasMode {
			s.paramMenu.SetItems(nil)
			s.setFocus(focusModes)
		}

	case qz.TargetOptions:
		items := make([]components.MenuItem, 0, len(v.Options))
		for _, o := range v.Options {
			p := qz.Parameter{Kind: v.Required, Value: o.Value}
			items = append(items, components.MenuItem{
				Label:  o.Label,
				Action: func() tea.Cmd { return func() tea.Msg { return paramChosenMsg{Param: p} } },
			})
		}
		s.paramMenu.SetItems(items)
		s.setFocus(focusParams)

	case qz.TargetQuestion:
		s.journalErr = ""
		s.next.Active = false
		if v.Shape == qz.ShapeMatrix {
			s.matrix = components.NewMatrixInput(v.Rows, v.Cols)
		} else {
			s.input.Reset()
		}
		return s, s.setFocus(focusAnswer)
	}
	return s, nil
}

func failureText(target qz.Target, err error) string {
	what := "the question"
	switch target {
	case qz.TargetModes:
		what = "the list of modes"
	case qz.TargetOptions:
		what = "the options for this mode"
	}
	var re *qz.RetrievalError
	if errors.As(err, &re) && re.Err != nil {
		return "Could not load " + what + ": " + re.Err.Error()
	}
	return "Could not load " + what
}

func (s *QuizScreen) handleModeChosen(id string) (screen.Screen, tea.Cmd) {
	req, ok, err := s.engine.SelectMode(id)
	if err != nil {
		s.logger.Warn("mode selection rejected", zap.String("mode", id), zap.Error(err))
		return s, nil
	}
	s.errMsg = ""
	s.paramMenu.SetItems(nil)
	s.next.Active = false
	if !ok {
		return s, nil
	}
	return s, s.fetch(req)
}

func (s *QuizScreen) handleParamChosen(p qz.Parameter) (screen.Screen, tea.Cmd) {
	req, ok, err := s.engine.SelectParameter(p)
	if err != nil {
		s.logger.Warn("parameter rejected", zap.Stringer("kind", p.Kind), zap.String("value", p.Value), zap.Error(err))
		return s, nil
	}
	s.errMsg = ""
	s.next.Active = false
	if !ok {
		return s, nil
	}
	return s, s.fetch(req)
}

func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	req, ok := s.engine.Advance()
	if !ok {
		return s, nil
	}
	s.next.Active = false
	return s, s.fetch(req)
}

// retry repeats the retrieval that failed last.
func (s *QuizScreen) retry() (screen.Screen, tea.Cmd) {
	switch s.failed {
	case qz.TargetModes:
		return s, s.fetch(s.engine.LoadModes())
	case qz.TargetOptions:
		if v := s.engine.View(); v.HasMode {
			return s.handleModeChosen(v.Mode.ID)
		}
	case qz.TargetQuestion:
		if req, ok := s.engine.RequestQuestion(); ok {
			return s, s.fetch(req)
		}
	}
	return s, nil
}

func (s *QuizScreen) setFocus(f focusArea) tea.Cmd {
	s.focus = f
	s.modeMenu.Focused = f == focusModes
	s.paramMenu.Focused = f == focusParams
	s.input.Blur()
	s.matrix.Blur()

	if f != focusAnswer || s.engine.State() != qz.StateAwaitingInput {
		return nil
	}
	if s.engine.View().Shape == qz.ShapeMatrix {
		return s.matrix.SetFocus(s.matrix.Focused())
	}
	return s.input.Focus()
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	state := s.engine.State()

	if s.errMsg != "" && (key == "r" || key == "R") && state != qz.StateAwaitingInput {
		return s.retry()
	}

	if s.focus == focusAnswer {
		switch {
		case key == "esc":
			return s, s.setFocus(focusModes)
		case state == qz.StateResolved:
			if _, cmd := s.next.Update(msg); cmd != nil {
				return s, cmd
			}
			return s.advance()
		case state == qz.StateAwaitingInput && key == "enter":
			if s.engine.View().Shape == qz.ShapeMatrix && !s.matrix.AtLast() {
				return s, s.matrix.Next()
			}
			return s.submit()
		}
		return s.forwardToInput(msg)
	}

	v := s.engine.View()
	switch key {
	case "tab", "shift+tab", "left", "right":
		switch {
		case s.focus == focusModes && v.Required != qz.ParamNone && len(s.paramMenu.Items) > 0:
			return s, s.setFocus(focusParams)
		case s.focus == focusParams:
			return s, s.setFocus(focusModes)
		}
		return s, nil
	case "esc":
		if state != qz.StateIdle {
			return s, s.setFocus(focusAnswer)
		}
		return s, nil
	case "h", "H":
		if s.journal != nil {
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(s.journal)}
			}
		}
		return s, nil
	}

	var cmd tea.Cmd
	if s.focus == focusParams {
		s.paramMenu, cmd = s.paramMenu.Update(msg)
	} else {
		s.modeMenu, cmd = s.modeMenu.Update(msg)
	}
	return s, cmd
}

func (s *QuizScreen) forwardToInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.engine.State() != qz.StateAwaitingInput {
		return s, nil
	}
	var cmd tea.Cmd
	if s.engine.View().Shape == qz.ShapeMatrix {
		s.matrix, cmd = s.matrix.Update(msg)
	} else {
		s.input, cmd = s.input.Update(msg)
	}
	return s, cmd
}

// submit hands the current input to the engine. Input failures stay on the
// question; a resolved attempt is journaled.
func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	var sub qz.Submission
	isMatrix := s.engine.View().Shape == qz.ShapeMatrix
	if isMatrix {
		sub = qz.MatrixAnswer(s.matrix.Values()...)
	} else {
		sub = qz.ScalarAnswer(s.input.Value())
	}

	fb, ok := s.engine.Submit(sub)
	if !ok {
		return s, nil
	}

	if !fb.Resolved() {
		if isMatrix {
			flagged := make([]int, 0, len(fb.Cells))
			for _, c := range fb.Cells {
				flagged = append(flagged, c.Row*s.matrix.Cols+c.Col)
			}
			s.matrix.Flag(flagged...)
			if len(flagged) > 0 {
				return s, s.matrix.SetFocus(flagged[0])
			}
		}
		return s, nil
	}

	correct := fb.Kind == qz.FeedbackCorrect
	s.input.Submit(correct)
	s.matrix.Flag()
	s.input.Blur()
	s.matrix.Blur()
	s.next.Active = true
	return s, s.record()
}

// record journals the last resolved attempt.
func (s *QuizScreen) record() tea.Cmd {
	if s.journal == nil {
		return nil
	}
	att, ok := s.engine.LastAttempt()
	if !ok {
		return nil
	}
	rec := store.AttemptRecord{
		SessionID:  s.sessionID,
		ModeID:     att.ModeID,
		Setting:    att.Setting,
		Prompt:     att.Prompt,
		AnswerKey:  att.Key,
		Submission: att.Submission.String(),
		Correct:    att.Correct,
		ElapsedMs:  att.Duration.Milliseconds(),
	}
	ctx, repo := s.ctx, s.journal
	return func() tea.Msg {
		return journalSavedMsg{Err: repo.Append(ctx, rec)}
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
