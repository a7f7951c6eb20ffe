package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// AttemptState is the lifecycle stage of the current question.
type AttemptState int

const (
	StateIdle          AttemptState = iota // No active question
	StateAwaitingInput                     // Question shown, submissions accepted
	StateResolved                          // Answer checked, waiting for advance
)

func (s AttemptState) String() string {
	switch s {
	case StateAwaitingInput:
		return "awaiting_input"
	case StateResolved:
		return "resolved"
	default:
		return "idle"
	}
}

// Target names what a Request retrieves.
type Target int

const (
	TargetModes Target = iota
	TargetOptions
	TargetQuestion
)

func (t Target) String() string {
	switch t {
	case TargetOptions:
		return "options"
	case TargetQuestion:
		return "question"
	default:
		return "modes"
	}
}

// Request is a retrieval the engine wants performed. It carries the
// generation it was issued under so late responses can be recognized.
type Request struct {
	Target     Target
	Generation uint64
	ModeID     string
	Kind       ParamKind // options requests
	Parameter  Parameter // question requests
}

func (r Request) String() string {
	switch r.Target {
	case TargetOptions:
		return fmt.Sprintf("options(%s,%s)#%d", r.ModeID, r.Kind, r.Generation)
	case TargetQuestion:
		return fmt.Sprintf("question(%s/%s)#%d", r.ModeID, r.Parameter.Setting(), r.Generation)
	default:
		return fmt.Sprintf("modes#%d", r.Generation)
	}
}

// Response is the outcome of a Request, handed back through Apply.
type Response struct {
	Request  Request
	Modes    []Mode
	Options  []Option
	Question *Question
	Err      error
}

// Attempt records one resolved submission.
type Attempt struct {
	ModeID     string
	Setting    string
	Prompt     string
	Key        string
	Submission Submission
	Correct    bool
	Duration   time.Duration
}

// View is a read-only projection of the engine for renderers.
type View struct {
	State        AttemptState
	Modes        []Mode
	Mode         Mode
	HasMode      bool
	Required     ParamKind
	Options      []Option
	Parameter    Parameter
	HasParameter bool
	Ready        bool
	Loading      bool

	// Question fields are zero when no question is active.
	Prompt string
	Shape  Shape
	Rows   int
	Cols   int

	Counters Counters
	Elapsed  int
	Feedback Feedback
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used for transition traces.
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// Engine is the quiz session state machine. It is not safe for concurrent
// use: every method except Retrieve must run on the caller's event loop.
type Engine struct {
	src    Source
	logger *zap.Logger
	now    func() time.Time

	resolver Resolver

	state AttemptState

	// modeGen guards mode and option lists; questionGen guards questions.
	modeGen     uint64
	questionGen uint64
	pending     bool

	question  *Question
	setting   string
	startedAt time.Time
	counters  Counters
	feedback  Feedback
	last      *Attempt
}

// NewEngine creates an idle engine backed by src.
func NewEngine(src Source, opts ...EngineOption) *Engine {
	e := &Engine{
		src:    src,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LoadModes issues a request for the mode list.
func (e *Engine) LoadModes() Request {
	e.modeGen++
	return Request{Target: TargetModes, Generation: e.modeGen}
}

// Retrieve performs req against the source. It reads no mutable engine state
// and may run on any goroutine.
func (e *Engine) Retrieve(ctx context.Context, req Request) Response {
	resp := Response{Request: req}
	switch req.Target {
	case TargetModes:
		resp.Modes, resp.Err = e.src.Modes(ctx)
	case TargetOptions:
		if req.Kind == ParamDifficulty {
			resp.Options, resp.Err = e.src.DifficultyOptions(ctx, req.ModeID)
		} else {
			resp.Options, resp.Err = e.src.DigitOptions(ctx, req.ModeID)
		}
	case TargetQuestion:
		resp.Question, resp.Err = e.src.Question(ctx, req.ModeID, req.Parameter.Setting())
	}
	return resp
}

// Apply installs a retrieval result. It returns false without touching state
// when the response belongs to a superseded request. A failed retrieval
// leaves the engine where it was and returns an error matching
// ErrRetrievalFailure.
func (e *Engine) Apply(resp Response) (bool, error) {
	req := resp.Request
	if !e.current(req) {
		e.logger.Debug("dropped stale response", zap.Stringer("request", req))
		return false, nil
	}

	if req.Target == TargetQuestion {
		e.pending = false
	}
	if resp.Err != nil {
		e.logger.Warn("retrieval failed", zap.Stringer("request", req), zap.Error(resp.Err))
		return true, &RetrievalError{Op: req.Target.String(), Err: resp.Err}
	}

	switch req.Target {
	case TargetModes:
		if e.resolver.SetModes(resp.Modes) {
			e.logger.Info("selected mode no longer offered")
			e.reset()
		}
	case TargetOptions:
		e.resolver.SetOptions(resp.Options)
	case TargetQuestion:
		q := resp.Question
		if q == nil {
			return true, &RetrievalError{Op: req.Target.String(), Err: fmt.Errorf("empty question")}
		}
		if err := q.Validate(); err != nil {
			e.logger.Warn("malformed question", zap.Stringer("request", req), zap.Error(err))
			return true, &RetrievalError{Op: req.Target.String(), Err: err}
		}
		e.question = q
		e.setting = req.Parameter.Setting()
		e.startedAt = e.now()
		e.feedback = Feedback{}
		e.transition(StateAwaitingInput)
	}
	return true, nil
}

func (e *Engine) current(req Request) bool {
	switch req.Target {
	case TargetModes:
		return req.Generation == e.modeGen
	case TargetOptions:
		m, ok := e.resolver.Selected()
		return ok && m.ID == req.ModeID && req.Generation == e.modeGen
	case TargetQuestion:
		return e.pending && req.Generation == e.questionGen
	}
	return false
}

// SelectMode activates a mode. The returned request fetches its parameter
// options, or a first question when the mode takes no parameter.
func (e *Engine) SelectMode(id string) (Request, bool, error) {
	m, err := e.resolver.SelectMode(id)
	if err != nil {
		return Request{}, false, err
	}
	e.modeGen++
	e.reset()
	e.logger.Debug("mode selected", zap.String("mode", m.ID), zap.Stringer("requires", m.ParamKind()))

	if kind := m.ParamKind(); kind != ParamNone {
		return Request{Target: TargetOptions, Generation: e.modeGen, ModeID: m.ID, Kind: kind}, true, nil
	}
	req, ok := e.RequestQuestion()
	return req, ok, nil
}

// SelectParameter chooses the parameter for the active mode and requests a
// question for it.
func (e *Engine) SelectParameter(p Parameter) (Request, bool, error) {
	if err := e.resolver.SelectParameter(p); err != nil {
		return Request{}, false, err
	}
	e.reset()
	e.logger.Debug("parameter selected", zap.Stringer("kind", p.Kind), zap.String("value", p.Value))
	req, ok := e.RequestQuestion()
	return req, ok, nil
}

// reset discards the active question and any in-flight question request.
func (e *Engine) reset() {
	e.questionGen++
	e.pending = false
	e.question = nil
	e.setting = ""
	e.feedback = Feedback{}
	e.transition(StateIdle)
}

// RequestQuestion issues a request for a new question. It is a no-op while
// a question awaits input or while the configuration is incomplete.
func (e *Engine) RequestQuestion() (Request, bool) {
	if e.state == StateAwaitingInput || !e.resolver.Ready() {
		return Request{}, false
	}
	m, _ := e.resolver.Selected()
	p, _ := e.resolver.Parameter()

	e.questionGen++
	e.pending = true
	req := Request{Target: TargetQuestion, Generation: e.questionGen, ModeID: m.ID, Parameter: p}
	e.logger.Debug("question requested", zap.Stringer("request", req))
	return req, true
}

// Advance moves from a resolved question to the next one.
func (e *Engine) Advance() (Request, bool) {
	if e.state != StateResolved {
		return Request{}, false
	}
	return e.RequestQuestion()
}

// Submit checks an answer for the active question. It returns false when no
// question is awaiting input. Input failures produce feedback but leave the
// state and counters untouched.
func (e *Engine) Submit(sub Submission) (Feedback, bool) {
	if e.state != StateAwaitingInput {
		return Feedback{}, false
	}

	correct, err := CheckAnswer(sub, e.question)
	if err != nil {
		fb := Feedback{Kind: FeedbackInvalidInput, Err: err}
		var ie *InputError
		if errors.As(err, &ie) {
			fb.Cells = ie.Cells
			if ie.Kind == ErrIncompleteInput {
				fb.Kind = FeedbackIncompleteInput
			}
		}
		e.feedback = fb
		return fb, true
	}

	e.counters.record(correct)
	fb := Feedback{Kind: FeedbackIncorrect, Key: e.question.Key.String()}
	if correct {
		fb.Kind = FeedbackCorrect
	}
	e.feedback = fb

	m, _ := e.resolver.Selected()
	e.last = &Attempt{
		ModeID:     m.ID,
		Setting:    e.setting,
		Prompt:     e.question.Prompt,
		Key:        fb.Key,
		Submission: sub,
		Correct:    correct,
		Duration:   e.now().Sub(e.startedAt),
	}
	e.transition(StateResolved)
	return fb, true
}

func (e *Engine) transition(to AttemptState) {
	if e.state == to {
		return
	}
	e.logger.Debug("state transition", zap.Stringer("from", e.state), zap.Stringer("to", to))
	e.state = to
}

// State returns the current attempt state.
func (e *Engine) State() AttemptState { return e.state }

// Ready reports whether a question may be requested.
func (e *Engine) Ready() bool { return e.resolver.Ready() }

// Loading reports whether a question request is outstanding.
func (e *Engine) Loading() bool { return e.pending }

// Counters returns the running score.
func (e *Engine) Counters() Counters { return e.counters }

// Modes returns the loaded modes.
func (e *Engine) Modes() []Mode { return e.resolver.Modes() }

// LastAttempt returns the most recently resolved attempt.
func (e *Engine) LastAttempt() (Attempt, bool) {
	if e.last == nil {
		return Attempt{}, false
	}
	return *e.last, true
}

// Elapsed returns whole seconds since the active question was delivered.
// The clock keeps running after the answer is checked until the next
// question arrives.
func (e *Engine) Elapsed() int {
	if e.question == nil {
		return 0
	}
	d := e.now().Sub(e.startedAt)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

// View returns a snapshot for rendering.
func (e *Engine) View() View {
	v := View{
		State:    e.state,
		Modes:    e.resolver.Modes(),
		Required: e.resolver.Required(),
		Options:  e.resolver.Options(),
		Ready:    e.resolver.Ready(),
		Loading:  e.pending,
		Counters: e.counters,
		Elapsed:  e.Elapsed(),
		Feedback: e.feedback,
	}
	v.Mode, v.HasMode = e.resolver.Selected()
	v.Parameter, v.HasParameter = e.resolver.Parameter()
	if q := e.question; q != nil {
		v.Prompt = q.Prompt
		v.Shape = q.Shape
		v.Rows = q.Rows
		v.Cols = q.Cols
	}
	return v
}
