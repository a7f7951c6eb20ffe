package quiz

import "fmt"

// Resolver tracks the selected mode and its parameter and decides whether a
// question may be requested.
type Resolver struct {
	modes    []Mode
	byID     map[string]Mode
	selected *Mode

	options       []Option
	optionsLoaded bool
	param         *Parameter
}

// SetModes replaces the loaded modes. The selection is refreshed from the
// new list; it is cleared when its mode vanished or now takes a different
// parameter kind. SetModes reports whether it cleared the selection.
func (r *Resolver) SetModes(modes []Mode) bool {
	sorted := make([]Mode, len(modes))
	copy(sorted, modes)
	SortModes(sorted)

	r.modes = sorted
	r.byID = make(map[string]Mode, len(sorted))
	for _, m := range sorted {
		r.byID[m.ID] = m
	}

	if r.selected == nil {
		return false
	}
	m, ok := r.byID[r.selected.ID]
	if !ok || m.ParamKind() != r.selected.ParamKind() {
		r.clear()
		return true
	}
	r.selected = &m
	return false
}

// Modes returns the loaded modes ordered by ID.
func (r *Resolver) Modes() []Mode {
	out := make([]Mode, len(r.modes))
	copy(out, r.modes)
	return out
}

// SelectMode makes id the active mode and forgets any parameter state.
func (r *Resolver) SelectMode(id string) (Mode, error) {
	m, ok := r.byID[id]
	if !ok {
		return Mode{}, fmt.Errorf("%w: %q", ErrUnknownMode, id)
	}
	r.clear()
	r.selected = &m
	return m, nil
}

func (r *Resolver) clear() {
	r.selected = nil
	r.options = nil
	r.optionsLoaded = false
	r.param = nil
}

// Selected returns the active mode.
func (r *Resolver) Selected() (Mode, bool) {
	if r.selected == nil {
		return Mode{}, false
	}
	return *r.selected, true
}

// Required returns the parameter kind the active mode needs.
func (r *Resolver) Required() ParamKind {
	if r.selected == nil {
		return ParamNone
	}
	return r.selected.ParamKind()
}

// SetOptions records the parameter values offered for the active mode.
// Difficulties are kept in easy, medium, hard order and digit counts in
// numeric order, whatever order opts arrive in.
func (r *Resolver) SetOptions(opts []Option) {
	labels := make(map[string]string, len(opts))
	for _, o := range opts {
		labels[o.Value] = o.Label
	}
	switch r.Required() {
	case ParamDifficulty:
		opts = OrderDifficulties(labels)
	case ParamDigits:
		opts = OrderDigits(labels)
	}
	r.options = opts
	r.optionsLoaded = true
}

// Options returns the offered parameter values, nil until loaded.
func (r *Resolver) Options() []Option {
	return r.options
}

// SelectParameter chooses the parameter for the active mode.
func (r *Resolver) SelectParameter(p Parameter) error {
	if r.selected == nil {
		return fmt.Errorf("%w: no mode selected", ErrParameterNotApplicable)
	}
	want := r.selected.ParamKind()
	if want == ParamNone {
		return fmt.Errorf("%w: mode %q takes no parameter", ErrParameterNotApplicable, r.selected.ID)
	}
	if p.Kind != want {
		return fmt.Errorf("%w: mode %q takes %s, got %s", ErrParameterNotApplicable, r.selected.ID, want, p.Kind)
	}
	if err := p.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrParameterNotApplicable, err)
	}
	if r.optionsLoaded && !r.offered(p.Value) {
		return fmt.Errorf("%w: %s %q is not offered by mode %q", ErrParameterNotApplicable, p.Kind, p.Value, r.selected.ID)
	}
	r.param = &p
	return nil
}

func (r *Resolver) offered(value string) bool {
	for _, o := range r.options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Parameter returns the chosen parameter.
func (r *Resolver) Parameter() (Parameter, bool) {
	if r.param == nil {
		return Parameter{}, false
	}
	return *r.param, true
}

// Ready reports whether a question may be requested.
func (r *Resolver) Ready() bool {
	if r.selected == nil {
		return false
	}
	return r.selected.ParamKind() == ParamNone || r.param != nil
}
