package quiz

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Mode is a category of arithmetic practice offered by the question service.
type Mode struct {
	ID                 string
	Name               string
	RequiresDigitCount bool
	RequiresDifficulty bool
}

// ParamKind returns the kind of parameter the mode must be narrowed by.
// A mode that claims both is treated as digit-count, matching the service.
func (m Mode) ParamKind() ParamKind {
	switch {
	case m.RequiresDigitCount:
		return ParamDigits
	case m.RequiresDifficulty:
		return ParamDifficulty
	default:
		return ParamNone
	}
}

// ParamKind identifies which parameter a mode requires.
type ParamKind int

const (
	ParamNone ParamKind = iota
	ParamDigits
	ParamDifficulty
)

func (k ParamKind) String() string {
	switch k {
	case ParamDigits:
		return "digits"
	case ParamDifficulty:
		return "difficulty"
	default:
		return "none"
	}
}

// Difficulty values understood by the service, in display order.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

var difficultyOrder = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// NoParameterSetting is the setting sent for modes that take no parameter.
const NoParameterSetting = "0"

// Parameter is the digit-count or difficulty choice narrowing a mode.
type Parameter struct {
	Kind  ParamKind
	Value string
}

// Digits returns a digit-count parameter.
func Digits(n int) Parameter {
	return Parameter{Kind: ParamDigits, Value: strconv.Itoa(n)}
}

// Difficulty returns a difficulty parameter.
func Difficulty(level string) Parameter {
	return Parameter{Kind: ParamDifficulty, Value: level}
}

// Setting returns the path segment identifying the parameter to the service.
func (p Parameter) Setting() string {
	if p.Kind == ParamNone || p.Value == "" {
		return NoParameterSetting
	}
	return p.Value
}

// validate checks that the value is well formed for its kind.
func (p Parameter) validate() error {
	switch p.Kind {
	case ParamDigits:
		n, err := strconv.Atoi(strings.TrimSpace(p.Value))
		if err != nil || n <= 0 {
			return fmt.Errorf("digit count %q is not a positive integer", p.Value)
		}
	case ParamDifficulty:
		for _, d := range difficultyOrder {
			if p.Value == d {
				return nil
			}
		}
		return fmt.Errorf("difficulty %q is not one of %s", p.Value, strings.Join(difficultyOrder, ", "))
	default:
		return fmt.Errorf("parameter has no kind")
	}
	return nil
}

// Option is a selectable parameter value and its display label.
type Option struct {
	Value string
	Label string
}

// OrderDifficulties returns the difficulty options present in labels in the
// fixed easy, medium, hard order. Unknown keys are dropped.
func OrderDifficulties(labels map[string]string) []Option {
	opts := make([]Option, 0, len(difficultyOrder))
	for _, d := range difficultyOrder {
		if label, ok := labels[d]; ok {
			opts = append(opts, Option{Value: d, Label: label})
		}
	}
	return opts
}

// OrderDigits returns the digit-count options sorted by numeric value.
// Keys that are not positive integers are dropped.
func OrderDigits(labels map[string]string) []Option {
	type entry struct {
		n   int
		opt Option
	}
	entries := make([]entry, 0, len(labels))
	for k, label := range labels {
		n, err := strconv.Atoi(k)
		if err != nil || n <= 0 {
			continue
		}
		entries = append(entries, entry{n: n, opt: Option{Value: k, Label: label}})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].n < entries[j].n })

	opts := make([]Option, len(entries))
	for i, e := range entries {
		opts[i] = e.opt
	}
	return opts
}

// SortModes orders modes by ID, the order the service lists them in.
func SortModes(modes []Mode) {
	sort.Slice(modes, func(i, j int) bool { return modes[i].ID < modes[j].ID })
}
