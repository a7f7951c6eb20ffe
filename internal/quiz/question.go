package quiz

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Shape describes how a question is answered.
type Shape string

const (
	ShapeScalar Shape = "scalar"
	ShapeMatrix Shape = "matrix"
)

// Question is a prompt issued by the question service together with the
// reference answer it will be checked against.
type Question struct {
	// Prompt is displayed verbatim. Matrix prompts span several lines.
	Prompt string

	Shape Shape

	// Rows and Cols are set only for matrix questions.
	Rows int
	Cols int

	Key AnswerKey
}

// Validate checks that the key agrees with the declared shape.
func (q *Question) Validate() error {
	switch q.Shape {
	case ShapeScalar:
		if q.Key.Grid != nil {
			return fmt.Errorf("scalar question carries a matrix key")
		}
	case ShapeMatrix:
		if q.Rows <= 0 || q.Cols <= 0 {
			return fmt.Errorf("matrix question has dimensions %dx%d", q.Rows, q.Cols)
		}
		if len(q.Key.Grid) != q.Rows {
			return fmt.Errorf("matrix key has %d rows, want %d", len(q.Key.Grid), q.Rows)
		}
		for i, row := range q.Key.Grid {
			if len(row) != q.Cols {
				return fmt.Errorf("matrix key row %d has %d cols, want %d", i, len(row), q.Cols)
			}
		}
	default:
		return fmt.Errorf("unknown question shape %q", q.Shape)
	}
	return nil
}

// Cells returns the number of values a submission must supply.
func (q *Question) Cells() int {
	if q.Shape == ShapeMatrix {
		return q.Rows * q.Cols
	}
	return 1
}

// AnswerKey is the reference value a submission is compared against.
// Grid is nil for scalar keys.
type AnswerKey struct {
	Scalar int64
	Grid   [][]int64
}

// String renders the key the way it is shown to the user: "42" or
// "[[1,2],[3,4]]".
func (k AnswerKey) String() string {
	if k.Grid == nil {
		return strconv.FormatInt(k.Scalar, 10)
	}
	b, err := json.Marshal(k.Grid)
	if err != nil {
		return fmt.Sprint(k.Grid)
	}
	return string(b)
}

// Submission is the raw user input for one attempt. Scalar questions read
// Value; matrix questions read Cells in row-major order.
type Submission struct {
	Value string
	Cells []string
}

// ScalarAnswer wraps a single typed answer.
func ScalarAnswer(v string) Submission {
	return Submission{Value: v}
}

// MatrixAnswer wraps row-major cell inputs.
func MatrixAnswer(cells ...string) Submission {
	return Submission{Cells: cells}
}

// String renders the submission for journals and logs.
func (s Submission) String() string {
	if s.Cells == nil {
		return s.Value
	}
	b, err := json.Marshal(s.Cells)
	if err != nil {
		return fmt.Sprint(s.Cells)
	}
	return string(b)
}
