package quiz

import (
	"strconv"
	"strings"
)

// CheckAnswer validates sub against q and reports whether it matches the
// answer key exactly. A non-nil error is always an *InputError and means the
// submission never reached the comparison.
//
// Normalization rules:
// - Whitespace around each value is trimmed
// - Leading zeros and a leading '+' are accepted ("007" matches 7)
// - No tolerance: every value must equal the key exactly
func CheckAnswer(sub Submission, q *Question) (bool, error) {
	if q.Shape == ShapeMatrix {
		return checkMatrix(sub.Cells, q)
	}
	return checkScalar(sub.Value, q.Key.Scalar)
}

func checkScalar(input string, want int64) (bool, error) {
	n, ok := parseInteger(input)
	if !ok {
		return false, &InputError{Kind: ErrInvalidInput}
	}
	return n == want, nil
}

// checkMatrix parses the row-major cells. Empty cells are reported before
// malformed ones, so a half-filled grid is always "incomplete". More cells
// than rows*cols is a malformed submission.
func checkMatrix(cells []string, q *Question) (bool, error) {
	var missing, invalid []Cell
	values := make([]int64, q.Rows*q.Cols)
	if len(cells) > len(values) {
		return false, &InputError{Kind: ErrInvalidInput}
	}

	for i := range values {
		c := Cell{Row: i / q.Cols, Col: i % q.Cols}
		if i >= len(cells) || strings.TrimSpace(cells[i]) == "" {
			missing = append(missing, c)
			continue
		}
		n, ok := parseInteger(cells[i])
		if !ok {
			invalid = append(invalid, c)
			continue
		}
		values[i] = n
	}

	if len(missing) > 0 {
		return false, &InputError{Kind: ErrIncompleteInput, Cells: missing}
	}
	if len(invalid) > 0 {
		return false, &InputError{Kind: ErrInvalidInput, Cells: invalid}
	}

	for i, v := range values {
		if v != q.Key.Grid[i/q.Cols][i%q.Cols] {
			return false, nil
		}
	}
	return true, nil
}

// parseInteger parses a trimmed base-10 integer.
func parseInteger(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
