package quiz

import (
	"errors"
	"testing"
)

func TestCheckAnswer_Scalar(t *testing.T) {
	q := &Question{Shape: ShapeScalar, Key: AnswerKey{Scalar: 42}}

	tests := []struct {
		input   string
		want    bool
		wantErr error
	}{
		{"42", true, nil},
		{" 42 ", true, nil},
		{"042", true, nil},
		{"+42", true, nil},
		{"41", false, nil},
		{"-42", false, nil},
		{"abc", false, ErrInvalidInput},
		{"", false, ErrInvalidInput},
		{"4.2", false, ErrInvalidInput},
		{"42abc", false, ErrInvalidInput},
	}

	for _, tc := range tests {
		got, err := CheckAnswer(ScalarAnswer(tc.input), q)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("CheckAnswer(%q) error = %v, want %v", tc.input, err, tc.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("CheckAnswer(%q) unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("CheckAnswer(%q, 42) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckAnswer_Matrix(t *testing.T) {
	q := &Question{
		Shape: ShapeMatrix,
		Rows:  2,
		Cols:  2,
		Key:   AnswerKey{Grid: [][]int64{{1, 2}, {3, 4}}},
	}

	tests := []struct {
		name      string
		cells     []string
		want      bool
		wantErr   error
		wantCells []Cell
	}{
		{"exact", []string{"1", "2", "3", "4"}, true, nil, nil},
		{"padded", []string{" 1", "2 ", "03", "4"}, true, nil, nil},
		{"one wrong", []string{"1", "2", "3", "5"}, false, nil, nil},
		{"transposed", []string{"1", "3", "2", "4"}, false, nil, nil},
		{"three cells", []string{"1", "2", "3"}, false, ErrIncompleteInput, []Cell{{1, 1}}},
		{"blank cell", []string{"1", "", "3", "4"}, false, ErrIncompleteInput, []Cell{{0, 1}}},
		{"whitespace cell", []string{"1", "2", "  ", "4"}, false, ErrIncompleteInput, []Cell{{1, 0}}},
		{"non numeric", []string{"1", "x", "3", "4"}, false, ErrInvalidInput, []Cell{{0, 1}}},
		{"blank wins over invalid", []string{"x", "", "3", "4"}, false, ErrIncompleteInput, []Cell{{0, 1}}},
		{"nil cells", nil, false, ErrIncompleteInput, []Cell{{0, 0}, {0, 1}, {1, 0}, {1, 1}}},
		{"extra cell", []string{"1", "2", "3", "4", "99"}, false, ErrInvalidInput, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CheckAnswer(MatrixAnswer(tc.cells...), q)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("error = %v, want %v", err, tc.wantErr)
				}
				var ie *InputError
				if !errors.As(err, &ie) {
					t.Fatalf("error %T is not *InputError", err)
				}
				if len(ie.Cells) != len(tc.wantCells) {
					t.Fatalf("cells = %v, want %v", ie.Cells, tc.wantCells)
				}
				for i := range ie.Cells {
					if ie.Cells[i] != tc.wantCells[i] {
						t.Errorf("cell %d = %v, want %v", i, ie.Cells[i], tc.wantCells[i])
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("correct = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCheckAnswer_NonSquareMatrix(t *testing.T) {
	q := &Question{
		Shape: ShapeMatrix,
		Rows:  2,
		Cols:  3,
		Key:   AnswerKey{Grid: [][]int64{{1, 2, 3}, {-4, -5, -6}}},
	}

	got, err := CheckAnswer(MatrixAnswer("1", "2", "3", "-4", "-5", "-6"), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Error("expected 2x3 answer to be correct")
	}
}

func TestAnswerKey_String(t *testing.T) {
	tests := []struct {
		key  AnswerKey
		want string
	}{
		{AnswerKey{Scalar: 42}, "42"},
		{AnswerKey{Scalar: -7}, "-7"},
		{AnswerKey{Grid: [][]int64{{1, 2}, {3, 4}}}, "[[1,2],[3,4]]"},
		{AnswerKey{Grid: [][]int64{{-1, 0, 5}}}, "[[-1,0,5]]"},
	}

	for _, tc := range tests {
		if got := tc.key.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestQuestion_Validate(t *testing.T) {
	tests := []struct {
		name    string
		q       Question
		wantErr bool
	}{
		{"scalar", Question{Shape: ShapeScalar, Key: AnswerKey{Scalar: 3}}, false},
		{"matrix", Question{Shape: ShapeMatrix, Rows: 1, Cols: 2, Key: AnswerKey{Grid: [][]int64{{1, 2}}}}, false},
		{"unknown shape", Question{Shape: "vector"}, true},
		{"scalar with grid", Question{Shape: ShapeScalar, Key: AnswerKey{Grid: [][]int64{{1}}}}, true},
		{"zero dims", Question{Shape: ShapeMatrix, Key: AnswerKey{Grid: [][]int64{}}}, true},
		{"row mismatch", Question{Shape: ShapeMatrix, Rows: 2, Cols: 2, Key: AnswerKey{Grid: [][]int64{{1, 2}}}}, true},
		{"col mismatch", Question{Shape: ShapeMatrix, Rows: 1, Cols: 2, Key: AnswerKey{Grid: [][]int64{{1}}}}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.q.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
