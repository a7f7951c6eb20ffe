package questionsvc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathdrill/internal/quiz"
)

// fakeService mimics the question service's routes and error bodies.
type fakeService struct {
	mu       sync.Mutex
	question any
	paths    []string
}

func (f *fakeService) router() http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			f.paths = append(f.paths, req.URL.EscapedPath())
			f.mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})

	r.Get("/api/modes", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"scalar_addition": map[string]any{"name": "Scalar Addition", "has_digits": true, "has_difficulties": false},
			"matrix_addition": map[string]any{"name": "Matrix Addition", "has_digits": false, "has_difficulties": true},
		})
	})
	r.Get("/api/mode/{id}/digits", func(w http.ResponseWriter, req *http.Request) {
		if chi.URLParam(req, "id") != "scalar_addition" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid mode or no digits available"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"3": "3-digit Addition",
			"1": "1-digit Addition",
			"2": "2-digit Addition",
		})
	})
	r.Get("/api/mode/{id}/difficulties", func(w http.ResponseWriter, req *http.Request) {
		if chi.URLParam(req, "id") != "matrix_addition" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid mode or no difficulties available"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"hard":   "Hard Matrix Addition",
			"medium": "Medium Matrix Addition",
			"easy":   "Easy Matrix Addition",
		})
	})
	r.Get("/api/question/{id}/{setting}", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		q := f.question
		f.mu.Unlock()
		if raw, ok := q.(string); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(raw))
			return
		}
		writeJSON(w, http.StatusOK, q)
	})
	return r
}

func (f *fakeService) requested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, f *fakeService) *Client {
	t.Helper()
	srv := httptest.NewServer(f.router())
	t.Cleanup(srv.Close)

	c, err := New(srv.URL + "/")
	require.NoError(t, err)
	return c
}

func TestNew_RejectsBadURL(t *testing.T) {
	_, err := New("ftp://example.com")
	assert.Error(t, err)

	_, err = New("://nope")
	assert.Error(t, err)
}

func TestClient_Modes(t *testing.T) {
	c := newTestClient(t, &fakeService{})

	modes, err := c.Modes(context.Background())
	require.NoError(t, err)
	require.Len(t, modes, 2)

	assert.Equal(t, quiz.Mode{ID: "matrix_addition", Name: "Matrix Addition", RequiresDifficulty: true}, modes[0])
	assert.Equal(t, quiz.Mode{ID: "scalar_addition", Name: "Scalar Addition", RequiresDigitCount: true}, modes[1])
}

func TestClient_DigitOptions(t *testing.T) {
	c := newTestClient(t, &fakeService{})

	opts, err := c.DigitOptions(context.Background(), "scalar_addition")
	require.NoError(t, err)
	assert.Equal(t, []quiz.Option{
		{Value: "1", Label: "1-digit Addition"},
		{Value: "2", Label: "2-digit Addition"},
		{Value: "3", Label: "3-digit Addition"},
	}, opts)
}

func TestClient_DifficultyOptions(t *testing.T) {
	c := newTestClient(t, &fakeService{})

	opts, err := c.DifficultyOptions(context.Background(), "matrix_addition")
	require.NoError(t, err)
	require.Len(t, opts, 3)
	assert.Equal(t, "easy", opts[0].Value)
	assert.Equal(t, "medium", opts[1].Value)
	assert.Equal(t, "hard", opts[2].Value)
}

func TestClient_StatusErrorCarriesMessage(t *testing.T) {
	c := newTestClient(t, &fakeService{})

	_, err := c.DigitOptions(context.Background(), "matrix_addition")
	var se *ErrStatus
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Equal(t, "Invalid mode or no digits available", se.Message)
}

func TestClient_ScalarQuestion(t *testing.T) {
	f := &fakeService{question: map[string]any{
		"question":  "12 + 30",
		"answer":    42,
		"mode_type": "scalar",
	}}
	c := newTestClient(t, f)

	q, err := c.Question(context.Background(), "scalar_addition", "2")
	require.NoError(t, err)
	assert.Equal(t, "12 + 30", q.Prompt)
	assert.Equal(t, quiz.ShapeScalar, q.Shape)
	assert.Equal(t, int64(42), q.Key.Scalar)
	assert.Nil(t, q.Key.Grid)
	assert.Contains(t, f.requested(), "/api/question/scalar_addition/2")
}

func TestClient_MatrixQuestion(t *testing.T) {
	f := &fakeService{question: map[string]any{
		"question":   "Add matrices:\n[1, 2]    +    [0, 0]\n[3, 4]    +    [0, 0]\n",
		"answer":     [][]int{{1, 2}, {3, 4}},
		"mode_type":  "matrix",
		"dimensions": map[string]int{"rows": 2, "cols": 2},
	}}
	c := newTestClient(t, f)

	q, err := c.Question(context.Background(), "matrix_addition", "easy")
	require.NoError(t, err)
	assert.Equal(t, quiz.ShapeMatrix, q.Shape)
	assert.Equal(t, 2, q.Rows)
	assert.Equal(t, 2, q.Cols)
	assert.Equal(t, [][]int64{{1, 2}, {3, 4}}, q.Key.Grid)
}

func TestClient_IntegralFloatAnswers(t *testing.T) {
	c := newTestClient(t, &fakeService{question: `{"question":"40 + 2","answer":42.0,"mode_type":"scalar"}`})
	q, err := c.Question(context.Background(), "scalar_addition", "1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), q.Key.Scalar)

	c = newTestClient(t, &fakeService{question: `{"question":"x","answer":[[1.0,2],[3,4e0]],"mode_type":"matrix","dimensions":{"rows":2,"cols":2}}`})
	q, err = c.Question(context.Background(), "matrix_addition", "easy")
	require.NoError(t, err)
	assert.Equal(t, [][]int64{{1, 2}, {3, 4}}, q.Key.Grid)
}

func TestClient_ParameterlessSetting(t *testing.T) {
	f := &fakeService{question: map[string]any{"question": "1 + 1", "answer": 2, "mode_type": "scalar"}}
	c := newTestClient(t, f)

	_, err := c.Question(context.Background(), "quick_fire", quiz.NoParameterSetting)
	require.NoError(t, err)
	assert.Contains(t, f.requested(), "/api/question/quick_fire/0")
}

func TestClient_MalformedQuestions(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"missing answer", `{"question":"1 + 1","mode_type":"scalar"}`},
		{"fractional answer", `{"question":"1 / 2","answer":0.5,"mode_type":"scalar"}`},
		{"unknown mode type", `{"question":"x","answer":1,"mode_type":"vector"}`},
		{"matrix without dimensions", `{"question":"x","answer":[[1]],"mode_type":"matrix"}`},
		{"scalar with grid", `{"question":"x","answer":[[1]],"mode_type":"scalar"}`},
		{"dimension mismatch", `{"question":"x","answer":[[1,2]],"mode_type":"matrix","dimensions":{"rows":2,"cols":2}}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, &fakeService{question: tc.body})

			_, err := c.Question(context.Background(), "scalar_addition", "1")
			var ip *ErrInvalidPayload
			assert.ErrorAs(t, err, &ip)
		})
	}
}

func TestClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c, err := New(srv.URL)
	require.NoError(t, err)
	srv.Close()

	_, err = c.Modes(context.Background())
	var ue *ErrUnavailable
	assert.ErrorAs(t, err, &ue)
}

func TestClient_ErrorsBecomeRetrievalFailures(t *testing.T) {
	c := newTestClient(t, &fakeService{question: `{"question":"x"}`})
	e := quiz.NewEngine(c)

	applied, err := e.Apply(e.Retrieve(context.Background(), e.LoadModes()))
	require.NoError(t, err)
	require.True(t, applied)

	req, ok, err := e.SelectMode("scalar_addition")
	require.NoError(t, err)
	require.True(t, ok)
	_, err = e.Apply(e.Retrieve(context.Background(), req))
	require.NoError(t, err)

	req, ok, err = e.SelectParameter(quiz.Digits(1))
	require.NoError(t, err)
	require.True(t, ok)
	_, err = e.Apply(e.Retrieve(context.Background(), req))

	assert.True(t, errors.Is(err, quiz.ErrRetrievalFailure))
	assert.Equal(t, quiz.StateIdle, e.State())
}
