// Package questionsvc is the HTTP client for the question service. It maps
// the service's JSON endpoints onto quiz.Source.
package questionsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mathdrill/internal/quiz"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// Client talks to the question service over HTTP. It is safe for
// concurrent use.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *zap.Logger
}

var _ quiz.Source = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the request logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse service URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("service URL %q must be http or https", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type modeInfo struct {
	Name            string `json:"name"`
	HasDigits       bool   `json:"has_digits"`
	HasDifficulties bool   `json:"has_difficulties"`
}

// Modes fetches GET /api/modes.
func (c *Client) Modes(ctx context.Context) ([]quiz.Mode, error) {
	var payload map[string]modeInfo
	if err := c.get(ctx, ModesSchema, &payload, "api", "modes"); err != nil {
		return nil, err
	}

	modes := make([]quiz.Mode, 0, len(payload))
	for id, info := range payload {
		modes = append(modes, quiz.Mode{
			ID:                 id,
			Name:               info.Name,
			RequiresDigitCount: info.HasDigits,
			RequiresDifficulty: info.HasDifficulties,
		})
	}
	quiz.SortModes(modes)
	return modes, nil
}

// DigitOptions fetches GET /api/mode/{id}/digits.
func (c *Client) DigitOptions(ctx context.Context, modeID string) ([]quiz.Option, error) {
	var payload map[string]string
	if err := c.get(ctx, OptionsSchema, &payload, "api", "mode", modeID, "digits"); err != nil {
		return nil, err
	}
	return quiz.OrderDigits(payload), nil
}

// DifficultyOptions fetches GET /api/mode/{id}/difficulties.
func (c *Client) DifficultyOptions(ctx context.Context, modeID string) ([]quiz.Option, error) {
	var payload map[string]string
	if err := c.get(ctx, OptionsSchema, &payload, "api", "mode", modeID, "difficulties"); err != nil {
		return nil, err
	}
	return quiz.OrderDifficulties(payload), nil
}

type questionPayload struct {
	Question   string          `json:"question"`
	Answer     json.RawMessage `json:"answer"`
	ModeType   string          `json:"mode_type"`
	Dimensions *struct {
		Rows int `json:"rows"`
		Cols int `json:"cols"`
	} `json:"dimensions"`
}

// Question fetches GET /api/question/{id}/{setting}.
func (c *Client) Question(ctx context.Context, modeID, setting string) (*quiz.Question, error) {
	var p questionPayload
	if err := c.get(ctx, QuestionSchema, &p, "api", "question", modeID, setting); err != nil {
		return nil, err
	}

	q := &quiz.Question{Prompt: p.Question, Shape: quiz.Shape(p.ModeType)}
	path := "/api/question/" + modeID + "/" + setting

	var err error
	if q.Shape == quiz.ShapeMatrix {
		q.Rows, q.Cols = p.Dimensions.Rows, p.Dimensions.Cols
		q.Key.Grid, err = decodeGrid(p.Answer)
	} else {
		q.Key.Scalar, err = decodeInteger(p.Answer)
	}
	if err != nil {
		return nil, &ErrInvalidPayload{Path: path, Content: p.Answer, Err: err}
	}

	if err := q.Validate(); err != nil {
		return nil, &ErrInvalidPayload{Path: path, Err: err}
	}
	return q, nil
}

// decodeInteger reads a JSON number that must hold an exact integer. The
// schema's "integer" type admits 42.0, so integral floats are accepted.
func decodeInteger(raw json.RawMessage) (int64, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	return numberToInt(n)
}

func numberToInt(n json.Number) (int64, error) {
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("answer %s is not an integer", n)
	}
	return int64(f), nil
}

func decodeGrid(raw json.RawMessage) ([][]int64, error) {
	var rows [][]json.Number
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	grid := make([][]int64, len(rows))
	for i, row := range rows {
		grid[i] = make([]int64, len(row))
		for j, n := range row {
			v, err := numberToInt(n)
			if err != nil {
				return nil, fmt.Errorf("cell [%d,%d]: %w", i, j, err)
			}
			grid[i][j] = v
		}
	}
	return grid, nil
}

// get issues a GET for the escaped path segments, validates the body
// against schema, and decodes it into out.
func (c *Client) get(ctx context.Context, schema *Schema, out any, segments ...string) error {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	path := "/" + strings.Join(escaped, "/")
	endpoint := c.baseURL.String() + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("question service request failed", zap.String("path", path), zap.Error(err))
		return &ErrUnavailable{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &ErrUnavailable{Err: fmt.Errorf("read body: %w", err)}
	}

	c.logger.Debug("question service request",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &ErrStatus{Path: path, Code: resp.StatusCode}
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &e) == nil {
			se.Message = e.Error
		}
		return se
	}

	if err := validatePayload(path, schema, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &ErrInvalidPayload{Path: path, Content: body, Err: err}
	}
	return nil
}
