package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const attemptsTable = "attempts"

// AttemptRecord is one resolved question as stored in the journal.
type AttemptRecord struct {
	ID         int64
	Timestamp  time.Time
	SessionID  string
	ModeID     string
	Setting    string
	Prompt     string
	AnswerKey  string
	Submission string
	Correct    bool
	ElapsedMs  int64
}

// ModeStats aggregates the journal for one mode.
type ModeStats struct {
	ModeID     string
	Attempts   int
	Correct    int
	AvgElapsed time.Duration
}

// Accuracy returns the fraction of correct attempts.
func (s ModeStats) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// AttemptRepo provides append and read access to the attempt journal.
type AttemptRepo interface {
	// Append records one attempt. A zero Timestamp is set to now.
	Append(ctx context.Context, rec AttemptRecord) error

	// Recent returns up to limit attempts, newest first. A limit <= 0
	// returns every attempt.
	Recent(ctx context.Context, limit int) ([]AttemptRecord, error)

	// Stats returns per-mode aggregates ordered by mode ID.
	Stats(ctx context.Context) ([]ModeStats, error)
}

type attemptRepo struct {
	drv *entsql.Driver
}

var attemptColumns = []string{
	"id", "timestamp", "session_id", "mode_id", "setting",
	"prompt", "answer_key", "submission", "correct", "elapsed_ms",
}

func (r *attemptRepo) Append(ctx context.Context, rec AttemptRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(attemptsTable).
		Columns(attemptColumns[1:]...).
		Values(
			rec.Timestamp.UTC(), rec.SessionID, rec.ModeID, rec.Setting,
			rec.Prompt, rec.AnswerKey, rec.Submission, rec.Correct, rec.ElapsedMs,
		).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) Recent(ctx context.Context, limit int) ([]AttemptRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(attemptColumns...).
		From(entsql.Table(attemptsTable)).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		var rec AttemptRecord
		if err := rows.Scan(
			&rec.ID, &rec.Timestamp, &rec.SessionID, &rec.ModeID, &rec.Setting,
			&rec.Prompt, &rec.AnswerKey, &rec.Submission, &rec.Correct, &rec.ElapsedMs,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}

func (r *attemptRepo) Stats(ctx context.Context) ([]ModeStats, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			"mode_id",
			entsql.Count("*"),
			entsql.Sum("correct"),
			entsql.Avg("elapsed_ms"),
		).
		From(entsql.Table(attemptsTable)).
		GroupBy("mode_id").
		OrderBy("mode_id").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var out []ModeStats
	for rows.Next() {
		var (
			s   ModeStats
			avg float64
		)
		if err := rows.Scan(&s.ModeID, &s.Attempts, &s.Correct, &avg); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		s.AvgElapsed = time.Duration(avg * float64(time.Millisecond))
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats: %w", err)
	}
	return out, nil
}
