// Package stats aggregates ticket and classification metrics over a
// trailing window of days.
package stats

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"time"
)

const (
	minDays     = 1
	maxDays     = 365
	defaultDays = 7
)

// Summary holds aggregate metrics over the trailing window.
type Summary struct {
	Days          int            `json:"days"`
	TotalTickets  int            `json:"total_tickets"`
	Categories    map[string]int `json:"categories"`
	Priorities    map[string]int `json:"priorities"`
	AvgConfidence float64        `json:"avg_confidence"`
	Daily         []DayCount     `json:"daily"`
}

// DayCount is the number of tickets created on a single day.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// System defines the public contract for stats operations.
type System interface {
	Handler() *Handler
	Summarize(ctx context.Context, days int) (*Summary, error)
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a stats system over the given database connection.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "stats"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

// Summarize computes all aggregates for the window. Category counts come
// from classification records, priority counts from the tickets they were
// overlaid onto.
func (r *repo) Summarize(ctx context.Context, days int) (*Summary, error) {
	if days < minDays || days > maxDays {
		return nil, fmt.Errorf("%w: days must be between %d and %d", ErrInvalidWindow, minDays, maxDays)
	}

	since := time.Now().AddDate(0, 0, -days)
	s := &Summary{
		Days:       days,
		Categories: map[string]int{},
		Priorities: map[string]int{},
		Daily:      []DayCount{},
	}

	if err := r.db.QueryRowContext(
		ctx,
		"SELECT COUNT(*) FROM support_tickets WHERE created_at >= $1",
		since,
	).Scan(&s.TotalTickets); err != nil {
		return nil, fmt.Errorf("count tickets: %w", err)
	}

	if err := r.groupCounts(
		ctx,
		"SELECT category, COUNT(*) FROM classification_results WHERE created_at >= $1 GROUP BY category",
		since,
		s.Categories,
	); err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	if err := r.groupCounts(
		ctx,
		"SELECT priority, COUNT(*) FROM support_tickets WHERE priority IS NOT NULL AND created_at >= $1 GROUP BY priority",
		since,
		s.Priorities,
	); err != nil {
		return nil, fmt.Errorf("count priorities: %w", err)
	}

	var avg float64
	if err := r.db.QueryRowContext(
		ctx,
		"SELECT COALESCE(AVG(confidence_score), 0) FROM classification_results WHERE created_at >= $1",
		since,
	).Scan(&avg); err != nil {
		return nil, fmt.Errorf("average confidence: %w", err)
	}
	s.AvgConfidence = math.Round(avg*1000) / 1000

	rows, err := r.db.QueryContext(
		ctx,
		`SELECT DATE(created_at)::text, COUNT(*)
		 FROM support_tickets
		 WHERE created_at >= $1
		 GROUP BY DATE(created_at)
		 ORDER BY DATE(created_at)`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("daily counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, fmt.Errorf("scan daily count: %w", err)
		}
		s.Daily = append(s.Daily, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("daily counts: %w", err)
	}

	return s, nil
}

func (r *repo) groupCounts(ctx context.Context, q string, since time.Time, dst map[string]int) error {
	rows, err := r.db.QueryContext(ctx, q, since)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key   string
			count int
		)
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		dst[key] = count
	}
	return rows.Err()
}
