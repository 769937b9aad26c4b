package stats_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fieldline/triage/internal/stats"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockSystem struct {
	summarizeFn func(ctx context.Context, days int) (*stats.Summary, error)
}

func (m *mockSystem) Handler() *stats.Handler {
	return stats.NewHandler(m, testLogger())
}

func (m *mockSystem) Summarize(ctx context.Context, days int) (*stats.Summary, error) {
	return m.summarizeFn(ctx, days)
}

func TestSummarizeDefaultsDays(t *testing.T) {
	sys := &mockSystem{
		summarizeFn: func(_ context.Context, days int) (*stats.Summary, error) {
			if days != 7 {
				t.Errorf("days = %d, want 7", days)
			}
			return &stats.Summary{Days: days}, nil
		},
	}
	handler := sys.Handler()

	req := httptest.NewRequest("GET", "/stats", nil)
	rec := httptest.NewRecorder()

	handler.Summarize(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestSummarizeDaysParam(t *testing.T) {
	sys := &mockSystem{
		summarizeFn: func(_ context.Context, days int) (*stats.Summary, error) {
			if days != 30 {
				t.Errorf("days = %d, want 30", days)
			}
			return &stats.Summary{
				Days:          days,
				TotalTickets:  12,
				Categories:    map[string]int{"technical": 8, "billing": 4},
				Priorities:    map[string]int{"high": 3},
				AvgConfidence: 0.742,
			}, nil
		},
	}
	handler := sys.Handler()

	req := httptest.NewRequest("GET", "/stats?days=30", nil)
	rec := httptest.NewRecorder()

	handler.Summarize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var summary stats.Summary
	if err := json.NewDecoder(rec.Body).Decode(&summary); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if summary.TotalTickets != 12 || summary.Categories["technical"] != 8 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestSummarizeInvalidDays(t *testing.T) {
	sys := &mockSystem{
		summarizeFn: func(_ context.Context, days int) (*stats.Summary, error) {
			return nil, stats.ErrInvalidWindow
		},
	}
	handler := sys.Handler()

	tests := []string{"/stats?days=abc", "/stats?days=0", "/stats?days=400"}
	for _, target := range tests {
		req := httptest.NewRequest("GET", target, nil)
		rec := httptest.NewRecorder()

		handler.Summarize(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}
