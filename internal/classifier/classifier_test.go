package classifier

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubScorer struct {
	categoryScores []LabelScore
	priorityScores []LabelScore
	categoryErr    error
	priorityErr    error
	calls          int
}

func (s *stubScorer) Score(_ context.Context, _ string, hypotheses []string) ([]LabelScore, error) {
	s.calls++
	if len(hypotheses) > 0 && hypotheses[0] == categoryHypotheses[0] {
		return s.categoryScores, s.categoryErr
	}
	return s.priorityScores, s.priorityErr
}

type stubSummarizer struct {
	summary string
	err     error
	calls   int
}

func (s *stubSummarizer) Summarize(_ context.Context, _ string, _, _ int) (string, error) {
	s.calls++
	return s.summary, s.err
}

type stubBackend struct {
	ev    Evaluation
	calls int
}

func (b *stubBackend) evaluate(_ context.Context, _ string) Evaluation {
	b.calls++
	return b.ev
}

func longText() string {
	return strings.Repeat("word ", 30) + "end"
}

func TestCombine(t *testing.T) {
	got := Combine("the body", "the subject")
	want := "subject: the subject\nbody: the body"
	if got != want {
		t.Errorf("Combine() = %q, want %q", got, want)
	}
}

func TestClassifyEmptyBody(t *testing.T) {
	backend := &stubBackend{}
	facade := newFacade(backend, time.Second, testLogger())

	got := facade.Classify(context.Background(), "", "subject present")

	if got != DefaultFallback() {
		t.Errorf("Classify() = %+v, want default fallback", got)
	}
	if backend.calls != 0 {
		t.Errorf("backend invoked %d times for empty body, want 0", backend.calls)
	}
}

func TestClassifyNilBackend(t *testing.T) {
	facade := newFacade(nil, time.Second, testLogger())

	got := facade.Classify(context.Background(), "body", "subject")

	if got != ConfigErrorFallback() {
		t.Errorf("Classify() = %+v, want config error fallback", got)
	}
	if got.Confidence != 0.0 {
		t.Errorf("config error fallback confidence = %v, want 0.0", got.Confidence)
	}
}

func TestClassifyPassesCombinedText(t *testing.T) {
	var seen string
	backend := backendFunc(func(_ context.Context, text string) Evaluation {
		seen = text
		return Evaluation{Result: DefaultFallback(), Status: StatusOK}
	})
	facade := newFacade(backend, time.Second, testLogger())

	facade.Classify(context.Background(), "help me", "login broken")

	if seen != "subject: login broken\nbody: help me" {
		t.Errorf("backend received %q", seen)
	}
}

type backendFunc func(ctx context.Context, text string) Evaluation

func (f backendFunc) evaluate(ctx context.Context, text string) Evaluation {
	return f(ctx, text)
}

func TestNewRejectsUnknownMode(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	cfg.Mode = "bert_large"

	if _, err := New(cfg, testLogger()); err == nil {
		t.Error("New() accepted unknown mode")
	}
}

func TestNewRequiresAPIKeyForOpenAI(t *testing.T) {
	cfg := &Config{Mode: ModeOpenAI}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	if _, err := New(cfg, testLogger()); err == nil {
		t.Error("New() accepted open_ai mode without an API key")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"unknown mode", func(c *Config) { c.Mode = "nope" }, true},
		{"bad timeout", func(c *Config) { c.Timeout = "soon" }, true},
		{"zero max tokens", func(c *Config) { c.OpenAI.MaxTokens = -5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.loadDefaults()
			tt.mutate(cfg)

			err := cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLocalBackendSuccess(t *testing.T) {
	scorer := &stubScorer{
		categoryScores: []LabelScore{
			{Label: categoryHypotheses[1], Score: 0.91},
			{Label: categoryHypotheses[0], Score: 0.06},
			{Label: categoryHypotheses[2], Score: 0.03},
		},
		priorityScores: []LabelScore{
			{Label: priorityHypotheses[2], Score: 0.8},
			{Label: priorityHypotheses[1], Score: 0.15},
			{Label: priorityHypotheses[0], Score: 0.05},
		},
	}
	summarizer := &stubSummarizer{summary: "Customer disputes an invoice."}
	b := newZeroShotBackend(scorer, summarizer, testLogger())

	ev := b.evaluate(context.Background(), longText())

	if ev.Status != StatusOK {
		t.Fatalf("Status = %v, want ok (reason: %s, err: %v)", ev.Status, ev.Reason, ev.Err)
	}
	if ev.Result.Category != CategoryBilling {
		t.Errorf("Category = %v, want billing", ev.Result.Category)
	}
	if ev.Result.Confidence != 0.91 {
		t.Errorf("Confidence = %v, want 0.91", ev.Result.Confidence)
	}
	if ev.Result.Priority != PriorityHigh {
		t.Errorf("Priority = %v, want high", ev.Result.Priority)
	}
	if ev.Result.Summary != "Customer disputes an invoice." {
		t.Errorf("Summary = %q", ev.Result.Summary)
	}
	if ev.Result.ModelUsed != ModelZeroShot {
		t.Errorf("ModelUsed = %q, want %q", ev.Result.ModelUsed, ModelZeroShot)
	}
}

func TestLocalBackendCategoryFailureCollapses(t *testing.T) {
	scorer := &stubScorer{categoryErr: errors.New("model server down")}
	b := newZeroShotBackend(scorer, &stubSummarizer{}, testLogger())

	ev := b.evaluate(context.Background(), longText())

	if ev.Status != StatusFailed {
		t.Fatalf("Status = %v, want failed", ev.Status)
	}
	want := Result{
		Category:   CategoryGeneral,
		Confidence: 0.5,
		Priority:   PriorityMedium,
		Summary:    "Error during AI processing.",
		ModelUsed:  ModelZeroShotErrorFallback,
	}
	if ev.Result != want {
		t.Errorf("Result = %+v, want %+v", ev.Result, want)
	}
}

func TestLocalBackendPriorityFailureIsolated(t *testing.T) {
	scorer := &stubScorer{
		categoryScores: []LabelScore{{Label: categoryHypotheses[0], Score: 0.88}},
		priorityErr:    errors.New("timeout"),
	}
	summarizer := &stubSummarizer{summary: "A technical problem."}
	b := newZeroShotBackend(scorer, summarizer, testLogger())

	ev := b.evaluate(context.Background(), longText())

	if ev.Status != StatusPartial {
		t.Fatalf("Status = %v, want partial", ev.Status)
	}
	if ev.Result.Category != CategoryTechnical {
		t.Errorf("Category = %v, want technical despite priority failure", ev.Result.Category)
	}
	if ev.Result.Priority != PriorityMedium {
		t.Errorf("Priority = %v, want medium default", ev.Result.Priority)
	}
	if ev.Result.ModelUsed != ModelZeroShot {
		t.Errorf("ModelUsed = %q, want success tag", ev.Result.ModelUsed)
	}
}

func TestLocalBackendSummarizerFailureCollapses(t *testing.T) {
	scorer := &stubScorer{
		categoryScores: []LabelScore{{Label: categoryHypotheses[0], Score: 0.9}},
		priorityScores: []LabelScore{{Label: priorityHypotheses[0], Score: 0.7}},
	}
	summarizer := &stubSummarizer{err: errors.New("summarizer crashed")}
	b := newZeroShotBackend(scorer, summarizer, testLogger())

	ev := b.evaluate(context.Background(), longText())

	if ev.Status != StatusFailed {
		t.Fatalf("Status = %v, want failed", ev.Status)
	}
	if ev.Result.ModelUsed != ModelZeroShotErrorFallback {
		t.Errorf("ModelUsed = %q", ev.Result.ModelUsed)
	}
}

func TestLocalBackendShortTextSkipsSummarizer(t *testing.T) {
	scorer := &stubScorer{
		categoryScores: []LabelScore{{Label: categoryHypotheses[2], Score: 0.75}},
		priorityScores: []LabelScore{{Label: priorityHypotheses[1], Score: 0.6}},
	}
	summarizer := &stubSummarizer{summary: "should not be used"}
	b := newZeroShotBackend(scorer, summarizer, testLogger())

	ev := b.evaluate(context.Background(), "subject: hi\nbody: short question")

	if ev.Status != StatusOK {
		t.Fatalf("Status = %v, want ok", ev.Status)
	}
	if summarizer.calls != 0 {
		t.Errorf("summarizer invoked %d times for short text, want 0", summarizer.calls)
	}
	if !strings.HasSuffix(ev.Result.Summary, "...") {
		t.Errorf("short-text summary %q missing truncation marker", ev.Result.Summary)
	}
}

func TestLocalBackendConfidenceClamped(t *testing.T) {
	scorer := &stubScorer{
		categoryScores: []LabelScore{{Label: categoryHypotheses[0], Score: 1.3}},
		priorityScores: []LabelScore{{Label: priorityHypotheses[1], Score: 0.5}},
	}
	b := newZeroShotBackend(scorer, &stubSummarizer{summary: "s"}, testLogger())

	ev := b.evaluate(context.Background(), longText())

	if ev.Result.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want clamped to 1.0", ev.Result.Confidence)
	}
}

type stubProber struct {
	fineTuned Scorer
	probeErr  error
	zeroShot  Scorer
}

func (p *stubProber) FineTunedScorer(string) (Scorer, error) {
	return p.fineTuned, p.probeErr
}

func (p *stubProber) ZeroShotScorer() Scorer {
	return p.zeroShot
}

func TestFineTunedBackendDowngrade(t *testing.T) {
	fallback := &stubScorer{
		categoryScores: []LabelScore{{Label: categoryHypotheses[0], Score: 0.8}},
		priorityScores: []LabelScore{{Label: priorityHypotheses[1], Score: 0.6}},
	}
	probe := &stubProber{probeErr: errors.New("artifacts missing"), zeroShot: fallback}
	b := newFineTunedBackend(probe, &stubSummarizer{summary: "s"}, "models/fine_tuned_bart", testLogger())

	if b.model != ModelZeroShot {
		t.Fatalf("model = %q, want downgrade to %q", b.model, ModelZeroShot)
	}

	ev := b.evaluate(context.Background(), longText())
	if ev.Result.ModelUsed != ModelZeroShot {
		t.Errorf("ModelUsed = %q after downgrade", ev.Result.ModelUsed)
	}
}

func TestFineTunedBackendUsesArtifacts(t *testing.T) {
	tuned := &stubScorer{
		categoryScores: []LabelScore{{Label: categoryHypotheses[1], Score: 0.95}},
		priorityScores: []LabelScore{{Label: priorityHypotheses[2], Score: 0.9}},
	}
	probe := &stubProber{fineTuned: tuned}
	b := newFineTunedBackend(probe, &stubSummarizer{summary: "s"}, "models/fine_tuned_bart", testLogger())

	if b.model != ModelFineTuned {
		t.Fatalf("model = %q, want %q", b.model, ModelFineTuned)
	}

	ev := b.evaluate(context.Background(), longText())
	if ev.Result.ModelUsed != ModelFineTuned {
		t.Errorf("ModelUsed = %q", ev.Result.ModelUsed)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	scorer := &stubScorer{
		categoryScores: []LabelScore{{Label: categoryHypotheses[0], Score: 0.8}},
		priorityScores: []LabelScore{{Label: priorityHypotheses[1], Score: 0.6}},
	}
	b := newZeroShotBackend(scorer, &stubSummarizer{summary: "stable"}, testLogger())
	facade := newFacade(b, time.Second, testLogger())

	first := facade.Classify(context.Background(), longText(), "subject")
	second := facade.Classify(context.Background(), longText(), "subject")

	if first != second {
		t.Errorf("repeated classification diverged: %+v vs %+v", first, second)
	}
}
