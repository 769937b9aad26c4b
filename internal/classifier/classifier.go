package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// backend produces a full Evaluation for already-combined ticket text.
// Implementations never return partial results: the Evaluation's Result is
// fully populated on every path.
type backend interface {
	evaluate(ctx context.Context, text string) Evaluation
}

// Facade is the single entry point for ticket classification. The backend
// is selected once at construction and never changes; Classify absorbs
// every backend failure into a tagged fallback Result.
type Facade struct {
	backend backend
	timeout time.Duration
	logger  *slog.Logger
}

// New constructs a Facade for the configured backend. An unknown mode or a
// missing API key for the open_ai mode is a construction error, not a
// runtime fallback.
func New(cfg *Config, logger *slog.Logger) (*Facade, error) {
	logger = logger.With("system", "classifier")

	var b backend
	switch cfg.Mode {
	case ModeOpenAI:
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("mode %s requires an API key", ModeOpenAI)
		}
		client := openai.NewClient(cfg.OpenAI.APIKey)
		b = newOpenAIBackend(client, &cfg.OpenAI, logger)
	case ModeZeroShot:
		inference := NewInferenceClient(cfg.Local.BaseURL, cfg.TimeoutDuration())
		b = newZeroShotBackend(inference, inference, logger)
	case ModeFineTuned:
		inference := NewInferenceClient(cfg.Local.BaseURL, cfg.TimeoutDuration())
		b = newFineTunedBackend(inference, inference, cfg.Local.ArtifactPath, logger)
	default:
		return nil, fmt.Errorf("unknown classifier mode: %q", cfg.Mode)
	}

	logger.Info("classifier initialized", "mode", cfg.Mode)

	return &Facade{
		backend: b,
		timeout: cfg.TimeoutDuration(),
		logger:  logger,
	}, nil
}

// newFacade wires an arbitrary backend for tests.
func newFacade(b backend, timeout time.Duration, logger *slog.Logger) *Facade {
	return &Facade{backend: b, timeout: timeout, logger: logger}
}

// Combine joins subject and body into the single text submitted to a
// backend. The layout is part of the model contract.
func Combine(body, subject string) string {
	return fmt.Sprintf("subject: %s\nbody: %s", subject, body)
}

// Classify produces a Result for the given ticket text. It never fails:
// empty input, configuration gaps, and backend errors all degrade to a
// tagged fallback Result.
func (f *Facade) Classify(ctx context.Context, body, subject string) Result {
	if body == "" {
		f.logger.Warn("classification skipped", "reason", "empty body")
		return DefaultFallback()
	}

	if f.backend == nil {
		f.logger.Error("classification dispatched without a backend")
		return ConfigErrorFallback()
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	text := Combine(body, subject)
	ev := f.backend.evaluate(ctx, text)

	switch ev.Status {
	case StatusFailed:
		f.logger.Error(
			"classification failed",
			"model", ev.Result.ModelUsed,
			"reason", ev.Reason,
			"error", ev.Err,
			"input_length", len(text),
			"input_preview", preview(text),
		)
	case StatusPartial:
		f.logger.Warn(
			"classification partially degraded",
			"model", ev.Result.ModelUsed,
			"reason", ev.Reason,
		)
	default:
		f.logger.Info(
			"classification complete",
			"model", ev.Result.ModelUsed,
			"category", ev.Result.Category,
			"priority", ev.Result.Priority,
		)
	}

	return ev.Result
}

// preview bounds the ticket text logged on failure paths. Full payloads
// never reach the logs.
func preview(text string) string {
	const max = 80
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
