package classifier

import (
	"context"
	"log/slog"
	"strings"
)

// LabelScore is a single hypothesis score from a zero-shot scorer, ranked
// descending by the scorer.
type LabelScore struct {
	Label string
	Score float64
}

// Scorer ranks hypothesis sentences against a premise text. The returned
// slice is ordered by descending score and contains one entry per
// hypothesis.
type Scorer interface {
	Score(ctx context.Context, text string, hypotheses []string) ([]LabelScore, error)
}

// Summarizer produces an abstractive summary bounded by token counts.
type Summarizer interface {
	Summarize(ctx context.Context, text string, minTokens, maxTokens int) (string, error)
}

// summaryTokenThreshold is the whitespace-token count above which the
// abstractive summarizer runs. Shorter texts are truncated verbatim.
const summaryTokenThreshold = 20

const (
	summaryMinTokens = 10
	summaryMaxTokens = 50
)

type localBackend struct {
	scorer     Scorer
	summarizer Summarizer
	model      string
	errorModel string
	logger     *slog.Logger
}

func newZeroShotBackend(scorer Scorer, summarizer Summarizer, logger *slog.Logger) *localBackend {
	return &localBackend{
		scorer:     scorer,
		summarizer: summarizer,
		model:      ModelZeroShot,
		errorModel: ModelZeroShotErrorFallback,
		logger:     logger.With("backend", ModeZeroShot),
	}
}

// newFineTunedBackend serves the fine-tuned model when its artifacts are
// loadable, otherwise it downgrades to the zero-shot stack. The downgrade
// decision happens once, at construction.
func newFineTunedBackend(probe ArtifactProber, summarizer Summarizer, artifactPath string, logger *slog.Logger) *localBackend {
	logger = logger.With("backend", ModeFineTuned)

	scorer, err := probe.FineTunedScorer(artifactPath)
	if err != nil {
		logger.Warn(
			"fine-tuned model unavailable, downgrading to zero-shot",
			"artifact_path", artifactPath,
			"error", err,
		)
		return &localBackend{
			scorer:     probe.ZeroShotScorer(),
			summarizer: summarizer,
			model:      ModelZeroShot,
			errorModel: ModelZeroShotErrorFallback,
			logger:     logger,
		}
	}

	return &localBackend{
		scorer:     scorer,
		summarizer: summarizer,
		model:      ModelFineTuned,
		errorModel: ModelFineTunedErrorFallback,
		logger:     logger,
	}
}

// localErrorFallback collapses the whole evaluation to a family-tagged
// fallback result.
func (b *localBackend) localErrorFallback() Result {
	return Result{
		Category:   CategoryGeneral,
		Confidence: 0.5,
		Priority:   PriorityMedium,
		Summary:    "Error during AI processing.",
		ModelUsed:  b.errorModel,
	}
}

func (b *localBackend) evaluate(ctx context.Context, text string) Evaluation {
	scores, err := b.scorer.Score(ctx, text, categoryHypotheses)
	if err != nil || len(scores) == 0 {
		return Evaluation{
			Result: b.localErrorFallback(),
			Status: StatusFailed,
			Reason: "category scoring failed",
			Err:    err,
		}
	}

	category, ok := categoryByHypothesis[scores[0].Label]
	if !ok {
		return Evaluation{
			Result: b.localErrorFallback(),
			Status: StatusFailed,
			Reason: "category scorer returned an unknown hypothesis",
		}
	}
	confidence := clampConfidence(scores[0].Score)

	status := StatusOK
	reason := ""

	// A priority failure degrades only the priority field. The category
	// result above is still genuine inference and is kept.
	priority := PriorityMedium
	priorityScores, err := b.scorer.Score(ctx, text, priorityHypotheses)
	if err != nil || len(priorityScores) == 0 {
		b.logger.Warn("priority scoring failed, defaulting to medium", "error", err)
		status = StatusPartial
		reason = "priority scoring failed"
	} else if p, ok := priorityByHypothesis[priorityScores[0].Label]; ok {
		priority = p
	} else {
		b.logger.Warn("priority scorer returned an unknown hypothesis, defaulting to medium")
		status = StatusPartial
		reason = "unknown priority hypothesis"
	}

	summary, err := b.summarize(ctx, text)
	if err != nil {
		return Evaluation{
			Result: b.localErrorFallback(),
			Status: StatusFailed,
			Reason: "summarization failed",
			Err:    err,
		}
	}

	return Evaluation{
		Result: Result{
			Category:   category,
			Confidence: confidence,
			Priority:   priority,
			Summary:    summary,
			ModelUsed:  b.model,
		},
		Status: status,
		Reason: reason,
	}
}

// summarize runs the abstractive summarizer only for texts longer than the
// token threshold; short texts are truncated instead of summarized.
func (b *localBackend) summarize(ctx context.Context, text string) (string, error) {
	tokens := strings.Fields(text)
	if len(tokens) <= summaryTokenThreshold {
		return strings.Join(tokens, " ") + "...", nil
	}
	return b.summarizer.Summarize(ctx, text, summaryMinTokens, summaryMaxTokens)
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
