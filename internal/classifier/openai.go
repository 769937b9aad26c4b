package classifier

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// chatCompleter is the slice of the OpenAI client the backend needs.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

const openAIPromptTemplate = `Analyze the following customer support ticket and respond with exactly four lines:

Category: one of technical, billing, general
Confidence: a number between 0.0 and 1.0
Priority: one of low, medium, high
Summary: a one-sentence summary of the ticket

Category definitions:
- technical: system configuration, security setup, software malfunctions, data protection
- billing: invoices, payments, refunds, pricing
- general: anything not related to technical problems or billing

Ticket:
`

var (
	categoryLineRe   = regexp.MustCompile(`Category:\s*(\w+)`)
	confidenceLineRe = regexp.MustCompile(`Confidence:\s*([\d.]+)`)
	priorityLineRe   = regexp.MustCompile(`Priority:\s*(\w+)`)
	summaryLineRe    = regexp.MustCompile(`Summary:\s*(.+)`)
)

type openAIBackend struct {
	client chatCompleter
	cfg    *OpenAIConfig
	logger *slog.Logger
}

func newOpenAIBackend(client chatCompleter, cfg *OpenAIConfig, logger *slog.Logger) *openAIBackend {
	return &openAIBackend{
		client: client,
		cfg:    cfg,
		logger: logger.With("backend", ModeOpenAI),
	}
}

func (b *openAIBackend) evaluate(ctx context.Context, text string) Evaluation {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: b.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: openAIPromptTemplate + text,
			},
		},
		MaxTokens:   b.cfg.MaxTokens,
		Temperature: float32(b.cfg.Temperature),
	})
	if err != nil {
		return Evaluation{
			Result: Result{
				Category:   CategoryGeneral,
				Confidence: 0.5,
				Priority:   PriorityMedium,
				Summary:    "Error during OpenAI processing.",
				ModelUsed:  ModelOpenAIErrorFallback,
			},
			Status: StatusFailed,
			Reason: "chat completion failed",
			Err:    err,
		}
	}

	content := ""
	if len(resp.Choices) > 0 {
		content = strings.TrimSpace(resp.Choices[0].Message.Content)
	}
	if content == "" {
		return Evaluation{
			Result: Result{
				Category:   CategoryGeneral,
				Confidence: 0.6,
				Priority:   PriorityMedium,
				Summary:    "AI classification failed to produce a response.",
				ModelUsed:  ModelOpenAIEmptyFallback,
			},
			Status: StatusFailed,
			Reason: "empty completion",
		}
	}

	return b.parse(content)
}

// parse extracts the four response fields line by line. A missing or
// unrecognized field falls back to its default without discarding the
// fields that did parse.
func (b *openAIBackend) parse(content string) Evaluation {
	result := Result{
		Category:   CategoryGeneral,
		Confidence: 0.6,
		Priority:   PriorityMedium,
		Summary:    "Could not generate summary.",
		ModelUsed:  ModelOpenAI,
	}

	status := StatusOK
	var degraded []string

	if m := categoryLineRe.FindStringSubmatch(content); m != nil {
		category, ok := ParseCategory(strings.ToLower(m[1]))
		result.Category = category
		if !ok {
			b.logger.Warn("unknown category in completion, defaulting to general", "value", m[1])
			status = StatusPartial
			degraded = append(degraded, "category")
		}
	} else {
		status = StatusPartial
		degraded = append(degraded, "category")
	}

	if m := confidenceLineRe.FindStringSubmatch(content); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			result.Confidence = clampConfidence(v)
		} else {
			status = StatusPartial
			degraded = append(degraded, "confidence")
		}
	} else {
		status = StatusPartial
		degraded = append(degraded, "confidence")
	}

	if m := priorityLineRe.FindStringSubmatch(content); m != nil {
		priority, ok := ParsePriority(strings.ToLower(m[1]))
		result.Priority = priority
		if !ok {
			b.logger.Warn("unknown priority in completion, defaulting to medium", "value", m[1])
			status = StatusPartial
			degraded = append(degraded, "priority")
		}
	} else {
		status = StatusPartial
		degraded = append(degraded, "priority")
	}

	if m := summaryLineRe.FindStringSubmatch(content); m != nil {
		if summary := strings.TrimSpace(m[1]); summary != "" {
			result.Summary = summary
		} else {
			status = StatusPartial
			degraded = append(degraded, "summary")
		}
	} else {
		status = StatusPartial
		degraded = append(degraded, "summary")
	}

	reason := ""
	if len(degraded) > 0 {
		reason = "defaulted fields: " + strings.Join(degraded, ", ")
	}

	return Evaluation{Result: result, Status: status, Reason: reason}
}
