package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// ArtifactProber resolves local model artifacts into scorers. A failed probe
// for the fine-tuned artifacts yields the zero-shot scorer as the downgrade
// target.
type ArtifactProber interface {
	FineTunedScorer(artifactPath string) (Scorer, error)
	ZeroShotScorer() Scorer
}

// InferenceClient talks to the local model server over HTTP. It implements
// Scorer against the zero-shot endpoint, Summarizer against the
// summarization endpoint, and ArtifactProber for fine-tuned artifact
// resolution.
//
// The server speaks the usual pipeline shapes: zero-shot requests carry the
// premise text with candidate labels and return parallel labels/scores
// arrays; summarization returns a single summary_text element.
type InferenceClient struct {
	baseURL string
	client  *http.Client
}

// NewInferenceClient creates a client for the model server at baseURL.
func NewInferenceClient(baseURL string, timeout time.Duration) *InferenceClient {
	return &InferenceClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

type zeroShotResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

type summarizeRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters summarizeParameters `json:"parameters"`
}

type summarizeParameters struct {
	MinLength int `json:"min_length"`
	MaxLength int `json:"max_length"`
}

type summarizeResponse struct {
	SummaryText string `json:"summary_text"`
}

// Score ranks hypotheses against text using the zero-shot endpoint.
func (c *InferenceClient) Score(ctx context.Context, text string, hypotheses []string) ([]LabelScore, error) {
	return c.score(ctx, "/zero-shot", text, hypotheses)
}

func (c *InferenceClient) score(ctx context.Context, path, text string, hypotheses []string) ([]LabelScore, error) {
	var resp zeroShotResponse
	if err := c.post(ctx, path, zeroShotRequest{
		Inputs:     text,
		Parameters: zeroShotParameters{CandidateLabels: hypotheses},
	}, &resp); err != nil {
		return nil, err
	}

	if len(resp.Labels) != len(resp.Scores) || len(resp.Labels) == 0 {
		return nil, fmt.Errorf("malformed zero-shot response: %d labels, %d scores", len(resp.Labels), len(resp.Scores))
	}

	scores := make([]LabelScore, len(resp.Labels))
	for i, label := range resp.Labels {
		scores[i] = LabelScore{Label: label, Score: resp.Scores[i]}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	return scores, nil
}

// Summarize produces an abstractive summary bounded by the given token counts.
func (c *InferenceClient) Summarize(ctx context.Context, text string, minTokens, maxTokens int) (string, error) {
	var resp []summarizeResponse
	if err := c.post(ctx, "/summarization", summarizeRequest{
		Inputs:     text,
		Parameters: summarizeParameters{MinLength: minTokens, MaxLength: maxTokens},
	}, &resp); err != nil {
		return "", err
	}

	if len(resp) == 0 || resp[0].SummaryText == "" {
		return "", fmt.Errorf("empty summarization response")
	}

	return resp[0].SummaryText, nil
}

// FineTunedScorer probes the server for the fine-tuned artifacts and, when
// present, returns a scorer bound to the fine-tuned endpoint.
func (c *InferenceClient) FineTunedScorer(artifactPath string) (Scorer, error) {
	path := "/" + strings.Trim(artifactPath, "/")

	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("probe fine-tuned artifacts: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("probe fine-tuned artifacts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fine-tuned artifacts not loadable: status %d", resp.StatusCode)
	}

	return &endpointScorer{client: c, path: path + "/zero-shot"}, nil
}

// ZeroShotScorer returns the client itself, bound to the zero-shot endpoint.
func (c *InferenceClient) ZeroShotScorer() Scorer {
	return c
}

// endpointScorer scores against an artifact-specific endpoint.
type endpointScorer struct {
	client *InferenceClient
	path   string
}

func (s *endpointScorer) Score(ctx context.Context, text string, hypotheses []string) ([]LabelScore, error) {
	return s.client.score(ctx, s.path, text, hypotheses)
}

func (c *InferenceClient) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("inference request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inference request to %s failed: status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode inference response: %w", err)
	}

	return nil
}
