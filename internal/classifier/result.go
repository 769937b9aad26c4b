// Package classifier implements AI classification of support tickets behind
// a single facade with three interchangeable backends: a remote OpenAI chat
// model, a local zero-shot NLI scorer, and a fine-tuned local model.
//
// The facade's Classify operation never returns an error: every failure path
// degrades to a fully-populated fallback Result whose ModelUsed tag records
// the degraded path for downstream analytics.
package classifier

// Category is the three-way ticket category produced by classification.
type Category string

// Priority is the three-way ticket urgency produced by classification.
type Priority string

const (
	CategoryTechnical Category = "technical"
	CategoryBilling   Category = "billing"
	CategoryGeneral   Category = "general"

	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParseCategory maps a raw label to a Category, reporting whether it is one
// of the three known values.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryTechnical, CategoryBilling, CategoryGeneral:
		return Category(s), true
	}
	return CategoryGeneral, false
}

// ParsePriority maps a raw label to a Priority, reporting whether it is one
// of the three known values.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), true
	}
	return PriorityMedium, false
}

// Model identifiers recorded in Result.ModelUsed. Fallback tags are distinct
// from success tags so degraded classifications remain distinguishable.
const (
	ModelDefaultFallback     = "default_fallback"
	ModelConfigErrorFallback = "config_error_fallback"

	ModelOpenAI              = "openai_gpt_3_5_turbo"
	ModelOpenAIEmptyFallback = "openai_gpt_fallback"
	ModelOpenAIErrorFallback = "openai_error_fallback"

	ModelZeroShot              = "huggingface_bart_mnli_distilbart_cnn"
	ModelZeroShotErrorFallback = "huggingface_error_fallback"

	ModelFineTuned              = "fine_tuned_bart"
	ModelFineTunedErrorFallback = "fine_tuned_bart_error_fallback"
)

// Result is the uniform classification contract produced by every backend.
// It is immutable once produced; Confidence is always within [0, 1].
type Result struct {
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence_score"`
	Priority   Priority `json:"priority"`
	Summary    string   `json:"summary"`
	ModelUsed  string   `json:"model_used"`
}

// Status classifies how a backend evaluation concluded.
type Status string

const (
	// StatusOK means every field was produced by the backend.
	StatusOK Status = "ok"
	// StatusPartial means one or more fields fell back to a default while
	// the rest of the result reflects genuine inference.
	StatusPartial Status = "partial"
	// StatusFailed means the whole evaluation collapsed to a fallback result.
	StatusFailed Status = "failed"
)

// Evaluation pairs a Result with an explicit outcome classification so that
// fallback behavior is testable rather than inferred from the ModelUsed tag.
// Result is always fully populated, whatever the Status.
type Evaluation struct {
	Result Result
	Status Status
	Reason string
	Err    error
}

// DefaultFallback is returned when no text is available for analysis.
// No backend is invoked on this path.
func DefaultFallback() Result {
	return Result{
		Category:   CategoryGeneral,
		Confidence: 0.5,
		Priority:   PriorityMedium,
		Summary:    "No text provided for analysis.",
		ModelUsed:  ModelDefaultFallback,
	}
}

// ConfigErrorFallback is returned if dispatch ever reaches an unconfigured
// backend. Construction validates the selector exhaustively, so this is a
// last-resort guard rather than an expected path.
func ConfigErrorFallback() Result {
	return Result{
		Category:   CategoryGeneral,
		Confidence: 0.0,
		Priority:   PriorityMedium,
		Summary:    "Invalid classifier model configured.",
		ModelUsed:  ModelConfigErrorFallback,
	}
}
