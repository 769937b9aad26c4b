// Package classifications implements persistence orchestration for AI
// classification results: each classification run writes a record row and
// overlays the AI fields onto the originating ticket in one transaction.
package classifications

import (
	"time"

	"github.com/google/uuid"
)

// Record is a stored classification result for a single ticket. A ticket
// has at most one record; re-classification replaces it in place.
type Record struct {
	ID              uuid.UUID `json:"id"`
	TicketID        uuid.UUID `json:"ticket_id"`
	Category        string    `json:"category"`
	ConfidenceScore float64   `json:"confidence_score"`
	Summary         string    `json:"summary"`
	Priority        string    `json:"priority"`
	ModelUsed       string    `json:"model_used"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
