package classifications

import (
	"net/url"

	"github.com/fieldline/triage/pkg/query"
	"github.com/fieldline/triage/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "classification_results", "c").
	Project("id", "ID").
	Project("ticket_id", "TicketID").
	Project("category", "Category").
	Project("confidence_score", "ConfidenceScore").
	Project("summary", "Summary").
	Project("priority", "Priority").
	Project("model_used", "ModelUsed").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for classification queries.
// Nil fields are ignored; all use exact matching.
type Filters struct {
	Category  *string `json:"category,omitempty"`
	Priority  *string `json:"priority,omitempty"`
	ModelUsed *string `json:"model_used,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Category", f.Category).
		WhereEquals("Priority", f.Priority).
		WhereEquals("ModelUsed", f.ModelUsed)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("category"); c != "" {
		f.Category = &c
	}

	if p := values.Get("priority"); p != "" {
		f.Priority = &p
	}

	if m := values.Get("model_used"); m != "" {
		f.ModelUsed = &m
	}

	return f
}

func scanRecord(s repository.Scanner) (Record, error) {
	var rec Record
	err := s.Scan(
		&rec.ID,
		&rec.TicketID,
		&rec.Category,
		&rec.ConfidenceScore,
		&rec.Summary,
		&rec.Priority,
		&rec.ModelUsed,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	return rec, err
}
