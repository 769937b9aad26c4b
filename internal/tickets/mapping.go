package tickets

import (
	"encoding/json"
	"net/url"

	"github.com/fieldline/triage/pkg/query"
	"github.com/fieldline/triage/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "support_tickets", "t").
	Project("id", "ID").
	Project("subject", "Subject").
	Project("body", "Body").
	Project("queue", "Queue").
	Project("language", "Language").
	Project("tags", "Tags").
	Project("category", "Category").
	Project("confidence_score", "ConfidenceScore").
	Project("summary", "Summary").
	Project("priority", "Priority").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for ticket queries.
// Nil fields are ignored; both use exact matching against the AI fields.
type Filters struct {
	Category *string `json:"category,omitempty"`
	Priority *string `json:"priority,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Category", f.Category).
		WhereEquals("Priority", f.Priority)
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

	return f
}

// Tags are stored as a JSONB column; scan goes through raw bytes.
func scanTicket(s repository.Scanner) (Ticket, error) {
	var (
		t    Ticket
		tags []byte
	)

	err := s.Scan(
		&t.ID,
		&t.Subject,
		&t.Body,
		&t.Queue,
		&t.Language,
		&tags,
		&t.Category,
		&t.ConfidenceScore,
		&t.Summary,
		&t.Priority,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return t, err
	}

	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &t.Tags); err != nil {
			return t, err
		}
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}

	return t, nil
}
