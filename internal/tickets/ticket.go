// Package tickets implements the support-ticket domain: submission,
// validation, sanitization, and retrieval of stored tickets together with
// the AI annotation fields overlaid onto them after background
// classification completes.
package tickets

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	maxSubjectLength = 200
	maxBodyLength    = 2000
	maxTags          = 8

	defaultLanguage = "en"
)

var languageRe = regexp.MustCompile(`^[a-z]{2}$`)

// Ticket represents a stored support request. The AI fields are nil until
// background classification overlays them onto the row.
type Ticket struct {
	ID       uuid.UUID `json:"id"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	Queue    string    `json:"queue"`
	Language string    `json:"language"`
	Tags     []string  `json:"tags"`

	Category        *string  `json:"category"`
	ConfidenceScore *float64 `json:"confidence_score"`
	Summary         *string  `json:"summary"`
	Priority        *string  `json:"priority"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to submit a new ticket.
type CreateCommand struct {
	Subject  string   `json:"subject"`
	Body     string   `json:"body"`
	Queue    string   `json:"queue"`
	Language string   `json:"language"`
	Tags     []string `json:"tags"`
}

// Validate normalizes and checks the command in place. Language defaults to
// "en" when absent.
func (c *CreateCommand) Validate() error {
	c.Subject = strings.TrimSpace(c.Subject)
	c.Body = strings.TrimSpace(c.Body)
	c.Language = strings.ToLower(strings.TrimSpace(c.Language))

	if c.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrValidation)
	}
	if len(c.Subject) > maxSubjectLength {
		return fmt.Errorf("%w: subject exceeds %d characters", ErrValidation, maxSubjectLength)
	}
	if c.Body == "" {
		return fmt.Errorf("%w: body is required", ErrValidation)
	}
	if len(c.Body) > maxBodyLength {
		return fmt.Errorf("%w: body exceeds %d characters", ErrValidation, maxBodyLength)
	}

	if c.Language == "" {
		c.Language = defaultLanguage
	}
	if !languageRe.MatchString(c.Language) {
		return fmt.Errorf("%w: language must be a two-letter lowercase code", ErrValidation)
	}

	if len(c.Tags) > maxTags {
		return fmt.Errorf("%w: at most %d tags allowed", ErrValidation, maxTags)
	}

	return nil
}
