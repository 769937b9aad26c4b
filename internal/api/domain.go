package api

import (
	"fmt"

	"github.com/fieldline/triage/internal/classifications"
	"github.com/fieldline/triage/internal/classifier"
	"github.com/fieldline/triage/internal/config"
	"github.com/fieldline/triage/internal/stats"
	"github.com/fieldline/triage/internal/tickets"
	"github.com/fieldline/triage/pkg/sanitize"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Tickets         tickets.System
	Classifications classifications.System
	Stats           stats.System
}

// NewDomain creates all domain systems from the API runtime. Classifier
// construction can fail on invalid backend configuration; that failure is
// fatal at startup rather than degraded at request time.
func NewDomain(cfg *config.Config, runtime *Runtime) (*Domain, error) {
	facade, err := classifier.New(&cfg.Classifier, runtime.Logger)
	if err != nil {
		return nil, fmt.Errorf("classifier init failed: %w", err)
	}

	db := runtime.Database.Connection()
	sanitizer := sanitize.New(runtime.Logger)

	ticketsSystem := tickets.New(db, sanitizer, runtime.Logger, runtime.Pagination)

	// Background units cover one inference round plus the write-back.
	dispatchTimeout := 2 * cfg.Classifier.TimeoutDuration()

	classificationsSystem := classifications.New(
		db,
		facade,
		runtime.Lifecycle.Context(),
		dispatchTimeout,
		runtime.Logger,
		runtime.Pagination,
	)

	statsSystem := stats.New(db, runtime.Logger)

	return &Domain{
		Tickets:         ticketsSystem,
		Classifications: classificationsSystem,
		Stats:           statsSystem,
	}, nil
}
