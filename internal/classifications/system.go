package classifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/fieldline/triage/internal/classifier"
	"github.com/fieldline/triage/pkg/pagination"
)

// Classifier is the slice of the classification facade this module needs.
// Classify never fails; degraded runs surface as fallback-tagged results.
type Classifier interface {
	Classify(ctx context.Context, body, subject string) classifier.Result
}

// System defines the public contract for classification domain operations.
// ClassifyAndUpdate and Annotate surface persistence errors to the caller;
// only inference failures are absorbed into fallback results.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Record], error)

	Find(ctx context.Context, id uuid.UUID) (*Record, error)
	FindByTicket(ctx context.Context, ticketID uuid.UUID) (*Record, error)

	// ClassifyAndUpdate classifies the ticket and commits the record plus
	// the full AI overlay on the ticket row in one transaction.
	ClassifyAndUpdate(ctx context.Context, ticketID uuid.UUID) (*Record, error)

	// Annotate classifies the ticket but overlays only the summary onto the
	// ticket row. Used by the bulk seeding flow.
	Annotate(ctx context.Context, ticketID uuid.UUID) (*Record, error)

	// Dispatch schedules ClassifyAndUpdate as detached background work with
	// its own timeout-bounded context. Failures are logged, never returned.
	Dispatch(ticketID uuid.UUID)
}
