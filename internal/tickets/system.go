package tickets

import (
	"context"

	"github.com/google/uuid"

	"github.com/fieldline/triage/pkg/pagination"
)

// Dispatcher schedules background classification for a stored ticket.
// Implementations return immediately; the work runs detached.
type Dispatcher interface {
	Dispatch(ticketID uuid.UUID)
}

// System defines the public contract for ticket domain operations.
type System interface {
	Handler(dispatcher Dispatcher) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Ticket], error)

	Find(ctx context.Context, id uuid.UUID) (*Ticket, error)
	Create(ctx context.Context, cmd CreateCommand) (*Ticket, error)
}
