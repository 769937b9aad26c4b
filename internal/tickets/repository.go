package tickets

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fieldline/triage/pkg/pagination"
	"github.com/fieldline/triage/pkg/query"
	"github.com/fieldline/triage/pkg/repository"
	"github.com/fieldline/triage/pkg/sanitize"
)

type repo struct {
	db         *sql.DB
	sanitizer  *sanitize.Sanitizer
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a ticket repository implementing the System interface.
func New(
	db *sql.DB,
	sanitizer *sanitize.Sanitizer,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		sanitizer:  sanitizer,
		logger:     logger.With("system", "tickets"),
		pagination: pagination,
	}
}

func (r *repo) Handler(dispatcher Dispatcher) *Handler {
	return NewHandler(r, dispatcher, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Ticket], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Subject", "Body")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count tickets: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.Size)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanTicket)
	if err != nil {
		return nil, fmt.Errorf("query tickets: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.Size)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	t, err := repository.QueryOne(ctx, r.db, q, args, scanTicket)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &t, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Ticket, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !r.sanitizer.IsSafe(cmd.Subject) || !r.sanitizer.IsSafe(cmd.Body) {
		r.logger.Warn("unsafe content detected in ticket submission")
	}

	subject := r.sanitizer.Clean(cmd.Subject, maxSubjectLength)
	body := r.sanitizer.Clean(cmd.Body, maxBodyLength)
	if subject == "" || body == "" {
		return nil, fmt.Errorf("%w: no content remains after sanitization", ErrValidation)
	}

	tags := cmd.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	q := `
		INSERT INTO support_tickets(id, subject, body, queue, language, tags)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + insertReturning

	insertArgs := []any{
		uuid.New(),
		subject,
		body,
		cmd.Queue,
		cmd.Language,
		tagsJSON,
	}

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Ticket, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanTicket)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("ticket created", "id", t.ID, "queue", t.Queue, "language", t.Language)
	return &t, nil
}

const insertReturning = `id, subject, body, queue, language, tags, category, confidence_score, summary, priority, created_at, updated_at`
