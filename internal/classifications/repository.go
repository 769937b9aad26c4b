package classifications

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fieldline/triage/pkg/pagination"
	"github.com/fieldline/triage/pkg/query"
	"github.com/fieldline/triage/pkg/repository"
)

type repo struct {
	db         *sql.DB
	facade     Classifier
	base       context.Context
	timeout    time.Duration
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a classification repository implementing the System interface.
// base roots dispatched background work; server shutdown cancels it.
func New(
	db *sql.DB,
	facade Classifier,
	base context.Context,
	timeout time.Duration,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		facade:     facade,
		base:       base,
		timeout:    timeout,
		logger:     logger.With("system", "classifications"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Record], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Summary", "ModelUsed")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count classifications: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.Size)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("query classifications: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.Size)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Record, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rec, err := repository.QueryOne(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rec, nil
}

func (r *repo) FindByTicket(ctx context.Context, ticketID uuid.UUID) (*Record, error) {
	q, args := query.NewBuilder(projection).BuildSingle("TicketID", ticketID)

	rec, err := repository.QueryOne(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rec, nil
}

func (r *repo) ClassifyAndUpdate(ctx context.Context, ticketID uuid.UUID) (*Record, error) {
	return r.classify(ctx, ticketID, r.applyFullOverlay)
}

func (r *repo) Annotate(ctx context.Context, ticketID uuid.UUID) (*Record, error) {
	return r.classify(ctx, ticketID, r.applySummaryOverlay)
}

// Dispatch runs ClassifyAndUpdate detached from the request that triggered
// it. The work survives the request but not server shutdown.
func (r *repo) Dispatch(ticketID uuid.UUID) {
	go func() {
		ctx, cancel := context.WithTimeout(r.base, r.timeout)
		defer cancel()

		if _, err := r.ClassifyAndUpdate(ctx, ticketID); err != nil {
			r.logger.Error("background classification failed", "ticket_id", ticketID, "error", err)
			return
		}

		r.logger.Info("background classification complete", "ticket_id", ticketID)
	}()
}

type overlayFunc func(ctx context.Context, tx *sql.Tx, rec Record) error

func (r *repo) classify(ctx context.Context, ticketID uuid.UUID, overlay overlayFunc) (*Record, error) {
	var subject, body string
	err := r.db.QueryRowContext(
		ctx,
		"SELECT subject, body FROM support_tickets WHERE id = $1",
		ticketID,
	).Scan(&subject, &body)
	if err != nil {
		return nil, repository.MapError(err, ErrTicketNotFound, ErrDuplicate)
	}

	result := r.facade.Classify(ctx, body, subject)

	upsertQ := `
		INSERT INTO classification_results(
			ticket_id, category, confidence_score, summary, priority, model_used
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (ticket_id) DO UPDATE SET
			category = EXCLUDED.category,
			confidence_score = EXCLUDED.confidence_score,
			summary = EXCLUDED.summary,
			priority = EXCLUDED.priority,
			model_used = EXCLUDED.model_used,
			updated_at = NOW()
		RETURNING id, ticket_id, category, confidence_score, summary, priority,
				  model_used, created_at, updated_at`

	upsertArgs := []any{
		ticketID,
		string(result.Category),
		result.Confidence,
		result.Summary,
		string(result.Priority),
		result.ModelUsed,
	}

	rec, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Record, error) {
		stored, err := repository.QueryOne(ctx, tx, upsertQ, upsertArgs, scanRecord)
		if err != nil {
			return Record{}, fmt.Errorf("upsert classification: %w", err)
		}

		if err := overlay(ctx, tx, stored); err != nil {
			return Record{}, err
		}

		return stored, nil
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("ticket classified",
		"id", rec.ID,
		"ticket_id", ticketID,
		"category", rec.Category,
		"priority", rec.Priority,
		"model", rec.ModelUsed,
	)
	return &rec, nil
}

func (r *repo) applyFullOverlay(ctx context.Context, tx *sql.Tx, rec Record) error {
	if err := repository.ExecExpectOne(
		ctx, tx,
		`UPDATE support_tickets
		 SET category = $1, confidence_score = $2, summary = $3, priority = $4, updated_at = NOW()
		 WHERE id = $5`,
		rec.Category, rec.ConfidenceScore, rec.Summary, rec.Priority, rec.TicketID,
	); err != nil {
		return fmt.Errorf("overlay ticket fields: %w", err)
	}
	return nil
}

func (r *repo) applySummaryOverlay(ctx context.Context, tx *sql.Tx, rec Record) error {
	if err := repository.ExecExpectOne(
		ctx, tx,
		"UPDATE support_tickets SET summary = $1, updated_at = NOW() WHERE id = $2",
		rec.Summary, rec.TicketID,
	); err != nil {
		return fmt.Errorf("overlay ticket summary: %w", err)
	}
	return nil
}
