// Command seed loads a CSV export of a customer-support dataset into the
// tickets table and optionally runs the summary-only annotation flow over
// the inserted rows.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fieldline/triage/internal/classifications"
	"github.com/fieldline/triage/internal/classifier"
	"github.com/fieldline/triage/internal/config"
	"github.com/fieldline/triage/internal/infrastructure"
	"github.com/fieldline/triage/internal/tickets"
	"github.com/fieldline/triage/pkg/sanitize"
)

func main() {
	var (
		file     = flag.String("file", "", "Path to the dataset CSV export")
		annotate = flag.Bool("annotate", false, "Run summary annotation over inserted tickets")
		workers  = flag.Int("workers", 4, "Concurrent annotation workers")
		limit    = flag.Int("limit", 0, "Maximum rows to insert (0 = all)")
	)
	flag.Parse()

	if *file == "" {
		log.Fatal("usage: seed -file <dataset.csv> [-annotate] [-workers N] [-limit N]")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed: ", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		log.Fatal("infrastructure init failed: ", err)
	}
	if err := infra.Start(); err != nil {
		log.Fatal("infrastructure start failed: ", err)
	}
	infra.Lifecycle.WaitForStartup()
	defer infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())

	db := infra.Database.Connection()
	sanitizer := sanitize.New(infra.Logger)
	ticketsSystem := tickets.New(db, sanitizer, infra.Logger, cfg.API.Pagination)

	ctx := infra.Lifecycle.Context()

	ids, err := insertTickets(ctx, ticketsSystem, *file, *limit)
	if err != nil {
		log.Fatal("seed failed: ", err)
	}
	infra.Logger.Info("tickets inserted", "count", len(ids))

	if !*annotate {
		return
	}

	facade, err := classifier.New(&cfg.Classifier, infra.Logger)
	if err != nil {
		log.Fatal("classifier init failed: ", err)
	}

	classificationsSystem := classifications.New(
		db,
		facade,
		ctx,
		2*cfg.Classifier.TimeoutDuration(),
		infra.Logger,
		cfg.API.Pagination,
	)

	annotated := annotateAll(ctx, infra, classificationsSystem, ids, *workers)
	infra.Logger.Info("annotation complete", "annotated", annotated, "total", len(ids))
}

func insertTickets(ctx context.Context, sys tickets.System, path string, limit int) ([]uuid.UUID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"subject", "body"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("dataset missing %q column", required)
		}
	}

	var ids []uuid.UUID
	for {
		if limit > 0 && len(ids) >= limit {
			break
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		cmd := tickets.CreateCommand{
			Subject:  field(row, col, "subject"),
			Body:     field(row, col, "body"),
			Queue:    field(row, col, "queue"),
			Language: field(row, col, "language"),
			Tags:     rowTags(row, col),
		}

		t, err := sys.Create(ctx, cmd)
		if err != nil {
			log.Printf("skipping row: %v", err)
			continue
		}
		ids = append(ids, t.ID)
	}

	return ids, nil
}

func annotateAll(
	ctx context.Context,
	infra *infrastructure.Infrastructure,
	sys classifications.System,
	ids []uuid.UUID,
	workers int,
) int64 {
	var annotated atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, id := range ids {
		g.Go(func() error {
			if _, err := sys.Annotate(ctx, id); err != nil {
				infra.Logger.Error("annotation failed", "ticket_id", id, "error", err)
				return nil
			}
			annotated.Add(1)
			return nil
		})
	}

	g.Wait()
	return annotated.Load()
}

func field(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func rowTags(row []string, col map[string]int) []string {
	var tags []string
	for i := 1; i <= 8; i++ {
		if tag := field(row, col, fmt.Sprintf("tag_%d", i)); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
