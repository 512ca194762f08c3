package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/image-forge/internal/batch"
	"github.com/JaimeStill/image-forge/pkg/pagination"
	"github.com/JaimeStill/image-forge/pkg/query"
	"github.com/JaimeStill/image-forge/pkg/repository"
	"github.com/google/uuid"
)

// System records and lists batch reports.
type System interface {
	batch.Sink

	Handler() *Handler

	// List returns a page of batches, newest first by default.
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Batch], error)

	// Find returns one batch with its per-file outcomes.
	Find(ctx context.Context, id uuid.UUID) (*Batch, error)
}

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a Postgres-backed history system.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "history"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

const insertBatch = `
INSERT INTO batches (id, operation, total, succeeded, failed, started_at, finished_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const insertFile = `
INSERT INTO batch_files (batch_id, position, source, outputs, error)
VALUES ($1, $2, $3, $4::jsonb, $5)`

func (r *repo) Deliver(ctx context.Context, report *batch.Report) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx, insertBatch,
			report.ID,
			report.Operation,
			report.Total(),
			len(report.Successes),
			len(report.Failures),
			report.StartedAt,
			report.FinishedAt,
		); err != nil {
			return struct{}{}, err
		}

		for i, f := range filesOf(report) {
			outputs, err := json.Marshal(f.Outputs)
			if err != nil {
				return struct{}{}, err
			}

			var msg *string
			if f.Error != "" {
				msg = &f.Error
			}

			if _, err := tx.ExecContext(ctx, insertFile, report.ID, i, f.Source, string(outputs), msg); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})

	if err != nil {
		return fmt.Errorf("record batch %s: %w", report.ID, repository.MapError(err, ErrNotFound, ErrDuplicate))
	}

	r.logger.Debug("batch recorded", "id", report.ID, "files", report.Total())
	return nil
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Batch], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count batches: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	batches, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanBatch)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}

	result := pagination.NewPageResult(batches, total, page.Page, page.PageSize)
	return &result, nil
}

const selectFiles = `
SELECT source, outputs, COALESCE(error, '')
FROM batch_files
WHERE batch_id = $1
ORDER BY position`

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Batch, error) {
	q, args := query.NewBuilder(projection, defaultSort).BuildSingle("ID", id)
	b, err := repository.QueryOne(ctx, r.db, q, args, scanBatch)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	files, err := repository.QueryMany(ctx, r.db, selectFiles, []any{id}, scanFile)
	if err != nil {
		return nil, fmt.Errorf("query batch files: %w", err)
	}
	b.Files = files

	return &b, nil
}

func scanFile(s repository.Scanner) (File, error) {
	var f File
	var outputs []byte
	if err := s.Scan(&f.Source, &outputs, &f.Error); err != nil {
		return f, err
	}
	if err := json.Unmarshal(outputs, &f.Outputs); err != nil {
		return f, fmt.Errorf("decode outputs: %w", err)
	}
	return f, nil
}

// filesOf flattens a report into rows: successes first, then failures, each
// in completion order.
func filesOf(report *batch.Report) []File {
	files := make([]File, 0, report.Total())
	for _, s := range report.Successes {
		outputs := s.Outputs
		if outputs == nil {
			outputs = []string{}
		}
		files = append(files, File{Source: s.Source, Outputs: outputs})
	}
	for _, f := range report.Failures {
		files = append(files, File{Source: f.Source, Outputs: []string{}, Error: f.Message})
	}
	return files
}
