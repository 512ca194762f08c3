// Package repository holds small helpers over database/sql shared by the
// Postgres-backed systems.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanFunc maps one row into T.
type ScanFunc[T any] func(Scanner) (T, error)

// Executor is satisfied by *sql.DB and *sql.Tx.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// QueryOne runs q and scans exactly one row.
func QueryOne[T any](ctx context.Context, db *sql.DB, q string, args []any, scan ScanFunc[T]) (T, error) {
	return scan(db.QueryRowContext(ctx, q, args...))
}

// QueryMany runs q and scans every row. An empty result is a non-nil empty slice.
func QueryMany[T any](ctx context.Context, db *sql.DB, q string, args []any, scan ScanFunc[T]) ([]T, error) {
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// WithTx runs fn inside a transaction, committing on success and rolling back on error.
func WithTx[T any](ctx context.Context, db *sql.DB, fn func(*sql.Tx) (T, error)) (T, error) {
	var zero T

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return zero, fmt.Errorf("begin transaction: %w", err)
	}

	v, err := fn(tx)
	if err != nil {
		_ = tx.Rollback()
		return zero, err
	}

	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("commit transaction: %w", err)
	}
	return v, nil
}

// ExecExpectOne runs q and fails with sql.ErrNoRows unless exactly one row was affected.
func ExecExpectOne(ctx context.Context, ex Executor, q string, args ...any) error {
	res, err := ex.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return sql.ErrNoRows
	}
	return nil
}

// MapError translates sql.ErrNoRows into notFound and unique violations into
// duplicate. Other errors are returned unchanged.
func MapError(err, notFound, duplicate error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return duplicate
	}
	return err
}
