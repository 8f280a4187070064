// Package store is the read-only query execution port over Postgres.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/courtsidelabs/courtside/api/sqlsafe"
)

var (
	// ErrUnsafeSQL marks a statement rejected by the safety gate.
	ErrUnsafeSQL = errors.New("statement rejected by read-only safety gate")
	// ErrQueryTimeout marks an execution that exceeded the per-query budget.
	// Callers treat it distinctly: timeouts are never retried.
	ErrQueryTimeout = errors.New("query timed out")
)

// DB is the subset of pgxpool.Pool the store needs; pgxmock satisfies it too.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
}

type Store struct {
	db      DB
	timeout time.Duration
}

func New(db DB, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Store{db: db, timeout: timeout}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// QueryReadOnly executes sql inside a read-only transaction with the
// per-query timeout and returns rows as ordered field/value maps. The safety
// gate is applied unconditionally, so generated SQL cannot bypass it even on
// a retry path.
func (s *Store) QueryReadOnly(ctx context.Context, sql string, args ...any) ([]map[string]any, error) {
	if !sqlsafe.Validate(sql) {
		return nil, ErrUnsafeSQL
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, s.execError("begin read-only tx", err, ctx)
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, s.execError("query", err, ctx)
	}
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, s.execError("read row", err, ctx)
		}
		fields := rows.FieldDescriptions()
		row := make(map[string]any, len(fields))
		for i, fd := range fields {
			row[fd.Name] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, s.execError("iterate rows", err, ctx)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, s.execError("commit", err, ctx)
	}

	if out == nil {
		out = []map[string]any{}
	}
	return out, nil
}

func (s *Store) execError(op string, err error, ctx context.Context) error {
	if ctx.Err() == context.DeadlineExceeded || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, ErrQueryTimeout)
	}
	return fmt.Errorf("%s: %w", op, err)
}
