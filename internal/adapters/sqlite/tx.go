// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/pulse/internal/logging"
	"github.com/example/pulse/internal/ports/secondary"
)

type txKey struct{}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db *sql.DB) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

// Transactor implements secondary.Transactor with database/sql transactions.
type Transactor struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTransactor creates a new SQLite transactor.
func NewTransactor(db *sql.DB, logger *zap.Logger) *Transactor {
	return &Transactor{db: db, logger: logging.OrNop(logger)}
}

// WithinTx runs fn in a transaction. A transaction already carried by ctx is
// joined rather than nested.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	err := withinTx(ctx, t.db, fn)
	if err != nil {
		t.logger.Warn("transaction rolled back", zap.Error(err))
	}
	return err
}

func withinTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// nullString maps "" to NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// timestamp returns the record's creation time, defaulting to now.
func timestamp(createdAt string) string {
	if createdAt != "" {
		return createdAt
	}
	return time.Now().UTC().Format(secondary.TimestampLayout)
}

// Ensure Transactor implements the interface
var _ secondary.Transactor = (*Transactor)(nil)
