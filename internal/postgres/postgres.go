package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harkeshbirman/my-book-keeper/pkg/logger"
)

const transactionRollbackError = "error rolling back transaction"

// dbtx is satisfied by both *sql.DB and *sql.Tx so single-record operations
// can run standalone or inside a surrounding transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Postgres struct {
	DB *sql.DB
}

func New(db *sql.DB) *Postgres {
	return &Postgres{DB: db}
}

func (p *Postgres) Close() error {
	return p.DB.Close()
}

// Bootstrap creates the schema if it does not exist yet. Statements are
// idempotent, so running it on every start is safe.
func (p *Postgres) Bootstrap(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			phone TEXT NOT NULL,
			password TEXT NOT NULL,
			total_lent DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_borrowed DOUBLE PRECISION NOT NULL DEFAULT 0,
			registered_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS unpaid_transactions (
			id BIGSERIAL PRIMARY KEY,
			lender TEXT NOT NULL,
			borrower TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			repaid BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS paid_transactions (
			id BIGINT PRIMARY KEY,
			lender TEXT NOT NULL,
			borrower TEXT NOT NULL,
			repaid BOOLEAN NOT NULL DEFAULT TRUE,
			repaying_date TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := p.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error bootstrapping schema: %w", err)
		}
	}

	return nil
}

func rollback(tx *sql.Tx) {
	err := tx.Rollback()
	if err != nil {
		logger.Log.Error(transactionRollbackError, logger.Error(err))
	}
}
