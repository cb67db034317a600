package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harkeshbirman/my-book-keeper/internal/domain"
	"github.com/harkeshbirman/my-book-keeper/pkg/logger"
)

func (p *Postgres) CreateUnpaid(ctx context.Context, lender, borrower string, amount float64) (*domain.UnpaidTransaction, error) {
	return createUnpaid(ctx, p.DB, lender, borrower, amount)
}

func createUnpaid(ctx context.Context, q dbtx, lender, borrower string, amount float64) (*domain.UnpaidTransaction, error) {
	row := q.QueryRowContext(ctx,
		"INSERT INTO unpaid_transactions (lender, borrower, amount) VALUES ($1, $2, $3) RETURNING id, lender, borrower, amount, repaid, created_at",
		lender, borrower, amount)

	var txn domain.UnpaidTransaction
	err := row.Scan(&txn.ID, &txn.Lender, &txn.Borrower, &txn.Amount, &txn.Repaid, &txn.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating unpaid transaction: %w", err)
	}

	return &txn, nil
}

func (p *Postgres) UnpaidForUser(ctx context.Context, email string) ([]domain.UnpaidTransaction, error) {
	rows, err := p.DB.QueryContext(ctx,
		"SELECT id, lender, borrower, amount, repaid, created_at FROM unpaid_transactions WHERE lender = $1 OR borrower = $1 ORDER BY created_at",
		email)
	if err != nil {
		return nil, fmt.Errorf("error fetching unpaid transactions: %w", err)
	}
	defer closeRows(rows)

	var txns []domain.UnpaidTransaction
	for rows.Next() {
		var txn domain.UnpaidTransaction
		err := rows.Scan(&txn.ID, &txn.Lender, &txn.Borrower, &txn.Amount, &txn.Repaid, &txn.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning unpaid transaction: %w", err)
		}
		txns = append(txns, txn)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over unpaid transactions: %w", err)
	}

	return txns, nil
}

func (p *Postgres) PaidForUser(ctx context.Context, email string) ([]domain.PaidTransaction, error) {
	rows, err := p.DB.QueryContext(ctx,
		"SELECT id, lender, borrower, repaid, repaying_date FROM paid_transactions WHERE lender = $1 OR borrower = $1 ORDER BY repaying_date",
		email)
	if err != nil {
		return nil, fmt.Errorf("error fetching paid transactions: %w", err)
	}
	defer closeRows(rows)

	var txns []domain.PaidTransaction
	for rows.Next() {
		var txn domain.PaidTransaction
		err := rows.Scan(&txn.ID, &txn.Lender, &txn.Borrower, &txn.Repaid, &txn.RepayingDate)
		if err != nil {
			return nil, fmt.Errorf("error scanning paid transaction: %w", err)
		}
		txns = append(txns, txn)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over paid transactions: %w", err)
	}

	return txns, nil
}

// DeleteUnpaid removes the unpaid record by id and returns it. The delete is
// the atomic claim on the record: under concurrent repays only one caller gets
// the row back, the other sees ErrTransactionNotFound.
func (p *Postgres) DeleteUnpaid(ctx context.Context, id int64) (*domain.UnpaidTransaction, error) {
	return deleteUnpaid(ctx, p.DB, id)
}

func deleteUnpaid(ctx context.Context, q dbtx, id int64) (*domain.UnpaidTransaction, error) {
	row := q.QueryRowContext(ctx,
		"DELETE FROM unpaid_transactions WHERE id = $1 RETURNING id, lender, borrower, amount, repaid, created_at",
		id)

	var txn domain.UnpaidTransaction
	err := row.Scan(&txn.ID, &txn.Lender, &txn.Borrower, &txn.Amount, &txn.Repaid, &txn.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("error deleting unpaid transaction: %w", err)
	}

	return &txn, nil
}

func (p *Postgres) CreatePaid(ctx context.Context, id int64, lender, borrower string) (*domain.PaidTransaction, error) {
	return createPaid(ctx, p.DB, id, lender, borrower)
}

func createPaid(ctx context.Context, q dbtx, id int64, lender, borrower string) (*domain.PaidTransaction, error) {
	row := q.QueryRowContext(ctx,
		"INSERT INTO paid_transactions (id, lender, borrower) VALUES ($1, $2, $3) RETURNING id, lender, borrower, repaid, repaying_date",
		id, lender, borrower)

	var txn domain.PaidTransaction
	err := row.Scan(&txn.ID, &txn.Lender, &txn.Borrower, &txn.Repaid, &txn.RepayingDate)
	if err != nil {
		return nil, fmt.Errorf("error creating paid transaction: %w", err)
	}

	return &txn, nil
}

// CreateTransaction records a new loan: both parties' totals and the unpaid
// record move together in one transaction.
func (p *Postgres) CreateTransaction(ctx context.Context, lender, borrower string, amount float64) (*domain.UnpaidTransaction, error) {
	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	if err = adjustTotals(ctx, tx, lender, amount, 0); err != nil {
		rollback(tx)
		return nil, err
	}

	if err = adjustTotals(ctx, tx, borrower, 0, amount); err != nil {
		rollback(tx)
		return nil, err
	}

	txn, err := createUnpaid(ctx, tx, lender, borrower, amount)
	if err != nil {
		rollback(tx)
		return nil, err
	}

	err = tx.Commit()
	if err != nil {
		rollback(tx)
		logger.Log.Error("error committing transaction for loan creation",
			logger.String("lender", lender), logger.String("borrower", borrower),
			logger.Float64("amount", amount), logger.Error(err))
		return nil, fmt.Errorf("error committing transaction for loan creation: %w", err)
	}

	return txn, nil
}

// RepayTransaction settles an unpaid record: removes it, reverses both
// parties' totals by its amount and writes the paid record under the same id,
// all in one transaction.
func (p *Postgres) RepayTransaction(ctx context.Context, id int64) (*domain.PaidTransaction, error) {
	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	unpaid, err := deleteUnpaid(ctx, tx, id)
	if err != nil {
		rollback(tx)
		return nil, err
	}

	if err = adjustTotals(ctx, tx, unpaid.Lender, -unpaid.Amount, 0); err != nil {
		rollback(tx)
		return nil, err
	}

	if err = adjustTotals(ctx, tx, unpaid.Borrower, 0, -unpaid.Amount); err != nil {
		rollback(tx)
		return nil, err
	}

	paid, err := createPaid(ctx, tx, unpaid.ID, unpaid.Lender, unpaid.Borrower)
	if err != nil {
		rollback(tx)
		return nil, err
	}

	err = tx.Commit()
	if err != nil {
		rollback(tx)
		logger.Log.Error("error committing transaction for repayment",
			logger.Int64("transaction_id", id), logger.Error(err))
		return nil, fmt.Errorf("error committing transaction for repayment: %w", err)
	}

	return paid, nil
}

func closeRows(rows *sql.Rows) {
	err := rows.Close()
	if err != nil {
		logger.Log.Error("error closing rows", logger.Error(err))
	}
}
