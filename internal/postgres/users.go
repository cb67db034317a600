package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harkeshbirman/my-book-keeper/internal/domain"
	"github.com/harkeshbirman/my-book-keeper/pkg/logger"
	"github.com/jackc/pgx/v5/pgconn"
)

func (p *Postgres) CreateUser(ctx context.Context, name, email, phone, hashedPassword string) (int64, error) {
	var id int64
	err := p.DB.QueryRowContext(ctx,
		"INSERT INTO users (name, email, phone, password) VALUES ($1, $2, $3, $4) RETURNING id",
		name, email, phone, hashedPassword).
		Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			logger.Log.Warn("user already exists", logger.String("email", email))
			return 0, domain.ErrUserExists
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

func (p *Postgres) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := p.DB.QueryRowContext(ctx,
		"SELECT id, name, email, phone, password, total_lent, total_borrowed, registered_at FROM users WHERE email = $1",
		email)

	return scanUser(row)
}

func (p *Postgres) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	row := p.DB.QueryRowContext(ctx,
		"SELECT id, name, email, phone, password, total_lent, total_borrowed, registered_at FROM users WHERE id = $1",
		id)

	return scanUser(row)
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.Password,
		&user.TotalLent, &user.TotalBorrowed, &user.RegisteredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	return &user, nil
}

// AdjustTotals adds the deltas to the user's running aggregates as a single
// atomic increment.
func (p *Postgres) AdjustTotals(ctx context.Context, email string, deltaLent, deltaBorrowed float64) error {
	return adjustTotals(ctx, p.DB, email, deltaLent, deltaBorrowed)
}

func adjustTotals(ctx context.Context, q dbtx, email string, deltaLent, deltaBorrowed float64) error {
	result, err := q.ExecContext(ctx,
		"UPDATE users SET total_lent = total_lent + $1, total_borrowed = total_borrowed + $2 WHERE email = $3",
		deltaLent, deltaBorrowed, email)
	if err != nil {
		return fmt.Errorf("error updating user totals: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected for totals update: %w", err)
	}
	if rowsAffected == 0 {
		logger.Log.Warn("totals update for unknown user", logger.String("email", email))
		return domain.ErrUserNotFound
	}

	return nil
}
