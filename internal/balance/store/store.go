package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/letehaha/budget-tracker-be-sub001/internal/apperr"
	"github.com/letehaha/budget-tracker-be-sub001/internal/balance"
	"github.com/letehaha/budget-tracker-be-sub001/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func day(t time.Time) string {
	return balance.StartOfDay(t).Format(time.DateOnly)
}

func (s *Store) getOne(ctx context.Context, query string, accountID uuid.UUID, date time.Time) (*balance.Balance, error) {
	var b balance.Balance

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query, accountID, day(date)).
		Scan(&b.AccountID, &b.Date, &b.Amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("balance for account %s near %s", accountID, day(date))
		}

		return nil, fmt.Errorf("getting balance: %w", err)
	}

	b.Date = balance.StartOfDay(b.Date)

	return &b, nil
}

func (s *Store) GetBalance(ctx context.Context, accountID uuid.UUID, date time.Time) (*balance.Balance, error) {
	query := `
		SELECT account_id, date, amount
		FROM balances
		WHERE account_id = $1 AND date = $2`

	return s.getOne(ctx, query, accountID, date)
}

func (s *Store) LatestBefore(ctx context.Context, accountID uuid.UUID, date time.Time) (*balance.Balance, error) {
	query := `
		SELECT account_id, date, amount
		FROM balances
		WHERE account_id = $1 AND date < $2
		ORDER BY date DESC
		LIMIT 1`

	return s.getOne(ctx, query, accountID, date)
}

func (s *Store) EarliestPositiveAfter(ctx context.Context, accountID uuid.UUID, date time.Time) (*balance.Balance, error) {
	query := `
		SELECT account_id, date, amount
		FROM balances
		WHERE account_id = $1 AND date > $2 AND amount > 0
		ORDER BY date ASC
		LIMIT 1`

	return s.getOne(ctx, query, accountID, date)
}

func (s *Store) ListBalances(ctx context.Context, accountID uuid.UUID, from, to *time.Time) ([]*balance.Balance, error) {
	query := `
		SELECT account_id, date, amount
		FROM balances
		WHERE account_id = $1`

	args := []any{accountID}
	argIdx := 2

	if from != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, day(*from))
		argIdx++
	}

	if to != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, day(*to))
	}

	query += " ORDER BY date ASC"

	rows, err := database.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing balances: %w", err)
	}
	defer rows.Close()

	balances := []*balance.Balance{}

	for rows.Next() {
		var b balance.Balance
		if err := rows.Scan(&b.AccountID, &b.Date, &b.Amount); err != nil {
			return nil, fmt.Errorf("scanning balance: %w", err)
		}

		b.Date = balance.StartOfDay(b.Date)
		balances = append(balances, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating balances: %w", err)
	}

	return balances, nil
}

func (s *Store) SaveBalance(ctx context.Context, b *balance.Balance) error {
	query := `
		INSERT INTO balances (account_id, date, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id, date) DO UPDATE SET amount = EXCLUDED.amount`

	if _, err := database.Conn(ctx, s.db).ExecContext(ctx, query, b.AccountID, day(b.Date), b.Amount); err != nil {
		return fmt.Errorf("saving balance: %w", err)
	}

	return nil
}

func (s *Store) ShiftAfter(ctx context.Context, accountID uuid.UUID, date time.Time, delta int64) error {
	query := `UPDATE balances SET amount = amount + $1 WHERE account_id = $2 AND date > $3`

	if _, err := database.Conn(ctx, s.db).ExecContext(ctx, query, delta, accountID, day(date)); err != nil {
		return fmt.Errorf("shifting balances after %s: %w", day(date), err)
	}

	return nil
}

func (s *Store) ShiftAll(ctx context.Context, accountID uuid.UUID, delta int64) error {
	query := `UPDATE balances SET amount = amount + $1 WHERE account_id = $2`

	if _, err := database.Conn(ctx, s.db).ExecContext(ctx, query, delta, accountID); err != nil {
		return fmt.Errorf("shifting balances: %w", err)
	}

	return nil
}
