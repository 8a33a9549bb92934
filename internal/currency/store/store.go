package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/letehaha/budget-tracker-be-sub001/internal/apperr"
	"github.com/letehaha/budget-tracker-be-sub001/internal/currency"
	"github.com/letehaha/budget-tracker-be-sub001/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) getCurrency(ctx context.Context, query string, arg any) (*currency.Currency, error) {
	var c currency.Currency

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query, arg).Scan(&c.ID, &c.Code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("currency %v", arg)
		}

		return nil, fmt.Errorf("getting currency: %w", err)
	}

	return &c, nil
}

func (s *Store) GetCurrencyByID(ctx context.Context, id int64) (*currency.Currency, error) {
	return s.getCurrency(ctx, `SELECT id, code FROM currencies WHERE id = $1`, id)
}

func (s *Store) GetCurrencyByCode(ctx context.Context, code string) (*currency.Currency, error) {
	return s.getCurrency(ctx, `SELECT id, code FROM currencies WHERE code = $1`, code)
}

func (s *Store) GetDefaultCurrency(ctx context.Context, userID uuid.UUID) (*currency.Currency, error) {
	query := `
		SELECT c.id, c.code
		FROM user_currencies uc
		JOIN currencies c ON c.id = uc.currency_id
		WHERE uc.user_id = $1 AND uc.is_default
	`

	var c currency.Currency

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query, userID).Scan(&c.ID, &c.Code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("default currency for user %s", userID)
		}

		return nil, fmt.Errorf("getting default currency: %w", err)
	}

	return &c, nil
}

func (s *Store) GetUserRate(ctx context.Context, userID uuid.UUID, base, quote string) (decimal.Decimal, error) {
	query := `
		SELECT rate
		FROM user_exchange_rates
		WHERE user_id = $1 AND base_code = $2 AND quote_code = $3
	`

	return s.rate(ctx, query, userID, base, quote)
}

func (s *Store) GetDailyRate(ctx context.Context, base, quote string, date time.Time) (decimal.Decimal, error) {
	query := `
		SELECT rate
		FROM exchange_rates
		WHERE base_code = $1 AND quote_code = $2 AND date <= $3
		ORDER BY date DESC
		LIMIT 1
	`

	return s.rate(ctx, query, base, quote, date.UTC().Format(time.DateOnly))
}

func (s *Store) rate(ctx context.Context, query string, args ...any) (decimal.Decimal, error) {
	var rate decimal.Decimal

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query, args...).Scan(&rate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, currency.ErrRateNotFound
		}

		return decimal.Zero, fmt.Errorf("getting exchange rate: %w", err)
	}

	return rate, nil
}

// UpsertDailyRates writes rates in one transaction; an existing rate for
// the same pair and day is replaced.
func (s *Store) UpsertDailyRates(ctx context.Context, rates []currency.Rate) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO exchange_rates (base_code, quote_code, date, rate)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (base_code, quote_code, date) DO UPDATE SET rate = EXCLUDED.rate
	`

	for _, r := range rates {
		if _, err := dbTx.ExecContext(ctx, query,
			r.BaseCode, r.QuoteCode, r.Date.UTC().Format(time.DateOnly), r.Rate,
		); err != nil {
			return fmt.Errorf("upserting rate %s/%s: %w", r.BaseCode, r.QuoteCode, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
