package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/letehaha/budget-tracker-be-sub001/internal/account"
	"github.com/letehaha/budget-tracker-be-sub001/internal/apperr"
	"github.com/letehaha/budget-tracker-be-sub001/internal/database"
)

const selectAccount = `
	SELECT a.id, a.user_id, a.name, a.currency_id, c.code, a.type,
	       a.initial_balance, a.current_balance, a.ref_initial_balance, a.ref_current_balance,
	       a.credit_limit, a.ref_credit_limit, a.is_enabled, a.created_at, a.updated_at
	FROM accounts a
	JOIN currencies c ON c.id = a.currency_id`

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*account.Account, error) {
	var a account.Account

	err := row.Scan(
		&a.ID, &a.UserID, &a.Name, &a.CurrencyID, &a.CurrencyCode, &a.Type,
		&a.InitialBalance, &a.CurrentBalance, &a.RefInitialBalance, &a.RefCurrentBalance,
		&a.CreditLimit, &a.RefCreditLimit, &a.IsEnabled, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (s *Store) CreateAccount(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (
			user_id, name, currency_id, type,
			initial_balance, current_balance, ref_initial_balance, ref_current_balance,
			credit_limit, ref_credit_limit, is_enabled
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query,
		a.UserID, a.Name, a.CurrencyID, a.Type,
		a.InitialBalance, a.CurrentBalance, a.RefInitialBalance, a.RefCurrentBalance,
		a.CreditLimit, a.RefCreditLimit, a.IsEnabled,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting account: %w", err)
	}

	return nil
}

func (s *Store) getAccount(ctx context.Context, query string, userID, id uuid.UUID) (*account.Account, error) {
	a, err := scanAccount(database.Conn(ctx, s.db).QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("account %s", id)
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return a, nil
}

func (s *Store) GetAccount(ctx context.Context, userID, id uuid.UUID) (*account.Account, error) {
	return s.getAccount(ctx, selectAccount+` WHERE a.id = $1 AND a.user_id = $2`, userID, id)
}

func (s *Store) GetAccountForUpdate(ctx context.Context, userID, id uuid.UUID) (*account.Account, error) {
	return s.getAccount(ctx, selectAccount+` WHERE a.id = $1 AND a.user_id = $2 FOR UPDATE OF a`, userID, id)
}

func (s *Store) ListAccounts(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	rows, err := database.Conn(ctx, s.db).QueryContext(ctx, selectAccount+` WHERE a.user_id = $1 ORDER BY a.created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	accounts := []*account.Account{}

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts: %w", err)
	}

	return accounts, nil
}

func (s *Store) UpdateAccount(ctx context.Context, a *account.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, initial_balance = $2, current_balance = $3,
		    ref_initial_balance = $4, ref_current_balance = $5,
		    credit_limit = $6, ref_credit_limit = $7, is_enabled = $8, updated_at = NOW()
		WHERE id = $9 AND user_id = $10
		RETURNING updated_at`

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query,
		a.Name, a.InitialBalance, a.CurrentBalance,
		a.RefInitialBalance, a.RefCurrentBalance,
		a.CreditLimit, a.RefCreditLimit, a.IsEnabled,
		a.ID, a.UserID,
	).Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("account %s", a.ID)
		}

		return fmt.Errorf("updating account: %w", err)
	}

	return nil
}

func (s *Store) AddToBalance(ctx context.Context, id uuid.UUID, delta, refDelta int64) (*account.Account, error) {
	query := `
		UPDATE accounts a
		SET current_balance = a.current_balance + $1,
		    ref_current_balance = a.ref_current_balance + $2,
		    updated_at = NOW()
		FROM currencies c
		WHERE a.id = $3 AND c.id = a.currency_id
		RETURNING a.id, a.user_id, a.name, a.currency_id, c.code, a.type,
		          a.initial_balance, a.current_balance, a.ref_initial_balance, a.ref_current_balance,
		          a.credit_limit, a.ref_credit_limit, a.is_enabled, a.created_at, a.updated_at`

	a, err := scanAccount(database.Conn(ctx, s.db).QueryRowContext(ctx, query, delta, refDelta, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("account %s", id)
		}

		return nil, fmt.Errorf("adding to account balance: %w", err)
	}

	return a, nil
}

// DeleteAccount relies on ON DELETE CASCADE for transactions, refund links
// and balances. Rows on other accounts that pointed at the deleted ones are
// fixed up around the delete.
func (s *Store) DeleteAccount(ctx context.Context, userID, id uuid.UUID) error {
	conn := database.Conn(ctx, s.db)

	demote := `
		UPDATE transactions
		SET transfer_id = NULL, transfer_nature = 'not_transfer', updated_at = NOW()
		WHERE account_id <> $1 AND transfer_id IN (
			SELECT transfer_id FROM transactions WHERE account_id = $1 AND transfer_id IS NOT NULL
		)`

	if _, err := conn.ExecContext(ctx, demote, id); err != nil {
		return fmt.Errorf("demoting transfer siblings: %w", err)
	}

	partners, err := s.refundPartners(ctx, conn, id)
	if err != nil {
		return err
	}

	res, err := conn.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}

	if n == 0 {
		return apperr.NotFound("account %s", id)
	}

	recompute := `
		UPDATE transactions
		SET refund_linked = EXISTS (
			SELECT 1 FROM refund_transactions r WHERE r.original_tx_id = $1 OR r.refund_tx_id = $1
		), updated_at = NOW()
		WHERE id = $1`

	for _, txID := range partners {
		if _, err := conn.ExecContext(ctx, recompute, txID); err != nil {
			return fmt.Errorf("recomputing refund flag of %s: %w", txID, err)
		}
	}

	return nil
}

// refundPartners lists transactions on other accounts linked by a refund to
// a transaction of the account.
func (s *Store) refundPartners(ctx context.Context, conn database.Querier, accountID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT CASE WHEN o.account_id = $1 THEN r.refund_tx_id ELSE r.original_tx_id END
		FROM refund_transactions r
		JOIN transactions o ON o.id = r.original_tx_id
		JOIN transactions f ON f.id = r.refund_tx_id
		WHERE (o.account_id = $1) <> (f.account_id = $1)`

	rows, err := conn.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("listing refund partners: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID

	for rows.Next() {
		var txID uuid.UUID
		if err := rows.Scan(&txID); err != nil {
			return nil, fmt.Errorf("scanning refund partner: %w", err)
		}

		ids = append(ids, txID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating refund partners: %w", err)
	}

	return ids, nil
}
