package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/letehaha/budget-tracker-be-sub001/internal/apperr"
	"github.com/letehaha/budget-tracker-be-sub001/internal/database"
	"github.com/letehaha/budget-tracker-be-sub001/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransactionColumns = `
	t.id, t.user_id, t.account_id, t.category_id, t.amount, t.ref_amount,
	t.currency_code, t.ref_currency_code, t.type, t.transfer_nature, t.transfer_id,
	t.refund_linked, t.note, t.time, t.created_at, t.updated_at
`

// scanTransaction expects the columns of selectTransactionColumns.
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr, natureStr string

	if err := s.Scan(
		&tx.ID, &tx.UserID, &tx.AccountID, &tx.CategoryID, &tx.Amount, &tx.RefAmount,
		&tx.CurrencyCode, &tx.RefCurrencyCode, &typeStr, &natureStr, &tx.TransferID,
		&tx.RefundLinked, &tx.Note, &tx.Time, &tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)
	tx.TransferNature = transaction.TransferNature(natureStr)

	return &tx, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (
			user_id, account_id, category_id, amount, ref_amount, currency_code, ref_currency_code,
			type, transfer_nature, transfer_id, refund_linked, note, time, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query,
		tx.UserID,
		tx.AccountID,
		tx.CategoryID,
		tx.Amount,
		tx.RefAmount,
		tx.CurrencyCode,
		tx.RefCurrencyCode,
		string(tx.Type),
		string(tx.TransferNature),
		tx.TransferID,
		tx.RefundLinked,
		tx.Note,
		tx.Time,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.id = $1 AND t.user_id = $2`

	tx, err := scanTransaction(database.Conn(ctx, s.db).QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("transaction %s", id)
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.user_id = $1`

	args := []any{filter.UserID}
	argIdx := 2

	if filter.AccountID != nil {
		query += fmt.Sprintf(" AND t.account_id = $%d", argIdx)

		args = append(args, *filter.AccountID)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND t.time >= $%d", argIdx)

		args = append(args, filter.Since())
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND t.time < $%d", argIdx)

		args = append(args, filter.Before())
	}

	query += " ORDER BY t.time DESC, t.created_at DESC"

	return s.queryTransactions(ctx, query, args...)
}

func (s *Store) ListByTransferID(ctx context.Context, userID, transferID uuid.UUID) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.transfer_id = $1 AND t.user_id = $2
		ORDER BY t.created_at`

	return s.queryTransactions(ctx, query, transferID, userID)
}

func (s *Store) queryTransactions(ctx context.Context, query string, args ...any) ([]*transaction.Transaction, error) {
	rows, err := database.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	txs := []*transaction.Transaction{}

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET account_id = $1, category_id = $2, amount = $3, ref_amount = $4,
		    currency_code = $5, ref_currency_code = $6, type = $7, transfer_nature = $8,
		    transfer_id = $9, refund_linked = $10, note = $11, time = $12, updated_at = NOW()
		WHERE id = $13 AND user_id = $14
		RETURNING updated_at
	`

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query,
		tx.AccountID,
		tx.CategoryID,
		tx.Amount,
		tx.RefAmount,
		tx.CurrencyCode,
		tx.RefCurrencyCode,
		string(tx.Type),
		string(tx.TransferNature),
		tx.TransferID,
		tx.RefundLinked,
		tx.Note,
		tx.Time,
		tx.ID,
		tx.UserID,
	).Scan(&tx.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("transaction %s", tx.ID)
		}

		return fmt.Errorf("updating transaction: %w", err)
	}

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	res, err := database.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}

	if n == 0 {
		return apperr.NotFound("transaction %s", id)
	}

	return nil
}

func (s *Store) CreateRefundLink(ctx context.Context, link *transaction.RefundLink) error {
	query := `
		INSERT INTO refund_transactions (original_tx_id, refund_tx_id, user_id, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query, link.OriginalTxID, link.RefundTxID, link.UserID).
		Scan(&link.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return apperr.Conflict("transaction %s is already a refund", link.RefundTxID)
		}

		return fmt.Errorf("creating refund link: %w", err)
	}

	return nil
}

func (s *Store) getRefundLink(ctx context.Context, query string, args ...any) (*transaction.RefundLink, error) {
	var link transaction.RefundLink

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query, args...).
		Scan(&link.OriginalTxID, &link.RefundTxID, &link.UserID, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("refund link")
		}

		return nil, fmt.Errorf("getting refund link: %w", err)
	}

	return &link, nil
}

func (s *Store) GetRefundLink(ctx context.Context, userID, originalTxID, refundTxID uuid.UUID) (*transaction.RefundLink, error) {
	query := `
		SELECT original_tx_id, refund_tx_id, user_id, created_at
		FROM refund_transactions
		WHERE original_tx_id = $1 AND refund_tx_id = $2 AND user_id = $3`

	return s.getRefundLink(ctx, query, originalTxID, refundTxID, userID)
}

func (s *Store) GetRefundLinkByRefund(ctx context.Context, refundTxID uuid.UUID) (*transaction.RefundLink, error) {
	query := `
		SELECT original_tx_id, refund_tx_id, user_id, created_at
		FROM refund_transactions
		WHERE refund_tx_id = $1`

	return s.getRefundLink(ctx, query, refundTxID)
}

func (s *Store) DeleteRefundLink(ctx context.Context, originalTxID, refundTxID uuid.UUID) error {
	query := `DELETE FROM refund_transactions WHERE original_tx_id = $1 AND refund_tx_id = $2`

	if _, err := database.Conn(ctx, s.db).ExecContext(ctx, query, originalTxID, refundTxID); err != nil {
		return fmt.Errorf("deleting refund link: %w", err)
	}

	return nil
}

func (s *Store) RefundedRefAmount(ctx context.Context, originalTxID uuid.UUID) (int64, error) {
	query := `
		SELECT COALESCE(SUM(ABS(t.ref_amount)), 0)
		FROM refund_transactions r
		JOIN transactions t ON t.id = r.refund_tx_id
		WHERE r.original_tx_id = $1`

	var total int64
	if err := database.Conn(ctx, s.db).QueryRowContext(ctx, query, originalTxID).Scan(&total); err != nil {
		return 0, fmt.Errorf("summing refunds: %w", err)
	}

	return total, nil
}

func (s *Store) RefundPartners(ctx context.Context, txID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT refund_tx_id FROM refund_transactions WHERE original_tx_id = $1
		UNION
		SELECT original_tx_id FROM refund_transactions WHERE refund_tx_id = $1`

	rows, err := database.Conn(ctx, s.db).QueryContext(ctx, query, txID)
	if err != nil {
		return nil, fmt.Errorf("listing refund partners: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning refund partner: %w", err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating refund partners: %w", err)
	}

	return ids, nil
}
