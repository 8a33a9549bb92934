package store_test

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letehaha/budget-tracker-be-sub001/internal/apperr"
	"github.com/letehaha/budget-tracker-be-sub001/internal/transaction"
	"github.com/letehaha/budget-tracker-be-sub001/internal/transaction/store"
)

var transactionColumns = []string{
	"id", "user_id", "account_id", "category_id", "amount", "ref_amount",
	"currency_code", "ref_currency_code", "type", "transfer_nature", "transfer_id",
	"refund_linked", "note", "time", "created_at", "updated_at",
}

func TestStore_GetTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	userID := uuid.New()
	id := uuid.New()
	accountID := uuid.New()
	transferID := uuid.New()
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery("FROM transactions t WHERE t.id = \\$1 AND t.user_id = \\$2").
		WithArgs(id, userID).
		WillReturnRows(sqlmock.NewRows(transactionColumns).AddRow(
			id.String(), userID.String(), accountID.String(), nil, int64(2500), int64(2300),
			"USD", "EUR", "expense", "common_transfer", transferID.String(),
			false, "rent", at, at, at,
		))

	tx, err := store.New(db).GetTransaction(context.Background(), userID, id)
	require.NoError(t, err)
	assert.Equal(t, transaction.TypeExpense, tx.Type)
	assert.Equal(t, transaction.NatureCommonTransfer, tx.TransferNature)
	require.NotNil(t, tx.TransferID)
	assert.Equal(t, transferID, *tx.TransferID)
	assert.Nil(t, tx.CategoryID)
	assert.Equal(t, int64(2300), tx.RefAmount)

	mock.ExpectQuery("FROM transactions t").
		WithArgs(id, userID).
		WillReturnRows(sqlmock.NewRows(transactionColumns))

	_, err = store.New(db).GetTransaction(context.Background(), userID, id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListTransactions(t *testing.T) {
	userID := uuid.New()
	accountID := uuid.New()
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	midday := start.Add(12 * time.Hour)
	end := time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter transaction.ListFilter
		query  string
		args   []driver.Value
	}{
		{
			name:   "UserOnly",
			filter: transaction.ListFilter{UserID: userID},
			query:  "WHERE t.user_id = \\$1 ORDER BY t.time DESC",
			args:   []driver.Value{userID},
		},
		{
			name:   "AccountAndStart",
			filter: transaction.ListFilter{UserID: userID, AccountID: &accountID, StartDate: &start},
			query:  "WHERE t.user_id = \\$1 AND t.account_id = \\$2 AND t.time >= \\$3 ORDER BY",
			args:   []driver.Value{userID, accountID, start},
		},
		{
			name:   "EndDateCoversWholeDay",
			filter: transaction.ListFilter{UserID: userID, StartDate: &midday, EndDate: &end},
			query:  "WHERE t.user_id = \\$1 AND t.time >= \\$2 AND t.time < \\$3 ORDER BY",
			args:   []driver.Value{userID, start, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(tt.query).
				WithArgs(tt.args...).
				WillReturnRows(sqlmock.NewRows(transactionColumns))

			txs, err := store.New(db).ListTransactions(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Empty(t, txs)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_CreateRefundLink_Conflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	link := &transaction.RefundLink{OriginalTxID: uuid.New(), RefundTxID: uuid.New(), UserID: uuid.New()}

	mock.ExpectQuery("INSERT INTO refund_transactions").
		WithArgs(link.OriginalTxID, link.RefundTxID, link.UserID).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})

	err = store.New(db).CreateRefundLink(context.Background(), link)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_RefundedRefAmount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	original := uuid.New()

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(ABS\\(t.ref_amount\\)\\), 0\\) FROM refund_transactions r").
		WithArgs(original).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(int64(750)))

	total, err := store.New(db).RefundedRefAmount(context.Background(), original)
	require.NoError(t, err)
	assert.Equal(t, int64(750), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteTransaction_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()

	mock.ExpectExec("DELETE FROM transactions WHERE id = \\$1").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = store.New(db).DeleteTransaction(context.Background(), id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
