package memstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letehaha/budget-tracker-be-sub001/internal/account"
	"github.com/letehaha/budget-tracker-be-sub001/internal/apperr"
	"github.com/letehaha/budget-tracker-be-sub001/internal/balance"
	"github.com/letehaha/budget-tracker-be-sub001/internal/currency"
	"github.com/letehaha/budget-tracker-be-sub001/internal/memstore"
	"github.com/letehaha/budget-tracker-be-sub001/internal/transaction"
)

var (
	_ currency.Repository    = (*memstore.Store)(nil)
	_ account.Repository     = (*memstore.Store)(nil)
	_ balance.Repository     = (*memstore.Store)(nil)
	_ transaction.Repository = (*memstore.Store)(nil)
)

func TestStore_WithinTx_RollsBack(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()
	userID := uuid.New()

	acc := &account.Account{UserID: userID, Name: "Wallet", CurrencyCode: "EUR", Type: account.TypeSystem}
	require.NoError(t, s.CreateAccount(ctx, acc))

	errBoom := errors.New("boom")

	err := s.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.AddToBalance(ctx, acc.ID, 500, 500); err != nil {
			return err
		}

		return s.WithinTx(ctx, func(ctx context.Context) error {
			if err := s.SaveBalance(ctx, &balance.Balance{AccountID: acc.ID, Date: time.Now(), Amount: 500}); err != nil {
				return err
			}

			return errBoom
		})
	})
	require.ErrorIs(t, err, errBoom)

	got, err := s.GetAccount(ctx, userID, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.CurrentBalance)

	rows, err := s.ListBalances(ctx, acc.ID, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStore_WithinTx_Commits(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()
	userID := uuid.New()

	acc := &account.Account{UserID: userID, Name: "Wallet", CurrencyCode: "EUR", Type: account.TypeSystem}
	require.NoError(t, s.CreateAccount(ctx, acc))

	require.NoError(t, s.WithinTx(ctx, func(ctx context.Context) error {
		_, err := s.AddToBalance(ctx, acc.ID, -250, -250)
		return err
	}))

	got, err := s.GetAccount(ctx, userID, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-250), got.CurrentBalance)
}

func TestStore_GetDailyRate(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	require.NoError(t, s.UpsertDailyRates(ctx, []currency.Rate{
		{BaseCode: "USD", QuoteCode: "EUR", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Rate: decimal.RequireFromString("0.9")},
		{BaseCode: "USD", QuoteCode: "EUR", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Rate: decimal.RequireFromString("0.95")},
	}))

	rate, err := s.GetDailyRate(ctx, "USD", "EUR", time.Date(2024, 1, 20, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.9")))

	rate, err = s.GetDailyRate(ctx, "USD", "EUR", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.95")))

	_, err = s.GetDailyRate(ctx, "USD", "EUR", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, currency.ErrRateNotFound)
}

func TestStore_DeleteAccount_Cascades(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()
	userID := uuid.New()

	doomed := &account.Account{UserID: userID, Name: "Old", Type: account.TypeSystem}
	kept := &account.Account{UserID: userID, Name: "Main", Type: account.TypeSystem}
	require.NoError(t, s.CreateAccount(ctx, doomed))
	require.NoError(t, s.CreateAccount(ctx, kept))

	transferID := uuid.New()
	out := &transaction.Transaction{UserID: userID, AccountID: doomed.ID, Amount: 100, Type: transaction.TypeExpense,
		TransferNature: transaction.NatureCommonTransfer, TransferID: &transferID}
	in := &transaction.Transaction{UserID: userID, AccountID: kept.ID, Amount: 100, Type: transaction.TypeIncome,
		TransferNature: transaction.NatureCommonTransfer, TransferID: &transferID}
	original := &transaction.Transaction{UserID: userID, AccountID: kept.ID, Amount: 300, RefAmount: 300,
		Type: transaction.TypeExpense, TransferNature: transaction.NatureNotTransfer, RefundLinked: true}
	refund := &transaction.Transaction{UserID: userID, AccountID: doomed.ID, Amount: 50, RefAmount: 50,
		Type: transaction.TypeIncome, TransferNature: transaction.NatureNotTransfer, RefundLinked: true}

	for _, tx := range []*transaction.Transaction{out, in, original, refund} {
		require.NoError(t, s.CreateTransaction(ctx, tx))
	}

	require.NoError(t, s.CreateRefundLink(ctx, &transaction.RefundLink{
		OriginalTxID: original.ID, RefundTxID: refund.ID, UserID: userID,
	}))
	require.NoError(t, s.SaveBalance(ctx, &balance.Balance{AccountID: doomed.ID, Date: time.Now(), Amount: 10}))

	require.NoError(t, s.DeleteAccount(ctx, userID, doomed.ID))

	_, err := s.GetAccount(ctx, userID, doomed.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = s.GetTransaction(ctx, userID, out.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	sibling, err := s.GetTransaction(ctx, userID, in.ID)
	require.NoError(t, err)
	assert.Equal(t, transaction.NatureNotTransfer, sibling.TransferNature)
	assert.Nil(t, sibling.TransferID)

	orig, err := s.GetTransaction(ctx, userID, original.ID)
	require.NoError(t, err)
	assert.False(t, orig.RefundLinked)

	rows, err := s.ListBalances(ctx, doomed.ID, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStore_ListTransactions_DateRange(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()
	userID := uuid.New()

	acc := &account.Account{UserID: userID, Name: "Wallet", CurrencyCode: "EUR", Type: account.TypeSystem}
	require.NoError(t, s.CreateAccount(ctx, acc))

	for _, at := range []time.Time{
		time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 2, 18, 30, 0, 0, time.UTC),
		time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
	} {
		require.NoError(t, s.CreateTransaction(ctx, &transaction.Transaction{
			UserID: userID, AccountID: acc.ID, Amount: 100, Type: transaction.TypeExpense, Time: at,
		}))
	}

	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	txs, err := s.ListTransactions(ctx, transaction.ListFilter{UserID: userID, StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, 2, txs[0].Time.Day())
	assert.Equal(t, 1, txs[1].Time.Day())
}
