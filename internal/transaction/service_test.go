package transaction_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/letehaha/budget-tracker-be-sub001/internal/account"
	"github.com/letehaha/budget-tracker-be-sub001/internal/apperr"
	"github.com/letehaha/budget-tracker-be-sub001/internal/balance"
	"github.com/letehaha/budget-tracker-be-sub001/internal/currency"
	"github.com/letehaha/budget-tracker-be-sub001/internal/transaction"
)

var (
	userID    = uuid.MustParse("7f3e2d1c-0b9a-4876-8543-210fedcba901")
	accountID = uuid.MustParse("1a2b3c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d")
	otherID   = uuid.MustParse("fedcba98-7654-4321-8fed-cba987654321")
	errBoom   = errors.New("boom")
)

type mocks struct {
	repo      *transaction.MockRepository
	accounts  *transaction.MockAccounts
	converter *transaction.MockConverter
	history   *transaction.MockHistory
	tx        *transaction.MockTransactor
}

func newService(t *testing.T) (*transaction.Service, mocks) {
	ctrl := gomock.NewController(t)

	m := mocks{
		repo:      transaction.NewMockRepository(ctrl),
		accounts:  transaction.NewMockAccounts(ctrl),
		converter: transaction.NewMockConverter(ctrl),
		history:   transaction.NewMockHistory(ctrl),
		tx:        transaction.NewMockTransactor(ctrl),
	}

	m.tx.EXPECT().
		WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).
		AnyTimes()

	return transaction.NewService(m.repo, m.accounts, m.converter, m.history, m.tx, nil), m
}

func wallet(t account.Type) *account.Account {
	return &account.Account{
		ID:                accountID,
		UserID:            userID,
		Name:              "Wallet",
		CurrencyCode:      "EUR",
		Type:              t,
		InitialBalance:    1000,
		CurrentBalance:    1000,
		RefInitialBalance: 1000,
		RefCurrentBalance: 1000,
	}
}

func eur() *currency.Currency {
	return &currency.Currency{ID: 1, Code: "EUR"}
}

func TestService_Create(t *testing.T) {
	type args struct {
		params transaction.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m mocks)
		wantErr   error
	}

	expense := transaction.CreateParams{
		UserID:    userID,
		AccountID: accountID,
		Amount:    500,
		Type:      transaction.TypeExpense,
		Note:      "groceries",
		Time:      march(2),
	}

	// expectPriced covers the lookups every ordinary create makes before persisting.
	expectPriced := func(m mocks, acc *account.Account) {
		m.accounts.EXPECT().Get(gomock.Any(), userID, accountID).Return(acc, nil)
		m.converter.EXPECT().DefaultCurrency(gomock.Any(), userID).Return(eur(), nil)
		m.converter.EXPECT().
			CalculateRefAmount(gomock.Any(), currency.RefAmountParams{
				Amount: 500,
				UserID: userID,
				Date:   march(2),
				Base:   currency.ByCode("EUR"),
			}).
			Return(int64(500), nil)
		m.repo.EXPECT().
			CreateTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
				tx.ID = otherID
				return nil
			})
	}

	delta := account.DeltaParams{
		AccountID: accountID,
		UserID:    userID,
		Amount:    -500,
		RefAmount: -500,
	}

	tests := []testCase{
		{
			name: "RecordsDelta",
			args: args{params: expense},
			setupMock: func(m mocks) {
				expectPriced(m, wallet(account.TypeSystem))

				after := wallet(account.TypeSystem)
				after.CurrentBalance, after.RefCurrentBalance = 500, 500

				m.accounts.EXPECT().ApplyBalanceDelta(gomock.Any(), delta).Return(after, nil)
				m.history.EXPECT().
					UpsertDailyDelta(gomock.Any(), balance.DeltaParams{
						AccountID: accountID,
						Date:      march(2),
						Amount:    -500,
						Base:      1000,
					}).
					Return(nil)
			},
		},
		{
			name: "ExternalAccountSnapshots",
			args: args{params: expense},
			setupMock: func(m mocks) {
				expectPriced(m, wallet(account.TypeExternal))

				m.accounts.EXPECT().ApplyBalanceDelta(gomock.Any(), delta).Return(wallet(account.TypeExternal), nil)
				m.history.EXPECT().
					UpsertDailySnapshot(gomock.Any(), balance.SnapshotParams{
						AccountID: accountID,
						Date:      march(2),
						Amount:    1000,
					}).
					Return(nil)
			},
		},
		{
			name: "HistoryFails",
			args: args{params: expense},
			setupMock: func(m mocks) {
				expectPriced(m, wallet(account.TypeSystem))

				m.accounts.EXPECT().ApplyBalanceDelta(gomock.Any(), delta).Return(wallet(account.TypeSystem), nil)
				m.history.EXPECT().UpsertDailyDelta(gomock.Any(), gomock.Any()).Return(errBoom)
			},
			wantErr: errBoom,
		},
		{
			name: "AccountVanished",
			args: args{params: expense},
			setupMock: func(m mocks) {
				expectPriced(m, wallet(account.TypeSystem))

				m.accounts.EXPECT().ApplyBalanceDelta(gomock.Any(), delta).Return(nil, nil)
			},
			wantErr: apperr.ErrUnexpected,
		},
		{
			name: "AccountNotFound",
			args: args{params: expense},
			setupMock: func(m mocks) {
				m.accounts.EXPECT().Get(gomock.Any(), userID, accountID).Return(nil, apperr.NotFound("account"))
			},
			wantErr: apperr.ErrNotFound,
		},
		{
			name: "ZeroAmount",
			args: args{params: transaction.CreateParams{
				UserID: userID, AccountID: accountID, Type: transaction.TypeExpense,
			}},
			setupMock: func(m mocks) {},
			wantErr:   apperr.ErrValidation,
		},
		{
			name: "UnknownType",
			args: args{params: transaction.CreateParams{
				UserID: userID, AccountID: accountID, Amount: 1, Type: "gift",
			}},
			setupMock: func(m mocks) {},
			wantErr:   apperr.ErrValidation,
		},
		{
			name: "TransferWithoutDestination",
			args: args{params: transaction.CreateParams{
				UserID: userID, AccountID: accountID, Amount: 1, TransferNature: transaction.NatureCommonTransfer,
			}},
			setupMock: func(m mocks) {},
			wantErr:   apperr.ErrValidation,
		},
		{
			name: "TransferToSameAccount",
			args: args{params: transaction.CreateParams{
				UserID:               userID,
				AccountID:            accountID,
				Amount:               1,
				TransferNature:       transaction.NatureCommonTransfer,
				DestinationAccountID: &accountID,
				DestinationAmount:    ptr(int64(1)),
			}},
			setupMock: func(m mocks) {},
			wantErr:   apperr.ErrValidation,
		},
		{
			name: "DestinationOnOrdinary",
			args: args{params: transaction.CreateParams{
				UserID:               userID,
				AccountID:            accountID,
				Amount:               1,
				Type:                 transaction.TypeIncome,
				DestinationAccountID: &otherID,
			}},
			setupMock: func(m mocks) {},
			wantErr:   apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, otherID, got[0].ID)
			assert.Equal(t, int64(500), got[0].RefAmount)
			assert.Equal(t, "EUR", got[0].RefCurrencyCode)
			assert.Equal(t, transaction.NatureNotTransfer, got[0].TransferNature)
		})
	}
}

func TestService_Create_RefundRejectedBeforePersisting(t *testing.T) {
	svc, m := newService(t)

	originalID := uuid.New()

	m.accounts.EXPECT().Get(gomock.Any(), userID, accountID).Return(wallet(account.TypeSystem), nil)
	m.converter.EXPECT().DefaultCurrency(gomock.Any(), userID).Return(eur(), nil)
	m.converter.EXPECT().CalculateRefAmount(gomock.Any(), gomock.Any()).Return(int64(150), nil)
	m.repo.EXPECT().GetTransaction(gomock.Any(), userID, originalID).Return(&transaction.Transaction{
		ID:             originalID,
		UserID:         userID,
		AccountID:      accountID,
		Amount:         100,
		RefAmount:      100,
		Type:           transaction.TypeExpense,
		TransferNature: transaction.NatureNotTransfer,
	}, nil)

	_, err := svc.Create(context.Background(), transaction.CreateParams{
		UserID:      userID,
		AccountID:   accountID,
		Amount:      150,
		Type:        transaction.TypeIncome,
		Time:        march(3),
		RefundsTxID: &originalID,
	})
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestService_CreateRefund(t *testing.T) {
	type args struct {
		original *transaction.Transaction
		refund   *transaction.Transaction
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m mocks, a args)
		wantErr   error
		wantMsg   string
	}

	original := func() *transaction.Transaction {
		return &transaction.Transaction{
			ID: uuid.New(), UserID: userID, AccountID: accountID, Amount: 100, RefAmount: 100,
			Type: transaction.TypeExpense, TransferNature: transaction.NatureNotTransfer,
		}
	}

	refund := func(amount int64) *transaction.Transaction {
		return &transaction.Transaction{
			ID: uuid.New(), UserID: userID, AccountID: accountID, Amount: amount, RefAmount: amount,
			Type: transaction.TypeIncome, TransferNature: transaction.NatureNotTransfer,
		}
	}

	transfer := refund(10)
	transfer.TransferNature = transaction.NatureCommonTransfer

	sameType := refund(10)
	sameType.Type = transaction.TypeExpense

	notLinked := func(m mocks, a args) {
		m.repo.EXPECT().GetRefundLinkByRefund(gomock.Any(), a.original.ID).Return(nil, apperr.NotFound("refund link"))
		m.repo.EXPECT().GetRefundLinkByRefund(gomock.Any(), a.refund.ID).Return(nil, apperr.NotFound("refund link"))
	}

	tests := []testCase{
		{
			name: "Links",
			args: args{original: original(), refund: refund(40)},
			setupMock: func(m mocks, a args) {
				notLinked(m, a)
				m.repo.EXPECT().RefundedRefAmount(gomock.Any(), a.original.ID).Return(int64(60), nil)
				m.repo.EXPECT().CreateRefundLink(gomock.Any(), &transaction.RefundLink{
					OriginalTxID: a.original.ID,
					RefundTxID:   a.refund.ID,
					UserID:       userID,
				}).Return(nil)
				m.repo.EXPECT().
					UpdateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						assert.True(t, tx.RefundLinked)
						return nil
					}).
					Times(2)
			},
		},
		{
			name:      "Transfer",
			args:      args{original: original(), refund: transfer},
			setupMock: func(m mocks, a args) {},
			wantErr:   apperr.ErrValidation,
			wantMsg:   "transfers",
		},
		{
			name:      "SameType",
			args:      args{original: original(), refund: sameType},
			setupMock: func(m mocks, a args) {},
			wantErr:   apperr.ErrValidation,
			wantMsg:   "opposite type",
		},
		{
			name:      "LargerThanOriginal",
			args:      args{original: original(), refund: refund(101)},
			setupMock: func(m mocks, a args) {},
			wantErr:   apperr.ErrValidation,
			wantMsg:   "exceeds",
		},
		{
			name: "OriginalIsRefund",
			args: args{original: original(), refund: refund(10)},
			setupMock: func(m mocks, a args) {
				m.repo.EXPECT().GetRefundLinkByRefund(gomock.Any(), a.original.ID).Return(&transaction.RefundLink{}, nil)
			},
			wantErr: apperr.ErrValidation,
			wantMsg: "itself a refund",
		},
		{
			name: "AlreadyRefund",
			args: args{original: original(), refund: refund(10)},
			setupMock: func(m mocks, a args) {
				m.repo.EXPECT().GetRefundLinkByRefund(gomock.Any(), a.original.ID).Return(nil, apperr.NotFound("refund link"))
				m.repo.EXPECT().GetRefundLinkByRefund(gomock.Any(), a.refund.ID).Return(&transaction.RefundLink{}, nil)
			},
			wantErr: apperr.ErrConflict,
		},
		{
			name: "CumulativeBound",
			args: args{original: original(), refund: refund(50)},
			setupMock: func(m mocks, a args) {
				notLinked(m, a)
				m.repo.EXPECT().RefundedRefAmount(gomock.Any(), a.original.ID).Return(int64(60), nil)
			},
			wantErr: apperr.ErrValidation,
			wantMsg: "total 110",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)

			m.repo.EXPECT().GetTransaction(gomock.Any(), userID, tt.args.original.ID).Return(tt.args.original, nil)
			m.repo.EXPECT().GetTransaction(gomock.Any(), userID, tt.args.refund.ID).Return(tt.args.refund, nil)
			tt.setupMock(m, tt.args)

			link, err := svc.CreateRefund(context.Background(), transaction.RefundParams{
				UserID:       userID,
				OriginalTxID: tt.args.original.ID,
				RefundTxID:   tt.args.refund.ID,
			})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.wantMsg)
				assert.Nil(t, link)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.args.original.ID, link.OriginalTxID)
		})
	}
}

func TestService_Link_NothingToLink(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Link(context.Background(), userID, nil)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestService_Link_RejectsRefund(t *testing.T) {
	svc, m := newService(t)

	base := &transaction.Transaction{
		ID: uuid.New(), UserID: userID, AccountID: accountID, Type: transaction.TypeIncome,
		TransferNature: transaction.NatureNotTransfer, RefundLinked: true,
	}
	opposite := &transaction.Transaction{
		ID: uuid.New(), UserID: userID, AccountID: otherID, Type: transaction.TypeExpense,
		TransferNature: transaction.NatureNotTransfer,
	}

	m.repo.EXPECT().GetTransaction(gomock.Any(), userID, base.ID).Return(base, nil)
	m.repo.EXPECT().GetTransaction(gomock.Any(), userID, opposite.ID).Return(opposite, nil)

	_, err := svc.Link(context.Background(), userID, [][2]uuid.UUID{{base.ID, opposite.ID}})
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, err.Error(), "refund")
}

func TestService_Unlink_UnknownTransfer(t *testing.T) {
	svc, m := newService(t)

	transferID := uuid.New()
	m.repo.EXPECT().ListByTransferID(gomock.Any(), userID, transferID).Return([]*transaction.Transaction{}, nil)

	got, err := svc.Unlink(context.Background(), userID, []uuid.UUID{transferID})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_Delete_Transfer(t *testing.T) {
	svc, m := newService(t)

	transferID := uuid.New()

	out := &transaction.Transaction{
		ID: uuid.New(), UserID: userID, AccountID: accountID, Amount: 300, RefAmount: 300,
		Type: transaction.TypeExpense, TransferNature: transaction.NatureCommonTransfer,
		TransferID: &transferID, Time: march(4),
	}
	in := &transaction.Transaction{
		ID: uuid.New(), UserID: userID, AccountID: otherID, Amount: 330, RefAmount: 300,
		Type: transaction.TypeIncome, TransferNature: transaction.NatureCommonTransfer,
		TransferID: &transferID, Time: march(4),
	}

	m.repo.EXPECT().GetTransaction(gomock.Any(), userID, in.ID).Return(in, nil)
	m.repo.EXPECT().ListByTransferID(gomock.Any(), userID, transferID).Return([]*transaction.Transaction{out, in}, nil)

	for _, leg := range []*transaction.Transaction{out, in} {
		signed := leg.Type.Signed(leg.RefAmount)

		m.repo.EXPECT().RefundPartners(gomock.Any(), leg.ID).Return(nil, nil)
		m.accounts.EXPECT().
			ApplyBalanceDelta(gomock.Any(), account.DeltaParams{
				AccountID:     leg.AccountID,
				UserID:        userID,
				PrevAmount:    leg.Type.Signed(leg.Amount),
				PrevRefAmount: signed,
			}).
			Return(&account.Account{ID: leg.AccountID}, nil)
		m.history.EXPECT().
			UpsertDailyDelta(gomock.Any(), balance.DeltaParams{
				AccountID: leg.AccountID,
				Date:      march(4),
				Amount:    -signed,
			}).
			Return(nil)
		m.repo.EXPECT().DeleteTransaction(gomock.Any(), leg.ID).Return(nil)
	}

	require.NoError(t, svc.Delete(context.Background(), userID, in.ID))
}

func TestService_Delete_RefreshesRefundPartner(t *testing.T) {
	svc, m := newService(t)

	refund := &transaction.Transaction{
		ID: uuid.New(), UserID: userID, AccountID: accountID, Amount: 20, RefAmount: 20,
		Type: transaction.TypeIncome, TransferNature: transaction.NatureNotTransfer,
		RefundLinked: true, Time: march(5),
	}
	original := &transaction.Transaction{
		ID: uuid.New(), UserID: userID, AccountID: accountID, Amount: 100, RefAmount: 100,
		Type: transaction.TypeExpense, TransferNature: transaction.NatureNotTransfer,
		RefundLinked: true, Time: march(1),
	}

	m.repo.EXPECT().GetTransaction(gomock.Any(), userID, refund.ID).Return(refund, nil)
	m.repo.EXPECT().RefundPartners(gomock.Any(), refund.ID).Return([]uuid.UUID{original.ID}, nil)
	m.accounts.EXPECT().ApplyBalanceDelta(gomock.Any(), gomock.Any()).Return(wallet(account.TypeSystem), nil)
	m.history.EXPECT().UpsertDailyDelta(gomock.Any(), gomock.Any()).Return(nil)
	m.repo.EXPECT().DeleteTransaction(gomock.Any(), refund.ID).Return(nil)

	m.repo.EXPECT().GetTransaction(gomock.Any(), userID, original.ID).Return(original, nil)
	m.repo.EXPECT().RefundPartners(gomock.Any(), original.ID).Return(nil, nil)
	m.repo.EXPECT().
		UpdateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
			assert.Equal(t, original.ID, tx.ID)
			assert.False(t, tx.RefundLinked)
			return nil
		})

	require.NoError(t, svc.Delete(context.Background(), userID, refund.ID))
}

func TestService_Update(t *testing.T) {
	type args struct {
		params transaction.UpdateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m mocks, current *transaction.Transaction)
		want      *transaction.Transaction
		wantErr   error
	}

	newCurrent := func() *transaction.Transaction {
		return &transaction.Transaction{
			ID: otherID, UserID: userID, AccountID: accountID, Amount: 200, RefAmount: 200,
			CurrencyCode: "EUR", RefCurrencyCode: "EUR",
			Type: transaction.TypeExpense, TransferNature: transaction.NatureNotTransfer,
			Note: "lunch", Time: march(3),
		}
	}

	tests := []testCase{
		{
			name: "NoteOnlyKeepsRef",
			args: args{params: transaction.UpdateParams{UserID: userID, ID: otherID, Note: ptr("dinner")}},
			setupMock: func(m mocks, current *transaction.Transaction) {
				m.accounts.EXPECT().ApplyBalanceDelta(gomock.Any(), account.DeltaParams{
					AccountID: accountID, UserID: userID,
					Amount: -200, RefAmount: -200, PrevAmount: -200, PrevRefAmount: -200,
				}).Return(wallet(account.TypeSystem), nil)
				m.repo.EXPECT().UpdateTransaction(gomock.Any(), gomock.Any()).Return(nil)
			},
			want: func() *transaction.Transaction {
				tx := newCurrent()
				tx.Note = "dinner"

				return tx
			}(),
		},
		{
			name: "AmountReprices",
			args: args{params: transaction.UpdateParams{UserID: userID, ID: otherID, Amount: ptr(int64(250))}},
			setupMock: func(m mocks, current *transaction.Transaction) {
				m.converter.EXPECT().DefaultCurrency(gomock.Any(), userID).Return(eur(), nil)
				m.converter.EXPECT().CalculateRefAmount(gomock.Any(), gomock.Any()).Return(int64(250), nil)
				m.accounts.EXPECT().ApplyBalanceDelta(gomock.Any(), account.DeltaParams{
					AccountID: accountID, UserID: userID,
					Amount: -250, RefAmount: -250, PrevAmount: -200, PrevRefAmount: -200,
				}).Return(wallet(account.TypeSystem), nil)
				m.history.EXPECT().UpsertDailyDelta(gomock.Any(), balance.DeltaParams{
					AccountID: accountID, Date: march(3), Amount: -50, Base: 1000,
				}).Return(nil)
				m.repo.EXPECT().UpdateTransaction(gomock.Any(), gomock.Any()).Return(nil)
			},
			want: func() *transaction.Transaction {
				tx := newCurrent()
				tx.Amount, tx.RefAmount = 250, 250

				return tx
			}(),
		},
		{
			name:      "NegativeAmount",
			args:      args{params: transaction.UpdateParams{UserID: userID, ID: otherID, Amount: ptr(int64(-1))}},
			setupMock: nil,
			wantErr:   apperr.ErrValidation,
		},
		{
			name: "DestinationOnOrdinary",
			args: args{params: transaction.UpdateParams{UserID: userID, ID: otherID, DestinationAmount: ptr(int64(1))}},
			setupMock: func(m mocks, current *transaction.Transaction) {
			},
			wantErr: apperr.ErrValidation,
		},
		{
			name: "RefundLinkedTypeChange",
			args: args{params: transaction.UpdateParams{UserID: userID, ID: otherID, Type: ptr(transaction.TypeIncome)}},
			setupMock: func(m mocks, current *transaction.Transaction) {
				current.RefundLinked = true
			},
			wantErr: apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)

			if tt.setupMock != nil {
				current := newCurrent()
				m.repo.EXPECT().GetTransaction(gomock.Any(), userID, otherID).Return(current, nil)
				tt.setupMock(m, current)
			}

			got, err := svc.Update(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
