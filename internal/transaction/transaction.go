package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/letehaha/budget-tracker-be-sub001/internal/balance"
)

// Type is the direction of a transaction relative to its account.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense:
		return true
	default:
		return false
	}
}

// Signed returns the contribution of amount to an account balance.
func (t Type) Signed(amount int64) int64 {
	switch t {
	case TypeIncome:
		return amount
	case TypeExpense:
		return -amount
	default:
		return 0
	}
}

// TransferNature tells ordinary transactions apart from transfer legs.
type TransferNature string

const (
	NatureNotTransfer TransferNature = "not_transfer"
	// NatureCommonTransfer rows come in pairs sharing a TransferID.
	NatureCommonTransfer TransferNature = "common_transfer"
	// NatureOutOfWallet is a single-leg transfer to somewhere the user does not track.
	NatureOutOfWallet TransferNature = "transfer_out_wallet"
)

func (n TransferNature) Valid() bool {
	switch n {
	case NatureNotTransfer, NatureCommonTransfer, NatureOutOfWallet:
		return true
	default:
		return false
	}
}

func (n TransferNature) IsTransfer() bool {
	return n != NatureNotTransfer
}

// Transaction amounts are positive magnitudes in minor units; Type carries the sign.
type Transaction struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	AccountID       uuid.UUID
	CategoryID      *uuid.UUID
	Amount          int64
	RefAmount       int64
	CurrencyCode    string
	RefCurrencyCode string
	Type            Type
	TransferNature  TransferNature
	TransferID      *uuid.UUID
	RefundLinked    bool
	Note            string
	Time            time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RefundLink records that RefundTxID offsets part of OriginalTxID.
type RefundLink struct {
	OriginalTxID uuid.UUID
	RefundTxID   uuid.UUID
	UserID       uuid.UUID
	CreatedAt    time.Time
}

// ListFilter dates are inclusive days: StartDate matches from the start of
// its day and EndDate up to the end of its day.
type ListFilter struct {
	UserID    uuid.UUID
	AccountID *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// Before returns the first instant past EndDate.
func (f ListFilter) Before() time.Time {
	return balance.StartOfDay(*f.EndDate).AddDate(0, 0, 1)
}

// Since returns the first instant of StartDate.
func (f ListFilter) Since() time.Time {
	return balance.StartOfDay(*f.StartDate)
}

//go:generate mockgen -source=transaction.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	// GetTransaction returns apperr.ErrNotFound when the row does not exist or is not the user's.
	GetTransaction(ctx context.Context, userID, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	ListByTransferID(ctx context.Context, userID, transferID uuid.UUID) ([]*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	// DeleteTransaction also drops the refund links the row takes part in.
	DeleteTransaction(ctx context.Context, id uuid.UUID) error

	// CreateRefundLink returns apperr.ErrConflict when the refund is already linked.
	CreateRefundLink(ctx context.Context, link *RefundLink) error
	GetRefundLink(ctx context.Context, userID, originalTxID, refundTxID uuid.UUID) (*RefundLink, error)
	// GetRefundLinkByRefund finds the link in which refundTxID is the refund.
	GetRefundLinkByRefund(ctx context.Context, refundTxID uuid.UUID) (*RefundLink, error)
	DeleteRefundLink(ctx context.Context, originalTxID, refundTxID uuid.UUID) error
	// RefundedRefAmount sums |RefAmount| over every refund linked to originalTxID.
	RefundedRefAmount(ctx context.Context, originalTxID uuid.UUID) (int64, error)
	// RefundPartners lists the transactions sharing a refund link with txID.
	RefundPartners(ctx context.Context, txID uuid.UUID) ([]uuid.UUID, error)
}
