package balance

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Balance is the balance of an account at the end of Date, in the owner's
// reference currency. Days without activity have no row.
type Balance struct {
	AccountID uuid.UUID
	Date      time.Time
	Amount    int64
}

// StartOfDay buckets an instant into its UTC day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

//go:generate mockgen -source=balance.go -destination=repository_mock.go -package=balance
type Repository interface {
	// GetBalance, LatestBefore and EarliestPositiveAfter return apperr.ErrNotFound when no row matches.
	GetBalance(ctx context.Context, accountID uuid.UUID, date time.Time) (*Balance, error)
	LatestBefore(ctx context.Context, accountID uuid.UUID, date time.Time) (*Balance, error)
	EarliestPositiveAfter(ctx context.Context, accountID uuid.UUID, date time.Time) (*Balance, error)
	// ListBalances returns rows with from <= date <= to ordered by date; nil bounds are open.
	ListBalances(ctx context.Context, accountID uuid.UUID, from, to *time.Time) ([]*Balance, error)

	SaveBalance(ctx context.Context, b *Balance) error
	// ShiftAfter adds delta to every row strictly after date.
	ShiftAfter(ctx context.Context, accountID uuid.UUID, date time.Time, delta int64) error
	ShiftAll(ctx context.Context, accountID uuid.UUID, delta int64) error
}
