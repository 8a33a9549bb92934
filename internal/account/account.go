package account

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	// TypeSystem accounts are maintained from the user's own transactions.
	TypeSystem Type = "system"
	// TypeExternal accounts mirror a provider that reports its own balance.
	TypeExternal Type = "external"
)

func (t Type) Valid() bool {
	switch t {
	case TypeSystem, TypeExternal:
		return true
	default:
		return false
	}
}

// Account amounts are minor units of the account currency; the Ref fields
// hold the same values in the owner's reference currency.
type Account struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Name              string
	CurrencyID        int64
	CurrencyCode      string
	Type              Type
	InitialBalance    int64
	CurrentBalance    int64
	RefInitialBalance int64
	RefCurrentBalance int64
	CreditLimit       int64
	RefCreditLimit    int64
	IsEnabled         bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

//go:generate mockgen -source=account.go -destination=repository_mock.go -package=account
type Repository interface {
	CreateAccount(ctx context.Context, a *Account) error
	// GetAccount returns apperr.ErrNotFound when the account does not exist or is not the user's.
	GetAccount(ctx context.Context, userID, id uuid.UUID) (*Account, error)
	// GetAccountForUpdate also locks the row until the surrounding transaction ends.
	GetAccountForUpdate(ctx context.Context, userID, id uuid.UUID) (*Account, error)
	ListAccounts(ctx context.Context, userID uuid.UUID) ([]*Account, error)
	UpdateAccount(ctx context.Context, a *Account) error
	// AddToBalance adds the deltas to the current balances and returns the updated row.
	AddToBalance(ctx context.Context, id uuid.UUID, delta, refDelta int64) (*Account, error)
	// DeleteAccount removes the account with its transactions, refund links and history.
	// Transfer siblings on other accounts become ordinary transactions.
	DeleteAccount(ctx context.Context, userID, id uuid.UUID) error
}
