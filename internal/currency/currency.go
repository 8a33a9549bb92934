package currency

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	isocurrency "golang.org/x/text/currency"
)

// Currency is an ISO 4217 currency known to the system.
type Currency struct {
	ID   int64
	Code string
}

// Selector picks a currency by code, or by ID when Code is empty.
type Selector struct {
	ID   int64
	Code string
}

func ByCode(code string) Selector { return Selector{Code: code} }
func ByID(id int64) Selector      { return Selector{ID: id} }

// Rate is one row of the global daily exchange-rate table.
type Rate struct {
	BaseCode  string
	QuoteCode string
	Date      time.Time
	Rate      decimal.Decimal
}

//go:generate mockgen -source=currency.go -destination=repository_mock.go -package=currency
type Repository interface {
	GetCurrencyByID(ctx context.Context, id int64) (*Currency, error)
	GetCurrencyByCode(ctx context.Context, code string) (*Currency, error)
	GetDefaultCurrency(ctx context.Context, userID uuid.UUID) (*Currency, error)

	// GetUserRate returns ErrRateNotFound when the user has no override for the pair.
	GetUserRate(ctx context.Context, userID uuid.UUID, base, quote string) (decimal.Decimal, error)
	// GetDailyRate returns the most recent rate on or before date, or ErrRateNotFound.
	GetDailyRate(ctx context.Context, base, quote string, date time.Time) (decimal.Decimal, error)
	UpsertDailyRates(ctx context.Context, rates []Rate) error
}

// NormalizeCode upper-cases code and checks it against ISO 4217.
func NormalizeCode(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))

	unit, err := isocurrency.ParseISO(code)
	if err != nil {
		return "", false
	}

	return unit.String(), true
}
