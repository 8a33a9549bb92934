package currency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/letehaha/budget-tracker-be-sub001/internal/apperr"
)

// Converter turns amounts into the user's reference currency.
type Converter struct {
	repo  Repository
	rates RateResolver
}

func NewConverter(repo Repository, rates RateResolver) *Converter {
	return &Converter{repo: repo, rates: rates}
}

type RefAmountParams struct {
	Amount int64
	UserID uuid.UUID
	Date   time.Time
	Base   Selector
	// Quote defaults to the user's default currency.
	Quote *Selector
}

// CalculateRefAmount converts p.Amount from Base into Quote. A zero amount
// is returned as is without any lookup.
func (c *Converter) CalculateRefAmount(ctx context.Context, p RefAmountParams) (int64, error) {
	if p.Amount == 0 {
		return 0, nil
	}

	base, err := c.resolve(ctx, p.Base)
	if err != nil {
		return 0, err
	}

	var quote *Currency
	if p.Quote != nil {
		quote, err = c.resolve(ctx, *p.Quote)
		if err != nil {
			return 0, err
		}

		if base.Code == quote.Code {
			return p.Amount, nil
		}
	}

	def, err := c.DefaultCurrency(ctx, p.UserID)
	if err != nil {
		return 0, err
	}

	if quote == nil {
		quote = def
	}

	if base.Code == quote.Code || base.Code == def.Code {
		return p.Amount, nil
	}

	rate, err := c.rates.ResolveRate(ctx, RateQuery{
		UserID: p.UserID,
		Base:   base.Code,
		Quote:  quote.Code,
		Date:   p.Date,
	})
	if err != nil {
		if errors.Is(err, ErrRateNotFound) {
			return 0, apperr.Validation("no exchange rate for %s/%s on %s",
				base.Code, quote.Code, p.Date.UTC().Format(time.DateOnly))
		}

		return 0, fmt.Errorf("resolving rate: %w", err)
	}

	return Convert(p.Amount, rate), nil
}

// DefaultCurrency returns the user's reference currency.
func (c *Converter) DefaultCurrency(ctx context.Context, userID uuid.UUID) (*Currency, error) {
	cur, err := c.repo.GetDefaultCurrency(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting default currency: %w", err)
	}

	return cur, nil
}

func (c *Converter) resolve(ctx context.Context, sel Selector) (*Currency, error) {
	if sel.Code != "" {
		code, ok := NormalizeCode(sel.Code)
		if !ok {
			return nil, apperr.Validation("unknown currency code %q", sel.Code)
		}

		return &Currency{ID: sel.ID, Code: code}, nil
	}

	cur, err := c.repo.GetCurrencyByID(ctx, sel.ID)
	if err != nil {
		return nil, fmt.Errorf("getting currency %d: %w", sel.ID, err)
	}

	return cur, nil
}

// Convert applies sign(amount) * floor(|amount| * rate).
func Convert(amount int64, rate decimal.Decimal) int64 {
	if amount == 0 {
		return 0
	}

	abs := amount
	if abs < 0 {
		abs = -abs
	}

	converted := decimal.NewFromInt(abs).Mul(rate).Floor().IntPart()
	if amount < 0 {
		return -converted
	}

	return converted
}
