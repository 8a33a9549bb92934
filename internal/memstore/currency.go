package memstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/letehaha/budget-tracker-be-sub001/internal/apperr"
	"github.com/letehaha/budget-tracker-be-sub001/internal/currency"
)

// AddCurrency registers a currency and returns it with its assigned ID.
func (s *Store) AddCurrency(code string) *currency.Currency {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.st.currencies {
		if c.Code == code {
			return &c
		}
	}

	c := currency.Currency{ID: int64(len(s.st.currencies) + 1), Code: code}
	s.st.currencies[c.ID] = c

	return &c
}

func (s *Store) SetDefaultCurrency(userID uuid.UUID, code string) {
	c := s.AddCurrency(code)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.defaults[userID] = c.ID
}

func (s *Store) SetUserRate(userID uuid.UUID, base, quote string, rate decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.userRates[userRateKey{userID: userID, base: base, quote: quote}] = rate
}

func (s *Store) GetCurrencyByID(_ context.Context, id int64) (*currency.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.st.currencies[id]
	if !ok {
		return nil, apperr.NotFound("currency %d", id)
	}

	return &c, nil
}

func (s *Store) GetCurrencyByCode(_ context.Context, code string) (*currency.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.st.currencies {
		if c.Code == code {
			return &c, nil
		}
	}

	return nil, apperr.NotFound("currency %s", code)
}

func (s *Store) GetDefaultCurrency(_ context.Context, userID uuid.UUID) (*currency.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.st.defaults[userID]
	if !ok {
		return nil, apperr.NotFound("default currency for user %s", userID)
	}

	c := s.st.currencies[id]

	return &c, nil
}

func (s *Store) GetUserRate(_ context.Context, userID uuid.UUID, base, quote string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rate, ok := s.st.userRates[userRateKey{userID: userID, base: base, quote: quote}]
	if !ok {
		return decimal.Zero, currency.ErrRateNotFound
	}

	return rate, nil
}

func (s *Store) GetDailyRate(_ context.Context, base, quote string, date time.Time) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day := date.UTC().Format(time.DateOnly)

	var (
		best  *currency.Rate
		found bool
	)

	for _, r := range s.st.dailyRates[pairKey{base: base, quote: quote}] {
		d := r.Date.UTC().Format(time.DateOnly)
		if d > day {
			continue
		}

		if !found || d > best.Date.UTC().Format(time.DateOnly) {
			best, found = &r, true
		}
	}

	if !found {
		return decimal.Zero, currency.ErrRateNotFound
	}

	return best.Rate, nil
}

func (s *Store) UpsertDailyRates(_ context.Context, rates []currency.Rate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range rates {
		key := pairKey{base: r.BaseCode, quote: r.QuoteCode}
		day := r.Date.UTC().Format(time.DateOnly)

		existing := s.st.dailyRates[key]
		replaced := false

		for i := range existing {
			if existing[i].Date.UTC().Format(time.DateOnly) == day {
				existing[i].Rate = r.Rate
				replaced = true
			}
		}

		if !replaced {
			existing = append(existing, r)
		}

		s.st.dailyRates[key] = existing
	}

	return nil
}
