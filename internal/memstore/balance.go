package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/letehaha/budget-tracker-be-sub001/internal/apperr"
	"github.com/letehaha/budget-tracker-be-sub001/internal/balance"
)

func dayKey(t time.Time) string {
	return balance.StartOfDay(t).Format(time.DateOnly)
}

func parseDay(day string) time.Time {
	t, _ := time.Parse(time.DateOnly, day)
	return t
}

// rowsLocked returns the account's rows ordered by date.
func (s *Store) rowsLocked(accountID uuid.UUID) []*balance.Balance {
	var rows []*balance.Balance

	for k, amount := range s.st.balances {
		if k.accountID == accountID {
			rows = append(rows, &balance.Balance{AccountID: accountID, Date: parseDay(k.date), Amount: amount})
		}
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	return rows
}

func (s *Store) GetBalance(_ context.Context, accountID uuid.UUID, date time.Time) (*balance.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	amount, ok := s.st.balances[balanceKey{accountID: accountID, date: dayKey(date)}]
	if !ok {
		return nil, apperr.NotFound("balance for account %s on %s", accountID, dayKey(date))
	}

	return &balance.Balance{AccountID: accountID, Date: balance.StartOfDay(date), Amount: amount}, nil
}

func (s *Store) LatestBefore(_ context.Context, accountID uuid.UUID, date time.Time) (*balance.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day := balance.StartOfDay(date)
	rows := s.rowsLocked(accountID)

	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].Date.Before(day) {
			return rows[i], nil
		}
	}

	return nil, apperr.NotFound("balance for account %s before %s", accountID, dayKey(date))
}

func (s *Store) EarliestPositiveAfter(_ context.Context, accountID uuid.UUID, date time.Time) (*balance.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day := balance.StartOfDay(date)

	for _, row := range s.rowsLocked(accountID) {
		if row.Date.After(day) && row.Amount > 0 {
			return row, nil
		}
	}

	return nil, apperr.NotFound("balance for account %s after %s", accountID, dayKey(date))
}

func (s *Store) ListBalances(_ context.Context, accountID uuid.UUID, from, to *time.Time) ([]*balance.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := []*balance.Balance{}

	for _, row := range s.rowsLocked(accountID) {
		if from != nil && row.Date.Before(balance.StartOfDay(*from)) {
			continue
		}

		if to != nil && row.Date.After(balance.StartOfDay(*to)) {
			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (s *Store) SaveBalance(_ context.Context, b *balance.Balance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.balances[balanceKey{accountID: b.AccountID, date: dayKey(b.Date)}] = b.Amount

	return nil
}

func (s *Store) ShiftAfter(_ context.Context, accountID uuid.UUID, date time.Time, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := dayKey(date)

	for k, amount := range s.st.balances {
		if k.accountID == accountID && k.date > day {
			s.st.balances[k] = amount + delta
		}
	}

	return nil
}

func (s *Store) ShiftAll(_ context.Context, accountID uuid.UUID, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, amount := range s.st.balances {
		if k.accountID == accountID {
			s.st.balances[k] = amount + delta
		}
	}

	return nil
}
