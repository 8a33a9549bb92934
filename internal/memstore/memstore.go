// Package memstore keeps every ledger table in memory. It implements the
// repositories of the currency, account, balance and transaction packages
// together with a transactor that restores the previous state on rollback,
// so the services can be exercised end to end without Postgres.
package memstore

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/letehaha/budget-tracker-be-sub001/internal/account"
	"github.com/letehaha/budget-tracker-be-sub001/internal/currency"
	"github.com/letehaha/budget-tracker-be-sub001/internal/transaction"
)

type userRateKey struct {
	userID uuid.UUID
	base   string
	quote  string
}

type pairKey struct {
	base  string
	quote string
}

type balanceKey struct {
	accountID uuid.UUID
	date      string
}

type state struct {
	currencies   map[int64]currency.Currency
	defaults     map[uuid.UUID]int64
	userRates    map[userRateKey]decimal.Decimal
	dailyRates   map[pairKey][]currency.Rate
	accounts     map[uuid.UUID]account.Account
	accountOrder []uuid.UUID
	balances     map[balanceKey]int64
	transactions map[uuid.UUID]transaction.Transaction
	refunds      map[uuid.UUID]transaction.RefundLink
}

func newState() state {
	return state{
		currencies:   make(map[int64]currency.Currency),
		defaults:     make(map[uuid.UUID]int64),
		userRates:    make(map[userRateKey]decimal.Decimal),
		dailyRates:   make(map[pairKey][]currency.Rate),
		accounts:     make(map[uuid.UUID]account.Account),
		balances:     make(map[balanceKey]int64),
		transactions: make(map[uuid.UUID]transaction.Transaction),
		refunds:      make(map[uuid.UUID]transaction.RefundLink),
	}
}

func (st state) clone() state {
	daily := make(map[pairKey][]currency.Rate, len(st.dailyRates))
	for k, v := range st.dailyRates {
		daily[k] = slices.Clone(v)
	}

	return state{
		currencies:   maps.Clone(st.currencies),
		defaults:     maps.Clone(st.defaults),
		userRates:    maps.Clone(st.userRates),
		dailyRates:   daily,
		accounts:     maps.Clone(st.accounts),
		accountOrder: slices.Clone(st.accountOrder),
		balances:     maps.Clone(st.balances),
		transactions: maps.Clone(st.transactions),
		refunds:      maps.Clone(st.refunds),
	}
}

type Store struct {
	// txMu serializes transactions the way row locks would.
	txMu sync.Mutex
	mu   sync.RWMutex
	st   state
}

func New() *Store {
	return &Store{st: newState()}
}

type txKey struct{}

// WithinTx runs fn against the store and restores the state it saw at the
// start when fn fails. Nested calls join the outer transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if owner, ok := ctx.Value(txKey{}).(*Store); ok && owner == s {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.st.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()

		return err
	}

	return nil
}
