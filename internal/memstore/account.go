package memstore

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/letehaha/budget-tracker-be-sub001/internal/account"
	"github.com/letehaha/budget-tracker-be-sub001/internal/apperr"
	"github.com/letehaha/budget-tracker-be-sub001/internal/transaction"
)

func (s *Store) CreateAccount(_ context.Context, a *account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	s.st.accounts[a.ID] = *a
	s.st.accountOrder = append(s.st.accountOrder, a.ID)

	return nil
}

func (s *Store) GetAccount(_ context.Context, userID, id uuid.UUID) (*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.st.accounts[id]
	if !ok || a.UserID != userID {
		return nil, apperr.NotFound("account %s", id)
	}

	return &a, nil
}

// GetAccountForUpdate needs no extra locking: WithinTx already serializes writers.
func (s *Store) GetAccountForUpdate(ctx context.Context, userID, id uuid.UUID) (*account.Account, error) {
	return s.GetAccount(ctx, userID, id)
}

func (s *Store) ListAccounts(_ context.Context, userID uuid.UUID) ([]*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := []*account.Account{}

	for _, id := range s.st.accountOrder {
		a, ok := s.st.accounts[id]
		if ok && a.UserID == userID {
			accounts = append(accounts, &a)
		}
	}

	return accounts, nil
}

func (s *Store) UpdateAccount(_ context.Context, a *account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.st.accounts[a.ID]
	if !ok || stored.UserID != a.UserID {
		return apperr.NotFound("account %s", a.ID)
	}

	a.UpdatedAt = time.Now().UTC()
	s.st.accounts[a.ID] = *a

	return nil
}

func (s *Store) AddToBalance(_ context.Context, id uuid.UUID, delta, refDelta int64) (*account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.st.accounts[id]
	if !ok {
		return nil, apperr.NotFound("account %s", id)
	}

	a.CurrentBalance += delta
	a.RefCurrentBalance += refDelta
	a.UpdatedAt = time.Now().UTC()
	s.st.accounts[id] = a

	return &a, nil
}

func (s *Store) DeleteAccount(_ context.Context, userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.st.accounts[id]
	if !ok || a.UserID != userID {
		return apperr.NotFound("account %s", id)
	}

	doomed := make(map[uuid.UUID]bool)
	transfers := make(map[uuid.UUID]bool)

	for txID, tx := range s.st.transactions {
		if tx.AccountID != id {
			continue
		}

		doomed[txID] = true

		if tx.TransferID != nil {
			transfers[*tx.TransferID] = true
		}
	}

	for txID, tx := range s.st.transactions {
		if doomed[txID] || tx.TransferID == nil || !transfers[*tx.TransferID] {
			continue
		}

		tx.TransferID = nil
		tx.TransferNature = transaction.NatureNotTransfer
		s.st.transactions[txID] = tx
	}

	var partners []uuid.UUID

	for refundID, link := range s.st.refunds {
		switch {
		case doomed[link.OriginalTxID] && !doomed[refundID]:
			partners = append(partners, refundID)
		case doomed[refundID] && !doomed[link.OriginalTxID]:
			partners = append(partners, link.OriginalTxID)
		}
	}

	for txID := range doomed {
		s.deleteTransactionLocked(txID)
	}

	for k := range s.st.balances {
		if k.accountID == id {
			delete(s.st.balances, k)
		}
	}

	delete(s.st.accounts, id)
	s.st.accountOrder = slices.DeleteFunc(s.st.accountOrder, func(v uuid.UUID) bool { return v == id })

	for _, txID := range partners {
		tx := s.st.transactions[txID]
		tx.RefundLinked = len(s.refundPartnersLocked(txID)) > 0
		s.st.transactions[txID] = tx
	}

	return nil
}
