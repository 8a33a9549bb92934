package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/letehaha/budget-tracker-be-sub001/internal/apperr"
	"github.com/letehaha/budget-tracker-be-sub001/internal/transaction"
)

func cloneID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}

	v := *id

	return &v
}

// detach copies tx so the caller and the store never share pointer fields.
func detach(tx transaction.Transaction) *transaction.Transaction {
	tx.CategoryID = cloneID(tx.CategoryID)
	tx.TransferID = cloneID(tx.TransferID)

	return &tx
}

func (s *Store) CreateTransaction(_ context.Context, tx *transaction.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.st.accounts[tx.AccountID]; !ok {
		return apperr.NotFound("account %s", tx.AccountID)
	}

	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}

	now := time.Now().UTC()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	s.st.transactions[tx.ID] = *detach(*tx)

	return nil
}

func (s *Store) GetTransaction(_ context.Context, userID, id uuid.UUID) (*transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.st.transactions[id]
	if !ok || tx.UserID != userID {
		return nil, apperr.NotFound("transaction %s", id)
	}

	return detach(tx), nil
}

func (s *Store) ListTransactions(_ context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txs := []*transaction.Transaction{}

	for _, tx := range s.st.transactions {
		if tx.UserID != filter.UserID {
			continue
		}

		if filter.AccountID != nil && tx.AccountID != *filter.AccountID {
			continue
		}

		if filter.StartDate != nil && tx.Time.Before(filter.Since()) {
			continue
		}

		if filter.EndDate != nil && !tx.Time.Before(filter.Before()) {
			continue
		}

		txs = append(txs, detach(tx))
	}

	sort.Slice(txs, func(i, j int) bool {
		if !txs[i].Time.Equal(txs[j].Time) {
			return txs[i].Time.After(txs[j].Time)
		}

		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})

	return txs, nil
}

func (s *Store) ListByTransferID(_ context.Context, userID, transferID uuid.UUID) ([]*transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txs := []*transaction.Transaction{}

	for _, tx := range s.st.transactions {
		if tx.UserID == userID && tx.TransferID != nil && *tx.TransferID == transferID {
			txs = append(txs, detach(tx))
		}
	}

	sort.Slice(txs, func(i, j int) bool { return txs[i].CreatedAt.Before(txs[j].CreatedAt) })

	return txs, nil
}

func (s *Store) UpdateTransaction(_ context.Context, tx *transaction.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.st.transactions[tx.ID]
	if !ok || stored.UserID != tx.UserID {
		return apperr.NotFound("transaction %s", tx.ID)
	}

	if _, ok := s.st.accounts[tx.AccountID]; !ok {
		return apperr.NotFound("account %s", tx.AccountID)
	}

	tx.CreatedAt = stored.CreatedAt
	tx.UpdatedAt = time.Now().UTC()
	s.st.transactions[tx.ID] = *detach(*tx)

	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.st.transactions[id]; !ok {
		return apperr.NotFound("transaction %s", id)
	}

	s.deleteTransactionLocked(id)

	return nil
}

func (s *Store) deleteTransactionLocked(id uuid.UUID) {
	delete(s.st.transactions, id)

	for refundID, link := range s.st.refunds {
		if refundID == id || link.OriginalTxID == id {
			delete(s.st.refunds, refundID)
		}
	}
}

func (s *Store) CreateRefundLink(_ context.Context, link *transaction.RefundLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.st.refunds[link.RefundTxID]; ok {
		return apperr.Conflict("transaction %s is already a refund", link.RefundTxID)
	}

	for _, id := range []uuid.UUID{link.OriginalTxID, link.RefundTxID} {
		if _, ok := s.st.transactions[id]; !ok {
			return apperr.NotFound("transaction %s", id)
		}
	}

	link.CreatedAt = time.Now().UTC()
	s.st.refunds[link.RefundTxID] = *link

	return nil
}

func (s *Store) GetRefundLink(_ context.Context, userID, originalTxID, refundTxID uuid.UUID) (*transaction.RefundLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, ok := s.st.refunds[refundTxID]
	if !ok || link.OriginalTxID != originalTxID || link.UserID != userID {
		return nil, apperr.NotFound("refund link %s -> %s", originalTxID, refundTxID)
	}

	return &link, nil
}

func (s *Store) GetRefundLinkByRefund(_ context.Context, refundTxID uuid.UUID) (*transaction.RefundLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, ok := s.st.refunds[refundTxID]
	if !ok {
		return nil, apperr.NotFound("refund link for %s", refundTxID)
	}

	return &link, nil
}

func (s *Store) DeleteRefundLink(_ context.Context, originalTxID, refundTxID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if link, ok := s.st.refunds[refundTxID]; ok && link.OriginalTxID == originalTxID {
		delete(s.st.refunds, refundTxID)
	}

	return nil
}

func (s *Store) RefundedRefAmount(_ context.Context, originalTxID uuid.UUID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64

	for refundID, link := range s.st.refunds {
		if link.OriginalTxID != originalTxID {
			continue
		}

		ref := s.st.transactions[refundID].RefAmount
		if ref < 0 {
			ref = -ref
		}

		total += ref
	}

	return total, nil
}

func (s *Store) RefundPartners(_ context.Context, txID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.refundPartnersLocked(txID), nil
}

func (s *Store) refundPartnersLocked(txID uuid.UUID) []uuid.UUID {
	var ids []uuid.UUID

	for refundID, link := range s.st.refunds {
		switch {
		case link.OriginalTxID == txID:
			ids = append(ids, refundID)
		case refundID == txID:
			ids = append(ids, link.OriginalTxID)
		}
	}

	return ids
}
