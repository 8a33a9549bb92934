package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/letehaha/budget-tracker-be-sub001/internal/apperr"
)

type RefundParams struct {
	UserID       uuid.UUID
	OriginalTxID uuid.UUID
	RefundTxID   uuid.UUID
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}

	return v
}

// CreateRefund links two existing transactions. Only the refundLinked flags
// change; both rows already carry their balance effect.
func (s *Service) CreateRefund(ctx context.Context, params RefundParams) (link *RefundLink, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveMutation("refund_create", start, err) }()

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		original, err := s.repo.GetTransaction(ctx, params.UserID, params.OriginalTxID)
		if err != nil {
			return fmt.Errorf("getting original transaction: %w", err)
		}

		refund, err := s.repo.GetTransaction(ctx, params.UserID, params.RefundTxID)
		if err != nil {
			return fmt.Errorf("getting refund transaction: %w", err)
		}

		if err := s.validateRefund(ctx, original, refund); err != nil {
			s.metrics.RefundRejected(err)
			return err
		}

		link, err = s.linkRefund(ctx, original, refund)

		return err
	})
	if err != nil {
		return nil, err
	}

	return link, nil
}

// validateRefund checks that refund may offset original. The refund may not
// be persisted yet, in which case it cannot already be linked.
func (s *Service) validateRefund(ctx context.Context, original, refund *Transaction) error {
	if original.TransferNature.IsTransfer() || refund.TransferNature.IsTransfer() {
		return apperr.Validation("transfers cannot take part in refunds")
	}

	if original.Type == refund.Type {
		return apperr.Validation("a refund must have the opposite type of the original transaction")
	}

	if abs(refund.RefAmount) > abs(original.RefAmount) {
		return apperr.Validation("refund amount %d exceeds original amount %d",
			abs(refund.RefAmount), abs(original.RefAmount))
	}

	isRefund, err := s.isRefund(ctx, original.ID)
	if err != nil {
		return err
	}

	if isRefund {
		return apperr.Validation("transaction %s is itself a refund", original.ID)
	}

	if refund.ID != uuid.Nil {
		isRefund, err = s.isRefund(ctx, refund.ID)
		if err != nil {
			return err
		}

		if isRefund {
			return apperr.Conflict("transaction %s is already a refund", refund.ID)
		}
	}

	refunded, err := s.repo.RefundedRefAmount(ctx, original.ID)
	if err != nil {
		return fmt.Errorf("summing refunds: %w", err)
	}

	if refunded+abs(refund.RefAmount) > abs(original.RefAmount) {
		return apperr.Validation("refunds would total %d, more than original amount %d",
			refunded+abs(refund.RefAmount), abs(original.RefAmount))
	}

	return nil
}

func (s *Service) isRefund(ctx context.Context, txID uuid.UUID) (bool, error) {
	_, err := s.repo.GetRefundLinkByRefund(ctx, txID)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}

	return false, fmt.Errorf("getting refund link: %w", err)
}

func (s *Service) linkRefund(ctx context.Context, original, refund *Transaction) (*RefundLink, error) {
	link := &RefundLink{
		OriginalTxID: original.ID,
		RefundTxID:   refund.ID,
		UserID:       original.UserID,
	}

	if err := s.repo.CreateRefundLink(ctx, link); err != nil {
		return nil, fmt.Errorf("creating refund link: %w", err)
	}

	for _, tx := range []*Transaction{original, refund} {
		if tx.RefundLinked {
			continue
		}

		tx.RefundLinked = true

		if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
			return nil, fmt.Errorf("flagging refund: %w", err)
		}
	}

	return link, nil
}

// RemoveRefund drops a link and recomputes both flags. An original stays
// flagged while other refunds still point at it.
func (s *Service) RemoveRefund(ctx context.Context, params RefundParams) (err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveMutation("refund_remove", start, err) }()

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetRefundLink(ctx, params.UserID, params.OriginalTxID, params.RefundTxID); err != nil {
			return fmt.Errorf("getting refund link: %w", err)
		}

		if err := s.repo.DeleteRefundLink(ctx, params.OriginalTxID, params.RefundTxID); err != nil {
			return fmt.Errorf("deleting refund link: %w", err)
		}

		for _, id := range []uuid.UUID{params.OriginalTxID, params.RefundTxID} {
			if err := s.refreshRefundFlag(ctx, params.UserID, id); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *Service) refreshRefundFlag(ctx context.Context, userID, txID uuid.UUID) error {
	tx, err := s.repo.GetTransaction(ctx, userID, txID)
	if err != nil {
		return fmt.Errorf("getting transaction: %w", err)
	}

	partners, err := s.repo.RefundPartners(ctx, txID)
	if err != nil {
		return fmt.Errorf("listing refund partners: %w", err)
	}

	linked := len(partners) > 0
	if tx.RefundLinked == linked {
		return nil
	}

	tx.RefundLinked = linked

	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return fmt.Errorf("updating refund flag: %w", err)
	}

	return nil
}

// checkRefundBounds re-validates the links of a refund-linked transaction
// whose ref amount is about to change from current to next.
func (s *Service) checkRefundBounds(ctx context.Context, current, next *Transaction) error {
	if abs(current.RefAmount) == abs(next.RefAmount) {
		return nil
	}

	link, err := s.repo.GetRefundLinkByRefund(ctx, current.ID)

	switch {
	case err == nil:
		original, err := s.repo.GetTransaction(ctx, current.UserID, link.OriginalTxID)
		if err != nil {
			return fmt.Errorf("getting original transaction: %w", err)
		}

		refunded, err := s.repo.RefundedRefAmount(ctx, original.ID)
		if err != nil {
			return fmt.Errorf("summing refunds: %w", err)
		}

		total := refunded - abs(current.RefAmount) + abs(next.RefAmount)
		if total > abs(original.RefAmount) {
			return apperr.Validation("refunds would total %d, more than original amount %d",
				total, abs(original.RefAmount))
		}

		return nil
	case !errors.Is(err, apperr.ErrNotFound):
		return fmt.Errorf("getting refund link: %w", err)
	}

	refunded, err := s.repo.RefundedRefAmount(ctx, current.ID)
	if err != nil {
		return fmt.Errorf("summing refunds: %w", err)
	}

	if refunded > abs(next.RefAmount) {
		return apperr.Validation("amount %d is below the %d already refunded", abs(next.RefAmount), refunded)
	}

	return nil
}
