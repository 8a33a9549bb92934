package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/letehaha/budget-tracker-be-sub001/internal/apperr"
)

// Link pairs already recorded transactions into transfers. Each pair is
// (base, opposite). Balances are untouched since both rows already carry
// their effect; all pairs are linked or none.
func (s *Service) Link(ctx context.Context, userID uuid.UUID, pairs [][2]uuid.UUID) (linked [][2]*Transaction, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveMutation("transfer_link", start, err) }()

	if len(pairs) == 0 {
		return nil, apperr.Validation("nothing to link")
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		linked = make([][2]*Transaction, 0, len(pairs))

		for _, pair := range pairs {
			if pair[0] == pair[1] {
				return apperr.Validation("cannot link transaction %s with itself", pair[0])
			}

			base, err := s.repo.GetTransaction(ctx, userID, pair[0])
			if err != nil {
				return fmt.Errorf("getting transaction: %w", err)
			}

			opposite, err := s.repo.GetTransaction(ctx, userID, pair[1])
			if err != nil {
				return fmt.Errorf("getting transaction: %w", err)
			}

			if err := validateLink(base, opposite); err != nil {
				return err
			}

			transferID := uuid.New()

			for _, tx := range []*Transaction{base, opposite} {
				tx.TransferID = &transferID
				tx.TransferNature = NatureCommonTransfer

				if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
					return fmt.Errorf("linking transaction: %w", err)
				}
			}

			linked = append(linked, [2]*Transaction{base, opposite})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return linked, nil
}

func validateLink(base, opposite *Transaction) error {
	if base.Type == opposite.Type {
		return apperr.Validation("linked transactions must have opposite types")
	}

	if base.AccountID == opposite.AccountID {
		return apperr.Validation("linked transactions must be on different accounts")
	}

	for _, tx := range []*Transaction{base, opposite} {
		if tx.TransferNature.IsTransfer() {
			return apperr.Validation("transaction %s is already a transfer", tx.ID)
		}
	}

	for _, tx := range []*Transaction{base, opposite} {
		if tx.RefundLinked {
			return apperr.Validation("transaction %s is part of a refund", tx.ID)
		}
	}

	return nil
}

// Unlink turns every leg of the given transfers back into an ordinary
// transaction and returns the updated rows.
func (s *Service) Unlink(ctx context.Context, userID uuid.UUID, transferIDs []uuid.UUID) (unlinked []*Transaction, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveMutation("transfer_unlink", start, err) }()

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		unlinked = []*Transaction{}

		for _, transferID := range transferIDs {
			legs, err := s.repo.ListByTransferID(ctx, userID, transferID)
			if err != nil {
				return fmt.Errorf("listing transfer legs: %w", err)
			}

			for _, tx := range legs {
				tx.TransferID = nil
				tx.TransferNature = NatureNotTransfer

				if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
					return fmt.Errorf("unlinking transaction: %w", err)
				}

				unlinked = append(unlinked, tx)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return unlinked, nil
}
