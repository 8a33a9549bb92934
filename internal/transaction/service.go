package transaction

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/letehaha/budget-tracker-be-sub001/internal/account"
	"github.com/letehaha/budget-tracker-be-sub001/internal/apperr"
	"github.com/letehaha/budget-tracker-be-sub001/internal/balance"
	"github.com/letehaha/budget-tracker-be-sub001/internal/currency"
	"github.com/letehaha/budget-tracker-be-sub001/internal/metrics"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=transaction
type Accounts interface {
	Get(ctx context.Context, userID, id uuid.UUID) (*account.Account, error)
	ApplyBalanceDelta(ctx context.Context, p account.DeltaParams) (*account.Account, error)
}

type Converter interface {
	CalculateRefAmount(ctx context.Context, p currency.RefAmountParams) (int64, error)
	DefaultCurrency(ctx context.Context, userID uuid.UUID) (*currency.Currency, error)
}

type History interface {
	UpsertDailyDelta(ctx context.Context, p balance.DeltaParams) error
	UpsertDailySnapshot(ctx context.Context, p balance.SnapshotParams) error
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	repo      Repository
	accounts  Accounts
	converter Converter
	history   History
	tx        Transactor
	metrics   *metrics.Collector
	logger    *slog.Logger
}

func NewService(
	repo Repository,
	accounts Accounts,
	converter Converter,
	history History,
	tx Transactor,
	m *metrics.Collector,
) *Service {
	return &Service{
		repo:      repo,
		accounts:  accounts,
		converter: converter,
		history:   history,
		tx:        tx,
		metrics:   m,
		logger:    slog.Default(),
	}
}

type CreateParams struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
	// Amount is a positive magnitude in the account currency.
	Amount         int64
	Type           Type
	TransferNature TransferNature
	// Destination fields describe the receiving leg of a common transfer.
	DestinationAccountID *uuid.UUID
	DestinationAmount    *int64
	CategoryID           *uuid.UUID
	Note                 string
	Time                 time.Time
	// RefundsTxID links the new transaction as a refund of an existing one.
	RefundsTxID *uuid.UUID
}

func (p CreateParams) validate() error {
	if p.Amount <= 0 {
		return apperr.Validation("amount must be positive")
	}

	if !p.TransferNature.Valid() {
		return apperr.Validation("unknown transfer nature %q", p.TransferNature)
	}

	if p.TransferNature != NatureCommonTransfer {
		if !p.Type.Valid() {
			return apperr.Validation("unknown transaction type %q", p.Type)
		}

		if p.DestinationAccountID != nil || p.DestinationAmount != nil {
			return apperr.Validation("destination is only allowed on common transfers")
		}

		if p.RefundsTxID != nil && p.TransferNature.IsTransfer() {
			return apperr.Validation("a transfer cannot be a refund")
		}

		return nil
	}

	if p.DestinationAccountID == nil || p.DestinationAmount == nil {
		return apperr.Validation("a transfer needs a destination account and amount")
	}

	if *p.DestinationAmount <= 0 {
		return apperr.Validation("destination amount must be positive")
	}

	if *p.DestinationAccountID == p.AccountID {
		return apperr.Validation("cannot transfer to the same account")
	}

	if p.RefundsTxID != nil {
		return apperr.Validation("a transfer cannot be a refund")
	}

	return nil
}

// Create records a transaction with its ledger and history effects. A
// common transfer yields both legs, source first.
func (s *Service) Create(ctx context.Context, params CreateParams) (created []*Transaction, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveMutation("transaction_create", start, err) }()

	if params.TransferNature == "" {
		params.TransferNature = NatureNotTransfer
	}

	if params.Time.IsZero() {
		params.Time = time.Now().UTC()
	}

	if err := params.validate(); err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error

		if params.TransferNature == NatureCommonTransfer {
			created, err = s.createTransfer(ctx, params)
		} else {
			created, err = s.createOrdinary(ctx, params)
		}

		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *Service) createOrdinary(ctx context.Context, params CreateParams) ([]*Transaction, error) {
	acc, err := s.accounts.Get(ctx, params.UserID, params.AccountID)
	if err != nil {
		return nil, err
	}

	refCur, err := s.converter.DefaultCurrency(ctx, params.UserID)
	if err != nil {
		return nil, err
	}

	tx := &Transaction{
		UserID:          params.UserID,
		AccountID:       acc.ID,
		CategoryID:      params.CategoryID,
		Amount:          params.Amount,
		CurrencyCode:    acc.CurrencyCode,
		RefCurrencyCode: refCur.Code,
		Type:            params.Type,
		TransferNature:  params.TransferNature,
		Note:            params.Note,
		Time:            params.Time,
	}

	if tx.RefAmount, err = s.refAmount(ctx, tx); err != nil {
		return nil, err
	}

	var original *Transaction

	if params.RefundsTxID != nil {
		original, err = s.repo.GetTransaction(ctx, params.UserID, *params.RefundsTxID)
		if err != nil {
			return nil, fmt.Errorf("getting refunded transaction: %w", err)
		}

		if err := s.validateRefund(ctx, original, tx); err != nil {
			s.metrics.RefundRejected(err)
			return nil, err
		}
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("creating transaction: %w", err)
	}

	if err := s.applyCreation(ctx, tx); err != nil {
		return nil, err
	}

	if original != nil {
		if _, err := s.linkRefund(ctx, original, tx); err != nil {
			return nil, err
		}
	}

	return []*Transaction{tx}, nil
}

func (s *Service) createTransfer(ctx context.Context, params CreateParams) ([]*Transaction, error) {
	from, err := s.accounts.Get(ctx, params.UserID, params.AccountID)
	if err != nil {
		return nil, err
	}

	to, err := s.accounts.Get(ctx, params.UserID, *params.DestinationAccountID)
	if err != nil {
		return nil, err
	}

	refCur, err := s.converter.DefaultCurrency(ctx, params.UserID)
	if err != nil {
		return nil, err
	}

	transferID := uuid.New()

	leg := func(acc *account.Account, amount int64, t Type) *Transaction {
		return &Transaction{
			UserID:          params.UserID,
			AccountID:       acc.ID,
			CategoryID:      params.CategoryID,
			Amount:          amount,
			CurrencyCode:    acc.CurrencyCode,
			RefCurrencyCode: refCur.Code,
			Type:            t,
			TransferNature:  NatureCommonTransfer,
			TransferID:      &transferID,
			Note:            params.Note,
			Time:            params.Time,
		}
	}

	out := leg(from, params.Amount, TypeExpense)
	in := leg(to, *params.DestinationAmount, TypeIncome)

	if err := s.transferRefAmounts(ctx, out, in); err != nil {
		return nil, err
	}

	for _, tx := range []*Transaction{out, in} {
		if err := s.repo.CreateTransaction(ctx, tx); err != nil {
			return nil, fmt.Errorf("creating transfer leg: %w", err)
		}
	}

	for _, tx := range byAccount(out, in) {
		if err := s.applyCreation(ctx, tx); err != nil {
			return nil, err
		}
	}

	return []*Transaction{out, in}, nil
}

func (s *Service) refAmount(ctx context.Context, tx *Transaction) (int64, error) {
	return s.converter.CalculateRefAmount(ctx, currency.RefAmountParams{
		Amount: tx.Amount,
		UserID: tx.UserID,
		Date:   tx.Time,
		Base:   currency.ByCode(tx.CurrencyCode),
	})
}

// transferRefAmounts prices both legs of a transfer. When one leg is in the
// reference currency its amount becomes the ref amount of both legs, so the
// transfer nets to zero in reference terms.
func (s *Service) transferRefAmounts(ctx context.Context, out, in *Transaction) error {
	switch {
	case out.CurrencyCode == out.RefCurrencyCode:
		out.RefAmount, in.RefAmount = out.Amount, out.Amount
	case in.CurrencyCode == in.RefCurrencyCode:
		out.RefAmount, in.RefAmount = in.Amount, in.Amount
	default:
		var err error

		if out.RefAmount, err = s.refAmount(ctx, out); err != nil {
			return err
		}

		if in.RefAmount, err = s.refAmount(ctx, in); err != nil {
			return err
		}
	}

	return nil
}

// byAccount orders rows by account so row locks are always taken in the same order.
func byAccount(txs ...*Transaction) []*Transaction {
	slices.SortStableFunc(txs, func(a, b *Transaction) int {
		return bytes.Compare(a.AccountID[:], b.AccountID[:])
	})

	return txs
}

func (s *Service) applyCreation(ctx context.Context, tx *Transaction) error {
	acc, err := s.accounts.ApplyBalanceDelta(ctx, account.DeltaParams{
		AccountID: tx.AccountID,
		UserID:    tx.UserID,
		Amount:    tx.Type.Signed(tx.Amount),
		RefAmount: tx.Type.Signed(tx.RefAmount),
	})
	if err != nil {
		return err
	}

	if acc == nil {
		return apperr.Unexpected("account %s vanished while recording transaction", tx.AccountID)
	}

	if acc.Type == account.TypeExternal {
		return s.history.UpsertDailySnapshot(ctx, balance.SnapshotParams{
			AccountID: acc.ID,
			Date:      tx.Time,
			Amount:    acc.RefCurrentBalance,
		})
	}

	return s.recordDelta(ctx, acc, tx.Time, tx.Type.Signed(tx.RefAmount))
}

func (s *Service) revert(ctx context.Context, tx *Transaction) error {
	acc, err := s.accounts.ApplyBalanceDelta(ctx, account.DeltaParams{
		AccountID:     tx.AccountID,
		UserID:        tx.UserID,
		PrevAmount:    tx.Type.Signed(tx.Amount),
		PrevRefAmount: tx.Type.Signed(tx.RefAmount),
	})
	if err != nil || acc == nil {
		return err
	}

	return s.recordDelta(ctx, acc, tx.Time, -tx.Type.Signed(tx.RefAmount))
}

// move replaces the effect of old with the effect of next, which may sit on
// another account or day.
func (s *Service) move(ctx context.Context, old, next *Transaction) error {
	if old.AccountID != next.AccountID {
		if err := s.revert(ctx, old); err != nil {
			return err
		}

		acc, err := s.accounts.ApplyBalanceDelta(ctx, account.DeltaParams{
			AccountID: next.AccountID,
			UserID:    next.UserID,
			Amount:    next.Type.Signed(next.Amount),
			RefAmount: next.Type.Signed(next.RefAmount),
		})
		if err != nil {
			return err
		}

		if acc == nil {
			return apperr.Unexpected("account %s vanished while moving transaction", next.AccountID)
		}

		return s.recordDelta(ctx, acc, next.Time, next.Type.Signed(next.RefAmount))
	}

	oldRef := old.Type.Signed(old.RefAmount)
	nextRef := next.Type.Signed(next.RefAmount)

	acc, err := s.accounts.ApplyBalanceDelta(ctx, account.DeltaParams{
		AccountID:     next.AccountID,
		UserID:        next.UserID,
		Amount:        next.Type.Signed(next.Amount),
		RefAmount:     nextRef,
		PrevAmount:    old.Type.Signed(old.Amount),
		PrevRefAmount: oldRef,
	})
	if err != nil || acc == nil {
		return err
	}

	if balance.StartOfDay(old.Time).Equal(balance.StartOfDay(next.Time)) {
		return s.recordDelta(ctx, acc, next.Time, nextRef-oldRef)
	}

	if err := s.recordDelta(ctx, acc, old.Time, -oldRef); err != nil {
		return err
	}

	return s.recordDelta(ctx, acc, next.Time, nextRef)
}

// recordDelta leaves external accounts alone, their history follows the
// provider's snapshots.
func (s *Service) recordDelta(ctx context.Context, acc *account.Account, at time.Time, ref int64) error {
	if ref == 0 || acc.Type == account.TypeExternal {
		return nil
	}

	return s.history.UpsertDailyDelta(ctx, balance.DeltaParams{
		AccountID: acc.ID,
		Date:      at,
		Amount:    ref,
		Base:      acc.RefInitialBalance,
	})
}

type UpdateParams struct {
	UserID     uuid.UUID
	ID         uuid.UUID
	AccountID  *uuid.UUID
	Amount     *int64
	Type       *Type
	Time       *time.Time
	Note       *string
	CategoryID *uuid.UUID
	// DestinationAmount sets the amount of the other leg of a common transfer.
	DestinationAmount *int64
}

func (p UpdateParams) validate() error {
	if p.Amount != nil && *p.Amount <= 0 {
		return apperr.Validation("amount must be positive")
	}

	if p.Type != nil && !p.Type.Valid() {
		return apperr.Validation("unknown transaction type %q", *p.Type)
	}

	if p.DestinationAmount != nil && *p.DestinationAmount <= 0 {
		return apperr.Validation("destination amount must be positive")
	}

	return nil
}

// Update changes a transaction and moves its ledger and history effects.
// Transfer siblings and refund bounds are checked before anything is written.
func (s *Service) Update(ctx context.Context, params UpdateParams) (updated *Transaction, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveMutation("transaction_update", start, err) }()

	if err := params.validate(); err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetTransaction(ctx, params.UserID, params.ID)
		if err != nil {
			return fmt.Errorf("getting transaction: %w", err)
		}

		next := *current
		if params.AccountID != nil {
			next.AccountID = *params.AccountID
		}

		if params.Amount != nil {
			next.Amount = *params.Amount
		}

		if params.Type != nil {
			next.Type = *params.Type
		}

		if params.Time != nil {
			next.Time = *params.Time
		}

		if params.Note != nil {
			next.Note = *params.Note
		}

		if params.CategoryID != nil {
			next.CategoryID = params.CategoryID
		}

		var sibling, nextSibling *Transaction

		if current.TransferNature == NatureCommonTransfer {
			if sibling, err = s.sibling(ctx, current); err != nil {
				return err
			}

			if next.Type != current.Type {
				return apperr.Validation("the type of a transfer leg cannot change")
			}

			if next.AccountID == sibling.AccountID {
				return apperr.Validation("both transfer legs cannot use the same account")
			}

			ns := *sibling
			ns.Time = next.Time

			if params.DestinationAmount != nil {
				ns.Amount = *params.DestinationAmount
			}

			nextSibling = &ns
		} else if params.DestinationAmount != nil {
			return apperr.Validation("destination amount is only allowed on common transfers")
		}

		if current.RefundLinked && next.Type != current.Type {
			return apperr.Validation("the type of a refund-linked transaction cannot change")
		}

		if next.AccountID != current.AccountID {
			acc, err := s.accounts.Get(ctx, params.UserID, next.AccountID)
			if err != nil {
				return err
			}

			next.CurrencyCode = acc.CurrencyCode
		}

		if err := s.reprice(ctx, current, &next, sibling, nextSibling); err != nil {
			return err
		}

		if current.RefundLinked {
			if err := s.checkRefundBounds(ctx, current, &next); err != nil {
				s.metrics.RefundRejected(err)
				return err
			}
		}

		type change struct{ old, next *Transaction }

		changes := []change{{current, &next}}
		if nextSibling != nil {
			changes = append(changes, change{sibling, nextSibling})
			slices.SortStableFunc(changes, func(a, b change) int {
				return bytes.Compare(a.next.AccountID[:], b.next.AccountID[:])
			})
		}

		for _, c := range changes {
			if err := s.move(ctx, c.old, c.next); err != nil {
				return err
			}

			if err := s.repo.UpdateTransaction(ctx, c.next); err != nil {
				return fmt.Errorf("updating transaction: %w", err)
			}
		}

		updated = &next

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func priced(old, next *Transaction) bool {
	return old.Amount == next.Amount && old.AccountID == next.AccountID && old.Time.Equal(next.Time)
}

// reprice recomputes ref amounts when an amount, account or time changed.
func (s *Service) reprice(ctx context.Context, current, next, sibling, nextSibling *Transaction) error {
	if priced(current, next) && (nextSibling == nil || priced(sibling, nextSibling)) {
		return nil
	}

	refCur, err := s.converter.DefaultCurrency(ctx, next.UserID)
	if err != nil {
		return err
	}

	next.RefCurrencyCode = refCur.Code

	if nextSibling == nil {
		next.RefAmount, err = s.refAmount(ctx, next)
		return err
	}

	nextSibling.RefCurrencyCode = refCur.Code

	out, in := next, nextSibling
	if out.Type == TypeIncome {
		out, in = in, out
	}

	return s.transferRefAmounts(ctx, out, in)
}

func (s *Service) sibling(ctx context.Context, tx *Transaction) (*Transaction, error) {
	if tx.TransferID == nil {
		return nil, apperr.Unexpected("transfer leg %s has no transfer id", tx.ID)
	}

	legs, err := s.repo.ListByTransferID(ctx, tx.UserID, *tx.TransferID)
	if err != nil {
		return nil, fmt.Errorf("listing transfer legs: %w", err)
	}

	for _, leg := range legs {
		if leg.ID != tx.ID {
			return leg, nil
		}
	}

	return nil, apperr.Unexpected("transfer %s has no second leg", *tx.TransferID)
}

// Delete removes a transaction and reverses its effects. Deleting a leg of a
// common transfer removes both legs.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) (err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveMutation("transaction_delete", start, err) }()

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		tx, err := s.repo.GetTransaction(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("getting transaction: %w", err)
		}

		legs := []*Transaction{tx}

		if tx.TransferNature == NatureCommonTransfer && tx.TransferID != nil {
			legs, err = s.repo.ListByTransferID(ctx, userID, *tx.TransferID)
			if err != nil {
				return fmt.Errorf("listing transfer legs: %w", err)
			}
		}

		deleted := make(map[uuid.UUID]bool, len(legs))

		var partners []uuid.UUID

		for _, leg := range byAccount(legs...) {
			p, err := s.repo.RefundPartners(ctx, leg.ID)
			if err != nil {
				return fmt.Errorf("listing refund partners: %w", err)
			}

			partners = append(partners, p...)

			if err := s.revert(ctx, leg); err != nil {
				return err
			}

			if err := s.repo.DeleteTransaction(ctx, leg.ID); err != nil {
				return fmt.Errorf("deleting transaction: %w", err)
			}

			deleted[leg.ID] = true
		}

		for _, p := range partners {
			if deleted[p] {
				continue
			}

			if err := s.refreshRefundFlag(ctx, userID, p); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	txs, err := s.repo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return txs, nil
}
