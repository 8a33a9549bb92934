package balance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/letehaha/budget-tracker-be-sub001/internal/apperr"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, logger: slog.Default()}
}

type DeltaParams struct {
	AccountID uuid.UUID
	Date      time.Time
	Amount    int64
	// Base is the balance carried into the first row of an account that has
	// no earlier history, normally its reference initial balance.
	Base int64
}

// UpsertDailyDelta records a signed change on the day of p.Date. A missing
// row starts from the carried-forward balance, and every later row moves
// by the same amount so each row stays the end-of-day balance.
func (s *Service) UpsertDailyDelta(ctx context.Context, p DeltaParams) error {
	if p.Amount == 0 {
		return nil
	}

	date := StartOfDay(p.Date)

	row, err := s.repo.GetBalance(ctx, p.AccountID, date)

	switch {
	case err == nil:
		row.Amount += p.Amount
	case errors.Is(err, apperr.ErrNotFound):
		carry, err := s.carriedBalance(ctx, p.AccountID, date, p.Base)
		if err != nil {
			return err
		}

		row = &Balance{AccountID: p.AccountID, Date: date, Amount: carry + p.Amount}
	default:
		return fmt.Errorf("getting balance: %w", err)
	}

	if err := s.repo.SaveBalance(ctx, row); err != nil {
		return fmt.Errorf("saving balance: %w", err)
	}

	if err := s.repo.ShiftAfter(ctx, p.AccountID, date, p.Amount); err != nil {
		return fmt.Errorf("shifting later balances: %w", err)
	}

	return nil
}

func (s *Service) carriedBalance(ctx context.Context, accountID uuid.UUID, date time.Time, base int64) (int64, error) {
	prior, err := s.repo.LatestBefore(ctx, accountID, date)
	if err == nil {
		return prior.Amount, nil
	}

	if errors.Is(err, apperr.ErrNotFound) {
		return base, nil
	}

	return 0, fmt.Errorf("getting prior balance: %w", err)
}

type SnapshotParams struct {
	AccountID uuid.UUID
	Date      time.Time
	Amount    int64
}

// UpsertDailySnapshot stores a provider-reported balance. A stored value
// higher than the reported one is kept, so late provider updates cannot
// lower the day's balance.
func (s *Service) UpsertDailySnapshot(ctx context.Context, p SnapshotParams) error {
	date := StartOfDay(p.Date)

	row, err := s.repo.GetBalance(ctx, p.AccountID, date)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return fmt.Errorf("getting balance: %w", err)
	}

	if row != nil && row.Amount > p.Amount {
		s.logger.Debug("keeping higher stored balance",
			"account_id", p.AccountID, "date", date, "stored", row.Amount, "reported", p.Amount)

		return nil
	}

	if err := s.repo.SaveBalance(ctx, &Balance{AccountID: p.AccountID, Date: date, Amount: p.Amount}); err != nil {
		return fmt.Errorf("saving balance snapshot: %w", err)
	}

	return nil
}

// ShiftAll moves the whole history of an account, used when its initial
// balance changes.
func (s *Service) ShiftAll(ctx context.Context, accountID uuid.UUID, delta int64) error {
	if delta == 0 {
		return nil
	}

	if err := s.repo.ShiftAll(ctx, accountID, delta); err != nil {
		return fmt.Errorf("shifting balances: %w", err)
	}

	return nil
}

// Open writes the first history row of a new account.
func (s *Service) Open(ctx context.Context, accountID uuid.UUID, at time.Time, amount int64) error {
	if err := s.repo.SaveBalance(ctx, &Balance{AccountID: accountID, Date: StartOfDay(at), Amount: amount}); err != nil {
		return fmt.Errorf("saving opening balance: %w", err)
	}

	return nil
}

type HistoryQuery struct {
	AccountID uuid.UUID
	From      *time.Time
	To        *time.Time
}

// History returns the rows inside the range. When the range holds no row it
// falls back, in order, to the latest row before From, then the earliest
// positive row after To. Either fallback means nothing changed in the range.
func (s *Service) History(ctx context.Context, q HistoryQuery) ([]*Balance, error) {
	var from, to *time.Time

	if q.From != nil {
		d := StartOfDay(*q.From)
		from = &d
	}

	if q.To != nil {
		d := StartOfDay(*q.To)
		to = &d
	}

	rows, err := s.repo.ListBalances(ctx, q.AccountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing balances: %w", err)
	}

	if len(rows) > 0 {
		return rows, nil
	}

	if from != nil {
		prior, err := s.repo.LatestBefore(ctx, q.AccountID, *from)
		if err == nil {
			return []*Balance{prior}, nil
		}

		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("getting prior balance: %w", err)
		}
	}

	if to != nil {
		next, err := s.repo.EarliestPositiveAfter(ctx, q.AccountID, *to)
		if err == nil {
			return []*Balance{next}, nil
		}

		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("getting next balance: %w", err)
		}
	}

	return []*Balance{}, nil
}
