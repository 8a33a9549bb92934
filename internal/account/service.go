package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/letehaha/budget-tracker-be-sub001/internal/apperr"
	"github.com/letehaha/budget-tracker-be-sub001/internal/balance"
	"github.com/letehaha/budget-tracker-be-sub001/internal/currency"
	"github.com/letehaha/budget-tracker-be-sub001/internal/metrics"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=account
type Converter interface {
	CalculateRefAmount(ctx context.Context, p currency.RefAmountParams) (int64, error)
}

type Currencies interface {
	GetCurrencyByCode(ctx context.Context, code string) (*currency.Currency, error)
}

type History interface {
	Open(ctx context.Context, accountID uuid.UUID, at time.Time, amount int64) error
	ShiftAll(ctx context.Context, accountID uuid.UUID, delta int64) error
	UpsertDailySnapshot(ctx context.Context, p balance.SnapshotParams) error
	History(ctx context.Context, q balance.HistoryQuery) ([]*balance.Balance, error)
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	repo       Repository
	currencies Currencies
	converter  Converter
	history    History
	tx         Transactor
	metrics    *metrics.Collector
	logger     *slog.Logger
}

func NewService(
	repo Repository,
	currencies Currencies,
	converter Converter,
	history History,
	tx Transactor,
	m *metrics.Collector,
) *Service {
	return &Service{
		repo:       repo,
		currencies: currencies,
		converter:  converter,
		history:    history,
		tx:         tx,
		metrics:    m,
		logger:     slog.Default(),
	}
}

// DeltaParams carries signed amounts: income positive, expense negative.
// Creation leaves the Prev fields zero and deletion leaves the new ones zero.
type DeltaParams struct {
	AccountID     uuid.UUID
	UserID        uuid.UUID
	Amount        int64
	RefAmount     int64
	PrevAmount    int64
	PrevRefAmount int64
}

// ApplyBalanceDelta moves the account balances by the difference between
// the new and previous effect of a transaction. A missing account is logged
// and skipped. External accounts are never moved here: the provider owns
// that balance and only ReportExternalBalance changes it.
func (s *Service) ApplyBalanceDelta(ctx context.Context, p DeltaParams) (*Account, error) {
	var updated *Account

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		acc, err := s.repo.GetAccountForUpdate(ctx, p.UserID, p.AccountID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				s.logger.Warn("skipping balance update for missing account", "account_id", p.AccountID)
				return nil
			}

			return fmt.Errorf("locking account: %w", err)
		}

		if acc.Type == TypeExternal {
			updated = acc
			return nil
		}

		delta := p.Amount - p.PrevAmount
		refDelta := p.RefAmount - p.PrevRefAmount

		if delta == 0 && refDelta == 0 {
			updated = acc
			return nil
		}

		updated, err = s.repo.AddToBalance(ctx, acc.ID, delta, refDelta)
		if err != nil {
			return fmt.Errorf("updating account balance: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

type CreateParams struct {
	UserID         uuid.UUID
	Name           string
	CurrencyCode   string
	Type           Type
	InitialBalance int64
	CreditLimit    int64
	IsEnabled      *bool
}

func (s *Service) Create(ctx context.Context, params CreateParams) (acc *Account, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveMutation("account_create", start, err) }()

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, apperr.Validation("account name is required")
	}

	accType := params.Type
	if accType == "" {
		accType = TypeSystem
	}

	if !accType.Valid() {
		return nil, apperr.Validation("unknown account type %q", params.Type)
	}

	code, ok := currency.NormalizeCode(params.CurrencyCode)
	if !ok {
		return nil, apperr.Validation("unknown currency code %q", params.CurrencyCode)
	}

	cur, err := s.currencies.GetCurrencyByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Validation("currency %s is not supported", code)
		}

		return nil, fmt.Errorf("getting currency: %w", err)
	}

	now := time.Now().UTC()

	refInitial, err := s.refAmount(ctx, params.UserID, cur.Code, params.InitialBalance, now)
	if err != nil {
		return nil, err
	}

	refLimit, err := s.refAmount(ctx, params.UserID, cur.Code, params.CreditLimit, now)
	if err != nil {
		return nil, err
	}

	enabled := true
	if params.IsEnabled != nil {
		enabled = *params.IsEnabled
	}

	acc = &Account{
		UserID:            params.UserID,
		Name:              name,
		CurrencyID:        cur.ID,
		CurrencyCode:      cur.Code,
		Type:              accType,
		InitialBalance:    params.InitialBalance,
		CurrentBalance:    params.InitialBalance,
		RefInitialBalance: refInitial,
		RefCurrentBalance: refInitial,
		CreditLimit:       params.CreditLimit,
		RefCreditLimit:    refLimit,
		IsEnabled:         enabled,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateAccount(ctx, acc); err != nil {
			return fmt.Errorf("creating account: %w", err)
		}

		return s.history.Open(ctx, acc.ID, now, acc.RefInitialBalance)
	})
	if err != nil {
		return nil, err
	}

	return acc, nil
}

func (s *Service) refAmount(ctx context.Context, userID uuid.UUID, code string, amount int64, at time.Time) (int64, error) {
	return s.converter.CalculateRefAmount(ctx, currency.RefAmountParams{
		Amount: amount,
		UserID: userID,
		Date:   at,
		Base:   currency.ByCode(code),
	})
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Account, error) {
	acc, err := s.repo.GetAccount(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("getting account: %w", err)
	}

	return acc, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Account, error) {
	accounts, err := s.repo.ListAccounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	return accounts, nil
}

type UpdateParams struct {
	UserID      uuid.UUID
	ID          uuid.UUID
	Name        *string
	CreditLimit *int64
	IsEnabled   *bool
	// CurrentBalance adjusts a system account. The difference is absorbed
	// into the initial balance and every history row moves with it.
	CurrentBalance *int64
}

func (s *Service) Update(ctx context.Context, params UpdateParams) (acc *Account, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveMutation("account_update", start, err) }()

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		acc, err = s.repo.GetAccountForUpdate(ctx, params.UserID, params.ID)
		if err != nil {
			return fmt.Errorf("getting account: %w", err)
		}

		now := time.Now().UTC()

		if params.Name != nil {
			name := strings.TrimSpace(*params.Name)
			if name == "" {
				return apperr.Validation("account name is required")
			}

			acc.Name = name
		}

		if params.IsEnabled != nil {
			acc.IsEnabled = *params.IsEnabled
		}

		if params.CreditLimit != nil && *params.CreditLimit != acc.CreditLimit {
			refLimit, err := s.refAmount(ctx, acc.UserID, acc.CurrencyCode, *params.CreditLimit, now)
			if err != nil {
				return err
			}

			acc.CreditLimit = *params.CreditLimit
			acc.RefCreditLimit = refLimit
		}

		if params.CurrentBalance != nil && *params.CurrentBalance != acc.CurrentBalance {
			if acc.Type == TypeExternal {
				return apperr.Validation("external account balances are reported by the provider")
			}

			diff := *params.CurrentBalance - acc.CurrentBalance

			refDiff, err := s.refAmount(ctx, acc.UserID, acc.CurrencyCode, diff, now)
			if err != nil {
				return err
			}

			acc.InitialBalance += diff
			acc.CurrentBalance += diff
			acc.RefInitialBalance += refDiff
			acc.RefCurrentBalance += refDiff

			if err := s.history.ShiftAll(ctx, acc.ID, refDiff); err != nil {
				return err
			}
		}

		if err := s.repo.UpdateAccount(ctx, acc); err != nil {
			return fmt.Errorf("updating account: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return acc, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) (err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveMutation("account_delete", start, err) }()

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetAccountForUpdate(ctx, userID, id); err != nil {
			return fmt.Errorf("getting account: %w", err)
		}

		if err := s.repo.DeleteAccount(ctx, userID, id); err != nil {
			return fmt.Errorf("deleting account: %w", err)
		}

		s.logger.Info("account deleted", "account_id", id, "user_id", userID)

		return nil
	})
}

type ExternalBalanceParams struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
	Balance   int64
	Time      time.Time
}

// ReportExternalBalance stores the balance a provider reported for an
// external account and snapshots it into the history.
func (s *Service) ReportExternalBalance(ctx context.Context, params ExternalBalanceParams) (acc *Account, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveMutation("account_report_balance", start, err) }()

	at := params.Time
	if at.IsZero() {
		at = time.Now().UTC()
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		acc, err = s.repo.GetAccountForUpdate(ctx, params.UserID, params.AccountID)
		if err != nil {
			return fmt.Errorf("getting account: %w", err)
		}

		if acc.Type != TypeExternal {
			return apperr.Validation("account %s is not an external account", acc.ID)
		}

		ref, err := s.refAmount(ctx, acc.UserID, acc.CurrencyCode, params.Balance, at)
		if err != nil {
			return err
		}

		acc.CurrentBalance = params.Balance
		acc.RefCurrentBalance = ref

		if err := s.repo.UpdateAccount(ctx, acc); err != nil {
			return fmt.Errorf("updating account: %w", err)
		}

		return s.history.UpsertDailySnapshot(ctx, balance.SnapshotParams{
			AccountID: acc.ID,
			Date:      at,
			Amount:    ref,
		})
	})
	if err != nil {
		return nil, err
	}

	return acc, nil
}

// BalanceHistory returns the history of one of the user's accounts.
func (s *Service) BalanceHistory(ctx context.Context, userID, accountID uuid.UUID, from, to *time.Time) ([]*balance.Balance, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, apperr.Validation("from must not be after to")
	}

	if _, err := s.repo.GetAccount(ctx, userID, accountID); err != nil {
		return nil, fmt.Errorf("getting account: %w", err)
	}

	return s.history.History(ctx, balance.HistoryQuery{AccountID: accountID, From: from, To: to})
}
