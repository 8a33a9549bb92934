package account

import (
	"time"

	"github.com/google/uuid"

	"github.com/letehaha/budget-tracker-be-sub001/internal/account"
	"github.com/letehaha/budget-tracker-be-sub001/internal/balance"
	"github.com/letehaha/budget-tracker-be-sub001/internal/http/render"
)

type accountResponse struct {
	ID                    uuid.UUID    `json:"id"`
	Name                  string       `json:"name"`
	CurrencyCode          string       `json:"currency_code"`
	Type                  account.Type `json:"type"`
	InitialBalance        int64        `json:"initial_balance"`
	CurrentBalance        int64        `json:"current_balance"`
	CurrentBalanceDisplay string       `json:"current_balance_display"`
	RefInitialBalance     int64        `json:"ref_initial_balance"`
	RefCurrentBalance     int64        `json:"ref_current_balance"`
	CreditLimit           int64        `json:"credit_limit"`
	RefCreditLimit        int64        `json:"ref_credit_limit"`
	IsEnabled             bool         `json:"is_enabled"`
	CreatedAt             time.Time    `json:"created_at"`
	UpdatedAt             time.Time    `json:"updated_at"`
}

func toResponse(acc *account.Account) accountResponse {
	return accountResponse{
		ID:                    acc.ID,
		Name:                  acc.Name,
		CurrencyCode:          acc.CurrencyCode,
		Type:                  acc.Type,
		InitialBalance:        acc.InitialBalance,
		CurrentBalance:        acc.CurrentBalance,
		CurrentBalanceDisplay: render.Display(acc.CurrentBalance, acc.CurrencyCode),
		RefInitialBalance:     acc.RefInitialBalance,
		RefCurrentBalance:     acc.RefCurrentBalance,
		CreditLimit:           acc.CreditLimit,
		RefCreditLimit:        acc.RefCreditLimit,
		IsEnabled:             acc.IsEnabled,
		CreatedAt:             acc.CreatedAt,
		UpdatedAt:             acc.UpdatedAt,
	}
}

func toResponseList(accounts []*account.Account) []accountResponse {
	resp := make([]accountResponse, len(accounts))
	for i, acc := range accounts {
		resp[i] = toResponse(acc)
	}

	return resp
}

type balanceResponse struct {
	Date   string `json:"date"`
	Amount int64  `json:"amount"`
}

func toBalanceList(rows []*balance.Balance) []balanceResponse {
	resp := make([]balanceResponse, len(rows))
	for i, b := range rows {
		resp[i] = balanceResponse{Date: b.Date.Format(time.DateOnly), Amount: b.Amount}
	}

	return resp
}
