package account

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/letehaha/budget-tracker-be-sub001/internal/account"
	"github.com/letehaha/budget-tracker-be-sub001/internal/http/auth"
	"github.com/letehaha/budget-tracker-be-sub001/internal/http/render"
)

type Handler struct {
	svc *account.Service
}

func NewHandler(svc *account.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/external-balance", h.reportExternalBalance)
	r.Get("/{id}/balances", h.balances)
}

func accountID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.JSON(w, http.StatusBadRequest, render.ErrorResponse{Error: "invalid id"})
		return uuid.Nil, false
	}

	return id, true
}

type createAccountRequest struct {
	Name           string       `json:"name" validate:"required,max=200"`
	CurrencyCode   string       `json:"currency_code" validate:"required,len=3"`
	Type           account.Type `json:"type" validate:"omitempty,oneof=system external"`
	InitialBalance int64        `json:"initial_balance"`
	CreditLimit    int64        `json:"credit_limit" validate:"gte=0"`
	IsEnabled      *bool        `json:"is_enabled"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if !render.Decode(w, r, &req) {
		return
	}

	acc, err := h.svc.Create(r.Context(), account.CreateParams{
		UserID:         auth.UserID(r.Context()),
		Name:           req.Name,
		CurrencyCode:   req.CurrencyCode,
		Type:           req.Type,
		InitialBalance: req.InitialBalance,
		CreditLimit:    req.CreditLimit,
		IsEnabled:      req.IsEnabled,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(acc))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(accounts))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	acc, err := h.svc.Get(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(acc))
}

type updateAccountRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	CreditLimit    *int64  `json:"credit_limit,omitempty" validate:"omitempty,gte=0"`
	IsEnabled      *bool   `json:"is_enabled,omitempty"`
	CurrentBalance *int64  `json:"current_balance,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	var req updateAccountRequest
	if !render.Decode(w, r, &req) {
		return
	}

	acc, err := h.svc.Update(r.Context(), account.UpdateParams{
		UserID:         auth.UserID(r.Context()),
		ID:             id,
		Name:           req.Name,
		CreditLimit:    req.CreditLimit,
		IsEnabled:      req.IsEnabled,
		CurrentBalance: req.CurrentBalance,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(acc))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), auth.UserID(r.Context()), id); err != nil {
		render.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type externalBalanceRequest struct {
	Balance int64     `json:"balance"`
	Time    time.Time `json:"time"`
}

func (h *Handler) reportExternalBalance(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	var req externalBalanceRequest
	if !render.Decode(w, r, &req) {
		return
	}

	acc, err := h.svc.ReportExternalBalance(r.Context(), account.ExternalBalanceParams{
		UserID:    auth.UserID(r.Context()),
		AccountID: id,
		Balance:   req.Balance,
		Time:      req.Time,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(acc))
}

func (h *Handler) balances(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	from, err := render.Date(r.URL.Query().Get("from"))
	if err != nil {
		render.Error(w, err)
		return
	}

	to, err := render.Date(r.URL.Query().Get("to"))
	if err != nil {
		render.Error(w, err)
		return
	}

	rows, err := h.svc.BalanceHistory(r.Context(), auth.UserID(r.Context()), id, from, to)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, toBalanceList(rows))
}
