package transaction

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/letehaha/budget-tracker-be-sub001/internal/http/auth"
	"github.com/letehaha/budget-tracker-be-sub001/internal/http/render"
	"github.com/letehaha/budget-tracker-be-sub001/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/link", h.link)
	r.Post("/unlink", h.unlink)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) RefundRoutes(r chi.Router) {
	r.Post("/", h.createRefund)
	r.Delete("/{originalID}/{refundID}", h.removeRefund)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		render.JSON(w, http.StatusBadRequest, render.ErrorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}

	return id, true
}

type createTransactionRequest struct {
	AccountID            uuid.UUID                  `json:"account_id" validate:"required"`
	Amount               int64                      `json:"amount" validate:"gt=0"`
	Type                 transaction.Type           `json:"type" validate:"omitempty,oneof=income expense"`
	TransferNature       transaction.TransferNature `json:"transfer_nature" validate:"omitempty,oneof=not_transfer common_transfer transfer_out_wallet"`
	DestinationAccountID *uuid.UUID                 `json:"destination_account_id,omitempty"`
	DestinationAmount    *int64                     `json:"destination_amount,omitempty" validate:"omitempty,gt=0"`
	CategoryID           *uuid.UUID                 `json:"category_id,omitempty"`
	Note                 string                     `json:"note" validate:"max=2000"`
	Time                 time.Time                  `json:"time"`
	RefundsTxID          *uuid.UUID                 `json:"refunds_tx_id,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if !render.Decode(w, r, &req) {
		return
	}

	txs, err := h.svc.Create(r.Context(), transaction.CreateParams{
		UserID:               auth.UserID(r.Context()),
		AccountID:            req.AccountID,
		Amount:               req.Amount,
		Type:                 req.Type,
		TransferNature:       req.TransferNature,
		DestinationAccountID: req.DestinationAccountID,
		DestinationAmount:    req.DestinationAmount,
		CategoryID:           req.CategoryID,
		Note:                 req.Note,
		Time:                 req.Time,
		RefundsTxID:          req.RefundsTxID,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponseList(txs))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := transaction.ListFilter{UserID: auth.UserID(r.Context())}

	if s := r.URL.Query().Get("account_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			render.JSON(w, http.StatusBadRequest, render.ErrorResponse{Error: "invalid account_id"})
			return
		}

		filter.AccountID = &id
	}

	var err error

	if filter.StartDate, err = render.Date(r.URL.Query().Get("start_date")); err != nil {
		render.Error(w, err)
		return
	}

	if filter.EndDate, err = render.Date(r.URL.Query().Get("end_date")); err != nil {
		render.Error(w, err)
		return
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	tx, err := h.svc.Get(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(tx))
}

type updateTransactionRequest struct {
	AccountID         *uuid.UUID        `json:"account_id,omitempty"`
	Amount            *int64            `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Type              *transaction.Type `json:"type,omitempty" validate:"omitempty,oneof=income expense"`
	Time              *time.Time        `json:"time,omitempty"`
	Note              *string           `json:"note,omitempty" validate:"omitempty,max=2000"`
	CategoryID        *uuid.UUID        `json:"category_id,omitempty"`
	DestinationAmount *int64            `json:"destination_amount,omitempty" validate:"omitempty,gt=0"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateTransactionRequest
	if !render.Decode(w, r, &req) {
		return
	}

	tx, err := h.svc.Update(r.Context(), transaction.UpdateParams{
		UserID:            auth.UserID(r.Context()),
		ID:                id,
		AccountID:         req.AccountID,
		Amount:            req.Amount,
		Type:              req.Type,
		Time:              req.Time,
		Note:              req.Note,
		CategoryID:        req.CategoryID,
		DestinationAmount: req.DestinationAmount,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), auth.UserID(r.Context()), id); err != nil {
		render.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type linkRequest struct {
	// Pairs are (base, opposite) transaction ids.
	Pairs [][2]uuid.UUID `json:"pairs" validate:"required,min=1"`
}

func (h *Handler) link(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if !render.Decode(w, r, &req) {
		return
	}

	linked, err := h.svc.Link(r.Context(), auth.UserID(r.Context()), req.Pairs)
	if err != nil {
		render.Error(w, err)
		return
	}

	resp := make([][2]transactionResponse, len(linked))
	for i, pair := range linked {
		resp[i] = [2]transactionResponse{toResponse(pair[0]), toResponse(pair[1])}
	}

	render.JSON(w, http.StatusOK, resp)
}

type unlinkRequest struct {
	TransferIDs []uuid.UUID `json:"transfer_ids" validate:"required,min=1"`
}

func (h *Handler) unlink(w http.ResponseWriter, r *http.Request) {
	var req unlinkRequest
	if !render.Decode(w, r, &req) {
		return
	}

	txs, err := h.svc.Unlink(r.Context(), auth.UserID(r.Context()), req.TransferIDs)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(txs))
}

type createRefundRequest struct {
	OriginalTxID uuid.UUID `json:"original_tx_id" validate:"required"`
	RefundTxID   uuid.UUID `json:"refund_tx_id" validate:"required"`
}

func (h *Handler) createRefund(w http.ResponseWriter, r *http.Request) {
	var req createRefundRequest
	if !render.Decode(w, r, &req) {
		return
	}

	link, err := h.svc.CreateRefund(r.Context(), transaction.RefundParams{
		UserID:       auth.UserID(r.Context()),
		OriginalTxID: req.OriginalTxID,
		RefundTxID:   req.RefundTxID,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, toRefundResponse(link))
}

func (h *Handler) removeRefund(w http.ResponseWriter, r *http.Request) {
	originalID, ok := pathID(w, r, "originalID")
	if !ok {
		return
	}

	refundID, ok := pathID(w, r, "refundID")
	if !ok {
		return
	}

	err := h.svc.RemoveRefund(r.Context(), transaction.RefundParams{
		UserID:       auth.UserID(r.Context()),
		OriginalTxID: originalID,
		RefundTxID:   refundID,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
