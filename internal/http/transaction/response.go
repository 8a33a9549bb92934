package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/letehaha/budget-tracker-be-sub001/internal/http/render"
	"github.com/letehaha/budget-tracker-be-sub001/internal/transaction"
)

type transactionResponse struct {
	ID              uuid.UUID                  `json:"id"`
	AccountID       uuid.UUID                  `json:"account_id"`
	CategoryID      *uuid.UUID                 `json:"category_id,omitempty"`
	Amount          int64                      `json:"amount"`
	AmountDisplay   string                     `json:"amount_display"`
	RefAmount       int64                      `json:"ref_amount"`
	CurrencyCode    string                     `json:"currency_code"`
	RefCurrencyCode string                     `json:"ref_currency_code"`
	Type            transaction.Type           `json:"type"`
	TransferNature  transaction.TransferNature `json:"transfer_nature"`
	TransferID      *uuid.UUID                 `json:"transfer_id,omitempty"`
	RefundLinked    bool                       `json:"refund_linked"`
	Note            string                     `json:"note,omitempty"`
	Time            time.Time                  `json:"time"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:              tx.ID,
		AccountID:       tx.AccountID,
		CategoryID:      tx.CategoryID,
		Amount:          tx.Amount,
		AmountDisplay:   render.Display(tx.Type.Signed(tx.Amount), tx.CurrencyCode),
		RefAmount:       tx.RefAmount,
		CurrencyCode:    tx.CurrencyCode,
		RefCurrencyCode: tx.RefCurrencyCode,
		Type:            tx.Type,
		TransferNature:  tx.TransferNature,
		TransferID:      tx.TransferID,
		RefundLinked:    tx.RefundLinked,
		Note:            tx.Note,
		Time:            tx.Time,
		CreatedAt:       tx.CreatedAt,
		UpdatedAt:       tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

type refundResponse struct {
	OriginalTxID uuid.UUID `json:"original_tx_id"`
	RefundTxID   uuid.UUID `json:"refund_tx_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func toRefundResponse(link *transaction.RefundLink) refundResponse {
	return refundResponse{
		OriginalTxID: link.OriginalTxID,
		RefundTxID:   link.RefundTxID,
		CreatedAt:    link.CreatedAt,
	}
}
