package transaction

import (
	"time"

	"github.com/dualbank/backoffice/internal/txlog"
)

type transactionResponse struct {
	RowID  string    `json:"row_id"`
	TaxID  string    `json:"tax_id"`
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
	Status string    `json:"status"`
}

func toResponse(tx *txlog.Transaction) transactionResponse {
	return transactionResponse{
		RowID:  tx.RowID,
		TaxID:  tx.TaxID,
		Date:   tx.Date,
		Amount: tx.Amount,
		Status: tx.Status,
	}
}

func toResponseList(txs []*txlog.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
