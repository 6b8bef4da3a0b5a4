package loan

import (
	"time"

	"github.com/dualbank/backoffice/internal/loan"
)

type loanResponse struct {
	RowID            string    `json:"row_id"`
	Date             time.Time `json:"date"`
	Agent            string    `json:"agent,omitempty"`
	Beneficiary      string    `json:"beneficiary"`
	PixKey           string    `json:"pix_key,omitempty"`
	TransactedAmount float64   `json:"transacted_amount"`
	ReleasedAmount   float64   `json:"released_amount"`
	Installments     int       `json:"installments"`
	AgentPercent     float64   `json:"agent_percent"`
	InterestFee      float64   `json:"interest_fee"`
	AgentExtra       float64   `json:"agent_extra"`
	Commission       float64   `json:"commission"`
	NetAmount        float64   `json:"net_amount"`
	InvoiceEstimate  float64   `json:"invoice_estimate"`
	PctOfTransacted  float64   `json:"percent_transacted"`
	PctOfReleased    float64   `json:"percent_released"`
}

func toResponse(l *loan.Loan) loanResponse {
	return loanResponse{
		RowID:            l.RowID,
		Date:             l.Date,
		Agent:            l.Agent,
		Beneficiary:      l.Beneficiary,
		PixKey:           l.PixKey,
		TransactedAmount: l.TransactedAmount,
		ReleasedAmount:   l.ReleasedAmount,
		Installments:     l.Installments,
		AgentPercent:     l.AgentPercent,
		InterestFee:      l.InterestFee,
		AgentExtra:       l.AgentExtra,
		Commission:       l.Commission,
		NetAmount:        l.NetAmount,
		InvoiceEstimate:  l.InvoiceEstimate,
		PctOfTransacted:  l.PctOfTransacted,
		PctOfReleased:    l.PctOfReleased,
	}
}

func toResponseList(loans []*loan.Loan) []loanResponse {
	resp := make([]loanResponse, len(loans))
	for i, l := range loans {
		resp[i] = toResponse(l)
	}

	return resp
}
