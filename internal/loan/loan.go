// Package loan manages the loan/commission ledger, split across one workbook
// sheet per calendar month.
package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("loan not found")

	// ErrNoSelection is returned when a delete is requested without any row
	// selected; it maps to an explicit "select a row first" message, never a
	// silent success.
	ErrNoSelection = errors.New("no rows selected")
)

// invoiceRate is the fixed fraction of the transacted amount estimated for
// the invoice.
const invoiceRate = 0.032

// Loan is one disbursement row. Commission, NetAmount, InvoiceEstimate and
// the two percentage ratios are views over the base fields: they are
// recomputed on every load and every mutation, and persisted values are
// overwritten rather than trusted.
type Loan struct {
	RowID            string
	Date             time.Time
	Agent            string
	Beneficiary      string
	PixKey           string
	TransactedAmount float64
	ReleasedAmount   float64
	Installments     int
	AgentPercent     float64
	InterestFee      float64
	AgentExtra       float64

	Commission       float64
	NetAmount        float64
	InvoiceEstimate  float64
	PctOfTransacted  float64
	PctOfReleased    float64
}

// Recompute derives the financial view fields from the base fields, rounding
// money to 2 decimals.
func (l *Loan) Recompute() {
	l.Commission = round2(l.ReleasedAmount * l.AgentPercent / 100)
	l.NetAmount = round2(l.TransactedAmount - l.ReleasedAmount - l.InterestFee - l.Commission - l.AgentExtra)
	l.InvoiceEstimate = round2(l.TransactedAmount * invoiceRate)

	l.PctOfTransacted = 0
	if l.TransactedAmount != 0 {
		l.PctOfTransacted = round2(l.NetAmount / l.TransactedAmount * 100)
	}

	l.PctOfReleased = 0
	if l.ReleasedAmount != 0 {
		l.PctOfReleased = round2(l.NetAmount / l.ReleasedAmount * 100)
	}
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
