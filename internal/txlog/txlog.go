// Package txlog manages the flat transactions sheet: one row per payment
// event, many events per client.
package txlog

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("transaction not found")

// Status values of a logged transaction.
const (
	StatusProcessed = "PROCESSED"
	StatusPending   = "PENDING"
	StatusReversed  = "REVERSED"
)

// Transaction is one payment event tied to a client by tax ID.
type Transaction struct {
	RowID  string
	TaxID  string
	Date   time.Time
	Amount float64
	Status string
}

// WeeklyEntry is one row of an optional per-month weekly detail sheet.
type WeeklyEntry struct {
	RowID      string
	TaxID      string
	Week       int
	Amount     float64
	RecordedAt time.Time
}
