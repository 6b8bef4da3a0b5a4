// Package cohort tracks newly registered clients through their first 30
// days: each enrolled client carries a date→amount map of observed
// transactions and a running average over them.
package cohort

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("cohort record not found")
	ErrAlreadyEnrolled = errors.New("client already enrolled")
)

// Declared transaction frequency, as reported by the account manager.
const (
	FrequencyDaily     = "daily"
	FrequencySometimes = "sometimes"
	FrequencyRarely    = "rarely"
)

// Record is one enrolled client. A record is created only by explicit
// enrollment and removed only by explicit removal; new transactions loop it
// back onto itself with a refreshed average.
type Record struct {
	RowID          string
	TaxID          string
	EnrolledAt     time.Time
	Observations   map[string]float64
	Frequency      string
	RunningAverage float64
}

// Observe upserts the amount observed on the given day and refreshes the
// running average.
func (r *Record) Observe(day time.Time, amount float64) {
	if r.Observations == nil {
		r.Observations = map[string]float64{}
	}

	r.Observations[day.Format(time.DateOnly)] = amount
	r.RefreshAverage()
}

// RefreshAverage recomputes the running average as the arithmetic mean of
// every observed amount, rounded to 2 decimals. The persisted value is a
// view; it is never trusted across loads.
func (r *Record) RefreshAverage() {
	if len(r.Observations) == 0 {
		r.RunningAverage = 0
		return
	}

	var sum float64
	for _, v := range r.Observations {
		sum += v
	}

	mean := sum / float64(len(r.Observations))
	r.RunningAverage = decimal.NewFromFloat(mean).Round(2).InexactFloat64()
}
