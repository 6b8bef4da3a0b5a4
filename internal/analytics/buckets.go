package analytics

import (
	"fmt"
	"sort"
	"time"
)

// Observation is one dated amount from a transaction log.
type Observation struct {
	Date   time.Time
	Amount float64
}

// Bucket is one aggregated time slot. Buckets exist only for observed slots;
// empty days or weeks are never synthesized, matching the chart layer which
// plots observed points only.
type Bucket struct {
	Key   string    `json:"key"`
	Date  time.Time `json:"date"`
	Total float64   `json:"total"`
	Count int       `json:"count"`
}

// DailyBuckets groups observations by calendar day, summing amounts and
// counting occurrences, sorted chronologically.
func DailyBuckets(obs []Observation) []Bucket {
	return bucketize(obs, func(t time.Time) (string, time.Time) {
		day := t.Truncate(24 * time.Hour)
		return day.Format(time.DateOnly), day
	})
}

// WeekOfMonth returns the 1-based week-within-month slot of t, in the fixed
// 7-day blocks the weekly detail sheets use (days 1-7 are week 1).
func WeekOfMonth(t time.Time) int {
	return (t.Day()-1)/7 + 1
}

// WeeklyBuckets groups observations by (month, week-within-month).
func WeeklyBuckets(obs []Observation) []Bucket {
	return bucketize(obs, func(t time.Time) (string, time.Time) {
		week := WeekOfMonth(t)
		start := time.Date(t.Year(), t.Month(), (week-1)*7+1, 0, 0, 0, 0, t.Location())

		return fmt.Sprintf("%s-w%d", start.Format("2006-01"), week), start
	})
}

func bucketize(obs []Observation, slot func(time.Time) (string, time.Time)) []Bucket {
	byKey := make(map[string]*Bucket)

	for _, o := range obs {
		key, start := slot(o.Date)

		b, ok := byKey[key]
		if !ok {
			b = &Bucket{Key: key, Date: start}
			byKey[key] = b
		}

		b.Total += o.Amount
		b.Count++
	}

	out := make([]Bucket, 0, len(byKey))
	for _, b := range byKey {
		out = append(out, *b)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	return out
}
