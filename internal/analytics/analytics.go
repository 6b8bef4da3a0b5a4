// Package analytics reshapes workbook tables into the rows the dashboards
// plot: long (entity, period, value) records, period-over-period deltas, a
// short-horizon forecast and sparse time buckets over transaction logs.
package analytics

import (
	"fmt"
	"sort"

	"github.com/dualbank/backoffice/internal/workbook"
)

// Record is one (entity, period, value) observation produced by reshaping a
// wide table.
type Record struct {
	Entity string  `json:"entity"`
	Period string  `json:"period"`
	Rank   int     `json:"-"`
	Value  float64 `json:"value"`
}

// Vocabulary fixes the mapping from wide period columns to display labels
// and their chronological rank, so plots sort by time rather than lexically.
type Vocabulary struct {
	columns []string
	labels  map[string]string
	ranks   map[string]int
}

// NewVocabulary pairs period columns with their labels; slice order is
// chronological rank.
func NewVocabulary(columns, labels []string) (*Vocabulary, error) {
	if len(columns) != len(labels) {
		return nil, fmt.Errorf("vocabulary: %d columns for %d labels", len(columns), len(labels))
	}

	v := &Vocabulary{
		columns: columns,
		labels:  make(map[string]string, len(columns)),
		ranks:   make(map[string]int, len(columns)),
	}

	for i, col := range columns {
		v.labels[col] = labels[i]
		v.ranks[col] = i
	}

	return v, nil
}

// Columns returns the period columns in chronological order.
func (v *Vocabulary) Columns() []string { return v.columns }

// Label returns the display label of rank i.
func (v *Vocabulary) Label(i int) string {
	return v.labels[v.columns[i]]
}

// NextLabel returns the label one period past rank i, wrapping around the
// cycle at the boundary.
func (v *Vocabulary) NextLabel(i int) string {
	return v.Label((i + 1) % len(v.columns))
}

// monthLabels are the dashboard labels for the fiscal December-first revenue
// cycle, index-aligned with workbook.RevenueColumns.
var monthLabels = []string{
	"December", "January", "February", "March", "April", "May",
	"June", "July", "August", "September", "October", "November",
}

// RevenueVocabulary describes the client registry's wide monthly revenue
// columns.
func RevenueVocabulary() *Vocabulary {
	v, err := NewVocabulary(workbook.RevenueColumns, monthLabels)
	if err != nil {
		panic(err) // both slices are package constants
	}

	return v
}

// WideToLong reshapes the wide table into one record per (entity, period)
// pair. Every requested period column must exist in the vocabulary and in
// the table; unknown columns are an error, never silently dropped. Output is
// sorted by entity then chronological rank.
func WideToLong(t *workbook.Table, entityCol string, periodCols []string, vocab *Vocabulary) ([]Record, error) {
	if !t.HasColumn(entityCol) {
		return nil, fmt.Errorf("wide to long: table %q has no column %q", t.Name, entityCol)
	}

	for _, col := range periodCols {
		if _, known := vocab.ranks[col]; !known {
			return nil, fmt.Errorf("wide to long: period column %q not in vocabulary", col)
		}

		if !t.HasColumn(col) {
			return nil, fmt.Errorf("wide to long: table %q has no period column %q", t.Name, col)
		}
	}

	records := make([]Record, 0, len(t.Rows)*len(periodCols))

	for _, row := range t.Rows {
		entity := row[entityCol]
		if entity == "" {
			continue
		}

		for _, col := range periodCols {
			value, err := workbook.ParseNumber(row[col])
			if err != nil {
				return nil, fmt.Errorf("wide to long: row %q: %w", entity, err)
			}

			records = append(records, Record{
				Entity: entity,
				Period: vocab.labels[col],
				Rank:   vocab.ranks[col],
				Value:  value,
			})
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Entity != records[j].Entity {
			return records[i].Entity < records[j].Entity
		}

		return records[i].Rank < records[j].Rank
	})

	return records, nil
}
