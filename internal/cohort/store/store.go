package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dualbank/backoffice/internal/cohort"
	"github.com/dualbank/backoffice/internal/registry"
	"github.com/dualbank/backoffice/internal/txlog"
	"github.com/dualbank/backoffice/internal/workbook"
)

// Store persists cohort records in the 30-day analysis sheet. The
// observation map lives JSON-encoded in a single cell, mirroring how the
// sheet has always been laid out.
type Store struct {
	wb *workbook.Store
}

func New(wb *workbook.Store) *Store {
	return &Store{wb: wb}
}

func (s *Store) ListRecords(ctx context.Context) ([]*cohort.Record, error) {
	table, err := s.wb.Load(ctx, workbook.SheetCohort)
	if err != nil {
		return nil, err
	}

	records := make([]*cohort.Record, 0, len(table.Rows))

	for _, row := range table.Rows {
		rec, err := rowToRecord(row)
		if err != nil {
			return nil, fmt.Errorf("cohort row %s: %w", row[workbook.ColRowID], err)
		}

		records = append(records, rec)
	}

	return records, nil
}

func (s *Store) GetRecord(ctx context.Context, taxID string) (*cohort.Record, error) {
	records, err := s.ListRecords(ctx)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.TaxID == taxID {
			return rec, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", cohort.ErrNotFound, taxID)
}

func (s *Store) CreateRecord(ctx context.Context, rec *cohort.Record) error {
	snap, err := s.wb.LoadAll(ctx)
	if err != nil {
		return err
	}

	if err := upsertRecord(snap, rec); err != nil {
		return err
	}

	return s.wb.SaveAll(ctx, snap)
}

// SaveObservation writes the updated cohort record and the new transaction
// row out of one snapshot, so the two sheets cannot drift apart on a failed
// save.
func (s *Store) SaveObservation(ctx context.Context, rec *cohort.Record, tx *txlog.Transaction) error {
	snap, err := s.wb.LoadAll(ctx)
	if err != nil {
		return err
	}

	if err := upsertRecord(snap, rec); err != nil {
		return err
	}

	txTable := snap.Table(workbook.SheetTransactions)
	txTable.Append(workbook.Row{
		"tax_id": tx.TaxID,
		"date":   workbook.FormatDate(tx.Date),
		"amount": workbook.FormatNumber(tx.Amount),
		"status": tx.Status,
	})
	txTable.EnsureRowIDs()
	tx.RowID = txTable.Rows[len(txTable.Rows)-1][workbook.ColRowID]

	return s.wb.SaveAll(ctx, snap)
}

func (s *Store) DeleteRecord(ctx context.Context, taxID string) error {
	snap, err := s.wb.LoadAll(ctx)
	if err != nil {
		return err
	}

	table := snap.Table(workbook.SheetCohort)
	found := false

	kept := table.Rows[:0]

	for _, row := range table.Rows {
		if registry.NormalizeTaxID(row["tax_id"]) == taxID {
			found = true
			continue
		}

		kept = append(kept, row)
	}

	if !found {
		return fmt.Errorf("%w: %s", cohort.ErrNotFound, taxID)
	}

	table.Rows = kept

	return s.wb.SaveAll(ctx, snap)
}

// upsertRecord replaces the row matching the record's tax ID, or appends a
// new one.
func upsertRecord(snap *workbook.Snapshot, rec *cohort.Record) error {
	table := snap.Table(workbook.SheetCohort)

	row, err := recordToRow(rec)
	if err != nil {
		return err
	}

	for i, existing := range table.Rows {
		if registry.NormalizeTaxID(existing["tax_id"]) == rec.TaxID {
			row[workbook.ColRowID] = existing[workbook.ColRowID]
			table.Rows[i] = row
			rec.RowID = row[workbook.ColRowID]

			return nil
		}
	}

	table.Append(row)
	table.EnsureRowIDs()
	rec.RowID = table.Rows[len(table.Rows)-1][workbook.ColRowID]

	return nil
}

func rowToRecord(row workbook.Row) (*cohort.Record, error) {
	enrolledAt, err := workbook.ParseDate(row["enrolled_at"])
	if err != nil {
		return nil, err
	}

	observations := map[string]float64{}

	if cell := row["observations"]; cell != "" {
		if err := json.Unmarshal([]byte(cell), &observations); err != nil {
			return nil, fmt.Errorf("observations cell: %w", err)
		}
	}

	rec := &cohort.Record{
		RowID:        row[workbook.ColRowID],
		TaxID:        registry.NormalizeTaxID(row["tax_id"]),
		EnrolledAt:   enrolledAt,
		Observations: observations,
		Frequency:    row["frequency"],
	}

	// The persisted average is a derived view; recompute rather than trust it.
	rec.RefreshAverage()

	return rec, nil
}

func recordToRow(rec *cohort.Record) (workbook.Row, error) {
	observations, err := json.Marshal(rec.Observations)
	if err != nil {
		return nil, fmt.Errorf("encoding observations: %w", err)
	}

	return workbook.Row{
		"tax_id":          rec.TaxID,
		"enrolled_at":     workbook.FormatDate(rec.EnrolledAt),
		"observations":    string(observations),
		"frequency":       rec.Frequency,
		"running_average": workbook.FormatNumber(rec.RunningAverage),
		workbook.ColRowID: rec.RowID,
	}, nil
}
