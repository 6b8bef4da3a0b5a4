package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/dualbank/backoffice/internal/registry"
	"github.com/dualbank/backoffice/internal/txlog"
	"github.com/dualbank/backoffice/internal/workbook"
)

// Store persists the transaction log in the workbook.
type Store struct {
	wb *workbook.Store
}

func New(wb *workbook.Store) *Store {
	return &Store{wb: wb}
}

func (s *Store) ListTransactions(ctx context.Context, filter txlog.ListFilter) ([]*txlog.Transaction, error) {
	table, err := s.wb.Load(ctx, workbook.SheetTransactions)
	if err != nil {
		return nil, err
	}

	wantTaxID := registry.NormalizeTaxID(filter.TaxID)

	var txs []*txlog.Transaction

	for _, row := range table.Rows {
		tx, err := rowToTransaction(row)
		if err != nil {
			return nil, fmt.Errorf("transaction row %s: %w", row[workbook.ColRowID], err)
		}

		if wantTaxID != "" && tx.TaxID != wantTaxID {
			continue
		}

		if filter.StartDate != nil && tx.Date.Before(*filter.StartDate) {
			continue
		}

		if filter.EndDate != nil && tx.Date.After(*filter.EndDate) {
			continue
		}

		txs = append(txs, tx)
	}

	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.Before(txs[j].Date) })

	return txs, nil
}

// CreateTransactions appends the batch and saves the whole snapshot, so a
// second append starts from the post-mutation state.
func (s *Store) CreateTransactions(ctx context.Context, txs []*txlog.Transaction) error {
	snap, err := s.wb.LoadAll(ctx)
	if err != nil {
		return err
	}

	table := snap.Table(workbook.SheetTransactions)

	for _, tx := range txs {
		table.Append(transactionToRow(tx))
	}

	table.EnsureRowIDs()

	for i, tx := range txs {
		tx.RowID = table.Rows[len(table.Rows)-len(txs)+i][workbook.ColRowID]
	}

	return s.wb.SaveAll(ctx, snap)
}

// ListWeekly concatenates every populated weekly detail sheet.
func (s *Store) ListWeekly(ctx context.Context) ([]*txlog.WeeklyEntry, error) {
	snap, err := s.wb.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	var entries []*txlog.WeeklyEntry

	for _, name := range workbook.WeeklySheets {
		table := snap.Table(name)
		if table == nil {
			continue
		}

		for _, row := range table.Rows {
			entry, err := rowToWeekly(row)
			if err != nil {
				return nil, fmt.Errorf("weekly row %s in %s: %w", row[workbook.ColRowID], name, err)
			}

			entries = append(entries, entry)
		}
	}

	return entries, nil
}

func rowToTransaction(row workbook.Row) (*txlog.Transaction, error) {
	date, err := workbook.ParseDate(row["date"])
	if err != nil {
		return nil, err
	}

	amount, err := workbook.ParseNumber(row["amount"])
	if err != nil {
		return nil, err
	}

	return &txlog.Transaction{
		RowID:  row[workbook.ColRowID],
		TaxID:  registry.NormalizeTaxID(row["tax_id"]),
		Date:   date,
		Amount: amount,
		Status: row["status"],
	}, nil
}

func transactionToRow(tx *txlog.Transaction) workbook.Row {
	return workbook.Row{
		"tax_id":          tx.TaxID,
		"date":            workbook.FormatDate(tx.Date),
		"amount":          workbook.FormatNumber(tx.Amount),
		"status":          tx.Status,
		workbook.ColRowID: tx.RowID,
	}
}

func rowToWeekly(row workbook.Row) (*txlog.WeeklyEntry, error) {
	week, err := workbook.ParseNumber(row["week"])
	if err != nil {
		return nil, err
	}

	amount, err := workbook.ParseNumber(row["amount"])
	if err != nil {
		return nil, err
	}

	recordedAt, err := workbook.ParseDate(row["recorded_at"])
	if err != nil {
		return nil, err
	}

	return &txlog.WeeklyEntry{
		RowID:      row[workbook.ColRowID],
		TaxID:      registry.NormalizeTaxID(row["tax_id"]),
		Week:       int(week),
		Amount:     amount,
		RecordedAt: recordedAt,
	}, nil
}
