package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/dualbank/backoffice/internal/loan"
	"github.com/dualbank/backoffice/internal/workbook"
)

// Store persists the loan ledger across the twelve monthly workbook sheets.
// Loads concatenate every month; saves re-split rows by loan date, so a row
// whose date was edited migrates to the right sheet on the next write.
type Store struct {
	wb *workbook.Store
}

func New(wb *workbook.Store) *Store {
	return &Store{wb: wb}
}

func (s *Store) ListLoans(ctx context.Context, filter loan.ListFilter) ([]*loan.Loan, error) {
	snap, err := s.wb.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	loans, err := loadLoans(snap)
	if err != nil {
		return nil, err
	}

	var out []*loan.Loan

	for _, l := range loans {
		if filter.Agent != "" && l.Agent != filter.Agent {
			continue
		}

		if filter.StartDate != nil && l.Date.Before(*filter.StartDate) {
			continue
		}

		if filter.EndDate != nil && l.Date.After(*filter.EndDate) {
			continue
		}

		out = append(out, l)
	}

	return out, nil
}

// CreateLoan appends one row and rewrites every loan sheet with freshly
// derived fields, carrying the rest of the workbook forward unchanged.
func (s *Store) CreateLoan(ctx context.Context, l *loan.Loan) error {
	snap, err := s.wb.LoadAll(ctx)
	if err != nil {
		return err
	}

	loans, err := loadLoans(snap)
	if err != nil {
		return err
	}

	l.RowID = uuid.NewString()
	loans = append(loans, l)

	rebuildSheets(snap, loans)

	return s.wb.SaveAll(ctx, snap)
}

func (s *Store) DeleteLoans(ctx context.Context, rowIDs []string) (int, error) {
	snap, err := s.wb.LoadAll(ctx)
	if err != nil {
		return 0, err
	}

	loans, err := loadLoans(snap)
	if err != nil {
		return 0, err
	}

	wanted := make(map[string]struct{}, len(rowIDs))
	for _, id := range rowIDs {
		wanted[id] = struct{}{}
	}

	kept := loans[:0]
	removed := 0

	for _, l := range loans {
		if _, ok := wanted[l.RowID]; ok {
			removed++
			continue
		}

		kept = append(kept, l)
	}

	if removed == 0 {
		return 0, nil
	}

	rebuildSheets(snap, kept)

	return removed, s.wb.SaveAll(ctx, snap)
}

// loadLoans concatenates the monthly sheets in calendar order and recomputes
// every derived field, discarding whatever stale values were persisted.
func loadLoans(snap *workbook.Snapshot) ([]*loan.Loan, error) {
	var loans []*loan.Loan

	for _, name := range workbook.LoanSheets {
		table := snap.Table(name)
		if table == nil {
			continue
		}

		for _, row := range table.Rows {
			l, err := rowToLoan(row)
			if err != nil {
				return nil, fmt.Errorf("loan row %s in %s: %w", row[workbook.ColRowID], name, err)
			}

			loans = append(loans, l)
		}
	}

	sort.SliceStable(loans, func(i, j int) bool { return loans[i].Date.Before(loans[j].Date) })

	return loans, nil
}

func rebuildSheets(snap *workbook.Snapshot, loans []*loan.Loan) {
	for _, name := range workbook.LoanSheets {
		spec, _ := workbook.SpecFor(name)
		*snap.Table(name) = *workbook.NewTable(spec)
	}

	for _, l := range loans {
		l.Recompute()

		sheet := workbook.LoanSheets[int(l.Date.Month())-1]
		snap.Table(sheet).Append(loanToRow(l))
	}
}

func rowToLoan(row workbook.Row) (*loan.Loan, error) {
	date, err := workbook.ParseDate(row["date"])
	if err != nil {
		return nil, err
	}

	nums := map[string]float64{}

	for _, col := range []string{
		"transacted_amount", "released_amount", "installments",
		"agent_percent", "interest_fee", "agent_extra",
	} {
		v, err := workbook.ParseNumber(row[col])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}

		nums[col] = v
	}

	l := &loan.Loan{
		RowID:            row[workbook.ColRowID],
		Date:             date,
		Agent:            row["agent"],
		Beneficiary:      row["beneficiary"],
		PixKey:           row["pix_key"],
		TransactedAmount: nums["transacted_amount"],
		ReleasedAmount:   nums["released_amount"],
		Installments:     int(nums["installments"]),
		AgentPercent:     nums["agent_percent"],
		InterestFee:      nums["interest_fee"],
		AgentExtra:       nums["agent_extra"],
	}
	l.Recompute()

	return l, nil
}

func loanToRow(l *loan.Loan) workbook.Row {
	return workbook.Row{
		"date":               workbook.FormatDate(l.Date),
		"agent":              l.Agent,
		"beneficiary":        l.Beneficiary,
		"pix_key":            l.PixKey,
		"transacted_amount":  workbook.FormatNumber(l.TransactedAmount),
		"released_amount":    workbook.FormatNumber(l.ReleasedAmount),
		"installments":       workbook.FormatNumber(float64(l.Installments)),
		"agent_percent":      workbook.FormatNumber(l.AgentPercent),
		"interest_fee":       workbook.FormatNumber(l.InterestFee),
		"agent_extra":        workbook.FormatNumber(l.AgentExtra),
		"commission":         workbook.FormatNumber(l.Commission),
		"net_amount":         workbook.FormatNumber(l.NetAmount),
		"invoice_estimate":   workbook.FormatNumber(l.InvoiceEstimate),
		"percent_transacted": workbook.FormatNumber(l.PctOfTransacted),
		"percent_released":   workbook.FormatNumber(l.PctOfReleased),
		workbook.ColRowID:    l.RowID,
	}
}
