package store

import (
	"context"
	"fmt"

	"github.com/dualbank/backoffice/internal/registry"
	"github.com/dualbank/backoffice/internal/workbook"
)

// Store persists clients in the workbook's master registry sheet.
type Store struct {
	wb *workbook.Store
}

func New(wb *workbook.Store) *Store {
	return &Store{wb: wb}
}

func (s *Store) ListClients(ctx context.Context) ([]*registry.Client, error) {
	table, err := s.wb.Load(ctx, workbook.SheetClients)
	if err != nil {
		return nil, err
	}

	clients := make([]*registry.Client, 0, len(table.Rows))

	for _, row := range table.Rows {
		c, err := rowToClient(row)
		if err != nil {
			return nil, fmt.Errorf("client row %s: %w", row[workbook.ColRowID], err)
		}

		clients = append(clients, c)
	}

	return clients, nil
}

func (s *Store) GetClient(ctx context.Context, taxID string) (*registry.Client, error) {
	clients, err := s.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range clients {
		if c.TaxID == taxID {
			return c, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", registry.ErrNotFound, taxID)
}

// CreateClient appends one registry row, carrying every other sheet of the
// snapshot forward unchanged.
func (s *Store) CreateClient(ctx context.Context, c *registry.Client) error {
	snap, err := s.wb.LoadAll(ctx)
	if err != nil {
		return err
	}

	table := snap.Table(workbook.SheetClients)
	table.Append(clientToRow(c))
	table.EnsureRowIDs()

	c.RowID = table.Rows[len(table.Rows)-1][workbook.ColRowID]

	return s.wb.SaveAll(ctx, snap)
}

func rowToClient(row workbook.Row) (*registry.Client, error) {
	registeredAt, err := workbook.ParseDate(row["registered_at"])
	if err != nil {
		return nil, err
	}

	approvedAt, err := workbook.ParseDate(row["approved_at"])
	if err != nil {
		return nil, err
	}

	revenue := make(map[string]float64, len(workbook.RevenueColumns))

	for _, col := range workbook.RevenueColumns {
		v, err := workbook.ParseNumber(row[col])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}

		revenue[col] = v
	}

	return &registry.Client{
		RowID:          row[workbook.ColRowID],
		RegisteredAt:   registeredAt,
		ApprovedAt:     approvedAt,
		Name:           row["name"],
		TaxID:          registry.NormalizeTaxID(row["tax_id"]),
		ContactName:    row["contact_name"],
		ContactPhone:   row["contact_phone"],
		ContactTaxID:   registry.NormalizeTaxID(row["contact_tax_id"]),
		Representative: row["representative"],
		PortalStatus:   row["portal_status"],
		AcquirerStatus: row["acquirer_status"],
		SubStatus:      row["sub_status"],
		AcquirerEmail:  row["acquirer_email"],
		Plan:           row["plan"],
		Status:         row["status"],
		Revenue:        revenue,
	}, nil
}

func clientToRow(c *registry.Client) workbook.Row {
	row := workbook.Row{
		"registered_at":   workbook.FormatDate(c.RegisteredAt),
		"approved_at":     workbook.FormatDate(c.ApprovedAt),
		"name":            c.Name,
		"tax_id":          c.TaxID,
		"contact_name":    c.ContactName,
		"contact_phone":   c.ContactPhone,
		"contact_tax_id":  c.ContactTaxID,
		"representative":  c.Representative,
		"portal_status":   c.PortalStatus,
		"acquirer_status": c.AcquirerStatus,
		"sub_status":      c.SubStatus,
		"acquirer_email":  c.AcquirerEmail,
		"plan":            c.Plan,
		"status":          c.Status,
		workbook.ColRowID: c.RowID,
	}

	for _, col := range workbook.RevenueColumns {
		row[col] = workbook.FormatNumber(c.Revenue[col])
	}

	return row
}
