package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dualbank/backoffice/internal/txlog"
	"github.com/dualbank/backoffice/internal/txlog/store"
	"github.com/dualbank/backoffice/internal/workbook"
)

func newStore(t *testing.T) (*store.Store, *workbook.Store) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "backoffice.xlsx")
	wb, err := workbook.Open(path)
	require.NoError(t, err)

	return store.New(wb), wb
}

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestStore_CreateTransactions(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	txs := []*txlog.Transaction{
		{TaxID: "12345678000190", Date: day(2026, 2, 10), Amount: 100, Status: txlog.StatusProcessed},
		{TaxID: "98765432000110", Date: day(2026, 2, 11), Amount: 50.25, Status: txlog.StatusPending},
	}
	require.NoError(t, s.CreateTransactions(ctx, txs))

	assert.NotEmpty(t, txs[0].RowID)
	assert.NotEmpty(t, txs[1].RowID)
	assert.NotEqual(t, txs[0].RowID, txs[1].RowID)

	got, err := s.ListTransactions(ctx, txlog.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 100.0, got[0].Amount)
	assert.Equal(t, txlog.StatusPending, got[1].Status)
}

func TestStore_ListTransactions_Filters(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateTransactions(ctx, []*txlog.Transaction{
		{TaxID: "12345678000190", Date: day(2026, 2, 10), Amount: 100, Status: txlog.StatusProcessed},
		{TaxID: "98765432000110", Date: day(2026, 2, 12), Amount: 50, Status: txlog.StatusProcessed},
		{TaxID: "12345678000190", Date: day(2026, 1, 5), Amount: 30, Status: txlog.StatusProcessed},
	}))

	byTaxID, err := s.ListTransactions(ctx, txlog.ListFilter{TaxID: "12.345.678/0001-90"})
	require.NoError(t, err)
	require.Len(t, byTaxID, 2)
	// Sorted by date, oldest first.
	assert.Equal(t, day(2026, 1, 5), byTaxID[0].Date)

	start := day(2026, 2, 11)
	byDate, err := s.ListTransactions(ctx, txlog.ListFilter{StartDate: &start})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "98765432000110", byDate[0].TaxID)
}

func TestStore_ListWeekly(t *testing.T) {
	s, wb := newStore(t)
	ctx := context.Background()

	snap, err := wb.LoadAll(ctx)
	require.NoError(t, err)

	weekly := snap.Table(workbook.WeeklySheets[1])
	weekly.Append(workbook.Row{
		"tax_id":      "12345678000190",
		"week":        "2",
		"amount":      "180",
		"recorded_at": "2026-02-09",
	})
	weekly.EnsureRowIDs()
	require.NoError(t, wb.SaveAll(ctx, snap))

	entries, err := s.ListWeekly(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "12345678000190", entries[0].TaxID)
	assert.Equal(t, 2, entries[0].Week)
	assert.Equal(t, 180.0, entries[0].Amount)
	assert.Equal(t, day(2026, 2, 9), entries[0].RecordedAt)
}
