package analytics_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dualbank/backoffice/internal/analytics"
	"github.com/dualbank/backoffice/internal/workbook"
)

func seedWorkbook(t *testing.T) *workbook.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "backoffice.xlsx")
	s, err := workbook.Open(path)
	require.NoError(t, err)

	ctx := context.Background()

	snap, err := s.LoadAll(ctx)
	require.NoError(t, err)

	clients := snap.Table(workbook.SheetClients)
	clients.Append(workbook.Row{
		"name":             "Padaria Central",
		"tax_id":           "12345678000190",
		"revenue_december": "100",
		"revenue_january":  "200",
	})
	clients.Append(workbook.Row{
		"name":   "Mercearia Sul",
		"tax_id": "98765432000110",
	})
	clients.EnsureRowIDs()

	txs := snap.Table(workbook.SheetTransactions)
	txs.Append(workbook.Row{"tax_id": "12345678000190", "date": "2026-02-10", "amount": "100", "status": "processed"})
	txs.Append(workbook.Row{"tax_id": "12345678000190", "date": "2026-02-10", "amount": "50", "status": "processed"})
	txs.Append(workbook.Row{"tax_id": "98765432000110", "date": "2026-02-11", "amount": "30", "status": "processed"})
	txs.EnsureRowIDs()

	require.NoError(t, s.SaveAll(ctx, snap))

	return s
}

func TestService_RevenueSeries(t *testing.T) {
	s := seedWorkbook(t)
	svc := analytics.NewService(workbook.NewCache(s))

	series, err := svc.RevenueSeries(context.Background(), []string{"Padaria Central"})
	require.NoError(t, err)

	// One record per revenue month for the selected client only.
	require.Len(t, series.Records, len(workbook.RevenueColumns))
	for _, rec := range series.Records {
		assert.Equal(t, "Padaria Central", rec.Entity)
	}

	assert.Equal(t, "December", series.Records[0].Period)
	assert.Equal(t, 100.0, series.Records[0].Value)
	assert.Nil(t, series.Records[0].Delta)

	require.NotNil(t, series.Records[1].Delta)
	assert.Equal(t, 100.0, *series.Records[1].Delta)
	require.NotNil(t, series.Records[1].PctDelta)
	assert.Equal(t, 100.0, *series.Records[1].PctDelta)

	require.Len(t, series.Forecasts, 1)
	assert.InDelta(t, 0.7*200+0.3*100, series.Forecasts[0].Value, 1e-9)
	// All twelve columns are present, so the projected period wraps the cycle.
	assert.Equal(t, "December", series.Forecasts[0].Period)
}

func TestService_TransactionBuckets(t *testing.T) {
	s := seedWorkbook(t)
	svc := analytics.NewService(workbook.NewCache(s))
	ctx := context.Background()

	daily, err := svc.TransactionBuckets(ctx, analytics.BucketQuery{})
	require.NoError(t, err)
	require.Len(t, daily, 2)
	assert.Equal(t, 150.0, daily[0].Total)
	assert.Equal(t, 2, daily[0].Count)

	filtered, err := svc.TransactionBuckets(ctx, analytics.BucketQuery{TaxID: "98.765.432/0001-10"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, 30.0, filtered[0].Total)

	weekly, err := svc.TransactionBuckets(ctx, analytics.BucketQuery{Granularity: analytics.GranularityWeekly})
	require.NoError(t, err)
	require.Len(t, weekly, 1)
	assert.Equal(t, "2026-02-w2", weekly[0].Key)
	assert.Equal(t, 180.0, weekly[0].Total)

	_, err = svc.TransactionBuckets(ctx, analytics.BucketQuery{Granularity: "hourly"})
	assert.Error(t, err)
}
