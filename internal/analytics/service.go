package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/dualbank/backoffice/internal/registry"
	"github.com/dualbank/backoffice/internal/workbook"
)

// Service answers the read-only dashboard queries. It reads through the
// advisory snapshot cache: queries see data at most one mtime check old,
// which is fine for presentation and irrelevant for correctness since
// mutations never go through here.
type Service struct {
	cache *workbook.Cache
}

func NewService(cache *workbook.Cache) *Service {
	return &Service{cache: cache}
}

// Forecast is the projected next-period value for one client.
type Forecast struct {
	Entity string  `json:"entity"`
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// RevenueSeries is the monthly revenue dashboard payload: long records with
// deltas, plus one forecast per selected client.
type RevenueSeries struct {
	Records   []DeltaRecord `json:"records"`
	Forecasts []Forecast    `json:"forecasts"`
}

// RevenueSeries reshapes the wide registry sheet for the selected client
// names (all clients when empty).
func (s *Service) RevenueSeries(ctx context.Context, names []string) (*RevenueSeries, error) {
	snap, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	vocab := RevenueVocabulary()

	records, err := WideToLong(snap.Table(workbook.SheetClients), "name", vocab.Columns(), vocab)
	if err != nil {
		return nil, err
	}

	if len(names) > 0 {
		selected := make(map[string]struct{}, len(names))
		for _, n := range names {
			selected[n] = struct{}{}
		}

		kept := records[:0]

		for _, rec := range records {
			if _, ok := selected[rec.Entity]; ok {
				kept = append(kept, rec)
			}
		}

		records = kept
	}

	series := &RevenueSeries{Records: ComputeDeltas(records)}

	for _, entity := range entities(records) {
		value, lastRank := ForecastEntity(records, entity)
		series.Forecasts = append(series.Forecasts, Forecast{
			Entity: entity,
			Period: vocab.NextLabel(lastRank),
			Value:  value,
		})
	}

	return series, nil
}

func entities(records []Record) []string {
	var out []string

	seen := make(map[string]struct{})

	for _, rec := range records {
		if _, ok := seen[rec.Entity]; !ok {
			seen[rec.Entity] = struct{}{}
			out = append(out, rec.Entity)
		}
	}

	return out
}

// Granularity of a bucket query.
const (
	GranularityDaily  = "daily"
	GranularityWeekly = "weekly"
)

type BucketQuery struct {
	TaxID       string
	StartDate   *time.Time
	EndDate     *time.Time
	Granularity string
}

// TransactionBuckets aggregates the transaction log into observed daily or
// week-within-month buckets. Weekly queries also fold in the per-month
// weekly detail sheets when they carry rows.
func (s *Service) TransactionBuckets(ctx context.Context, q BucketQuery) ([]Bucket, error) {
	snap, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	obs, err := transactionObservations(snap, q)
	if err != nil {
		return nil, err
	}

	switch q.Granularity {
	case GranularityDaily, "":
		return DailyBuckets(obs), nil
	case GranularityWeekly:
		weekly, err := weeklyObservations(snap, q)
		if err != nil {
			return nil, err
		}

		return WeeklyBuckets(append(obs, weekly...)), nil
	default:
		return nil, fmt.Errorf("unknown granularity %q", q.Granularity)
	}
}

func transactionObservations(snap *workbook.Snapshot, q BucketQuery) ([]Observation, error) {
	table := snap.Table(workbook.SheetTransactions)
	wantTaxID := registry.NormalizeTaxID(q.TaxID)

	var obs []Observation

	for _, row := range table.Rows {
		if wantTaxID != "" && registry.NormalizeTaxID(row["tax_id"]) != wantTaxID {
			continue
		}

		date, err := workbook.ParseDate(row["date"])
		if err != nil {
			return nil, fmt.Errorf("transaction row %s: %w", row[workbook.ColRowID], err)
		}

		if !inRange(date, q.StartDate, q.EndDate) {
			continue
		}

		amount, err := workbook.ParseNumber(row["amount"])
		if err != nil {
			return nil, fmt.Errorf("transaction row %s: %w", row[workbook.ColRowID], err)
		}

		obs = append(obs, Observation{Date: date, Amount: amount})
	}

	return obs, nil
}

func weeklyObservations(snap *workbook.Snapshot, q BucketQuery) ([]Observation, error) {
	wantTaxID := registry.NormalizeTaxID(q.TaxID)

	var obs []Observation

	for _, name := range workbook.WeeklySheets {
		table := snap.Table(name)
		if table == nil {
			continue
		}

		for _, row := range table.Rows {
			if wantTaxID != "" && registry.NormalizeTaxID(row["tax_id"]) != wantTaxID {
				continue
			}

			recordedAt, err := workbook.ParseDate(row["recorded_at"])
			if err != nil {
				return nil, fmt.Errorf("weekly row %s in %s: %w", row[workbook.ColRowID], name, err)
			}

			if recordedAt.IsZero() || !inRange(recordedAt, q.StartDate, q.EndDate) {
				continue
			}

			amount, err := workbook.ParseNumber(row["amount"])
			if err != nil {
				return nil, fmt.Errorf("weekly row %s in %s: %w", row[workbook.ColRowID], name, err)
			}

			obs = append(obs, Observation{Date: recordedAt, Amount: amount})
		}
	}

	return obs, nil
}

func inRange(t time.Time, start, end *time.Time) bool {
	if start != nil && t.Before(*start) {
		return false
	}

	if end != nil && t.After(*end) {
		return false
	}

	return true
}
