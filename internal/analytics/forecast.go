package analytics

// Forecast weights, most recent period first.
const (
	weightLast     = 0.7
	weightPrevious = 0.3
)

// ForecastNext projects the next period's value from the trailing valid
// observations. A zero value counts as "no data", not as a genuine zero
// reading — a product decision carried from the dashboards this replaces.
// With two or more valid values the forecast is 0.7*last + 0.3*previous;
// with exactly one it is that value; with none it is 0.
func ForecastNext(values []float64) float64 {
	var valid []float64

	for _, v := range values {
		if v != 0 {
			valid = append(valid, v)
		}
	}

	switch len(valid) {
	case 0:
		return 0
	case 1:
		return valid[0]
	default:
		last := valid[len(valid)-1]
		prev := valid[len(valid)-2]

		return last*weightLast + prev*weightPrevious
	}
}

// ForecastEntity projects the next value for one entity out of a sorted
// record slice, returning the forecast and the rank of the entity's last
// observed period (-1 when the entity has no records at all).
func ForecastEntity(records []Record, entity string) (float64, int) {
	var values []float64

	lastRank := -1

	for _, rec := range records {
		if rec.Entity != entity {
			continue
		}

		values = append(values, rec.Value)

		if rec.Rank > lastRank {
			lastRank = rec.Rank
		}
	}

	return ForecastNext(values), lastRank
}
