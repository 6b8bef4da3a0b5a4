package analytics

// DeltaRecord extends a Record with its movement against the previous period
// of the same entity. Delta is nil on the first period; PctDelta is also nil
// when the previous value is zero, a distinct not-applicable marker that must
// never collapse to 0 or infinity.
type DeltaRecord struct {
	Record
	Delta    *float64 `json:"delta,omitempty"`
	PctDelta *float64 `json:"pct_delta,omitempty"`
}

// ComputeDeltas walks each entity's records in chronological rank order and
// attaches absolute and percentage movement. Input is expected sorted the
// way WideToLong returns it.
func ComputeDeltas(records []Record) []DeltaRecord {
	out := make([]DeltaRecord, len(records))

	for i, rec := range records {
		out[i] = DeltaRecord{Record: rec}

		if i == 0 || records[i-1].Entity != rec.Entity {
			continue
		}

		prev := records[i-1].Value
		delta := rec.Value - prev
		out[i].Delta = &delta

		if prev != 0 {
			pct := delta / prev * 100
			out[i].PctDelta = &pct
		}
	}

	return out
}
