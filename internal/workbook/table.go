package workbook

import (
	"strings"

	"github.com/google/uuid"
)

// Row maps sanitized column names to raw cell text. Typed interpretation
// (dates, amounts) happens in the per-domain stores, not here.
type Row map[string]string

// Table is one named sheet: an ordered column set plus its data rows.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

func NewTable(spec SheetSpec) *Table {
	cols := make([]string, len(spec.Columns))
	for i, c := range spec.Columns {
		cols[i] = c.Name
	}

	return &Table{Name: spec.Name, Columns: cols}
}

func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}

	return false
}

// Append adds a row, extending the column set with any new keys so the row
// survives a save round-trip.
func (t *Table) Append(row Row) {
	for col := range row {
		if !t.HasColumn(col) {
			t.Columns = append(t.Columns, col)
		}
	}

	t.Rows = append(t.Rows, row)
}

// DeleteByID removes every row whose row_id is in ids and reports how many
// were removed.
func (t *Table) DeleteByID(ids []string) int {
	if len(ids) == 0 {
		return 0
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	kept := t.Rows[:0]
	removed := 0

	for _, row := range t.Rows {
		if _, ok := wanted[row[ColRowID]]; ok {
			removed++
			continue
		}

		kept = append(kept, row)
	}

	t.Rows = kept

	return removed
}

// missingIDPlaceholders are textual renditions of "no value" that upstream
// editors and prior exports leave behind in the row_id column.
var missingIDPlaceholders = map[string]struct{}{
	"": {}, "nan": {}, "none": {}, "null": {}, "nat": {}, "<na>": {},
}

// EnsureRowIDs backfills a fresh opaque token for every row whose identifier
// is missing or a placeholder. Tokens are never reused, even after deletes.
func (t *Table) EnsureRowIDs() {
	if !t.HasColumn(ColRowID) {
		t.Columns = append(t.Columns, ColRowID)
	}

	for _, row := range t.Rows {
		if _, missing := missingIDPlaceholders[strings.ToLower(strings.TrimSpace(row[ColRowID]))]; missing {
			row[ColRowID] = uuid.NewString()
		}
	}
}

// backfill creates any spec column absent from the table with its
// type-appropriate default, on the header and on every row.
func (t *Table) backfill(spec SheetSpec) {
	for _, col := range spec.Columns {
		if t.HasColumn(col.Name) {
			continue
		}

		t.Columns = append(t.Columns, col.Name)

		for _, row := range t.Rows {
			row[col.Name] = col.Kind.Default()
		}
	}
}

// Snapshot is the full in-memory state of the workbook: every known sheet,
// in persisted order. Mutating callers must carry the whole snapshot back
// through SaveAll; a sheet dropped from the snapshot is rewritten empty.
type Snapshot struct {
	order  []string
	sheets map[string]*Table
}

func newSnapshot(specs []SheetSpec) *Snapshot {
	snap := &Snapshot{sheets: make(map[string]*Table, len(specs))}
	for _, spec := range specs {
		snap.order = append(snap.order, spec.Name)
	}

	return snap
}

// Table returns the named sheet, or nil when absent from the snapshot.
func (s *Snapshot) Table(name string) *Table {
	return s.sheets[name]
}

func (s *Snapshot) put(t *Table) {
	s.sheets[t.Name] = t
}

// SheetNames returns the persisted sheet order.
func (s *Snapshot) SheetNames() []string {
	return s.order
}
