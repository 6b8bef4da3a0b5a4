package workbook

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
)

// Store reads and writes the single XLSX workbook that acts as the system of
// record. Every cycle is whole-file: load a snapshot, transform it in memory,
// write every sheet back. Cycles within this process are serialized by a
// mutex; a concurrent editor in another process can still overwrite a write
// that started from an earlier snapshot. That race is an accepted limitation
// of the storage model, not something the store tries to fix.
type Store struct {
	path   string
	mu     sync.Mutex
	specs  []SheetSpec
	byName map[string]SheetSpec
}

// Open prepares the workbook at path, creating the directory and a fresh
// workbook with every known sheet and header when none exists yet.
func Open(path string) (*Store, error) {
	specs := Specs()

	s := &Store{
		path:   path,
		specs:  specs,
		byName: make(map[string]SheetSpec, len(specs)),
	}

	for _, spec := range specs {
		s.byName[spec.Name] = spec
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.bootstrap(); err != nil {
			return nil, fmt.Errorf("bootstrapping workbook: %w", err)
		}
	} else if err != nil {
		return nil, classifyAccess(err)
	}

	return s, nil
}

func (s *Store) Path() string { return s.path }

// ModTime reports the file's last-modified timestamp, used by the advisory
// cache to decide whether a reload is needed.
func (s *Store) ModTime() (time.Time, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return time.Time{}, classifyAccess(err)
	}

	return info.ModTime(), nil
}

// Load returns a single sheet from a fresh snapshot.
func (s *Store) Load(ctx context.Context, name string) (*Table, error) {
	if _, known := s.byName[name]; !known {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, name)
	}

	snap, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	return snap.Table(name), nil
}

// LoadAll reads every known sheet, sanitizing column names, backfilling the
// required column set and regenerating missing row identifiers.
func (s *Store) LoadAll(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, classifyAccess(err)
	}
	defer f.Close()

	snap := newSnapshot(s.specs)

	for _, spec := range s.specs {
		table, err := s.readSheet(f, spec)
		if err != nil {
			return nil, err
		}

		snap.put(table)
	}

	return snap, nil
}

func (s *Store) readSheet(f *excelize.File, spec SheetSpec) (*Table, error) {
	rows, err := f.GetRows(spec.Name)
	if err != nil {
		var notExist excelize.ErrSheetNotExist
		if errors.As(err, &notExist) {
			if spec.Mandatory {
				return nil, fmt.Errorf("%w: missing sheet %q", ErrMalformed, spec.Name)
			}

			return NewTable(spec), nil
		}

		return nil, fmt.Errorf("reading sheet %q: %w", spec.Name, err)
	}

	if len(rows) == 0 {
		if spec.Mandatory {
			return nil, fmt.Errorf("%w: sheet %q has no header row", ErrMalformed, spec.Name)
		}

		return NewTable(spec), nil
	}

	table := &Table{Name: spec.Name}
	for _, cell := range rows[0] {
		if col := SanitizeColumn(cell); col != "" && !table.HasColumn(col) {
			table.Columns = append(table.Columns, col)
		}
	}

	for _, raw := range rows[1:] {
		row := make(Row, len(table.Columns))
		empty := true

		for i, col := range table.Columns {
			val := ""
			if i < len(raw) {
				val = strings.TrimSpace(raw[i])
			}

			if val != "" {
				empty = false
			}

			row[col] = val
		}

		if empty {
			continue
		}

		table.Rows = append(table.Rows, row)
	}

	table.backfill(spec)
	table.EnsureRowIDs()

	return table, nil
}

// SaveAll rewrites the whole workbook from the snapshot in one pass. Every
// known sheet is written; a sheet missing from the snapshot comes out with
// its header only, so stale sheet content cannot silently persist. The new
// file replaces the old atomically via rename.
func (s *Store) SaveAll(ctx context.Context, snap *Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f := excelize.NewFile()
	defer f.Close()

	for i, spec := range s.specs {
		table := snap.Table(spec.Name)
		if table == nil {
			table = NewTable(spec)
		}

		if err := writeSheet(f, i, table); err != nil {
			return fmt.Errorf("writing sheet %q: %w", spec.Name, err)
		}
	}

	tmp := s.path + ".tmp"
	if err := f.SaveAs(tmp); err != nil {
		return classifyWrite(err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return classifyWrite(err)
	}

	return nil
}

func writeSheet(f *excelize.File, index int, table *Table) error {
	if index == 0 {
		if err := f.SetSheetName("Sheet1", table.Name); err != nil {
			return err
		}
	} else if _, err := f.NewSheet(table.Name); err != nil {
		return err
	}

	header := make([]any, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col
	}

	if err := f.SetSheetRow(table.Name, "A1", &header); err != nil {
		return err
	}

	for r, row := range table.Rows {
		cells := make([]any, len(table.Columns))
		for i, col := range table.Columns {
			cells[i] = row[col]
		}

		axis, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(table.Name, axis, &cells); err != nil {
			return err
		}
	}

	return nil
}

// Render serializes a snapshot to XLSX bytes without touching the file,
// for download endpoints that ship the workbook to the browser.
func (s *Store) Render(snap *Snapshot) ([]byte, error) {
	tables := make([]*Table, len(s.specs))

	for i, spec := range s.specs {
		table := snap.Table(spec.Name)
		if table == nil {
			table = NewTable(spec)
		}

		tables[i] = table
	}

	return RenderTables(tables)
}

// RenderTables serializes the given tables, in order, into a standalone
// XLSX document.
func RenderTables(tables []*Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, table := range tables {
		if err := writeSheet(f, i, table); err != nil {
			return nil, fmt.Errorf("writing sheet %q: %w", table.Name, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("rendering workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *Store) bootstrap() error {
	f := excelize.NewFile()
	defer f.Close()

	for i, spec := range s.specs {
		if err := writeSheet(f, i, NewTable(spec)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(s.path); err != nil {
		return classifyWrite(err)
	}

	return nil
}

// classifyAccess maps read-side failures onto the store's error taxonomy so
// callers can tell "file is busy" from "file is gone".
func classifyAccess(err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %v", ErrMissing, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %v", ErrLocked, err)
	default:
		return fmt.Errorf("opening workbook: %w", err)
	}
}

func classifyWrite(err error) error {
	if errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %v", ErrLocked, err)
	}

	return fmt.Errorf("saving workbook: %w", err)
}
