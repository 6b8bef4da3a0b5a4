package workbook

import "errors"

var (
	// ErrLocked means the workbook file is held open by another program
	// (typically a desktop spreadsheet editor) and cannot be written.
	ErrLocked = errors.New("workbook is locked by another process")

	// ErrMissing means the workbook file or its directory does not exist.
	ErrMissing = errors.New("workbook file not found")

	// ErrMalformed means a mandatory sheet is absent or has no header row.
	ErrMalformed = errors.New("workbook has a malformed schema")

	// ErrSheetNotFound is returned by Load for unknown sheet names.
	ErrSheetNotFound = errors.New("sheet not found")
)
