// Package respond centralizes JSON encoding and the mapping from domain
// errors to HTTP statuses, so every handler reports the same message for the
// same failure.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dualbank/backoffice/internal/cohort"
	"github.com/dualbank/backoffice/internal/loan"
	"github.com/dualbank/backoffice/internal/registry"
	"github.com/dualbank/backoffice/internal/txlog"
	"github.com/dualbank/backoffice/internal/workbook"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error maps a service error onto a status and user-facing message. Workbook
// contention gets a message account managers can act on without reading logs.
func Error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workbook.ErrLocked):
		http.Error(w, "the workbook is open in another program; close the spreadsheet and retry", http.StatusConflict)
	case errors.Is(err, workbook.ErrMissing):
		http.Error(w, "the workbook file is missing; restore it or restart the service to recreate it", http.StatusServiceUnavailable)
	case errors.Is(err, workbook.ErrMalformed):
		http.Error(w, "the workbook is malformed: "+err.Error(), http.StatusInternalServerError)
	case errors.Is(err, workbook.ErrSheetNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, loan.ErrNoSelection):
		http.Error(w, "select a row first", http.StatusBadRequest)
	case errors.Is(err, registry.ErrDuplicate):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, cohort.ErrAlreadyEnrolled):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, registry.ErrNotFound),
		errors.Is(err, txlog.ErrNotFound),
		errors.Is(err, loan.ErrNotFound),
		errors.Is(err, cohort.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
