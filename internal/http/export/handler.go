package export

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dualbank/backoffice/internal/export"
	"github.com/dualbank/backoffice/internal/http/respond"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.workbook)
	r.Get("/{sheet}", h.sheet)
}

func (h *Handler) workbook(w http.ResponseWriter, r *http.Request) {
	dl, err := h.svc.Workbook(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	writeDownload(w, dl)
}

func (h *Handler) sheet(w http.ResponseWriter, r *http.Request) {
	dl, err := h.svc.Sheet(r.Context(), chi.URLParam(r, "sheet"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	writeDownload(w, dl)
}

func writeDownload(w http.ResponseWriter, dl *export.Download) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dl.Filename))

	if _, err := w.Write(dl.Content); err != nil {
		http.Error(w, "failed to write download", http.StatusInternalServerError)
	}
}
