package cohort

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dualbank/backoffice/internal/cohort"
	"github.com/dualbank/backoffice/internal/http/respond"
)

type Handler struct {
	svc *cohort.Service
}

func NewHandler(svc *cohort.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.enroll)
	r.Get("/", h.list)
	r.Get("/{taxID}", h.get)
	r.Delete("/{taxID}", h.remove)
	r.Post("/transactions", h.recordTransaction)
}

type enrollRequest struct {
	TaxID string `json:"tax_id"`
}

func (h *Handler) enroll(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Enroll(r.Context(), req.TaxID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(rec))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(records))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Get(r.Context(), chi.URLParam(r, "taxID"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(rec))
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Remove(r.Context(), chi.URLParam(r, "taxID")); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type recordTransactionRequest struct {
	TaxID     string  `json:"tax_id"`
	Amount    float64 `json:"amount"`
	Frequency string  `json:"frequency,omitempty"`
}

func (h *Handler) recordTransaction(w http.ResponseWriter, r *http.Request) {
	var req recordTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.svc.RecordTransaction(r.Context(), cohort.TransactionParams{
		TaxID:     req.TaxID,
		Amount:    req.Amount,
		Frequency: req.Frequency,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(rec))
}

type recordResponse struct {
	RowID          string             `json:"row_id"`
	TaxID          string             `json:"tax_id"`
	EnrolledAt     time.Time          `json:"enrolled_at"`
	Observations   map[string]float64 `json:"observations"`
	Frequency      string             `json:"frequency"`
	RunningAverage float64            `json:"running_average"`
}

func toResponse(rec *cohort.Record) recordResponse {
	return recordResponse{
		RowID:          rec.RowID,
		TaxID:          rec.TaxID,
		EnrolledAt:     rec.EnrolledAt,
		Observations:   rec.Observations,
		Frequency:      rec.Frequency,
		RunningAverage: rec.RunningAverage,
	}
}

func toResponseList(records []*cohort.Record) []recordResponse {
	resp := make([]recordResponse, len(records))
	for i, rec := range records {
		resp[i] = toResponse(rec)
	}

	return resp
}
