package transaction

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dualbank/backoffice/internal/analytics"
	"github.com/dualbank/backoffice/internal/http/respond"
	"github.com/dualbank/backoffice/internal/txlog"
)

type Handler struct {
	svc       *txlog.Service
	analytics *analytics.Service
}

func NewHandler(svc *txlog.Service, analyticsSvc *analytics.Service) *Handler {
	return &Handler{svc: svc, analytics: analyticsSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/buckets", h.buckets)
}

type createTransactionRequest struct {
	TaxID  string    `json:"tax_id"`
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
	Status string    `json:"status,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Append(r.Context(), txlog.CreateParams{
		TaxID:  req.TaxID,
		Date:   req.Date,
		Amount: req.Amount,
		Status: req.Status,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := txlog.ListFilter{
		TaxID: r.URL.Query().Get("tax_id"),
	}

	filter.StartDate = parseDateParam(r, "start_date")
	filter.EndDate = parseDateParam(r, "end_date")

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) buckets(w http.ResponseWriter, r *http.Request) {
	query := analytics.BucketQuery{
		TaxID:       r.URL.Query().Get("tax_id"),
		Granularity: r.URL.Query().Get("granularity"),
		StartDate:   parseDateParam(r, "start_date"),
		EndDate:     parseDateParam(r, "end_date"),
	}

	buckets, err := h.analytics.TransactionBuckets(r.Context(), query)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, buckets)
}

func parseDateParam(r *http.Request, name string) *time.Time {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil
	}

	return &t
}
