package client

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dualbank/backoffice/internal/analytics"
	"github.com/dualbank/backoffice/internal/http/respond"
	"github.com/dualbank/backoffice/internal/registry"
)

type Handler struct {
	svc       *registry.Service
	analytics *analytics.Service
}

func NewHandler(svc *registry.Service, analyticsSvc *analytics.Service) *Handler {
	return &Handler{svc: svc, analytics: analyticsSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.register)
	r.Get("/", h.list)
	r.Get("/{taxID}", h.get)
	r.Get("/{taxID}/revenue", h.revenue)
}

type registerRequest struct {
	Name           string     `json:"name"`
	TaxID          string     `json:"tax_id"`
	RegisteredAt   *time.Time `json:"registered_at,omitempty"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	ContactName    string     `json:"contact_name,omitempty"`
	ContactPhone   string     `json:"contact_phone,omitempty"`
	ContactTaxID   string     `json:"contact_tax_id,omitempty"`
	Representative string     `json:"representative,omitempty"`
	PortalStatus   string     `json:"portal_status,omitempty"`
	AcquirerStatus string     `json:"acquirer_status,omitempty"`
	SubStatus      string     `json:"sub_status,omitempty"`
	AcquirerEmail  string     `json:"acquirer_email,omitempty"`
	Plan           string     `json:"plan,omitempty"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := registry.RegisterParams{
		Name:           req.Name,
		TaxID:          req.TaxID,
		ContactName:    req.ContactName,
		ContactPhone:   req.ContactPhone,
		ContactTaxID:   req.ContactTaxID,
		Representative: req.Representative,
		PortalStatus:   req.PortalStatus,
		AcquirerStatus: req.AcquirerStatus,
		SubStatus:      req.SubStatus,
		AcquirerEmail:  req.AcquirerEmail,
		Plan:           req.Plan,
	}

	if req.RegisteredAt != nil {
		params.RegisteredAt = *req.RegisteredAt
	}

	if req.ApprovedAt != nil {
		params.ApprovedAt = *req.ApprovedAt
	}

	c, err := h.svc.Register(r.Context(), params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.List(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(clients))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "taxID"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

// revenue serves the monthly dashboard for one client: long-form rows with
// month-over-month deltas plus the next-month projection.
func (h *Handler) revenue(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "taxID"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	series, err := h.analytics.RevenueSeries(r.Context(), []string{c.Name})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, series)
}
