package loan

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dualbank/backoffice/internal/http/respond"
	"github.com/dualbank/backoffice/internal/loan"
)

type Handler struct {
	svc *loan.Service
}

func NewHandler(svc *loan.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Delete("/", h.delete)
	r.Get("/summary", h.summary)
	r.Get("/agents", h.agents)
}

type createLoanRequest struct {
	Date             time.Time `json:"date"`
	Agent            string    `json:"agent,omitempty"`
	Beneficiary      string    `json:"beneficiary"`
	PixKey           string    `json:"pix_key,omitempty"`
	TransactedAmount float64   `json:"transacted_amount"`
	ReleasedAmount   float64   `json:"released_amount"`
	Installments     int       `json:"installments,omitempty"`
	AgentPercent     float64   `json:"agent_percent,omitempty"`
	InterestFee      float64   `json:"interest_fee,omitempty"`
	AgentExtra       float64   `json:"agent_extra,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	l, err := h.svc.Append(r.Context(), loan.CreateParams{
		Date:             req.Date,
		Agent:            req.Agent,
		Beneficiary:      req.Beneficiary,
		PixKey:           req.PixKey,
		TransactedAmount: req.TransactedAmount,
		ReleasedAmount:   req.ReleasedAmount,
		Installments:     req.Installments,
		AgentPercent:     req.AgentPercent,
		InterestFee:      req.InterestFee,
		AgentExtra:       req.AgentExtra,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(l))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	loans, err := h.svc.List(r.Context(), filterFromQuery(r))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(loans))
}

type deleteLoansRequest struct {
	RowIDs []string `json:"row_ids"`
}

type deleteLoansResponse struct {
	Deleted int `json:"deleted"`
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	var req deleteLoansRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	deleted, err := h.svc.Delete(r.Context(), req.RowIDs)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, deleteLoansResponse{Deleted: deleted})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summarize(r.Context(), filterFromQuery(r))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, sum)
}

func (h *Handler) agents(w http.ResponseWriter, r *http.Request) {
	totals, err := h.svc.ByAgent(r.Context(), filterFromQuery(r))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, totals)
}

func filterFromQuery(r *http.Request) loan.ListFilter {
	filter := loan.ListFilter{
		Agent: r.URL.Query().Get("agent"),
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = &t
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = &t
		}
	}

	return filter
}
