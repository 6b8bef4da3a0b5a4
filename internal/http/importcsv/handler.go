package importcsv

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dualbank/backoffice/internal/http/respond"
	"github.com/dualbank/backoffice/internal/importer"
	"github.com/dualbank/backoffice/internal/txlog"
)

type Handler struct {
	importSvc *importer.Service
	txSvc     *txlog.Service
}

func NewHandler(importSvc *importer.Service, txSvc *txlog.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		txSvc:     txSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importSuccessResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []transactionResponse `json:"transactions"`
}

type transactionResponse struct {
	RowID  string  `json:"row_id"`
	TaxID  string  `json:"tax_id"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	source := importer.Source(r.FormValue("source"))
	if source == "" {
		source = importer.SourceSettlement
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(source, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs, err := h.txSvc.AppendBatch(r.Context(), params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toSuccessResponse(txs))
}

func toSuccessResponse(txs []*txlog.Transaction) importSuccessResponse {
	responses := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, transactionResponse{
			RowID:  tx.RowID,
			TaxID:  tx.TaxID,
			Date:   tx.Date.Format("2006-01-02"),
			Amount: tx.Amount,
			Status: tx.Status,
		})
	}

	return importSuccessResponse{
		Imported:     len(txs),
		Transactions: responses,
	}
}
