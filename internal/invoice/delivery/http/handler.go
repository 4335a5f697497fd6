package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/storeops/backoffice/internal/invoice/domain"
)

// InvoiceHandler handles HTTP requests for invoices. Invoices are created
// through the order engine, so this handler is read only.
type InvoiceHandler struct {
	invoices domain.InvoiceRepository
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoices domain.InvoiceRepository) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Get handles GET /api/invoices/{id}
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintVar(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid invoice ID",
		})
		return
	}
	workspaceID, err := parseUintQueryParam(r, "workspace_id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "workspace_id is required",
		})
		return
	}

	invoice, err := h.invoices.FindByID(workspaceID, id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrNotFound) {
			status = http.StatusNotFound
		}
		respondJSON(w, status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    invoice,
	})
}

// List handles GET /api/invoices
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	workspaceID, err := parseUintQueryParam(r, "workspace_id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "workspace_id is required",
		})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	invoices, err := h.invoices.FindByWorkspace(workspaceID, limit, offset)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    invoices,
	})
}

// RegisterRoutes registers invoice routes
func (h *InvoiceHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/invoices", h.List).Methods("GET")
	router.HandleFunc("/api/invoices/{id:[0-9]+}", h.Get).Methods("GET")
}

func parseUintVar(r *http.Request, key string) (uint, error) {
	v, err := strconv.ParseUint(mux.Vars(r)[key], 10, 64)
	return uint(v), err
}

func parseUintQueryParam(r *http.Request, key string) (uint, error) {
	v, err := strconv.ParseUint(r.URL.Query().Get(key), 10, 64)
	return uint(v), err
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
