package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/storeops/backoffice/internal/payment/domain"
	"github.com/storeops/backoffice/internal/payment/usecase/command"
	"github.com/storeops/backoffice/internal/payment/usecase/query"
	"github.com/storeops/backoffice/pkg/logger"
)

// PaymentHandler handles HTTP requests for gateway payments
type PaymentHandler struct {
	startHandler    *command.StartPaymentHandler
	callbackHandler *command.HandleCallbackHandler
	getHandler      *query.GetPaymentHandler
	listHandler     *query.ListPaymentsHandler
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(
	startHandler *command.StartPaymentHandler,
	callbackHandler *command.HandleCallbackHandler,
	getHandler *query.GetPaymentHandler,
	listHandler *query.ListPaymentsHandler,
) *PaymentHandler {
	return &PaymentHandler{
		startHandler:    startHandler,
		callbackHandler: callbackHandler,
		getHandler:      getHandler,
		listHandler:     listHandler,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Start handles POST /api/payments/start
func (h *PaymentHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkspaceID uint    `json:"workspace_id"`
		OrderID     *uint   `json:"order_id"`
		InvoiceID   *uint   `json:"invoice_id"`
		Amount      float64 `json:"amount"`
		Method      string  `json:"method"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	result, err := h.startHandler.Handle(r.Context(), command.StartPaymentCommand{
		WorkspaceID: req.WorkspaceID,
		OrderID:     req.OrderID,
		InvoiceID:   req.InvoiceID,
		Amount:      req.Amount,
		Method:      req.Method,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrNoGateway) {
			status = http.StatusUnprocessableEntity
		}
		respondJSON(w, status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	paymentsStartedTotal.Inc()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Payment started successfully",
		Data: map[string]interface{}{
			"payment":      result.Payment,
			"redirect_url": result.RedirectURL,
		},
	})
}

// Callback handles GET and POST /api/payments/callback/{provider}
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	providerName := strings.ToUpper(vars["provider"])

	payment, err := h.callbackHandler.Handle(r.Context(), command.HandleCallbackCommand{
		Provider: providerName,
		Payload:  callbackPayload(r),
	})
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrUnknownProvider):
			status = http.StatusNotFound
		}
		logger.Error(r.Context()).Err(err).Str("provider", providerName).Msg("Payment callback rejected")
		respondJSON(w, status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	paymentCallbacksTotal.WithLabelValues(payment.Status).Inc()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    payment,
	})
}

// Get handles GET /api/payments/{id}
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintVar(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid payment ID",
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

	payment, err := h.getHandler.Handle(query.GetPaymentQuery{WorkspaceID: workspaceID, ID: id})
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
		Data:    payment,
	})
}

// List handles GET /api/payments
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	workspaceID, err := parseUintQueryParam(r, "workspace_id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "workspace_id is required",
		})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	payments, err := h.listHandler.Handle(query.ListPaymentsQuery{
		WorkspaceID: workspaceID,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    payments,
	})
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/payments/start", h.Start).Methods("POST")
	router.HandleFunc("/api/payments/callback/{provider}", h.Callback).Methods("GET", "POST")
	router.HandleFunc("/api/payments", h.List).Methods("GET")
	router.HandleFunc("/api/payments/{id:[0-9]+}", h.Get).Methods("GET")
}

// callbackPayload flattens query parameters, form fields and a JSON body into
// a single map. Gateways differ on how they deliver callbacks.
func callbackPayload(r *http.Request) map[string]string {
	payload := make(map[string]string)

	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			payload[key] = values[0]
		}
	}

	if r.Method == http.MethodPost {
		contentType := r.Header.Get("Content-Type")
		if strings.HasPrefix(contentType, "application/json") {
			var body map[string]interface{}
			if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
				for key, value := range body {
					switch v := value.(type) {
					case string:
						payload[key] = v
					case float64:
						payload[key] = strconv.FormatFloat(v, 'f', -1, 64)
					case bool:
						payload[key] = strconv.FormatBool(v)
					}
				}
			}
		} else if err := r.ParseForm(); err == nil {
			for key, values := range r.PostForm {
				if len(values) > 0 {
					payload[key] = values[0]
				}
			}
		}
	}

	return payload
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
