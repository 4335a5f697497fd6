package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	invoicedomain "github.com/storeops/backoffice/internal/invoice/domain"
	"github.com/storeops/backoffice/internal/order/domain"
	"github.com/storeops/backoffice/internal/order/usecase/command"
	"github.com/storeops/backoffice/internal/order/usecase/query"
	"github.com/storeops/backoffice/pkg/logger"
)

// OrderHandler handles HTTP requests for orders using CQRS pattern
type OrderHandler struct {
	createHandler        *command.CreateOrderHandler
	updateHandler        *command.UpdateOrderHandler
	createInvoiceHandler *command.CreateInvoiceHandler

	getHandler  *query.GetOrderHandler
	listHandler *query.ListOrdersHandler
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	createHandler *command.CreateOrderHandler,
	updateHandler *command.UpdateOrderHandler,
	createInvoiceHandler *command.CreateInvoiceHandler,
	getHandler *query.GetOrderHandler,
	listHandler *query.ListOrdersHandler,
) *OrderHandler {
	return &OrderHandler{
		createHandler:        createHandler,
		updateHandler:        updateHandler,
		createInvoiceHandler: createInvoiceHandler,
		getHandler:           getHandler,
		listHandler:          listHandler,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type orderItemRequest struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Discount  float64 `json:"discount"`
	Tax       float64 `json:"tax"`
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkspaceID      uint               `json:"workspace_id"`
		BuyerRef         string             `json:"buyer_ref"`
		SourceChannel    string             `json:"source_channel"`
		PaymentMethod    string             `json:"payment_method"`
		Subtotal         float64            `json:"subtotal"`
		Tax              float64            `json:"tax"`
		Discount         float64            `json:"discount"`
		ShippingCost     float64            `json:"shipping_cost"`
		Total            float64            `json:"total"`
		ShippingMethodID *uint              `json:"shipping_method_id"`
		ShippingAddress  string             `json:"shipping_address"`
		Items            []orderItemRequest `json:"items"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.CreateOrderCommand{
		WorkspaceID:      req.WorkspaceID,
		BuyerRef:         req.BuyerRef,
		SourceChannel:    req.SourceChannel,
		PaymentMethod:    req.PaymentMethod,
		Subtotal:         req.Subtotal,
		Tax:              req.Tax,
		Discount:         req.Discount,
		ShippingCost:     req.ShippingCost,
		Total:            req.Total,
		ShippingMethodID: req.ShippingMethodID,
		ShippingAddress:  req.ShippingAddress,
	}
	for _, item := range req.Items {
		cmd.Items = append(cmd.Items, command.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
			Tax:       item.Tax,
		})
	}

	order, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create order")
		respondJSON(w, statusForError(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	ordersCreatedTotal.Inc()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Order created successfully",
		Data:    order,
	})
}

// UpdateOrder handles PATCH /api/orders/{id}
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		WorkspaceID     uint    `json:"workspace_id"`
		Status          *string `json:"status"`
		PaymentMethod   *string `json:"payment_method"`
		ShippingAddress *string `json:"shipping_address"`
		Version         uint    `json:"version"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.UpdateOrderCommand{
		WorkspaceID:     req.WorkspaceID,
		OrderID:         orderID,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		Version:         req.Version,
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		cmd.Status = &status
	}

	order, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Uint("order_id", orderID).Msg("Failed to update order")
		respondJSON(w, statusForError(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	if req.Status != nil {
		orderStatusChangesTotal.WithLabelValues(string(order.Status)).Inc()
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Order updated successfully",
		Data:    order,
	})
}

// CreateInvoice handles POST /api/orders/{id}/create-invoice
func (h *OrderHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		WorkspaceID uint `json:"workspace_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	invoice, err := h.createInvoiceHandler.Handle(r.Context(), command.CreateInvoiceCommand{
		WorkspaceID: req.WorkspaceID,
		OrderID:     orderID,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Uint("order_id", orderID).Msg("Failed to create invoice")
		respondJSON(w, statusForError(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	invoicesCreatedTotal.Inc()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Invoice created successfully",
		Data:    invoice,
	})
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r)
	if !ok {
		return
	}
	workspaceID := parseUintParam(r.URL.Query().Get("workspace_id"))

	order, err := h.getHandler.Handle(query.GetOrderQuery{
		WorkspaceID: workspaceID,
		OrderID:     orderID,
	})
	if err != nil {
		respondJSON(w, statusForError(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    order,
	})
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	workspaceID := parseUintParam(r.URL.Query().Get("workspace_id"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	orders, err := h.listHandler.Handle(query.ListOrdersQuery{
		WorkspaceID: workspaceID,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list orders")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    orders,
	})
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/orders", h.CreateOrder).Methods("POST")
	router.HandleFunc("/api/orders", h.ListOrders).Methods("GET")
	router.HandleFunc("/api/orders/{id}", h.GetOrder).Methods("GET")
	router.HandleFunc("/api/orders/{id}", h.UpdateOrder).Methods("PATCH")
	router.HandleFunc("/api/orders/{id}/create-invoice", h.CreateInvoice).Methods("POST")
}

// statusForError maps domain errors to HTTP statuses: not-found is distinct
// from validation, conflicts are distinct from both.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, invoicedomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrStaleVersion),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, invoicedomain.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid order ID",
		})
		return 0, false
	}
	return uint(id), true
}

func parseUintParam(s string) uint {
	v, _ := strconv.ParseUint(s, 10, 32)
	return uint(v)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
