package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/storeops/backoffice/internal/purchase/domain"
	"github.com/storeops/backoffice/internal/purchase/usecase/command"
	"github.com/storeops/backoffice/internal/purchase/usecase/query"
	"github.com/storeops/backoffice/pkg/logger"
)

// PurchaseHandler handles HTTP requests for purchase orders
type PurchaseHandler struct {
	createHandler  *command.CreatePurchaseOrderHandler
	receiveHandler *command.ReceivePurchaseOrderHandler
	getHandler     *query.GetPurchaseOrderHandler
	listHandler    *query.ListPurchaseOrdersHandler
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(
	createHandler *command.CreatePurchaseOrderHandler,
	receiveHandler *command.ReceivePurchaseOrderHandler,
	getHandler *query.GetPurchaseOrderHandler,
	listHandler *query.ListPurchaseOrdersHandler,
) *PurchaseHandler {
	return &PurchaseHandler{
		createHandler:  createHandler,
		receiveHandler: receiveHandler,
		getHandler:     getHandler,
		listHandler:    listHandler,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Create handles POST /api/purchase-orders
func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkspaceID uint   `json:"workspace_id"`
		SupplierRef string `json:"supplier_ref"`
		WarehouseID uint   `json:"warehouse_id"`
		Note        string `json:"note"`
		Items       []struct {
			ProductID uint    `json:"product_id"`
			Quantity  int     `json:"quantity"`
			UnitCost  float64 `json:"unit_cost"`
		} `json:"items"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.CreatePurchaseOrderCommand{
		WorkspaceID: req.WorkspaceID,
		SupplierRef: req.SupplierRef,
		WarehouseID: req.WarehouseID,
		Note:        req.Note,
	}
	for _, item := range req.Items {
		cmd.Items = append(cmd.Items, command.PurchaseLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
		})
	}

	order, err := h.createHandler.Handle(cmd)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Purchase order created successfully",
		Data:    order,
	})
}

// Receive handles POST /api/purchase-orders/{id}/receive
func (h *PurchaseHandler) Receive(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintVar(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid purchase order ID",
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

	order, err := h.receiveHandler.Handle(command.ReceivePurchaseOrderCommand{
		WorkspaceID:     workspaceID,
		PurchaseOrderID: id,
	})
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrAlreadyReceived), errors.Is(err, domain.ErrNotReceivable):
			status = http.StatusConflict
		}
		logger.Error(r.Context()).Err(err).Uint("purchase_order_id", id).Msg("Failed to receive purchase order")
		respondJSON(w, status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Purchase order received successfully",
		Data:    order,
	})
}

// Get handles GET /api/purchase-orders/{id}
func (h *PurchaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintVar(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid purchase order ID",
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

	order, err := h.getHandler.Handle(query.GetPurchaseOrderQuery{WorkspaceID: workspaceID, ID: id})
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
		Data:    order,
	})
}

// List handles GET /api/purchase-orders
func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
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

	orders, err := h.listHandler.Handle(query.ListPurchaseOrdersQuery{
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
		Data:    orders,
	})
}

// RegisterRoutes registers purchase order routes
func (h *PurchaseHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/purchase-orders", h.Create).Methods("POST")
	router.HandleFunc("/api/purchase-orders", h.List).Methods("GET")
	router.HandleFunc("/api/purchase-orders/{id:[0-9]+}", h.Get).Methods("GET")
	router.HandleFunc("/api/purchase-orders/{id:[0-9]+}/receive", h.Receive).Methods("POST")
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
