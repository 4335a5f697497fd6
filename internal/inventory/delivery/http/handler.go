package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/storeops/backoffice/internal/inventory/domain"
	"github.com/storeops/backoffice/internal/inventory/usecase/command"
	"github.com/storeops/backoffice/internal/inventory/usecase/query"
	"github.com/storeops/backoffice/pkg/logger"
)

// InventoryHandler handles HTTP requests for the stock ledger
type InventoryHandler struct {
	adjustHandler          *command.AdjustStockHandler
	createWarehouseHandler *command.CreateWarehouseHandler
	currentStockHandler    *query.CurrentStockHandler
	listMovementsHandler   *query.ListMovementsHandler

	warehouses domain.WarehouseRepository
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(
	adjustHandler *command.AdjustStockHandler,
	createWarehouseHandler *command.CreateWarehouseHandler,
	currentStockHandler *query.CurrentStockHandler,
	listMovementsHandler *query.ListMovementsHandler,
	warehouses domain.WarehouseRepository,
) *InventoryHandler {
	return &InventoryHandler{
		adjustHandler:          adjustHandler,
		createWarehouseHandler: createWarehouseHandler,
		currentStockHandler:    currentStockHandler,
		listMovementsHandler:   listMovementsHandler,
		warehouses:             warehouses,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// AdjustStock handles POST /api/inventory/adjust
func (h *InventoryHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkspaceID     uint   `json:"workspace_id"`
		WarehouseID     uint   `json:"warehouse_id"`
		ProductID       uint   `json:"product_id"`
		Quantity        int    `json:"quantity"`
		Type            string `json:"type"`
		OrderID         *uint  `json:"order_id"`
		PurchaseOrderID *uint  `json:"purchase_order_id"`
		Description     string `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.AdjustStockCommand{
		WorkspaceID:     req.WorkspaceID,
		WarehouseID:     req.WarehouseID,
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		Type:            req.Type,
		OrderID:         req.OrderID,
		PurchaseOrderID: req.PurchaseOrderID,
		Description:     req.Description,
	}

	movement, err := h.adjustHandler.Handle(cmd)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrInsufficientStock) {
			status = http.StatusConflict
		}
		logger.Logger.Error().Err(err).Msg("Failed to adjust stock")
		respondJSON(w, status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Stock adjusted successfully",
		Data:    movement,
	})
}

// GetStock handles GET /api/inventory/stock
func (h *InventoryHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	workspaceID := parseUintParam(r.URL.Query().Get("workspace_id"))
	warehouseID := parseUintParam(r.URL.Query().Get("warehouse_id"))
	productID := parseUintParam(r.URL.Query().Get("product_id"))

	stock, err := h.currentStockHandler.Handle(query.CurrentStockQuery{
		WorkspaceID: workspaceID,
		WarehouseID: warehouseID,
		ProductID:   productID,
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"workspace_id": workspaceID,
			"warehouse_id": warehouseID,
			"product_id":   productID,
			"stock":        stock,
		},
	})
}

// ListMovements handles GET /api/inventory/movements
func (h *InventoryHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	workspaceID := parseUintParam(r.URL.Query().Get("workspace_id"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	movements, err := h.listMovementsHandler.Handle(query.ListMovementsQuery{
		WorkspaceID: workspaceID,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list movements")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    movements,
	})
}

// CreateWarehouse handles POST /api/warehouses
func (h *InventoryHandler) CreateWarehouse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkspaceID uint   `json:"workspace_id"`
		Name        string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	warehouse, err := h.createWarehouseHandler.Handle(command.CreateWarehouseCommand{
		WorkspaceID: req.WorkspaceID,
		Name:        req.Name,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create warehouse")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Warehouse created successfully",
		Data:    warehouse,
	})
}

// ListWarehouses handles GET /api/warehouses
func (h *InventoryHandler) ListWarehouses(w http.ResponseWriter, r *http.Request) {
	workspaceID := parseUintParam(r.URL.Query().Get("workspace_id"))
	if workspaceID == 0 {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "workspace_id is required",
		})
		return
	}

	warehouses, err := h.warehouses.FindByWorkspace(workspaceID)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list warehouses")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list warehouses",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    warehouses,
	})
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/inventory/adjust", h.AdjustStock).Methods("POST")
	router.HandleFunc("/api/inventory/stock", h.GetStock).Methods("GET")
	router.HandleFunc("/api/inventory/movements", h.ListMovements).Methods("GET")
	router.HandleFunc("/api/warehouses", h.CreateWarehouse).Methods("POST")
	router.HandleFunc("/api/warehouses", h.ListWarehouses).Methods("GET")
}

// RegisterHealthCheck registers health check endpoint
func (h *InventoryHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Back-office service is healthy",
		})
	}).Methods("GET")
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
