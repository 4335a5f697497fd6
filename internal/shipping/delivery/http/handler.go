package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/storeops/backoffice/internal/shipping/domain"
	"github.com/storeops/backoffice/internal/shipping/usecase/query"
	"github.com/storeops/backoffice/pkg/logger"
)

// ShippingHandler handles HTTP requests for shipping cost calculation
type ShippingHandler struct {
	calculateHandler *query.CalculateCostHandler
	methods          domain.MethodRepository
}

// NewShippingHandler creates a new shipping handler
func NewShippingHandler(calculateHandler *query.CalculateCostHandler, methods domain.MethodRepository) *ShippingHandler {
	return &ShippingHandler{calculateHandler: calculateHandler, methods: methods}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Calculate handles POST /api/shipping/calculate
func (h *ShippingHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkspaceID      uint              `json:"workspace_id"`
		ShippingMethodID uint              `json:"shipping_method_id"`
		Items            []domain.CartLine `json:"items"`
		Destination      domain.Destination `json:"destination"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cost, err := h.calculateHandler.Handle(query.CalculateCostQuery{
		WorkspaceID:      req.WorkspaceID,
		ShippingMethodID: req.ShippingMethodID,
		Items:            req.Items,
		Destination:      req.Destination,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrMethodNotFound) {
			status = http.StatusNotFound
		}
		logger.Logger.Error().Err(err).Msg("Failed to calculate shipping cost")
		respondJSON(w, status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"cost": cost,
		},
	})
}

// CreateMethod handles POST /api/shipping/methods
func (h *ShippingHandler) CreateMethod(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkspaceID uint    `json:"workspace_id"`
		Name        string  `json:"name"`
		Type        string  `json:"type"`
		BasePrice   float64 `json:"base_price"`
		Settings    string  `json:"settings"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	if req.WorkspaceID == 0 || req.Name == "" {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "workspace_id and name are required",
		})
		return
	}
	switch req.Type {
	case domain.TypeFixed, domain.TypeByWeight, domain.TypeByCartValue, domain.TypeByDistance:
	default:
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "unknown pricing type",
		})
		return
	}

	method := &domain.ShippingMethod{
		WorkspaceID: req.WorkspaceID,
		Name:        req.Name,
		Type:        req.Type,
		BasePrice:   req.BasePrice,
		IsActive:    true,
		Settings:    req.Settings,
	}
	if err := h.methods.Create(method); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create shipping method")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Shipping method created successfully",
		Data:    method,
	})
}

// ListMethods handles GET /api/shipping/methods
func (h *ShippingHandler) ListMethods(w http.ResponseWriter, r *http.Request) {
	workspaceID, err := parseUintQuery(r, "workspace_id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "workspace_id is required",
		})
		return
	}

	methods, err := h.methods.FindByWorkspace(workspaceID)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list shipping methods")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    methods,
	})
}

// RegisterRoutes registers shipping routes
func (h *ShippingHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/shipping/calculate", h.Calculate).Methods("POST")
	router.HandleFunc("/api/shipping/methods", h.CreateMethod).Methods("POST")
	router.HandleFunc("/api/shipping/methods", h.ListMethods).Methods("GET")
}

func parseUintQuery(r *http.Request, key string) (uint, error) {
	v, err := strconv.ParseUint(r.URL.Query().Get(key), 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(v), nil
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
