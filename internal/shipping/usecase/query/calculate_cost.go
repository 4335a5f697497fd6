package query

import (
	"fmt"

	"github.com/storeops/backoffice/internal/shipping/domain"
	"github.com/storeops/backoffice/pkg/logger"
)

// CalculateCostQuery represents the query to price a delivery
type CalculateCostQuery struct {
	WorkspaceID      uint
	ShippingMethodID uint
	Items            []domain.CartLine
	Destination      domain.Destination
}

// CalculateCostHandler handles shipping cost calculation
type CalculateCostHandler struct {
	methods domain.MethodRepository
	zones   domain.ZoneRepository
}

// NewCalculateCostHandler creates a new calculate cost handler
func NewCalculateCostHandler(methods domain.MethodRepository, zones domain.ZoneRepository) *CalculateCostHandler {
	return &CalculateCostHandler{methods: methods, zones: zones}
}

// Handle loads the method and the workspace zones, then delegates to the pure
// calculator
func (h *CalculateCostHandler) Handle(q CalculateCostQuery) (float64, error) {
	if q.WorkspaceID == 0 || q.ShippingMethodID == 0 {
		return 0, fmt.Errorf("workspace_id and shipping_method_id are required")
	}

	method, err := h.methods.FindByID(q.WorkspaceID, q.ShippingMethodID)
	if err != nil {
		return 0, err
	}

	var zones []domain.ShippingZone
	if method.Type == domain.TypeByDistance {
		zones, err = h.zones.FindByWorkspace(q.WorkspaceID)
		if err != nil {
			return 0, fmt.Errorf("failed to load zones: %w", err)
		}
	}

	return domain.Calculate(method, q.Items, q.Destination, zones, func(methodID, zoneID uint) float64 {
		rate, err := h.zones.FindRate(methodID, zoneID)
		if err != nil {
			logger.Logger.Error().Err(err).Uint("method_id", methodID).Uint("zone_id", zoneID).Msg("Failed to load zone rate")
			return 0
		}
		if rate == nil {
			return 0
		}
		return rate.ExtraCost
	})
}
