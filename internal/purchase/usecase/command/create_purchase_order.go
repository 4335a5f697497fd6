package command

import (
	"fmt"

	"github.com/storeops/backoffice/internal/purchase/domain"
)

// PurchaseLine is one requested line on a new purchase order
type PurchaseLine struct {
	ProductID uint
	Quantity  int
	UnitCost  float64
}

// CreatePurchaseOrderCommand represents the command to create a purchase order
type CreatePurchaseOrderCommand struct {
	WorkspaceID uint
	SupplierRef string
	WarehouseID uint
	Note        string
	Items       []PurchaseLine
}

// CreatePurchaseOrderHandler handles purchase order creation
type CreatePurchaseOrderHandler struct {
	orders domain.PurchaseOrderRepository
}

// NewCreatePurchaseOrderHandler creates a new create purchase order handler
func NewCreatePurchaseOrderHandler(orders domain.PurchaseOrderRepository) *CreatePurchaseOrderHandler {
	return &CreatePurchaseOrderHandler{orders: orders}
}

// Handle executes the command
func (h *CreatePurchaseOrderHandler) Handle(cmd CreatePurchaseOrderCommand) (*domain.PurchaseOrder, error) {
	if len(cmd.Items) == 0 {
		return nil, domain.ErrEmptyItems
	}
	for _, line := range cmd.Items {
		if line.ProductID == 0 || line.Quantity <= 0 {
			return nil, fmt.Errorf("purchase line requires a product and a positive quantity")
		}
	}

	order := &domain.PurchaseOrder{
		WorkspaceID: cmd.WorkspaceID,
		SupplierRef: cmd.SupplierRef,
		WarehouseID: cmd.WarehouseID,
		Status:      domain.StatusDraft,
		Note:        cmd.Note,
	}
	for _, line := range cmd.Items {
		order.Items = append(order.Items, domain.PurchaseOrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitCost:  line.UnitCost,
		})
	}

	if err := h.orders.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create purchase order: %w", err)
	}
	return order, nil
}
