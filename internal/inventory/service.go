package inventory

import (
	"github.com/storeops/backoffice/internal/inventory/domain"
	"github.com/storeops/backoffice/internal/inventory/usecase/command"
)

// Service is the facade the order and purchase engines use to touch the
// ledger. It is constructed once per process and handed in explicitly so
// tests can swap it for a fake.
type Service struct {
	reserveHandler *command.ReserveOrderHandler
	releaseHandler *command.ReleaseOrderHandler
	receiveHandler *command.ReceivePurchaseOrderHandler
}

// NewService creates the inventory service facade
func NewService(txRunner domain.LedgerTxRunner, warehouses domain.WarehouseRepository) *Service {
	return &Service{
		reserveHandler: command.NewReserveOrderHandler(txRunner, warehouses),
		releaseHandler: command.NewReleaseOrderHandler(txRunner),
		receiveHandler: command.NewReceivePurchaseOrderHandler(txRunner, warehouses),
	}
}

// ReserveOrder records negative RESERVATION movements for every order line
func (s *Service) ReserveOrder(workspaceID, orderID uint, lines []command.ReservationLine) error {
	return s.reserveHandler.Handle(command.ReserveOrderCommand{
		WorkspaceID: workspaceID,
		OrderID:     orderID,
		Items:       lines,
	})
}

// ReleaseOrder reverses the order's outstanding reservations
func (s *Service) ReleaseOrder(workspaceID, orderID uint) error {
	return s.releaseHandler.Handle(command.ReleaseOrderCommand{
		WorkspaceID: workspaceID,
		OrderID:     orderID,
	})
}

// ReceivePurchaseOrder books received purchase-order lines into stock
func (s *Service) ReceivePurchaseOrder(workspaceID, purchaseOrderID, warehouseID uint, lines []command.ReceiptLine) error {
	return s.receiveHandler.Handle(command.ReceivePurchaseOrderCommand{
		WorkspaceID:     workspaceID,
		PurchaseOrderID: purchaseOrderID,
		WarehouseID:     warehouseID,
		Items:           lines,
	})
}
