package command

import (
	"context"
	"fmt"

	invoicedomain "github.com/storeops/backoffice/internal/invoice/domain"
	"github.com/storeops/backoffice/internal/order/domain"
	"github.com/storeops/backoffice/pkg/logger"
)

// CreateInvoiceCommand represents the command to generate an invoice from an
// order
type CreateInvoiceCommand struct {
	WorkspaceID uint
	OrderID     uint
}

// CreateInvoiceHandler converts an order into a sales invoice
type CreateInvoiceHandler struct {
	txRunner domain.BillingTxRunner
}

// NewCreateInvoiceHandler creates a new create invoice handler
func NewCreateInvoiceHandler(txRunner domain.BillingTxRunner) *CreateInvoiceHandler {
	return &CreateInvoiceHandler{txRunner: txRunner}
}

// Handle creates the invoice and flips the order to PAID in one transaction.
// Line items are copied so later order mutation cannot change the invoice.
// An order gets at most one invoice: a second call fails with
// invoice.ErrAlreadyExists.
func (h *CreateInvoiceHandler) Handle(ctx context.Context, cmd CreateInvoiceCommand) (*invoicedomain.Invoice, error) {
	if cmd.WorkspaceID == 0 || cmd.OrderID == 0 {
		return nil, fmt.Errorf("workspace_id and order_id are required")
	}

	var created *invoicedomain.Invoice
	err := h.txRunner.RunInTx(func(orders domain.OrderRepository, invoices invoicedomain.InvoiceRepository) error {
		order, err := orders.FindByIDForUpdate(cmd.WorkspaceID, cmd.OrderID)
		if err != nil {
			return err
		}

		if _, err := invoices.FindByOrderID(cmd.WorkspaceID, cmd.OrderID); err == nil {
			return invoicedomain.ErrAlreadyExists
		} else if err != invoicedomain.ErrNotFound {
			return fmt.Errorf("failed to check existing invoice: %w", err)
		}

		subtotal := 0.0
		items := make([]invoicedomain.InvoiceItem, 0, len(order.Items))
		for _, item := range order.Items {
			subtotal += item.Total
			items = append(items, invoicedomain.InvoiceItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Discount:  item.Discount,
				Tax:       item.Tax,
				Total:     item.Total,
			})
		}

		orderID := order.ID
		invoice := &invoicedomain.Invoice{
			WorkspaceID:  order.WorkspaceID,
			Type:         invoicedomain.TypeSales,
			Status:       invoicedomain.StatusIssued,
			OrderID:      &orderID,
			BuyerRef:     order.BuyerRef,
			Subtotal:     subtotal,
			Tax:          order.Tax,
			Discount:     order.Discount,
			ShippingCost: order.ShippingCost,
			Total:        subtotal + order.Tax - order.Discount + order.ShippingCost,
			Items:        items,
		}
		if err := invoices.Create(invoice); err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		// Invoicing settles the order. Orders already past PAID keep their
		// fulfillment status.
		if order.Status != domain.StatusPaid && domain.CanTransition(order.Status, domain.StatusPaid) {
			order.Status = domain.StatusPaid
			order.Version++
			if err := orders.Save(order); err != nil {
				return fmt.Errorf("failed to mark order paid: %w", err)
			}
		} else if order.Status != domain.StatusPaid {
			logger.Logger.Warn().
				Uint("order_id", order.ID).
				Str("status", string(order.Status)).
				Msg("Invoice created for order that cannot move to PAID")
		}

		created = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
