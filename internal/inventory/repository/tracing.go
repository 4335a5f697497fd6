package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/storeops/backoffice/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// GormMovementRepositoryWithTracing wraps GormMovementRepository with tracing
type GormMovementRepositoryWithTracing struct {
	*GormMovementRepository
}

// NewGormMovementRepositoryWithTracing creates a new repository with tracing
func NewGormMovementRepositoryWithTracing(db *gorm.DB) *GormMovementRepositoryWithTracing {
	return &GormMovementRepositoryWithTracing{
		GormMovementRepository: NewGormMovementRepository(db),
	}
}

// CreateWithContext inserts a ledger row with tracing
func (r *GormMovementRepositoryWithTracing) CreateWithContext(ctx context.Context, movement *domain.StockMovement) error {
	_, span := tracer.Start(ctx, "repository.CreateMovement",
		trace.WithAttributes(
			attribute.Int("movement.workspace_id", int(movement.WorkspaceID)),
			attribute.Int("movement.warehouse_id", int(movement.WarehouseID)),
			attribute.Int("movement.product_id", int(movement.ProductID)),
			attribute.Int("movement.quantity", movement.Quantity),
			attribute.String("movement.type", movement.Type),
		),
	)
	defer span.End()

	err := r.GormMovementRepository.Create(movement)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("movement.id", int(movement.ID)))
	return nil
}

// SumByStockWithContext computes the ledger fold with tracing
func (r *GormMovementRepositoryWithTracing) SumByStockWithContext(ctx context.Context, workspaceID, warehouseID, productID uint) (int, error) {
	_, span := tracer.Start(ctx, "repository.SumByStock",
		trace.WithAttributes(
			attribute.Int("movement.workspace_id", int(workspaceID)),
			attribute.Int("movement.warehouse_id", int(warehouseID)),
			attribute.Int("movement.product_id", int(productID)),
		),
	)
	defer span.End()

	total, err := r.GormMovementRepository.SumByStock(workspaceID, warehouseID, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	span.SetAttributes(attribute.Int("stock.current", total))
	return total, nil
}
