package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeops/backoffice/internal/inventory/domain"
)

// memoryLedger is an in-memory stand-in for the movement, stock-level and
// warehouse repositories plus the transaction runner.
type memoryLedger struct {
	movements  []domain.StockMovement
	levels     map[domain.StockKey]*domain.StockLevel
	warehouses []domain.Warehouse
	nextID     uint
}

func newMemoryLedger(warehouses ...domain.Warehouse) *memoryLedger {
	return &memoryLedger{
		levels:     make(map[domain.StockKey]*domain.StockLevel),
		warehouses: warehouses,
		nextID:     1,
	}
}

func (m *memoryLedger) Create(movement *domain.StockMovement) error {
	movement.ID = m.nextID
	m.nextID++
	m.movements = append(m.movements, *movement)
	return nil
}

func (m *memoryLedger) SumByStock(workspaceID, warehouseID, productID uint) (int, error) {
	sum := 0
	for _, mv := range m.movements {
		if mv.WorkspaceID == workspaceID && mv.WarehouseID == warehouseID && mv.ProductID == productID {
			sum += mv.Quantity
		}
	}
	return sum, nil
}

func (m *memoryLedger) SumReservedByOrder(workspaceID, orderID uint) (map[domain.StockKey]int, error) {
	sums := make(map[domain.StockKey]int)
	for _, mv := range m.movements {
		if mv.WorkspaceID == workspaceID && mv.Type == domain.MovementReservation &&
			mv.OrderID != nil && *mv.OrderID == orderID {
			sums[domain.StockKey{WarehouseID: mv.WarehouseID, ProductID: mv.ProductID}] += mv.Quantity
		}
	}
	return sums, nil
}

func (m *memoryLedger) FindByWorkspace(workspaceID uint, limit, offset int) ([]domain.StockMovement, error) {
	var out []domain.StockMovement
	for _, mv := range m.movements {
		if mv.WorkspaceID == workspaceID {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (m *memoryLedger) FindByOrderID(workspaceID, orderID uint) ([]domain.StockMovement, error) {
	var out []domain.StockMovement
	for _, mv := range m.movements {
		if mv.WorkspaceID == workspaceID && mv.OrderID != nil && *mv.OrderID == orderID {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (m *memoryLedger) GetForUpdate(workspaceID, warehouseID, productID uint) (*domain.StockLevel, error) {
	key := domain.StockKey{WarehouseID: warehouseID, ProductID: productID}
	if level, ok := m.levels[key]; ok {
		return level, nil
	}
	level := &domain.StockLevel{WorkspaceID: workspaceID, WarehouseID: warehouseID, ProductID: productID}
	m.levels[key] = level
	return level, nil
}

func (m *memoryLedger) Upsert(level *domain.StockLevel) error {
	m.levels[domain.StockKey{WarehouseID: level.WarehouseID, ProductID: level.ProductID}] = level
	return nil
}

func (m *memoryLedger) RunInTx(fn func(domain.MovementRepository, domain.StockLevelRepository) error) error {
	return fn(m, m)
}

func (m *memoryLedger) CreateWarehouse(warehouse *domain.Warehouse) error {
	warehouse.ID = uint(len(m.warehouses) + 1)
	m.warehouses = append(m.warehouses, *warehouse)
	return nil
}

func (m *memoryLedger) FindByID(id uint) (*domain.Warehouse, error) {
	for i := range m.warehouses {
		if m.warehouses[i].ID == id {
			return &m.warehouses[i], nil
		}
	}
	return nil, domain.ErrWarehouseNotFound
}

func (m *memoryLedger) FindDefault(workspaceID uint) (*domain.Warehouse, error) {
	for i := range m.warehouses {
		if m.warehouses[i].WorkspaceID == workspaceID && m.warehouses[i].IsActive {
			return &m.warehouses[i], nil
		}
	}
	return nil, domain.ErrNoWarehouse
}

func (m *memoryLedger) FindByWarehouseWorkspace(workspaceID uint) ([]domain.Warehouse, error) {
	return m.warehouses, nil
}

// warehouseRepo adapts memoryLedger to domain.WarehouseRepository without
// clashing with the movement repository's Create and FindByWorkspace.
type warehouseRepo struct {
	ledger *memoryLedger
}

func (w warehouseRepo) Create(warehouse *domain.Warehouse) error {
	return w.ledger.CreateWarehouse(warehouse)
}

func (w warehouseRepo) FindByID(id uint) (*domain.Warehouse, error) {
	return w.ledger.FindByID(id)
}

func (w warehouseRepo) FindDefault(workspaceID uint) (*domain.Warehouse, error) {
	return w.ledger.FindDefault(workspaceID)
}

func (w warehouseRepo) FindByWorkspace(workspaceID uint) ([]domain.Warehouse, error) {
	return w.ledger.FindByWarehouseWorkspace(workspaceID)
}

func defaultWarehouse() domain.Warehouse {
	return domain.Warehouse{ID: 1, WorkspaceID: 1, Name: "main", IsActive: true}
}

func TestAdjustStock_AppendsMovementAndRefreshesLevel(t *testing.T) {
	ledger := newMemoryLedger(defaultWarehouse())
	handler := NewAdjustStockHandler(ledger)

	movement, err := handler.Handle(AdjustStockCommand{
		WorkspaceID: 1,
		WarehouseID: 1,
		ProductID:   10,
		Quantity:    25,
		Type:        domain.MovementPurchase,
	})
	require.NoError(t, err)
	assert.NotZero(t, movement.ID)

	sum, err := ledger.SumByStock(1, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 25, sum)

	level := ledger.levels[domain.StockKey{WarehouseID: 1, ProductID: 10}]
	require.NotNil(t, level)
	assert.Equal(t, 25, level.Quantity)
}

func TestAdjustStock_RejectsInvalidInput(t *testing.T) {
	ledger := newMemoryLedger(defaultWarehouse())
	handler := NewAdjustStockHandler(ledger)

	_, err := handler.Handle(AdjustStockCommand{WorkspaceID: 1, WarehouseID: 1, ProductID: 10, Quantity: 0, Type: domain.MovementAdjustment})
	assert.ErrorIs(t, err, domain.ErrZeroQuantity)

	_, err = handler.Handle(AdjustStockCommand{WorkspaceID: 1, WarehouseID: 1, ProductID: 10, Quantity: 5, Type: "BOGUS"})
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)

	assert.Empty(t, ledger.movements)
}

func TestAdjustStock_GuardedDebitCannotOversell(t *testing.T) {
	ledger := newMemoryLedger(defaultWarehouse())
	handler := NewAdjustStockHandler(ledger)

	_, err := handler.Handle(AdjustStockCommand{
		WorkspaceID: 1, WarehouseID: 1, ProductID: 10,
		Quantity: 5, Type: domain.MovementPurchase,
	})
	require.NoError(t, err)

	_, err = handler.Handle(AdjustStockCommand{
		WorkspaceID: 1, WarehouseID: 1, ProductID: 10,
		Quantity: -6, Type: domain.MovementSale,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Unguarded types may take the pair negative.
	_, err = handler.Handle(AdjustStockCommand{
		WorkspaceID: 1, WarehouseID: 1, ProductID: 10,
		Quantity: -8, Type: domain.MovementAdjustment,
	})
	require.NoError(t, err)

	sum, _ := ledger.SumByStock(1, 1, 10)
	assert.Equal(t, -3, sum)
}

func TestReserveOrder_InsertsNegativeReservations(t *testing.T) {
	ledger := newMemoryLedger(defaultWarehouse())
	seedStock(t, ledger, 10, 20)
	seedStock(t, ledger, 11, 5)

	handler := NewReserveOrderHandler(ledger, warehouseRepo{ledger})
	err := handler.Handle(ReserveOrderCommand{
		WorkspaceID: 1,
		OrderID:     100,
		Items: []ReservationLine{
			{ProductID: 10, Quantity: 3},
			{ProductID: 11, Quantity: 2},
		},
	})
	require.NoError(t, err)

	sum10, _ := ledger.SumByStock(1, 1, 10)
	sum11, _ := ledger.SumByStock(1, 1, 11)
	assert.Equal(t, 17, sum10)
	assert.Equal(t, 3, sum11)

	reserved, err := ledger.SumReservedByOrder(1, 100)
	require.NoError(t, err)
	assert.Equal(t, -3, reserved[domain.StockKey{WarehouseID: 1, ProductID: 10}])
	assert.Equal(t, -2, reserved[domain.StockKey{WarehouseID: 1, ProductID: 11}])
}

func TestReserveOrder_InsufficientStockFailsWholeBatch(t *testing.T) {
	ledger := newMemoryLedger(defaultWarehouse())
	seedStock(t, ledger, 10, 1)

	handler := NewReserveOrderHandler(ledger, warehouseRepo{ledger})
	err := handler.Handle(ReserveOrderCommand{
		WorkspaceID: 1,
		OrderID:     100,
		Items:       []ReservationLine{{ProductID: 10, Quantity: 2}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestReserveOrder_NoWarehouseIsSoftSkip(t *testing.T) {
	ledger := newMemoryLedger()

	handler := NewReserveOrderHandler(ledger, warehouseRepo{ledger})
	err := handler.Handle(ReserveOrderCommand{
		WorkspaceID: 1,
		OrderID:     100,
		Items:       []ReservationLine{{ProductID: 10, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Empty(t, ledger.movements)
}

func TestReleaseOrder_ReversesOutstandingReservations(t *testing.T) {
	ledger := newMemoryLedger(defaultWarehouse())
	seedStock(t, ledger, 10, 20)

	reserve := NewReserveOrderHandler(ledger, warehouseRepo{ledger})
	require.NoError(t, reserve.Handle(ReserveOrderCommand{
		WorkspaceID: 1,
		OrderID:     100,
		Items:       []ReservationLine{{ProductID: 10, Quantity: 4}},
	}))

	release := NewReleaseOrderHandler(ledger)
	require.NoError(t, release.Handle(ReleaseOrderCommand{WorkspaceID: 1, OrderID: 100}))

	sum, _ := ledger.SumByStock(1, 1, 10)
	assert.Equal(t, 20, sum, "release restores the pre-reservation stock")

	reserved, _ := ledger.SumReservedByOrder(1, 100)
	assert.Zero(t, reserved[domain.StockKey{WarehouseID: 1, ProductID: 10}])
}

func TestReleaseOrder_SecondReleaseIsNoOp(t *testing.T) {
	ledger := newMemoryLedger(defaultWarehouse())
	seedStock(t, ledger, 10, 20)

	reserve := NewReserveOrderHandler(ledger, warehouseRepo{ledger})
	require.NoError(t, reserve.Handle(ReserveOrderCommand{
		WorkspaceID: 1,
		OrderID:     100,
		Items:       []ReservationLine{{ProductID: 10, Quantity: 4}},
	}))

	release := NewReleaseOrderHandler(ledger)
	require.NoError(t, release.Handle(ReleaseOrderCommand{WorkspaceID: 1, OrderID: 100}))
	countAfterFirst := len(ledger.movements)

	require.NoError(t, release.Handle(ReleaseOrderCommand{WorkspaceID: 1, OrderID: 100}))
	assert.Equal(t, countAfterFirst, len(ledger.movements), "second release must not insert movements")

	sum, _ := ledger.SumByStock(1, 1, 10)
	assert.Equal(t, 20, sum)
}

func TestReleaseOrder_NothingReservedIsNoOp(t *testing.T) {
	ledger := newMemoryLedger(defaultWarehouse())

	release := NewReleaseOrderHandler(ledger)
	require.NoError(t, release.Handle(ReleaseOrderCommand{WorkspaceID: 1, OrderID: 999}))
	assert.Empty(t, ledger.movements)
}

func TestReceivePurchaseOrder_BooksPositiveMovements(t *testing.T) {
	ledger := newMemoryLedger(defaultWarehouse())

	handler := NewReceivePurchaseOrderHandler(ledger, warehouseRepo{ledger})
	err := handler.Handle(ReceivePurchaseOrderCommand{
		WorkspaceID:     1,
		PurchaseOrderID: 55,
		Items: []ReceiptLine{
			{ProductID: 10, Quantity: 12},
			{ProductID: 11, Quantity: 7},
		},
	})
	require.NoError(t, err)

	sum10, _ := ledger.SumByStock(1, 1, 10)
	sum11, _ := ledger.SumByStock(1, 1, 11)
	assert.Equal(t, 12, sum10)
	assert.Equal(t, 7, sum11)

	for _, mv := range ledger.movements {
		assert.Equal(t, domain.MovementPurchase, mv.Type)
		require.NotNil(t, mv.PurchaseOrderID)
		assert.Equal(t, uint(55), *mv.PurchaseOrderID)
	}
}

func seedStock(t *testing.T, ledger *memoryLedger, productID uint, quantity int) {
	t.Helper()
	handler := NewAdjustStockHandler(ledger)
	_, err := handler.Handle(AdjustStockCommand{
		WorkspaceID: 1,
		WarehouseID: 1,
		ProductID:   productID,
		Quantity:    quantity,
		Type:        domain.MovementPurchase,
	})
	require.NoError(t, err)
}
