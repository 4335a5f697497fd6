package command

import (
	"fmt"

	"github.com/storeops/backoffice/internal/inventory/domain"
)

// CreateWarehouseCommand represents the command to create a warehouse
type CreateWarehouseCommand struct {
	WorkspaceID uint
	Name        string
}

// CreateWarehouseHandler handles create warehouse command
type CreateWarehouseHandler struct {
	repo domain.WarehouseRepository
}

// NewCreateWarehouseHandler creates a new create warehouse handler
func NewCreateWarehouseHandler(repo domain.WarehouseRepository) *CreateWarehouseHandler {
	return &CreateWarehouseHandler{repo: repo}
}

// Handle executes the create warehouse command
func (h *CreateWarehouseHandler) Handle(cmd CreateWarehouseCommand) (*domain.Warehouse, error) {
	if cmd.WorkspaceID == 0 {
		return nil, fmt.Errorf("workspace_id is required")
	}
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	warehouse := &domain.Warehouse{
		WorkspaceID: cmd.WorkspaceID,
		Name:        cmd.Name,
		IsActive:    true,
	}

	if err := h.repo.Create(warehouse); err != nil {
		return nil, fmt.Errorf("failed to create warehouse: %w", err)
	}

	return warehouse, nil
}
