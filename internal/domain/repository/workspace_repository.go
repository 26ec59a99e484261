package repository

import "github.com/posfin/pos-finanzas-api/internal/domain/entity"

// WorkspaceRepository puerto de persistencia para workspaces (terminales/mesas).
type WorkspaceRepository interface {
	Create(workspace *entity.Workspace) error
	GetByID(id string) (*entity.Workspace, error)
	List() ([]*entity.Workspace, error)
}

// WorkspaceOrderRepository puerto para las líneas del carrito temporal.
// Los listados cargan precio y nombres vía JOIN.
type WorkspaceOrderRepository interface {
	GetByID(id string) (*entity.WorkspaceOrder, error)
	ListByWorkspace(workspaceID string) ([]*entity.WorkspaceOrder, error)
	FindByWorkspaceAndProduct(workspaceID, productID string) (*entity.WorkspaceOrder, error)
	Save(order *entity.WorkspaceOrder) error
	Delete(id string) error
	DeleteByWorkspace(workspaceID string) error
}
