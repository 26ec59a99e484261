package repository

import "github.com/posfin/pos-finanzas-api/internal/domain/entity"

// InventoryRepository puerto para consultar/actualizar existencias por producto.
// Usado dentro de transacciones para garantizar consistencia.
type InventoryRepository interface {
	// GetByProduct devuelve (nil, nil) si el producto no tiene inventario.
	GetByProduct(productID string) (*entity.Inventory, error)
	// GetByProductForUpdate bloquea la fila (SELECT FOR UPDATE) para
	// serializar mutaciones concurrentes sobre el mismo producto.
	GetByProductForUpdate(productID string) (*entity.Inventory, error)
	Upsert(inventory *entity.Inventory) error
}

// InventoryMovementRepository puerto de persistencia para el libro de
// movimientos. Solo inserta y lista; los registros nunca se mutan.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error)
}
