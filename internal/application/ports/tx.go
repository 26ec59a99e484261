package ports

import (
	"context"

	"github.com/posfin/pos-finanzas-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
// Los casos de uso reciben este set dentro de TxRunner.Run y nunca mezclan
// repos transaccionales con los del pool.
type TxRepos struct {
	Products        repository.ProductRepository
	Inventory       repository.InventoryRepository
	WorkspaceOrders repository.WorkspaceOrderRepository
	Movements       repository.InventoryMovementRepository
	MovementTypes   repository.MovementTypeRepository
	SaleOrders      repository.SaleOrderRepository
	PurchaseOrders  repository.PurchaseOrderRepository
	Payments        repository.SupplierPaymentRepository
	Prices          repository.PriceHistoryRepository
	Costs           repository.CostHistoryRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Commit si fn retorna nil; Rollback si retorna error.
// Garantiza atomicidad para el motor de inventario y órdenes.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
