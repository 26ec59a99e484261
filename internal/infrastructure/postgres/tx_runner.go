package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/posfin/pos-finanzas-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, pasando
// repositorios atados a la tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback según el resultado.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := ports.TxRepos{
		Products:        NewProductRepository(tx),
		Inventory:       NewInventoryRepository(tx),
		WorkspaceOrders: NewWorkspaceOrderRepository(tx),
		Movements:       NewInventoryMovementRepository(tx),
		MovementTypes:   NewMovementTypeRepository(tx),
		SaleOrders:      NewSaleOrderRepository(tx),
		PurchaseOrders:  NewPurchaseOrderRepository(tx),
		Payments:        NewSupplierPaymentRepository(tx),
		Prices:          NewPriceHistoryRepository(tx),
		Costs:           NewCostHistoryRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
