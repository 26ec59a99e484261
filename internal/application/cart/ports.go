package cart

import (
	"github.com/shopspring/decimal"

	"github.com/posfin/pos-finanzas-api/internal/domain/entity"
	"github.com/posfin/pos-finanzas-api/internal/domain/repository"
)

// StockKeeper aparta y devuelve existencias usando el repositorio de la
// transacción del caller. Si retorna error (ej: InsufficientStockError) el
// caller debe abortar la transacción.
type StockKeeper interface {
	ReserveInTx(invRepo repository.InventoryRepository, productID string, pz, kg decimal.Decimal) (*entity.Inventory, error)
	ReleaseInTx(invRepo repository.InventoryRepository, productID string, pz, kg decimal.Decimal) (*entity.Inventory, error)
}
