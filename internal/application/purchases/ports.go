package purchases

import (
	"github.com/shopspring/decimal"

	"github.com/posfin/pos-finanzas-api/internal/domain/entity"
	"github.com/posfin/pos-finanzas-api/internal/domain/repository"
)

// StockKeeper suma existencias dentro de la transacción del caller.
type StockKeeper interface {
	IncrementInTx(invRepo repository.InventoryRepository, productID string, pz, kg decimal.Decimal) (*entity.Inventory, error)
}
