package sales

import (
	"github.com/shopspring/decimal"

	"github.com/posfin/pos-finanzas-api/internal/domain/entity"
	"github.com/posfin/pos-finanzas-api/internal/domain/repository"
)

// StockKeeper descuenta existencias dentro de la transacción del caller.
// El carrito ya apartó las cantidades; el descuento las vuelve definitivas.
type StockKeeper interface {
	DecrementInTx(invRepo repository.InventoryRepository, productID string, pz, kg decimal.Decimal) (*entity.Inventory, error)
}
