package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida del inventario.
const (
	UnitPieces    = "piezas"
	UnitKilograms = "kilogramos"
)

// Inventory representa las existencias actuales de un producto.
// Se maneja en dos unidades independientes: piezas (conceptualmente enteras,
// truncadas en la frontera) y kilogramos (fraccionables). Solo se muta a
// través de las operaciones de StockService, nunca directamente.
type Inventory struct {
	ID          string
	ProductID   string
	LocationID  string
	QuantityPz  decimal.Decimal
	QuantityKg  decimal.Decimal
	MinQuantity decimal.Decimal
	MaxQuantity decimal.Decimal
	UpdatedAt   time.Time
}
