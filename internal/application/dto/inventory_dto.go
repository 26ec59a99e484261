package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevelResponse existencias actuales de un producto.
type StockLevelResponse struct {
	ProductID   string          `json:"product_id"`
	LocationID  string          `json:"location_id"`
	QuantityPz  decimal.Decimal `json:"quantity_pz"`
	QuantityKg  decimal.Decimal `json:"quantity_kg"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
	MaxQuantity decimal.Decimal `json:"max_quantity"`
}

// MovementResponse registro del libro de movimientos.
type MovementResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	LocationID     string          `json:"location_id"`
	MovementTypeID string          `json:"movement_type_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	MovedAt        time.Time       `json:"moved_at"`
	UserID         string          `json:"user_id"`
	MovementKey    string          `json:"movement_key"`
}
