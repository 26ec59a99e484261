package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleOrder orden de venta finalizada. Inmutable una vez creada.
type SaleOrder struct {
	ID              string
	PersonID        string // cliente
	UserID          string // cajero
	PaymentMethodID string
	Total           decimal.Decimal
	OrderedAt       time.Time
}

// SaleOrderDetail línea de una orden de venta con el precio vigente al vender.
type SaleOrderDetail struct {
	ID             string
	SaleOrderID    string
	ProductID      string
	PriceHistoryID string
	QuantityPz     decimal.Decimal
	QuantityKg     decimal.Decimal
}
