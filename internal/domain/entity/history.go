package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceHistory historial de precios de venta (append-only; el más reciente rige).
type PriceHistory struct {
	ID         string
	ProductID  string
	Price      decimal.Decimal
	RecordedAt time.Time
}

// CostHistory historial de costos de compra (append-only; el más reciente rige).
type CostHistory struct {
	ID         string
	ProductID  string
	Cost       decimal.Decimal
	RecordedAt time.Time
}
