package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder orden de compra a proveedor. Inmutable una vez creada.
type PurchaseOrder struct {
	ID        string
	PersonID  string // proveedor
	StatusID  string
	Total     decimal.Decimal
	OrderedAt time.Time
}

// PurchaseOrderDetail línea de una orden de compra con el costo vigente al comprar.
type PurchaseOrderDetail struct {
	ID              string
	PurchaseOrderID string
	ProductID       string
	CostHistoryID   string
	QuantityPz      decimal.Decimal
	QuantityKg      decimal.Decimal
}

// SupplierPayment abono registrado contra una orden de compra.
type SupplierPayment struct {
	ID              string
	PersonID        string // proveedor
	PurchaseOrderID string
	PaymentMethodID string
	Amount          decimal.Decimal
	PaidAt          time.Time
}
