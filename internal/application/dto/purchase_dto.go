package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLineRequest línea de una orden de compra; al menos una unidad > 0.
type PurchaseLineRequest struct {
	ProductID  string          `json:"product_id"`
	QuantityPz decimal.Decimal `json:"quantity_pz"`
	QuantityKg decimal.Decimal `json:"quantity_kg"`
}

// CreatePurchaseRequest crea una orden de compra a proveedor.
// PaymentMethodID vacío usa "Efectivo".
type CreatePurchaseRequest struct {
	SupplierID      string                `json:"supplier_id"`
	PaymentMethodID string                `json:"payment_method_id"`
	Lines           []PurchaseLineRequest `json:"lines"`
}

// PurchaseOrderResponse orden de compra con campos de despliegue.
type PurchaseOrderResponse struct {
	ID           string          `json:"id"`
	SupplierID   string          `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	StatusName   string          `json:"status_name"`
	Total        decimal.Decimal `json:"total"`
	OrderedAt    time.Time       `json:"ordered_at"`
}

// PaymentRequest registra un abono contra una orden de compra.
// PayFullRemaining paga toda la deuda pendiente e ignora Amount.
type PaymentRequest struct {
	SupplierID       string          `json:"supplier_id"`
	PurchaseOrderID  string          `json:"purchase_order_id"`
	PaymentMethodID  string          `json:"payment_method_id"`
	Amount           decimal.Decimal `json:"amount"`
	PayFullRemaining bool            `json:"pay_full_remaining"`
}

// SupplierPaymentResponse abono registrado.
type SupplierPaymentResponse struct {
	ID              string          `json:"id"`
	SupplierID      string          `json:"supplier_id"`
	PurchaseOrderID string          `json:"purchase_order_id"`
	PaymentMethodID string          `json:"payment_method_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaidAt          time.Time       `json:"paid_at"`
}
