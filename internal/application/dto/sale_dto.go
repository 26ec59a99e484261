package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProcessSaleRequest convierte el carrito de un workspace en una venta final.
// CustomerID vacío usa el cliente por defecto del sistema.
type ProcessSaleRequest struct {
	WorkspaceID     string `json:"workspace_id"`
	CustomerID      string `json:"customer_id"`
	PaymentMethodID string `json:"payment_method_id"`
}

// SaleOrderResponse orden de venta con los campos de despliegue resueltos.
type SaleOrderResponse struct {
	ID                string          `json:"id"`
	CustomerID        string          `json:"customer_id"`
	CustomerName      string          `json:"customer_name"`
	CashierID         string          `json:"cashier_id"`
	CashierName       string          `json:"cashier_name"`
	PaymentMethodID   string          `json:"payment_method_id"`
	PaymentMethodName string          `json:"payment_method_name"`
	Total             decimal.Decimal `json:"total"`
	OrderedAt         time.Time       `json:"ordered_at"`
}
