package dto

import "github.com/shopspring/decimal"

// AddToCartRequest agrega (o suma) un producto al carrito de un workspace.
// Cantidades en cero son no-op para esa unidad; las piezas se truncan a enteros.
type AddToCartRequest struct {
	ProductID  string          `json:"product_id"`
	QuantityPz decimal.Decimal `json:"quantity_pz"`
	QuantityKg decimal.Decimal `json:"quantity_kg"`
}

// WorkspaceOrderResponse línea del carrito con precio y nombres resueltos.
type WorkspaceOrderResponse struct {
	ID             string          `json:"id"`
	WorkspaceID    string          `json:"workspace_id"`
	WorkspaceName  string          `json:"workspace_name"`
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	PriceHistoryID string          `json:"price_history_id"`
	Price          decimal.Decimal `json:"price"`
	QuantityPz     decimal.Decimal `json:"quantity_pz"`
	QuantityKg     decimal.Decimal `json:"quantity_kg"`
}
