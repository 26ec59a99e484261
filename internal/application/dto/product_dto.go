package dto

import "github.com/shopspring/decimal"

// CreateProductRequest alta completa de producto: producto + precio/costo
// iniciales + inventario inicial + movimiento de creación, en una transacción.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	CategoryID   string          `json:"category_id"`
	SupplierID   string          `json:"supplier_id"`
	LocationID   string          `json:"location_id"`
	UnitMeasure  string          `json:"unit_measure"` // "piezas" | "kilogramos"
	SalePrice    decimal.Decimal `json:"sale_price"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	InitialStock decimal.Decimal `json:"initial_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	MaxStock     decimal.Decimal `json:"max_stock"`
}

// ProductResponse producto con precio/costo vigentes y existencias.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	CategoryID   string          `json:"category_id"`
	SupplierID   string          `json:"supplier_id"`
	StatusID     string          `json:"status_id"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	CurrentCost  decimal.Decimal `json:"current_cost"`
	StockPz      decimal.Decimal `json:"stock_pz"`
	StockKg      decimal.Decimal `json:"stock_kg"`
}

// RegisterPriceRequest agrega una entrada al historial de precios o costos.
type RegisterPriceRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
