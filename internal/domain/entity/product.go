package entity

import "time"

// Product representa un producto del punto de venta. El precio y el costo
// viven en PriceHistory/CostHistory; el stock en Inventory.
type Product struct {
	ID         string
	Name       string
	CategoryID string
	SupplierID string // Person proveedor
	StatusID   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Category categoría de productos.
type Category struct {
	ID   string
	Name string
}
