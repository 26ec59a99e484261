package entity

import "github.com/shopspring/decimal"

// Workspace terminal/mesa del punto de venta con su carrito temporal.
type Workspace struct {
	ID   string
	Name string
}

// WorkspaceOrder línea del carrito temporal: un producto apartado en un
// workspace con sus cantidades y el precio vigente al agregarlo. La pareja
// (WorkspaceID, ProductID) es única; agregar de nuevo suma cantidades y
// refresca el precio.
type WorkspaceOrder struct {
	ID             string
	WorkspaceID    string
	ProductID      string
	PriceHistoryID string
	QuantityPz     decimal.Decimal
	QuantityKg     decimal.Decimal

	// Campos de lectura cargados por el repositorio (JOIN), no persistidos aquí.
	Price         decimal.Decimal
	ProductName   string
	WorkspaceName string
}
