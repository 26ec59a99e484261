package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Nombres de los tipos de movimiento tal como viven en la tabla de referencia.
// "Compra" se crea en el primer uso; los otros dos son precondición de provisión.
const (
	MovementTypeCreation = "Creación"
	MovementTypePurchase = "Compra"
	MovementTypeSale     = "VENTA"
)

// InventoryMovement registro append-only del libro de movimientos. Cada
// mutación de existencias por creación, compra o venta produce exactamente
// un registro con una clave única; nunca se actualiza ni se borra.
type InventoryMovement struct {
	ID             string
	ProductID      string
	LocationID     string
	MovementTypeID string
	Quantity       decimal.Decimal // la unidad con valor: pz si pz>0, si no kg
	MovedAt        time.Time
	UserID         string
	MovementKey    string // clave única de auditoría (VENTA-, COMPRA-, CREACION-)
}

// SaleMovementKey clave para movimientos de venta: VENTA-<8 chars aleatorios>.
func SaleMovementKey() string {
	return "VENTA-" + strings.ToUpper(uuid.New().String()[:8])
}

// PurchaseMovementKey clave para movimientos de compra: COMPRA-<orden>-<producto>.
func PurchaseMovementKey(purchaseOrderID, productID string) string {
	return "COMPRA-" + purchaseOrderID + "-" + productID
}

// CreationMovementKey clave para el movimiento inicial de un producto.
func CreationMovementKey(productID string) string {
	id := productID
	if len(id) > 8 {
		id = id[:8]
	}
	return "CREACION-" + id
}

// MovementQuantity devuelve la cantidad unit-agnóstica del movimiento:
// piezas si hay piezas, si no kilogramos.
func MovementQuantity(pz, kg decimal.Decimal) decimal.Decimal {
	if pz.GreaterThan(decimal.Zero) {
		return pz
	}
	return kg
}
