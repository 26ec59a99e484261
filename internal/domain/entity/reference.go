package entity

// Datos de referencia del sistema. Se siembran en la provisión inicial;
// su ausencia es una condición operativa (ErrConfigMissing), no de usuario.

// Nombres de referencia que el motor de inventario espera encontrar.
const (
	StatusActive      = "Activo"
	PaymentMethodCash = "Efectivo"
)

// Status estado de entidades (Activo, Inactivo, ...).
type Status struct {
	ID   string
	Name string
}

// Location ubicación física del inventario (bodega, anaquel, ...).
type Location struct {
	ID   string
	Name string
}

// PaymentMethod método de pago (Efectivo, Tarjeta, Transferencia, ...).
type PaymentMethod struct {
	ID   string
	Name string
}

// MovementType tipo de movimiento de inventario (Creación, Compra, VENTA).
type MovementType struct {
	ID   string
	Name string
}
