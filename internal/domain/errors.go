package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrNoPriceAvailable  = errors.New("no hay precio vigente")
	ErrNoCostAvailable   = errors.New("no hay costo vigente")
	ErrEmptyCart         = errors.New("no hay productos en el carrito")
	ErrNoCustomers       = errors.New("no hay clientes registrados en el sistema")
	ErrInvalidAmount     = errors.New("el monto a pagar debe ser mayor a cero")
	ErrExceedsDebt       = errors.New("el monto excede la deuda pendiente")
	ErrAlreadyPaid       = errors.New("la orden ya está completamente pagada")
	ErrConfigMissing     = errors.New("configuración del sistema incompleta")
)

// NotFoundError identifica la entidad y el ID que no se encontró.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s no encontrado", e.Entity)
	}
	return fmt.Sprintf("%s no encontrado: %s", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InsufficientStockError detalla unidad, disponible y solicitado.
type InsufficientStockError struct {
	Unit      string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente en %s. Disponible: %s, Solicitado: %s",
		e.Unit, e.Available.String(), e.Requested.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ExceedsDebtError indica que un pago supera la deuda pendiente de la orden.
type ExceedsDebtError struct {
	Remaining decimal.Decimal
}

func (e *ExceedsDebtError) Error() string {
	return fmt.Sprintf("el monto a pagar no puede ser mayor a la deuda pendiente: $%s", e.Remaining.String())
}

func (e *ExceedsDebtError) Unwrap() error { return ErrExceedsDebt }

// ConfigMissingError indica que falta un dato de referencia del sistema
// (condición operativa, no un error del usuario).
type ConfigMissingError struct {
	Reference string
}

func (e *ConfigMissingError) Error() string {
	return fmt.Sprintf("%s no encontrado en el sistema", e.Reference)
}

func (e *ConfigMissingError) Unwrap() error { return ErrConfigMissing }
