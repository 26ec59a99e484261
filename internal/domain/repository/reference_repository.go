package repository

import "github.com/posfin/pos-finanzas-api/internal/domain/entity"

// Puertos para datos de referencia. La búsqueda por nombre es un lookup
// indexado en la frontera de persistencia, no un escaneo en memoria.

// StatusRepository estados del sistema ("Activo", ...).
type StatusRepository interface {
	GetByID(id string) (*entity.Status, error)
	FindByName(name string) (*entity.Status, error)
}

// LocationRepository ubicaciones físicas del inventario.
type LocationRepository interface {
	GetByID(id string) (*entity.Location, error)
	// FindFirst devuelve la primera ubicación registrada (destino por defecto
	// de los movimientos de compra). (nil, nil) si no hay ninguna.
	FindFirst() (*entity.Location, error)
}

// PaymentMethodRepository métodos de pago.
type PaymentMethodRepository interface {
	GetByID(id string) (*entity.PaymentMethod, error)
	FindByName(name string) (*entity.PaymentMethod, error)
}

// MovementTypeRepository tipos de movimiento de inventario.
type MovementTypeRepository interface {
	GetByID(id string) (*entity.MovementType, error)
	FindByName(name string) (*entity.MovementType, error)
	Create(movementType *entity.MovementType) error
}
