package repository

import "github.com/posfin/pos-finanzas-api/internal/domain/entity"

// PersonRepository puerto de persistencia para clientes y proveedores.
type PersonRepository interface {
	Create(person *entity.Person) error
	GetByID(id string) (*entity.Person, error)
	// FindFirst devuelve la persona más antigua registrada (cliente por
	// defecto cuando la venta no especifica uno). (nil, nil) si no hay.
	FindFirst() (*entity.Person, error)
	List(limit, offset int) ([]*entity.Person, error)
}

// UserRepository puerto de persistencia para usuarios operadores.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByName(name string) (*entity.User, error)
}
