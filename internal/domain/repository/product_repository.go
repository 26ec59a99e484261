package repository

import "github.com/posfin/pos-finanzas-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el registro no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}

// CategoryRepository puerto de persistencia para categorías de productos.
type CategoryRepository interface {
	GetByID(id string) (*entity.Category, error)
	List() ([]*entity.Category, error)
}
