package repository

import "github.com/posfin/pos-finanzas-api/internal/domain/entity"

// PriceHistoryRepository puerto del historial de precios de venta.
type PriceHistoryRepository interface {
	Create(price *entity.PriceHistory) error
	// FindLatestByProduct devuelve el precio vigente (el más reciente).
	// (nil, nil) si el producto no tiene precios registrados.
	FindLatestByProduct(productID string) (*entity.PriceHistory, error)
	GetByID(id string) (*entity.PriceHistory, error)
}

// CostHistoryRepository puerto del historial de costos de compra.
type CostHistoryRepository interface {
	Create(cost *entity.CostHistory) error
	FindLatestByProduct(productID string) (*entity.CostHistory, error)
}
