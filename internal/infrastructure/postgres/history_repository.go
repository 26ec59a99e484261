package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/posfin/pos-finanzas-api/internal/domain/entity"
	"github.com/posfin/pos-finanzas-api/internal/domain/repository"
)

var _ repository.PriceHistoryRepository = (*PriceHistoryRepo)(nil)

// PriceHistoryRepo implementación del historial de precios sobre PostgreSQL.
type PriceHistoryRepo struct {
	q Querier
}

// NewPriceHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceHistoryRepository(q Querier) *PriceHistoryRepo {
	return &PriceHistoryRepo{q: q}
}

// Create registra un nuevo precio de venta.
func (r *PriceHistoryRepo) Create(price *entity.PriceHistory) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO historial_precios (id, productos_id, precio, fecha_de_registro) VALUES ($1, $2, $3, $4)`,
		price.ID, price.ProductID, price.Price, price.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("insert precio: %w", err)
	}
	return nil
}

// FindLatestByProduct devuelve el precio vigente (el más reciente).
func (r *PriceHistoryRepo) FindLatestByProduct(productID string) (*entity.PriceHistory, error) {
	query := `
		SELECT id, productos_id, precio, fecha_de_registro
		FROM historial_precios WHERE productos_id = $1
		ORDER BY fecha_de_registro DESC LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID))
}

// GetByID obtiene una entrada del historial por ID.
func (r *PriceHistoryRepo) GetByID(id string) (*entity.PriceHistory, error) {
	query := `
		SELECT id, productos_id, precio, fecha_de_registro
		FROM historial_precios WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *PriceHistoryRepo) scanOne(row pgx.Row) (*entity.PriceHistory, error) {
	var p entity.PriceHistory
	err := row.Scan(&p.ID, &p.ProductID, &p.Price, &p.RecordedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get precio: %w", err)
	}
	return &p, nil
}

var _ repository.CostHistoryRepository = (*CostHistoryRepo)(nil)

// CostHistoryRepo implementación del historial de costos sobre PostgreSQL.
type CostHistoryRepo struct {
	q Querier
}

// NewCostHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCostHistoryRepository(q Querier) *CostHistoryRepo {
	return &CostHistoryRepo{q: q}
}

// Create registra un nuevo costo de compra.
func (r *CostHistoryRepo) Create(cost *entity.CostHistory) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO historial_costos (id, productos_id, costo, fecha_de_registro) VALUES ($1, $2, $3, $4)`,
		cost.ID, cost.ProductID, cost.Cost, cost.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("insert costo: %w", err)
	}
	return nil
}

// FindLatestByProduct devuelve el costo vigente (el más reciente).
func (r *CostHistoryRepo) FindLatestByProduct(productID string) (*entity.CostHistory, error) {
	query := `
		SELECT id, productos_id, costo, fecha_de_registro
		FROM historial_costos WHERE productos_id = $1
		ORDER BY fecha_de_registro DESC LIMIT 1`
	var c entity.CostHistory
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&c.ID, &c.ProductID, &c.Cost, &c.RecordedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get costo: %w", err)
	}
	return &c, nil
}
