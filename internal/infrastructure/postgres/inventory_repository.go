package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/posfin/pos-finanzas-api/internal/domain/entity"
	"github.com/posfin/pos-finanzas-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL
// (usable con pool o tx). La fila de inventarios es única por producto.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// GetByProduct obtiene las existencias de un producto.
func (r *InventoryRepo) GetByProduct(productID string) (*entity.Inventory, error) {
	query := `
		SELECT id, productos_id, ubicaciones_id, cantidad_pz, cantidad_kg, cantidad_minima, cantidad_maxima, fecha_actualizacion
		FROM inventarios WHERE productos_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID))
}

// GetByProductForUpdate obtiene las existencias bloqueando la fila
// (SELECT FOR UPDATE) para serializar mutaciones concurrentes por producto.
func (r *InventoryRepo) GetByProductForUpdate(productID string) (*entity.Inventory, error) {
	query := `
		SELECT id, productos_id, ubicaciones_id, cantidad_pz, cantidad_kg, cantidad_minima, cantidad_maxima, fecha_actualizacion
		FROM inventarios WHERE productos_id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID))
}

// Upsert inserta o actualiza la fila de inventario del producto.
func (r *InventoryRepo) Upsert(inventory *entity.Inventory) error {
	query := `
		INSERT INTO inventarios (id, productos_id, ubicaciones_id, cantidad_pz, cantidad_kg, cantidad_minima, cantidad_maxima, fecha_actualizacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (productos_id)
		DO UPDATE SET cantidad_pz = EXCLUDED.cantidad_pz, cantidad_kg = EXCLUDED.cantidad_kg,
			cantidad_minima = EXCLUDED.cantidad_minima, cantidad_maxima = EXCLUDED.cantidad_maxima,
			fecha_actualizacion = EXCLUDED.fecha_actualizacion`
	_, err := r.q.Exec(context.Background(), query,
		inventory.ID, inventory.ProductID, inventory.LocationID,
		inventory.QuantityPz, inventory.QuantityKg,
		inventory.MinQuantity, inventory.MaxQuantity, inventory.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert inventario: %w", err)
	}
	return nil
}

func (r *InventoryRepo) scanOne(row pgx.Row) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := row.Scan(
		&inv.ID, &inv.ProductID, &inv.LocationID, &inv.QuantityPz, &inv.QuantityKg,
		&inv.MinQuantity, &inv.MaxQuantity, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventario: %w", err)
	}
	return &inv, nil
}

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación del libro de movimientos sobre
// PostgreSQL. Solo inserta y lista: los registros nunca se mutan.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(movement *entity.InventoryMovement) error {
	query := `
		INSERT INTO movimientos_inventarios (id, productos_id, ubicaciones_id, tipo_movimientos_id, cantidad, fecha_movimiento, usuarios_id, clave_movimiento)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.LocationID, movement.MovementTypeID,
		movement.Quantity, movement.MovedAt, movement.UserID, movement.MovementKey,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// ListByProduct movimientos de un producto, más recientes primero.
func (r *InventoryMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, productos_id, ubicaciones_id, tipo_movimientos_id, cantidad, fecha_movimiento, usuarios_id, clave_movimiento
		FROM movimientos_inventarios WHERE productos_id = $1
		ORDER BY fecha_movimiento DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()

	var movements []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.LocationID, &m.MovementTypeID,
			&m.Quantity, &m.MovedAt, &m.UserID, &m.MovementKey,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}
