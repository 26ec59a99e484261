package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/posfin/pos-finanzas-api/internal/domain"
	"github.com/posfin/pos-finanzas-api/internal/domain/entity"
	"github.com/posfin/pos-finanzas-api/internal/domain/repository"
)

var _ repository.WorkspaceRepository = (*WorkspaceRepo)(nil)

// WorkspaceRepo implementación de WorkspaceRepository sobre PostgreSQL.
type WorkspaceRepo struct {
	q Querier
}

// NewWorkspaceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkspaceRepository(q Querier) *WorkspaceRepo {
	return &WorkspaceRepo{q: q}
}

// Create persiste un workspace.
func (r *WorkspaceRepo) Create(workspace *entity.Workspace) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO workspaces (id, nombre) VALUES ($1, $2)`,
		workspace.ID, workspace.Name,
	)
	if err != nil {
		if uniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert workspace: %w", err)
	}
	return nil
}

// GetByID obtiene un workspace por ID.
func (r *WorkspaceRepo) GetByID(id string) (*entity.Workspace, error) {
	var w entity.Workspace
	err := r.q.QueryRow(context.Background(),
		`SELECT id, nombre FROM workspaces WHERE id = $1`, id,
	).Scan(&w.ID, &w.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	return &w, nil
}

// List lista todos los workspaces.
func (r *WorkspaceRepo) List() ([]*entity.Workspace, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, nombre FROM workspaces ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer rows.Close()

	var workspaces []*entity.Workspace
	for rows.Next() {
		var w entity.Workspace
		if err := rows.Scan(&w.ID, &w.Name); err != nil {
			return nil, fmt.Errorf("scan workspace: %w", err)
		}
		workspaces = append(workspaces, &w)
	}
	return workspaces, rows.Err()
}

var _ repository.WorkspaceOrderRepository = (*WorkspaceOrderRepo)(nil)

// WorkspaceOrderRepo implementación de las líneas del carrito temporal sobre
// PostgreSQL. Las lecturas cargan precio y nombres vía JOIN.
type WorkspaceOrderRepo struct {
	q Querier
}

// NewWorkspaceOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkspaceOrderRepository(q Querier) *WorkspaceOrderRepo {
	return &WorkspaceOrderRepo{q: q}
}

const workspaceOrderSelect = `
	SELECT ow.id, ow.workspaces_id, ow.productos_id, ow.historial_precios_id,
		ow.cantidad_pz, ow.cantidad_kg, hp.precio, p.nombre, w.nombre
	FROM ordenes_workspace ow
	JOIN historial_precios hp ON hp.id = ow.historial_precios_id
	JOIN productos p ON p.id = ow.productos_id
	JOIN workspaces w ON w.id = ow.workspaces_id`

// GetByID obtiene una línea del carrito por ID.
func (r *WorkspaceOrderRepo) GetByID(id string) (*entity.WorkspaceOrder, error) {
	return r.scanOne(r.q.QueryRow(context.Background(),
		workspaceOrderSelect+` WHERE ow.id = $1`, id))
}

// FindByWorkspaceAndProduct busca la línea de un producto en un workspace.
func (r *WorkspaceOrderRepo) FindByWorkspaceAndProduct(workspaceID, productID string) (*entity.WorkspaceOrder, error) {
	return r.scanOne(r.q.QueryRow(context.Background(),
		workspaceOrderSelect+` WHERE ow.workspaces_id = $1 AND ow.productos_id = $2`,
		workspaceID, productID))
}

// ListByWorkspace líneas actuales del carrito de un workspace.
func (r *WorkspaceOrderRepo) ListByWorkspace(workspaceID string) ([]*entity.WorkspaceOrder, error) {
	rows, err := r.q.Query(context.Background(),
		workspaceOrderSelect+` WHERE ow.workspaces_id = $1 ORDER BY p.nombre`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list órdenes workspace: %w", err)
	}
	defer rows.Close()

	var orders []*entity.WorkspaceOrder
	for rows.Next() {
		var o entity.WorkspaceOrder
		if err := rows.Scan(
			&o.ID, &o.WorkspaceID, &o.ProductID, &o.PriceHistoryID,
			&o.QuantityPz, &o.QuantityKg, &o.Price, &o.ProductName, &o.WorkspaceName,
		); err != nil {
			return nil, fmt.Errorf("scan orden workspace: %w", err)
		}
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}

// Save inserta o actualiza una línea del carrito (única por workspace+producto).
func (r *WorkspaceOrderRepo) Save(order *entity.WorkspaceOrder) error {
	query := `
		INSERT INTO ordenes_workspace (id, workspaces_id, productos_id, historial_precios_id, cantidad_pz, cantidad_kg)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (workspaces_id, productos_id)
		DO UPDATE SET historial_precios_id = EXCLUDED.historial_precios_id,
			cantidad_pz = EXCLUDED.cantidad_pz, cantidad_kg = EXCLUDED.cantidad_kg`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.WorkspaceID, order.ProductID, order.PriceHistoryID,
		order.QuantityPz, order.QuantityKg,
	)
	if err != nil {
		return fmt.Errorf("save orden workspace: %w", err)
	}
	return nil
}

// Delete elimina una línea del carrito.
func (r *WorkspaceOrderRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM ordenes_workspace WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete orden workspace: %w", err)
	}
	return nil
}

// DeleteByWorkspace elimina todas las líneas del carrito de un workspace.
func (r *WorkspaceOrderRepo) DeleteByWorkspace(workspaceID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM ordenes_workspace WHERE workspaces_id = $1`, workspaceID)
	if err != nil {
		return fmt.Errorf("delete órdenes workspace: %w", err)
	}
	return nil
}

func (r *WorkspaceOrderRepo) scanOne(row pgx.Row) (*entity.WorkspaceOrder, error) {
	var o entity.WorkspaceOrder
	err := row.Scan(
		&o.ID, &o.WorkspaceID, &o.ProductID, &o.PriceHistoryID,
		&o.QuantityPz, &o.QuantityKg, &o.Price, &o.ProductName, &o.WorkspaceName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden workspace: %w", err)
	}
	return &o, nil
}
