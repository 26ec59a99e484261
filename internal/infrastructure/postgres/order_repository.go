package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/posfin/pos-finanzas-api/internal/domain/entity"
	"github.com/posfin/pos-finanzas-api/internal/domain/repository"
)

var _ repository.SaleOrderRepository = (*SaleOrderRepo)(nil)

// SaleOrderRepo implementación de SaleOrderRepository sobre PostgreSQL.
type SaleOrderRepo struct {
	q Querier
}

// NewSaleOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleOrderRepository(q Querier) *SaleOrderRepo {
	return &SaleOrderRepo{q: q}
}

// Create persiste la cabecera de una orden de venta.
func (r *SaleOrderRepo) Create(order *entity.SaleOrder) error {
	query := `
		INSERT INTO ordenes_de_ventas (id, personas_id, usuarios_id, metodos_pago_id, total_venta, fecha_orden)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.PersonID, order.UserID, order.PaymentMethodID, order.Total, order.OrderedAt,
	)
	if err != nil {
		return fmt.Errorf("insert orden de venta: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de la orden de venta.
func (r *SaleOrderRepo) CreateDetail(detail *entity.SaleOrderDetail) error {
	query := `
		INSERT INTO detalles_ordenes_de_ventas (id, ordenes_de_ventas_id, productos_id, historial_precios_id, cantidad_pz, cantidad_kg)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.SaleOrderID, detail.ProductID, detail.PriceHistoryID,
		detail.QuantityPz, detail.QuantityKg,
	)
	if err != nil {
		return fmt.Errorf("insert detalle de venta: %w", err)
	}
	return nil
}

// GetByID obtiene una orden de venta por ID.
func (r *SaleOrderRepo) GetByID(id string) (*entity.SaleOrder, error) {
	query := `
		SELECT id, personas_id, usuarios_id, metodos_pago_id, total_venta, fecha_orden
		FROM ordenes_de_ventas WHERE id = $1`
	var o entity.SaleOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.PersonID, &o.UserID, &o.PaymentMethodID, &o.Total, &o.OrderedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden de venta: %w", err)
	}
	return &o, nil
}

// ListDetails líneas de una orden de venta.
func (r *SaleOrderRepo) ListDetails(saleOrderID string) ([]*entity.SaleOrderDetail, error) {
	query := `
		SELECT id, ordenes_de_ventas_id, productos_id, historial_precios_id, cantidad_pz, cantidad_kg
		FROM detalles_ordenes_de_ventas WHERE ordenes_de_ventas_id = $1`
	rows, err := r.q.Query(context.Background(), query, saleOrderID)
	if err != nil {
		return nil, fmt.Errorf("list detalles de venta: %w", err)
	}
	defer rows.Close()

	var details []*entity.SaleOrderDetail
	for rows.Next() {
		var d entity.SaleOrderDetail
		if err := rows.Scan(&d.ID, &d.SaleOrderID, &d.ProductID, &d.PriceHistoryID, &d.QuantityPz, &d.QuantityKg); err != nil {
			return nil, fmt.Errorf("scan detalle de venta: %w", err)
		}
		details = append(details, &d)
	}
	return details, rows.Err()
}

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la cabecera de una orden de compra.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO ordenes_de_compras (id, personas_id, estados_id, total_compra, fecha_orden)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.PersonID, order.StatusID, order.Total, order.OrderedAt,
	)
	if err != nil {
		return fmt.Errorf("insert orden de compra: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de la orden de compra.
func (r *PurchaseOrderRepo) CreateDetail(detail *entity.PurchaseOrderDetail) error {
	query := `
		INSERT INTO detalles_ordenes_de_compras (id, ordenes_de_compras_id, productos_id, historial_costos_id, cantidad_pz, cantidad_kg)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.PurchaseOrderID, detail.ProductID, detail.CostHistoryID,
		detail.QuantityPz, detail.QuantityKg,
	)
	if err != nil {
		return fmt.Errorf("insert detalle de compra: %w", err)
	}
	return nil
}

// GetByID obtiene una orden de compra por ID.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, personas_id, estados_id, total_compra, fecha_orden
		FROM ordenes_de_compras WHERE id = $1`
	var o entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.PersonID, &o.StatusID, &o.Total, &o.OrderedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden de compra: %w", err)
	}
	return &o, nil
}

var _ repository.SupplierPaymentRepository = (*SupplierPaymentRepo)(nil)

// SupplierPaymentRepo implementación de SupplierPaymentRepository sobre PostgreSQL.
type SupplierPaymentRepo struct {
	q Querier
}

// NewSupplierPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierPaymentRepository(q Querier) *SupplierPaymentRepo {
	return &SupplierPaymentRepo{q: q}
}

// Create persiste un abono a proveedor.
func (r *SupplierPaymentRepo) Create(payment *entity.SupplierPayment) error {
	query := `
		INSERT INTO historial_cargos_proveedores (id, personas_id, ordenes_de_compras_id, metodos_pago_id, monto_pagado, fecha)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.PersonID, payment.PurchaseOrderID, payment.PaymentMethodID,
		payment.Amount, payment.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("insert abono: %w", err)
	}
	return nil
}

// SumByOrder total abonado contra una orden de compra (cero si no hay pagos).
func (r *SupplierPaymentRepo) SumByOrder(purchaseOrderID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(monto_pagado), 0) FROM historial_cargos_proveedores WHERE ordenes_de_compras_id = $1`,
		purchaseOrderID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum abonos: %w", err)
	}
	return total, nil
}
