package repository

import (
	"github.com/shopspring/decimal"

	"github.com/posfin/pos-finanzas-api/internal/domain/entity"
)

// SaleOrderRepository puerto de persistencia para órdenes de venta.
type SaleOrderRepository interface {
	Create(order *entity.SaleOrder) error
	CreateDetail(detail *entity.SaleOrderDetail) error
	GetByID(id string) (*entity.SaleOrder, error)
	ListDetails(saleOrderID string) ([]*entity.SaleOrderDetail, error)
}

// PurchaseOrderRepository puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	CreateDetail(detail *entity.PurchaseOrderDetail) error
	GetByID(id string) (*entity.PurchaseOrder, error)
}

// SupplierPaymentRepository puerto para abonos a proveedores.
type SupplierPaymentRepository interface {
	Create(payment *entity.SupplierPayment) error
	// SumByOrder total abonado contra una orden de compra (cero si no hay pagos).
	SumByOrder(purchaseOrderID string) (decimal.Decimal, error)
}
