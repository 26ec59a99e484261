package purchases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/posfin/pos-finanzas-api/internal/application/dto"
	"github.com/posfin/pos-finanzas-api/internal/application/ports"
	"github.com/posfin/pos-finanzas-api/internal/domain"
	"github.com/posfin/pos-finanzas-api/internal/domain/entity"
	"github.com/posfin/pos-finanzas-api/internal/domain/repository"
)

// UseCase gestiona compras a proveedores: creación de órdenes con incremento
// de inventario y registro de abonos contra la deuda de cada orden.
type UseCase struct {
	txRunner     ports.TxRunner
	stock        StockKeeper
	personRepo   repository.PersonRepository
	productRepo  repository.ProductRepository
	statusRepo   repository.StatusRepository
	methodRepo   repository.PaymentMethodRepository
	locationRepo repository.LocationRepository
	costRepo     repository.CostHistoryRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ports.TxRunner,
	stock StockKeeper,
	personRepo repository.PersonRepository,
	productRepo repository.ProductRepository,
	statusRepo repository.StatusRepository,
	methodRepo repository.PaymentMethodRepository,
	locationRepo repository.LocationRepository,
	costRepo repository.CostHistoryRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		stock:        stock,
		personRepo:   personRepo,
		productRepo:  productRepo,
		statusRepo:   statusRepo,
		methodRepo:   methodRepo,
		locationRepo: locationRepo,
		costRepo:     costRepo,
	}
}

// línea ya resuelta contra catálogo y costo vigente, lista para persistir.
type resolvedLine struct {
	product  *entity.Product
	cost     *entity.CostHistory
	pz       decimal.Decimal
	kg       decimal.Decimal
	subtotal decimal.Decimal
}

// CreateOrder crea una orden de compra a proveedor. El costo unitario de cada
// línea es el vigente del historial de costos; el subtotal es costo×pz +
// costo×kg. La orden, sus detalles, los incrementos de inventario y los
// movimientos del libro se confirman en una sola transacción.
func (uc *UseCase) CreateOrder(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseOrderResponse, error) {
	if in.SupplierID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	supplier, err := uc.personRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, &domain.NotFoundError{Entity: "proveedor", ID: in.SupplierID}
	}

	active, err := uc.statusRepo.FindByName(entity.StatusActive)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, &domain.ConfigMissingError{Reference: "estado '" + entity.StatusActive + "'"}
	}

	// El método de pago no se guarda en la orden, pero debe existir; sin
	// indicarlo se usa el de efectivo.
	if _, err := uc.resolvePaymentMethod(in.PaymentMethodID); err != nil {
		return nil, err
	}

	// Ubicación destino de los movimientos de compra: la primera registrada.
	location, err := uc.locationRepo.FindFirst()
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, &domain.ConfigMissingError{Reference: "ubicación de inventario"}
	}

	lines, total, err := uc.resolveLines(in.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:        uuid.New().String(),
		PersonID:  supplier.ID,
		StatusID:  active.ID,
		Total:     total,
		OrderedAt: now,
	}

	err = uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		if err := r.PurchaseOrders.Create(order); err != nil {
			return err
		}
		// El tipo "Compra" se crea en el primer uso.
		purchaseType, err := uc.ensurePurchaseType(r.MovementTypes)
		if err != nil {
			return err
		}
		for _, line := range lines {
			detail := &entity.PurchaseOrderDetail{
				ID:              uuid.New().String(),
				PurchaseOrderID: order.ID,
				ProductID:       line.product.ID,
				CostHistoryID:   line.cost.ID,
				QuantityPz:      line.pz,
				QuantityKg:      line.kg,
			}
			if err := r.PurchaseOrders.CreateDetail(detail); err != nil {
				return err
			}
			if _, err := uc.stock.IncrementInTx(r.Inventory, line.product.ID, line.pz, line.kg); err != nil {
				return err
			}
			movement := &entity.InventoryMovement{
				ID:             uuid.New().String(),
				ProductID:      line.product.ID,
				LocationID:     location.ID,
				MovementTypeID: purchaseType.ID,
				Quantity:       entity.MovementQuantity(line.pz, line.kg),
				MovedAt:        now,
				UserID:         userID,
				MovementKey:    entity.PurchaseMovementKey(order.ID, line.product.ID),
			}
			if err := r.Movements.Create(movement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.PurchaseOrderResponse{
		ID:           order.ID,
		SupplierID:   supplier.ID,
		SupplierName: supplier.FullName(),
		StatusName:   active.Name,
		Total:        order.Total,
		OrderedAt:    order.OrderedAt,
	}, nil
}

// RecordPayment registra un abono contra la deuda pendiente de una orden.
// Con PayFullRemaining el monto es toda la deuda restante; si no, el monto
// debe ser mayor a cero y no exceder lo pendiente. La suma de abonos y el
// alta del pago ocurren en la misma transacción para que dos abonos
// concurrentes no excedan la deuda.
func (uc *UseCase) RecordPayment(ctx context.Context, in dto.PaymentRequest) (*dto.SupplierPaymentResponse, error) {
	if in.SupplierID == "" || in.PurchaseOrderID == "" || in.PaymentMethodID == "" {
		return nil, domain.ErrInvalidInput
	}

	supplier, err := uc.personRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, &domain.NotFoundError{Entity: "proveedor", ID: in.SupplierID}
	}
	method, err := uc.methodRepo.GetByID(in.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, &domain.NotFoundError{Entity: "método de pago", ID: in.PaymentMethodID}
	}

	var payment *entity.SupplierPayment
	err = uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		order, err := r.PurchaseOrders.GetByID(in.PurchaseOrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return &domain.NotFoundError{Entity: "orden de compra", ID: in.PurchaseOrderID}
		}
		paid, err := r.Payments.SumByOrder(order.ID)
		if err != nil {
			return err
		}
		remaining := order.Total.Sub(paid)

		var amount decimal.Decimal
		if in.PayFullRemaining {
			if remaining.LessThanOrEqual(decimal.Zero) {
				return domain.ErrAlreadyPaid
			}
			amount = remaining
		} else {
			amount = in.Amount
			if amount.LessThanOrEqual(decimal.Zero) {
				return domain.ErrInvalidAmount
			}
			if amount.GreaterThan(remaining) {
				return &domain.ExceedsDebtError{Remaining: remaining}
			}
		}

		payment = &entity.SupplierPayment{
			ID:              uuid.New().String(),
			PersonID:        supplier.ID,
			PurchaseOrderID: order.ID,
			PaymentMethodID: method.ID,
			Amount:          amount,
			PaidAt:          time.Now(),
		}
		return r.Payments.Create(payment)
	})
	if err != nil {
		return nil, err
	}

	return &dto.SupplierPaymentResponse{
		ID:              payment.ID,
		SupplierID:      payment.PersonID,
		PurchaseOrderID: payment.PurchaseOrderID,
		PaymentMethodID: payment.PaymentMethodID,
		Amount:          payment.Amount,
		PaidAt:          payment.PaidAt,
	}, nil
}

func (uc *UseCase) resolvePaymentMethod(id string) (*entity.PaymentMethod, error) {
	if id != "" {
		method, err := uc.methodRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if method == nil {
			return nil, &domain.NotFoundError{Entity: "método de pago", ID: id}
		}
		return method, nil
	}
	method, err := uc.methodRepo.FindByName(entity.PaymentMethodCash)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, &domain.ConfigMissingError{Reference: "método de pago '" + entity.PaymentMethodCash + "'"}
	}
	return method, nil
}

// resolveLines valida producto y costo vigente por línea y acumula el total.
func (uc *UseCase) resolveLines(reqs []dto.PurchaseLineRequest) ([]resolvedLine, decimal.Decimal, error) {
	total := decimal.Zero
	lines := make([]resolvedLine, 0, len(reqs))
	for _, req := range reqs {
		pz := req.QuantityPz.Truncate(0)
		kg := req.QuantityKg
		if pz.IsNegative() || kg.IsNegative() || (pz.IsZero() && kg.IsZero()) {
			return nil, decimal.Zero, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(req.ProductID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if product == nil {
			return nil, decimal.Zero, &domain.NotFoundError{Entity: "producto", ID: req.ProductID}
		}
		cost, err := uc.costRepo.FindLatestByProduct(product.ID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if cost == nil {
			return nil, decimal.Zero, fmt.Errorf("producto %s: %w", product.Name, domain.ErrNoCostAvailable)
		}
		subtotal := cost.Cost.Mul(pz).Add(cost.Cost.Mul(kg))
		total = total.Add(subtotal)
		lines = append(lines, resolvedLine{product: product, cost: cost, pz: pz, kg: kg, subtotal: subtotal})
	}
	return lines, total, nil
}

// ensurePurchaseType devuelve el tipo "Compra", creándolo si aún no existe.
func (uc *UseCase) ensurePurchaseType(repo repository.MovementTypeRepository) (*entity.MovementType, error) {
	mt, err := repo.FindByName(entity.MovementTypePurchase)
	if err != nil {
		return nil, err
	}
	if mt != nil {
		return mt, nil
	}
	mt = &entity.MovementType{ID: uuid.New().String(), Name: entity.MovementTypePurchase}
	if err := repo.Create(mt); err != nil {
		return nil, err
	}
	return mt, nil
}
