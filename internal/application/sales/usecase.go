package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/posfin/pos-finanzas-api/internal/application/dto"
	"github.com/posfin/pos-finanzas-api/internal/application/ports"
	"github.com/posfin/pos-finanzas-api/internal/domain"
	"github.com/posfin/pos-finanzas-api/internal/domain/entity"
	"github.com/posfin/pos-finanzas-api/internal/domain/repository"
)

// UseCase convierte el carrito de un workspace en una orden de venta final:
// cabecera + detalles + descuentos de inventario + movimientos del libro +
// vaciado del carrito, todo en una sola transacción. Si cualquier paso falla
// no queda visible ningún efecto y el apartado del carrito sobrevive para
// reintentar.
type UseCase struct {
	txRunner   ports.TxRunner
	stock      StockKeeper
	personRepo repository.PersonRepository
	userRepo   repository.UserRepository
	methodRepo repository.PaymentMethodRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ports.TxRunner,
	stock StockKeeper,
	personRepo repository.PersonRepository,
	userRepo repository.UserRepository,
	methodRepo repository.PaymentMethodRepository,
) *UseCase {
	return &UseCase{
		txRunner:   txRunner,
		stock:      stock,
		personRepo: personRepo,
		userRepo:   userRepo,
		methodRepo: methodRepo,
	}
}

// ProcessSale finaliza la venta del workspace. cashierID es el usuario que
// cobra, resuelto por el caller (nunca un contexto implícito). CustomerID
// vacío usa el cliente por defecto: el primero registrado en el sistema.
func (uc *UseCase) ProcessSale(ctx context.Context, cashierID string, in dto.ProcessSaleRequest) (*dto.SaleOrderResponse, error) {
	if in.WorkspaceID == "" || in.PaymentMethodID == "" || cashierID == "" {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.resolveCustomer(in.CustomerID)
	if err != nil {
		return nil, err
	}
	cashier, err := uc.userRepo.GetByID(cashierID)
	if err != nil {
		return nil, err
	}
	if cashier == nil {
		return nil, &domain.NotFoundError{Entity: "usuario", ID: cashierID}
	}
	method, err := uc.methodRepo.GetByID(in.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, &domain.NotFoundError{Entity: "método de pago", ID: in.PaymentMethodID}
	}

	now := time.Now()
	var order *entity.SaleOrder

	err = uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		lines, err := r.WorkspaceOrders.ListByWorkspace(in.WorkspaceID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyCart
		}

		saleType, err := r.MovementTypes.FindByName(entity.MovementTypeSale)
		if err != nil {
			return err
		}
		if saleType == nil {
			return &domain.ConfigMissingError{Reference: "tipo de movimiento '" + entity.MovementTypeSale + "'"}
		}

		// Total = Σ precio × (pz + kg) por línea
		total := decimal.Zero
		for _, line := range lines {
			total = total.Add(line.Price.Mul(line.QuantityPz.Add(line.QuantityKg)))
		}

		order = &entity.SaleOrder{
			ID:              uuid.New().String(),
			PersonID:        customer.ID,
			UserID:          cashier.ID,
			PaymentMethodID: method.ID,
			Total:           total,
			OrderedAt:       now,
		}
		if err := r.SaleOrders.Create(order); err != nil {
			return err
		}

		for _, line := range lines {
			detail := &entity.SaleOrderDetail{
				ID:             uuid.New().String(),
				SaleOrderID:    order.ID,
				ProductID:      line.ProductID,
				PriceHistoryID: line.PriceHistoryID,
				QuantityPz:     line.QuantityPz,
				QuantityKg:     line.QuantityKg,
			}
			if err := r.SaleOrders.CreateDetail(detail); err != nil {
				return err
			}
			// El carrito ya apartó estas cantidades; el descuento las hace
			// definitivas sobre la fila bloqueada.
			inv, err := uc.stock.DecrementInTx(r.Inventory, line.ProductID, line.QuantityPz, line.QuantityKg)
			if err != nil {
				return err
			}
			movement := &entity.InventoryMovement{
				ID:             uuid.New().String(),
				ProductID:      line.ProductID,
				LocationID:     inv.LocationID,
				MovementTypeID: saleType.ID,
				Quantity:       entity.MovementQuantity(line.QuantityPz, line.QuantityKg),
				MovedAt:        now,
				UserID:         cashier.ID,
				MovementKey:    entity.SaleMovementKey(),
			}
			if err := r.Movements.Create(movement); err != nil {
				return err
			}
		}

		// Limpieza pura: el descuento ya ocurrió línea por línea, aquí solo
		// se eliminan las líneas (a diferencia de Clear, que restaura).
		return r.WorkspaceOrders.DeleteByWorkspace(in.WorkspaceID)
	})
	if err != nil {
		return nil, err
	}

	return &dto.SaleOrderResponse{
		ID:                order.ID,
		CustomerID:        customer.ID,
		CustomerName:      customer.FullName(),
		CashierID:         cashier.ID,
		CashierName:       cashier.Name,
		PaymentMethodID:   method.ID,
		PaymentMethodName: method.Name,
		Total:             order.Total,
		OrderedAt:         order.OrderedAt,
	}, nil
}

// resolveCustomer devuelve el cliente indicado o, si no se indica, el primero
// registrado en el sistema.
func (uc *UseCase) resolveCustomer(customerID string) (*entity.Person, error) {
	if customerID == "" {
		first, err := uc.personRepo.FindFirst()
		if err != nil {
			return nil, err
		}
		if first == nil {
			return nil, domain.ErrNoCustomers
		}
		return first, nil
	}
	customer, err := uc.personRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, &domain.NotFoundError{Entity: "cliente", ID: customerID}
	}
	return customer, nil
}
