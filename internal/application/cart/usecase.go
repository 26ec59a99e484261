package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/posfin/pos-finanzas-api/internal/application/dto"
	"github.com/posfin/pos-finanzas-api/internal/application/ports"
	"github.com/posfin/pos-finanzas-api/internal/domain"
	"github.com/posfin/pos-finanzas-api/internal/domain/entity"
	"github.com/posfin/pos-finanzas-api/internal/domain/repository"
)

// UseCase gestiona el carrito temporal de cada workspace. Agregar un producto
// aparta existencias en el mismo movimiento: la línea del carrito siempre
// refleja una reducción igual ya aplicada al inventario.
type UseCase struct {
	txRunner      ports.TxRunner
	stock         StockKeeper
	workspaceRepo repository.WorkspaceRepository
	productRepo   repository.ProductRepository
	priceRepo     repository.PriceHistoryRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ports.TxRunner,
	stock StockKeeper,
	workspaceRepo repository.WorkspaceRepository,
	productRepo repository.ProductRepository,
	priceRepo repository.PriceHistoryRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		stock:         stock,
		workspaceRepo: workspaceRepo,
		productRepo:   productRepo,
		priceRepo:     priceRepo,
	}
}

// AddOrMerge agrega un producto al workspace o suma cantidades si ya existe
// una línea para ese producto. El apartado de inventario es siempre por el
// incremento solicitado, no por el total acumulado, y se valida contra el
// disponible actual bajo bloqueo de fila antes de tocar la línea.
func (uc *UseCase) AddOrMerge(ctx context.Context, workspaceID, productID string, pz, kg decimal.Decimal) (*dto.WorkspaceOrderResponse, error) {
	pz = pz.Truncate(0)
	if pz.IsNegative() || kg.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if pz.IsZero() && kg.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	workspace, err := uc.workspaceRepo.GetByID(workspaceID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, &domain.NotFoundError{Entity: "workspace", ID: workspaceID}
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Entity: "producto", ID: productID}
	}

	// Precio vigente del producto (el más reciente del historial)
	price, err := uc.priceRepo.FindLatestByProduct(productID)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, fmt.Errorf("producto %s: %w", product.Name, domain.ErrNoPriceAvailable)
	}

	var line *entity.WorkspaceOrder
	err = uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		existing, err := r.WorkspaceOrders.FindByWorkspaceAndProduct(workspaceID, productID)
		if err != nil {
			return err
		}
		// Apartar solo el incremento solicitado; si no alcanza, la tx aborta
		// sin haber tocado la línea.
		if _, err := uc.stock.ReserveInTx(r.Inventory, productID, pz, kg); err != nil {
			return err
		}
		if existing != nil {
			existing.QuantityPz = existing.QuantityPz.Add(pz)
			existing.QuantityKg = existing.QuantityKg.Add(kg)
			existing.PriceHistoryID = price.ID
			line = existing
		} else {
			line = &entity.WorkspaceOrder{
				ID:             uuid.New().String(),
				WorkspaceID:    workspaceID,
				ProductID:      productID,
				PriceHistoryID: price.ID,
				QuantityPz:     pz,
				QuantityKg:     kg,
			}
		}
		return r.WorkspaceOrders.Save(line)
	})
	if err != nil {
		return nil, err
	}

	return &dto.WorkspaceOrderResponse{
		ID:             line.ID,
		WorkspaceID:    workspaceID,
		WorkspaceName:  workspace.Name,
		ProductID:      productID,
		ProductName:    product.Name,
		PriceHistoryID: price.ID,
		Price:          price.Price,
		QuantityPz:     line.QuantityPz,
		QuantityKg:     line.QuantityKg,
	}, nil
}

// ListByWorkspace líneas actuales del carrito de un workspace.
func (uc *UseCase) ListByWorkspace(ctx context.Context, workspaceID string) ([]dto.WorkspaceOrderResponse, error) {
	var lines []*entity.WorkspaceOrder
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		var err error
		lines, err = r.WorkspaceOrders.ListByWorkspace(workspaceID)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.WorkspaceOrderResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.WorkspaceOrderResponse{
			ID:             l.ID,
			WorkspaceID:    l.WorkspaceID,
			WorkspaceName:  l.WorkspaceName,
			ProductID:      l.ProductID,
			ProductName:    l.ProductName,
			PriceHistoryID: l.PriceHistoryID,
			Price:          l.Price,
			QuantityPz:     l.QuantityPz,
			QuantityKg:     l.QuantityKg,
		})
	}
	return out, nil
}

// Remove elimina una línea del carrito sin devolver existencias al
// inventario; quien necesite restaurar debe usar Clear. Retorna false si la
// línea no existe.
func (uc *UseCase) Remove(ctx context.Context, lineID string) (bool, error) {
	removed := false
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		line, err := r.WorkspaceOrders.GetByID(lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return nil
		}
		if err := r.WorkspaceOrders.Delete(lineID); err != nil {
			return err
		}
		removed = true
		return nil
	})
	return removed, err
}

// CreateWorkspace da de alta un workspace (terminal o mesa).
func (uc *UseCase) CreateWorkspace(ctx context.Context, name string) (*entity.Workspace, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	workspace := &entity.Workspace{ID: uuid.New().String(), Name: name}
	if err := uc.workspaceRepo.Create(workspace); err != nil {
		return nil, err
	}
	return workspace, nil
}

// ListWorkspaces todos los workspaces registrados.
func (uc *UseCase) ListWorkspaces(ctx context.Context) ([]*entity.Workspace, error) {
	return uc.workspaceRepo.List()
}

// Clear devuelve al inventario lo apartado por cada línea del workspace y
// después elimina todas las líneas. Una sola transacción.
func (uc *UseCase) Clear(ctx context.Context, workspaceID string) error {
	return uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		lines, err := r.WorkspaceOrders.ListByWorkspace(workspaceID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if _, err := uc.stock.ReleaseInTx(r.Inventory, line.ProductID, line.QuantityPz, line.QuantityKg); err != nil {
				return err
			}
		}
		return r.WorkspaceOrders.DeleteByWorkspace(workspaceID)
	})
}
