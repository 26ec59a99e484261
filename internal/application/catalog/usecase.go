package catalog

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

// Nombres aceptados para el tipo de movimiento de creación. Se buscan en
// orden; basta con que exista uno.
var creationTypeNames = []string{entity.MovementTypeCreation, "Creacion", "Inicial"}

// UseCase gestiona el catálogo de productos: alta completa (producto +
// historiales + inventario inicial + movimiento de creación en una
// transacción), consulta con precio/costo vigentes y registro de nuevos
// precios y costos.
type UseCase struct {
	txRunner     ports.TxRunner
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	personRepo   repository.PersonRepository
	userRepo     repository.UserRepository
	statusRepo   repository.StatusRepository
	locationRepo repository.LocationRepository
	priceRepo    repository.PriceHistoryRepository
	costRepo     repository.CostHistoryRepository
	invRepo      repository.InventoryRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ports.TxRunner,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	personRepo repository.PersonRepository,
	userRepo repository.UserRepository,
	statusRepo repository.StatusRepository,
	locationRepo repository.LocationRepository,
	priceRepo repository.PriceHistoryRepository,
	costRepo repository.CostHistoryRepository,
	invRepo repository.InventoryRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		personRepo:   personRepo,
		userRepo:     userRepo,
		statusRepo:   statusRepo,
		locationRepo: locationRepo,
		priceRepo:    priceRepo,
		costRepo:     costRepo,
		invRepo:      invRepo,
	}
}

// CreateProduct da de alta un producto completo: el producto, su primer
// precio de venta y costo de compra, el inventario inicial en la ubicación
// indicada y el movimiento de creación del libro. Todo o nada.
func (uc *UseCase) CreateProduct(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.CategoryID == "" || in.SupplierID == "" || in.LocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SalePrice.IsNegative() || in.PurchaseCost.IsNegative() || in.InitialStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, &domain.NotFoundError{Entity: "categoría", ID: in.CategoryID}
	}
	supplier, err := uc.personRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, &domain.NotFoundError{Entity: "proveedor", ID: in.SupplierID}
	}
	location, err := uc.locationRepo.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, &domain.NotFoundError{Entity: "ubicación", ID: in.LocationID}
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &domain.NotFoundError{Entity: "usuario", ID: userID}
	}
	active, err := uc.statusRepo.FindByName(entity.StatusActive)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, &domain.ConfigMissingError{Reference: "estado '" + entity.StatusActive + "'"}
	}

	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		Name:       in.Name,
		CategoryID: category.ID,
		SupplierID: supplier.ID,
		StatusID:   active.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// Stock inicial en la unidad declarada; la otra queda en cero.
	stockPz, stockKg := decimal.Zero, decimal.Zero
	if in.UnitMeasure == entity.UnitPieces {
		stockPz = in.InitialStock.Truncate(0)
	} else {
		stockKg = in.InitialStock
	}

	err = uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		creationType, err := uc.findCreationType(r.MovementTypes)
		if err != nil {
			return err
		}
		if err := r.Products.Create(product); err != nil {
			return err
		}
		if err := r.Prices.Create(&entity.PriceHistory{
			ID:         uuid.New().String(),
			ProductID:  product.ID,
			Price:      in.SalePrice,
			RecordedAt: now,
		}); err != nil {
			return err
		}
		if err := r.Costs.Create(&entity.CostHistory{
			ID:         uuid.New().String(),
			ProductID:  product.ID,
			Cost:       in.PurchaseCost,
			RecordedAt: now,
		}); err != nil {
			return err
		}
		if err := r.Inventory.Upsert(&entity.Inventory{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			LocationID:  location.ID,
			QuantityPz:  stockPz,
			QuantityKg:  stockKg,
			MinQuantity: in.MinStock,
			MaxQuantity: in.MaxStock,
			UpdatedAt:   now,
		}); err != nil {
			return err
		}
		return r.Movements.Create(&entity.InventoryMovement{
			ID:             uuid.New().String(),
			ProductID:      product.ID,
			LocationID:     location.ID,
			MovementTypeID: creationType.ID,
			Quantity:       in.InitialStock,
			MovedAt:        now,
			UserID:         user.ID,
			MovementKey:    entity.CreationMovementKey(product.ID),
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.ProductResponse{
		ID:           product.ID,
		Name:         product.Name,
		CategoryID:   product.CategoryID,
		SupplierID:   product.SupplierID,
		StatusID:     product.StatusID,
		CurrentPrice: in.SalePrice,
		CurrentCost:  in.PurchaseCost,
		StockPz:      stockPz,
		StockKg:      stockKg,
	}, nil
}

// GetByID producto con precio y costo vigentes y existencias actuales.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Entity: "producto", ID: id}
	}
	return uc.toResponse(product)
}

// List productos paginados con precio/costo vigentes y existencias.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		resp, err := uc.toResponse(p)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// AddPrice registra un nuevo precio de venta; pasa a ser el vigente.
func (uc *UseCase) AddPrice(ctx context.Context, productID string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domain.ErrInvalidAmount
	}
	if err := uc.requireProduct(productID); err != nil {
		return err
	}
	return uc.priceRepo.Create(&entity.PriceHistory{
		ID:         uuid.New().String(),
		ProductID:  productID,
		Price:      amount,
		RecordedAt: time.Now(),
	})
}

// AddCost registra un nuevo costo de compra; pasa a ser el vigente.
func (uc *UseCase) AddCost(ctx context.Context, productID string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domain.ErrInvalidAmount
	}
	if err := uc.requireProduct(productID); err != nil {
		return err
	}
	return uc.costRepo.Create(&entity.CostHistory{
		ID:         uuid.New().String(),
		ProductID:  productID,
		Cost:       amount,
		RecordedAt: time.Now(),
	})
}

func (uc *UseCase) requireProduct(productID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return &domain.NotFoundError{Entity: "producto", ID: productID}
	}
	return nil
}

// findCreationType acepta cualquiera de los nombres históricos del tipo de
// movimiento de creación.
func (uc *UseCase) findCreationType(repo repository.MovementTypeRepository) (*entity.MovementType, error) {
	for _, name := range creationTypeNames {
		mt, err := repo.FindByName(name)
		if err != nil {
			return nil, err
		}
		if mt != nil {
			return mt, nil
		}
	}
	return nil, &domain.ConfigMissingError{Reference: "tipo de movimiento '" + entity.MovementTypeCreation + "'"}
}

func (uc *UseCase) toResponse(p *entity.Product) (*dto.ProductResponse, error) {
	resp := &dto.ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		SupplierID: p.SupplierID,
		StatusID:   p.StatusID,
	}
	price, err := uc.priceRepo.FindLatestByProduct(p.ID)
	if err != nil {
		return nil, err
	}
	if price != nil {
		resp.CurrentPrice = price.Price
	}
	cost, err := uc.costRepo.FindLatestByProduct(p.ID)
	if err != nil {
		return nil, err
	}
	if cost != nil {
		resp.CurrentCost = cost.Cost
	}
	inv, err := uc.invRepo.GetByProduct(p.ID)
	if err != nil {
		return nil, err
	}
	if inv != nil {
		resp.StockPz = inv.QuantityPz
		resp.StockKg = inv.QuantityKg
	}
	return resp, nil
}
