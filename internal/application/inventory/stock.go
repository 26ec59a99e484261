package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/posfin/pos-finanzas-api/internal/domain"
	"github.com/posfin/pos-finanzas-api/internal/domain/entity"
	"github.com/posfin/pos-finanzas-api/internal/domain/repository"
	"github.com/posfin/pos-finanzas-api/pkg/logger"
)

// StockService es el único mutador de Inventory. Las operaciones *InTx
// reciben el repositorio atado a la transacción del caller y bloquean la
// fila del producto (SELECT FOR UPDATE) antes de cualquier aritmética, de
// modo que dos reservas concurrentes sobre el mismo producto quedan
// serializadas y no pueden sobrevender.
type StockService struct {
	log          *logger.Logger
	invRepo      repository.InventoryRepository
	movRepo      repository.InventoryMovementRepository
	locationRepo repository.LocationRepository
}

// NewStockService construye el servicio con los repos de solo lectura (pool).
func NewStockService(log *logger.Logger, invRepo repository.InventoryRepository, movRepo repository.InventoryMovementRepository, locationRepo repository.LocationRepository) *StockService {
	return &StockService{log: log, invRepo: invRepo, movRepo: movRepo, locationRepo: locationRepo}
}

// GetLevel existencias actuales de un producto.
func (s *StockService) GetLevel(productID string) (*entity.Inventory, error) {
	inv, err := s.invRepo.GetByProduct(productID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, &domain.NotFoundError{Entity: "inventario del producto", ID: productID}
	}
	return inv, nil
}

// ListMovements movimientos del libro para un producto, más recientes primero.
func (s *StockService) ListMovements(productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return s.movRepo.ListByProduct(productID, limit, offset)
}

// ReserveInTx descuenta existencias disponibles para apartarlas en un carrito.
// Falla con InsufficientStockError (unidad, disponible, solicitado) si alguna
// unidad no alcanza; en ese caso no toca el inventario.
func (s *StockService) ReserveInTx(invRepo repository.InventoryRepository, productID string, pz, kg decimal.Decimal) (*entity.Inventory, error) {
	pz, kg = normalize(pz, kg)
	inv, err := invRepo.GetByProductForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, &domain.NotFoundError{Entity: "inventario del producto", ID: productID}
	}
	if pz.GreaterThan(inv.QuantityPz) {
		return nil, &domain.InsufficientStockError{Unit: entity.UnitPieces, Available: inv.QuantityPz, Requested: pz}
	}
	if kg.GreaterThan(inv.QuantityKg) {
		return nil, &domain.InsufficientStockError{Unit: entity.UnitKilograms, Available: inv.QuantityKg, Requested: kg}
	}
	inv.QuantityPz = inv.QuantityPz.Sub(pz)
	inv.QuantityKg = inv.QuantityKg.Sub(kg)
	inv.UpdatedAt = time.Now()
	if err := invRepo.Upsert(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// ReleaseInTx devuelve al inventario cantidades apartadas (cancelación o
// limpieza de carrito). Si el producto no tiene fila de inventario se crea
// una en cero antes de sumar.
func (s *StockService) ReleaseInTx(invRepo repository.InventoryRepository, productID string, pz, kg decimal.Decimal) (*entity.Inventory, error) {
	return s.addInTx(invRepo, productID, pz, kg)
}

// IncrementInTx suma existencias por una compra a proveedor. Misma mecánica
// que ReleaseInTx; se distingue por el caller.
func (s *StockService) IncrementInTx(invRepo repository.InventoryRepository, productID string, pz, kg decimal.Decimal) (*entity.Inventory, error) {
	return s.addInTx(invRepo, productID, pz, kg)
}

// DecrementInTx descuenta al finalizar una venta cantidades que el carrito ya
// apartó. Si la resta fuera a quedar negativa, ancla en cero y emite una
// advertencia de consistencia: indica un error de registro de reservas aguas
// arriba, no una condición esperada.
func (s *StockService) DecrementInTx(invRepo repository.InventoryRepository, productID string, pz, kg decimal.Decimal) (*entity.Inventory, error) {
	pz, kg = normalize(pz, kg)
	inv, err := invRepo.GetByProductForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, &domain.NotFoundError{Entity: "inventario del producto", ID: productID}
	}
	newPz := inv.QuantityPz.Sub(pz)
	if newPz.IsNegative() {
		s.warnNegative(productID, entity.UnitPieces, inv.QuantityPz, pz)
		newPz = decimal.Zero
	}
	newKg := inv.QuantityKg.Sub(kg)
	if newKg.IsNegative() {
		s.warnNegative(productID, entity.UnitKilograms, inv.QuantityKg, kg)
		newKg = decimal.Zero
	}
	inv.QuantityPz = newPz
	inv.QuantityKg = newKg
	inv.UpdatedAt = time.Now()
	if err := invRepo.Upsert(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *StockService) warnNegative(productID, unit string, available, requested decimal.Decimal) {
	s.log.Warn().
		Str("producto", productID).
		Str("unidad", unit).
		Str("disponible", available.String()).
		Str("solicitado", requested.String()).
		Msg("consistencia de stock: el descuento de venta quedaría negativo; se ancla en cero")
}

func (s *StockService) addInTx(invRepo repository.InventoryRepository, productID string, pz, kg decimal.Decimal) (*entity.Inventory, error) {
	pz, kg = normalize(pz, kg)
	inv, err := invRepo.GetByProductForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		// La fila nueva necesita id propio y ubicación; sin ellos el insert
		// violaría el esquema. La ubicación por defecto es la primera registrada.
		location, err := s.locationRepo.FindFirst()
		if err != nil {
			return nil, err
		}
		if location == nil {
			return nil, &domain.ConfigMissingError{Reference: "ubicación de inventario"}
		}
		inv = &entity.Inventory{
			ID:         uuid.New().String(),
			ProductID:  productID,
			LocationID: location.ID,
			QuantityPz: decimal.Zero,
			QuantityKg: decimal.Zero,
		}
	}
	inv.QuantityPz = inv.QuantityPz.Add(pz)
	inv.QuantityKg = inv.QuantityKg.Add(kg)
	inv.UpdatedAt = time.Now()
	if err := invRepo.Upsert(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// normalize trunca las piezas a enteros en la frontera y descarta negativos.
func normalize(pz, kg decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	pz = pz.Truncate(0)
	if pz.IsNegative() {
		pz = decimal.Zero
	}
	if kg.IsNegative() {
		kg = decimal.Zero
	}
	return pz, kg
}
