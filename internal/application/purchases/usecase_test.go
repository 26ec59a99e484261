package purchases_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/posfin/pos-finanzas-api/internal/application/dto"
	"github.com/posfin/pos-finanzas-api/internal/application/inventory"
	"github.com/posfin/pos-finanzas-api/internal/application/ports"
	"github.com/posfin/pos-finanzas-api/internal/application/purchases"
	"github.com/posfin/pos-finanzas-api/internal/domain"
	"github.com/posfin/pos-finanzas-api/internal/domain/entity"
	"github.com/posfin/pos-finanzas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeInventoryRepo struct {
	rows map[string]*entity.Inventory
}

func (f *fakeInventoryRepo) GetByProduct(productID string) (*entity.Inventory, error) {
	inv, ok := f.rows[productID]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInventoryRepo) GetByProductForUpdate(productID string) (*entity.Inventory, error) {
	return f.GetByProduct(productID)
}

func (f *fakeInventoryRepo) Upsert(inv *entity.Inventory) error {
	cp := *inv
	f.rows[inv.ProductID] = &cp
	return nil
}

type fakePersonRepo struct {
	people map[string]*entity.Person
}

func (f *fakePersonRepo) Create(p *entity.Person) error { f.people[p.ID] = p; return nil }
func (f *fakePersonRepo) GetByID(id string) (*entity.Person, error) {
	p, ok := f.people[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}
func (f *fakePersonRepo) FindFirst() (*entity.Person, error) { return nil, nil }
func (f *fakePersonRepo) List(limit, offset int) ([]*entity.Person, error) {
	return nil, nil
}

type fakeProductRepo struct {
	rows map[string]*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.rows[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}
func (f *fakeProductRepo) Update(p *entity.Product) error { return nil }
func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Delete(id string) error { return nil }

type fakeStatusRepo struct {
	statuses map[string]*entity.Status // por nombre
}

func (f *fakeStatusRepo) GetByID(id string) (*entity.Status, error) { return nil, nil }
func (f *fakeStatusRepo) FindByName(name string) (*entity.Status, error) {
	s, ok := f.statuses[name]
	if !ok {
		return nil, nil
	}
	return s, nil
}

type fakeMethodRepo struct {
	methods map[string]*entity.PaymentMethod
}

func (f *fakeMethodRepo) GetByID(id string) (*entity.PaymentMethod, error) {
	m, ok := f.methods[id]
	if !ok {
		return nil, nil
	}
	return m, nil
}

func (f *fakeMethodRepo) FindByName(name string) (*entity.PaymentMethod, error) {
	for _, m := range f.methods {
		if m.Name == name {
			return m, nil
		}
	}
	return nil, nil
}

type fakeLocationRepo struct {
	locations []*entity.Location
}

func (f *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	for _, l := range f.locations {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeLocationRepo) FindFirst() (*entity.Location, error) {
	if len(f.locations) == 0 {
		return nil, nil
	}
	return f.locations[0], nil
}

type fakeCostRepo struct {
	rows []*entity.CostHistory
}

func (f *fakeCostRepo) Create(c *entity.CostHistory) error {
	f.rows = append(f.rows, c)
	return nil
}

func (f *fakeCostRepo) FindLatestByProduct(productID string) (*entity.CostHistory, error) {
	var latest *entity.CostHistory
	for _, c := range f.rows {
		if c.ProductID != productID {
			continue
		}
		if latest == nil || c.RecordedAt.After(latest.RecordedAt) {
			latest = c
		}
	}
	return latest, nil
}

type fakeMovementTypeRepo struct {
	types map[string]*entity.MovementType
}

func (f *fakeMovementTypeRepo) GetByID(id string) (*entity.MovementType, error) { return nil, nil }
func (f *fakeMovementTypeRepo) FindByName(name string) (*entity.MovementType, error) {
	t, ok := f.types[name]
	if !ok {
		return nil, nil
	}
	return t, nil
}
func (f *fakeMovementTypeRepo) Create(t *entity.MovementType) error {
	f.types[t.Name] = t
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.InventoryMovement
}

func (f *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	f.movements = append(f.movements, m)
	return nil
}

func (f *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return f.movements, nil
}

type fakePurchaseOrderRepo struct {
	orders  map[string]*entity.PurchaseOrder
	details []*entity.PurchaseOrderDetail
}

func (f *fakePurchaseOrderRepo) Create(o *entity.PurchaseOrder) error {
	f.orders[o.ID] = o
	return nil
}

func (f *fakePurchaseOrderRepo) CreateDetail(d *entity.PurchaseOrderDetail) error {
	f.details = append(f.details, d)
	return nil
}

func (f *fakePurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	return o, nil
}

type fakePaymentRepo struct {
	payments []*entity.SupplierPayment
}

func (f *fakePaymentRepo) Create(p *entity.SupplierPayment) error {
	f.payments = append(f.payments, p)
	return nil
}

func (f *fakePaymentRepo) SumByOrder(purchaseOrderID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range f.payments {
		if p.PurchaseOrderID == purchaseOrderID {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

// fakeTxRunner pasa los fakes directamente; estos tests no ejercitan rollback.
type fakeTxRunner struct {
	repos ports.TxRepos
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(r ports.TxRepos) error) error {
	return fn(f.repos)
}

// ──────────────────────────────────────────────────────────────────────────────
// Harness
// ──────────────────────────────────────────────────────────────────────────────

type purchaseHarness struct {
	uc       *purchases.UseCase
	inv      *fakeInventoryRepo
	movs     *fakeMovementRepo
	types    *fakeMovementTypeRepo
	orders   *fakePurchaseOrderRepo
	payments *fakePaymentRepo
	costs    *fakeCostRepo
}

func newPurchaseHarness(t *testing.T) *purchaseHarness {
	t.Helper()
	inv := &fakeInventoryRepo{rows: make(map[string]*entity.Inventory)}
	movs := &fakeMovementRepo{}
	types := &fakeMovementTypeRepo{types: make(map[string]*entity.MovementType)}
	orders := &fakePurchaseOrderRepo{orders: make(map[string]*entity.PurchaseOrder)}
	payments := &fakePaymentRepo{}
	costs := &fakeCostRepo{}

	people := &fakePersonRepo{people: map[string]*entity.Person{
		"prov-1": {ID: "prov-1", Name: "Distribuidora", LastNameP: "Norte"},
	}}
	products := &fakeProductRepo{rows: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", Name: "Arroz"},
	}}
	statuses := &fakeStatusRepo{statuses: map[string]*entity.Status{
		entity.StatusActive: {ID: "estado-activo", Name: entity.StatusActive},
	}}
	methods := &fakeMethodRepo{methods: map[string]*entity.PaymentMethod{
		"mp-efectivo": {ID: "mp-efectivo", Name: entity.PaymentMethodCash},
	}}
	locations := &fakeLocationRepo{locations: []*entity.Location{
		{ID: "loc-1", Name: "Bodega"},
	}}

	stock := inventory.NewStockService(logger.Nop(), inv, movs, locations)
	runner := &fakeTxRunner{repos: ports.TxRepos{
		Inventory:      inv,
		Movements:      movs,
		MovementTypes:  types,
		PurchaseOrders: orders,
		Payments:       payments,
	}}
	uc := purchases.NewUseCase(runner, stock, people, products, statuses, methods, locations, costs)
	return &purchaseHarness{uc: uc, inv: inv, movs: movs, types: types, orders: orders, payments: payments, costs: costs}
}

func (h *purchaseHarness) seedCost(productID string, cost int64) {
	h.costs.rows = append(h.costs.rows, &entity.CostHistory{
		ID:         "costo-" + productID,
		ProductID:  productID,
		Cost:       decimal.NewFromInt(cost),
		RecordedAt: time.Now(),
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_TotalIncrementoYMovimiento(t *testing.T) {
	h := newPurchaseHarness(t)
	h.seedCost("prod-1", 8)

	order, err := h.uc.CreateOrder(context.Background(), "user-1", dto.CreatePurchaseRequest{
		SupplierID: "prov-1",
		Lines: []dto.PurchaseLineRequest{
			{ProductID: "prod-1", QuantityPz: decimal.NewFromInt(10), QuantityKg: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)

	// subtotal = 8×10 + 8×2 = 96
	assert.True(t, order.Total.Equal(decimal.NewFromInt(96)), "total = costo×pz + costo×kg")
	assert.Equal(t, "Distribuidora Norte", order.SupplierName)
	assert.Equal(t, entity.StatusActive, order.StatusName)

	// El inventario se incrementa (creando la fila si no existía)
	inv, _ := h.inv.GetByProduct("prod-1")
	require.NotNil(t, inv)
	assert.True(t, inv.QuantityPz.Equal(decimal.NewFromInt(10)))
	assert.True(t, inv.QuantityKg.Equal(decimal.NewFromInt(2)))

	// Movimiento con clave determinista COMPRA-<orden>-<producto>
	require.Len(t, h.movs.movements, 1)
	m := h.movs.movements[0]
	assert.Equal(t, "COMPRA-"+order.ID+"-prod-1", m.MovementKey)
	assert.True(t, m.Quantity.Equal(decimal.NewFromInt(10)), "pz>0: la cantidad del movimiento son las piezas")
	assert.Equal(t, "loc-1", m.LocationID)
	assert.Equal(t, "user-1", m.UserID)
}

func TestCreateOrder_CreaTipoCompraEnPrimerUso(t *testing.T) {
	h := newPurchaseHarness(t)
	h.seedCost("prod-1", 8)
	require.Nil(t, h.types.types[entity.MovementTypePurchase], "precondición: sin tipo Compra")

	_, err := h.uc.CreateOrder(context.Background(), "user-1", dto.CreatePurchaseRequest{
		SupplierID: "prov-1",
		Lines:      []dto.PurchaseLineRequest{{ProductID: "prod-1", QuantityPz: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	created := h.types.types[entity.MovementTypePurchase]
	require.NotNil(t, created, "el tipo Compra debe crearse en el primer uso")

	// El segundo uso reutiliza el mismo tipo
	_, err = h.uc.CreateOrder(context.Background(), "user-1", dto.CreatePurchaseRequest{
		SupplierID: "prov-1",
		Lines:      []dto.PurchaseLineRequest{{ProductID: "prod-1", QuantityPz: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, h.types.types[entity.MovementTypePurchase].ID)
}

func TestCreateOrder_SinCostoRegistrado(t *testing.T) {
	h := newPurchaseHarness(t)

	_, err := h.uc.CreateOrder(context.Background(), "user-1", dto.CreatePurchaseRequest{
		SupplierID: "prov-1",
		Lines:      []dto.PurchaseLineRequest{{ProductID: "prod-1", QuantityPz: decimal.NewFromInt(1)}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoCostAvailable)
	assert.Contains(t, err.Error(), "Arroz", "el error debe nombrar al producto")
}

func TestCreateOrder_ProveedorInexistente(t *testing.T) {
	h := newPurchaseHarness(t)

	_, err := h.uc.CreateOrder(context.Background(), "user-1", dto.CreatePurchaseRequest{
		SupplierID: "prov-fantasma",
		Lines:      []dto.PurchaseLineRequest{{ProductID: "prod-1", QuantityPz: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrder_SinLineas(t *testing.T) {
	h := newPurchaseHarness(t)

	_, err := h.uc.CreateOrder(context.Background(), "user-1", dto.CreatePurchaseRequest{SupplierID: "prov-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordPayment
// ──────────────────────────────────────────────────────────────────────────────

func seedOrder(h *purchaseHarness, id string, total int64) {
	h.orders.orders[id] = &entity.PurchaseOrder{
		ID:       id,
		PersonID: "prov-1",
		Total:    decimal.NewFromInt(total),
	}
}

func paymentRequest(amount int64) dto.PaymentRequest {
	return dto.PaymentRequest{
		SupplierID:      "prov-1",
		PurchaseOrderID: "orden-1",
		PaymentMethodID: "mp-efectivo",
		Amount:          decimal.NewFromInt(amount),
	}
}

func TestRecordPayment_AbonoParcial(t *testing.T) {
	h := newPurchaseHarness(t)
	seedOrder(h, "orden-1", 100)

	payment, err := h.uc.RecordPayment(context.Background(), paymentRequest(40))
	require.NoError(t, err)
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(40)))

	// Un segundo abono por el resto exacto procede
	payment, err = h.uc.RecordPayment(context.Background(), paymentRequest(60))
	require.NoError(t, err)
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(60)))
}

func TestRecordPayment_MontoExcedeDeuda(t *testing.T) {
	h := newPurchaseHarness(t)
	seedOrder(h, "orden-1", 100)

	_, err := h.uc.RecordPayment(context.Background(), paymentRequest(40))
	require.NoError(t, err)

	// Quedan 60; abonar 61 debe fallar reportando la deuda restante
	_, err = h.uc.RecordPayment(context.Background(), paymentRequest(61))
	require.Error(t, err)
	var debtErr *domain.ExceedsDebtError
	require.ErrorAs(t, err, &debtErr)
	assert.True(t, debtErr.Remaining.Equal(decimal.NewFromInt(60)))
	assert.Len(t, h.payments.payments, 1, "el abono rechazado no debe persistirse")
}

func TestRecordPayment_MontoNoPositivo(t *testing.T) {
	h := newPurchaseHarness(t)
	seedOrder(h, "orden-1", 100)

	_, err := h.uc.RecordPayment(context.Background(), paymentRequest(0))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = h.uc.RecordPayment(context.Background(), paymentRequest(-5))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestRecordPayment_PagarTodoElRestante(t *testing.T) {
	h := newPurchaseHarness(t)
	seedOrder(h, "orden-1", 100)

	_, err := h.uc.RecordPayment(context.Background(), paymentRequest(30))
	require.NoError(t, err)

	in := paymentRequest(0)
	in.PayFullRemaining = true
	payment, err := h.uc.RecordPayment(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(70)), "debe liquidar exactamente la deuda restante")

	// Con la orden saldada, liquidar de nuevo falla
	_, err = h.uc.RecordPayment(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
}

func TestRecordPayment_OrdenInexistente(t *testing.T) {
	h := newPurchaseHarness(t)

	_, err := h.uc.RecordPayment(context.Background(), paymentRequest(10))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
