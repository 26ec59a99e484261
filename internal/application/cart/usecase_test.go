package cart_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/posfin/pos-finanzas-api/internal/application/cart"
	"github.com/posfin/pos-finanzas-api/internal/application/inventory"
	"github.com/posfin/pos-finanzas-api/internal/application/ports"
	"github.com/posfin/pos-finanzas-api/internal/domain"
	"github.com/posfin/pos-finanzas-api/internal/domain/entity"
	"github.com/posfin/pos-finanzas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con snapshot/restore para simular rollback de transacción
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

func (f *fakeInventoryRepo) snapshot() map[string]*entity.Inventory {
	snap := make(map[string]*entity.Inventory, len(f.rows))
	for k, v := range f.rows {
		cp := *v
		snap[k] = &cp
	}
	return snap
}

type fakeWorkspaceOrderRepo struct {
	rows map[string]*entity.WorkspaceOrder // por ID de línea
}

func (f *fakeWorkspaceOrderRepo) GetByID(id string) (*entity.WorkspaceOrder, error) {
	o, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeWorkspaceOrderRepo) ListByWorkspace(workspaceID string) ([]*entity.WorkspaceOrder, error) {
	var out []*entity.WorkspaceOrder
	for _, o := range f.rows {
		if o.WorkspaceID == workspaceID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeWorkspaceOrderRepo) FindByWorkspaceAndProduct(workspaceID, productID string) (*entity.WorkspaceOrder, error) {
	for _, o := range f.rows {
		if o.WorkspaceID == workspaceID && o.ProductID == productID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeWorkspaceOrderRepo) Save(order *entity.WorkspaceOrder) error {
	cp := *order
	f.rows[order.ID] = &cp
	return nil
}

func (f *fakeWorkspaceOrderRepo) Delete(id string) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeWorkspaceOrderRepo) DeleteByWorkspace(workspaceID string) error {
	for id, o := range f.rows {
		if o.WorkspaceID == workspaceID {
			delete(f.rows, id)
		}
	}
	return nil
}

func (f *fakeWorkspaceOrderRepo) snapshot() map[string]*entity.WorkspaceOrder {
	snap := make(map[string]*entity.WorkspaceOrder, len(f.rows))
	for k, v := range f.rows {
		cp := *v
		snap[k] = &cp
	}
	return snap
}

type fakeWorkspaceRepo struct {
	rows map[string]*entity.Workspace
}

func (f *fakeWorkspaceRepo) Create(w *entity.Workspace) error {
	f.rows[w.ID] = w
	return nil
}

func (f *fakeWorkspaceRepo) GetByID(id string) (*entity.Workspace, error) {
	w, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return w, nil
}

func (f *fakeWorkspaceRepo) List() ([]*entity.Workspace, error) {
	var out []*entity.Workspace
	for _, w := range f.rows {
		out = append(out, w)
	}
	return out, nil
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
func (f *fakeProductRepo) Update(p *entity.Product) error { f.rows[p.ID] = p; return nil }
func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.rows {
		out = append(out, p)
	}
	return out, nil
}
func (f *fakeProductRepo) Delete(id string) error { delete(f.rows, id); return nil }

type fakePriceRepo struct {
	rows []*entity.PriceHistory
}

func (f *fakePriceRepo) Create(p *entity.PriceHistory) error {
	f.rows = append(f.rows, p)
	return nil
}

func (f *fakePriceRepo) FindLatestByProduct(productID string) (*entity.PriceHistory, error) {
	var latest *entity.PriceHistory
	for _, p := range f.rows {
		if p.ProductID != productID {
			continue
		}
		if latest == nil || p.RecordedAt.After(latest.RecordedAt) {
			latest = p
		}
	}
	return latest, nil
}

func (f *fakePriceRepo) GetByID(id string) (*entity.PriceHistory, error) {
	for _, p := range f.rows {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

type fakeLocationRepo struct{}

func (f *fakeLocationRepo) GetByID(id string) (*entity.Location, error) { return nil, nil }
func (f *fakeLocationRepo) FindFirst() (*entity.Location, error) {
	return &entity.Location{ID: "loc-1", Name: "Bodega"}, nil
}

// fakeTxRunner ejecuta el callback sobre los fakes y restaura el estado si
// falla, imitando el rollback de una transacción real.
type fakeTxRunner struct {
	repos ports.TxRepos
	inv   *fakeInventoryRepo
	lines *fakeWorkspaceOrderRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(r ports.TxRepos) error) error {
	invSnap := f.inv.snapshot()
	lineSnap := f.lines.snapshot()
	if err := fn(f.repos); err != nil {
		f.inv.rows = invSnap
		f.lines.rows = lineSnap
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Harness
// ──────────────────────────────────────────────────────────────────────────────

type cartHarness struct {
	uc    *cart.UseCase
	inv   *fakeInventoryRepo
	lines *fakeWorkspaceOrderRepo
	price *fakePriceRepo
}

func newCartHarness(t *testing.T) *cartHarness {
	t.Helper()
	inv := &fakeInventoryRepo{rows: make(map[string]*entity.Inventory)}
	lines := &fakeWorkspaceOrderRepo{rows: make(map[string]*entity.WorkspaceOrder)}
	workspaces := &fakeWorkspaceRepo{rows: map[string]*entity.Workspace{
		"ws-1": {ID: "ws-1", Name: "Caja 1"},
	}}
	products := &fakeProductRepo{rows: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", Name: "Frijol"},
	}}
	price := &fakePriceRepo{}

	stock := inventory.NewStockService(logger.Nop(), inv, nil, &fakeLocationRepo{})
	runner := &fakeTxRunner{
		repos: ports.TxRepos{Inventory: inv, WorkspaceOrders: lines},
		inv:   inv,
		lines: lines,
	}
	return &cartHarness{
		uc:    cart.NewUseCase(runner, stock, workspaces, products, price),
		inv:   inv,
		lines: lines,
		price: price,
	}
}

func (h *cartHarness) seedStock(productID string, pz int64) {
	h.inv.rows[productID] = &entity.Inventory{
		ID:         "inv-" + productID,
		ProductID:  productID,
		LocationID: "loc-1",
		QuantityPz: decimal.NewFromInt(pz),
		QuantityKg: decimal.Zero,
		UpdatedAt:  time.Now(),
	}
}

func (h *cartHarness) seedPrice(id, productID string, price int64, at time.Time) {
	h.price.rows = append(h.price.rows, &entity.PriceHistory{
		ID:         id,
		ProductID:  productID,
		Price:      decimal.NewFromInt(price),
		RecordedAt: at,
	})
}

func (h *cartHarness) stockPz(productID string) decimal.Decimal {
	return h.inv.rows[productID].QuantityPz
}

// ──────────────────────────────────────────────────────────────────────────────
// AddOrMerge
// ──────────────────────────────────────────────────────────────────────────────

// Escenario base: con 10 en stock, agregar 4 y luego 3 deja la línea en 7 y el
// stock en 3; intentar 5 más falla reportando 3 disponibles y no toca nada.
func TestAddOrMerge_ReservaIncrementalYRechazoPorStock(t *testing.T) {
	h := newCartHarness(t)
	h.seedStock("prod-1", 10)
	h.seedPrice("price-1", "prod-1", 10, time.Now())
	ctx := context.Background()

	line, err := h.uc.AddOrMerge(ctx, "ws-1", "prod-1", decimal.NewFromInt(4), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, line.QuantityPz.Equal(decimal.NewFromInt(4)))
	assert.True(t, h.stockPz("prod-1").Equal(decimal.NewFromInt(6)), "deben quedar 6 tras apartar 4")

	line, err = h.uc.AddOrMerge(ctx, "ws-1", "prod-1", decimal.NewFromInt(3), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, line.QuantityPz.Equal(decimal.NewFromInt(7)), "la línea debe acumular 4+3")
	assert.True(t, h.stockPz("prod-1").Equal(decimal.NewFromInt(3)), "solo se aparta el incremento, no el acumulado")

	// Pedir 5 más con 3 disponibles debe fallar y no tocar línea ni stock
	_, err = h.uc.AddOrMerge(ctx, "ws-1", "prod-1", decimal.NewFromInt(5), decimal.Zero)
	require.Error(t, err)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.True(t, stockErr.Available.Equal(decimal.NewFromInt(3)), "debe reportar 3 disponibles")
	assert.True(t, stockErr.Requested.Equal(decimal.NewFromInt(5)))

	current, err := h.lines.FindByWorkspaceAndProduct("ws-1", "prod-1")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.True(t, current.QuantityPz.Equal(decimal.NewFromInt(7)), "la línea debe seguir en 7")
	assert.True(t, h.stockPz("prod-1").Equal(decimal.NewFromInt(3)), "el stock debe seguir en 3")
}

func TestAddOrMerge_RefrescaPrecioAlSumar(t *testing.T) {
	h := newCartHarness(t)
	h.seedStock("prod-1", 10)
	h.seedPrice("price-vieja", "prod-1", 10, time.Now().Add(-time.Hour))
	ctx := context.Background()

	line, err := h.uc.AddOrMerge(ctx, "ws-1", "prod-1", decimal.NewFromInt(1), decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "price-vieja", line.PriceHistoryID)

	// Aparece un precio más reciente; el merge debe adoptarlo
	h.seedPrice("price-nueva", "prod-1", 12, time.Now())
	line, err = h.uc.AddOrMerge(ctx, "ws-1", "prod-1", decimal.NewFromInt(1), decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "price-nueva", line.PriceHistoryID, "el merge debe refrescar al precio vigente")
}

func TestAddOrMerge_SinPrecioRegistrado(t *testing.T) {
	h := newCartHarness(t)
	h.seedStock("prod-1", 10)

	_, err := h.uc.AddOrMerge(context.Background(), "ws-1", "prod-1", decimal.NewFromInt(1), decimal.Zero)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoPriceAvailable)
	assert.Contains(t, err.Error(), "Frijol", "el error debe nombrar al producto")
}

func TestAddOrMerge_WorkspaceInexistente(t *testing.T) {
	h := newCartHarness(t)
	h.seedStock("prod-1", 10)
	h.seedPrice("price-1", "prod-1", 10, time.Now())

	_, err := h.uc.AddOrMerge(context.Background(), "ws-fantasma", "prod-1", decimal.NewFromInt(1), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddOrMerge_CantidadesInvalidas(t *testing.T) {
	h := newCartHarness(t)
	h.seedStock("prod-1", 10)
	h.seedPrice("price-1", "prod-1", 10, time.Now())
	ctx := context.Background()

	// Ambas en cero
	_, err := h.uc.AddOrMerge(ctx, "ws-1", "prod-1", decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Negativos
	_, err = h.uc.AddOrMerge(ctx, "ws-1", "prod-1", decimal.Zero, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// 0.9 piezas se trunca a 0: sin kg es inválido
	_, err = h.uc.AddOrMerge(ctx, "ws-1", "prod-1", decimal.NewFromFloat(0.9), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Remove / Clear: asimetría deliberada de restauración
// ──────────────────────────────────────────────────────────────────────────────

func TestRemove_NoDevuelveExistencias(t *testing.T) {
	h := newCartHarness(t)
	h.seedStock("prod-1", 10)
	h.seedPrice("price-1", "prod-1", 10, time.Now())
	ctx := context.Background()

	line, err := h.uc.AddOrMerge(ctx, "ws-1", "prod-1", decimal.NewFromInt(4), decimal.Zero)
	require.NoError(t, err)
	require.True(t, h.stockPz("prod-1").Equal(decimal.NewFromInt(6)))

	removed, err := h.uc.Remove(ctx, line.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	// Eliminar la línea NO restaura el stock; eso solo lo hace Clear
	assert.True(t, h.stockPz("prod-1").Equal(decimal.NewFromInt(6)),
		"eliminar una línea no debe devolver existencias")
}

func TestRemove_LineaInexistente(t *testing.T) {
	h := newCartHarness(t)

	removed, err := h.uc.Remove(context.Background(), "linea-fantasma")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestClear_RestauraTodoElApartado(t *testing.T) {
	h := newCartHarness(t)
	h.seedStock("prod-1", 10)
	h.seedPrice("price-1", "prod-1", 10, time.Now())
	ctx := context.Background()

	_, err := h.uc.AddOrMerge(ctx, "ws-1", "prod-1", decimal.NewFromInt(4), decimal.Zero)
	require.NoError(t, err)
	_, err = h.uc.AddOrMerge(ctx, "ws-1", "prod-1", decimal.NewFromInt(3), decimal.Zero)
	require.NoError(t, err)
	require.True(t, h.stockPz("prod-1").Equal(decimal.NewFromInt(3)))

	require.NoError(t, h.uc.Clear(ctx, "ws-1"))

	assert.True(t, h.stockPz("prod-1").Equal(decimal.NewFromInt(10)),
		"vaciar el carrito debe devolver el stock a 10")
	remaining, _ := h.lines.ListByWorkspace("ws-1")
	assert.Empty(t, remaining, "no deben quedar líneas")
}
