package inventory_test

import (
	"context"

	"github.com/cmoralesv/AgroStock-api/internal/application/inventory"
	"github.com/cmoralesv/AgroStock-api/internal/domain/entity"
	"github.com/cmoralesv/AgroStock-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Dobles en memoria de los puertos de persistencia. Devuelven y almacenan copias:
// una transacción que falla a mitad de camino no deja mutaciones visibles, igual
// que el rollback real.

type fakeItemRepo struct {
	items map[string]entity.InventoryItem
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[string]entity.InventoryItem{}}
}

func (r *fakeItemRepo) Create(item *entity.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := it
	return &cp, nil
}

func (r *fakeItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	return r.GetByID(id)
}

func (r *fakeItemRepo) Update(item *entity.InventoryItem) error {
	r.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) List(includeDeleted bool, limit, offset int) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for id := range r.items {
		it := r.items[id]
		if !includeDeleted && it.IsDeleted() {
			continue
		}
		cp := it
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeItemRepo) ListLowStock(limit, offset int) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for id := range r.items {
		it := r.items[id]
		if it.IsDeleted() || it.ItemKind != entity.ItemKindConsumable {
			continue
		}
		if it.AvailableUsage().LessThanOrEqual(it.MinStock) {
			cp := it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Summary() (*repository.StockSummary, error) {
	s := &repository.StockSummary{InventoryValue: decimal.Zero}
	for id := range r.items {
		it := r.items[id]
		if it.IsDeleted() {
			continue
		}
		s.TotalItems++
		s.InventoryValue = s.InventoryValue.Add(it.InventoryValue)
		switch it.Status {
		case entity.ItemStatusLowStock:
			s.LowStockItems++
		case entity.ItemStatusOutOfStock:
			s.OutOfStock++
		}
	}
	return s, nil
}

type fakeMovementRepo struct {
	entries []entity.MovementEntry
}

func newFakeMovementRepo() *fakeMovementRepo { return &fakeMovementRepo{} }

func (r *fakeMovementRepo) Create(entry *entity.MovementEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.MovementEntry, error) {
	for i := range r.entries {
		if r.entries[i].ID == id {
			cp := r.entries[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByItem(itemID string, limit, offset int) ([]*entity.MovementEntry, error) {
	var out []*entity.MovementEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].ItemID == itemID {
			cp := r.entries[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) List(limit, offset int) ([]*entity.MovementEntry, error) {
	var out []*entity.MovementEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		cp := r.entries[i]
		out = append(out, &cp)
	}
	return out, nil
}

type fakeReservationRepo struct {
	reservations map[string]entity.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: map[string]entity.Reservation{}}
}

func (r *fakeReservationRepo) Create(res *entity.Reservation) error {
	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	r.reservations[res.ID] = *res
	return nil
}

func (r *fakeReservationRepo) GetByID(id string) (*entity.Reservation, error) {
	res, ok := r.reservations[id]
	if !ok {
		return nil, nil
	}
	cp := res
	return &cp, nil
}

func (r *fakeReservationRepo) GetForUpdate(id string) (*entity.Reservation, error) {
	return r.GetByID(id)
}

func (r *fakeReservationRepo) UpdateStatus(res *entity.Reservation) error {
	r.reservations[res.ID] = *res
	return nil
}

func (r *fakeReservationRepo) List(limit, offset int) ([]*entity.Reservation, error) {
	var out []*entity.Reservation
	for id := range r.reservations {
		cp := r.reservations[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeReservationRepo) ListByItem(itemID string, limit, offset int) ([]*entity.Reservation, error) {
	var out []*entity.Reservation
	for id := range r.reservations {
		if r.reservations[id].ItemID == itemID {
			cp := r.reservations[id]
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeWarehouseRepo struct {
	warehouses map[string]entity.Warehouse
}

func newFakeWarehouseRepo(ids ...string) *fakeWarehouseRepo {
	r := &fakeWarehouseRepo{warehouses: map[string]entity.Warehouse{}}
	for _, id := range ids {
		r.warehouses[id] = entity.Warehouse{ID: id, Name: "bodega " + id}
	}
	return r
}

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	r.warehouses[w.ID] = *w
	return nil
}

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := w
	return &cp, nil
}

func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error {
	r.warehouses[w.ID] = *w
	return nil
}

func (r *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) { return nil, nil }
func (r *fakeWarehouseRepo) Delete(id string) error                              { delete(r.warehouses, id); return nil }

type fakeSupplierRepo struct{ suppliers map[string]entity.Supplier }

func newFakeSupplierRepo(ids ...string) *fakeSupplierRepo {
	r := &fakeSupplierRepo{suppliers: map[string]entity.Supplier{}}
	for _, id := range ids {
		r.suppliers[id] = entity.Supplier{ID: id}
	}
	return r
}

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error { r.suppliers[s.ID] = *s; return nil }
func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := s
	return &cp, nil
}
func (r *fakeSupplierRepo) Update(s *entity.Supplier) error { r.suppliers[s.ID] = *s; return nil }
func (r *fakeSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) { return nil, nil }
func (r *fakeSupplierRepo) Delete(id string) error          { delete(r.suppliers, id); return nil }

type fakeCategoryRepo struct{ categories map[string]entity.Category }

func newFakeCategoryRepo(ids ...string) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: map[string]entity.Category{}}
	for _, id := range ids {
		r.categories[id] = entity.Category{ID: id}
	}
	return r
}

func (r *fakeCategoryRepo) Create(c *entity.Category) error { r.categories[c.ID] = *c; return nil }
func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := c
	return &cp, nil
}
func (r *fakeCategoryRepo) Update(c *entity.Category) error { r.categories[c.ID] = *c; return nil }
func (r *fakeCategoryRepo) List(limit, offset int) ([]*entity.Category, error) { return nil, nil }
func (r *fakeCategoryRepo) Delete(id string) error          { delete(r.categories, id); return nil }

// fakeTxRunner ejecuta el callback con los repos en memoria; la semántica de
// rollback la dan las copias de los fakes.
type fakeTxRunner struct {
	items *fakeItemRepo
	movs  *fakeMovementRepo
	res   *fakeReservationRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	resRepo repository.ReservationRepository,
) error) error {
	return fn(f.items, f.movs, f.res)
}

// testEnv agrupa fakes y casos de uso listos para un test.
type testEnv struct {
	items      *fakeItemRepo
	movs       *fakeMovementRepo
	res        *fakeReservationRepo
	warehouses *fakeWarehouseRepo
	suppliers  *fakeSupplierRepo
	categories *fakeCategoryRepo

	movementUC     *inventory.MovementUseCase
	itemUC         *inventory.ItemUseCase
	reservationUC  *inventory.ReservationUseCase
	depreciationUC *inventory.DepreciationUseCase
}

func newTestEnv(warehouseIDs ...string) *testEnv {
	if len(warehouseIDs) == 0 {
		warehouseIDs = []string{"wh-1"}
	}
	env := &testEnv{
		items:      newFakeItemRepo(),
		movs:       newFakeMovementRepo(),
		res:        newFakeReservationRepo(),
		warehouses: newFakeWarehouseRepo(warehouseIDs...),
		suppliers:  newFakeSupplierRepo("sup-1"),
		categories: newFakeCategoryRepo("cat-1"),
	}
	tx := &fakeTxRunner{items: env.items, movs: env.movs, res: env.res}
	env.movementUC = inventory.NewMovementUseCase(tx, env.movs, env.warehouses, inventory.NopPublisher{}, inventory.NopMetrics{})
	env.itemUC = inventory.NewItemUseCase(tx, env.items, env.warehouses, env.suppliers, env.categories, env.movementUC, inventory.NopPublisher{})
	env.reservationUC = inventory.NewReservationUseCase(tx, env.res, inventory.NopPublisher{}, inventory.NopMetrics{})
	env.depreciationUC = inventory.NewDepreciationUseCase(tx, inventory.NopPublisher{})
	return env
}

// seedConsumable inserta directamente un consumible con stock en unidad de uso.
func (e *testEnv) seedConsumable(id string, stock, cost, minStock int64) {
	item := entity.InventoryItem{
		ID:                id,
		Name:              "insumo " + id,
		MaterialKind:      entity.MaterialKindSolid,
		ItemKind:          entity.ItemKindConsumable,
		PackagingUnit:     "kg",
		PackagingQuantity: decimal.NewFromInt(1),
		UsageUnit:         "g",
		ConversionFactor:  decimal.NewFromInt(1000),
		StockUsage:        decimal.NewFromInt(stock),
		UnitCostUsage:     decimal.NewFromInt(cost),
		MinStock:          decimal.NewFromInt(minStock),
		WarehouseID:       "wh-1",
		Status:            entity.ItemStatusAvailable,
	}
	item.RecomputeValue()
	e.items.items[id] = item
}

// seedAsset inserta directamente un activo fijo único.
func (e *testEnv) seedAsset(id string, acquisition, residual, lifeHours int64) {
	item := entity.InventoryItem{
		ID:               id,
		Name:             "activo " + id,
		MaterialKind:     entity.MaterialKindSolid,
		ItemKind:         entity.ItemKindFixedAsset,
		UsageUnit:        "und",
		ConversionFactor: decimal.NewFromInt(1),
		StockUsage:       decimal.NewFromInt(1),
		AcquisitionCost:  decimal.NewFromInt(acquisition),
		ResidualValue:    decimal.NewFromInt(residual),
		UsefulLifeHours:  decimal.NewFromInt(lifeHours),
		UnitCostUsage:    decimal.NewFromInt(acquisition),
		WarehouseID:      "wh-1",
		Status:           entity.ItemStatusAvailable,
	}
	item.RecomputeValue()
	e.items.items[id] = item
}
