package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmoralesv/AgroStock-api/internal/domain"
	"github.com/cmoralesv/AgroStock-api/internal/domain/entity"
	"github.com/cmoralesv/AgroStock-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `
	id, name, description, material_kind, item_kind,
	packaging_unit, packaging_quantity, usage_unit, conversion_factor,
	stock_usage, stock_packaging, reserved_usage, min_stock,
	unit_cost_usage, inventory_value,
	acquisition_cost, residual_value, useful_life_hours, hours_used,
	accumulated_depreciation, decommissioned_at,
	warehouse_id, supplier_id, category_id,
	status, created_at, updated_at, deleted_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.Name, &it.Description, &it.MaterialKind, &it.ItemKind,
		&it.PackagingUnit, &it.PackagingQuantity, &it.UsageUnit, &it.ConversionFactor,
		&it.StockUsage, &it.StockPackaging, &it.ReservedUsage, &it.MinStock,
		&it.UnitCostUsage, &it.InventoryValue,
		&it.AcquisitionCost, &it.ResidualValue, &it.UsefulLifeHours, &it.HoursUsed,
		&it.AccumulatedDepreciation, &it.DecommissionedAt,
		&it.WarehouseID, &it.SupplierID, &it.CategoryID,
		&it.Status, &it.CreatedAt, &it.UpdatedAt, &it.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un nuevo ítem. Genera el ID si viene vacío.
func (r *ItemRepo) Create(item *entity.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO items (
			id, name, description, material_kind, item_kind,
			packaging_unit, packaging_quantity, usage_unit, conversion_factor,
			stock_usage, stock_packaging, reserved_usage, min_stock,
			unit_cost_usage, inventory_value,
			acquisition_cost, residual_value, useful_life_hours, hours_used,
			accumulated_depreciation, decommissioned_at,
			warehouse_id, supplier_id, category_id,
			status, created_at, updated_at, deleted_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.MaterialKind, item.ItemKind,
		item.PackagingUnit, item.PackagingQuantity, item.UsageUnit, item.ConversionFactor,
		item.StockUsage, item.StockPackaging, item.ReservedUsage, item.MinStock,
		item.UnitCostUsage, item.InventoryValue,
		item.AcquisitionCost, item.ResidualValue, item.UsefulLifeHours, item.HoursUsed,
		item.AccumulatedDepreciation, item.DecommissionedAt,
		item.WarehouseID, item.SupplierID, item.CategoryID,
		item.Status, item.CreatedAt, item.UpdatedAt, item.DeletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID (incluye eliminados; el caller decide).
func (r *ItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE): serializa
// las operaciones mutantes concurrentes sobre el mismo ítem.
func (r *ItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return it, nil
}

// Update persiste todos los campos mutables del ítem.
func (r *ItemRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE items SET
			name = $2, description = $3,
			packaging_unit = $4, packaging_quantity = $5, usage_unit = $6, conversion_factor = $7,
			stock_usage = $8, stock_packaging = $9, reserved_usage = $10, min_stock = $11,
			unit_cost_usage = $12, inventory_value = $13,
			residual_value = $14, useful_life_hours = $15, hours_used = $16,
			accumulated_depreciation = $17, decommissioned_at = $18,
			warehouse_id = $19, supplier_id = $20, category_id = $21,
			status = $22, updated_at = $23, deleted_at = $24
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description,
		item.PackagingUnit, item.PackagingQuantity, item.UsageUnit, item.ConversionFactor,
		item.StockUsage, item.StockPackaging, item.ReservedUsage, item.MinStock,
		item.UnitCostUsage, item.InventoryValue,
		item.ResidualValue, item.UsefulLifeHours, item.HoursUsed,
		item.AccumulatedDepreciation, item.DecommissionedAt,
		item.WarehouseID, item.SupplierID, item.CategoryID,
		item.Status, item.UpdatedAt, item.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// List lista ítems con paginación; includeDeleted controla los eliminados lógicos.
func (r *ItemRepo) List(includeDeleted bool, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	if !includeDeleted {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// ListLowStock lista consumibles activos con disponible (stock - reservado) en o
// bajo su umbral de reorden.
func (r *ItemRepo) ListLowStock(limit, offset int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + `
		FROM items
		WHERE deleted_at IS NULL
		  AND item_kind = $1
		  AND stock_usage - reserved_usage <= min_stock
		ORDER BY stock_usage - reserved_usage ASC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, entity.ItemKindConsumable, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Summary agrega conteos y valor total del inventario activo.
func (r *ItemRepo) Summary() (*repository.StockSummary, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = $1),
			COUNT(*) FILTER (WHERE status = $2),
			COALESCE(SUM(inventory_value), 0)
		FROM items WHERE deleted_at IS NULL`
	var s repository.StockSummary
	err := r.q.QueryRow(context.Background(), query,
		entity.ItemStatusLowStock, entity.ItemStatusOutOfStock,
	).Scan(&s.TotalItems, &s.LowStockItems, &s.OutOfStock, &s.InventoryValue)
	if err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}
	return &s, nil
}
