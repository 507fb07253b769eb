package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para registrar un ítem en el inventario.
// Las cantidades de empaque vienen en la unidad declarada (kg, l, ml...);
// el motor deriva la conversión a unidad de uso al crear.
type CreateItemRequest struct {
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	Description       string          `json:"description"`
	MaterialKind      string          `json:"material_kind" validate:"required,oneof=SOLID LIQUID"`
	ItemKind          string          `json:"item_kind" validate:"required,oneof=CONSUMABLE FIXED_ASSET"`
	PackagingUnit     string          `json:"packaging_unit"`
	PackagingQuantity decimal.Decimal `json:"packaging_quantity"`
	InitialPackages   decimal.Decimal `json:"initial_packages"`
	UnitCostPackaging decimal.Decimal `json:"unit_cost_packaging"`
	MinStock          decimal.Decimal `json:"min_stock"`
	WarehouseID       string          `json:"warehouse_id" validate:"required"`
	SupplierID        string          `json:"supplier_id"`
	CategoryID        string          `json:"category_id"`

	// Solo activos fijos.
	AcquisitionCost decimal.Decimal `json:"acquisition_cost"`
	ResidualValue   decimal.Decimal `json:"residual_value"`
	UsefulLifeHours decimal.Decimal `json:"useful_life_hours"`

	Note string `json:"note"`
}

// UpdateItemRequest entrada para actualizar un ítem (sin stock ni costo:
// esos campos solo mutan a través de movimientos).
type UpdateItemRequest struct {
	Name              *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description       *string          `json:"description"`
	PackagingUnit     *string          `json:"packaging_unit"`
	PackagingQuantity *decimal.Decimal `json:"packaging_quantity"`
	MinStock          *decimal.Decimal `json:"min_stock"`
	SupplierID        *string          `json:"supplier_id"`
	CategoryID        *string          `json:"category_id"`
	ResidualValue     *decimal.Decimal `json:"residual_value"`
	UsefulLifeHours   *decimal.Decimal `json:"useful_life_hours"`
}

// ItemResponse salida de un ítem de inventario.
type ItemResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	MaterialKind string `json:"material_kind"`
	ItemKind     string `json:"item_kind"`

	PackagingUnit     string          `json:"packaging_unit"`
	PackagingQuantity decimal.Decimal `json:"packaging_quantity"`
	UsageUnit         string          `json:"usage_unit"`
	ConversionFactor  decimal.Decimal `json:"conversion_factor"`

	StockUsage     decimal.Decimal `json:"stock_usage"`
	StockPackaging decimal.Decimal `json:"stock_packaging"`
	ReservedUsage  decimal.Decimal `json:"reserved_usage"`
	AvailableUsage decimal.Decimal `json:"available_usage"`
	MinStock       decimal.Decimal `json:"min_stock"`

	UnitCostUsage  decimal.Decimal `json:"unit_cost_usage"`
	InventoryValue decimal.Decimal `json:"inventory_value"`

	AcquisitionCost         decimal.Decimal `json:"acquisition_cost,omitempty"`
	ResidualValue           decimal.Decimal `json:"residual_value,omitempty"`
	UsefulLifeHours         decimal.Decimal `json:"useful_life_hours,omitempty"`
	HoursUsed               decimal.Decimal `json:"hours_used,omitempty"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulated_depreciation,omitempty"`
	DecommissionedAt        *time.Time      `json:"decommissioned_at,omitempty"`

	WarehouseID string `json:"warehouse_id"`
	SupplierID  string `json:"supplier_id,omitempty"`
	CategoryID  string `json:"category_id,omitempty"`

	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// ItemListResponse lista paginada de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// StockSummaryResponse resumen agregado del inventario.
type StockSummaryResponse struct {
	TotalItems     int             `json:"total_items"`
	LowStockItems  int             `json:"low_stock_items"`
	OutOfStock     int             `json:"out_of_stock"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
}
