package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Naturaleza física del material: determina la unidad de uso canónica.
const (
	MaterialKindSolid  = "SOLID"  // unidad de uso: gramos
	MaterialKindLiquid = "LIQUID" // unidad de uso: cm³
)

// Clase de ítem de inventario.
const (
	ItemKindConsumable = "CONSUMABLE"  // insumo que se consume por cantidad
	ItemKindFixedAsset = "FIXED_ASSET" // activo fijo que se deprecia por horas de uso
)

// Estados de un ítem de inventario.
const (
	ItemStatusAvailable      = "AVAILABLE"
	ItemStatusLowStock       = "LOW_STOCK"
	ItemStatusOutOfStock     = "OUT_OF_STOCK"
	ItemStatusInUse          = "IN_USE"
	ItemStatusReserved       = "RESERVED"
	ItemStatusMaintenance    = "MAINTENANCE"
	ItemStatusDecommissioned = "DECOMMISSIONED"
)

// InventoryItem representa un insumo consumible o un activo fijo de la finca.
// StockUsage (en unidad de uso: gramos o cm³) es la única fuente de verdad del stock;
// StockPackaging es un espejo informativo en unidades de empaque. Los campos de stock,
// costo y valor solo mutan a través de los servicios de movimientos/reservas/depreciación.
type InventoryItem struct {
	ID           string
	Name         string
	Description  string
	MaterialKind string // SOLID | LIQUID
	ItemKind     string // CONSUMABLE | FIXED_ASSET

	// Empaque: tamaño de una unidad de compra y su equivalencia en unidad de uso.
	PackagingUnit     string          // texto libre normalizado: kg, g, l, ml...
	PackagingQuantity decimal.Decimal // tamaño de un empaque en su unidad
	UsageUnit         string          // g para sólidos, cm3 para líquidos
	ConversionFactor  decimal.Decimal // empaque -> unidad de uso; derivado al crear

	// Stock en unidad de uso.
	StockUsage     decimal.Decimal
	StockPackaging decimal.Decimal
	ReservedUsage  decimal.Decimal
	MinStock       decimal.Decimal // umbral de reorden (solo consumibles)

	// Valoración.
	UnitCostUsage  decimal.Decimal // costo promedio ponderado por unidad de uso
	InventoryValue decimal.Decimal // StockUsage * UnitCostUsage

	// Solo activos fijos.
	AcquisitionCost         decimal.Decimal
	ResidualValue           decimal.Decimal
	UsefulLifeHours         decimal.Decimal
	HoursUsed               decimal.Decimal
	AccumulatedDepreciation decimal.Decimal
	DecommissionedAt        *time.Time

	// Referencias de catálogo.
	WarehouseID string
	SupplierID  string
	CategoryID  string

	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // soft-delete: nil = activo
}

// IsDeleted indica si el ítem fue eliminado lógicamente.
func (i *InventoryItem) IsDeleted() bool {
	return i.DeletedAt != nil
}

// AvailableUsage devuelve el stock disponible para reservar (stock - reservado).
func (i *InventoryItem) AvailableUsage() decimal.Decimal {
	return i.StockUsage.Sub(i.ReservedUsage)
}

// IsFixedAsset indica si el ítem se deprecia por horas en lugar de consumirse.
func (i *InventoryItem) IsFixedAsset() bool {
	return i.ItemKind == ItemKindFixedAsset
}

// RecomputeValue recalcula InventoryValue = StockUsage * UnitCostUsage.
// Debe llamarse después de cada mutación de stock o costo.
func (i *InventoryItem) RecomputeValue() {
	i.InventoryValue = i.StockUsage.Mul(i.UnitCostUsage)
}

// RecomputeConsumableStatus recalcula el estado de un consumible según su stock
// disponible frente al umbral de reorden.
func (i *InventoryItem) RecomputeConsumableStatus() {
	switch {
	case i.StockUsage.LessThanOrEqual(decimal.Zero):
		i.Status = ItemStatusOutOfStock
	case i.AvailableUsage().LessThanOrEqual(i.MinStock):
		i.Status = ItemStatusLowStock
	default:
		i.Status = ItemStatusAvailable
	}
}
