package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostMovementRequest body para registrar un movimiento en el libro.
// usage_qty va en unidad de uso (gramos/cm³) y siempre positivo salvo
// ADJUSTMENT, donde el signo indica la dirección de la corrección.
type PostMovementRequest struct {
	ItemID            string           `json:"item_id" validate:"required"`
	Type              string           `json:"type" validate:"required"`
	UsageQty          decimal.Decimal  `json:"usage_qty"`
	PackagingQty      decimal.Decimal  `json:"packaging_qty"`
	UnitCost          *decimal.Decimal `json:"unit_cost,omitempty"`
	Note              string           `json:"note"`
	ActivityID        string           `json:"activity_id"`
	SourceWarehouseID string           `json:"source_warehouse_id,omitempty"`
	DestWarehouseID   string           `json:"dest_warehouse_id,omitempty"`
}

// MovementResponse salida de una entrada del libro de movimientos.
type MovementResponse struct {
	ID                      string          `json:"id"`
	ItemID                  string          `json:"item_id"`
	Type                    string          `json:"type"`
	UsageQty                decimal.Decimal `json:"usage_qty"`
	PackagingQty            decimal.Decimal `json:"packaging_qty"`
	UnitCostUsage           decimal.Decimal `json:"unit_cost_usage"`
	TotalCost               decimal.Decimal `json:"total_cost"`
	ResultingInventoryValue decimal.Decimal `json:"resulting_inventory_value"`
	SourceWarehouseID       string          `json:"source_warehouse_id,omitempty"`
	DestWarehouseID         string          `json:"dest_warehouse_id,omitempty"`
	ActivityID              string          `json:"activity_id,omitempty"`
	ActorID                 string          `json:"actor_id,omitempty"`
	Note                    string          `json:"note,omitempty"`
	CreatedAt               time.Time       `json:"created_at"`
}

// MovementListResponse historial paginado de movimientos (más recientes primero).
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Page      PageResponse       `json:"page"`
}
