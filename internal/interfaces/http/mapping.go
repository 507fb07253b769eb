package http

import (
	"github.com/cmoralesv/AgroStock-api/internal/application/dto"
	"github.com/cmoralesv/AgroStock-api/internal/application/inventory"
	"github.com/cmoralesv/AgroStock-api/internal/domain/entity"
)

func toItemResponse(i *entity.InventoryItem) *dto.ItemResponse {
	if i == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:           i.ID,
		Name:         i.Name,
		Description:  i.Description,
		MaterialKind: i.MaterialKind,
		ItemKind:     i.ItemKind,

		PackagingUnit:     i.PackagingUnit,
		PackagingQuantity: i.PackagingQuantity,
		UsageUnit:         i.UsageUnit,
		ConversionFactor:  i.ConversionFactor,

		StockUsage:     i.StockUsage,
		StockPackaging: i.StockPackaging,
		ReservedUsage:  i.ReservedUsage,
		AvailableUsage: i.AvailableUsage(),
		MinStock:       i.MinStock,

		UnitCostUsage:  i.UnitCostUsage,
		InventoryValue: i.InventoryValue,

		AcquisitionCost:         i.AcquisitionCost,
		ResidualValue:           i.ResidualValue,
		UsefulLifeHours:         i.UsefulLifeHours,
		HoursUsed:               i.HoursUsed,
		AccumulatedDepreciation: i.AccumulatedDepreciation,
		DecommissionedAt:        i.DecommissionedAt,

		WarehouseID: i.WarehouseID,
		SupplierID:  i.SupplierID,
		CategoryID:  i.CategoryID,

		Status:    i.Status,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
		DeletedAt: i.DeletedAt,
	}
}

func toMovementResponse(m *entity.MovementEntry) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:                      m.ID,
		ItemID:                  m.ItemID,
		Type:                    m.Type.String(),
		UsageQty:                m.UsageQty,
		PackagingQty:            m.PackagingQty,
		UnitCostUsage:           m.UnitCostUsage,
		TotalCost:               m.TotalCost,
		ResultingInventoryValue: m.ResultingInventoryValue,
		SourceWarehouseID:       m.SourceWarehouseID,
		DestWarehouseID:         m.DestWarehouseID,
		ActivityID:              m.ActivityID,
		ActorID:                 m.ActorID,
		Note:                    m.Note,
		CreatedAt:               m.CreatedAt,
	}
}

func toReservationResponse(r *entity.Reservation) *dto.ReservationResponse {
	if r == nil {
		return nil
	}
	return &dto.ReservationResponse{
		ID:         r.ID,
		ItemID:     r.ItemID,
		Quantity:   r.Quantity,
		Reason:     r.Reason,
		Status:     r.Status,
		ActorID:    r.ActorID,
		ActivityID: r.ActivityID,
		ReservedAt: r.ReservedAt,
		ResolvedAt: r.ResolvedAt,
	}
}

func toUsageResponse(u *inventory.UsageResult) *dto.UsageResponse {
	if u == nil {
		return nil
	}
	return &dto.UsageResponse{
		ItemID:      u.ItemID,
		Generated:   u.Generated,
		Accumulated: u.Accumulated,
		BookValue:   u.BookValue,
		HoursUsed:   u.HoursUsed,
		Status:      u.Status,
	}
}
