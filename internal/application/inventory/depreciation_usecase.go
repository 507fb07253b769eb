package inventory

import (
	"context"
	"time"

	"github.com/cmoralesv/AgroStock-api/internal/domain"
	"github.com/cmoralesv/AgroStock-api/internal/domain/entity"
	"github.com/cmoralesv/AgroStock-api/internal/domain/inventory"
	"github.com/cmoralesv/AgroStock-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DepreciationUseCase aplica depreciación lineal por horas de uso a activos fijos.
type DepreciationUseCase struct {
	txRunner TxRunner
	events   EventPublisher
}

// NewDepreciationUseCase construye el caso de uso.
func NewDepreciationUseCase(txRunner TxRunner, events EventPublisher) *DepreciationUseCase {
	return &DepreciationUseCase{txRunner: txRunner, events: events}
}

// UsageResult resultado de registrar horas de uso sobre un activo.
type UsageResult struct {
	ItemID      string
	Generated   decimal.Decimal
	Accumulated decimal.Decimal
	BookValue   decimal.Decimal
	HoursUsed   decimal.Decimal
	Status      string
}

// RegisterUsage suma horas de uso a un activo fijo y acumula la depreciación
// generada. Al agotar la vida útil el activo pasa a DECOMMISSIONED (terminal):
// registrar más horas sobre un activo dado de baja se rechaza.
func (uc *DepreciationUseCase) RegisterUsage(ctx context.Context, itemID string, hours decimal.Decimal) (*UsageResult, error) {
	if itemID == "" || !hours.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var result *UsageResult
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.MovementRepository,
		_ repository.ReservationRepository,
	) error {
		item, err := itemRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil || item.IsDeleted() {
			return domain.ErrNotFound
		}
		if !item.IsFixedAsset() {
			return domain.ErrInvalidInput
		}
		if item.Status == entity.ItemStatusDecommissioned {
			return domain.ErrInvalidState
		}

		dep := inventory.DepreciatePerUsage(
			item.AcquisitionCost, item.ResidualValue, item.UsefulLifeHours,
			item.AccumulatedDepreciation, hours,
		)
		now := time.Now()
		item.HoursUsed = item.HoursUsed.Add(hours)
		item.AccumulatedDepreciation = dep.Accumulated
		item.InventoryValue = dep.BookValue

		if item.HoursUsed.GreaterThanOrEqual(item.UsefulLifeHours) {
			item.Status = entity.ItemStatusDecommissioned
			if item.DecommissionedAt == nil {
				item.DecommissionedAt = &now
			}
		} else if item.Status == entity.ItemStatusAvailable {
			// El primer uso saca al activo del estado ocioso.
			item.Status = entity.ItemStatusInUse
		}
		item.UpdatedAt = now
		if err := itemRepo.Update(item); err != nil {
			return err
		}

		result = &UsageResult{
			ItemID:      item.ID,
			Generated:   dep.Generated,
			Accumulated: dep.Accumulated,
			BookValue:   dep.BookValue,
			HoursUsed:   item.HoursUsed,
			Status:      item.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.events.Publish(ctx, EventAssetDepreciated, result)
	if result.Status == entity.ItemStatusDecommissioned {
		log.Info().
			Str("item_id", result.ItemID).
			Str("hours_used", result.HoursUsed.String()).
			Msg("activo dado de baja por fin de vida útil")
	}
	return result, nil
}
