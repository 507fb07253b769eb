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

// MovementUseCase registra entradas del libro de movimientos de forma transaccional,
// recalculando stock, costo promedio y valor del ítem con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback.
type MovementUseCase struct {
	txRunner      TxRunner
	movementRepo  repository.MovementRepository
	warehouseRepo repository.WarehouseRepository
	events        EventPublisher
	metrics       Metrics
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	movementRepo repository.MovementRepository,
	warehouseRepo repository.WarehouseRepository,
	events EventPublisher,
	metrics Metrics,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:      txRunner,
		movementRepo:  movementRepo,
		warehouseRepo: warehouseRepo,
		events:        events,
		metrics:       metrics,
	}
}

// MovementInput entrada para registrar un movimiento.
// UsageQty va en unidad de uso (gramos/cm³); UnitCost, si viene, también.
// Para TRANSFER: SourceWarehouseID y DestWarehouseID obligatorios y distintos.
type MovementInput struct {
	ItemID            string
	Type              entity.MovementType
	UsageQty          decimal.Decimal
	PackagingQty      decimal.Decimal
	UnitCost          *decimal.Decimal
	Note              string
	ActorID           string
	ActivityID        string
	SourceWarehouseID string
	DestWarehouseID   string
}

// PostMovement valida la entrada, inicia una transacción, bloquea la fila del ítem,
// aplica el efecto del tipo sobre stock/costo/valor y persiste exactamente una entrada
// del libro. O se confirman ambas escrituras o ninguna es visible.
func (uc *MovementUseCase) PostMovement(ctx context.Context, input MovementInput) (*entity.MovementEntry, error) {
	if !input.Type.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	// RESERVATION_USE solo lo emite el servicio de reservas al consumir una reserva.
	if input.Type == entity.MovementTypeReservationUse {
		return nil, domain.ErrInvalidInput
	}
	if input.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}

	switch {
	case input.Type.Increases() || input.Type.Decreases():
		if !input.UsageQty.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	case input.Type == entity.MovementTypeAdjustment:
		if input.UsageQty.IsZero() {
			return nil, domain.ErrInvalidInput
		}
	case input.Type == entity.MovementTypeTransfer:
		if input.SourceWarehouseID == "" || input.DestWarehouseID == "" ||
			input.SourceWarehouseID == input.DestWarehouseID {
			return nil, domain.ErrInvalidTransfer
		}
		dest, err := uc.warehouseRepo.GetByID(input.DestWarehouseID)
		if err != nil {
			return nil, err
		}
		if dest == nil {
			return nil, domain.ErrInvalidReference
		}
	}

	var entry *entity.MovementEntry
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		_ repository.ReservationRepository,
	) error {
		item, err := itemRepo.GetForUpdate(input.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		entry, err = ApplyMovement(item, input, time.Now())
		if err != nil {
			return err
		}
		if err := itemRepo.Update(item); err != nil {
			return err
		}
		return movRepo.Create(entry)
	})
	if err != nil {
		if err == domain.ErrInsufficientStock {
			uc.metrics.InsufficientStock()
		}
		return nil, err
	}

	uc.metrics.MovementPosted(entry.Type.String())
	uc.events.Publish(ctx, EventMovementPosted, entry)
	log.Info().
		Str("item_id", entry.ItemID).
		Str("type", entry.Type.String()).
		Str("usage_qty", entry.UsageQty.String()).
		Msg("movimiento registrado")
	return entry, nil
}

// ApplyMovement aplica el efecto de un movimiento sobre el ítem (en memoria) y
// construye la entrada del libro correspondiente. El caller persiste ambos dentro
// de la misma transacción. Exportada porque el alta de ítems y el consumo de
// reservas generan sus entradas con esta misma regla de efectos.
func ApplyMovement(item *entity.InventoryItem, input MovementInput, now time.Time) (*entity.MovementEntry, error) {
	// DELETE/RESTORE operan sobre el estado de borrado; el resto exige ítem activo.
	switch input.Type {
	case entity.MovementTypeDelete:
		if item.IsDeleted() {
			return nil, domain.ErrInvalidState
		}
	case entity.MovementTypeRestore:
		if !item.IsDeleted() {
			return nil, domain.ErrInvalidState
		}
	default:
		if item.IsDeleted() {
			return nil, domain.ErrNotFound
		}
	}

	signedQty := decimal.Zero
	unitCost := item.UnitCostUsage

	switch input.Type {
	case entity.MovementTypeRegister, entity.MovementTypeReceipt:
		if input.UnitCost != nil && input.UnitCost.GreaterThan(decimal.Zero) {
			unitCost = *input.UnitCost
			item.UnitCostUsage = inventory.WeightedAverageCost(
				item.StockUsage, item.UnitCostUsage, input.UsageQty, unitCost,
			)
		}
		item.StockUsage = item.StockUsage.Add(input.UsageQty)
		item.StockPackaging = item.StockPackaging.Add(input.PackagingQty)
		signedQty = input.UsageQty

	case entity.MovementTypeConsume, entity.MovementTypeIssue, entity.MovementTypeReservationUse:
		// El stock reservado no es consumible fuera de su reserva.
		if item.AvailableUsage().LessThan(input.UsageQty) {
			return nil, domain.ErrInsufficientStock
		}
		if input.PackagingQty.GreaterThan(decimal.Zero) &&
			item.StockPackaging.LessThan(input.PackagingQty) {
			return nil, domain.ErrInsufficientStock
		}
		item.StockUsage = item.StockUsage.Sub(input.UsageQty)
		item.StockPackaging = item.StockPackaging.Sub(input.PackagingQty)
		signedQty = input.UsageQty.Neg()

	case entity.MovementTypeAdjustment:
		newStock := item.StockUsage.Add(input.UsageQty)
		if newStock.LessThan(item.ReservedUsage) {
			return nil, domain.ErrInsufficientStock
		}
		item.StockUsage = newStock
		item.StockPackaging = item.StockPackaging.Add(input.PackagingQty)
		signedQty = input.UsageQty

	case entity.MovementTypeTransfer:
		if item.WarehouseID != input.SourceWarehouseID {
			return nil, domain.ErrInvalidTransfer
		}
		item.WarehouseID = input.DestWarehouseID

	case entity.MovementTypeDelete:
		deletedAt := now
		item.DeletedAt = &deletedAt

	case entity.MovementTypeRestore:
		item.DeletedAt = nil

	default:
		return nil, domain.ErrInvalidInput
	}

	if !item.IsFixedAsset() && !signedQty.IsZero() {
		item.RecomputeConsumableStatus()
	}
	item.RecomputeValue()
	item.UpdatedAt = now

	totalCost := signedQty.Mul(unitCost)
	return &entity.MovementEntry{
		ItemID:                  item.ID,
		Type:                    input.Type,
		UsageQty:                signedQty,
		PackagingQty:            input.PackagingQty,
		UnitCostUsage:           unitCost,
		TotalCost:               totalCost,
		ResultingInventoryValue: item.InventoryValue,
		SourceWarehouseID:       input.SourceWarehouseID,
		DestWarehouseID:         input.DestWarehouseID,
		ActivityID:              input.ActivityID,
		ActorID:                 input.ActorID,
		Note:                    input.Note,
		CreatedAt:               now,
	}, nil
}

// ListMovements lista las entradas del libro de un ítem, más recientes primero.
func (uc *MovementUseCase) ListMovements(ctx context.Context, itemID string, limit, offset int) ([]*entity.MovementEntry, error) {
	return uc.movementRepo.ListByItem(itemID, limit, offset)
}

// ListAllMovements lista las entradas del libro sin filtrar por ítem.
func (uc *MovementUseCase) ListAllMovements(ctx context.Context, limit, offset int) ([]*entity.MovementEntry, error) {
	return uc.movementRepo.List(limit, offset)
}
