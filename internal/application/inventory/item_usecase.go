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

// Unidad de uso para activos fijos: se cuentan por unidades, no se convierten.
const usageUnitEach = "und"

// ItemUseCase orquesta el alta, actualización y baja lógica de ítems de inventario.
// Todo cambio de stock se delega al libro de movimientos; aquí solo se mutan los
// campos descriptivos y las referencias de catálogo.
type ItemUseCase struct {
	txRunner      TxRunner
	itemRepo      repository.ItemRepository
	warehouseRepo repository.WarehouseRepository
	supplierRepo  repository.SupplierRepository
	categoryRepo  repository.CategoryRepository
	movements     *MovementUseCase
	events        EventPublisher
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	warehouseRepo repository.WarehouseRepository,
	supplierRepo repository.SupplierRepository,
	categoryRepo repository.CategoryRepository,
	movements *MovementUseCase,
	events EventPublisher,
) *ItemUseCase {
	return &ItemUseCase{
		txRunner:      txRunner,
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
		supplierRepo:  supplierRepo,
		categoryRepo:  categoryRepo,
		movements:     movements,
		events:        events,
	}
}

// CreateItemInput entrada para el alta de un ítem.
// Para consumibles: PackagingUnit/PackagingQuantity describen un empaque y
// UnitCostPackaging su costo; InitialPackages es el stock inicial en empaques.
// Para activos fijos: InitialPackages son unidades y aplican los campos de depreciación.
type CreateItemInput struct {
	Name              string
	Description       string
	MaterialKind      string
	ItemKind          string
	PackagingUnit     string
	PackagingQuantity decimal.Decimal
	InitialPackages   decimal.Decimal
	UnitCostPackaging decimal.Decimal
	MinStock          decimal.Decimal // en unidad de uso
	WarehouseID       string
	SupplierID        string
	CategoryID        string

	// Solo activos fijos.
	AcquisitionCost decimal.Decimal
	ResidualValue   decimal.Decimal
	UsefulLifeHours decimal.Decimal

	ActorID string
	Note    string
}

// CreateItem valida referencias de catálogo, deriva el factor de conversión una sola
// vez y persiste el ítem junto con su entrada REGISTER inicial en una transacción.
func (uc *ItemUseCase) CreateItem(ctx context.Context, input CreateItemInput) (*entity.InventoryItem, error) {
	if input.Name == "" || input.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.MaterialKind != entity.MaterialKindSolid && input.MaterialKind != entity.MaterialKindLiquid {
		return nil, domain.ErrInvalidInput
	}
	if input.ItemKind != entity.ItemKindConsumable && input.ItemKind != entity.ItemKindFixedAsset {
		return nil, domain.ErrInvalidInput
	}
	if input.InitialPackages.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.validateReferences(input.WarehouseID, input.SupplierID, input.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &entity.InventoryItem{
		Name:         input.Name,
		Description:  input.Description,
		MaterialKind: input.MaterialKind,
		ItemKind:     input.ItemKind,
		MinStock:     input.MinStock,
		WarehouseID:  input.WarehouseID,
		SupplierID:   input.SupplierID,
		CategoryID:   input.CategoryID,
		Status:       entity.ItemStatusOutOfStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var unitCostUsage decimal.Decimal
	if input.ItemKind == entity.ItemKindFixedAsset {
		// Los activos fijos se cuentan por unidades y se valoran por costo de adquisición.
		item.PackagingUnit = usageUnitEach
		item.PackagingQuantity = decimal.NewFromInt(1)
		item.UsageUnit = usageUnitEach
		item.ConversionFactor = decimal.NewFromInt(1)
		item.AcquisitionCost = input.AcquisitionCost
		item.ResidualValue = input.ResidualValue
		item.UsefulLifeHours = input.UsefulLifeHours
		item.Status = entity.ItemStatusAvailable
		unitCostUsage = input.AcquisitionCost
	} else {
		if !input.PackagingQuantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		conv := inventory.ResolveConversion(input.MaterialKind, input.PackagingUnit, input.PackagingQuantity)
		if !conv.Recognized {
			// Factor identidad: probable error de captura, se registra y se continúa.
			log.Warn().
				Str("item", input.Name).
				Str("packaging_unit", input.PackagingUnit).
				Msg("unidad de empaque no reconocida, se asume factor identidad")
		}
		item.PackagingUnit = input.PackagingUnit
		item.PackagingQuantity = input.PackagingQuantity
		item.UsageUnit = conv.UsageUnit
		item.ConversionFactor = conv.Factor
		if conv.Factor.GreaterThan(decimal.Zero) {
			unitCostUsage = input.UnitCostPackaging.Div(conv.Factor)
		}
	}

	initialUsage := input.InitialPackages.Mul(item.ConversionFactor)

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		_ repository.ReservationRepository,
	) error {
		if err := itemRepo.Create(item); err != nil {
			return err
		}
		if initialUsage.IsZero() {
			return nil
		}
		entry, err := ApplyMovement(item, MovementInput{
			ItemID:       item.ID,
			Type:         entity.MovementTypeRegister,
			UsageQty:     initialUsage,
			PackagingQty: input.InitialPackages,
			UnitCost:     &unitCostUsage,
			Note:         input.Note,
			ActorID:      input.ActorID,
		}, now)
		if err != nil {
			return err
		}
		if err := itemRepo.Update(item); err != nil {
			return err
		}
		return movRepo.Create(entry)
	})
	if err != nil {
		return nil, err
	}

	uc.events.Publish(ctx, EventItemCreated, item)
	return item, nil
}

// UpdateItemInput campos modificables de un ítem. Los campos de stock, costo y
// valor no son parcheables: solo mutan a través del libro de movimientos.
type UpdateItemInput struct {
	Name              *string
	Description       *string
	PackagingUnit     *string
	PackagingQuantity *decimal.Decimal
	MinStock          *decimal.Decimal
	SupplierID        *string
	CategoryID        *string
	ResidualValue     *decimal.Decimal
	UsefulLifeHours   *decimal.Decimal
}

// UpdateItem aplica un parche sobre los campos descriptivos. Si cambia la cantidad
// de empaque (o su unidad), el factor de conversión se deriva de nuevo.
func (uc *ItemUseCase) UpdateItem(ctx context.Context, id string, patch UpdateItemInput) (*entity.InventoryItem, error) {
	if patch.SupplierID != nil && *patch.SupplierID != "" {
		if err := uc.validateReferences("", *patch.SupplierID, ""); err != nil {
			return nil, err
		}
	}
	if patch.CategoryID != nil && *patch.CategoryID != "" {
		if err := uc.validateReferences("", "", *patch.CategoryID); err != nil {
			return nil, err
		}
	}

	var updated *entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.MovementRepository,
		_ repository.ReservationRepository,
	) error {
		item, err := itemRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if item == nil || item.IsDeleted() {
			return domain.ErrNotFound
		}

		if patch.Name != nil {
			item.Name = *patch.Name
		}
		if patch.Description != nil {
			item.Description = *patch.Description
		}
		if patch.MinStock != nil {
			item.MinStock = *patch.MinStock
		}
		if patch.SupplierID != nil {
			item.SupplierID = *patch.SupplierID
		}
		if patch.CategoryID != nil {
			item.CategoryID = *patch.CategoryID
		}
		if patch.ResidualValue != nil {
			item.ResidualValue = *patch.ResidualValue
		}
		if patch.UsefulLifeHours != nil {
			item.UsefulLifeHours = *patch.UsefulLifeHours
		}

		repack := false
		if patch.PackagingUnit != nil && *patch.PackagingUnit != item.PackagingUnit {
			item.PackagingUnit = *patch.PackagingUnit
			repack = true
		}
		if patch.PackagingQuantity != nil && !patch.PackagingQuantity.Equal(item.PackagingQuantity) {
			if !patch.PackagingQuantity.GreaterThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
			item.PackagingQuantity = *patch.PackagingQuantity
			repack = true
		}
		if repack && !item.IsFixedAsset() {
			conv := inventory.ResolveConversion(item.MaterialKind, item.PackagingUnit, item.PackagingQuantity)
			if !conv.Recognized {
				log.Warn().
					Str("item_id", item.ID).
					Str("packaging_unit", item.PackagingUnit).
					Msg("unidad de empaque no reconocida, se asume factor identidad")
			}
			item.UsageUnit = conv.UsageUnit
			item.ConversionFactor = conv.Factor
		}

		if !item.IsFixedAsset() {
			item.RecomputeConsumableStatus()
		}
		item.UpdatedAt = time.Now()
		updated = item
		return itemRepo.Update(item)
	})
	if err != nil {
		return nil, err
	}

	uc.events.Publish(ctx, EventItemUpdated, updated)
	return updated, nil
}

// SoftDeleteItem marca el ítem como eliminado a través de un movimiento DELETE.
// El historial del libro permanece intacto para auditoría.
func (uc *ItemUseCase) SoftDeleteItem(ctx context.Context, id, actorID string) error {
	_, err := uc.movements.PostMovement(ctx, MovementInput{
		ItemID:  id,
		Type:    entity.MovementTypeDelete,
		ActorID: actorID,
	})
	if err != nil {
		return err
	}
	uc.events.Publish(ctx, EventItemDeleted, map[string]string{"item_id": id})
	return nil
}

// RestoreItem reversa una eliminación lógica a través de un movimiento RESTORE.
func (uc *ItemUseCase) RestoreItem(ctx context.Context, id, actorID string) error {
	_, err := uc.movements.PostMovement(ctx, MovementInput{
		ItemID:  id,
		Type:    entity.MovementTypeRestore,
		ActorID: actorID,
	})
	if err != nil {
		return err
	}
	uc.events.Publish(ctx, EventItemRestored, map[string]string{"item_id": id})
	return nil
}

// GetItem obtiene un ítem activo por ID.
func (uc *ItemUseCase) GetItem(ctx context.Context, id string) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.IsDeleted() {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// ListItems lista ítems con paginación.
func (uc *ItemUseCase) ListItems(ctx context.Context, includeDeleted bool, limit, offset int) ([]*entity.InventoryItem, error) {
	return uc.itemRepo.List(includeDeleted, limit, offset)
}

// ListLowStock lista consumibles en o bajo su umbral de reorden.
func (uc *ItemUseCase) ListLowStock(ctx context.Context, limit, offset int) ([]*entity.InventoryItem, error) {
	return uc.itemRepo.ListLowStock(limit, offset)
}

// Summary agregados del inventario activo.
func (uc *ItemUseCase) Summary(ctx context.Context) (*repository.StockSummary, error) {
	return uc.itemRepo.Summary()
}

// SetMaintenance pasa un activo fijo disponible o en uso a MAINTENANCE.
func (uc *ItemUseCase) SetMaintenance(ctx context.Context, id string) error {
	return uc.toggleMaintenance(ctx, id, true)
}

// EndMaintenance devuelve un activo en MAINTENANCE a AVAILABLE.
func (uc *ItemUseCase) EndMaintenance(ctx context.Context, id string) error {
	return uc.toggleMaintenance(ctx, id, false)
}

func (uc *ItemUseCase) toggleMaintenance(ctx context.Context, id string, enter bool) error {
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.MovementRepository,
		_ repository.ReservationRepository,
	) error {
		item, err := itemRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if item == nil || item.IsDeleted() {
			return domain.ErrNotFound
		}
		if !item.IsFixedAsset() {
			return domain.ErrInvalidInput
		}
		if enter {
			if item.Status != entity.ItemStatusAvailable && item.Status != entity.ItemStatusInUse {
				return domain.ErrInvalidState
			}
			item.Status = entity.ItemStatusMaintenance
		} else {
			if item.Status != entity.ItemStatusMaintenance {
				return domain.ErrInvalidState
			}
			item.Status = entity.ItemStatusAvailable
		}
		item.UpdatedAt = time.Now()
		return itemRepo.Update(item)
	})
	if err != nil {
		return err
	}
	uc.events.Publish(ctx, EventItemUpdated, map[string]string{"item_id": id})
	return nil
}

// validateReferences verifica que las referencias de catálogo existan.
// Los ids vacíos se omiten (referencias opcionales).
func (uc *ItemUseCase) validateReferences(warehouseID, supplierID, categoryID string) error {
	if warehouseID != "" {
		wh, err := uc.warehouseRepo.GetByID(warehouseID)
		if err != nil {
			return err
		}
		if wh == nil {
			return domain.ErrInvalidReference
		}
	}
	if supplierID != "" {
		sup, err := uc.supplierRepo.GetByID(supplierID)
		if err != nil {
			return err
		}
		if sup == nil {
			return domain.ErrInvalidReference
		}
	}
	if categoryID != "" {
		cat, err := uc.categoryRepo.GetByID(categoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.ErrInvalidReference
		}
	}
	return nil
}
