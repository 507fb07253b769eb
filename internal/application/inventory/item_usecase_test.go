package inventory_test

import (
	"context"
	"testing"

	"github.com/cmoralesv/AgroStock-api/internal/application/inventory"
	"github.com/cmoralesv/AgroStock-api/internal/domain"
	"github.com/cmoralesv/AgroStock-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateItem_DerivaConversionYPosteaAlta(t *testing.T) {
	env := newTestEnv()

	item, err := env.itemUC.CreateItem(context.Background(), inventory.CreateItemInput{
		Name:              "urea granulada",
		MaterialKind:      entity.MaterialKindSolid,
		ItemKind:          entity.ItemKindConsumable,
		PackagingUnit:     "kg",
		PackagingQuantity: decimal.NewFromInt(50),
		InitialPackages:   decimal.NewFromInt(10),
		UnitCostPackaging: decimal.NewFromInt(100000),
		MinStock:          decimal.NewFromInt(50000),
		WarehouseID:       "wh-1",
		SupplierID:        "sup-1",
		CategoryID:        "cat-1",
		ActorID:           "user-1",
	})
	require.NoError(t, err)

	// Bulto de 50 kg -> 50000 g por empaque.
	assert.True(t, item.ConversionFactor.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, "g", item.UsageUnit)
	assert.True(t, item.StockUsage.Equal(decimal.NewFromInt(500000)))
	assert.True(t, item.StockPackaging.Equal(decimal.NewFromInt(10)))
	// 100000 por bulto / 50000 g = 2 por gramo.
	assert.True(t, item.UnitCostUsage.Equal(decimal.NewFromInt(2)))
	assert.True(t, item.InventoryValue.Equal(decimal.NewFromInt(1000000)))
	assert.Equal(t, entity.ItemStatusAvailable, item.Status)

	entries, _ := env.movementUC.ListMovements(context.Background(), item.ID, 10, 0)
	require.Len(t, entries, 1, "el alta produce exactamente una entrada REGISTER")
	assert.Equal(t, entity.MovementTypeRegister, entries[0].Type)
	assert.True(t, entries[0].UsageQty.Equal(decimal.NewFromInt(500000)))
}

func TestCreateItem_LiquidoEnLitros(t *testing.T) {
	env := newTestEnv()

	item, err := env.itemUC.CreateItem(context.Background(), inventory.CreateItemInput{
		Name:              "glifosato",
		MaterialKind:      entity.MaterialKindLiquid,
		ItemKind:          entity.ItemKindConsumable,
		PackagingUnit:     "l",
		PackagingQuantity: decimal.NewFromInt(20),
		InitialPackages:   decimal.NewFromInt(2),
		UnitCostPackaging: decimal.NewFromInt(80000),
		WarehouseID:       "wh-1",
		ActorID:           "user-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "cm3", item.UsageUnit)
	assert.True(t, item.ConversionFactor.Equal(decimal.NewFromInt(20000)))
	assert.True(t, item.StockUsage.Equal(decimal.NewFromInt(40000)))
}

func TestCreateItem_ReferenciaInexistente(t *testing.T) {
	env := newTestEnv()

	_, err := env.itemUC.CreateItem(context.Background(), inventory.CreateItemInput{
		Name:              "abono",
		MaterialKind:      entity.MaterialKindSolid,
		ItemKind:          entity.ItemKindConsumable,
		PackagingUnit:     "kg",
		PackagingQuantity: decimal.NewFromInt(1),
		WarehouseID:       "wh-inexistente",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidReference)

	_, err = env.itemUC.CreateItem(context.Background(), inventory.CreateItemInput{
		Name:              "abono",
		MaterialKind:      entity.MaterialKindSolid,
		ItemKind:          entity.ItemKindConsumable,
		PackagingUnit:     "kg",
		PackagingQuantity: decimal.NewFromInt(1),
		WarehouseID:       "wh-1",
		SupplierID:        "sup-inexistente",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestCreateItem_ActivoFijo(t *testing.T) {
	env := newTestEnv()

	item, err := env.itemUC.CreateItem(context.Background(), inventory.CreateItemInput{
		Name:            "motobomba",
		MaterialKind:    entity.MaterialKindSolid,
		ItemKind:        entity.ItemKindFixedAsset,
		InitialPackages: decimal.NewFromInt(1),
		AcquisitionCost: decimal.NewFromInt(2500000),
		ResidualValue:   decimal.NewFromInt(250000),
		UsefulLifeHours: decimal.NewFromInt(5000),
		WarehouseID:     "wh-1",
		ActorID:         "user-1",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ItemStatusAvailable, item.Status)
	assert.True(t, item.StockUsage.Equal(decimal.NewFromInt(1)))
	assert.True(t, item.ConversionFactor.Equal(decimal.NewFromInt(1)))
	assert.True(t, item.InventoryValue.Equal(decimal.NewFromInt(2500000)))
}

func TestUpdateItem_CambioDeEmpaqueRederivaFactor(t *testing.T) {
	env := newTestEnv()
	env.seedConsumable("it-1", 1000, 2, 0)

	newQty := decimal.NewFromInt(25)
	item, err := env.itemUC.UpdateItem(context.Background(), "it-1", inventory.UpdateItemInput{
		PackagingQuantity: &newQty,
	})
	require.NoError(t, err)
	assert.True(t, item.ConversionFactor.Equal(decimal.NewFromInt(25000)), "25 kg -> 25000 g")
	assert.True(t, item.StockUsage.Equal(decimal.NewFromInt(1000)), "el stock no se toca en updates")
}

func TestUpdateItem_NoParcheaStockNiCosto(t *testing.T) {
	env := newTestEnv()
	env.seedConsumable("it-1", 1000, 2, 0)

	name := "nuevo nombre"
	item, err := env.itemUC.UpdateItem(context.Background(), "it-1", inventory.UpdateItemInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "nuevo nombre", item.Name)
	assert.True(t, item.StockUsage.Equal(decimal.NewFromInt(1000)))
	assert.True(t, item.UnitCostUsage.Equal(decimal.NewFromInt(2)))
}

func TestSoftDelete_Restore(t *testing.T) {
	env := newTestEnv()
	env.seedConsumable("it-1", 100, 5, 0)
	ctx := context.Background()

	require.NoError(t, env.itemUC.SoftDeleteItem(ctx, "it-1", "user-1"))

	_, err := env.itemUC.GetItem(ctx, "it-1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "un ítem eliminado no se lee como activo")

	// El historial del libro sobrevive a la eliminación.
	entries, _ := env.movementUC.ListMovements(ctx, "it-1", 10, 0)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.MovementTypeDelete, entries[0].Type)

	require.NoError(t, env.itemUC.RestoreItem(ctx, "it-1", "user-1"))
	item, err := env.itemUC.GetItem(ctx, "it-1")
	require.NoError(t, err)
	assert.True(t, item.StockUsage.Equal(decimal.NewFromInt(100)), "el stock sobrevive al ciclo delete/restore")
}

func TestMaintenance_Toggles(t *testing.T) {
	env := newTestEnv()
	env.seedAsset("tr-1", 1000, 100, 100)
	env.seedConsumable("it-1", 10, 1, 0)
	ctx := context.Background()

	require.NoError(t, env.itemUC.SetMaintenance(ctx, "tr-1"))
	item, _ := env.items.GetByID("tr-1")
	assert.Equal(t, entity.ItemStatusMaintenance, item.Status)

	// Un activo en mantenimiento no se puede reservar.
	_, err := env.reservationUC.Reserve(ctx, inventory.ReserveInput{
		ItemID: "tr-1", Quantity: decimal.NewFromInt(1), ActorID: "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrAssetUnavailable)

	require.NoError(t, env.itemUC.EndMaintenance(ctx, "tr-1"))
	item, _ = env.items.GetByID("tr-1")
	assert.Equal(t, entity.ItemStatusAvailable, item.Status)

	assert.ErrorIs(t, env.itemUC.SetMaintenance(ctx, "it-1"), domain.ErrInvalidInput,
		"mantenimiento aplica solo a activos fijos")
	assert.ErrorIs(t, env.itemUC.EndMaintenance(ctx, "tr-1"), domain.ErrInvalidState)
}

func TestListLowStock(t *testing.T) {
	env := newTestEnv()
	env.seedConsumable("ok", 1000, 1, 10)
	env.seedConsumable("bajo", 5, 1, 10)

	low, err := env.itemUC.ListLowStock(context.Background(), 50, 0)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "bajo", low[0].ID)
}
