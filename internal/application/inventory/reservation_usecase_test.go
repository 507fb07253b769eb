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

func TestReserve_ConsumibleIncrementaReservado(t *testing.T) {
	env := newTestEnv()
	env.seedConsumable("it-1", 100, 5, 0)

	res, err := env.reservationUC.Reserve(context.Background(), inventory.ReserveInput{
		ItemID:   "it-1",
		Quantity: decimal.NewFromInt(40),
		Reason:   "fumigación lote 3",
		ActorID:  "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusActive, res.Status)

	item, _ := env.items.GetByID("it-1")
	assert.True(t, item.ReservedUsage.Equal(decimal.NewFromInt(40)))
	assert.True(t, item.StockUsage.Equal(decimal.NewFromInt(100)), "reservar no mueve stock")
}

func TestReserve_MasDeLoDisponibleRechazado(t *testing.T) {
	env := newTestEnv()
	env.seedConsumable("it-1", 100, 5, 0)
	ctx := context.Background()

	_, err := env.reservationUC.Reserve(ctx, inventory.ReserveInput{
		ItemID: "it-1", Quantity: decimal.NewFromInt(70), ActorID: "user-1",
	})
	require.NoError(t, err)

	// Disponible = 100 - 70 = 30; pedir 31 debe fallar.
	_, err = env.reservationUC.Reserve(ctx, inventory.ReserveInput{
		ItemID: "it-1", Quantity: decimal.NewFromInt(31), ActorID: "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestReserve_BajoUmbralMarcaLowStock(t *testing.T) {
	env := newTestEnv()
	env.seedConsumable("it-1", 100, 5, 30)

	_, err := env.reservationUC.Reserve(context.Background(), inventory.ReserveInput{
		ItemID: "it-1", Quantity: decimal.NewFromInt(80), ActorID: "user-1",
	})
	require.NoError(t, err)

	item, _ := env.items.GetByID("it-1")
	assert.Equal(t, entity.ItemStatusLowStock, item.Status)
}

// Ida y vuelta: reservar y liberar deja reservado y stock como estaban.
func TestReserve_Release_RoundTrip(t *testing.T) {
	env := newTestEnv()
	env.seedConsumable("it-1", 100, 5, 0)
	ctx := context.Background()

	before, _ := env.items.GetByID("it-1")
	res, err := env.reservationUC.Reserve(ctx, inventory.ReserveInput{
		ItemID: "it-1", Quantity: decimal.NewFromInt(25), ActorID: "user-1",
	})
	require.NoError(t, err)
	require.NoError(t, env.reservationUC.Release(ctx, res.ID))

	after, _ := env.items.GetByID("it-1")
	assert.True(t, after.StockUsage.Equal(before.StockUsage))
	assert.True(t, after.ReservedUsage.Equal(before.ReservedUsage))
	assert.Empty(t, env.movs.entries, "liberar no escribe en el libro")

	stored, _ := env.res.GetByID(res.ID)
	assert.Equal(t, entity.ReservationStatusReleased, stored.Status)
	assert.NotNil(t, stored.ResolvedAt)
}

func TestRelease_DobleLiberacionRechazada(t *testing.T) {
	env := newTestEnv()
	env.seedConsumable("it-1", 100, 5, 0)
	ctx := context.Background()

	res, err := env.reservationUC.Reserve(ctx, inventory.ReserveInput{
		ItemID: "it-1", Quantity: decimal.NewFromInt(10), ActorID: "user-1",
	})
	require.NoError(t, err)
	require.NoError(t, env.reservationUC.Release(ctx, res.ID))

	err = env.reservationUC.Release(ctx, res.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "los estados terminales son finales")
}

// Consumo: reservar y usar descuenta el stock exactamente por la cantidad y deja
// exactamente una entrada RESERVATION_USE en el libro.
func TestUse_ConsumeLaReserva(t *testing.T) {
	env := newTestEnv()
	env.seedConsumable("it-1", 100, 5, 0)
	ctx := context.Background()

	res, err := env.reservationUC.Reserve(ctx, inventory.ReserveInput{
		ItemID:     "it-1",
		Quantity:   decimal.NewFromInt(35),
		ActorID:    "user-1",
		ActivityID: "act-7",
	})
	require.NoError(t, err)

	entry, err := env.reservationUC.Use(ctx, res.ID)
	require.NoError(t, err)

	item, _ := env.items.GetByID("it-1")
	assert.True(t, item.StockUsage.Equal(decimal.NewFromInt(65)))
	assert.True(t, item.ReservedUsage.IsZero())

	require.Len(t, env.movs.entries, 1)
	assert.Equal(t, entity.MovementTypeReservationUse, entry.Type)
	assert.True(t, entry.UsageQty.Equal(decimal.NewFromInt(-35)))
	assert.Equal(t, "act-7", entry.ActivityID, "la entrada referencia la actividad de la reserva")

	stored, _ := env.res.GetByID(res.ID)
	assert.Equal(t, entity.ReservationStatusUsed, stored.Status)

	// Una reserva usada no se puede usar ni liberar de nuevo.
	_, err = env.reservationUC.Use(ctx, res.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.ErrorIs(t, env.reservationUC.Release(ctx, res.ID), domain.ErrInvalidState)
}

func TestReserve_ActivoFijoUnico(t *testing.T) {
	env := newTestEnv()
	env.seedAsset("tr-1", 1000, 100, 100)
	ctx := context.Background()

	res, err := env.reservationUC.Reserve(ctx, inventory.ReserveInput{
		ItemID: "tr-1", Quantity: decimal.NewFromInt(1), ActorID: "user-1",
	})
	require.NoError(t, err)

	item, _ := env.items.GetByID("tr-1")
	assert.Equal(t, entity.ItemStatusReserved, item.Status)
	assert.True(t, item.ReservedUsage.Equal(decimal.NewFromInt(1)))

	// Un activo ya reservado no está disponible.
	_, err = env.reservationUC.Reserve(ctx, inventory.ReserveInput{
		ItemID: "tr-1", Quantity: decimal.NewFromInt(1), ActorID: "user-2",
	})
	assert.ErrorIs(t, err, domain.ErrAssetUnavailable)

	// Liberarlo lo devuelve a AVAILABLE.
	require.NoError(t, env.reservationUC.Release(ctx, res.ID))
	item, _ = env.items.GetByID("tr-1")
	assert.Equal(t, entity.ItemStatusAvailable, item.Status)
	assert.True(t, item.ReservedUsage.IsZero())
}

func TestUse_ActivoFijoPasaAEnUso(t *testing.T) {
	env := newTestEnv()
	env.seedAsset("tr-1", 1000, 100, 100)
	ctx := context.Background()

	res, err := env.reservationUC.Reserve(ctx, inventory.ReserveInput{
		ItemID: "tr-1", Quantity: decimal.NewFromInt(1), ActorID: "user-1",
	})
	require.NoError(t, err)

	_, err = env.reservationUC.Use(ctx, res.ID)
	require.NoError(t, err)

	item, _ := env.items.GetByID("tr-1")
	assert.Equal(t, entity.ItemStatusInUse, item.Status)
}

func TestReserve_ReservaInexistente(t *testing.T) {
	env := newTestEnv()
	assert.ErrorIs(t, env.reservationUC.Release(context.Background(), "no-existe"), domain.ErrNotFound)
	_, err := env.reservationUC.Use(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
