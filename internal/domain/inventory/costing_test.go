package inventory_test

import (
	"testing"

	"github.com/cmoralesv/AgroStock-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Vector exacto del promedio ponderado: stock=100 @ 10, entrada de 50 @ 16
// => (100*10 + 50*16) / 150 = 12.0 exacto.
func TestWeightedAverageCost_VectorExacto(t *testing.T) {
	got := inventory.WeightedAverageCost(
		decimal.NewFromInt(100), decimal.NewFromInt(10),
		decimal.NewFromInt(50), decimal.NewFromInt(16),
	)
	require.True(t, got.Equal(decimal.NewFromInt(12)), "esperado 12.0, obtenido %s", got)
}

func TestWeightedAverageCost_StockCeroTomaCostoEntrada(t *testing.T) {
	got := inventory.WeightedAverageCost(
		decimal.Zero, decimal.Zero,
		decimal.NewFromInt(30), decimal.NewFromFloat(2.5),
	)
	assert.True(t, got.Equal(decimal.NewFromFloat(2.5)))
}

func TestWeightedAverageCost_SumaCeroConservaCostoActual(t *testing.T) {
	current := decimal.NewFromInt(7)
	got := inventory.WeightedAverageCost(decimal.Zero, current, decimal.Zero, decimal.NewFromInt(99))
	assert.True(t, got.Equal(current), "con stock resultante 0 no debe recalcular")
}

func TestDepreciatePerUsage_AgotaVidaUtil(t *testing.T) {
	// acquisitionCost=1000, residual=100, vida=100h, uso=100h
	// => porHora = 9, generada = 900, acumulada = 900, libros = 100.
	res := inventory.DepreciatePerUsage(
		decimal.NewFromInt(1000), decimal.NewFromInt(100),
		decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(100),
	)
	assert.True(t, res.Generated.Equal(decimal.NewFromInt(900)), "generada: %s", res.Generated)
	assert.True(t, res.Accumulated.Equal(decimal.NewFromInt(900)))
	assert.True(t, res.BookValue.Equal(decimal.NewFromInt(100)))
}

func TestDepreciatePerUsage_ValorLibrosNuncaNegativo(t *testing.T) {
	// Acumulada ya casi completa; un uso grande no puede dejar libros < 0.
	res := inventory.DepreciatePerUsage(
		decimal.NewFromInt(1000), decimal.Zero,
		decimal.NewFromInt(10), decimal.NewFromInt(950), decimal.NewFromInt(5),
	)
	assert.True(t, res.BookValue.Equal(decimal.Zero), "libros: %s", res.BookValue)
	assert.True(t, res.Accumulated.GreaterThan(decimal.NewFromInt(1000)))
}

func TestDepreciatePerUsage_VidaUtilCeroUsaPisoDeUnaHora(t *testing.T) {
	res := inventory.DepreciatePerUsage(
		decimal.NewFromInt(500), decimal.Zero,
		decimal.Zero, decimal.Zero, decimal.NewFromInt(1),
	)
	// Con vida útil 0 el divisor se fija en 1: toda la base se deprecia en una hora.
	assert.True(t, res.Generated.Equal(decimal.NewFromInt(500)))
	assert.True(t, res.BookValue.Equal(decimal.Zero))
}
