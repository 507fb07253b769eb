package inventory_test

import (
	"testing"

	"github.com/cmoralesv/AgroStock-api/internal/domain/entity"
	"github.com/cmoralesv/AgroStock-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestResolveConversion(t *testing.T) {
	cases := []struct {
		name         string
		materialKind string
		unit         string
		qty          int64
		wantFactor   int64
		wantUnit     string
		recognized   bool
	}{
		{"bulto de 50 kg", entity.MaterialKindSolid, "kg", 50, 50000, inventory.UsageUnitGrams, true},
		{"kg con mayúsculas y espacios", entity.MaterialKindSolid, " KG ", 25, 25000, inventory.UsageUnitGrams, true},
		{"gramos directos", entity.MaterialKindSolid, "g", 500, 500, inventory.UsageUnitGrams, true},
		{"garrafa de 20 litros", entity.MaterialKindLiquid, "l", 20, 20000, inventory.UsageUnitCm3, true},
		{"litro en español", entity.MaterialKindLiquid, "litro", 4, 4000, inventory.UsageUnitCm3, true},
		{"mililitros", entity.MaterialKindLiquid, "ml", 750, 750, inventory.UsageUnitCm3, true},
		{"cm3 explícito", entity.MaterialKindLiquid, "cm3", 100, 100, inventory.UsageUnitCm3, true},
		{"unidad desconocida sólido: identidad", entity.MaterialKindSolid, "bulto", 10, 10, inventory.UsageUnitGrams, false},
		{"unidad desconocida líquido: identidad", entity.MaterialKindLiquid, "caneca", 5, 5, inventory.UsageUnitCm3, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.ResolveConversion(tc.materialKind, tc.unit, decimal.NewFromInt(tc.qty))
			assert.True(t, got.Factor.Equal(decimal.NewFromInt(tc.wantFactor)),
				"factor esperado %d, obtenido %s", tc.wantFactor, got.Factor)
			assert.Equal(t, tc.wantUnit, got.UsageUnit)
			assert.Equal(t, tc.recognized, got.Recognized)
		})
	}
}
