package inventory

import (
	"strings"

	"github.com/cmoralesv/AgroStock-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Unidades de uso canónicas.
const (
	UsageUnitGrams = "g"   // sólidos
	UsageUnitCm3   = "cm3" // líquidos
)

// Conversion es el resultado de resolver el empaque de un material a su unidad de uso.
// Recognized=false indica que la unidad de empaque no fue reconocida y se asumió
// factor identidad; el caller debe tratarlo como advertencia de calidad de datos.
type Conversion struct {
	Factor     decimal.Decimal // empaque -> unidad de uso
	UsageUnit  string
	Recognized bool
}

var thousand = decimal.NewFromInt(1000)

// ResolveConversion mapea la unidad y cantidad de empaque de un material a su
// equivalente en unidad de uso: sólidos a gramos (kg ×1000), líquidos a cm³
// (l/litro ×1000). Unidades no reconocidas resuelven a factor identidad en lugar
// de fallar. Determinística y sin efectos.
func ResolveConversion(materialKind, packagingUnit string, packagingQuantity decimal.Decimal) Conversion {
	unit := strings.ToLower(strings.TrimSpace(packagingUnit))

	if materialKind == entity.MaterialKindLiquid {
		switch unit {
		case "l", "lt", "litro", "litros":
			return Conversion{Factor: packagingQuantity.Mul(thousand), UsageUnit: UsageUnitCm3, Recognized: true}
		case "ml", "cm3", "cc":
			return Conversion{Factor: packagingQuantity, UsageUnit: UsageUnitCm3, Recognized: true}
		}
		return Conversion{Factor: packagingQuantity, UsageUnit: UsageUnitCm3, Recognized: false}
	}

	// Sólidos (y cualquier otro material) se miden en gramos.
	switch unit {
	case "kg", "kilo", "kilos":
		return Conversion{Factor: packagingQuantity.Mul(thousand), UsageUnit: UsageUnitGrams, Recognized: true}
	case "g", "gr", "gramo", "gramos":
		return Conversion{Factor: packagingQuantity, UsageUnit: UsageUnitGrams, Recognized: true}
	}
	return Conversion{Factor: packagingQuantity, UsageUnit: UsageUnitGrams, Recognized: false}
}
