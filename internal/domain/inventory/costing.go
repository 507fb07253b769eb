package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost implementa la recomputación de costo promedio ponderado:
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Si el stock resultante es cero o negativo, conserva el costo actual (guardia de división por cero).
func WeightedAverageCost(currentStock, currentCost, incomingQty, incomingCost decimal.Decimal) decimal.Decimal {
	sum := currentStock.Add(incomingQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return currentCost
	}
	num := currentStock.Mul(currentCost).Add(incomingQty.Mul(incomingCost))
	return num.Div(sum)
}

// DepreciationResult resultado de aplicar depreciación por horas de uso a un activo fijo.
type DepreciationResult struct {
	Generated   decimal.Decimal // depreciación generada por este uso
	Accumulated decimal.Decimal // depreciación acumulada resultante
	BookValue   decimal.Decimal // valor en libros: adquisición - acumulada, piso en 0
}

// DepreciatePerUsage calcula la depreciación lineal por horas de uso:
// porHora = (costoAdquisición - valorResidual) / max(vidaÚtilHoras, 1).
// El valor en libros nunca baja de cero aunque la acumulada exceda la base depreciable.
func DepreciatePerUsage(acquisitionCost, residualValue, usefulLifeHours, accumulated, hours decimal.Decimal) DepreciationResult {
	life := usefulLifeHours
	if life.LessThan(decimal.NewFromInt(1)) {
		life = decimal.NewFromInt(1)
	}
	perHour := acquisitionCost.Sub(residualValue).Div(life)
	generated := perHour.Mul(hours)
	newAccumulated := accumulated.Add(generated)

	bookValue := acquisitionCost.Sub(newAccumulated)
	if bookValue.LessThan(decimal.Zero) {
		bookValue = decimal.Zero
	}
	return DepreciationResult{
		Generated:   generated,
		Accumulated: newAccumulated,
		BookValue:   bookValue,
	}
}
