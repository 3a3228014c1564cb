package costing

import (
	"github.com/shopspring/decimal"

	"github.com/jfarias/agrolibro-api/internal/domain/entity"
	"github.com/jfarias/agrolibro-api/internal/domain/unit"
)

// Servicio de dominio de costeo: promedio ponderado sobre unidades base.
// Todas las entradas de un insumo se funden en un único promedio móvil;
// no hay capas FIFO/LIFO por decisión de diseño.

// CostPerBase deriva el costo por unidad base a partir de un precio pactado
// en cualquier unidad del catálogo: unitPrice / toBase(1, priceUnit).
func CostPerBase(unitPrice decimal.Decimal, priceUnit unit.Unit) decimal.Decimal {
	base := unit.ToBase(decimal.NewFromInt(1), priceUnit)
	if base.IsZero() {
		return decimal.Zero
	}
	return unitPrice.Div(base)
}

// CostOfMovement calcula el costo de un movimiento cuando el precio está
// pactado en una unidad distinta a la de consumo: convierte la cantidad a
// unidades base y la multiplica por el costo por unidad base.
func CostOfMovement(amount decimal.Decimal, u unit.Unit, unitPrice decimal.Decimal, priceUnit unit.Unit) decimal.Decimal {
	return unit.ToBase(amount, u).Mul(CostPerBase(unitPrice, priceUnit))
}

// Inflow es el resultado de aplicar una entrada al costo promedio.
type Inflow struct {
	BaseQuantity decimal.Decimal // cantidad entrante en unidades base
	Value        decimal.Decimal // valor monetario de la entrada
	NewAverage   decimal.Decimal // nuevo costo promedio por unidad base
}

// WeightedAverageCost recalcula el costo promedio ponderado al ingresar stock:
// NuevoPromedio = (StockActual*CostoActual + EntradaBase*CostoBaseEntrada) / (StockActual + EntradaBase)
// Si la cantidad resultante no es positiva (ítem agotado y nunca repuesto),
// el promedio se conserva para evitar división por cero.
func WeightedAverageCost(currentQty, currentAvg, incomingQty decimal.Decimal, incomingUnit unit.Unit, incomingUnitPrice decimal.Decimal) Inflow {
	baseQty := unit.ToBase(incomingQty, incomingUnit)
	costPerBase := CostPerBase(incomingUnitPrice, incomingUnit)
	value := baseQty.Mul(costPerBase)

	nextQty := currentQty.Add(baseQty)
	if nextQty.LessThanOrEqual(decimal.Zero) {
		return Inflow{BaseQuantity: baseQty, Value: value, NewAverage: currentAvg}
	}
	num := currentQty.Mul(currentAvg).Add(value)
	return Inflow{BaseQuantity: baseQty, Value: value, NewAverage: num.Div(nextQty)}
}

// EffectiveCost devuelve el costo promedio del ítem si es positivo; si no,
// lo deriva de la última compra registrada. Puente de migración para ítems
// creados antes de que existiera el costo promedio.
func EffectiveCost(item entity.Item) decimal.Decimal {
	if item.AverageCost.GreaterThan(decimal.Zero) {
		return item.AverageCost
	}
	lp := item.LastPurchase
	if lp.Price.GreaterThan(decimal.Zero) && lp.PriceUnit.Valid() {
		return CostPerBase(lp.Price, lp.PriceUnit)
	}
	return decimal.Zero
}
