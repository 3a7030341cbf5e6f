package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost costo promedio ponderado tras una entrada (servicio de dominio).
// NuevoCosto = ((Stock * CostoActual) + (CantEntrada * CostoEntrada)) / (Stock + CantEntrada)
// Si el stock resultante no es positivo devuelve cero.
func WeightedAverageCost(stock, currentCost, incomingQty, incomingCost decimal.Decimal) decimal.Decimal {
	sum := stock.Add(incomingQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stock.Mul(currentCost).Add(incomingQty.Mul(incomingCost))
	return num.Div(sum)
}

// Lot entrada de inventario: cantidad (en unidad base) y costo por esa unidad.
type Lot struct {
	Qty      decimal.Decimal
	UnitCost decimal.Decimal
}

// AverageCost aplica WeightedAverageCost sobre las entradas en orden y devuelve el costo
// promedio y la cantidad acumulada.
func AverageCost(lots []Lot) (cost, stock decimal.Decimal) {
	cost, stock = decimal.Zero, decimal.Zero
	for _, l := range lots {
		cost = WeightedAverageCost(stock, cost, l.Qty, l.UnitCost)
		stock = stock.Add(l.Qty)
	}
	return cost, stock
}
