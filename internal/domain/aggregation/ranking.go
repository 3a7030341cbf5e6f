package aggregation

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-engine/internal/domain/entity"
	"github.com/jhoicas/inventario-engine/internal/domain/measurement"
	"github.com/jhoicas/inventario-engine/internal/domain/pricing"
)

// DefaultTopN tamaño de los rankings cuando no se indica.
const DefaultTopN = 10

// Summary totales del conjunto filtrado.
type Summary struct {
	TotalRevenue      decimal.Decimal
	TotalCost         decimal.Decimal
	TotalProfit       decimal.Decimal
	AverageMargin     decimal.Decimal // utilidad total / ingreso total
	TotalUnitsSold    decimal.Decimal // ítems por unidad
	TotalWeightSold   decimal.Decimal // ítems por peso, en kg
	ProfitableItems   int             // profit > 0
	UnprofitableItems int             // profit < 0
}

// Summarize calcula el resumen. Un ítem con profit == 0 no cuenta como rentable ni como no rentable.
func Summarize(items []ItemAggregate) Summary {
	s := Summary{
		TotalRevenue:    decimal.Zero,
		TotalCost:       decimal.Zero,
		TotalProfit:     decimal.Zero,
		TotalUnitsSold:  decimal.Zero,
		TotalWeightSold: decimal.Zero,
	}
	for _, it := range items {
		s.TotalRevenue = s.TotalRevenue.Add(it.Revenue)
		s.TotalCost = s.TotalCost.Add(it.Cost)
		s.TotalProfit = s.TotalProfit.Add(it.Profit)
		switch {
		case it.Profit.IsPositive():
			s.ProfitableItems++
		case it.Profit.IsNegative():
			s.UnprofitableItems++
		}
		switch rankDimension(it) {
		case measurement.DimensionQuantity:
			s.TotalUnitsSold = s.TotalUnitsSold.Add(it.Amount.Magnitude())
		case measurement.DimensionWeight:
			s.TotalWeightSold = s.TotalWeightSold.Add(measurement.ToBase(it.Amount))
		}
	}
	s.AverageMargin = pricing.Margin(s.TotalProfit, s.TotalRevenue)
	return s
}

// TopProfitable ítems por utilidad descendente. n <= 0 usa DefaultTopN.
func TopProfitable(items []ItemAggregate, n int) []ItemAggregate {
	out := clone(items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Profit.GreaterThan(out[j].Profit) })
	return limit(out, n)
}

// TopUnprofitable ítems con profit < 0, del más negativo al menos negativo.
func TopUnprofitable(items []ItemAggregate, n int) []ItemAggregate {
	out := []ItemAggregate{}
	for _, it := range items {
		if it.Profit.IsNegative() {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Profit.LessThan(out[j].Profit) })
	return limit(out, n)
}

// TopByQuantity solo ítems que se siguen por unidad, por unidades vendidas descendente.
func TopByQuantity(items []ItemAggregate, n int) []ItemAggregate {
	out := only(items, measurement.DimensionQuantity)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Magnitude().GreaterThan(out[j].Amount.Magnitude())
	})
	return limit(out, n)
}

// TopByWeight solo ítems que se siguen por peso; compara en unidad base, no por magnitud cruda.
func TopByWeight(items []ItemAggregate, n int) []ItemAggregate {
	out := only(items, measurement.DimensionWeight)
	sort.SliceStable(out, func(i, j int) bool {
		c, _ := measurement.Compare(out[i].Amount, out[j].Amount)
		return c > 0
	})
	return limit(out, n)
}

// SortByProfit copia ordenada por utilidad descendente (orden estable).
func SortByProfit(items []ItemAggregate) []ItemAggregate {
	out := clone(items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Profit.GreaterThan(out[j].Profit) })
	return out
}

// rankDimension dimensión en la que el ítem es comparable; vacía si lo vendido no
// corresponde a su tipo de seguimiento.
func rankDimension(it ItemAggregate) measurement.Dimension {
	if it.Amount == nil {
		return ""
	}
	tracking := entity.Item{TrackingType: it.TrackingType}.TrackingDimension()
	if it.Amount.Dimension() != tracking {
		return ""
	}
	return tracking
}

func only(items []ItemAggregate, dim measurement.Dimension) []ItemAggregate {
	out := []ItemAggregate{}
	for _, it := range items {
		if rankDimension(it) == dim {
			out = append(out, it)
		}
	}
	return out
}

func clone(items []ItemAggregate) []ItemAggregate {
	out := make([]ItemAggregate, len(items))
	copy(out, items)
	return out
}

func limit(items []ItemAggregate, n int) []ItemAggregate {
	if n <= 0 {
		n = DefaultTopN
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}
