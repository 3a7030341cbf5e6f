// Package aggregation agrupa los registros derivados por ítem, categoría y período,
// aplica filtros y calcula rankings y el resumen del reporte.
//
// Todas las funciones son puras: no modifican sus entradas ni guardan estado, y pueden
// invocarse de forma concurrente sobre snapshots independientes.
package aggregation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-engine/internal/domain/measurement"
	"github.com/jhoicas/inventario-engine/internal/domain/period"
	"github.com/jhoicas/inventario-engine/internal/domain/pricing"
)

// Uncategorized bucket de los ítems sin categoría; nunca se descartan.
const Uncategorized = "Uncategorized"

// ItemAggregate totales de un ítem sobre todas sus líneas.
type ItemAggregate struct {
	ItemID       string
	ItemName     string
	SKU          string
	Category     string // normalizada (ver CategoryOf)
	TrackingType string
	Amount       measurement.Measurement
	Revenue      decimal.Decimal
	Cost         decimal.Decimal
	Profit       decimal.Decimal
	Margin       decimal.Decimal
	Lines        int
}

// Totals ingreso, costo, utilidad y margen agregados.
type Totals struct {
	Revenue decimal.Decimal
	Cost    decimal.Decimal
	Profit  decimal.Decimal
	Margin  decimal.Decimal
}

// PeriodTotals totales de un bucket de tiempo.
type PeriodTotals struct {
	Period  string
	Revenue decimal.Decimal
	Cost    decimal.Decimal
	Profit  decimal.Decimal
}

// Filter filtros aplicados al agregado por ítem antes de rankings y resumen.
type Filter struct {
	Category        string           // vacío = todas
	ProfitThreshold *decimal.Decimal // nil = sin umbral; se conservan ítems con profit >= umbral
}

// CategoryOf categoría normalizada: vacía o solo espacios → Uncategorized.
func CategoryOf(category string) string {
	if c := strings.TrimSpace(category); c != "" {
		return c
	}
	return Uncategorized
}

// WithinRange registros con OccurredAt en [start, end]. Falla con
// domain.ErrInvalidRange antes de recorrer nada si start > end.
func WithinRange(records []pricing.DerivedLineRecord, start, end time.Time) ([]pricing.DerivedLineRecord, error) {
	if err := period.ValidateRange(start, end); err != nil {
		return nil, err
	}
	out := make([]pricing.DerivedLineRecord, 0, len(records))
	for _, r := range records {
		if period.Contains(r.OccurredAt, start, end) {
			out = append(out, r)
		}
	}
	return out, nil
}

// AggregateItems suma las líneas por ítem en orden de primera aparición. Un ítem con
// líneas de dimensiones distintas es un error (domain.ErrDimensionMismatch).
func AggregateItems(records []pricing.DerivedLineRecord) ([]ItemAggregate, error) {
	index := make(map[string]int)
	out := []ItemAggregate{}
	for _, r := range records {
		i, seen := index[r.ItemID]
		if !seen {
			index[r.ItemID] = len(out)
			out = append(out, ItemAggregate{
				ItemID:       r.ItemID,
				ItemName:     r.ItemName,
				SKU:          r.SKU,
				Category:     CategoryOf(r.Category),
				TrackingType: r.TrackingType,
				Amount:       r.Amount,
				Revenue:      r.Revenue,
				Cost:         r.Cost,
				Profit:       r.Profit,
				Lines:        1,
			})
			continue
		}
		agg := &out[i]
		amount, err := measurement.Add(agg.Amount, r.Amount)
		if err != nil {
			return nil, fmt.Errorf("ítem %s: %w", r.ItemID, err)
		}
		agg.Amount = amount
		agg.Revenue = agg.Revenue.Add(r.Revenue)
		agg.Cost = agg.Cost.Add(r.Cost)
		agg.Profit = agg.Profit.Add(r.Profit)
		agg.Lines++
	}
	for i := range out {
		out[i].Margin = pricing.Margin(out[i].Profit, out[i].Revenue)
	}
	return out, nil
}

// ApplyFilters conserva el orden de entrada.
func ApplyFilters(items []ItemAggregate, f Filter) []ItemAggregate {
	category := ""
	if f.Category != "" {
		category = CategoryOf(f.Category)
	}
	out := make([]ItemAggregate, 0, len(items))
	for _, it := range items {
		if category != "" && !strings.EqualFold(it.Category, category) {
			continue
		}
		if f.ProfitThreshold != nil && it.Profit.LessThan(*f.ProfitThreshold) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// RecordsOf registros que pertenecen a alguno de los ítems dados.
func RecordsOf(records []pricing.DerivedLineRecord, items []ItemAggregate) []pricing.DerivedLineRecord {
	keep := make(map[string]struct{}, len(items))
	for _, it := range items {
		keep[it.ItemID] = struct{}{}
	}
	out := make([]pricing.DerivedLineRecord, 0, len(records))
	for _, r := range records {
		if _, ok := keep[r.ItemID]; ok {
			out = append(out, r)
		}
	}
	return out
}

// RollupByCategory margen por categoría = utilidad/ingreso sumados (no promedio de márgenes).
func RollupByCategory(items []ItemAggregate) map[string]Totals {
	out := make(map[string]Totals)
	for _, it := range items {
		t := out[it.Category]
		t.Revenue = t.Revenue.Add(it.Revenue)
		t.Cost = t.Cost.Add(it.Cost)
		t.Profit = t.Profit.Add(it.Profit)
		out[it.Category] = t
	}
	for k, t := range out {
		t.Margin = pricing.Margin(t.Profit, t.Revenue)
		out[k] = t
	}
	return out
}

// Categories categorías distintas, ordenadas alfabéticamente.
func Categories(items []ItemAggregate) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, it := range items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	sort.Strings(out)
	return out
}

// RollupByTime totales por PeriodKey en orden cronológico (las claves son ordenables).
func RollupByTime(records []pricing.DerivedLineRecord) []PeriodTotals {
	index := make(map[string]int)
	out := []PeriodTotals{}
	for _, r := range records {
		i, ok := index[r.PeriodKey]
		if !ok {
			i = len(out)
			index[r.PeriodKey] = i
			out = append(out, PeriodTotals{Period: r.PeriodKey})
		}
		out[i].Revenue = out[i].Revenue.Add(r.Revenue)
		out[i].Cost = out[i].Cost.Add(r.Cost)
		out[i].Profit = out[i].Profit.Add(r.Profit)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}
