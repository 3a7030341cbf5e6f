// Package report arma el reporte de rentabilidad a partir de los registros derivados
// y ofrece su proyección tabular (CSV).
package report

import (
	"github.com/jhoicas/inventario-engine/internal/domain/aggregation"
	"github.com/jhoicas/inventario-engine/internal/domain/period"
	"github.com/jhoicas/inventario-engine/internal/domain/pricing"
)

// Params parámetros de armado. TopN <= 0 usa aggregation.DefaultTopN.
type Params struct {
	Granularity  period.Granularity
	Filter       aggregation.Filter
	TopN         int
	SkippedLines int // líneas excluidas antes del armado (referencias colgantes o inválidas)
}

// Report resultado inmutable; cada llamada a Assemble produce uno nuevo.
type Report struct {
	Summary          aggregation.Summary
	Items            []aggregation.ItemAggregate // utilidad descendente
	ProfitByCategory map[string]aggregation.Totals
	ProfitByTime     []aggregation.PeriodTotals
	Categories       []string // todas las categorías del rango, sin filtrar
	TopProfitable    []aggregation.ItemAggregate
	TopUnprofitable  []aggregation.ItemAggregate
	TopByQuantity    []aggregation.ItemAggregate
	TopByWeight      []aggregation.ItemAggregate
	SkippedLines     int
	Granularity      period.Granularity
}

// Assemble función pura: sin I/O ni efectos; con la misma entrada produce la misma salida.
// Los registros ya vienen restringidos al rango de fechas. Los filtros se aplican al
// agregado por ítem antes del resumen, las agrupaciones y los rankings.
func Assemble(records []pricing.DerivedLineRecord, p Params) (Report, error) {
	all, err := aggregation.AggregateItems(records)
	if err != nil {
		return Report{}, err
	}
	items := aggregation.ApplyFilters(all, p.Filter)

	return Report{
		Summary:          aggregation.Summarize(items),
		Items:            aggregation.SortByProfit(items),
		ProfitByCategory: aggregation.RollupByCategory(items),
		ProfitByTime:     aggregation.RollupByTime(aggregation.RecordsOf(records, items)),
		Categories:       aggregation.Categories(all),
		TopProfitable:    aggregation.TopProfitable(items, p.TopN),
		TopUnprofitable:  aggregation.TopUnprofitable(items, p.TopN),
		TopByQuantity:    aggregation.TopByQuantity(items, p.TopN),
		TopByWeight:      aggregation.TopByWeight(items, p.TopN),
		SkippedLines:     p.SkippedLines,
		Granularity:      p.Granularity,
	}, nil
}
