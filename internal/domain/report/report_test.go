package report_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/inventario-engine/internal/domain"
	"github.com/jhoicas/inventario-engine/internal/domain/aggregation"
	"github.com/jhoicas/inventario-engine/internal/domain/entity"
	"github.com/jhoicas/inventario-engine/internal/domain/measurement"
	"github.com/jhoicas/inventario-engine/internal/domain/period"
	"github.com/jhoicas/inventario-engine/internal/domain/pricing"
	"github.com/jhoicas/inventario-engine/internal/domain/report"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(t *testing.T, itemID, name, category, revenue, cost string, amount measurement.Measurement, at time.Time) pricing.DerivedLineRecord {
	t.Helper()
	rv, c := d(revenue), d(cost)
	tracking := entity.TrackingQuantity
	if amount.Dimension() == measurement.DimensionWeight {
		tracking = entity.TrackingWeight
	}
	return pricing.DerivedLineRecord{
		ItemID:       itemID,
		ItemName:     name,
		SKU:          "SKU-" + itemID,
		Category:     category,
		TrackingType: tracking,
		PeriodKey:    period.Key(at, period.Month, nil),
		OccurredAt:   at,
		Amount:       amount,
		Revenue:      rv,
		Cost:         c,
		Profit:       rv.Sub(c),
		Margin:       pricing.Margin(rv.Sub(c), rv),
	}
}

func units(t *testing.T, n int64) measurement.Measurement {
	t.Helper()
	q, err := measurement.NewQuantity(decimal.NewFromInt(n))
	require.NoError(t, err)
	return q
}

func kilos(t *testing.T, v string) measurement.Measurement {
	t.Helper()
	w, err := measurement.NewWeight(d(v), measurement.UnitKilogram)
	require.NoError(t, err)
	return w
}

var (
	jan = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	feb = time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
)

func sample(t *testing.T) []pricing.DerivedLineRecord {
	t.Helper()
	return []pricing.DerivedLineRecord{
		line(t, "I1", "Martillo", "A", "100", "60", units(t, 2), jan),
		line(t, "I2", "Clavos", "A", "50", "70", units(t, 5), feb),
		line(t, "I3", "Café", "B", "200", "100", kilos(t, "1.5"), feb),
	}
}

func TestAssemble_Escenario(t *testing.T) {
	rep, err := report.Assemble(sample(t), report.Params{Granularity: period.Month, SkippedLines: 2})
	require.NoError(t, err)

	assert.True(t, rep.Summary.TotalProfit.Equal(d("120")))
	assert.True(t, rep.Summary.AverageMargin.Round(4).Equal(d("0.3429")))
	assert.Equal(t, 2, rep.Summary.ProfitableItems)
	assert.Equal(t, 1, rep.Summary.UnprofitableItems)
	assert.True(t, rep.ProfitByCategory["A"].Margin.Round(4).Equal(d("0.1333")))
	assert.Equal(t, []string{"A", "B"}, rep.Categories)
	assert.Equal(t, 2, rep.SkippedLines)
	assert.Equal(t, period.Month, rep.Granularity)

	require.Len(t, rep.ProfitByTime, 2)
	assert.Equal(t, "2026-01", rep.ProfitByTime[0].Period)
	assert.True(t, rep.ProfitByTime[1].Profit.Equal(d("80")))

	require.Len(t, rep.Items, 3)
	assert.Equal(t, "I3", rep.Items[0].ItemID, "ítems por utilidad descendente")
	require.Len(t, rep.TopUnprofitable, 1)
	assert.Equal(t, "I2", rep.TopUnprofitable[0].ItemID)
	require.Len(t, rep.TopByWeight, 1)
	assert.Len(t, rep.TopByQuantity, 2)
}

// Los filtros cambian todos los números de forma consistente; la lista de categorías no.
func TestAssemble_FiltrosAntesDeResumenYRankings(t *testing.T) {
	rep, err := report.Assemble(sample(t), report.Params{
		Granularity: period.Month,
		Filter:      aggregation.Filter{Category: "A"},
	})
	require.NoError(t, err)

	assert.True(t, rep.Summary.TotalRevenue.Equal(d("150")))
	assert.True(t, rep.Summary.TotalProfit.Equal(d("20")))
	assert.Len(t, rep.ProfitByCategory, 1)
	assert.Empty(t, rep.TopByWeight)
	assert.Equal(t, []string{"A", "B"}, rep.Categories, "el selector de categorías muestra todas")

	var timeRevenue decimal.Decimal
	for _, p := range rep.ProfitByTime {
		timeRevenue = timeRevenue.Add(p.Revenue)
	}
	assert.True(t, timeRevenue.Equal(rep.Summary.TotalRevenue))
}

func TestAssemble_Idempotente(t *testing.T) {
	records := sample(t)
	threshold := d("-100")
	params := report.Params{Granularity: period.Week, Filter: aggregation.Filter{ProfitThreshold: &threshold}, TopN: 2}

	first, err := report.Assemble(records, params)
	require.NoError(t, err)
	second, err := report.Assemble(records, params)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// la salida no comparte estado con llamadas posteriores
	first.ProfitByCategory["A"] = aggregation.Totals{}
	third, err := report.Assemble(records, params)
	require.NoError(t, err)
	assert.Equal(t, second, third)
}

func TestAssemble_SinRegistros(t *testing.T) {
	rep, err := report.Assemble(nil, report.Params{Granularity: period.Month})
	require.NoError(t, err)
	assert.True(t, rep.Summary.TotalRevenue.IsZero())
	assert.True(t, rep.Summary.AverageMargin.IsZero())
	assert.Empty(t, rep.TopProfitable)
	assert.Empty(t, rep.Items)
	assert.Empty(t, rep.Categories)
}

func TestAssemble_DimensionesMezcladasFalla(t *testing.T) {
	records := []pricing.DerivedLineRecord{
		line(t, "I1", "X", "A", "1", "0", units(t, 1), jan),
		line(t, "I1", "X", "A", "1", "0", kilos(t, "1"), jan),
	}
	_, err := report.Assemble(records, report.Params{})
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

// ── Tabla / CSV ───────────────────────────────────────────────────────────────

func TestTableRows_Formato(t *testing.T) {
	rep, err := report.Assemble(sample(t), report.Params{Granularity: period.Month})
	require.NoError(t, err)

	rows := report.TableRows(rep)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Café", "SKU-I3", "B", "1.5 kg", "200.00", "100.00", "100.00", "50.00"}, rows[0])
	assert.Equal(t, []string{"Clavos", "SKU-I2", "A", "5", "50.00", "70.00", "-20.00", "-40.00"}, rows[2])
}

func TestWriteCSV(t *testing.T) {
	rep, err := report.Assemble(sample(t), report.Params{Granularity: period.Month})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, rep))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Item", "SKU", "Category", "Units Sold", "Revenue", "Cost", "Profit", "Margin (%)"}, records[0])
	assert.Equal(t, "Martillo", records[2][0])
	assert.Equal(t, "40.00", records[2][7])
}
