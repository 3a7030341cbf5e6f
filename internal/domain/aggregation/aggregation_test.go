package aggregation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/inventario-engine/internal/domain"
	"github.com/jhoicas/inventario-engine/internal/domain/aggregation"
	"github.com/jhoicas/inventario-engine/internal/domain/entity"
	"github.com/jhoicas/inventario-engine/internal/domain/measurement"
	"github.com/jhoicas/inventario-engine/internal/domain/pricing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func count(t *testing.T, n int64) measurement.Measurement {
	t.Helper()
	q, err := measurement.NewQuantity(decimal.NewFromInt(n))
	require.NoError(t, err)
	return q
}

func weight(t *testing.T, v string, u measurement.Unit) measurement.Measurement {
	t.Helper()
	w, err := measurement.NewWeight(d(v), u)
	require.NoError(t, err)
	return w
}

func rec(t *testing.T, itemID, category, revenue, cost string) pricing.DerivedLineRecord {
	t.Helper()
	rv, c := d(revenue), d(cost)
	return pricing.DerivedLineRecord{
		ItemID:       itemID,
		ItemName:     "Item " + itemID,
		Category:     category,
		TrackingType: entity.TrackingQuantity,
		PeriodKey:    "2026-01",
		OccurredAt:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Amount:       count(t, 1),
		Revenue:      rv,
		Cost:         c,
		Profit:       rv.Sub(c),
		Margin:       pricing.Margin(rv.Sub(c), rv),
	}
}

func ids(items []aggregation.ItemAggregate) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ItemID)
	}
	return out
}

// scenario: A(100/60), A(50/70), B(200/100), cada línea un ítem distinto.
func scenario(t *testing.T) []aggregation.ItemAggregate {
	t.Helper()
	items, err := aggregation.AggregateItems([]pricing.DerivedLineRecord{
		rec(t, "I1", "A", "100", "60"),
		rec(t, "I2", "A", "50", "70"),
		rec(t, "I3", "B", "200", "100"),
	})
	require.NoError(t, err)
	return items
}

// ── Categorías ────────────────────────────────────────────────────────────────

func TestRollupByCategory_Escenario(t *testing.T) {
	byCat := aggregation.RollupByCategory(scenario(t))

	a := byCat["A"]
	assert.True(t, a.Revenue.Equal(d("150")))
	assert.True(t, a.Cost.Equal(d("130")))
	assert.True(t, a.Profit.Equal(d("20")))
	assert.True(t, a.Margin.Round(4).Equal(d("0.1333")), "margen agregado, no promedio: %s", a.Margin)

	b := byCat["B"]
	assert.True(t, b.Profit.Equal(d("100")))
	assert.True(t, b.Margin.Equal(d("0.5")))
}

func TestSummarize_Escenario(t *testing.T) {
	s := aggregation.Summarize(scenario(t))
	assert.True(t, s.TotalProfit.Equal(d("120")))
	assert.True(t, s.TotalRevenue.Equal(d("350")))
	assert.True(t, s.AverageMargin.Round(4).Equal(d("0.3429")), "got %s", s.AverageMargin)
	assert.Equal(t, 2, s.ProfitableItems)
	assert.Equal(t, 1, s.UnprofitableItems)
	assert.True(t, s.TotalUnitsSold.Equal(d("3")))
}

// Las categorías particionan exactamente el conjunto: sus sumas coinciden con el resumen.
func TestRollupByCategory_ParticionaElResumen(t *testing.T) {
	items, err := aggregation.AggregateItems([]pricing.DerivedLineRecord{
		rec(t, "I1", "A", "10.10", "3"),
		rec(t, "I2", "", "7", "9.99"),
		rec(t, "I3", "  ", "1", "0"),
		rec(t, "I4", "B", "0", "4"),
		rec(t, "I1", "A", "2.5", "1"),
	})
	require.NoError(t, err)

	s := aggregation.Summarize(items)
	revenue, profit := decimal.Zero, decimal.Zero
	for _, tot := range aggregation.RollupByCategory(items) {
		revenue = revenue.Add(tot.Revenue)
		profit = profit.Add(tot.Profit)
	}
	assert.True(t, revenue.Equal(s.TotalRevenue))
	assert.True(t, profit.Equal(s.TotalProfit))
}

func TestCategoryOf_SinCategoriaEsUncategorized(t *testing.T) {
	assert.Equal(t, aggregation.Uncategorized, aggregation.CategoryOf(""))
	assert.Equal(t, aggregation.Uncategorized, aggregation.CategoryOf("   "))
	assert.Equal(t, "Tools", aggregation.CategoryOf(" Tools "))
}

func TestCategories_Ordenadas(t *testing.T) {
	items, err := aggregation.AggregateItems([]pricing.DerivedLineRecord{
		rec(t, "I1", "Zeta", "1", "0"),
		rec(t, "I2", "", "1", "0"),
		rec(t, "I3", "Alfa", "1", "0"),
		rec(t, "I4", "Zeta", "1", "0"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alfa", aggregation.Uncategorized, "Zeta"}, aggregation.Categories(items))
}

// ── Ítems ─────────────────────────────────────────────────────────────────────

func TestAggregateItems_SumaPorItemEnOrdenDeAparicion(t *testing.T) {
	r2 := rec(t, "I2", "A", "5", "1")
	r1a := rec(t, "I1", "A", "10", "4")
	r1b := rec(t, "I1", "A", "10", "4")
	r1b.Amount = count(t, 2)

	items, err := aggregation.AggregateItems([]pricing.DerivedLineRecord{r2, r1a, r1b})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, []string{"I2", "I1"}, ids(items))

	i1 := items[1]
	assert.Equal(t, 2, i1.Lines)
	assert.True(t, i1.Amount.Magnitude().Equal(d("3")))
	assert.True(t, i1.Profit.Equal(d("12")))
	assert.True(t, i1.Margin.Equal(d("0.6")))
}

func TestAggregateItems_PesoEnDistintasUnidades(t *testing.T) {
	a := rec(t, "W1", "Café", "10", "5")
	a.TrackingType = entity.TrackingWeight
	a.Amount = weight(t, "1", measurement.UnitKilogram)
	b := a
	b.Amount = weight(t, "500", measurement.UnitGram)

	items, err := aggregation.AggregateItems([]pricing.DerivedLineRecord{a, b})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, measurement.UnitKilogram, items[0].Amount.Unit())
	assert.True(t, items[0].Amount.Magnitude().Equal(d("1.5")))
}

func TestAggregateItems_DimensionesMezcladasEsError(t *testing.T) {
	a := rec(t, "I1", "A", "1", "0")
	b := rec(t, "I1", "A", "1", "0")
	b.Amount = weight(t, "1", measurement.UnitKilogram)

	_, err := aggregation.AggregateItems([]pricing.DerivedLineRecord{a, b})
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch, "nunca se convierte a cero")
}

// ── Filtros ───────────────────────────────────────────────────────────────────

func TestApplyFilters_CategoriaYUmbral(t *testing.T) {
	items := scenario(t)

	onlyA := aggregation.ApplyFilters(items, aggregation.Filter{Category: "a"})
	assert.Equal(t, []string{"I1", "I2"}, ids(onlyA))

	threshold := d("40")
	rich := aggregation.ApplyFilters(items, aggregation.Filter{ProfitThreshold: &threshold})
	assert.Equal(t, []string{"I1", "I3"}, ids(rich), "profit >= umbral se conserva")

	s := aggregation.Summarize(aggregation.ApplyFilters(items, aggregation.Filter{Category: "A", ProfitThreshold: &threshold}))
	assert.True(t, s.TotalRevenue.Equal(d("100")), "el resumen refleja solo el conjunto filtrado")
}

func TestApplyFilters_FiltraUncategorized(t *testing.T) {
	items, err := aggregation.AggregateItems([]pricing.DerivedLineRecord{
		rec(t, "I1", "", "1", "0"),
		rec(t, "I2", "A", "1", "0"),
	})
	require.NoError(t, err)
	got := aggregation.ApplyFilters(items, aggregation.Filter{Category: aggregation.Uncategorized})
	assert.Equal(t, []string{"I1"}, ids(got))
}

// ── Tiempo ────────────────────────────────────────────────────────────────────

func TestWithinRange_InclusivoYValidaRango(t *testing.T) {
	r1 := rec(t, "I1", "A", "1", "0")
	r1.OccurredAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r2 := rec(t, "I2", "A", "1", "0")
	r2.OccurredAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	got, err := aggregation.WithinRange([]pricing.DerivedLineRecord{r1, r2}, r1.OccurredAt, r1.OccurredAt)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "I1", got[0].ItemID)

	_, err = aggregation.WithinRange(nil, r2.OccurredAt, r1.OccurredAt)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestRollupByTime_OrdenCronologico(t *testing.T) {
	a := rec(t, "I1", "A", "10", "5")
	a.PeriodKey = "2026-03"
	b := rec(t, "I2", "A", "20", "5")
	b.PeriodKey = "2026-01"
	c := rec(t, "I3", "B", "1", "1")
	c.PeriodKey = "2026-03"

	got := aggregation.RollupByTime([]pricing.DerivedLineRecord{a, b, c})
	require.Len(t, got, 2)
	assert.Equal(t, "2026-01", got[0].Period)
	assert.Equal(t, "2026-03", got[1].Period)
	assert.True(t, got[1].Revenue.Equal(d("11")))
	assert.True(t, got[1].Profit.Equal(d("5")))
}

func TestRecordsOf(t *testing.T) {
	records := []pricing.DerivedLineRecord{rec(t, "I1", "A", "1", "0"), rec(t, "I2", "B", "1", "0")}
	items, err := aggregation.AggregateItems(records)
	require.NoError(t, err)
	got := aggregation.RecordsOf(records, aggregation.ApplyFilters(items, aggregation.Filter{Category: "B"}))
	require.Len(t, got, 1)
	assert.Equal(t, "I2", got[0].ItemID)
}
