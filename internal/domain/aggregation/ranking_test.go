package aggregation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/inventario-engine/internal/domain/aggregation"
	"github.com/jhoicas/inventario-engine/internal/domain/entity"
	"github.com/jhoicas/inventario-engine/internal/domain/measurement"
	"github.com/jhoicas/inventario-engine/internal/domain/pricing"
)

func TestTopProfitable_EstableEnEmpates(t *testing.T) {
	items, err := aggregation.AggregateItems([]pricing.DerivedLineRecord{
		rec(t, "I1", "A", "10", "5"), // 5
		rec(t, "I2", "A", "30", "0"), // 30
		rec(t, "I3", "A", "7", "2"),  // 5
		rec(t, "I4", "A", "6", "1"),  // 5
	})
	require.NoError(t, err)

	got := aggregation.TopProfitable(items, 3)
	assert.Equal(t, []string{"I2", "I1", "I3"}, ids(got), "empates conservan el orden de entrada")
	assert.Equal(t, []string{"I1", "I2", "I3", "I4"}, ids(items), "la entrada no se modifica")
}

func TestTopProfitable_TamanoPorDefecto(t *testing.T) {
	var records []pricing.DerivedLineRecord
	for i := 0; i < 15; i++ {
		records = append(records, rec(t, string(rune('a'+i)), "A", "1", "0"))
	}
	items, err := aggregation.AggregateItems(records)
	require.NoError(t, err)
	assert.Len(t, aggregation.TopProfitable(items, 0), aggregation.DefaultTopN)
}

func TestTopUnprofitable_MasNegativoPrimero(t *testing.T) {
	items, err := aggregation.AggregateItems([]pricing.DerivedLineRecord{
		rec(t, "I1", "A", "10", "12"), // -2
		rec(t, "I2", "A", "10", "5"),  // 5
		rec(t, "I3", "A", "1", "9"),   // -8
		rec(t, "I4", "A", "5", "5"),   // 0
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"I3", "I1"}, ids(aggregation.TopUnprofitable(items, 10)))
}

func TestRankings_EntradasVaciasOSoloRentables(t *testing.T) {
	empty, err := aggregation.AggregateItems(nil)
	require.NoError(t, err)
	assert.Empty(t, aggregation.TopProfitable(empty, 10))

	s := aggregation.Summarize(empty)
	assert.True(t, s.TotalRevenue.IsZero())
	assert.True(t, s.AverageMargin.IsZero())

	assert.Empty(t, aggregation.TopUnprofitable(scenarioProfitable(t), 10))
}

func scenarioProfitable(t *testing.T) []aggregation.ItemAggregate {
	t.Helper()
	items, err := aggregation.AggregateItems([]pricing.DerivedLineRecord{
		rec(t, "I1", "A", "10", "1"),
		rec(t, "I2", "B", "10", "2"),
	})
	require.NoError(t, err)
	return items
}

// Cantidad y peso nunca se mezclan en un mismo ranking.
func TestTopByQuantityYWeight_NoSeMezclan(t *testing.T) {
	q1 := rec(t, "Q1", "A", "1", "0")
	q1.Amount = count(t, 3)
	q2 := rec(t, "Q2", "A", "1", "0")
	q2.Amount = count(t, 7)

	w1 := rec(t, "W1", "A", "1", "0")
	w1.TrackingType = entity.TrackingWeight
	w1.Amount = weight(t, "2", measurement.UnitPound) // 0.907 kg
	w2 := rec(t, "W2", "A", "1", "0")
	w2.TrackingType = entity.TrackingWeight
	w2.Amount = weight(t, "1", measurement.UnitKilogram)

	items, err := aggregation.AggregateItems([]pricing.DerivedLineRecord{q1, w1, q2, w2})
	require.NoError(t, err)

	assert.Equal(t, []string{"Q2", "Q1"}, ids(aggregation.TopByQuantity(items, 10)))
	assert.Equal(t, []string{"W2", "W1"}, ids(aggregation.TopByWeight(items, 10)), "se compara en unidad base, 1 kg > 2 lb")

	s := aggregation.Summarize(items)
	assert.True(t, s.TotalUnitsSold.Equal(d("10")))
	assert.True(t, s.TotalWeightSold.Equal(d("1.907184")), "got %s", s.TotalWeightSold)
}

func TestSummarize_UtilidadCeroNoCuenta(t *testing.T) {
	items, err := aggregation.AggregateItems([]pricing.DerivedLineRecord{rec(t, "I1", "A", "5", "5")})
	require.NoError(t, err)
	s := aggregation.Summarize(items)
	assert.Zero(t, s.ProfitableItems)
	assert.Zero(t, s.UnprofitableItems)
}

func TestSortByProfit(t *testing.T) {
	got := aggregation.SortByProfit(scenario(t))
	assert.Equal(t, []string{"I3", "I1", "I2"}, ids(got))
}
