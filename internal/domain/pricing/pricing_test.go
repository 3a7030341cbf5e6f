package pricing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/inventario-engine/internal/domain"
	"github.com/jhoicas/inventario-engine/internal/domain/entity"
	"github.com/jhoicas/inventario-engine/internal/domain/measurement"
	"github.com/jhoicas/inventario-engine/internal/domain/period"
	"github.com/jhoicas/inventario-engine/internal/domain/pricing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func mustMeasure(t *testing.T, dim measurement.Dimension, v string, u measurement.Unit) measurement.Measurement {
	t.Helper()
	m, err := measurement.New(dim, d(v), u)
	require.NoError(t, err)
	return m
}

func saleLine(t *testing.T, m measurement.Measurement, cost, price string) entity.RelationshipEdge {
	t.Helper()
	return entity.RelationshipEdge{
		ID:            "E1",
		Type:          entity.RelSaleItem,
		PrimaryID:     "S1",
		PrimaryType:   entity.EntitySale,
		SecondaryID:   "I1",
		SecondaryType: entity.EntityItem,
		Measurement:   m,
		PurchasedBy:   m.Dimension(),
		CostPerUnit:   d(cost),
		PricePerUnit:  d(price),
	}
}

var widget = &entity.Item{
	ID: "I1", SKU: "W-1", Name: "Widget", Category: "Tools",
	TrackingType: entity.TrackingQuantity, Price: d("12"), PriceType: entity.PriceTypeEach,
}

// ── Margin ────────────────────────────────────────────────────────────────────

func TestMargin(t *testing.T) {
	assert.True(t, pricing.Margin(d("20"), d("150")).Round(4).Equal(d("0.1333")))
	assert.True(t, pricing.Margin(d("-20"), d("100")).Equal(d("-0.2")))
}

func TestMargin_IngresoCeroDevuelveCero(t *testing.T) {
	assert.True(t, pricing.Margin(d("-5"), decimal.Zero).IsZero())
	assert.True(t, pricing.Margin(d("5"), d("-1")).IsZero())
}

// ── ComputeLine ───────────────────────────────────────────────────────────────

func TestComputeLine_CostoUtilidadYMargen(t *testing.T) {
	ts := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)
	edge := saleLine(t, mustMeasure(t, measurement.DimensionQuantity, "4", ""), "6", "10")

	rec, ok, err := pricing.ComputeLine(pricing.LineInput{
		Edge:        edge,
		Item:        widget,
		Revenue:     pricing.SaleRevenue(edge),
		OccurredAt:  ts,
		Granularity: period.Month,
	})
	require.NoError(t, err)
	require.True(t, ok)

	assert.True(t, rec.Revenue.Equal(d("40")))
	assert.True(t, rec.Cost.Equal(d("24")))
	assert.True(t, rec.Profit.Equal(d("16")))
	assert.True(t, rec.Margin.Equal(d("0.4")))
	assert.Equal(t, "2026-02", rec.PeriodKey)
	assert.Equal(t, "Tools", rec.Category)
	assert.Equal(t, measurement.UnitEach, rec.Unit())
}

func TestComputeLine_ItemInexistenteDevuelveAusente(t *testing.T) {
	edge := saleLine(t, mustMeasure(t, measurement.DimensionQuantity, "1", ""), "1", "1")
	rec, ok, err := pricing.ComputeLine(pricing.LineInput{Edge: edge, Revenue: d("1")})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, rec, "no se devuelve un registro en cero")
}

func TestComputeLine_IngresoCeroNoDivide(t *testing.T) {
	edge := saleLine(t, mustMeasure(t, measurement.DimensionQuantity, "2", ""), "3", "0")
	rec, ok, err := pricing.ComputeLine(pricing.LineInput{Edge: edge, Item: widget})
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, rec.Profit.Equal(d("-6")))
	assert.True(t, rec.Margin.IsZero())
}

func TestComputeLine_PurchasedByDistintoEsError(t *testing.T) {
	edge := saleLine(t, mustMeasure(t, measurement.DimensionQuantity, "2", ""), "3", "1")
	edge.PurchasedBy = measurement.DimensionWeight
	_, _, err := pricing.ComputeLine(pricing.LineInput{Edge: edge, Item: widget})
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

// ── Ingreso ───────────────────────────────────────────────────────────────────

func TestInventoryValue_PorUnidad(t *testing.T) {
	v, err := pricing.InventoryValue(*widget, mustMeasure(t, measurement.DimensionQuantity, "3", ""))
	require.NoError(t, err)
	assert.True(t, v.Equal(d("36")))
}

func TestInventoryValue_PorPesoConvierteALaUnidadDelItem(t *testing.T) {
	coffee := entity.Item{
		ID: "I2", TrackingType: entity.TrackingWeight, WeightUnit: measurement.UnitPound,
		Price: d("8"), PriceType: entity.PricePerWeightUnit,
	}
	// 32 oz = 2 lb → 16
	v, err := pricing.InventoryValue(coffee, mustMeasure(t, measurement.DimensionWeight, "32", measurement.UnitOunce))
	require.NoError(t, err)
	assert.True(t, v.Round(6).Equal(d("16")), "got %s", v)

	_, err = pricing.InventoryValue(coffee, mustMeasure(t, measurement.DimensionLength, "1", measurement.UnitMeter))
	assert.ErrorIs(t, err, domain.ErrIncompatibleDimension)
}

func TestInventoryValue_PorUnidadRechazaPeso(t *testing.T) {
	_, err := pricing.InventoryValue(*widget, mustMeasure(t, measurement.DimensionWeight, "1", measurement.UnitKilogram))
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

// ── Costo promedio ────────────────────────────────────────────────────────────

func TestAverageUnitCost_NormalizaUnidades(t *testing.T) {
	purchases := []entity.RelationshipEdge{
		{Measurement: mustMeasure(t, measurement.DimensionWeight, "1000", measurement.UnitGram), CostPerUnit: d("0.01")}, // 1 kg a 10
		{Measurement: mustMeasure(t, measurement.DimensionWeight, "3", measurement.UnitKilogram), CostPerUnit: d("14")},  // 3 kg a 14
		{Measurement: mustMeasure(t, measurement.DimensionQuantity, "5", ""), CostPerUnit: d("999")},                     // otra dimensión
	}
	perKg, ok := pricing.AverageUnitCost(purchases, measurement.DimensionWeight)
	require.True(t, ok)
	assert.True(t, perKg.Equal(d("13")), "got %s", perKg)

	perLb, err := pricing.UnitCostIn(perKg, measurement.UnitPound)
	require.NoError(t, err)
	assert.True(t, perLb.Equal(d("5.896696")), "got %s", perLb)
}

func TestAverageUnitCost_SinCompras(t *testing.T) {
	_, ok := pricing.AverageUnitCost(nil, measurement.DimensionQuantity)
	assert.False(t, ok)
}
