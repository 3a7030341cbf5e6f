// Package pricing deriva, por cada relación de venta, el registro de costo, ingreso,
// utilidad y margen que consume la agregación. Es puro: no guarda estado ni hace I/O.
package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-engine/internal/domain"
	"github.com/jhoicas/inventario-engine/internal/domain/entity"
	"github.com/jhoicas/inventario-engine/internal/domain/inventory"
	"github.com/jhoicas/inventario-engine/internal/domain/measurement"
	"github.com/jhoicas/inventario-engine/internal/domain/period"
)

// DerivedLineRecord resultado de una línea. Efímero: nunca se persiste.
type DerivedLineRecord struct {
	ItemID       string
	ItemName     string
	SKU          string
	Category     string // categoría del ítem tal cual (vacío = sin categoría)
	TrackingType string
	PeriodKey    string
	OccurredAt   time.Time
	Amount       measurement.Measurement // unidades o peso de la línea
	Revenue      decimal.Decimal
	Cost         decimal.Decimal
	Profit       decimal.Decimal
	Margin       decimal.Decimal
}

// Unit unidad en la que está expresada Amount.
func (r DerivedLineRecord) Unit() measurement.Unit {
	if r.Amount == nil {
		return ""
	}
	return r.Amount.Unit()
}

// LineInput datos para calcular una línea. Revenue lo decide el llamador
// (precio de venta × cantidad, o valor de inventario del ítem).
type LineInput struct {
	Edge        entity.RelationshipEdge
	Item        *entity.Item // nil = referencia colgante
	Revenue     decimal.Decimal
	OccurredAt  time.Time
	Granularity period.Granularity
	Location    *time.Location
}

// Margin profit/revenue cuando revenue > 0; cero en otro caso (nunca divide por cero).
// Es la única fórmula de margen: la usan la línea, la categoría y el resumen.
func Margin(profit, revenue decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return profit.Div(revenue)
}

// ComputeLine calcula costo, utilidad y margen de la línea:
//
//	cost   = magnitud(medida, purchasedBy) × costPerUnit
//	profit = revenue − cost
//
// Si el ítem no existe devuelve ok=false sin error; el llamador excluye la línea y la
// cuenta como omitida. Una medida que no corresponde a purchasedBy es un error.
func ComputeLine(in LineInput) (rec *DerivedLineRecord, ok bool, err error) {
	if in.Item == nil {
		return nil, false, nil
	}
	magnitude, err := measurement.MagnitudeIn(in.Edge.Measurement, in.Edge.PurchasedBy)
	if err != nil {
		return nil, false, fmt.Errorf("relación %s: %w", in.Edge.ID, err)
	}

	cost := magnitude.Mul(in.Edge.CostPerUnit)
	profit := in.Revenue.Sub(cost)
	return &DerivedLineRecord{
		ItemID:       in.Item.ID,
		ItemName:     in.Item.Name,
		SKU:          in.Item.SKU,
		Category:     in.Item.Category,
		TrackingType: in.Item.TrackingType,
		PeriodKey:    period.Key(in.OccurredAt, in.Granularity, in.Location),
		OccurredAt:   in.OccurredAt,
		Amount:       in.Edge.Measurement,
		Revenue:      in.Revenue,
		Cost:         cost,
		Profit:       profit,
		Margin:       Margin(profit, in.Revenue),
	}, true, nil
}

// SaleRevenue ingreso de una línea de venta: pricePerUnit × magnitud en la unidad registrada.
func SaleRevenue(e entity.RelationshipEdge) decimal.Decimal {
	if e.Measurement == nil {
		return decimal.Zero
	}
	return e.PricePerUnit.Mul(e.Measurement.Magnitude())
}

// InventoryValue valora m al precio del ítem: price × unidades (each) o
// price × peso convertido a la unidad de peso del ítem (per_weight_unit).
func InventoryValue(item entity.Item, m measurement.Measurement) (decimal.Decimal, error) {
	switch item.PriceType {
	case entity.PricePerWeightUnit:
		if item.WeightUnit == "" {
			return decimal.Zero, fmt.Errorf("%w: el ítem %s se vende por peso y no tiene unidad de peso",
				domain.ErrValidation, item.ID)
		}
		w, err := measurement.Convert(m, item.WeightUnit)
		if err != nil {
			return decimal.Zero, err
		}
		return item.Price.Mul(w.Magnitude()), nil
	default:
		count, err := measurement.MagnitudeIn(m, measurement.DimensionQuantity)
		if err != nil {
			return decimal.Zero, err
		}
		return item.Price.Mul(count), nil
	}
}

// AverageUnitCost costo promedio ponderado por unidad base de dim a partir de las líneas
// de compra, en el orden recibido. Las líneas de otra dimensión se ignoran.
// ok=false si no hay cantidad comprada.
func AverageUnitCost(purchases []entity.RelationshipEdge, dim measurement.Dimension) (perBase decimal.Decimal, ok bool) {
	lots := make([]inventory.Lot, 0, len(purchases))
	for _, e := range purchases {
		if e.Measurement == nil || e.Measurement.Dimension() != dim {
			continue
		}
		base := measurement.ToBase(e.Measurement)
		if !base.IsPositive() {
			continue
		}
		lineCost := e.CostPerUnit.Mul(e.Measurement.Magnitude())
		lots = append(lots, inventory.Lot{Qty: base, UnitCost: lineCost.Div(base)})
	}
	cost, stock := inventory.AverageCost(lots)
	if !stock.IsPositive() {
		return decimal.Zero, false
	}
	return cost, true
}

// UnitCostIn expresa un costo por unidad base en la unidad u
// (p. ej. 10 por kg → 4.53592 por lb).
func UnitCostIn(perBase decimal.Decimal, u measurement.Unit) (decimal.Decimal, error) {
	dim, ok := u.Dimension()
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: unidad desconocida %q", domain.ErrValidation, u)
	}
	one, err := measurement.New(dim, decimal.NewFromInt(1), u)
	if err != nil {
		return decimal.Zero, err
	}
	return perBase.Mul(measurement.ToBase(one)), nil
}
