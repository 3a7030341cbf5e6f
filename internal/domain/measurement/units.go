package measurement

import "github.com/shopspring/decimal"

// Dimension tipo físico de una magnitud. Las dimensiones no son comparables entre sí.
type Dimension string

const (
	DimensionQuantity Dimension = "quantity"
	DimensionWeight   Dimension = "weight"
	DimensionLength   Dimension = "length"
	DimensionArea     Dimension = "area"
	DimensionVolume   Dimension = "volume"
)

// Dimensions lista cerrada de dimensiones soportadas.
var Dimensions = []Dimension{
	DimensionQuantity, DimensionWeight, DimensionLength, DimensionArea, DimensionVolume,
}

// Valid indica si d pertenece al conjunto cerrado.
func (d Dimension) Valid() bool {
	_, ok := baseUnits[d]
	return ok
}

// Unit unidad de medida; cada unidad pertenece exactamente a una dimensión.
type Unit string

const (
	UnitEach Unit = "each" // implícita para quantity

	UnitOunce    Unit = "oz"
	UnitPound    Unit = "lb"
	UnitGram     Unit = "g"
	UnitKilogram Unit = "kg"

	UnitInch       Unit = "in"
	UnitFoot       Unit = "ft"
	UnitCentimeter Unit = "cm"
	UnitMeter      Unit = "m"

	UnitSquareFoot  Unit = "sqft"
	UnitSquareMeter Unit = "sqm"

	UnitFluidOunce Unit = "fl_oz"
	UnitGallon     Unit = "gal"
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "l"
)

// unitSpec factor hacia la unidad base de su dimensión: magnitud_base = magnitud * factor.
type unitSpec struct {
	dimension Dimension
	factor    decimal.Decimal
}

var pound = decimal.RequireFromString("0.453592")

// Tablas fijas de conversión. Base: each, kg, m, sqm, l.
var units = map[Unit]unitSpec{
	UnitEach: {DimensionQuantity, decimal.NewFromInt(1)},

	UnitKilogram: {DimensionWeight, decimal.NewFromInt(1)},
	UnitGram:     {DimensionWeight, decimal.RequireFromString("0.001")},
	UnitPound:    {DimensionWeight, pound},
	UnitOunce:    {DimensionWeight, pound.Div(decimal.NewFromInt(16))}, // 1 lb = 16 oz

	UnitMeter:      {DimensionLength, decimal.NewFromInt(1)},
	UnitCentimeter: {DimensionLength, decimal.RequireFromString("0.01")},
	UnitInch:       {DimensionLength, decimal.RequireFromString("0.0254")},
	UnitFoot:       {DimensionLength, decimal.RequireFromString("0.3048")},

	UnitSquareMeter: {DimensionArea, decimal.NewFromInt(1)},
	UnitSquareFoot:  {DimensionArea, decimal.RequireFromString("0.09290304")},

	UnitLiter:      {DimensionVolume, decimal.NewFromInt(1)},
	UnitMilliliter: {DimensionVolume, decimal.RequireFromString("0.001")},
	UnitGallon:     {DimensionVolume, decimal.RequireFromString("3.785411784")},
	UnitFluidOunce: {DimensionVolume, decimal.RequireFromString("0.0295735295625")},
}

var baseUnits = map[Dimension]Unit{
	DimensionQuantity: UnitEach,
	DimensionWeight:   UnitKilogram,
	DimensionLength:   UnitMeter,
	DimensionArea:     UnitSquareMeter,
	DimensionVolume:   UnitLiter,
}

// Dimension devuelve la dimensión dueña de la unidad; false si la unidad no existe.
func (u Unit) Dimension() (Dimension, bool) {
	spec, ok := units[u]
	return spec.dimension, ok
}

// Valid indica si u pertenece al conjunto cerrado de unidades.
func (u Unit) Valid() bool {
	_, ok := units[u]
	return ok
}

// BaseUnit unidad canónica de la dimensión (each, kg, m, sqm, l).
func BaseUnit(d Dimension) Unit {
	return baseUnits[d]
}

// UnitsOf lista las unidades válidas para la dimensión.
func UnitsOf(d Dimension) []Unit {
	var out []Unit
	for _, u := range unitOrder {
		if units[u].dimension == d {
			out = append(out, u)
		}
	}
	return out
}

var unitOrder = []Unit{
	UnitEach,
	UnitOunce, UnitPound, UnitGram, UnitKilogram,
	UnitInch, UnitFoot, UnitCentimeter, UnitMeter,
	UnitSquareFoot, UnitSquareMeter,
	UnitFluidOunce, UnitGallon, UnitMilliliter, UnitLiter,
}
