// Package measurement modela magnitudes físicas con unidad (cantidad, peso, longitud,
// área y volumen) como un tipo suma: una variante por dimensión, cada una solo con los
// campos válidos para ella. Los valores son inmutables; convertir o sumar produce
// una instancia nueva.
package measurement

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-engine/internal/domain"
)

// Precision decimales del único redondeo que aplica Convert (al salir de la unidad base).
const Precision int32 = 10

// Tolerance diferencia máxima en unidad base para considerar dos medidas iguales.
var Tolerance = decimal.New(1, -8)

// Measurement magnitud no negativa en exactamente una dimensión.
// Solo la implementan Quantity, Weight, Length, Area y Volume.
type Measurement interface {
	Dimension() Dimension
	Magnitude() decimal.Decimal
	Unit() Unit
	String() string
	isMeasurement()
}

// scalar magnitud + unidad compartida por las variantes con unidad explícita.
type scalar struct {
	value decimal.Decimal
	unit  Unit
}

func (s scalar) Magnitude() decimal.Decimal { return s.value }
func (s scalar) Unit() Unit                 { return s.unit }
func (s scalar) String() string             { return s.value.String() + " " + string(s.unit) }
func (scalar) isMeasurement()               {}

// Quantity conteo de unidades ("each"); no lleva unidad explícita.
type Quantity struct {
	count decimal.Decimal
}

func (Quantity) Dimension() Dimension         { return DimensionQuantity }
func (q Quantity) Magnitude() decimal.Decimal { return q.count }
func (Quantity) Unit() Unit                   { return UnitEach }
func (q Quantity) String() string             { return q.count.String() }
func (Quantity) isMeasurement()               {}

// Weight peso en oz, lb, g o kg.
type Weight struct{ scalar }

func (Weight) Dimension() Dimension { return DimensionWeight }

// Length longitud en in, ft, cm o m.
type Length struct{ scalar }

func (Length) Dimension() Dimension { return DimensionLength }

// Area área en sqft o sqm.
type Area struct{ scalar }

func (Area) Dimension() Dimension { return DimensionArea }

// Volume volumen en fl_oz, gal, ml o l.
type Volume struct{ scalar }

func (Volume) Dimension() Dimension { return DimensionVolume }

// NewQuantity construye un conteo; falla si es negativo.
func NewQuantity(count decimal.Decimal) (Quantity, error) {
	if count.IsNegative() {
		return Quantity{}, fmt.Errorf("%w: la magnitud no puede ser negativa (%s)", domain.ErrValidation, count)
	}
	return Quantity{count: count}, nil
}

// NewWeight construye un peso validando magnitud y unidad.
func NewWeight(value decimal.Decimal, unit Unit) (Weight, error) {
	s, err := newScalar(DimensionWeight, value, unit)
	return Weight{s}, err
}

// NewLength construye una longitud validando magnitud y unidad.
func NewLength(value decimal.Decimal, unit Unit) (Length, error) {
	s, err := newScalar(DimensionLength, value, unit)
	return Length{s}, err
}

// NewArea construye un área validando magnitud y unidad.
func NewArea(value decimal.Decimal, unit Unit) (Area, error) {
	s, err := newScalar(DimensionArea, value, unit)
	return Area{s}, err
}

// NewVolume construye un volumen validando magnitud y unidad.
func NewVolume(value decimal.Decimal, unit Unit) (Volume, error) {
	s, err := newScalar(DimensionVolume, value, unit)
	return Volume{s}, err
}

func newScalar(dim Dimension, value decimal.Decimal, unit Unit) (scalar, error) {
	if value.IsNegative() {
		return scalar{}, fmt.Errorf("%w: la magnitud no puede ser negativa (%s)", domain.ErrValidation, value)
	}
	owner, ok := unit.Dimension()
	if !ok || owner != dim {
		return scalar{}, fmt.Errorf("%w: unidad %q no pertenece a la dimensión %s", domain.ErrValidation, unit, dim)
	}
	return scalar{value: value, unit: unit}, nil
}

// New construye la variante correspondiente a dim a partir de sus partes planas
// (formato usado por transporte y almacenamiento). Para quantity la unidad puede ir vacía.
func New(dim Dimension, magnitude decimal.Decimal, unit Unit) (Measurement, error) {
	switch dim {
	case DimensionQuantity:
		if unit != "" && unit != UnitEach {
			return nil, fmt.Errorf("%w: quantity no admite unidad %q", domain.ErrValidation, unit)
		}
		return NewQuantity(magnitude)
	case DimensionWeight:
		return NewWeight(magnitude, unit)
	case DimensionLength:
		return NewLength(magnitude, unit)
	case DimensionArea:
		return NewArea(magnitude, unit)
	case DimensionVolume:
		return NewVolume(magnitude, unit)
	}
	return nil, fmt.Errorf("%w: dimensión desconocida %q", domain.ErrValidation, dim)
}

// Zero medida nula de la dimensión, expresada en su unidad base.
func Zero(dim Dimension) Measurement {
	m, err := New(dim, decimal.Zero, BaseUnit(dim))
	if err != nil {
		return nil
	}
	return m
}

// ToBase magnitud expresada en la unidad base de su dimensión (sin redondeo).
func ToBase(m Measurement) decimal.Decimal {
	return m.Magnitude().Mul(units[m.Unit()].factor)
}

// Convert expresa m en la unidad target. Siempre pasa por la unidad base de la
// dimensión, de modo que el único redondeo ocurre al salir de ella.
func Convert(m Measurement, target Unit) (Measurement, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: medida vacía", domain.ErrValidation)
	}
	spec, ok := units[target]
	if !ok {
		return nil, fmt.Errorf("%w: unidad desconocida %q", domain.ErrValidation, target)
	}
	if spec.dimension != m.Dimension() {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrIncompatibleDimension, m.Dimension(), spec.dimension)
	}
	value := ToBase(m).DivRound(spec.factor, Precision)
	return New(spec.dimension, value, target)
}

// MagnitudeIn devuelve la magnitud de m exigiendo que esté en la dimensión dim
// (p. ej. el selector purchasedBy de una relación).
func MagnitudeIn(m Measurement, dim Dimension) (decimal.Decimal, error) {
	if m == nil {
		return decimal.Zero, fmt.Errorf("%w: medida vacía", domain.ErrValidation)
	}
	if m.Dimension() != dim {
		return decimal.Zero, fmt.Errorf("%w: se esperaba %s y la medida es %s", domain.ErrDimensionMismatch, dim, m.Dimension())
	}
	return m.Magnitude(), nil
}

// Add suma b a a; el resultado queda en la unidad de a.
func Add(a, b Measurement) (Measurement, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: medida vacía", domain.ErrValidation)
	}
	if a.Dimension() != b.Dimension() {
		return nil, fmt.Errorf("%w: %s + %s", domain.ErrDimensionMismatch, a.Dimension(), b.Dimension())
	}
	other := b
	if b.Unit() != a.Unit() {
		var err error
		if other, err = Convert(b, a.Unit()); err != nil {
			return nil, err
		}
	}
	return New(a.Dimension(), a.Magnitude().Add(other.Magnitude()), a.Unit())
}

// Compare ordena por magnitud en unidad base: -1, 0 o 1. Diferencias dentro de
// Tolerance se consideran iguales.
func Compare(a, b Measurement) (int, error) {
	if a == nil || b == nil {
		return 0, fmt.Errorf("%w: medida vacía", domain.ErrValidation)
	}
	if a.Dimension() != b.Dimension() {
		return 0, fmt.Errorf("%w: %s vs %s", domain.ErrDimensionMismatch, a.Dimension(), b.Dimension())
	}
	diff := ToBase(a).Sub(ToBase(b))
	if diff.Abs().LessThanOrEqual(Tolerance) {
		return 0, nil
	}
	return diff.Sign(), nil
}

// Equal true si ambas medidas son de la misma dimensión y coinciden en unidad base.
func Equal(a, b Measurement) bool {
	c, err := Compare(a, b)
	return err == nil && c == 0
}
