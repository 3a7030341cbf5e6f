package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-engine/internal/domain/measurement"
)

// Tipos de seguimiento de un ítem.
const (
	TrackingQuantity = "quantity" // se cuenta por unidades
	TrackingWeight   = "weight"   // se pesa (WeightUnit)
)

// Tipos de precio de un ítem.
const (
	PriceTypeEach      = "each"            // precio por unidad
	PricePerWeightUnit = "per_weight_unit" // precio por unidad de peso (WeightUnit)
)

// Item representa un producto del inventario. Para el motor es de solo lectura
// (tabla de consulta por ID).
type Item struct {
	ID           string
	CompanyID    string
	SKU          string
	Name         string
	Category     string           // vacío = sin categoría
	TrackingType string           // quantity, weight
	WeightUnit   measurement.Unit // solo para TrackingWeight
	Price        decimal.Decimal  // precio de venta
	PriceType    string           // each, per_weight_unit
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TrackingDimension dimensión en la que se mide el ítem.
func (i Item) TrackingDimension() measurement.Dimension {
	if i.TrackingType == TrackingWeight {
		return measurement.DimensionWeight
	}
	return measurement.DimensionQuantity
}
