package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-engine/internal/domain/measurement"
)

// EntityType tipo de entidad en un extremo de una relación.
type EntityType string

const (
	EntityPurchase EntityType = "purchase"
	EntitySale     EntityType = "sale"
	EntityItem     EntityType = "item"
	EntityAsset    EntityType = "asset"
)

// RelationshipType conjunto cerrado de asociaciones entre entidades.
type RelationshipType string

const (
	RelPurchaseItem  RelationshipType = "PURCHASE_ITEM"  // línea de compra → ítem
	RelPurchaseAsset RelationshipType = "PURCHASE_ASSET" // compra → activo derivado
	RelSaleItem      RelationshipType = "SALE_ITEM"      // línea de venta → ítem
)

// Endpoints tipos de entidad declarados para cada extremo.
type Endpoints struct {
	Primary   EntityType
	Secondary EntityType
}

var relationshipEndpoints = map[RelationshipType]Endpoints{
	RelPurchaseItem:  {Primary: EntityPurchase, Secondary: EntityItem},
	RelPurchaseAsset: {Primary: EntityPurchase, Secondary: EntityAsset},
	RelSaleItem:      {Primary: EntitySale, Secondary: EntityItem},
}

// Endpoints devuelve los tipos de extremo declarados; false si el tipo no existe.
func (t RelationshipType) Endpoints() (Endpoints, bool) {
	e, ok := relationshipEndpoints[t]
	return e, ok
}

// Valid indica si t pertenece al conjunto cerrado.
func (t RelationshipType) Valid() bool {
	_, ok := relationshipEndpoints[t]
	return ok
}

// RelationshipEdge asociación tipada entre dos entidades (p. ej. una línea de compra que
// referencia un ítem). Reemplaza los arreglos de claves foráneas embebidos en la cabecera.
// Borrar la relación nunca borra las entidades referenciadas.
type RelationshipEdge struct {
	ID            string
	CompanyID     string
	Type          RelationshipType
	PrimaryID     string
	PrimaryType   EntityType
	SecondaryID   string
	SecondaryType EntityType

	Measurement measurement.Measurement
	PurchasedBy measurement.Dimension // debe coincidir con Measurement.Dimension()

	CostPerUnit        decimal.Decimal // costo por unidad de Measurement
	PricePerUnit       decimal.Decimal // precio de venta por unidad (líneas SALE_ITEM)
	OriginalCost       decimal.Decimal // costo antes de descuentos
	DiscountAmount     decimal.Decimal
	DiscountPercentage decimal.Decimal // 0–100
	PerformedBy        string          // UserID que registró la línea

	CreatedAt time.Time
	UpdatedAt time.Time

	// Seq orden de creación asignado por el almacén; las consultas devuelven en este orden.
	Seq int64
}

// EdgePatch actualización parcial: solo medida y atributos. Los extremos y el tipo
// son inmutables (para cambiarlos se borra y se recrea la relación).
// Un campo nil no se modifica.
type EdgePatch struct {
	Measurement        measurement.Measurement
	PurchasedBy        *measurement.Dimension
	CostPerUnit        *decimal.Decimal
	PricePerUnit       *decimal.Decimal
	OriginalCost       *decimal.Decimal
	DiscountAmount     *decimal.Decimal
	DiscountPercentage *decimal.Decimal
	PerformedBy        *string
}

// IsEmpty true si el patch no cambia nada.
func (p EdgePatch) IsEmpty() bool {
	return p.Measurement == nil && p.PurchasedBy == nil && p.CostPerUnit == nil &&
		p.PricePerUnit == nil && p.OriginalCost == nil && p.DiscountAmount == nil &&
		p.DiscountPercentage == nil && p.PerformedBy == nil
}

// Apply devuelve una copia de e con el patch aplicado (no valida).
func (p EdgePatch) Apply(e RelationshipEdge) RelationshipEdge {
	if p.Measurement != nil {
		e.Measurement = p.Measurement
	}
	if p.PurchasedBy != nil {
		e.PurchasedBy = *p.PurchasedBy
	}
	if p.CostPerUnit != nil {
		e.CostPerUnit = *p.CostPerUnit
	}
	if p.PricePerUnit != nil {
		e.PricePerUnit = *p.PricePerUnit
	}
	if p.OriginalCost != nil {
		e.OriginalCost = *p.OriginalCost
	}
	if p.DiscountAmount != nil {
		e.DiscountAmount = *p.DiscountAmount
	}
	if p.DiscountPercentage != nil {
		e.DiscountPercentage = *p.DiscountPercentage
	}
	if p.PerformedBy != nil {
		e.PerformedBy = *p.PerformedBy
	}
	return e
}
