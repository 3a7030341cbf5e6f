package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MeasurementDTO medida en formato plano (transporte). Para quantity la unidad es "each" o vacía.
type MeasurementDTO struct {
	Dimension string          `json:"dimension"` // quantity, weight, length, area, volume
	Magnitude decimal.Decimal `json:"magnitude"`
	Unit      string          `json:"unit,omitempty"`
}

// CreateRelationshipRequest body de POST /api/relationships.
type CreateRelationshipRequest struct {
	Type               string          `json:"type"` // PURCHASE_ITEM, PURCHASE_ASSET, SALE_ITEM
	PrimaryID          string          `json:"primary_id"`
	PrimaryType        string          `json:"primary_type"`
	SecondaryID        string          `json:"secondary_id"`
	SecondaryType      string          `json:"secondary_type"`
	Measurement        MeasurementDTO  `json:"measurement"`
	PurchasedBy        string          `json:"purchased_by"` // debe coincidir con measurement.dimension
	CostPerUnit        decimal.Decimal `json:"cost_per_unit"`
	PricePerUnit       decimal.Decimal `json:"price_per_unit"`
	OriginalCost       decimal.Decimal `json:"original_cost"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

// UpdateRelationshipRequest body de PATCH /api/relationships/:id. Campos nil no cambian.
type UpdateRelationshipRequest struct {
	Measurement        *MeasurementDTO  `json:"measurement"`
	PurchasedBy        *string          `json:"purchased_by"`
	CostPerUnit        *decimal.Decimal `json:"cost_per_unit"`
	PricePerUnit       *decimal.Decimal `json:"price_per_unit"`
	OriginalCost       *decimal.Decimal `json:"original_cost"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
}

// RelationshipQuery filtros de GET /api/relationships (primary_id o secondary_id obligatorio).
type RelationshipQuery struct {
	PrimaryID     string `query:"primary_id"`
	PrimaryType   string `query:"primary_type"`
	SecondaryID   string `query:"secondary_id"`
	SecondaryType string `query:"secondary_type"`
	Type          string `query:"type"`
}

// RelationshipResponse relación en respuestas.
type RelationshipResponse struct {
	ID                 string          `json:"id"`
	Type               string          `json:"type"`
	PrimaryID          string          `json:"primary_id"`
	PrimaryType        string          `json:"primary_type"`
	SecondaryID        string          `json:"secondary_id"`
	SecondaryType      string          `json:"secondary_type"`
	Measurement        MeasurementDTO  `json:"measurement"`
	PurchasedBy        string          `json:"purchased_by"`
	CostPerUnit        decimal.Decimal `json:"cost_per_unit"`
	PricePerUnit       decimal.Decimal `json:"price_per_unit"`
	OriginalCost       decimal.Decimal `json:"original_cost"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	PerformedBy        string          `json:"performed_by"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// LineDTO línea deseada en el reemplazo en bloque.
type LineDTO struct {
	SecondaryID        string          `json:"secondary_id"`
	Measurement        MeasurementDTO  `json:"measurement"`
	PurchasedBy        string          `json:"purchased_by"`
	CostPerUnit        decimal.Decimal `json:"cost_per_unit"`
	PricePerUnit       decimal.Decimal `json:"price_per_unit"`
	OriginalCost       decimal.Decimal `json:"original_cost"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

// ReplaceLinesRequest body de PUT /api/transactions/:type/:id/lines.
type ReplaceLinesRequest struct {
	RelationshipType string    `json:"relationship_type"` // opcional; por defecto según :type (purchase → PURCHASE_ITEM, sale → SALE_ITEM)
	Lines            []LineDTO `json:"lines"`
}

// ReplaceLinesResponse resultado de la reconciliación.
type ReplaceLinesResponse struct {
	Created []string `json:"created"`
	Updated []string `json:"updated"`
	Deleted []string `json:"deleted"`
}

// ConvertMeasurementRequest body de POST /api/measurements/convert.
type ConvertMeasurementRequest struct {
	Measurement MeasurementDTO `json:"measurement"`
	TargetUnit  string         `json:"target_unit"`
}

// ConvertMeasurementResponse medida convertida y su equivalente en unidad base.
type ConvertMeasurementResponse struct {
	Result MeasurementDTO `json:"result"`
	Base   MeasurementDTO `json:"base"`
}
