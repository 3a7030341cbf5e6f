package usecase

import (
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-engine/internal/application/dto"
	"github.com/jhoicas/inventario-engine/internal/domain"
	"github.com/jhoicas/inventario-engine/internal/domain/entity"
	"github.com/jhoicas/inventario-engine/internal/domain/measurement"
)

func toMeasurementDTO(m measurement.Measurement) dto.MeasurementDTO {
	if m == nil {
		return dto.MeasurementDTO{}
	}
	return dto.MeasurementDTO{
		Dimension: string(m.Dimension()),
		Magnitude: m.Magnitude(),
		Unit:      string(m.Unit()),
	}
}

// fromMeasurementDTO construye la variante de la dimensión; rechaza unidades ajenas.
func fromMeasurementDTO(in dto.MeasurementDTO) (measurement.Measurement, error) {
	dim := measurement.Dimension(strings.ToLower(strings.TrimSpace(in.Dimension)))
	if !dim.Valid() {
		return nil, fmt.Errorf("%w: dimensión %q no soportada", domain.ErrValidation, in.Dimension)
	}
	return measurement.New(dim, in.Magnitude, measurement.Unit(strings.TrimSpace(in.Unit)))
}

func toRelationshipResponse(e *entity.RelationshipEdge) *dto.RelationshipResponse {
	return &dto.RelationshipResponse{
		ID:                 e.ID,
		Type:               string(e.Type),
		PrimaryID:          e.PrimaryID,
		PrimaryType:        string(e.PrimaryType),
		SecondaryID:        e.SecondaryID,
		SecondaryType:      string(e.SecondaryType),
		Measurement:        toMeasurementDTO(e.Measurement),
		PurchasedBy:        string(e.PurchasedBy),
		CostPerUnit:        e.CostPerUnit,
		PricePerUnit:       e.PricePerUnit,
		OriginalCost:       e.OriginalCost,
		DiscountAmount:     e.DiscountAmount,
		DiscountPercentage: e.DiscountPercentage,
		PerformedBy:        e.PerformedBy,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

func toRelationshipList(edges []entity.RelationshipEdge) []dto.RelationshipResponse {
	out := make([]dto.RelationshipResponse, 0, len(edges))
	for i := range edges {
		out = append(out, *toRelationshipResponse(&edges[i]))
	}
	return out
}
