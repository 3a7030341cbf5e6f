package relationship

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-engine/internal/domain"
	"github.com/jhoicas/inventario-engine/internal/domain/entity"
	"github.com/jhoicas/inventario-engine/internal/domain/measurement"
)

// Target extremo primario cuyas líneas se reemplazan en bloque (p. ej. al editar una compra).
type Target struct {
	CompanyID   string
	Type        entity.RelationshipType
	PrimaryID   string
	PerformedBy string // usuario que registra las altas
}

// LineSpec línea deseada: extremo secundario, medida y atributos.
// PerformedBy vacío conserva el valor existente.
type LineSpec struct {
	SecondaryID        string
	Measurement        measurement.Measurement
	PurchasedBy        measurement.Dimension
	CostPerUnit        decimal.Decimal
	PricePerUnit       decimal.Decimal
	OriginalCost       decimal.Decimal
	DiscountAmount     decimal.Decimal
	DiscountPercentage decimal.Decimal
	PerformedBy        string
}

// EdgeUpdate actualización de una relación existente con solo los campos que cambian.
type EdgeUpdate struct {
	ID    string
	Patch entity.EdgePatch
}

// ReconcilePlan conjunto de escrituras que lleva las relaciones existentes al estado deseado.
// No define su envoltura transaccional; eso corresponde al almacenamiento.
type ReconcilePlan struct {
	Creates []entity.RelationshipEdge
	Updates []EdgeUpdate
	Deletes []string
}

// IsEmpty true si no hay nada que escribir.
func (p ReconcilePlan) IsEmpty() bool {
	return len(p.Creates) == 0 && len(p.Updates) == 0 && len(p.Deletes) == 0
}

// Plan calcula la diferencia de conjuntos por SecondaryID (nunca por posición):
//   - presente en ambos → actualización con los campos cambiados (se omite si no cambia nada);
//   - solo en existentes → borrado;
//   - solo en deseados  → alta.
//
// Reordenar las líneas no produce borrados ni altas, así se conserva CreatedAt.
// Las altas siguen el orden de desired; actualizaciones y borrados el de existing.
func Plan(target Target, existing []entity.RelationshipEdge, desired []LineSpec) (ReconcilePlan, error) {
	endpoints, ok := target.Type.Endpoints()
	if !ok {
		return ReconcilePlan{}, fmt.Errorf("%w: tipo de relación desconocido %q", domain.ErrValidation, target.Type)
	}

	wanted := make(map[string]LineSpec, len(desired))
	for _, d := range desired {
		if d.SecondaryID == "" {
			return ReconcilePlan{}, fmt.Errorf("%w: línea sin secondary_id", domain.ErrValidation)
		}
		if _, dup := wanted[d.SecondaryID]; dup {
			return ReconcilePlan{}, fmt.Errorf("%w: la entidad %s aparece más de una vez en las líneas",
				domain.ErrValidation, d.SecondaryID)
		}
		wanted[d.SecondaryID] = d
	}

	var plan ReconcilePlan
	matched := make(map[string]bool, len(existing))
	for _, e := range existing {
		spec, ok := wanted[e.SecondaryID]
		if !ok || matched[e.SecondaryID] {
			// sin contraparte (o duplicado heredado): se elimina
			plan.Deletes = append(plan.Deletes, e.ID)
			continue
		}
		matched[e.SecondaryID] = true

		patch := diff(e, spec)
		if patch.IsEmpty() {
			continue
		}
		if err := Validate(patch.Apply(e)); err != nil {
			return ReconcilePlan{}, fmt.Errorf("línea %s: %w", e.SecondaryID, err)
		}
		plan.Updates = append(plan.Updates, EdgeUpdate{ID: e.ID, Patch: patch})
	}

	for _, d := range desired {
		if matched[d.SecondaryID] {
			continue
		}
		performedBy := d.PerformedBy
		if performedBy == "" {
			performedBy = target.PerformedBy
		}
		edge := entity.RelationshipEdge{
			CompanyID:          target.CompanyID,
			Type:               target.Type,
			PrimaryID:          target.PrimaryID,
			PrimaryType:        endpoints.Primary,
			SecondaryID:        d.SecondaryID,
			SecondaryType:      endpoints.Secondary,
			Measurement:        d.Measurement,
			PurchasedBy:        d.PurchasedBy,
			CostPerUnit:        d.CostPerUnit,
			PricePerUnit:       d.PricePerUnit,
			OriginalCost:       d.OriginalCost,
			DiscountAmount:     d.DiscountAmount,
			DiscountPercentage: d.DiscountPercentage,
			PerformedBy:        performedBy,
		}
		if err := Validate(edge); err != nil {
			return ReconcilePlan{}, fmt.Errorf("línea %s: %w", d.SecondaryID, err)
		}
		plan.Creates = append(plan.Creates, edge)
	}
	return plan, nil
}

// diff construye el patch con los campos de spec que difieren de e.
func diff(e entity.RelationshipEdge, spec LineSpec) entity.EdgePatch {
	var p entity.EdgePatch
	if measurementChanged(e.Measurement, spec.Measurement) {
		p.Measurement = spec.Measurement
	}
	if spec.PurchasedBy != e.PurchasedBy {
		dim := spec.PurchasedBy
		p.PurchasedBy = &dim
	}
	p.CostPerUnit = decimalChange(e.CostPerUnit, spec.CostPerUnit)
	p.PricePerUnit = decimalChange(e.PricePerUnit, spec.PricePerUnit)
	p.OriginalCost = decimalChange(e.OriginalCost, spec.OriginalCost)
	p.DiscountAmount = decimalChange(e.DiscountAmount, spec.DiscountAmount)
	p.DiscountPercentage = decimalChange(e.DiscountPercentage, spec.DiscountPercentage)
	if spec.PerformedBy != "" && spec.PerformedBy != e.PerformedBy {
		by := spec.PerformedBy
		p.PerformedBy = &by
	}
	return p
}

// measurementChanged compara dimensión, unidad y magnitud tal como las registró el usuario.
func measurementChanged(current, next measurement.Measurement) bool {
	if next == nil {
		return false
	}
	if current == nil {
		return true
	}
	return current.Dimension() != next.Dimension() ||
		current.Unit() != next.Unit() ||
		!current.Magnitude().Equal(next.Magnitude())
}

func decimalChange(current, next decimal.Decimal) *decimal.Decimal {
	if current.Equal(next) {
		return nil
	}
	return &next
}

func sortBySeq(edges []entity.RelationshipEdge) {
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].Seq < edges[j].Seq })
}
