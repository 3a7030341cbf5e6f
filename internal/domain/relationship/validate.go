// Package relationship contiene el grafo en memoria de relaciones tipadas entre
// entidades y el algoritmo de reconciliación de líneas de una transacción.
package relationship

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-engine/internal/domain"
	"github.com/jhoicas/inventario-engine/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Validate verifica las invariantes de una relación antes de persistirla:
//   - tipo conocido y extremos con los tipos de entidad declarados;
//   - PurchasedBy igual a la dimensión presente en Measurement;
//   - atributos monetarios no negativos y descuento porcentual ≤ 100.
func Validate(e entity.RelationshipEdge) error {
	endpoints, ok := e.Type.Endpoints()
	if !ok {
		return fmt.Errorf("%w: tipo de relación desconocido %q", domain.ErrValidation, e.Type)
	}
	if e.PrimaryID == "" || e.SecondaryID == "" {
		return fmt.Errorf("%w: la relación requiere primary_id y secondary_id", domain.ErrValidation)
	}
	if e.PrimaryType != endpoints.Primary || e.SecondaryType != endpoints.Secondary {
		return fmt.Errorf("%w: %s exige %s → %s, recibido %s → %s", domain.ErrValidation,
			e.Type, endpoints.Primary, endpoints.Secondary, e.PrimaryType, e.SecondaryType)
	}
	if e.Measurement == nil {
		return fmt.Errorf("%w: la relación requiere una medida", domain.ErrValidation)
	}
	if e.PurchasedBy != e.Measurement.Dimension() {
		return fmt.Errorf("%w: purchased_by=%s no coincide con la dimensión de la medida (%s)",
			domain.ErrValidation, e.PurchasedBy, e.Measurement.Dimension())
	}
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"cost_per_unit", e.CostPerUnit},
		{"price_per_unit", e.PricePerUnit},
		{"original_cost", e.OriginalCost},
		{"discount_amount", e.DiscountAmount},
		{"discount_percentage", e.DiscountPercentage},
	} {
		if f.value.IsNegative() {
			return fmt.Errorf("%w: %s no puede ser negativo", domain.ErrValidation, f.name)
		}
	}
	if e.DiscountPercentage.GreaterThan(hundred) {
		return fmt.Errorf("%w: discount_percentage no puede superar 100", domain.ErrValidation)
	}
	return nil
}
