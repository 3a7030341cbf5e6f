package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-engine/internal/domain"
	"github.com/jhoicas/inventario-engine/internal/domain/entity"
	"github.com/jhoicas/inventario-engine/internal/domain/measurement"
	"github.com/jhoicas/inventario-engine/internal/domain/repository"
)

var _ repository.RelationshipRepository = (*RelationshipRepo)(nil)

// RelationshipRepo implementación del puerto RelationshipRepository sobre PostgreSQL
// (usable con pool o tx). La medida se guarda en columnas planas: dimension, magnitude, unit.
type RelationshipRepo struct {
	q Querier
}

// NewRelationshipRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRelationshipRepository(q Querier) *RelationshipRepo {
	return &RelationshipRepo{q: q}
}

const relationshipColumns = `id, company_id, type, primary_id, primary_type, secondary_id, secondary_type,
	dimension, magnitude, unit, purchased_by, cost_per_unit, price_per_unit, original_cost,
	discount_amount, discount_percentage, performed_by, created_at, updated_at, seq`

// Create inserta la relación. La unicidad (company_id, primary_id, secondary_id, type)
// la garantiza un índice único; la violación se traduce a domain.ErrDuplicate.
func (r *RelationshipRepo) Create(ctx context.Context, e *entity.RelationshipEdge) error {
	query := `
		INSERT INTO relationships (id, company_id, type, primary_id, primary_type, secondary_id, secondary_type,
			dimension, magnitude, unit, purchased_by, cost_per_unit, price_per_unit, original_cost,
			discount_amount, discount_percentage, performed_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		e.ID, e.CompanyID, string(e.Type), e.PrimaryID, string(e.PrimaryType), e.SecondaryID, string(e.SecondaryType),
		string(e.Measurement.Dimension()), e.Measurement.Magnitude(), string(e.Measurement.Unit()), string(e.PurchasedBy),
		e.CostPerUnit, e.PricePerUnit, e.OriginalCost, e.DiscountAmount, e.DiscountPercentage,
		nullableString(e.PerformedBy), e.CreatedAt, e.UpdatedAt,
	).Scan(&e.Seq)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert relationship: %w", err)
	}
	return nil
}

// GetByID nil, nil si no existe en la empresa.
func (r *RelationshipRepo) GetByID(ctx context.Context, companyID, id string) (*entity.RelationshipEdge, error) {
	query := `SELECT ` + relationshipColumns + ` FROM relationships WHERE company_id = $1 AND id = $2`
	e, err := scanRelationship(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get relationship: %w", err)
	}
	return e, nil
}

// Update reemplaza medida y atributos. Extremos, tipo y created_at no se modifican.
func (r *RelationshipRepo) Update(ctx context.Context, e *entity.RelationshipEdge) error {
	query := `
		UPDATE relationships SET dimension = $3, magnitude = $4, unit = $5, purchased_by = $6,
			cost_per_unit = $7, price_per_unit = $8, original_cost = $9, discount_amount = $10,
			discount_percentage = $11, performed_by = $12, updated_at = $13
		WHERE company_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		e.CompanyID, e.ID,
		string(e.Measurement.Dimension()), e.Measurement.Magnitude(), string(e.Measurement.Unit()), string(e.PurchasedBy),
		e.CostPerUnit, e.PricePerUnit, e.OriginalCost, e.DiscountAmount, e.DiscountPercentage,
		nullableString(e.PerformedBy), e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update relationship: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete idempotente.
func (r *RelationshipRepo) Delete(ctx context.Context, companyID, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM relationships WHERE company_id = $1 AND id = $2`, companyID, id); err != nil {
		return fmt.Errorf("delete relationship: %w", err)
	}
	return nil
}

// ListByPrimary en orden de creación. primaryType o relType vacíos no filtran.
func (r *RelationshipRepo) ListByPrimary(ctx context.Context, companyID, primaryID string, primaryType entity.EntityType, relType entity.RelationshipType) ([]entity.RelationshipEdge, error) {
	query := `
		SELECT ` + relationshipColumns + ` FROM relationships
		WHERE company_id = $1 AND primary_id = $2
			AND ($3 = '' OR primary_type = $3) AND ($4 = '' OR type = $4)
		ORDER BY seq`
	return r.list(ctx, query, companyID, primaryID, string(primaryType), string(relType))
}

// ListBySecondary en orden de creación. secondaryType o relType vacíos no filtran.
func (r *RelationshipRepo) ListBySecondary(ctx context.Context, companyID, secondaryID string, secondaryType entity.EntityType, relType entity.RelationshipType) ([]entity.RelationshipEdge, error) {
	query := `
		SELECT ` + relationshipColumns + ` FROM relationships
		WHERE company_id = $1 AND secondary_id = $2
			AND ($3 = '' OR secondary_type = $3) AND ($4 = '' OR type = $4)
		ORDER BY seq`
	return r.list(ctx, query, companyID, secondaryID, string(secondaryType), string(relType))
}

func (r *RelationshipRepo) list(ctx context.Context, query string, args ...any) ([]entity.RelationshipEdge, error) {
	return queryRelationships(ctx, r.q, false, query, args...)
}

// queryRelationships con keepInvalid, las filas cuya medida no se puede reconstruir se
// devuelven con Measurement nil; sin él, son error.
func queryRelationships(ctx context.Context, q Querier, keepInvalid bool, query string, args ...any) ([]entity.RelationshipEdge, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	defer rows.Close()

	out := []entity.RelationshipEdge{}
	for rows.Next() {
		e, err := scanRelationship(rows)
		if err != nil {
			if !keepInvalid || e == nil || !errors.Is(err, domain.ErrValidation) {
				return nil, fmt.Errorf("scan relationship: %w", err)
			}
			e.Measurement = nil
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	return out, nil
}

// scanRelationship reconstruye la variante de medida desde sus columnas planas; una fila
// con dimensión o unidad inválida se reporta como error de validación junto con el resto
// de la fila ya leída.
func scanRelationship(row pgx.Row) (*entity.RelationshipEdge, error) {
	var (
		e                             entity.RelationshipEdge
		relType, primaryType, secType string
		dimension, unit, purchasedBy  string
		magnitude                     decimal.Decimal
		performedBy                   *string
	)
	err := row.Scan(
		&e.ID, &e.CompanyID, &relType, &e.PrimaryID, &primaryType, &e.SecondaryID, &secType,
		&dimension, &magnitude, &unit, &purchasedBy, &e.CostPerUnit, &e.PricePerUnit, &e.OriginalCost,
		&e.DiscountAmount, &e.DiscountPercentage, &performedBy, &e.CreatedAt, &e.UpdatedAt, &e.Seq,
	)
	if err != nil {
		return nil, err
	}
	e.Type = entity.RelationshipType(relType)
	e.PrimaryType = entity.EntityType(primaryType)
	e.SecondaryType = entity.EntityType(secType)
	e.PurchasedBy = measurement.Dimension(purchasedBy)
	if performedBy != nil {
		e.PerformedBy = *performedBy
	}
	m, err := measurement.New(measurement.Dimension(dimension), magnitude, measurement.Unit(unit))
	if err != nil {
		return &e, fmt.Errorf("relación %s: %w", e.ID, err)
	}
	e.Measurement = m
	return &e, nil
}
