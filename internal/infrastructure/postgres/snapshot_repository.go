package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-engine/internal/domain/entity"
	"github.com/jhoicas/inventario-engine/internal/domain/measurement"
	"github.com/jhoicas/inventario-engine/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo lecturas de solo lectura para el reporte de rentabilidad.
type SnapshotRepo struct {
	q Querier
}

// NewSnapshotRepository construye el adaptador. Acepta pool o tx (Querier).
func NewSnapshotRepository(q Querier) *SnapshotRepo {
	return &SnapshotRepo{q: q}
}

func (r *SnapshotRepo) ListItems(ctx context.Context, companyID string) ([]entity.Item, error) {
	query := `
		SELECT id, company_id, sku, name, COALESCE(category, ''), tracking_type, COALESCE(weight_unit, ''),
			price, price_type, created_at, updated_at
		FROM items WHERE company_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	out := []entity.Item{}
	for rows.Next() {
		var (
			it         entity.Item
			weightUnit string
		)
		if err := rows.Scan(&it.ID, &it.CompanyID, &it.SKU, &it.Name, &it.Category, &it.TrackingType, &weightUnit,
			&it.Price, &it.PriceType, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.WeightUnit = measurement.Unit(weightUnit)
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return out, nil
}

// ListTransactions cabeceras del tipo indicado (purchase, sale).
func (r *SnapshotRepo) ListTransactions(ctx context.Context, companyID, kind string) ([]entity.Transaction, error) {
	query := `
		SELECT id, company_id, kind, COALESCE(reference, ''), COALESCE(party, ''), date, total,
			COALESCE(notes, ''), created_at, updated_at
		FROM transactions WHERE company_id = $1 AND kind = $2 ORDER BY date, id`
	rows, err := r.q.Query(ctx, query, companyID, kind)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	out := []entity.Transaction{}
	for rows.Next() {
		var tx entity.Transaction
		if err := rows.Scan(&tx.ID, &tx.CompanyID, &tx.Kind, &tx.Reference, &tx.Party, &tx.Date, &tx.Total,
			&tx.Notes, &tx.CreatedAt, &tx.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

// ListRelationships relaciones del tipo indicado (vacío = todas), en orden de creación.
// Una fila con medida ilegible se entrega sin Measurement: el reporte la rechaza al
// validarla y la cuenta como omitida, en vez de abortar.
func (r *SnapshotRepo) ListRelationships(ctx context.Context, companyID string, relType entity.RelationshipType) ([]entity.RelationshipEdge, error) {
	query := `
		SELECT ` + relationshipColumns + ` FROM relationships
		WHERE company_id = $1 AND ($2 = '' OR type = $2)
		ORDER BY seq`
	return queryRelationships(ctx, r.q, true, query, companyID, string(relType))
}
