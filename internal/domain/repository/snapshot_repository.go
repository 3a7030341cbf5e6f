package repository

import (
	"context"

	"github.com/jhoicas/inventario-engine/internal/domain/entity"
)

//go:generate mockgen -source=snapshot_repository.go -destination=mocks/snapshot_repository_mock.go -package=mocks

// SnapshotRepository lecturas del snapshot que consume el reporte de rentabilidad.
// Las implementaciones son read-only.
type SnapshotRepository interface {
	ListItems(ctx context.Context, companyID string) ([]entity.Item, error)
	// ListTransactions cabeceras de compra o venta (kind) de la empresa.
	ListTransactions(ctx context.Context, companyID, kind string) ([]entity.Transaction, error)
	// ListRelationships relaciones del tipo indicado, en orden de creación.
	ListRelationships(ctx context.Context, companyID string, relType entity.RelationshipType) ([]entity.RelationshipEdge, error)
}
