package repository

import (
	"context"

	"github.com/jhoicas/inventario-engine/internal/domain/entity"
)

// RelationshipRepository puerto de persistencia de relaciones (DIP). Cada escritura es
// atómica por sí sola; agruparlas en una transacción es tarea del TxRunner.
type RelationshipRepository interface {
	// Create persiste la relación con su ID y fechas ya asignados. Si ya existe una con el
	// mismo (primary, secondary, type) falla con domain.ErrDuplicate o domain.ErrValidation.
	Create(ctx context.Context, edge *entity.RelationshipEdge) error
	// GetByID devuelve nil, nil si no existe en la empresa.
	GetByID(ctx context.Context, companyID, id string) (*entity.RelationshipEdge, error)
	// Update guarda medida y atributos; extremos y tipo no se modifican.
	Update(ctx context.Context, edge *entity.RelationshipEdge) error
	// Delete es idempotente.
	Delete(ctx context.Context, companyID, id string) error
	// ListByPrimary y ListBySecondary devuelven en orden de creación; tipo de entidad o
	// relType vacíos no filtran.
	ListByPrimary(ctx context.Context, companyID, primaryID string, primaryType entity.EntityType, relType entity.RelationshipType) ([]entity.RelationshipEdge, error)
	ListBySecondary(ctx context.Context, companyID, secondaryID string, secondaryType entity.EntityType, relType entity.RelationshipType) ([]entity.RelationshipEdge, error)
}
