package usecase

import (
	"context"

	"github.com/jhoicas/inventario-engine/internal/application/dto"
	"github.com/jhoicas/inventario-engine/internal/domain/repository"
)

// RelationshipTxRunner ejecuta fn dentro de una transacción, con el repositorio de
// relaciones atado a ella. Lo usa el reemplazo en bloque de líneas.
type RelationshipTxRunner interface {
	RunRelationships(ctx context.Context, fn func(repo repository.RelationshipRepository) error) error
}

// TableExporter serializa la proyección tabular del reporte en un formato de archivo.
type TableExporter interface {
	Format() string // csv, xlsx, pdf
	ContentType() string
	Export(table *dto.ProfitTableDTO) ([]byte, error)
}
