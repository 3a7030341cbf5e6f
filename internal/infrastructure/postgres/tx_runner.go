package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/inventario-engine/internal/application/usecase"
	"github.com/jhoicas/inventario-engine/internal/domain/repository"
)

var _ usecase.RelationshipTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRelationships inicia una transacción, ejecuta fn con el repositorio de relaciones
// atado a la tx y hace Commit o Rollback (reemplazo de líneas todo o nada).
func (r *TxRunner) RunRelationships(ctx context.Context, fn func(repo repository.RelationshipRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRelationshipRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
