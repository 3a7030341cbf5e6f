// Package memory almacén en memoria: relaciones sobre un relationship.Graph más ítems y
// cabeceras de transacción. Se usa con STORE_DRIVER=memory y en tests.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/inventario-engine/internal/application/usecase"
	"github.com/jhoicas/inventario-engine/internal/domain"
	"github.com/jhoicas/inventario-engine/internal/domain/entity"
	"github.com/jhoicas/inventario-engine/internal/domain/relationship"
	"github.com/jhoicas/inventario-engine/internal/domain/repository"
)

var (
	_ repository.RelationshipRepository = (*Store)(nil)
	_ repository.SnapshotRepository     = (*Store)(nil)
	_ usecase.RelationshipTxRunner      = (*Store)(nil)
)

// Store seguro para uso concurrente.
type Store struct {
	mu    sync.RWMutex
	items map[string][]entity.Item        // por empresa, en orden de alta
	txs   map[string][]entity.Transaction // por empresa, en orden de alta
	graph *relationship.Graph

	txMu sync.Mutex
}

// NewStore almacén vacío.
func NewStore() *Store {
	return &Store{
		items: make(map[string][]entity.Item),
		txs:   make(map[string][]entity.Transaction),
		graph: relationship.NewGraph(),
	}
}

// PutItem alta o reemplazo de un ítem (por ID).
func (s *Store) PutItem(item entity.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.items[item.CompanyID]
	for i := range list {
		if list[i].ID == item.ID {
			list[i] = item
			return
		}
	}
	s.items[item.CompanyID] = append(list, item)
}

// PutTransaction alta o reemplazo de una cabecera (por ID).
func (s *Store) PutTransaction(tx entity.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.txs[tx.CompanyID]
	for i := range list {
		if list[i].ID == tx.ID {
			list[i] = tx
			return
		}
	}
	s.txs[tx.CompanyID] = append(list, tx)
}

// ── SnapshotRepository ────────────────────────────────────────────────────────

func (s *Store) ListItems(_ context.Context, companyID string) ([]entity.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Item{}, s.items[companyID]...), nil
}

func (s *Store) ListTransactions(_ context.Context, companyID, kind string) ([]entity.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []entity.Transaction{}
	for _, tx := range s.txs[companyID] {
		if tx.Kind == kind {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *Store) ListRelationships(_ context.Context, companyID string, relType entity.RelationshipType) ([]entity.RelationshipEdge, error) {
	return ofCompany(s.graph.All(relType), companyID), nil
}

// ── RelationshipRepository ────────────────────────────────────────────────────

// Create un duplicado por (primary, secondary, type) falla con domain.ErrValidation.
func (s *Store) Create(_ context.Context, edge *entity.RelationshipEdge) error {
	_, err := s.graph.Create(*edge)
	return err
}

func (s *Store) GetByID(_ context.Context, companyID, id string) (*entity.RelationshipEdge, error) {
	e, err := s.graph.Get(id)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && e.CompanyID != companyID) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Update reemplaza medida y atributos; extremos, tipo y CreatedAt se conservan.
func (s *Store) Update(ctx context.Context, edge *entity.RelationshipEdge) error {
	current, err := s.GetByID(ctx, edge.CompanyID, edge.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrNotFound
	}
	_, err = s.graph.Update(edge.ID, entity.EdgePatch{
		Measurement:        edge.Measurement,
		PurchasedBy:        &edge.PurchasedBy,
		CostPerUnit:        &edge.CostPerUnit,
		PricePerUnit:       &edge.PricePerUnit,
		OriginalCost:       &edge.OriginalCost,
		DiscountAmount:     &edge.DiscountAmount,
		DiscountPercentage: &edge.DiscountPercentage,
		PerformedBy:        &edge.PerformedBy,
	})
	return err
}

// Delete idempotente; no toca relaciones de otra empresa.
func (s *Store) Delete(ctx context.Context, companyID, id string) error {
	current, err := s.GetByID(ctx, companyID, id)
	if err != nil || current == nil {
		return err
	}
	s.graph.Delete(id)
	return nil
}

func (s *Store) ListByPrimary(_ context.Context, companyID, primaryID string, primaryType entity.EntityType, relType entity.RelationshipType) ([]entity.RelationshipEdge, error) {
	return ofCompany(s.graph.QueryByPrimary(primaryID, primaryType, relType), companyID), nil
}

func (s *Store) ListBySecondary(_ context.Context, companyID, secondaryID string, secondaryType entity.EntityType, relType entity.RelationshipType) ([]entity.RelationshipEdge, error) {
	return ofCompany(s.graph.QueryBySecondary(secondaryID, secondaryType, relType), companyID), nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// RunRelationships serializa los reemplazos en bloque. Cada escritura es atómica, pero
// si fn falla a mitad las escrituras previas no se revierten.
func (s *Store) RunRelationships(_ context.Context, fn func(repo repository.RelationshipRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s)
}

func ofCompany(edges []entity.RelationshipEdge, companyID string) []entity.RelationshipEdge {
	out := make([]entity.RelationshipEdge, 0, len(edges))
	for _, e := range edges {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out
}
