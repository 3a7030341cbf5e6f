package relationship

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-engine/internal/domain"
	"github.com/jhoicas/inventario-engine/internal/domain/entity"
)

// pairKey a lo sumo una relación activa por par ordenado y tipo (por empresa).
type pairKey struct {
	companyID string
	primary   string
	secondary string
	relType   entity.RelationshipType
}

func keyOf(e entity.RelationshipEdge) pairKey {
	return pairKey{companyID: e.CompanyID, primary: e.PrimaryID, secondary: e.SecondaryID, relType: e.Type}
}

// Graph índice en memoria de relaciones: un índice por ID, uno por extremo primario
// y uno por extremo secundario, más el índice de unicidad por par.
// Los índices por extremo conservan el orden de inserción. Es seguro para uso concurrente.
type Graph struct {
	mu          sync.RWMutex
	edges       map[string]*entity.RelationshipEdge
	byPrimary   map[string][]string
	bySecondary map[string][]string
	pairs       map[pairKey]string
	seq         int64

	now   func() time.Time
	newID func() string
}

// NewGraph construye un grafo vacío.
func NewGraph() *Graph {
	return &Graph{
		edges:       make(map[string]*entity.RelationshipEdge),
		byPrimary:   make(map[string][]string),
		bySecondary: make(map[string][]string),
		pairs:       make(map[pairKey]string),
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
	}
}

// Len número de relaciones activas.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}

// Create valida y registra la relación; devuelve su ID. Si edge.ID viene vacío se genera
// uno nuevo. Falla con domain.ErrValidation si ya existe una relación con el mismo
// (primary, secondary, type): el reenvío de una línea debe actualizar, no duplicar.
func (g *Graph) Create(edge entity.RelationshipEdge) (string, error) {
	if err := Validate(edge); err != nil {
		return "", err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.pairs[keyOf(edge)]; ok {
		return "", fmt.Errorf("%w: ya existe la relación %s (%s → %s) con id %s",
			domain.ErrValidation, edge.Type, edge.PrimaryID, edge.SecondaryID, existing)
	}
	if edge.ID == "" {
		edge.ID = g.newID()
	}
	if _, ok := g.edges[edge.ID]; ok {
		return "", fmt.Errorf("%w: id de relación repetido %s", domain.ErrValidation, edge.ID)
	}

	now := g.now()
	if edge.CreatedAt.IsZero() {
		edge.CreatedAt = now
	}
	if edge.UpdatedAt.IsZero() {
		edge.UpdatedAt = edge.CreatedAt
	}
	g.seq++
	edge.Seq = g.seq

	stored := edge
	g.edges[edge.ID] = &stored
	g.byPrimary[edge.PrimaryID] = append(g.byPrimary[edge.PrimaryID], edge.ID)
	g.bySecondary[edge.SecondaryID] = append(g.bySecondary[edge.SecondaryID], edge.ID)
	g.pairs[keyOf(edge)] = edge.ID
	return edge.ID, nil
}

// Get devuelve una copia de la relación; domain.ErrNotFound si no existe.
func (g *Graph) Get(id string) (entity.RelationshipEdge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.edges[id]
	if !ok {
		return entity.RelationshipEdge{}, domain.ErrNotFound
	}
	return *e, nil
}

// Update aplica una actualización parcial (medida y atributos). El resultado se vuelve a
// validar; si falla, la relación queda intacta.
func (g *Graph) Update(id string, patch entity.EdgePatch) (entity.RelationshipEdge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	current, ok := g.edges[id]
	if !ok {
		return entity.RelationshipEdge{}, domain.ErrNotFound
	}
	if patch.IsEmpty() {
		return *current, nil
	}
	next := patch.Apply(*current)
	if err := Validate(next); err != nil {
		return entity.RelationshipEdge{}, err
	}
	next.UpdatedAt = g.now()
	*current = next
	return next, nil
}

// Delete elimina la relación. Es idempotente: un ID inexistente no es error.
// Nunca borra las entidades de los extremos.
func (g *Graph) Delete(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.edges[id]
	if !ok {
		return
	}
	delete(g.edges, id)
	delete(g.pairs, keyOf(*e))
	g.byPrimary[e.PrimaryID] = without(g.byPrimary[e.PrimaryID], id)
	if len(g.byPrimary[e.PrimaryID]) == 0 {
		delete(g.byPrimary, e.PrimaryID)
	}
	g.bySecondary[e.SecondaryID] = without(g.bySecondary[e.SecondaryID], id)
	if len(g.bySecondary[e.SecondaryID]) == 0 {
		delete(g.bySecondary, e.SecondaryID)
	}
}

// QueryByPrimary relaciones cuyo extremo primario es (id, entityType), en orden de creación.
// entityType o relType vacíos no filtran.
func (g *Graph) QueryByPrimary(id string, entityType entity.EntityType, relType entity.RelationshipType) []entity.RelationshipEdge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.collect(g.byPrimary[id], func(e *entity.RelationshipEdge) bool {
		return (entityType == "" || e.PrimaryType == entityType) && (relType == "" || e.Type == relType)
	})
}

// QueryBySecondary relaciones cuyo extremo secundario es (id, entityType), en orden de creación.
func (g *Graph) QueryBySecondary(id string, entityType entity.EntityType, relType entity.RelationshipType) []entity.RelationshipEdge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.collect(g.bySecondary[id], func(e *entity.RelationshipEdge) bool {
		return (entityType == "" || e.SecondaryType == entityType) && (relType == "" || e.Type == relType)
	})
}

// All todas las relaciones del tipo indicado (vacío = todas) en orden de creación.
func (g *Graph) All(relType entity.RelationshipType) []entity.RelationshipEdge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]entity.RelationshipEdge, 0, len(g.edges))
	for _, e := range g.edges {
		if relType == "" || e.Type == relType {
			out = append(out, *e)
		}
	}
	sortBySeq(out)
	return out
}

// Apply ejecuta un plan de reconciliación sobre el grafo: actualizaciones, borrados y
// luego altas. Se detiene en el primer error; las escrituras previas no se revierten.
func (g *Graph) Apply(plan ReconcilePlan) error {
	for _, u := range plan.Updates {
		if _, err := g.Update(u.ID, u.Patch); err != nil {
			return fmt.Errorf("actualizar relación %s: %w", u.ID, err)
		}
	}
	for _, id := range plan.Deletes {
		g.Delete(id)
	}
	for _, e := range plan.Creates {
		if _, err := g.Create(e); err != nil {
			return fmt.Errorf("crear relación hacia %s: %w", e.SecondaryID, err)
		}
	}
	return nil
}

func (g *Graph) collect(ids []string, keep func(*entity.RelationshipEdge) bool) []entity.RelationshipEdge {
	out := make([]entity.RelationshipEdge, 0, len(ids))
	for _, id := range ids {
		if e := g.edges[id]; e != nil && keep(e) {
			out = append(out, *e)
		}
	}
	return out
}

func without(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
