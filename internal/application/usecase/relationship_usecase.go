package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-engine/internal/application/dto"
	"github.com/jhoicas/inventario-engine/internal/domain"
	"github.com/jhoicas/inventario-engine/internal/domain/entity"
	"github.com/jhoicas/inventario-engine/internal/domain/measurement"
	"github.com/jhoicas/inventario-engine/internal/domain/relationship"
	"github.com/jhoicas/inventario-engine/internal/domain/repository"
	"github.com/jhoicas/inventario-engine/pkg/logger"
)

// RelationshipUseCase casos de uso de las relaciones (líneas de compra y venta).
type RelationshipUseCase struct {
	repo     repository.RelationshipRepository
	txRunner RelationshipTxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewRelationshipUseCase construye el caso de uso.
func NewRelationshipUseCase(repo repository.RelationshipRepository, txRunner RelationshipTxRunner, log *logger.Logger) *RelationshipUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RelationshipUseCase{repo: repo, txRunner: txRunner, log: log, now: time.Now}
}

// Create valida y registra una relación. Un (primary, secondary, type) repetido es un
// error de validación: el reenvío de una línea debe actualizarla, no duplicarla.
func (uc *RelationshipUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateRelationshipRequest) (*dto.RelationshipResponse, error) {
	m, err := fromMeasurementDTO(in.Measurement)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	edge := &entity.RelationshipEdge{
		ID:                 uuid.New().String(),
		CompanyID:          companyID,
		Type:               entity.RelationshipType(strings.ToUpper(strings.TrimSpace(in.Type))),
		PrimaryID:          strings.TrimSpace(in.PrimaryID),
		PrimaryType:        entity.EntityType(strings.ToLower(strings.TrimSpace(in.PrimaryType))),
		SecondaryID:        strings.TrimSpace(in.SecondaryID),
		SecondaryType:      entity.EntityType(strings.ToLower(strings.TrimSpace(in.SecondaryType))),
		Measurement:        m,
		PurchasedBy:        measurement.Dimension(strings.ToLower(strings.TrimSpace(in.PurchasedBy))),
		CostPerUnit:        in.CostPerUnit,
		PricePerUnit:       in.PricePerUnit,
		OriginalCost:       in.OriginalCost,
		DiscountAmount:     in.DiscountAmount,
		DiscountPercentage: in.DiscountPercentage,
		PerformedBy:        userID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := relationship.Validate(*edge); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, edge); err != nil {
		return nil, duplicateAsValidation(err, edge)
	}
	uc.log.Debug().Str("relationship_id", edge.ID).Str("type", string(edge.Type)).Msg("relación creada")
	return toRelationshipResponse(edge), nil
}

// GetByID domain.ErrNotFound si no existe en la empresa.
func (uc *RelationshipUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.RelationshipResponse, error) {
	e, err := uc.get(ctx, uc.repo, companyID, id)
	if err != nil {
		return nil, err
	}
	return toRelationshipResponse(e), nil
}

// Update actualización parcial de medida y atributos. El resultado se vuelve a validar
// (p. ej. cambiar la medida a peso exige purchased_by=weight).
func (uc *RelationshipUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateRelationshipRequest) (*dto.RelationshipResponse, error) {
	patch, err := patchFromDTO(in)
	if err != nil {
		return nil, err
	}
	e, err := uc.get(ctx, uc.repo, companyID, id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return toRelationshipResponse(e), nil
	}
	next, err := uc.applyPatch(ctx, uc.repo, *e, patch)
	if err != nil {
		return nil, err
	}
	return toRelationshipResponse(&next), nil
}

// Delete es idempotente: un ID inexistente no es error. Nunca borra los extremos.
func (uc *RelationshipUseCase) Delete(ctx context.Context, companyID, id string) error {
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return fmt.Errorf("eliminar relación: %w", err)
	}
	return nil
}

// List por extremo primario o secundario, en orden de creación.
func (uc *RelationshipUseCase) List(ctx context.Context, companyID string, q dto.RelationshipQuery) ([]dto.RelationshipResponse, error) {
	relType := entity.RelationshipType(strings.ToUpper(strings.TrimSpace(q.Type)))
	if relType != "" && !relType.Valid() {
		return nil, fmt.Errorf("%w: tipo de relación desconocido %q", domain.ErrValidation, q.Type)
	}
	var (
		edges []entity.RelationshipEdge
		err   error
	)
	switch {
	case q.PrimaryID != "":
		edges, err = uc.repo.ListByPrimary(ctx, companyID, q.PrimaryID, entityTypeOr(q.PrimaryType, relType, true), relType)
	case q.SecondaryID != "":
		edges, err = uc.repo.ListBySecondary(ctx, companyID, q.SecondaryID, entityTypeOr(q.SecondaryType, relType, false), relType)
	default:
		return nil, fmt.Errorf("%w: se requiere primary_id o secondary_id", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("listar relaciones: %w", err)
	}
	return toRelationshipList(edges), nil
}

// ReplaceLines reemplaza en bloque las líneas de una transacción: calcula el plan de
// reconciliación (diferencia por secondary_id) y lo aplica dentro de una transacción.
func (uc *RelationshipUseCase) ReplaceLines(ctx context.Context, companyID, userID, txKind, txID string, in dto.ReplaceLinesRequest) (*dto.ReplaceLinesResponse, error) {
	relType, err := linesType(txKind, in.RelationshipType)
	if err != nil {
		return nil, err
	}
	desired := make([]relationship.LineSpec, 0, len(in.Lines))
	for i, l := range in.Lines {
		m, err := fromMeasurementDTO(l.Measurement)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", i+1, err)
		}
		desired = append(desired, relationship.LineSpec{
			SecondaryID:        strings.TrimSpace(l.SecondaryID),
			Measurement:        m,
			PurchasedBy:        measurement.Dimension(strings.ToLower(strings.TrimSpace(l.PurchasedBy))),
			CostPerUnit:        l.CostPerUnit,
			PricePerUnit:       l.PricePerUnit,
			OriginalCost:       l.OriginalCost,
			DiscountAmount:     l.DiscountAmount,
			DiscountPercentage: l.DiscountPercentage,
		})
	}
	target := relationship.Target{CompanyID: companyID, Type: relType, PrimaryID: txID, PerformedBy: userID}
	endpoints, _ := relType.Endpoints()

	out := &dto.ReplaceLinesResponse{Created: []string{}, Updated: []string{}, Deleted: []string{}}
	err = uc.txRunner.RunRelationships(ctx, func(repo repository.RelationshipRepository) error {
		existing, err := repo.ListByPrimary(ctx, companyID, txID, endpoints.Primary, relType)
		if err != nil {
			return fmt.Errorf("listar líneas: %w", err)
		}
		plan, err := relationship.Plan(target, existing, desired)
		if err != nil {
			return err
		}
		current := make(map[string]entity.RelationshipEdge, len(existing))
		for _, e := range existing {
			current[e.ID] = e
		}

		for _, u := range plan.Updates {
			if _, err := uc.applyPatch(ctx, repo, current[u.ID], u.Patch); err != nil {
				return err
			}
			out.Updated = append(out.Updated, u.ID)
		}
		for _, id := range plan.Deletes {
			if err := repo.Delete(ctx, companyID, id); err != nil {
				return fmt.Errorf("eliminar línea %s: %w", id, err)
			}
			out.Deleted = append(out.Deleted, id)
		}
		now := uc.now()
		for i := range plan.Creates {
			e := plan.Creates[i]
			e.ID = uuid.New().String()
			e.CreatedAt, e.UpdatedAt = now, now
			if err := repo.Create(ctx, &e); err != nil {
				return duplicateAsValidation(err, &e)
			}
			out.Created = append(out.Created, e.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("company_id", companyID).
		Str("transaction_id", txID).
		Int("created", len(out.Created)).
		Int("updated", len(out.Updated)).
		Int("deleted", len(out.Deleted)).
		Msg("líneas reconciliadas")
	return out, nil
}

func (uc *RelationshipUseCase) get(ctx context.Context, repo repository.RelationshipRepository, companyID, id string) (*entity.RelationshipEdge, error) {
	e, err := repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("obtener relación: %w", err)
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (uc *RelationshipUseCase) applyPatch(ctx context.Context, repo repository.RelationshipRepository, current entity.RelationshipEdge, patch entity.EdgePatch) (entity.RelationshipEdge, error) {
	next := patch.Apply(current)
	if err := relationship.Validate(next); err != nil {
		return entity.RelationshipEdge{}, err
	}
	next.UpdatedAt = uc.now()
	if err := repo.Update(ctx, &next); err != nil {
		return entity.RelationshipEdge{}, fmt.Errorf("actualizar relación %s: %w", next.ID, err)
	}
	return next, nil
}

func patchFromDTO(in dto.UpdateRelationshipRequest) (entity.EdgePatch, error) {
	p := entity.EdgePatch{
		CostPerUnit:        in.CostPerUnit,
		PricePerUnit:       in.PricePerUnit,
		OriginalCost:       in.OriginalCost,
		DiscountAmount:     in.DiscountAmount,
		DiscountPercentage: in.DiscountPercentage,
	}
	if in.Measurement != nil {
		m, err := fromMeasurementDTO(*in.Measurement)
		if err != nil {
			return entity.EdgePatch{}, err
		}
		p.Measurement = m
	}
	if in.PurchasedBy != nil {
		dim := measurement.Dimension(strings.ToLower(strings.TrimSpace(*in.PurchasedBy)))
		p.PurchasedBy = &dim
	}
	return p, nil
}

// linesType tipo de relación de las líneas de una transacción; por defecto
// purchase → PURCHASE_ITEM y sale → SALE_ITEM.
func linesType(txKind, requested string) (entity.RelationshipType, error) {
	kind := entity.EntityType(strings.ToLower(strings.TrimSpace(txKind)))
	relType := entity.RelationshipType(strings.ToUpper(strings.TrimSpace(requested)))
	if relType == "" {
		switch kind {
		case entity.EntityPurchase:
			relType = entity.RelPurchaseItem
		case entity.EntitySale:
			relType = entity.RelSaleItem
		default:
			return "", fmt.Errorf("%w: tipo de transacción %q no soportado (purchase, sale)", domain.ErrInvalidInput, txKind)
		}
	}
	endpoints, ok := relType.Endpoints()
	if !ok {
		return "", fmt.Errorf("%w: tipo de relación desconocido %q", domain.ErrValidation, requested)
	}
	if endpoints.Primary != kind {
		return "", fmt.Errorf("%w: %s no tiene como extremo primario a %s", domain.ErrValidation, relType, kind)
	}
	return relType, nil
}

// entityTypeOr tipo de extremo pedido o, si viene vacío, el declarado por relType.
func entityTypeOr(requested string, relType entity.RelationshipType, primary bool) entity.EntityType {
	if t := strings.ToLower(strings.TrimSpace(requested)); t != "" {
		return entity.EntityType(t)
	}
	endpoints, ok := relType.Endpoints()
	if !ok {
		return ""
	}
	if primary {
		return endpoints.Primary
	}
	return endpoints.Secondary
}

func duplicateAsValidation(err error, e *entity.RelationshipEdge) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return fmt.Errorf("%w: ya existe la relación %s (%s → %s)", domain.ErrValidation, e.Type, e.PrimaryID, e.SecondaryID)
	}
	if errors.Is(err, domain.ErrValidation) {
		return err
	}
	return fmt.Errorf("crear relación: %w", err)
}
