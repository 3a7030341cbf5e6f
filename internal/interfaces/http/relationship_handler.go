package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-engine/internal/application/dto"
	"github.com/jhoicas/inventario-engine/internal/application/usecase"
	"github.com/jhoicas/inventario-engine/pkg/logger"
)

// RelationshipHandler CRUD de relaciones y reemplazo en bloque de líneas (protegido).
type RelationshipHandler struct {
	uc  *usecase.RelationshipUseCase
	log *logger.Logger
}

// NewRelationshipHandler construye el handler.
func NewRelationshipHandler(uc *usecase.RelationshipUseCase, log *logger.Logger) *RelationshipHandler {
	return &RelationshipHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear relación (línea de compra o venta)
// @Tags         relationships
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRelationshipRequest  true  "Relación"
// @Success      201   {object}  dto.RelationshipResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/relationships [post]
func (h *RelationshipHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreateRelationshipRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), companyID, GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener relación por ID
// @Tags         relationships
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la relación"
// @Success      200  {object}  dto.RelationshipResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/relationships/{id} [get]
func (h *RelationshipHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar relaciones por extremo
// @Tags         relationships
// @Security     Bearer
// @Produce      json
// @Param        primary_id      query  string  false  "ID del extremo primario"
// @Param        secondary_id    query  string  false  "ID del extremo secundario"
// @Param        type            query  string  false  "PURCHASE_ITEM | PURCHASE_ASSET | SALE_ITEM"
// @Success      200  {array}   dto.RelationshipResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/relationships [get]
func (h *RelationshipHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var q dto.RelationshipQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), companyID, q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar medida o atributos de una relación
// @Tags         relationships
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID de la relación"
// @Param        body  body  dto.UpdateRelationshipRequest   true  "Campos a cambiar"
// @Success      200   {object}  dto.RelationshipResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/relationships/{id} [patch]
func (h *RelationshipHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateRelationshipRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), companyID, c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar relación (idempotente; no borra los extremos)
// @Tags         relationships
// @Security     Bearer
// @Param        id   path  string  true  "ID de la relación"
// @Success      204
// @Router       /api/relationships/{id} [delete]
func (h *RelationshipHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.UserContext(), companyID, c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReplaceLines godoc
// @Summary      Reemplazar en bloque las líneas de una compra o venta
// @Description  Diferencia por ítem: las líneas que siguen se actualizan, las que faltan se
//               eliminan y las nuevas se crean. Todo dentro de una transacción.
// @Tags         relationships
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        type  path  string                   true  "purchase | sale"
// @Param        id    path  string                   true  "ID de la transacción"
// @Param        body  body  dto.ReplaceLinesRequest  true  "Líneas deseadas"
// @Success      200   {object}  dto.ReplaceLinesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transactions/{type}/{id}/lines [put]
func (h *RelationshipHandler) ReplaceLines(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.ReplaceLinesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ReplaceLines(c.UserContext(), companyID, GetUserID(c), c.Params("type"), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
