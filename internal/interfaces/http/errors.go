package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-engine/internal/application/dto"
	"github.com/jhoicas/inventario-engine/internal/domain"
	"github.com/jhoicas/inventario-engine/pkg/logger"
)

// writeError traduce errores de dominio a respuestas HTTP:
//   - 400 VALIDATION    → relación o medida mal formada, dimensiones incompatibles.
//   - 400 INVALID_RANGE → fecha inicial posterior a la final.
//   - 400 BAD_REQUEST   → parámetros inválidos.
//   - 404 NOT_FOUND
//   - 409 DUPLICATE
//   - 500 INTERNAL      → el resto; se registra y no se expone el detalle.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrDimensionMismatch),
		errors.Is(err, domain.ErrIncompatibleDimension):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInvalidRange):
		status, code = fiber.StatusBadRequest, "INVALID_RANGE"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "BAD_REQUEST"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	}
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: "error interno del servidor"})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

// unauthorized 401 cuando el token no trae company_id.
func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token",
	})
}
