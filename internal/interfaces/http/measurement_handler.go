package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-engine/internal/application/dto"
	"github.com/jhoicas/inventario-engine/internal/application/usecase"
	"github.com/jhoicas/inventario-engine/pkg/logger"
)

// MeasurementHandler conversión de unidades.
type MeasurementHandler struct {
	uc  *usecase.MeasurementUseCase
	log *logger.Logger
}

// NewMeasurementHandler construye el handler.
func NewMeasurementHandler(uc *usecase.MeasurementUseCase, log *logger.Logger) *MeasurementHandler {
	return &MeasurementHandler{uc: uc, log: log}
}

// Convert godoc
// @Summary      Convertir una medida a otra unidad de su dimensión
// @Tags         measurements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConvertMeasurementRequest  true  "Medida y unidad destino"
// @Success      200   {object}  dto.ConvertMeasurementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/measurements/convert [post]
func (h *MeasurementHandler) Convert(c *fiber.Ctx) error {
	var in dto.ConvertMeasurementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Convert(in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Units godoc
// @Summary      Unidades válidas por dimensión
// @Tags         measurements
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Router       /api/measurements/units [get]
func (h *MeasurementHandler) Units(c *fiber.Ctx) error {
	return c.JSON(h.uc.Units())
}
