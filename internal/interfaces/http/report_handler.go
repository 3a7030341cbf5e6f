package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-engine/internal/application/dto"
	"github.com/jhoicas/inventario-engine/internal/application/usecase"
	"github.com/jhoicas/inventario-engine/pkg/logger"
)

// ReportHandler endpoints del reporte de rentabilidad.
type ReportHandler struct {
	uc  *usecase.ProfitReportUseCase
	log *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ProfitReportUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// GetProfit godoc
// @Summary      Reporte de rentabilidad por ítem, categoría y período
// @Description  Deriva ingreso, costo, utilidad y margen de cada línea de venta del período,
//               agrega por ítem y arma rankings y totales. Las líneas con referencias
//               colgantes se omiten y se cuentan en skipped_lines.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date        query  string  false  "Inicio del período (YYYY-MM-DD). Default: primer día del mes."
// @Param        end_date          query  string  false  "Fin del período (YYYY-MM-DD). Default: hoy."
// @Param        period            query  string  false  "day | week | month | year"
// @Param        category          query  string  false  "Filtra por categoría (Uncategorized = sin categoría)"
// @Param        profit_threshold  query  string  false  "Conserva ítems con utilidad >= umbral"
// @Param        top_n             query  int     false  "Tamaño de los rankings (default 10)"
// @Success      200  {object}  dto.ProfitReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/profit [get]
func (h *ReportHandler) GetProfit(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var req dto.ProfitReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}
	out, err := h.uc.Generate(c.UserContext(), companyID, req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar el reporte de rentabilidad (CSV, XLSX o PDF)
// @Tags         reports
// @Security     Bearer
// @Produce      octet-stream
// @Param        format  query  string  false  "csv | xlsx | pdf (default csv)"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/profit/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var req dto.ProfitReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}
	file, err := h.uc.Export(c.UserContext(), companyID, req, c.Query("format", "csv"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.Send(file.Content)
}
