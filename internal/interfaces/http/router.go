package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-engine/internal/application/usecase"
	"github.com/jhoicas/inventario-engine/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReportUC       *usecase.ProfitReportUseCase
	RelationshipUC *usecase.RelationshipUseCase
	MeasurementUC  *usecase.MeasurementUseCase
	JWTSecret      string
	Log            *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	writers := RequireRole(RoleAdmin, RoleBodeguero)

	// Reportes (cualquier rol)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, log)
	reports.Get("/profit", reportHandler.GetProfit)
	reports.Get("/profit/export", reportHandler.Export)

	// Relaciones (escritura: admin o bodeguero)
	relationships := protected.Group("/relationships")
	relHandler := NewRelationshipHandler(deps.RelationshipUC, log)
	relationships.Get("/", relHandler.List)
	relationships.Get("/:id", relHandler.GetByID)
	relationships.Post("/", writers, relHandler.Create)
	relationships.Patch("/:id", writers, relHandler.Update)
	relationships.Delete("/:id", writers, relHandler.Delete)

	// Reemplazo en bloque de líneas de una compra o venta
	protected.Put("/transactions/:type/:id/lines", writers, relHandler.ReplaceLines)

	// Medidas
	measurements := protected.Group("/measurements")
	measurementHandler := NewMeasurementHandler(deps.MeasurementUC, log)
	measurements.Get("/units", measurementHandler.Units)
	measurements.Post("/convert", measurementHandler.Convert)
}
