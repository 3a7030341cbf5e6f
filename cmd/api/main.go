package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/inventario-engine/internal/application/usecase"
	"github.com/jhoicas/inventario-engine/internal/domain/period"
	"github.com/jhoicas/inventario-engine/internal/domain/repository"
	"github.com/jhoicas/inventario-engine/internal/infrastructure/export"
	"github.com/jhoicas/inventario-engine/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-engine/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-engine/internal/interfaces/http"
	"github.com/jhoicas/inventario-engine/pkg/config"
	"github.com/jhoicas/inventario-engine/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// stores puertos de persistencia según STORE_DRIVER.
type stores struct {
	snapshots     repository.SnapshotRepository
	relationships repository.RelationshipRepository
	txRunner      usecase.RelationshipTxRunner
	close         func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	granularity, err := period.ParseGranularity(cfg.Report.DefaultGranularity, period.Month)
	if err != nil {
		log.Fatal().Err(err).Msg("REPORT_DEFAULT_PERIOD inválido")
	}
	reportUC := usecase.NewProfitReportUseCase(st.snapshots, usecase.ReportOptions{
		DefaultTopN:        cfg.Report.DefaultTopN,
		MaxTopN:            cfg.Report.MaxTopN,
		DefaultGranularity: granularity,
		Location:           cfg.Report.Location(),
	}, log).WithExporters(
		export.NewCSVExporter(),
		export.NewXLSXExporter(),
		export.NewPDFExporter(cfg.App.Name),
	)
	relationshipUC := usecase.NewRelationshipUseCase(st.relationships, st.txRunner, log)
	measurementUC := usecase.NewMeasurementUseCase()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (requiere `swag init`)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Inventario Engine API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReportUC:       reportUC,
		RelationshipUC: relationshipUC,
		MeasurementUC:  measurementUC,
		JWTSecret:      cfg.JWT.Secret,
		Log:            log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStores memory: almacén vacío en proceso (desarrollo); postgres: pool compartido.
func openStores(ctx context.Context, cfg *config.Config) (stores, error) {
	if cfg.Store.Driver == "memory" {
		store := memory.NewStore()
		return stores{snapshots: store, relationships: store, txRunner: store, close: func() {}}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return stores{}, err
	}
	return stores{
		snapshots:     postgres.NewSnapshotRepository(pool),
		relationships: postgres.NewRelationshipRepository(pool),
		txRunner:      postgres.NewTxRunner(pool),
		close:         pool.Close,
	}, nil
}
