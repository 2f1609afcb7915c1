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

	"github.com/cultivo-labs/cultivo-api/internal/application/analytics"
	"github.com/cultivo-labs/cultivo-api/internal/application/export"
	"github.com/cultivo-labs/cultivo-api/internal/application/ledger"
	"github.com/cultivo-labs/cultivo-api/internal/application/process"
	"github.com/cultivo-labs/cultivo-api/internal/application/usecase"
	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
	infraexcel "github.com/cultivo-labs/cultivo-api/internal/infrastructure/excel"
	"github.com/cultivo-labs/cultivo-api/internal/infrastructure/memory"
	infrapdf "github.com/cultivo-labs/cultivo-api/internal/infrastructure/pdf"
	"github.com/cultivo-labs/cultivo-api/internal/infrastructure/postgres"
	infrastorage "github.com/cultivo-labs/cultivo-api/internal/infrastructure/storage"
	httpRouter "github.com/cultivo-labs/cultivo-api/internal/interfaces/http"
	"github.com/cultivo-labs/cultivo-api/pkg/config"
	"github.com/cultivo-labs/cultivo-api/pkg/logger"
)

// repos agrupa los puertos de persistencia ya construidos para el modo elegido.
type repos struct {
	product       repository.ProductRepository
	location      repository.LocationRepository
	stage         repository.StageRepository
	substage      repository.SubstageRepository
	movement      repository.MovementRepository
	postit        repository.PostItRepository
	recipe        repository.RecipeRepository
	recipeImage   repository.RecipeImageRepository
	responsible   repository.ResponsibleRepository
	ledgerRunner  ledger.TxRunner
	processRunner process.TxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Mode).
		Bool("stock_per_location", cfg.Storage.PerLocation).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var r repos
	switch cfg.Storage.Mode {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		r = repos{
			product:       postgres.NewProductRepository(pool),
			location:      postgres.NewLocationRepository(pool),
			stage:         postgres.NewStageRepository(pool),
			substage:      postgres.NewSubstageRepository(pool),
			movement:      postgres.NewMovementRepository(pool),
			postit:        postgres.NewPostItRepository(pool),
			recipe:        postgres.NewRecipeRepository(pool),
			recipeImage:   postgres.NewRecipeImageRepository(pool),
			responsible:   postgres.NewResponsibleRepository(pool),
			ledgerRunner:  postgres.NewLedgerTxRunner(pool),
			processRunner: postgres.NewProcessTxRunner(pool),
		}
	default:
		store := memory.NewStore()
		r = repos{
			product:       memory.NewProductRepository(store),
			location:      memory.NewLocationRepository(store),
			stage:         memory.NewStageRepository(store),
			substage:      memory.NewSubstageRepository(store),
			movement:      memory.NewMovementRepository(store),
			postit:        memory.NewPostItRepository(store),
			recipe:        memory.NewRecipeRepository(store),
			recipeImage:   memory.NewRecipeImageRepository(store),
			responsible:   memory.NewResponsibleRepository(store),
			ledgerRunner:  memory.NewLedgerTxRunner(store),
			processRunner: memory.NewProcessTxRunner(store),
		}
	}

	fileStorage, err := infrastorage.NewLocalStorage(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de archivos")
	}

	productUC := usecase.NewProductUseCase(r.product, r.movement, r.ledgerRunner)
	locationUC := usecase.NewLocationUseCase(r.location, r.stage, r.movement)
	stageUC := process.NewStageUseCase(r.processRunner, r.stage, r.substage, r.location, r.movement)
	substageUC := process.NewSubstageUseCase(r.processRunner, r.stage, r.substage, r.movement)
	movementUC := ledger.NewMovementUseCase(
		r.ledgerRunner, r.movement, r.product, r.stage, r.substage, r.location,
		cfg.Storage.PerLocation,
	)
	engine := analytics.NewEngine(r.product, r.stage, r.substage, r.location, r.movement)
	exportUC := export.NewExportUseCase(
		r.product, r.location, r.stage, r.substage, r.movement,
		r.postit, r.recipe, r.recipeImage,
		infraexcel.NewCatalogExporter(),
		time.Duration(cfg.Storage.ExportTimeoutSeconds)*time.Second,
	)
	postitUC := usecase.NewPostItUseCase(r.postit)
	recipeUC := usecase.NewRecipeUseCase(r.recipe, r.recipeImage, fileStorage)
	responsibleUC := usecase.NewResponsibleUseCase(r.responsible, r.location)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cultivo API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		LocationUC:    locationUC,
		StageUC:       stageUC,
		SubstageUC:    substageUC,
		MovementUC:    movementUC,
		Engine:        engine,
		ReportPDF:     infrapdf.NewMarotoReportGenerator(),
		ExportUC:      exportUC,
		PostItUC:      postitUC,
		RecipeUC:      recipeUC,
		ResponsibleUC: responsibleUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
