package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cultivo-labs/cultivo-api/internal/application/analytics"
	"github.com/cultivo-labs/cultivo-api/internal/application/export"
	"github.com/cultivo-labs/cultivo-api/internal/application/ledger"
	"github.com/cultivo-labs/cultivo-api/internal/application/process"
	"github.com/cultivo-labs/cultivo-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	LocationUC    *usecase.LocationUseCase
	StageUC       *process.StageUseCase
	SubstageUC    *process.SubstageUseCase
	MovementUC    *ledger.MovementUseCase
	Engine        *analytics.Engine
	ReportPDF     analytics.StageReportPDFGenerator
	ExportUC      *export.ExportUseCase
	PostItUC      *usecase.PostItUseCase
	RecipeUC      *usecase.RecipeUseCase
	ResponsibleUC *usecase.ResponsibleUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Productos
	products := api.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Locaciones
	locations := api.Group("/locaciones")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)

	// Etapas y su ciclo de vida
	stages := api.Group("/etapas")
	stageHandler := NewStageHandler(deps.StageUC)
	reportHandler := NewReportHandler(deps.Engine, deps.ReportPDF)
	stages.Post("/", stageHandler.Create)
	stages.Get("/", stageHandler.List)
	stages.Get("/:id", stageHandler.GetByID)
	stages.Put("/:id", stageHandler.Update)
	stages.Delete("/:id", stageHandler.Delete)
	stages.Post("/:id/iniciar", stageHandler.Start)
	stages.Post("/:id/finalizar", stageHandler.Finish)
	stages.Post("/:id/reiniciar", stageHandler.Restart)
	stages.Get("/:id/resumen", reportHandler.StageReport)
	stages.Get("/:id/resumen/texto", reportHandler.StageReportText)
	stages.Get("/:id/resumen/pdf", reportHandler.StageReportPDF)

	// Sub-etapas
	substages := api.Group("/subetapas")
	substageHandler := NewSubstageHandler(deps.SubstageUC)
	substages.Post("/", substageHandler.Create)
	substages.Get("/", substageHandler.List)
	substages.Get("/:id", substageHandler.GetByID)
	substages.Put("/:id", substageHandler.Update)
	substages.Delete("/:id", substageHandler.Delete)
	substages.Post("/:id/iniciar", substageHandler.Start)
	substages.Post("/:id/finalizar", substageHandler.Finish)

	// Libro de movimientos
	movements := api.Group("/movimientos")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Post("/", movementHandler.Register)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Put("/:id", movementHandler.Update)
	movements.Delete("/:id", movementHandler.Delete)

	// Tablero y gráficos
	analyticsHandler := NewAnalyticsHandler(deps.Engine)
	api.Get("/dashboard", analyticsHandler.Dashboard)

	charts := api.Group("/graficos")
	charts.Get("/stock", analyticsHandler.StockChart)
	charts.Get("/consumo-productos", analyticsHandler.ConsumptionByProduct)
	charts.Get("/consumo-locaciones", analyticsHandler.ConsumptionByLocation)
	charts.Get("/gastos-etapas", analyticsHandler.ExpensesByStage)
	charts.Get("/gastos-locaciones", analyticsHandler.ExpensesByLocation)
	charts.Get("/consumo-etapas", analyticsHandler.ConsumptionByStage)
	charts.Get("/consumo-subetapas", analyticsHandler.ConsumptionBySubstage)
	charts.Get("/gastos-subetapas", analyticsHandler.ExpensesBySubstage)
	charts.Get("/consumo-productos-subetapas", analyticsHandler.ConsumptionByProductPerSubstage)
	charts.Get("/consumo-mensual", analyticsHandler.MonthlyConsumptionByProduct)
	charts.Get("/gastos-mensual", analyticsHandler.MonthlyExpenseByProduct)
	charts.Get("/consumo-anual", analyticsHandler.YearlyConsumptionByProduct)
	charts.Get("/gastos-anual", analyticsHandler.YearlyExpenseByProduct)
	charts.Get("/consumo-mensual-locaciones", analyticsHandler.MonthlyConsumptionByLocation)
	charts.Get("/gastos-mensual-locaciones", analyticsHandler.MonthlyExpenseByLocation)
	charts.Get("/consumo-anual-locaciones", analyticsHandler.YearlyConsumptionByLocation)
	charts.Get("/gastos-anual-locaciones", analyticsHandler.YearlyExpenseByLocation)
	charts.Get("/tiempos-etapas", analyticsHandler.TimeComparisonStages)
	charts.Get("/tiempos-subetapas", analyticsHandler.TimeComparisonSubstages)
	charts.Get("/tiempos-locaciones", analyticsHandler.TimeByLocation)

	// Exportación
	exportHandler := NewExportHandler(deps.ExportUC)
	api.Get("/exportar-excel", exportHandler.ExportExcel)

	// Notas del tablero
	postits := api.Group("/postits")
	postitHandler := NewPostItHandler(deps.PostItUC)
	postits.Post("/", postitHandler.Create)
	postits.Get("/", postitHandler.List)
	postits.Put("/:id", postitHandler.Update)
	postits.Delete("/:id", postitHandler.Delete)

	// Recetas e imágenes
	recipes := api.Group("/recetas")
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	recipes.Post("/imagenes", recipeHandler.UploadImage)
	recipes.Get("/imagenes", recipeHandler.ListImages)
	recipes.Put("/imagenes/:id", recipeHandler.UpdateImage)
	recipes.Delete("/imagenes/:id", recipeHandler.DeleteImage)
	recipes.Post("/", recipeHandler.Upload)
	recipes.Get("/", recipeHandler.List)
	recipes.Get("/:id/descargar", recipeHandler.Download)
	recipes.Delete("/:id", recipeHandler.Delete)

	// Responsables de locación
	responsibles := api.Group("/responsables")
	responsibleHandler := NewResponsibleHandler(deps.ResponsibleUC)
	responsibles.Post("/", responsibleHandler.Create)
	responsibles.Get("/", responsibleHandler.List)
	responsibles.Put("/:id", responsibleHandler.Update)
	responsibles.Delete("/:id", responsibleHandler.Delete)
}
