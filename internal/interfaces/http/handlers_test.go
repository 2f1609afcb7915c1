package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultivo-labs/cultivo-api/internal/application/analytics"
	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
	"github.com/cultivo-labs/cultivo-api/internal/application/export"
	"github.com/cultivo-labs/cultivo-api/internal/application/ledger"
	"github.com/cultivo-labs/cultivo-api/internal/application/process"
	"github.com/cultivo-labs/cultivo-api/internal/application/usecase"
	"github.com/cultivo-labs/cultivo-api/internal/infrastructure/excel"
	"github.com/cultivo-labs/cultivo-api/internal/infrastructure/memory"
	"github.com/cultivo-labs/cultivo-api/internal/infrastructure/storage"
	httpiface "github.com/cultivo-labs/cultivo-api/internal/interfaces/http"
)

// stubPDF evita generar PDFs reales en las pruebas de rutas.
type stubPDF struct{}

func (stubPDF) GenerateStageReportPDF(_ context.Context, _ *dto.StageReportDTO) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

// buildTestApp construye una aplicación Fiber completa con repositorios en
// memoria y almacenamiento local temporal.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()

	products := memory.NewProductRepository(store)
	locations := memory.NewLocationRepository(store)
	stages := memory.NewStageRepository(store)
	substages := memory.NewSubstageRepository(store)
	movements := memory.NewMovementRepository(store)
	postits := memory.NewPostItRepository(store)
	recipes := memory.NewRecipeRepository(store)
	images := memory.NewRecipeImageRepository(store)
	responsibles := memory.NewResponsibleRepository(store)

	engine := analytics.NewEngine(products, stages, substages, locations, movements)

	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	app := fiber.New()
	httpiface.Router(app, httpiface.RouterDeps{
		ProductUC:  usecase.NewProductUseCase(products, movements, memory.NewLedgerTxRunner(store)),
		LocationUC: usecase.NewLocationUseCase(locations, stages, movements),
		StageUC: process.NewStageUseCase(
			memory.NewProcessTxRunner(store), stages, substages, locations, movements,
		),
		SubstageUC: process.NewSubstageUseCase(
			memory.NewProcessTxRunner(store), stages, substages, movements,
		),
		MovementUC: ledger.NewMovementUseCase(
			memory.NewLedgerTxRunner(store), movements, products, stages, substages, locations, false,
		),
		Engine:    engine,
		ReportPDF: stubPDF{},
		ExportUC: export.NewExportUseCase(
			products, locations, stages, substages, movements,
			postits, recipes, images,
			excel.NewCatalogExporter(), 10*time.Second,
		),
		PostItUC:      usecase.NewPostItUseCase(postits),
		RecipeUC:      usecase.NewRecipeUseCase(recipes, images, files),
		ResponsibleUC: usecase.NewResponsibleUseCase(responsibles, locations),
	})
	return app
}

// doJSON ejecuta una petición con cuerpo JSON y decodifica la respuesta en out.
func doJSON(t *testing.T, app *fiber.App, method, path string, body, out any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestProductosCRUD(t *testing.T) {
	app := buildTestApp(t)

	var created dto.ProductResponse
	resp := doJSON(t, app, fiber.MethodPost, "/api/productos/", fiber.Map{
		"name": "Agua", "unit": "l", "price": "2.5", "initial_stock": "100", "min_stock": "10",
	}, &created)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "100", created.CurrentStock.String())

	var got dto.ProductResponse
	resp = doJSON(t, app, fiber.MethodGet, "/api/productos/"+created.ID, nil, &got)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Agua", got.Name)

	var errBody dto.ErrorResponse
	resp = doJSON(t, app, fiber.MethodGet, "/api/productos/no-existe", nil, &errBody)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errBody.Code)

	resp = doJSON(t, app, fiber.MethodDelete, "/api/productos/"+created.ID, nil, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMovimientoStockInsuficiente(t *testing.T) {
	app := buildTestApp(t)

	var product dto.ProductResponse
	doJSON(t, app, fiber.MethodPost, "/api/productos/", fiber.Map{
		"name": "Abono", "unit": "kg", "price": "8", "initial_stock": "5",
	}, &product)

	var errBody dto.ErrorResponse
	resp := doJSON(t, app, fiber.MethodPost, "/api/movimientos/", fiber.Map{
		"type":        "uso",
		"responsible": "Carlos",
		"products":    []fiber.Map{{"product_id": product.ID, "quantity": "10"}},
	}, &errBody)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)
}

func TestEtapaCicloDeVidaPorHTTP(t *testing.T) {
	app := buildTestApp(t)

	var stage dto.StageResponse
	resp := doJSON(t, app, fiber.MethodPost, "/api/etapas/", fiber.Map{
		"name": "Germinación", "expected_duration": 7, "responsible": "Carlos",
	}, &stage)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "pending", stage.Status)

	var started dto.StageResponse
	resp = doJSON(t, app, fiber.MethodPost, "/api/etapas/"+stage.ID+"/iniciar", nil, &started)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "in_progress", started.Status)

	// Doble inicio: conflicto de estado.
	var errBody dto.ErrorResponse
	resp = doJSON(t, app, fiber.MethodPost, "/api/etapas/"+stage.ID+"/iniciar", nil, &errBody)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", errBody.Code)

	var finished dto.StageResponse
	resp = doJSON(t, app, fiber.MethodPost, "/api/etapas/"+stage.ID+"/finalizar", nil, &finished)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", finished.Status)

	var clone dto.StageResponse
	resp = doJSON(t, app, fiber.MethodPost, "/api/etapas/"+stage.ID+"/reiniciar", fiber.Map{
		"cycle_name": "Ciclo 2026-B",
	}, &clone)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Ciclo 2026-B", clone.CycleName)
	assert.Equal(t, stage.ID, clone.ParentStageID)
}

func TestDashboardYResumen(t *testing.T) {
	app := buildTestApp(t)

	var product dto.ProductResponse
	doJSON(t, app, fiber.MethodPost, "/api/productos/", fiber.Map{
		"name": "Agua", "unit": "l", "price": "2.5", "initial_stock": "100", "min_stock": "10",
	}, &product)

	var stage dto.StageResponse
	doJSON(t, app, fiber.MethodPost, "/api/etapas/", fiber.Map{
		"name": "Crecimiento", "expected_duration": 30,
	}, &stage)

	doJSON(t, app, fiber.MethodPost, "/api/movimientos/", fiber.Map{
		"type":        "uso",
		"stage_id":    stage.ID,
		"responsible": "Carlos",
		"products":    []fiber.Map{{"product_id": product.ID, "quantity": "30"}},
	}, nil)

	var dash dto.DashboardDTO
	resp := doJSON(t, app, fiber.MethodGet, "/api/dashboard", nil, &dash)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, dash.TotalProducts)
	assert.Equal(t, 1, dash.TotalMovements)
	assert.Equal(t, "75", dash.TotalCost.String())

	// Resumen en texto plano.
	req := httptest.NewRequest(fiber.MethodGet, "/api/etapas/"+stage.ID+"/resumen/texto", nil)
	txtResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, txtResp.StatusCode)
	raw, err := io.ReadAll(txtResp.Body)
	require.NoError(t, err)
	text := string(raw)
	assert.Contains(t, text, "RESUMEN DE ETAPA: Crecimiento")
	assert.Contains(t, text, "Costo total: $75.00")
}

func TestExportarExcel(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/exportar-excel", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheet")
	assert.True(t, strings.Contains(resp.Header.Get("Content-Disposition"), ".xlsx"))
}
