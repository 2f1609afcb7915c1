package analytics_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultivo-labs/cultivo-api/internal/application/analytics"
	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────

type analyticsFixture struct {
	engine    *analytics.Engine
	products  *memory.ProductRepository
	stages    *memory.StageRepository
	substages *memory.SubstageRepository
	locations *memory.LocationRepository
	movements *memory.MovementRepository
}

// newAnalyticsFixture arma el motor de agregación sobre repositorios en
// memoria; los datos se siembran directo en los repos con fechas fijas.
func newAnalyticsFixture(t *testing.T) *analyticsFixture {
	t.Helper()
	store := memory.NewStore()
	f := &analyticsFixture{
		products:  memory.NewProductRepository(store),
		stages:    memory.NewStageRepository(store),
		substages: memory.NewSubstageRepository(store),
		locations: memory.NewLocationRepository(store),
		movements: memory.NewMovementRepository(store),
	}
	f.engine = analytics.NewEngine(f.products, f.stages, f.substages, f.locations, f.movements)
	return f
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intPtr(v int) *int { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func (f *analyticsFixture) seedProduct(t *testing.T, id, name, unit, stock, min, price string, hasStock bool) {
	t.Helper()
	require.NoError(t, f.products.Create(&entity.Product{
		ID:           id,
		Name:         name,
		Unit:         unit,
		Price:        d(price),
		HasStock:     hasStock,
		CurrentStock: d(stock),
		MinStock:     d(min),
	}))
}

func (f *analyticsFixture) seedLocation(t *testing.T, id, name string) {
	t.Helper()
	require.NoError(t, f.locations.Create(&entity.Location{ID: id, Name: name}))
}

func (f *analyticsFixture) seedStage(t *testing.T, stage *entity.Stage) {
	t.Helper()
	require.NoError(t, f.stages.Create(stage))
}

func (f *analyticsFixture) seedSubstage(t *testing.T, sub *entity.Substage) {
	t.Helper()
	require.NoError(t, f.substages.Create(sub))
}

// seedMovement completa id, costo total y fecha por defecto antes de guardar.
func (f *analyticsFixture) seedMovement(t *testing.T, mov *entity.Movement) {
	t.Helper()
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	if mov.Responsible == "" {
		mov.Responsible = "Carlos"
	}
	if mov.Date.IsZero() {
		mov.Date = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	}
	mov.Cost = mov.TotalCost()
	require.NoError(t, f.movements.Create(mov))
}

func line(productID, qty, unit, price string) entity.MovementLine {
	return entity.MovementLine{ProductID: productID, Quantity: d(qty), Unit: unit, UnitPrice: d(price)}
}

// ──────────────────────────────────────────────────────────────
// Tablero
// ──────────────────────────────────────────────────────────────

func TestDashboardTotalesYAlertas(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.seedProduct(t, "p-agua", "Agua", "l", "100", "10", "2.5", true)
	f.seedProduct(t, "p-abono", "Abono", "kg", "8", "10", "8", true)  // bajo
	f.seedProduct(t, "p-semilla", "Semilla", "u", "0", "5", "1", true) // crítico
	f.seedProduct(t, "p-ph", "pH", "pH", "6.5", "0", "0", false)       // sin inventario
	f.seedLocation(t, "loc-a", "Invernadero A")
	f.seedStage(t, &entity.Stage{ID: "st-1", Name: "Germinación", Status: entity.StatusPending, ExpectedDuration: 7})
	f.seedMovement(t, &entity.Movement{
		Type:  entity.MovementTypeUso,
		Lines: []entity.MovementLine{line("p-agua", "30", "l", "2.5")},
	})
	f.seedMovement(t, &entity.Movement{
		Type:  entity.MovementTypeCompra,
		Lines: []entity.MovementLine{line("p-abono", "5", "kg", "8")},
	})

	dash, err := f.engine.Dashboard()
	require.NoError(t, err)

	assert.Equal(t, 4, dash.TotalProducts)
	assert.Equal(t, 1, dash.TotalStages)
	assert.Equal(t, 1, dash.TotalLocations)
	assert.Equal(t, 2, dash.TotalMovements)
	assert.Equal(t, "115", dash.TotalCost.String()) // 30×2.5 + 5×8

	require.Len(t, dash.LowStockAlerts, 2)
	byName := map[string]string{}
	for _, a := range dash.LowStockAlerts {
		byName[a.ProductName] = a.Status
	}
	assert.Equal(t, analytics.AlertLow, byName["Abono"])
	assert.Equal(t, analytics.AlertCritical, byName["Semilla"])
}

func TestStockChartExcluyeSinInventario(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.seedProduct(t, "p-agua", "Agua", "l", "100", "10", "2.5", true)
	f.seedProduct(t, "p-ph", "pH", "pH", "6.5", "0", "0", false)

	chart, err := f.engine.StockChart()
	require.NoError(t, err)
	require.Len(t, chart, 1)
	assert.Equal(t, "Agua", chart[0].Name)
	assert.Equal(t, "100", chart[0].CurrentStock.String())
}

// ──────────────────────────────────────────────────────────────
// Desgloses
// ──────────────────────────────────────────────────────────────

func TestConsumptionByProductSoloUsos(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.seedProduct(t, "p-agua", "Agua", "l", "100", "10", "2.5", true)
	f.seedMovement(t, &entity.Movement{
		Type:  entity.MovementTypeUso,
		Lines: []entity.MovementLine{line("p-agua", "30", "l", "2.5")},
	})
	f.seedMovement(t, &entity.Movement{
		Type:  entity.MovementTypeUso,
		Lines: []entity.MovementLine{line("p-agua", "20", "l", "2.5")},
	})
	f.seedMovement(t, &entity.Movement{
		Type:  entity.MovementTypeCompra, // las compras no cuentan como consumo
		Lines: []entity.MovementLine{line("p-agua", "500", "l", "2.5")},
	})

	out, err := f.engine.ConsumptionByProduct()
	require.NoError(t, err)
	assert.Equal(t, "50", out["Agua"].String())
}

func TestConsumptionByLocationAnidado(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.seedProduct(t, "p-agua", "Agua", "l", "100", "10", "2.5", true)
	f.seedLocation(t, "loc-a", "Invernadero A")
	f.seedMovement(t, &entity.Movement{
		Type:         entity.MovementTypeUso,
		LocationID:   "loc-a",
		LocationName: "Invernadero A",
		Lines:        []entity.MovementLine{line("p-agua", "30", "l", "2.5")},
	})
	f.seedMovement(t, &entity.Movement{
		Type:  entity.MovementTypeUso, // sin locación
		Lines: []entity.MovementLine{line("p-agua", "10", "l", "2.5")},
	})

	out, err := f.engine.ConsumptionByLocation()
	require.NoError(t, err)
	assert.Equal(t, "30", out["Invernadero A"]["Agua"].String())
	assert.Equal(t, "10", out["Sin especificar"]["Agua"].String())
}

func TestExpensesByStageTodosLosTipos(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.seedProduct(t, "p-agua", "Agua", "l", "100", "10", "2.5", true)
	f.seedStage(t, &entity.Stage{ID: "st-1", Name: "Germinación", Status: entity.StatusInProgress, ExpectedDuration: 7})
	f.seedMovement(t, &entity.Movement{
		Type:    entity.MovementTypeUso,
		StageID: "st-1",
		Lines:   []entity.MovementLine{line("p-agua", "30", "l", "2.5")},
	})
	f.seedMovement(t, &entity.Movement{
		Type:    entity.MovementTypeCompra,
		StageID: "st-1",
		Lines:   []entity.MovementLine{line("p-agua", "10", "l", "2.5")},
	})

	gastos, err := f.engine.ExpensesByStage()
	require.NoError(t, err)
	assert.Equal(t, "100", gastos["Germinación"].String()) // 75 + 25

	// El consumo por etapa solo cuenta usos.
	consumo, err := f.engine.ConsumptionByStage()
	require.NoError(t, err)
	assert.Equal(t, "75", consumo["Germinación"].String())
}

func TestConsumptionBySubstage(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.seedProduct(t, "p-agua", "Agua", "l", "100", "10", "2.5", true)
	f.seedStage(t, &entity.Stage{ID: "st-1", Name: "Germinación", Status: entity.StatusInProgress, ExpectedDuration: 7})
	f.seedSubstage(t, &entity.Substage{ID: "ss-1", Name: "Remojo", StageID: "st-1", Status: entity.StatusInProgress, ExpectedDuration: 2})
	f.seedMovement(t, &entity.Movement{
		Type:       entity.MovementTypeUso,
		StageID:    "st-1",
		SubstageID: "ss-1",
		Lines:      []entity.MovementLine{line("p-agua", "12", "l", "2.5")},
	})

	out, err := f.engine.ConsumptionBySubstage()
	require.NoError(t, err)
	assert.Equal(t, "30", out["Remojo"].String()) // 12 × 2.5

	porProducto, err := f.engine.ConsumptionByProductPerSubstage()
	require.NoError(t, err)
	assert.Equal(t, "12", porProducto["Remojo"]["Agua"].String())
}

func TestBucketsMensualesYAnuales(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.seedProduct(t, "p-agua", "Agua", "l", "100", "10", "2.5", true)
	f.seedMovement(t, &entity.Movement{
		Type:  entity.MovementTypeUso,
		Date:  time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC),
		Lines: []entity.MovementLine{line("p-agua", "30", "l", "2.5")},
	})
	f.seedMovement(t, &entity.Movement{
		Type:  entity.MovementTypeUso,
		Date:  time.Date(2026, 6, 2, 9, 0, 0, 0, time.UTC),
		Lines: []entity.MovementLine{line("p-agua", "20", "l", "2.5")},
	})
	f.seedMovement(t, &entity.Movement{
		Type:  entity.MovementTypeCompra,
		Date:  time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC),
		Lines: []entity.MovementLine{line("p-agua", "100", "l", "2")},
	})

	mensual, err := f.engine.MonthlyConsumptionByProduct()
	require.NoError(t, err)
	assert.Equal(t, "30", mensual["2026-05"]["Agua"].String())
	assert.Equal(t, "20", mensual["2026-06"]["Agua"].String())
	assert.NotContains(t, mensual, "2025-12") // compra: no es consumo

	anual, err := f.engine.YearlyExpenseByProduct()
	require.NoError(t, err)
	assert.Equal(t, "125", anual["2026"]["Agua"].String()) // 75 + 50
	assert.Equal(t, "200", anual["2025"]["Agua"].String())
}

// ──────────────────────────────────────────────────────────────
// Comparaciones de tiempo
// ──────────────────────────────────────────────────────────────

func TestTimeComparisonStages(t *testing.T) {
	f := newAnalyticsFixture(t)
	start := time.Now().Add(-3 * 24 * time.Hour)
	f.seedStage(t, &entity.Stage{
		ID: "st-1", Name: "Germinación", Status: entity.StatusCompleted,
		ExpectedDuration: 7, ActualDuration: intPtr(5),
		StartTime: timePtr(start), EndTime: timePtr(time.Now()),
	})
	f.seedStage(t, &entity.Stage{
		ID: "st-2", Name: "Crecimiento", Status: entity.StatusInProgress,
		ExpectedDuration: 30, StartTime: timePtr(start),
	})
	f.seedStage(t, &entity.Stage{
		ID: "st-3", Name: "Secado", Status: entity.StatusPending, ExpectedDuration: 10,
	})

	out, err := f.engine.TimeComparisonStages()
	require.NoError(t, err)
	require.Len(t, out, 3)

	byName := map[string]int{}
	for _, c := range out {
		byName[c.Name] = c.Actual
	}
	assert.Equal(t, 5, byName["Germinación"]) // duración congelada
	assert.Equal(t, 3, byName["Crecimiento"]) // días transcurridos en vivo
	assert.Equal(t, 0, byName["Secado"])
}

func TestTimeByLocationAgrega(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.seedLocation(t, "loc-a", "Invernadero A")
	f.seedStage(t, &entity.Stage{
		ID: "st-1", Name: "Germinación", LocationID: "loc-a",
		Status: entity.StatusCompleted, ExpectedDuration: 7, ActualDuration: intPtr(5),
	})
	f.seedStage(t, &entity.Stage{
		ID: "st-2", Name: "Crecimiento", LocationID: "loc-a",
		Status: entity.StatusCompleted, ExpectedDuration: 30, ActualDuration: intPtr(28),
	})

	out, err := f.engine.TimeByLocation()
	require.NoError(t, err)
	agg := out["Invernadero A"]
	assert.Equal(t, 37, agg.Expected)
	assert.Equal(t, 33, agg.Actual)
}

// ──────────────────────────────────────────────────────────────
// Resumen de etapa
// ──────────────────────────────────────────────────────────────

func TestStageReportEjemploCompleto(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.seedProduct(t, "p-sustrato", "Sustrato", "kg", "200", "20", "2", true)
	f.seedLocation(t, "loc-a", "Invernadero A")
	start := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(5 * 24 * time.Hour)
	f.seedStage(t, &entity.Stage{
		ID: "st-1", Name: "Crecimiento", LocationID: "loc-a",
		Status: entity.StatusCompleted, ExpectedDuration: 7,
		StartTime: timePtr(start), EndTime: timePtr(end),
		ActualDuration: intPtr(5), Responsible: "Carlos",
	})
	f.seedSubstage(t, &entity.Substage{
		ID: "ss-1", Name: "Poda", StageID: "st-1",
		Status: entity.StatusCompleted, ExpectedDuration: 2, ActualDuration: intPtr(2),
	})
	f.seedMovement(t, &entity.Movement{
		Type: entity.MovementTypeUso, StageID: "st-1", SubstageID: "ss-1",
		Lines: []entity.MovementLine{line("p-sustrato", "30", "kg", "2")},
	})
	f.seedMovement(t, &entity.Movement{
		Type: entity.MovementTypeUso, StageID: "st-1",
		Lines: []entity.MovementLine{line("p-sustrato", "20", "kg", "2")},
	})
	// Movimiento de otra etapa: no entra al resumen.
	f.seedStage(t, &entity.Stage{ID: "st-2", Name: "Secado", Status: entity.StatusPending, ExpectedDuration: 10})
	f.seedMovement(t, &entity.Movement{
		Type: entity.MovementTypeUso, StageID: "st-2",
		Lines: []entity.MovementLine{line("p-sustrato", "99", "kg", "2")},
	})

	r, err := f.engine.StageReport("st-1")
	require.NoError(t, err)

	assert.Equal(t, "Crecimiento", r.StageName)
	assert.Equal(t, "Invernadero A", r.LocationName)
	assert.Equal(t, 2, r.MovementCount)
	assert.Equal(t, "50", r.TotalQuantity.String())
	assert.Equal(t, "100", r.TotalCost.String())
	assert.Equal(t, "20", r.CostPerDay.String()) // 100 / 5 días

	uso := r.ConsumptionByProduct["Sustrato"]
	assert.Equal(t, "50", uso.Quantity.String())
	assert.Equal(t, "100", uso.Cost.String())
	assert.Equal(t, "kg", uso.Unit)

	porSub := r.ConsumptionBySubstage["Poda"]["Sustrato"]
	assert.Equal(t, "30", porSub.Quantity.String())

	require.Len(t, r.Substages, 1)
	assert.Equal(t, "Poda", r.Substages[0].Name)
}

func TestStageReportEtapaInexistente(t *testing.T) {
	f := newAnalyticsFixture(t)
	_, err := f.engine.StageReport("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStageReportSinMovimientosDividePorUnDia(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.seedStage(t, &entity.Stage{ID: "st-1", Name: "Germinación", Status: entity.StatusPending, ExpectedDuration: 7})

	r, err := f.engine.StageReport("st-1")
	require.NoError(t, err)
	assert.Equal(t, 0, r.MovementCount)
	assert.True(t, r.CostPerDay.IsZero())
}

func TestRenderStageReportText(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.seedProduct(t, "p-sustrato", "Sustrato", "kg", "200", "20", "2", true)
	f.seedStage(t, &entity.Stage{
		ID: "st-1", Name: "Crecimiento", Status: entity.StatusCompleted,
		ExpectedDuration: 7, ActualDuration: intPtr(5), Responsible: "Carlos",
	})
	f.seedMovement(t, &entity.Movement{
		Type: entity.MovementTypeUso, StageID: "st-1",
		Lines: []entity.MovementLine{line("p-sustrato", "50", "kg", "2")},
	})

	r, err := f.engine.StageReport("st-1")
	require.NoError(t, err)
	text := analytics.RenderStageReportText(r)

	assert.Contains(t, text, "RESUMEN DE ETAPA: Crecimiento")
	assert.Contains(t, text, "Duración real: 5 días")
	assert.Contains(t, text, "Sustrato: 50 kg ($100.00)")
	assert.Contains(t, text, "Costo total: $100.00")
	assert.Contains(t, text, "Costo por día: $20.00")
}
