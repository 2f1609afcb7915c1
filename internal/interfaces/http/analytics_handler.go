package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cultivo-labs/cultivo-api/internal/application/analytics"
)

// AnalyticsHandler expone el tablero y los desgloses para gráficos.
// Todos los endpoints agregan sobre una foto consistente de las colecciones.
type AnalyticsHandler struct {
	engine *analytics.Engine
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(engine *analytics.Engine) *AnalyticsHandler {
	return &AnalyticsHandler{engine: engine}
}

// Dashboard godoc
// @Summary      KPIs del tablero: totales, gasto acumulado y alertas de stock
// @Tags         graficos
// @Produce      json
// @Success      200  {object}  dto.DashboardDTO
// @Router       /api/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.engine.Dashboard()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// StockChart godoc
// @Summary      Stock actual vs mínimo por producto
// @Tags         graficos
// @Produce      json
// @Success      200  {array}  dto.StockChartItemDTO
// @Router       /api/graficos/stock [get]
func (h *AnalyticsHandler) StockChart(c *fiber.Ctx) error {
	out, err := h.engine.StockChart()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// respondGrouped serializa un desglose plano o anidado manejando el error.
func respondGrouped[T any](c *fiber.Ctx, out T, err error) error {
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ConsumptionByProduct godoc
// @Summary      Cantidades consumidas (uso) por producto
// @Tags         graficos
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/graficos/consumo-productos [get]
func (h *AnalyticsHandler) ConsumptionByProduct(c *fiber.Ctx) error {
	out, err := h.engine.ConsumptionByProduct()
	return respondGrouped(c, out, err)
}

// ConsumptionByLocation godoc
// @Summary      Cantidades consumidas por locación y producto
// @Tags         graficos
// @Produce      json
// @Success      200  {object}  map[string]map[string]string
// @Router       /api/graficos/consumo-locaciones [get]
func (h *AnalyticsHandler) ConsumptionByLocation(c *fiber.Ctx) error {
	out, err := h.engine.ConsumptionByLocation()
	return respondGrouped(c, out, err)
}

// ExpensesByStage godoc
// @Summary      Gasto acumulado por etapa (todos los tipos de movimiento)
// @Tags         graficos
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/graficos/gastos-etapas [get]
func (h *AnalyticsHandler) ExpensesByStage(c *fiber.Ctx) error {
	out, err := h.engine.ExpensesByStage()
	return respondGrouped(c, out, err)
}

// ExpensesByLocation godoc
// @Summary      Gasto acumulado por locación
// @Tags         graficos
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/graficos/gastos-locaciones [get]
func (h *AnalyticsHandler) ExpensesByLocation(c *fiber.Ctx) error {
	out, err := h.engine.ExpensesByLocation()
	return respondGrouped(c, out, err)
}

// ConsumptionByStage godoc
// @Summary      Costo de consumos (uso) por etapa
// @Tags         graficos
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/graficos/consumo-etapas [get]
func (h *AnalyticsHandler) ConsumptionByStage(c *fiber.Ctx) error {
	out, err := h.engine.ConsumptionByStage()
	return respondGrouped(c, out, err)
}

// ConsumptionBySubstage godoc
// @Summary      Costo de consumos (uso) por sub-etapa
// @Tags         graficos
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/graficos/consumo-subetapas [get]
func (h *AnalyticsHandler) ConsumptionBySubstage(c *fiber.Ctx) error {
	out, err := h.engine.ConsumptionBySubstage()
	return respondGrouped(c, out, err)
}

// ExpensesBySubstage godoc
// @Summary      Gasto acumulado por sub-etapa
// @Tags         graficos
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/graficos/gastos-subetapas [get]
func (h *AnalyticsHandler) ExpensesBySubstage(c *fiber.Ctx) error {
	out, err := h.engine.ExpensesBySubstage()
	return respondGrouped(c, out, err)
}

// ConsumptionByProductPerSubstage godoc
// @Summary      Cantidades consumidas por sub-etapa y producto
// @Tags         graficos
// @Produce      json
// @Success      200  {object}  map[string]map[string]string
// @Router       /api/graficos/consumo-productos-subetapas [get]
func (h *AnalyticsHandler) ConsumptionByProductPerSubstage(c *fiber.Ctx) error {
	out, err := h.engine.ConsumptionByProductPerSubstage()
	return respondGrouped(c, out, err)
}

// MonthlyConsumptionByProduct godoc
// @Summary      Consumo mensual por producto (bucket YYYY-MM)
// @Tags         graficos
// @Produce      json
// @Success      200  {object}  map[string]map[string]string
// @Router       /api/graficos/consumo-mensual [get]
func (h *AnalyticsHandler) MonthlyConsumptionByProduct(c *fiber.Ctx) error {
	out, err := h.engine.MonthlyConsumptionByProduct()
	return respondGrouped(c, out, err)
}

// MonthlyExpenseByProduct godoc
// @Summary      Gasto mensual por producto (costo congelado por línea)
// @Tags         graficos
// @Produce      json
// @Success      200  {object}  map[string]map[string]string
// @Router       /api/graficos/gastos-mensual [get]
func (h *AnalyticsHandler) MonthlyExpenseByProduct(c *fiber.Ctx) error {
	out, err := h.engine.MonthlyExpenseByProduct()
	return respondGrouped(c, out, err)
}

// YearlyConsumptionByProduct godoc
// @Summary      Consumo anual por producto (bucket YYYY)
// @Tags         graficos
// @Produce      json
// @Success      200  {object}  map[string]map[string]string
// @Router       /api/graficos/consumo-anual [get]
func (h *AnalyticsHandler) YearlyConsumptionByProduct(c *fiber.Ctx) error {
	out, err := h.engine.YearlyConsumptionByProduct()
	return respondGrouped(c, out, err)
}

// YearlyExpenseByProduct godoc
// @Summary      Gasto anual por producto
// @Tags         graficos
// @Produce      json
// @Success      200  {object}  map[string]map[string]string
// @Router       /api/graficos/gastos-anual [get]
func (h *AnalyticsHandler) YearlyExpenseByProduct(c *fiber.Ctx) error {
	out, err := h.engine.YearlyExpenseByProduct()
	return respondGrouped(c, out, err)
}

// MonthlyConsumptionByLocation godoc
// @Summary      Consumo mensual por locación
// @Tags         graficos
// @Produce      json
// @Success      200  {object}  map[string]map[string]string
// @Router       /api/graficos/consumo-mensual-locaciones [get]
func (h *AnalyticsHandler) MonthlyConsumptionByLocation(c *fiber.Ctx) error {
	out, err := h.engine.MonthlyConsumptionByLocation()
	return respondGrouped(c, out, err)
}

// MonthlyExpenseByLocation godoc
// @Summary      Gasto mensual por locación
// @Tags         graficos
// @Produce      json
// @Success      200  {object}  map[string]map[string]string
// @Router       /api/graficos/gastos-mensual-locaciones [get]
func (h *AnalyticsHandler) MonthlyExpenseByLocation(c *fiber.Ctx) error {
	out, err := h.engine.MonthlyExpenseByLocation()
	return respondGrouped(c, out, err)
}

// YearlyConsumptionByLocation godoc
// @Summary      Consumo anual por locación
// @Tags         graficos
// @Produce      json
// @Success      200  {object}  map[string]map[string]string
// @Router       /api/graficos/consumo-anual-locaciones [get]
func (h *AnalyticsHandler) YearlyConsumptionByLocation(c *fiber.Ctx) error {
	out, err := h.engine.YearlyConsumptionByLocation()
	return respondGrouped(c, out, err)
}

// YearlyExpenseByLocation godoc
// @Summary      Gasto anual por locación
// @Tags         graficos
// @Produce      json
// @Success      200  {object}  map[string]map[string]string
// @Router       /api/graficos/gastos-anual-locaciones [get]
func (h *AnalyticsHandler) YearlyExpenseByLocation(c *fiber.Ctx) error {
	out, err := h.engine.YearlyExpenseByLocation()
	return respondGrouped(c, out, err)
}

// TimeComparisonStages godoc
// @Summary      Duración esperada vs real por etapa (en progreso, en vivo)
// @Tags         graficos
// @Produce      json
// @Success      200  {array}  dto.TimeComparisonDTO
// @Router       /api/graficos/tiempos-etapas [get]
func (h *AnalyticsHandler) TimeComparisonStages(c *fiber.Ctx) error {
	out, err := h.engine.TimeComparisonStages()
	return respondGrouped(c, out, err)
}

// TimeComparisonSubstages godoc
// @Summary      Duración esperada vs real por sub-etapa
// @Tags         graficos
// @Produce      json
// @Success      200  {array}  dto.TimeComparisonDTO
// @Router       /api/graficos/tiempos-subetapas [get]
func (h *AnalyticsHandler) TimeComparisonSubstages(c *fiber.Ctx) error {
	out, err := h.engine.TimeComparisonSubstages()
	return respondGrouped(c, out, err)
}

// TimeByLocation godoc
// @Summary      Días acumulados de etapas por locación
// @Tags         graficos
// @Produce      json
// @Success      200  {object}  map[string]dto.TimeComparisonDTO
// @Router       /api/graficos/tiempos-locaciones [get]
func (h *AnalyticsHandler) TimeByLocation(c *fiber.Ctx) error {
	out, err := h.engine.TimeByLocation()
	return respondGrouped(c, out, err)
}
