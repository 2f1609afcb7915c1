package dto

import "github.com/shopspring/decimal"

// LowStockAlertDTO alerta de stock bajo o crítico de un producto.
type LowStockAlertDTO struct {
	ProductName  string          `json:"product_name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Unit         string          `json:"unit"`
	Status       string          `json:"status"` // "bajo" | "crítico"
}

// DashboardDTO KPIs del tablero principal.
type DashboardDTO struct {
	TotalProducts  int                `json:"total_products"`
	TotalStages    int                `json:"total_stages"`
	TotalLocations int                `json:"total_locations"`
	TotalMovements int                `json:"total_movements"`
	TotalCost      decimal.Decimal    `json:"total_cost"`
	LowStockAlerts []LowStockAlertDTO `json:"low_stock_alerts"`
}

// StockChartItemDTO punto del gráfico de stock actual vs mínimo.
type StockChartItemDTO struct {
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Unit         string          `json:"unit"`
}

// TimeComparisonDTO comparación de duración esperada vs real de una entidad.
// Para entidades en progreso, Actual refleja los días transcurridos en vivo.
type TimeComparisonDTO struct {
	Name     string `json:"name"`
	Expected int    `json:"expected"`
	Actual   int    `json:"actual"`
	Status   string `json:"status"`
}
