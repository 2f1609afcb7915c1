package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
)

// Estados de alerta de stock.
const (
	AlertLow      = "bajo"
	AlertCritical = "crítico"
)

// Dashboard devuelve los KPIs: totales por colección, costo acumulado del
// libro y alertas de stock bajo/crítico de los productos con inventario.
func (e *Engine) Dashboard() (*dto.DashboardDTO, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}

	totalCost := decimal.Zero
	for _, m := range s.movements {
		totalCost = totalCost.Add(m.Cost)
	}

	alerts := make([]dto.LowStockAlertDTO, 0)
	for _, p := range s.products {
		if !p.IsLowStock() {
			continue
		}
		status := AlertLow
		if p.IsCriticalStock() {
			status = AlertCritical
		}
		alerts = append(alerts, dto.LowStockAlertDTO{
			ProductName:  p.Name,
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
			Unit:         p.Unit,
			Status:       status,
		})
	}

	return &dto.DashboardDTO{
		TotalProducts:  len(s.products),
		TotalStages:    len(s.stages),
		TotalLocations: len(s.locations),
		TotalMovements: len(s.movements),
		TotalCost:      totalCost,
		LowStockAlerts: alerts,
	}, nil
}

// StockChart devuelve stock actual vs mínimo de los productos con inventario.
func (e *Engine) StockChart() ([]dto.StockChartItemDTO, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockChartItemDTO, 0, len(s.products))
	for _, p := range s.products {
		if !p.HasStock {
			continue
		}
		out = append(out, dto.StockChartItemDTO{
			Name:         p.Name,
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
			Unit:         p.Unit,
		})
	}
	return out, nil
}
