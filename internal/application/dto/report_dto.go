package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductUsageDTO consumo y gasto acumulado de un producto dentro de un ámbito.
type ProductUsageDTO struct {
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
	Cost     decimal.Decimal `json:"cost"`
}

// StageReportDTO resumen puntual de una etapa: identidad, duraciones,
// consumo y gasto por producto (total y por sub-etapa) y costo por día.
type StageReportDTO struct {
	StageID          string     `json:"stage_id"`
	StageName        string     `json:"stage_name"`
	CycleName        string     `json:"cycle_name,omitempty"`
	Status           string     `json:"status"`
	LocationName     string     `json:"location_name,omitempty"`
	Responsible      string     `json:"responsible"`
	StartTime        *time.Time `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
	ExpectedDuration int        `json:"expected_duration"`
	ActualDuration   *int       `json:"actual_duration"`

	ConsumptionByProduct map[string]ProductUsageDTO            `json:"consumption_by_product"`
	ConsumptionBySubstage map[string]map[string]ProductUsageDTO `json:"consumption_by_substage"`
	Substages            []SubstageReportLineDTO               `json:"substages"`

	MovementCount int             `json:"movement_count"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	CostPerDay    decimal.Decimal `json:"cost_per_day"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

// SubstageReportLineDTO estado de una sub-etapa dentro del resumen de etapa.
type SubstageReportLineDTO struct {
	Name             string `json:"name"`
	Status           string `json:"status"`
	ExpectedDuration int    `json:"expected_duration"`
	ActualDuration   *int   `json:"actual_duration"`
}
