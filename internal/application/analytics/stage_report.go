package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
)

// StageReport compone el resumen puntual de una etapa: identidad y estado,
// consumo y gasto por producto (total y por sub-etapa) restringidos a los
// movimientos de esa etapa, costo total y costo por día.
func (e *Engine) StageReport(stageID string) (*dto.StageReportDTO, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}
	stage, ok := s.stageByID[stageID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	report := &dto.StageReportDTO{
		StageID:               stage.ID,
		StageName:             stage.Name,
		CycleName:             stage.CycleName,
		Status:                stage.Status,
		Responsible:           stage.Responsible,
		StartTime:             stage.StartTime,
		EndTime:               stage.EndTime,
		ExpectedDuration:      stage.ExpectedDuration,
		ActualDuration:        stage.ActualDuration,
		ConsumptionByProduct:  map[string]dto.ProductUsageDTO{},
		ConsumptionBySubstage: map[string]map[string]dto.ProductUsageDTO{},
		TotalQuantity:         decimal.Zero,
		TotalCost:             decimal.Zero,
		GeneratedAt:           time.Now(),
	}
	if stage.LocationID != "" {
		if loc, ok := s.locationByID[stage.LocationID]; ok {
			report.LocationName = loc.Name
		}
	}

	for _, ss := range s.substages {
		if ss.StageID != stageID {
			continue
		}
		report.Substages = append(report.Substages, dto.SubstageReportLineDTO{
			Name:             ss.Name,
			Status:           ss.Status,
			ExpectedDuration: ss.ExpectedDuration,
			ActualDuration:   ss.ActualDuration,
		})
		report.ConsumptionBySubstage[ss.Name] = map[string]dto.ProductUsageDTO{}
	}

	for _, m := range s.movements {
		if m.StageID != stageID {
			continue
		}
		report.MovementCount++
		var substageName string
		if m.SubstageID != "" {
			if ss, ok := s.substageByID[m.SubstageID]; ok {
				substageName = ss.Name
			}
		}
		for _, line := range m.Lines {
			p, ok := s.productByID[line.ProductID]
			if !ok {
				continue
			}
			cost := line.Cost()
			accumulate(report.ConsumptionByProduct, p.Name, line, cost)
			if substageName != "" {
				if _, ok := report.ConsumptionBySubstage[substageName]; !ok {
					report.ConsumptionBySubstage[substageName] = map[string]dto.ProductUsageDTO{}
				}
				accumulate(report.ConsumptionBySubstage[substageName], p.Name, line, cost)
			}
			report.TotalQuantity = report.TotalQuantity.Add(line.Quantity)
			report.TotalCost = report.TotalCost.Add(cost)
		}
	}

	days := 1
	if stage.ActualDuration != nil && *stage.ActualDuration > 1 {
		days = *stage.ActualDuration
	} else if stage.Status == entity.StatusInProgress {
		if elapsed := stage.ElapsedDays(report.GeneratedAt); elapsed > 1 {
			days = elapsed
		}
	}
	report.CostPerDay = report.TotalCost.Div(decimal.NewFromInt(int64(days))).Round(2)

	return report, nil
}

func accumulate(m map[string]dto.ProductUsageDTO, name string, line entity.MovementLine, cost decimal.Decimal) {
	usage := m[name]
	usage.Unit = line.Unit
	usage.Quantity = usage.Quantity.Add(line.Quantity)
	usage.Cost = usage.Cost.Add(cost)
	m[name] = usage
}

// RenderStageReportText produce la versión de texto plano descargable del resumen.
func RenderStageReportText(r *dto.StageReportDTO) string {
	var b strings.Builder
	fmt.Fprintf(&b, "RESUMEN DE ETAPA: %s\n", r.StageName)
	if r.CycleName != "" {
		fmt.Fprintf(&b, "Ciclo: %s\n", r.CycleName)
	}
	fmt.Fprintf(&b, "Estado: %s\n", r.Status)
	if r.LocationName != "" {
		fmt.Fprintf(&b, "Locación: %s\n", r.LocationName)
	}
	fmt.Fprintf(&b, "Responsable: %s\n", r.Responsible)
	if r.StartTime != nil {
		fmt.Fprintf(&b, "Inicio: %s\n", r.StartTime.Format("2006-01-02 15:04"))
	}
	if r.EndTime != nil {
		fmt.Fprintf(&b, "Fin: %s\n", r.EndTime.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(&b, "Duración esperada: %d días\n", r.ExpectedDuration)
	if r.ActualDuration != nil {
		fmt.Fprintf(&b, "Duración real: %d días\n", *r.ActualDuration)
	}
	b.WriteString("\nCONSUMO POR PRODUCTO\n")
	for _, name := range sortedKeys(r.ConsumptionByProduct) {
		u := r.ConsumptionByProduct[name]
		fmt.Fprintf(&b, "  %s: %s %s ($%s)\n", name, u.Quantity.String(), u.Unit, u.Cost.StringFixed(2))
	}
	if len(r.Substages) > 0 {
		b.WriteString("\nSUB-ETAPAS\n")
		for _, ss := range r.Substages {
			line := fmt.Sprintf("  %s [%s] esperado %d días", ss.Name, ss.Status, ss.ExpectedDuration)
			if ss.ActualDuration != nil {
				line += fmt.Sprintf(", real %d días", *ss.ActualDuration)
			}
			b.WriteString(line + "\n")
		}
	}
	fmt.Fprintf(&b, "\nMovimientos: %d\n", r.MovementCount)
	fmt.Fprintf(&b, "Costo total: $%s\n", r.TotalCost.StringFixed(2))
	fmt.Fprintf(&b, "Costo por día: $%s\n", r.CostPerDay.StringFixed(2))
	fmt.Fprintf(&b, "Generado: %s\n", r.GeneratedAt.Format(time.RFC3339))
	return b.String()
}

func sortedKeys(m map[string]dto.ProductUsageDTO) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
