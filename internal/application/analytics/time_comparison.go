package analytics

import (
	"time"

	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
)

// TimeComparisonStages duración esperada vs real por etapa. Para etapas en
// progreso se reportan los días transcurridos en vivo.
func (e *Engine) TimeComparisonStages() ([]dto.TimeComparisonDTO, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.TimeComparisonDTO, 0, len(s.stages))
	for _, st := range s.stages {
		out = append(out, dto.TimeComparisonDTO{
			Name:     st.Name,
			Expected: st.ExpectedDuration,
			Actual:   actualDays(st.Status, st.ActualDuration, st.StartTime, now),
			Status:   st.Status,
		})
	}
	return out, nil
}

// TimeComparisonSubstages duración esperada vs real por sub-etapa.
func (e *Engine) TimeComparisonSubstages() ([]dto.TimeComparisonDTO, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.TimeComparisonDTO, 0, len(s.substages))
	for _, ss := range s.substages {
		out = append(out, dto.TimeComparisonDTO{
			Name:     ss.Name,
			Expected: ss.ExpectedDuration,
			Actual:   actualDays(ss.Status, ss.ActualDuration, ss.StartTime, now),
			Status:   ss.Status,
		})
	}
	return out, nil
}

// TimeByLocation agrega esperado/real de las etapas ligadas a cada locación.
func (e *Engine) TimeByLocation() (map[string]dto.TimeComparisonDTO, error) {
	s, err := e.load()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := map[string]dto.TimeComparisonDTO{}
	for _, st := range s.stages {
		if st.LocationID == "" {
			continue
		}
		loc, ok := s.locationByID[st.LocationID]
		if !ok {
			continue
		}
		agg := out[loc.Name]
		agg.Name = loc.Name
		agg.Expected += st.ExpectedDuration
		agg.Actual += actualDays(st.Status, st.ActualDuration, st.StartTime, now)
		out[loc.Name] = agg
	}
	return out, nil
}

// actualDays días reales: la duración congelada si completó, los transcurridos
// si está en progreso, cero si está pendiente.
func actualDays(status string, actual *int, start *time.Time, now time.Time) int {
	switch status {
	case entity.StatusCompleted:
		if actual != nil {
			return *actual
		}
	case entity.StatusInProgress:
		if start != nil {
			return int(now.Sub(*start).Hours() / 24)
		}
	}
	return 0
}
