package entity

import "time"

// Estados del ciclo de vida de etapas y sub-etapas.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed" // terminal
)

// Stage representa una etapa del proceso productivo (germinación, crecimiento...).
// Opcionalmente ocupa una locación de forma exclusiva mientras no esté completada.
type Stage struct {
	ID               string
	Name             string
	Description      string
	LocationID       string // vacío = sin locación asignada
	ExpectedDuration int    // días
	Responsible      string
	Status           string
	StartTime        *time.Time
	EndTime          *time.Time
	ActualDuration   *int   // días; se fija al completar
	CycleName        string // nombre del ciclo cuando la etapa nace de un reinicio
	ParentStageID    string // etapa original de la que se clonó (referencia débil)
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsActive indica si la etapa ocupa su locación (no completada).
func (s *Stage) IsActive() bool {
	return s.Status != StatusCompleted
}

// ElapsedDays devuelve los días enteros transcurridos desde el inicio.
// Cero si la etapa no ha iniciado.
func (s *Stage) ElapsedDays(now time.Time) int {
	if s.StartTime == nil {
		return 0
	}
	return int(now.Sub(*s.StartTime).Hours() / 24)
}

// Progress devuelve el avance en porcentaje mientras está en progreso,
// acotado a 100. Completada reporta 100; pendiente, 0.
func (s *Stage) Progress(now time.Time) float64 {
	switch s.Status {
	case StatusCompleted:
		return 100
	case StatusPending:
		return 0
	}
	if s.ExpectedDuration <= 0 {
		return 100
	}
	pct := float64(s.ElapsedDays(now)) / float64(s.ExpectedDuration) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}
