package entity

import "time"

// Substage representa una sub-etapa con ciclo de vida propio, siempre
// subordinada a una Stage. No ocupa locaciones (sin exclusividad).
type Substage struct {
	ID               string
	Name             string
	Description      string
	StageID          string // obligatorio: etapa dueña
	ExpectedDuration int    // días
	Responsible      string
	Status           string
	StartTime        *time.Time
	EndTime          *time.Time
	ActualDuration   *int // días; se fija al completar
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ElapsedDays devuelve los días enteros transcurridos desde el inicio.
func (s *Substage) ElapsedDays(now time.Time) int {
	if s.StartTime == nil {
		return 0
	}
	return int(now.Sub(*s.StartTime).Hours() / 24)
}

// Progress devuelve el avance en porcentaje, acotado a 100.
func (s *Substage) Progress(now time.Time) float64 {
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
