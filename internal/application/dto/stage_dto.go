package dto

import "time"

// CreateStageRequest entrada para crear una etapa.
type CreateStageRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	LocationID       string `json:"location_id"`
	ExpectedDuration int    `json:"expected_duration"`
	Responsible      string `json:"responsible"`
}

// UpdateStageRequest entrada para editar una etapa (permitido en cualquier estado;
// cambiar locación re-verifica exclusividad).
type UpdateStageRequest struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	LocationID       *string `json:"location_id"`
	ExpectedDuration *int    `json:"expected_duration"`
	Responsible      *string `json:"responsible"`
}

// RestartStageRequest entrada para reiniciar una etapa como nuevo ciclo.
type RestartStageRequest struct {
	CycleName string `json:"cycle_name"`
}

// StageResponse salida de una etapa, con avance calculado en vivo.
type StageResponse struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	LocationID       string     `json:"location_id,omitempty"`
	LocationName     string     `json:"location_name,omitempty"`
	ExpectedDuration int        `json:"expected_duration"`
	Responsible      string     `json:"responsible"`
	Status           string     `json:"status"`
	StartTime        *time.Time `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
	ActualDuration   *int       `json:"actual_duration"`
	Progress         float64    `json:"progress"`
	CycleName        string     `json:"cycle_name,omitempty"`
	ParentStageID    string     `json:"parent_stage_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}
