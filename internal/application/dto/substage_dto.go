package dto

import "time"

// CreateSubstageRequest entrada para crear una sub-etapa.
type CreateSubstageRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	StageID          string `json:"stage_id"`
	ExpectedDuration int    `json:"expected_duration"`
	Responsible      string `json:"responsible"`
}

// UpdateSubstageRequest entrada para editar una sub-etapa.
type UpdateSubstageRequest struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	ExpectedDuration *int    `json:"expected_duration"`
	Responsible      *string `json:"responsible"`
}

// SubstageResponse salida de una sub-etapa.
type SubstageResponse struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	StageID          string     `json:"stage_id"`
	StageName        string     `json:"stage_name,omitempty"`
	ExpectedDuration int        `json:"expected_duration"`
	Responsible      string     `json:"responsible"`
	Status           string     `json:"status"`
	StartTime        *time.Time `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
	ActualDuration   *int       `json:"actual_duration"`
	Progress         float64    `json:"progress"`
	CreatedAt        time.Time  `json:"created_at"`
}
