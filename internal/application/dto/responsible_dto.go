package dto

import "time"

// CreateResponsibleRequest entrada para asignar un responsable a una locación.
type CreateResponsibleRequest struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	LocationID string `json:"location_id"`
	Color      string `json:"color"`
}

// UpdateResponsibleRequest entrada para editar un responsable.
type UpdateResponsibleRequest struct {
	Name       *string `json:"name"`
	Role       *string `json:"role"`
	LocationID *string `json:"location_id"`
	Color      *string `json:"color"`
}

// ResponsibleResponse salida de un responsable.
type ResponsibleResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	LocationID string    `json:"location_id"`
	Color      string    `json:"color"`
	CreatedAt  time.Time `json:"created_at"`
}
