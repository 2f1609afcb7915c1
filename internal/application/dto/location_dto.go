package dto

import "time"

// CreateLocationRequest entrada para crear una locación.
type CreateLocationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Responsible string `json:"responsible"`
}

// UpdateLocationRequest entrada para actualizar una locación.
type UpdateLocationRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Responsible *string `json:"responsible"`
}

// LocationResponse salida de una locación.
type LocationResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Responsible string    `json:"responsible"`
	CreatedAt   time.Time `json:"created_at"`
}
