package entity

import "time"

// Location representa un espacio físico del cultivo (invernadero, área de secado...).
// Invariante: a lo sumo una etapa no completada puede ocupar una locación a la vez.
type Location struct {
	ID          string
	Name        string
	Description string
	Responsible string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
