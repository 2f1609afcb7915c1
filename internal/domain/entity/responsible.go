package entity

import "time"

// Responsible es una persona a cargo de una locación.
type Responsible struct {
	ID         string
	Name       string
	Role       string
	LocationID string
	Color      string // hex para el calendario/tablero
	CreatedAt  time.Time
}
