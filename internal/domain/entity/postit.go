package entity

import "time"

// PostIt es una nota rápida del tablero. Sin ciclo de vida.
type PostIt struct {
	ID        string
	Title     string
	Content   string
	Color     string // hex, ej. #ffeb3b
	CreatedAt time.Time
	UpdatedAt time.Time
}
