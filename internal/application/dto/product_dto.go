package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// Si HasStock es false, InitialStock/MinStock se ignoran y CurrentStock
// actúa como valor libre (ej. lectura de sensor).
type CreateProductRequest struct {
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Price        decimal.Decimal `json:"price"`
	HasStock     *bool           `json:"has_stock"` // nil = true
	InitialStock decimal.Decimal `json:"initial_stock"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Responsible  string          `json:"responsible"`
}

// UpdateProductRequest entrada para actualizar un producto.
// Punteros nil = campo sin cambio.
type UpdateProductRequest struct {
	Name         *string          `json:"name"`
	Unit         *string          `json:"unit"`
	Price        *decimal.Decimal `json:"price"`
	HasStock     *bool            `json:"has_stock"`
	InitialStock *decimal.Decimal `json:"initial_stock"`
	CurrentStock *decimal.Decimal `json:"current_stock"`
	MinStock     *decimal.Decimal `json:"min_stock"`
	Responsible  *string          `json:"responsible"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Price        decimal.Decimal `json:"price"`
	HasStock     bool            `json:"has_stock"`
	InitialStock decimal.Decimal `json:"initial_stock"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Responsible  string          `json:"responsible"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
