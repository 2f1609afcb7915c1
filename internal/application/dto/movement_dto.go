package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementLineRequest línea de un movimiento a registrar.
type MovementLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// RegisterMovementRequest entrada para registrar un movimiento.
// FromLocationID/ToLocationID solo aplican a transferencias en modo por locación.
type RegisterMovementRequest struct {
	Type           string                `json:"type"` // uso, compra, transferencia
	Lines          []MovementLineRequest `json:"products"`
	StageID        string                `json:"stage_id"`
	SubstageID     string                `json:"substage_id"`
	LocationID     string                `json:"location_id"`
	FromLocationID string                `json:"from_location_id"`
	ToLocationID   string                `json:"to_location_id"`
	Responsible    string                `json:"responsible"`
	Observations   string                `json:"observations"`
}

// UpdateMovementRequest entrada para editar el contexto de un movimiento.
// Las líneas y cantidades nunca se editan (ver política del libro).
type UpdateMovementRequest struct {
	StageID      *string `json:"stage_id"`
	SubstageID   *string `json:"substage_id"`
	LocationID   *string `json:"location_id"`
	Responsible  *string `json:"responsible"`
	Observations *string `json:"observations"`
}

// MovementLineResponse línea enriquecida con nombre de producto.
type MovementLineResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Cost        decimal.Decimal `json:"cost"`
}

// MovementResponse salida de un movimiento con nombres resueltos.
type MovementResponse struct {
	ID             string                 `json:"id"`
	Type           string                 `json:"type"`
	Lines          []MovementLineResponse `json:"products"`
	StageID        string                 `json:"stage_id,omitempty"`
	StageName      string                 `json:"stage_name,omitempty"`
	SubstageID     string                 `json:"substage_id,omitempty"`
	SubstageName   string                 `json:"substage_name,omitempty"`
	LocationID     string                 `json:"location_id,omitempty"`
	LocationName   string                 `json:"location,omitempty"`
	FromLocationID string                 `json:"from_location_id,omitempty"`
	ToLocationID   string                 `json:"to_location_id,omitempty"`
	Responsible    string                 `json:"responsible"`
	Observations   string                 `json:"observations"`
	Cost           decimal.Decimal        `json:"cost"`
	Date           time.Time              `json:"date"`
}

// ListMovementsRequest filtros de listado (query params).
type ListMovementsRequest struct {
	Type       string `query:"type"`
	LocationID string `query:"location_id"`
	StageID    string `query:"stage_id"`
	From       string `query:"from"` // RFC 3339 o YYYY-MM-DD
	To         string `query:"to"`
}
