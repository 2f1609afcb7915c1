package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LocationStock representa el saldo de un producto en una locación concreta.
// Solo se materializa cuando el libro opera en modo por locación
// (STOCK_PER_LOCATION); en modo global el stock vive en Product.CurrentStock.
type LocationStock struct {
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
