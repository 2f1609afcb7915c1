package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un insumo o variable monitoreada del cultivo.
// Si HasStock es true se lleva inventario (InitialStock, CurrentStock, MinStock);
// si es false, CurrentStock funciona como un valor libre (ej. temperatura o pH)
// y los campos de inventario no aplican.
type Product struct {
	ID           string
	Name         string
	Unit         string          // kg, l, unidades, °C, pH, EC...
	Price        decimal.Decimal // precio por unidad
	HasStock     bool
	InitialStock decimal.Decimal
	CurrentStock decimal.Decimal // nunca negativo cuando HasStock
	MinStock     decimal.Decimal // umbral de alerta, no un límite duro
	Responsible  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLowStock indica si el producto está en o por debajo de su umbral mínimo.
// Solo aplica a productos con manejo de stock.
func (p *Product) IsLowStock() bool {
	return p.HasStock && p.CurrentStock.LessThanOrEqual(p.MinStock)
}

// IsCriticalStock indica stock agotado.
func (p *Product) IsCriticalStock() bool {
	return p.HasStock && p.CurrentStock.IsZero()
}
