package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementTypeUso           = "uso"           // consumo: resta stock
	MovementTypeCompra        = "compra"        // compra: suma stock
	MovementTypeTransferencia = "transferencia" // traslado entre locaciones
)

// ValidMovementType valida el tipo contra el conjunto cerrado.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeUso, MovementTypeCompra, MovementTypeTransferencia:
		return true
	}
	return false
}

// MovementLine es una línea de un movimiento: producto, cantidad y el precio
// unitario congelado al momento del registro. El costo histórico del movimiento
// no cambia aunque el precio del producto cambie después.
type MovementLine struct {
	ProductID string
	Quantity  decimal.Decimal // > 0
	Unit      string          // unidad del producto al registrar
	UnitPrice decimal.Decimal // precio del producto al registrar
}

// Cost devuelve cantidad × precio unitario congelado.
func (l MovementLine) Cost() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// Movement es una entrada inmutable del libro de movimientos. Referencia
// etapa/sub-etapa/locación solo por id (referencias débiles). Las líneas y
// cantidades nunca se editan después de creado; solo el contexto
// (etapa, sub-etapa, locación, responsable, observaciones).
type Movement struct {
	ID           string
	Type         string // uso, compra, transferencia
	Lines        []MovementLine
	StageID      string
	SubstageID   string
	LocationID   string
	LocationName string // nombre descriptivo al momento del registro
	// Transferencia en modo por locación: origen y destino.
	FromLocationID string
	ToLocationID   string
	Responsible    string
	Observations   string
	Cost           decimal.Decimal // Σ líneas, congelado al registrar
	Date           time.Time       // inmutable
}

// TotalCost suma el costo de todas las líneas.
func (m *Movement) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, l := range m.Lines {
		total = total.Add(l.Cost())
	}
	return total
}

// References indica si el movimiento referencia al producto dado.
func (m *Movement) References(productID string) bool {
	for _, l := range m.Lines {
		if l.ProductID == productID {
			return true
		}
	}
	return false
}
