package ledger

import (
	"context"

	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios
// atados a esa transacción. Garantiza atomicidad para el libro de movimientos:
// o todas las líneas de un movimiento aplican su efecto de stock, o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		locStockRepo repository.LocationStockRepository,
	) error) error
}
