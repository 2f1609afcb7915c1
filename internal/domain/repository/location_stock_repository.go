package repository

import "github.com/cultivo-labs/cultivo-api/internal/domain/entity"

// LocationStockRepository define el puerto para saldos por (producto, locación).
// Solo se usa en modo por locación. Patrón del puerto de stock por bodega.
type LocationStockRepository interface {
	Get(productID, locationID string) (*entity.LocationStock, error)
	Upsert(stock *entity.LocationStock) error
	// GetForUpdate bloquea la fila del saldo (SELECT FOR UPDATE).
	GetForUpdate(productID, locationID string) (*entity.LocationStock, error)
	ListByProduct(productID string) ([]*entity.LocationStock, error)
}
