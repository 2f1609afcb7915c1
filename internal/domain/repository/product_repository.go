package repository

import (
	"github.com/shopspring/decimal"

	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock fija el stock actual (usado por el motor de movimientos
	// dentro de una transacción/sección crítica).
	UpdateStock(productID string, stock decimal.Decimal) error
	List() ([]*entity.Product, error)
	Delete(id string) error
	// GetForUpdate bloquea el registro para lectura-modificación-escritura
	// (SELECT FOR UPDATE en PostgreSQL; en memoria el lock lo da el store).
	GetForUpdate(id string) (*entity.Product, error)
}
