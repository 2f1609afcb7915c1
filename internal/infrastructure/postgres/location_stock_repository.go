package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

var _ repository.LocationStockRepository = (*LocationStockRepo)(nil)

// LocationStockRepo implementación del puerto LocationStockRepository.
// Solo opera cuando el libro está en modo por locación.
type LocationStockRepo struct {
	q Querier
}

// NewLocationStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationStockRepository(q Querier) *LocationStockRepo {
	return &LocationStockRepo{q: q}
}

func (r *LocationStockRepo) Get(productID, locationID string) (*entity.LocationStock, error) {
	return r.get(productID, locationID, "")
}

// GetForUpdate bloquea la fila del saldo (SELECT FOR UPDATE).
func (r *LocationStockRepo) GetForUpdate(productID, locationID string) (*entity.LocationStock, error) {
	return r.get(productID, locationID, " FOR UPDATE")
}

func (r *LocationStockRepo) get(productID, locationID, suffix string) (*entity.LocationStock, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM location_stocks
		WHERE product_id = $1 AND location_id = $2` + suffix
	var s entity.LocationStock
	err := r.q.QueryRow(context.Background(), query, productID, locationID).
		Scan(&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get location stock: %w", err)
	}
	return &s, nil
}

func (r *LocationStockRepo) Upsert(stock *entity.LocationStock) error {
	query := `
		INSERT INTO location_stocks (product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ProductID, stock.LocationID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert location stock: %w", err)
	}
	return nil
}

func (r *LocationStockRepo) ListByProduct(productID string) ([]*entity.LocationStock, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM location_stocks
		WHERE product_id = $1
		ORDER BY location_id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list location stocks: %w", err)
	}
	defer rows.Close()

	var out []*entity.LocationStock
	for rows.Next() {
		var s entity.LocationStock
		if err := rows.Scan(&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location stock: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
