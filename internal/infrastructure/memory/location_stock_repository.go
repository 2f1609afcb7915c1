package memory

import (
	"sort"
	"time"

	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

// LocationStockRepository implementa repository.LocationStockRepository.
type LocationStockRepository struct {
	store *Store
}

// NewLocationStockRepository crea el repositorio de saldos por locación.
func NewLocationStockRepository(store *Store) *LocationStockRepository {
	return &LocationStockRepository{store: store}
}

func cloneLocationStock(s *entity.LocationStock) *entity.LocationStock {
	c := *s
	return &c
}

func (r *LocationStockRepository) Get(productID, locationID string) (*entity.LocationStock, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	s, ok := r.store.locationStocks[stockKey(productID, locationID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneLocationStock(s), nil
}

func (r *LocationStockRepository) Upsert(stock *entity.LocationStock) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := cloneLocationStock(stock)
	c.UpdatedAt = time.Now()
	r.store.locationStocks[stockKey(stock.ProductID, stock.LocationID)] = c
	return nil
}

func (r *LocationStockRepository) GetForUpdate(productID, locationID string) (*entity.LocationStock, error) {
	return r.Get(productID, locationID)
}

func (r *LocationStockRepository) ListByProduct(productID string) ([]*entity.LocationStock, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.LocationStock
	for _, s := range r.store.locationStocks {
		if s.ProductID == productID {
			out = append(out, cloneLocationStock(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocationID < out[j].LocationID })
	return out, nil
}

var _ repository.LocationStockRepository = (*LocationStockRepository)(nil)
