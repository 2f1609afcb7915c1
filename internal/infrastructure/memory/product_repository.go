package memory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

// ProductRepository implementa repository.ProductRepository sobre el Store.
type ProductRepository struct {
	store *Store
}

// NewProductRepository crea el repositorio de productos en memoria.
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func (r *ProductRepository) Create(product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[product.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *ProductRepository) GetByID(id string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneProduct(p), nil
}

func (r *ProductRepository) Update(product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *ProductRepository) UpdateStock(productID string, stock decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	c := cloneProduct(p)
	c.CurrentStock = stock
	r.store.products[productID] = c
	return nil
}

func (r *ProductRepository) List() ([]*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		out = append(out, cloneProduct(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ProductRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.products, id)
	return nil
}

// GetForUpdate en memoria equivale a GetByID; la exclusividad la garantiza el
// TxRunner serializando las transacciones.
func (r *ProductRepository) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
