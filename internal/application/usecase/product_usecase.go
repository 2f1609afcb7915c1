package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

// CatalogTxRunner ejecuta el borrado de un producto en transacción, para que
// el chequeo de referencias en el libro y el borrado sean atómicos.
type CatalogTxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		locStockRepo repository.LocationStockRepository,
	) error) error
}

// ProductUseCase casos de uso CRUD para productos del catálogo.
// El stock actual solo lo mueve el libro de movimientos; aquí se fija el
// stock inicial al crear y al alternar has_stock.
type ProductUseCase struct {
	repo         repository.ProductRepository
	movementRepo repository.MovementRepository
	txRunner     CatalogTxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, movementRepo repository.MovementRepository, txRunner CatalogTxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, movementRepo: movementRepo, txRunner: txRunner}
}

// Create crea un producto. Con has_stock el stock actual arranca en el
// inicial; sin has_stock, CurrentStock es un valor libre y los campos de
// inventario quedan en cero.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	hasStock := true
	if in.HasStock != nil {
		hasStock = *in.HasStock
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Unit:        in.Unit,
		Price:       in.Price,
		HasStock:    hasStock,
		Responsible: in.Responsible,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if hasStock {
		if in.InitialStock.IsNegative() || in.MinStock.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.InitialStock = in.InitialStock
		product.CurrentStock = in.InitialStock
		product.MinStock = in.MinStock
	} else {
		product.CurrentStock = in.CurrentStock
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. Alternar has_stock re-siembra el conjunto de
// campos ahora relevante en lugar de dejar datos viejos: al activar stock se
// parte del stock inicial provisto; al desactivarlo se limpian los campos de
// inventario y queda el valor libre.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Responsible != nil {
		product.Responsible = *in.Responsible
	}

	if in.HasStock != nil && *in.HasStock != product.HasStock {
		if *in.HasStock {
			// Pasa a llevar inventario: re-sembrar desde los campos de stock.
			seed := decimal.Zero
			if in.InitialStock != nil {
				seed = *in.InitialStock
			}
			if seed.IsNegative() {
				return nil, domain.ErrInvalidInput
			}
			product.HasStock = true
			product.InitialStock = seed
			product.CurrentStock = seed
			product.MinStock = decimal.Zero
			if in.MinStock != nil {
				product.MinStock = *in.MinStock
			}
		} else {
			// Deja de llevar inventario: limpiar campos de stock, mantener
			// CurrentStock como valor libre (o el provisto).
			product.HasStock = false
			product.InitialStock = decimal.Zero
			product.MinStock = decimal.Zero
			if in.CurrentStock != nil {
				product.CurrentStock = *in.CurrentStock
			}
		}
	} else {
		if product.HasStock {
			if in.InitialStock != nil {
				if in.InitialStock.IsNegative() {
					return nil, domain.ErrInvalidInput
				}
				product.InitialStock = *in.InitialStock
			}
			if in.MinStock != nil {
				if in.MinStock.IsNegative() {
					return nil, domain.ErrInvalidInput
				}
				product.MinStock = *in.MinStock
			}
			if in.CurrentStock != nil {
				if in.CurrentStock.IsNegative() {
					return nil, domain.ErrInvalidInput
				}
				product.CurrentStock = *in.CurrentStock
			}
		} else if in.CurrentStock != nil {
			product.CurrentStock = *in.CurrentStock
		}
	}

	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto. Bloqueado mientras algún movimiento lo
// referencie, para preservar la integridad del libro. El chequeo de
// referencias y el borrado corren en la misma transacción: un movimiento
// registrado en el medio no puede quedar huérfano.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository, _ repository.LocationStockRepository) error {
		product, err := productRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		referenced, err := movRepo.ExistsByProduct(id)
		if err != nil {
			return err
		}
		if referenced {
			return domain.ErrReferenced
		}
		return productRepo.Delete(id)
	})
}

// List lista todos los productos.
func (uc *ProductUseCase) List() ([]dto.ProductResponse, error) {
	products, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Unit:         p.Unit,
		Price:        p.Price,
		HasStock:     p.HasStock,
		InitialStock: p.InitialStock,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		Responsible:  p.Responsible,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
