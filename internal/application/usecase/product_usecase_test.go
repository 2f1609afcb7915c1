package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
	"github.com/cultivo-labs/cultivo-api/internal/application/ledger"
	"github.com/cultivo-labs/cultivo-api/internal/application/usecase"
	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/infrastructure/memory"
)

// newProductFixture arma el caso de uso de productos sobre memoria.
func newProductFixture(t *testing.T) (*usecase.ProductUseCase, *memory.MovementRepository) {
	t.Helper()
	store := memory.NewStore()
	movements := memory.NewMovementRepository(store)
	uc := usecase.NewProductUseCase(
		memory.NewProductRepository(store), movements, memory.NewLedgerTxRunner(store),
	)
	return uc, movements
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func boolPtr(v bool) *bool { return &v }

func decPtr(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func TestProductCreateSiembraStockInicial(t *testing.T) {
	uc, _ := newProductFixture(t)

	p, err := uc.Create(dto.CreateProductRequest{
		Name:         "Agua",
		Unit:         "l",
		Price:        d("2.5"),
		InitialStock: d("100"),
		MinStock:     d("10"),
	})
	require.NoError(t, err)

	// has_stock omitido = true; el stock actual arranca en el inicial.
	assert.True(t, p.HasStock)
	assert.Equal(t, "100", p.InitialStock.String())
	assert.Equal(t, "100", p.CurrentStock.String())
	assert.Equal(t, "10", p.MinStock.String())
}

func TestProductCreateSinInventario(t *testing.T) {
	uc, _ := newProductFixture(t)

	p, err := uc.Create(dto.CreateProductRequest{
		Name:         "Temperatura",
		Unit:         "°C",
		HasStock:     boolPtr(false),
		InitialStock: d("500"), // se ignora sin inventario
		CurrentStock: d("24"),
	})
	require.NoError(t, err)

	assert.False(t, p.HasStock)
	assert.Equal(t, "24", p.CurrentStock.String())
	assert.True(t, p.InitialStock.IsZero())
	assert.True(t, p.MinStock.IsZero())
}

func TestProductCreateValidaEntrada(t *testing.T) {
	uc, _ := newProductFixture(t)

	_, err := uc.Create(dto.CreateProductRequest{Unit: "l"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateProductRequest{Name: "Agua"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateProductRequest{Name: "Agua", Unit: "l", Price: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateProductRequest{Name: "Agua", Unit: "l", InitialStock: d("-5")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdateActivarInventarioResiembra(t *testing.T) {
	uc, _ := newProductFixture(t)
	p, err := uc.Create(dto.CreateProductRequest{
		Name:     "Humedad",
		Unit:     "%",
		HasStock: boolPtr(false),
	})
	require.NoError(t, err)

	got, err := uc.Update(p.ID, dto.UpdateProductRequest{
		HasStock:     boolPtr(true),
		InitialStock: decPtr("40"),
		MinStock:     decPtr("5"),
	})
	require.NoError(t, err)

	assert.True(t, got.HasStock)
	assert.Equal(t, "40", got.InitialStock.String())
	assert.Equal(t, "40", got.CurrentStock.String())
	assert.Equal(t, "5", got.MinStock.String())
}

func TestProductUpdateDesactivarInventarioLimpia(t *testing.T) {
	uc, _ := newProductFixture(t)
	p, err := uc.Create(dto.CreateProductRequest{
		Name:         "Agua",
		Unit:         "l",
		InitialStock: d("100"),
		MinStock:     d("10"),
	})
	require.NoError(t, err)

	got, err := uc.Update(p.ID, dto.UpdateProductRequest{
		HasStock:     boolPtr(false),
		CurrentStock: decPtr("7.2"),
	})
	require.NoError(t, err)

	assert.False(t, got.HasStock)
	assert.True(t, got.InitialStock.IsZero())
	assert.True(t, got.MinStock.IsZero())
	assert.Equal(t, "7.2", got.CurrentStock.String())
}

func TestProductUpdateCamposSimples(t *testing.T) {
	uc, _ := newProductFixture(t)
	p, err := uc.Create(dto.CreateProductRequest{Name: "Agua", Unit: "l", InitialStock: d("100")})
	require.NoError(t, err)

	nombre := "Agua destilada"
	got, err := uc.Update(p.ID, dto.UpdateProductRequest{Name: &nombre, Price: decPtr("3")})
	require.NoError(t, err)
	assert.Equal(t, "Agua destilada", got.Name)
	assert.Equal(t, "3", got.Price.String())

	vacio := ""
	_, err = uc.Update(p.ID, dto.UpdateProductRequest{Name: &vacio})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductDeleteBloqueadoPorMovimientos(t *testing.T) {
	uc, movements := newProductFixture(t)
	p, err := uc.Create(dto.CreateProductRequest{Name: "Agua", Unit: "l", InitialStock: d("100")})
	require.NoError(t, err)

	require.NoError(t, movements.Create(&entity.Movement{
		ID:          uuid.New().String(),
		Type:        entity.MovementTypeUso,
		Responsible: "Carlos",
		Date:        time.Now(),
		Lines:       []entity.MovementLine{{ProductID: p.ID, Quantity: d("5"), Unit: "l", UnitPrice: d("2.5")}},
	}))

	err = uc.Delete(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrReferenced)
}

func TestProductDeleteSinReferencias(t *testing.T) {
	uc, _ := newProductFixture(t)
	p, err := uc.Create(dto.CreateProductRequest{Name: "Agua", Unit: "l", InitialStock: d("100")})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), p.ID))
	_, err = uc.GetByID(p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductDeleteNoExistente(t *testing.T) {
	uc, _ := newProductFixture(t)
	err := uc.Delete(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un registro de movimiento concurrente con el borrado nunca debe quedar
// apuntando a un producto ya eliminado: o el borrado gana y el registro falla,
// o el registro gana y el borrado se bloquea por referencia.
func TestProductDeleteConcurrenteNoDejaReferenciasHuerfanas(t *testing.T) {
	for i := 0; i < 20; i++ {
		store := memory.NewStore()
		products := memory.NewProductRepository(store)
		movements := memory.NewMovementRepository(store)
		runner := memory.NewLedgerTxRunner(store)
		productUC := usecase.NewProductUseCase(products, movements, runner)
		movementUC := ledger.NewMovementUseCase(
			runner, movements, products,
			memory.NewStageRepository(store), memory.NewSubstageRepository(store),
			memory.NewLocationRepository(store), false,
		)

		p, err := productUC.Create(dto.CreateProductRequest{Name: "Agua", Unit: "l", InitialStock: d("100")})
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = movementUC.Register(context.Background(), dto.RegisterMovementRequest{
				Type:        entity.MovementTypeUso,
				Responsible: "Carlos",
				Lines:       []dto.MovementLineRequest{{ProductID: p.ID, Quantity: d("5")}},
			})
		}()
		go func() {
			defer wg.Done()
			_ = productUC.Delete(context.Background(), p.ID)
		}()
		wg.Wait()

		referenced, err := movements.ExistsByProduct(p.ID)
		require.NoError(t, err)
		if referenced {
			_, err := products.GetByID(p.ID)
			require.NoError(t, err, "movimiento registrado sobre producto eliminado")
		}
	}
}
