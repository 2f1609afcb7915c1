package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
	"github.com/cultivo-labs/cultivo-api/internal/application/ledger"
	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
	"github.com/cultivo-labs/cultivo-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────

type ledgerFixture struct {
	uc        *ledger.MovementUseCase
	products  *memory.ProductRepository
	movements *memory.MovementRepository
	locStocks *memory.LocationStockRepository
	locations *memory.LocationRepository
}

// newLedgerFixture arma el caso de uso del libro sobre repositorios en
// memoria. perLocation activa el modo de saldos por locación.
func newLedgerFixture(t *testing.T, perLocation bool) *ledgerFixture {
	t.Helper()
	store := memory.NewStore()
	f := &ledgerFixture{
		products:  memory.NewProductRepository(store),
		movements: memory.NewMovementRepository(store),
		locStocks: memory.NewLocationStockRepository(store),
		locations: memory.NewLocationRepository(store),
	}
	f.uc = ledger.NewMovementUseCase(
		memory.NewLedgerTxRunner(store),
		f.movements,
		f.products,
		memory.NewStageRepository(store),
		memory.NewSubstageRepository(store),
		f.locations,
		perLocation,
	)
	return f
}

// seedProduct crea un producto con stock e inventario activo.
func (f *ledgerFixture) seedProduct(t *testing.T, id, name, stock, price string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.products.Create(&entity.Product{
		ID:           id,
		Name:         name,
		Unit:         "l",
		Price:        d(price),
		HasStock:     true,
		InitialStock: d(stock),
		CurrentStock: d(stock),
		MinStock:     d("10"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}))
}

// seedLocation crea una locación.
func (f *ledgerFixture) seedLocation(t *testing.T, id, name string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.locations.Create(&entity.Location{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (f *ledgerFixture) currentStock(t *testing.T, productID string) string {
	t.Helper()
	p, err := f.products.GetByID(productID)
	require.NoError(t, err)
	return p.CurrentStock.String()
}

// ──────────────────────────────────────────────────────────────
// Registro: efectos de stock
// ──────────────────────────────────────────────────────────────

func TestRegisterUsoDescuentaStock(t *testing.T) {
	f := newLedgerFixture(t, false)
	f.seedProduct(t, "p-agua", "Agua", "100", "2.5")

	mov, err := f.uc.Register(context.Background(), dto.RegisterMovementRequest{
		Type:        entity.MovementTypeUso,
		Responsible: "Carlos",
		Lines:       []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: d("30")}},
	})
	require.NoError(t, err)

	assert.Equal(t, "70", f.currentStock(t, "p-agua"))
	assert.Equal(t, "75", mov.Cost.String()) // 30 × 2.5
	assert.Equal(t, "2.5", mov.Lines[0].UnitPrice.String())
	assert.Equal(t, "l", mov.Lines[0].Unit)
}

func TestRegisterCompraSumaStock(t *testing.T) {
	f := newLedgerFixture(t, false)
	f.seedProduct(t, "p-agua", "Agua", "70", "2.5")

	_, err := f.uc.Register(context.Background(), dto.RegisterMovementRequest{
		Type:        entity.MovementTypeCompra,
		Responsible: "Carlos",
		Lines:       []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: d("60")}},
	})
	require.NoError(t, err)

	assert.Equal(t, "130", f.currentStock(t, "p-agua"))
}

func TestRegisterUsoStockInsuficiente(t *testing.T) {
	f := newLedgerFixture(t, false)
	f.seedProduct(t, "p-agua", "Agua", "20", "2.5")

	_, err := f.uc.Register(context.Background(), dto.RegisterMovementRequest{
		Type:        entity.MovementTypeUso,
		Responsible: "Carlos",
		Lines:       []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: d("30")}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El stock y el libro quedan intactos.
	assert.Equal(t, "20", f.currentStock(t, "p-agua"))
	movs, err := f.movements.List(repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestRegisterMultiLineaEsAtomico(t *testing.T) {
	f := newLedgerFixture(t, false)
	f.seedProduct(t, "p-agua", "Agua", "100", "2.5")
	f.seedProduct(t, "p-abono", "Abono", "5", "8")

	_, err := f.uc.Register(context.Background(), dto.RegisterMovementRequest{
		Type:        entity.MovementTypeUso,
		Responsible: "Carlos",
		Lines: []dto.MovementLineRequest{
			{ProductID: "p-agua", Quantity: d("30")},
			{ProductID: "p-abono", Quantity: d("10")}, // falla: solo hay 5
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La primera línea ya había descontado; la transacción lo revierte.
	assert.Equal(t, "100", f.currentStock(t, "p-agua"))
	assert.Equal(t, "5", f.currentStock(t, "p-abono"))
}

func TestRegisterProductoSinInventario(t *testing.T) {
	f := newLedgerFixture(t, false)
	now := time.Now()
	require.NoError(t, f.products.Create(&entity.Product{
		ID:           "p-temp",
		Name:         "Temperatura",
		Unit:         "°C",
		HasStock:     false,
		CurrentStock: d("24"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}))

	_, err := f.uc.Register(context.Background(), dto.RegisterMovementRequest{
		Type:        entity.MovementTypeUso,
		Responsible: "Carlos",
		Lines:       []dto.MovementLineRequest{{ProductID: "p-temp", Quantity: d("3")}},
	})
	require.NoError(t, err)

	// Variables monitoreadas no llevan inventario: el valor no cambia.
	assert.Equal(t, "24", f.currentStock(t, "p-temp"))
}

func TestRegisterValidaEntrada(t *testing.T) {
	f := newLedgerFixture(t, false)
	f.seedProduct(t, "p-agua", "Agua", "100", "2.5")

	cases := []struct {
		name string
		in   dto.RegisterMovementRequest
	}{
		{"tipo inválido", dto.RegisterMovementRequest{
			Type: "venta", Responsible: "Carlos",
			Lines: []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: d("1")}},
		}},
		{"sin responsable", dto.RegisterMovementRequest{
			Type:  entity.MovementTypeUso,
			Lines: []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: d("1")}},
		}},
		{"sin líneas", dto.RegisterMovementRequest{
			Type: entity.MovementTypeUso, Responsible: "Carlos",
		}},
		{"cantidad cero", dto.RegisterMovementRequest{
			Type: entity.MovementTypeUso, Responsible: "Carlos",
			Lines: []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: decimal.Zero}},
		}},
		{"cantidad negativa", dto.RegisterMovementRequest{
			Type: entity.MovementTypeUso, Responsible: "Carlos",
			Lines: []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: d("-4")}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Register(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRegisterProductoInexistente(t *testing.T) {
	f := newLedgerFixture(t, false)

	_, err := f.uc.Register(context.Background(), dto.RegisterMovementRequest{
		Type:        entity.MovementTypeUso,
		Responsible: "Carlos",
		Lines:       []dto.MovementLineRequest{{ProductID: "no-existe", Quantity: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────
// Precio congelado
// ──────────────────────────────────────────────────────────────

func TestRegisterCongelaPrecioUnitario(t *testing.T) {
	f := newLedgerFixture(t, false)
	f.seedProduct(t, "p-agua", "Agua", "100", "2.5")

	mov, err := f.uc.Register(context.Background(), dto.RegisterMovementRequest{
		Type:        entity.MovementTypeUso,
		Responsible: "Carlos",
		Lines:       []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: d("30")}},
	})
	require.NoError(t, err)

	// El precio del producto sube después del registro.
	p, err := f.products.GetByID("p-agua")
	require.NoError(t, err)
	p.Price = d("99")
	require.NoError(t, f.products.Update(p))

	// El costo histórico del movimiento no cambia.
	got, err := f.uc.GetByID(mov.ID)
	require.NoError(t, err)
	assert.Equal(t, "2.5", got.Lines[0].UnitPrice.String())
	assert.Equal(t, "75", got.Cost.String())
}

// ──────────────────────────────────────────────────────────────
// Transferencias
// ──────────────────────────────────────────────────────────────

func TestTransferenciaGlobalSoloDocumenta(t *testing.T) {
	f := newLedgerFixture(t, false)
	f.seedProduct(t, "p-agua", "Agua", "100", "2.5")
	f.seedLocation(t, "loc-a", "Invernadero A")
	f.seedLocation(t, "loc-b", "Invernadero B")

	_, err := f.uc.Register(context.Background(), dto.RegisterMovementRequest{
		Type:           entity.MovementTypeTransferencia,
		Responsible:    "Carlos",
		FromLocationID: "loc-a",
		ToLocationID:   "loc-b",
		Lines:          []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: d("40")}},
	})
	require.NoError(t, err)

	// En modo global la transferencia no altera el stock.
	assert.Equal(t, "100", f.currentStock(t, "p-agua"))
}

func TestTransferenciaPorLocacion(t *testing.T) {
	f := newLedgerFixture(t, true)
	f.seedProduct(t, "p-agua", "Agua", "100", "2.5")
	f.seedLocation(t, "loc-a", "Invernadero A")
	f.seedLocation(t, "loc-b", "Área de secado")

	// Una compra en A deja saldo por locación.
	_, err := f.uc.Register(context.Background(), dto.RegisterMovementRequest{
		Type:        entity.MovementTypeCompra,
		Responsible: "Carlos",
		LocationID:  "loc-a",
		Lines:       []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: d("50")}},
	})
	require.NoError(t, err)

	_, err = f.uc.Register(context.Background(), dto.RegisterMovementRequest{
		Type:           entity.MovementTypeTransferencia,
		Responsible:    "Carlos",
		FromLocationID: "loc-a",
		ToLocationID:   "loc-b",
		Lines:          []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: d("20")}},
	})
	require.NoError(t, err)

	a, err := f.locStocks.Get("p-agua", "loc-a")
	require.NoError(t, err)
	b, err := f.locStocks.Get("p-agua", "loc-b")
	require.NoError(t, err)
	assert.Equal(t, "30", a.Quantity.String())
	assert.Equal(t, "20", b.Quantity.String())
	// El stock global solo refleja la compra.
	assert.Equal(t, "150", f.currentStock(t, "p-agua"))
}

func TestTransferenciaRechazaSaldoNegativo(t *testing.T) {
	f := newLedgerFixture(t, true)
	f.seedProduct(t, "p-agua", "Agua", "100", "2.5")
	f.seedLocation(t, "loc-a", "Invernadero A")
	f.seedLocation(t, "loc-b", "Área de secado")

	// Sin saldo previo en A, transferir debe fallar.
	_, err := f.uc.Register(context.Background(), dto.RegisterMovementRequest{
		Type:           entity.MovementTypeTransferencia,
		Responsible:    "Carlos",
		FromLocationID: "loc-a",
		ToLocationID:   "loc-b",
		Lines:          []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: d("20")}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestTransferenciaValidaOrigenYDestino(t *testing.T) {
	f := newLedgerFixture(t, true)
	f.seedProduct(t, "p-agua", "Agua", "100", "2.5")
	f.seedLocation(t, "loc-a", "Invernadero A")

	_, err := f.uc.Register(context.Background(), dto.RegisterMovementRequest{
		Type:           entity.MovementTypeTransferencia,
		Responsible:    "Carlos",
		FromLocationID: "loc-a",
		ToLocationID:   "loc-a",
		Lines:          []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: d("20")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────
// Edición y eliminación
// ──────────────────────────────────────────────────────────────

func TestUpdateSoloEditaContexto(t *testing.T) {
	f := newLedgerFixture(t, false)
	f.seedProduct(t, "p-agua", "Agua", "100", "2.5")

	mov, err := f.uc.Register(context.Background(), dto.RegisterMovementRequest{
		Type:         entity.MovementTypeUso,
		Responsible:  "Carlos",
		Observations: "riego matutino",
		Lines:        []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: d("30")}},
	})
	require.NoError(t, err)

	resp := "María"
	obs := "riego vespertino"
	_, err = f.uc.Update(mov.ID, dto.UpdateMovementRequest{Responsible: &resp, Observations: &obs})
	require.NoError(t, err)

	got, err := f.uc.GetByID(mov.ID)
	require.NoError(t, err)
	assert.Equal(t, "María", got.Responsible)
	assert.Equal(t, "riego vespertino", got.Observations)
	// Líneas y costo permanecen congelados.
	assert.Equal(t, "30", got.Lines[0].Quantity.String())
	assert.Equal(t, "75", got.Cost.String())
	// El stock no se toca al editar contexto.
	assert.Equal(t, "70", f.currentStock(t, "p-agua"))
}

func TestUpdateRechazaResponsableVacio(t *testing.T) {
	f := newLedgerFixture(t, false)
	f.seedProduct(t, "p-agua", "Agua", "100", "2.5")

	mov, err := f.uc.Register(context.Background(), dto.RegisterMovementRequest{
		Type:        entity.MovementTypeUso,
		Responsible: "Carlos",
		Lines:       []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: d("5")}},
	})
	require.NoError(t, err)

	vacio := ""
	_, err = f.uc.Update(mov.ID, dto.UpdateMovementRequest{Responsible: &vacio})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteUsoRestituyeStock(t *testing.T) {
	f := newLedgerFixture(t, false)
	f.seedProduct(t, "p-agua", "Agua", "100", "2.5")

	mov, err := f.uc.Register(context.Background(), dto.RegisterMovementRequest{
		Type:        entity.MovementTypeUso,
		Responsible: "Carlos",
		Lines:       []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: d("30")}},
	})
	require.NoError(t, err)
	require.Equal(t, "70", f.currentStock(t, "p-agua"))

	require.NoError(t, f.uc.Delete(context.Background(), mov.ID))
	assert.Equal(t, "100", f.currentStock(t, "p-agua"))

	_, err = f.uc.GetByID(mov.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCompraRetiraStock(t *testing.T) {
	f := newLedgerFixture(t, false)
	f.seedProduct(t, "p-agua", "Agua", "100", "2.5")

	mov, err := f.uc.Register(context.Background(), dto.RegisterMovementRequest{
		Type:        entity.MovementTypeCompra,
		Responsible: "Carlos",
		Lines:       []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: d("60")}},
	})
	require.NoError(t, err)
	require.Equal(t, "160", f.currentStock(t, "p-agua"))

	require.NoError(t, f.uc.Delete(context.Background(), mov.ID))
	assert.Equal(t, "100", f.currentStock(t, "p-agua"))
}

func TestDeleteCompraRechazaStockNegativo(t *testing.T) {
	f := newLedgerFixture(t, false)
	f.seedProduct(t, "p-agua", "Agua", "10", "2.5")

	compra, err := f.uc.Register(context.Background(), dto.RegisterMovementRequest{
		Type:        entity.MovementTypeCompra,
		Responsible: "Carlos",
		Lines:       []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: d("60")}},
	})
	require.NoError(t, err)

	// Un uso posterior consume lo comprado.
	_, err = f.uc.Register(context.Background(), dto.RegisterMovementRequest{
		Type:        entity.MovementTypeUso,
		Responsible: "Carlos",
		Lines:       []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: d("50")}},
	})
	require.NoError(t, err)
	require.Equal(t, "20", f.currentStock(t, "p-agua"))

	// Revertir la compra dejaría el stock en -40: se rechaza.
	err = f.uc.Delete(context.Background(), compra.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "20", f.currentStock(t, "p-agua"))
}

// ──────────────────────────────────────────────────────────────
// Listado
// ──────────────────────────────────────────────────────────────

func TestListFiltraPorTipo(t *testing.T) {
	f := newLedgerFixture(t, false)
	f.seedProduct(t, "p-agua", "Agua", "100", "2.5")

	for _, typ := range []string{entity.MovementTypeUso, entity.MovementTypeCompra, entity.MovementTypeUso} {
		_, err := f.uc.Register(context.Background(), dto.RegisterMovementRequest{
			Type:        typ,
			Responsible: "Carlos",
			Lines:       []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: d("5")}},
		})
		require.NoError(t, err)
	}

	usos, err := f.uc.List(dto.ListMovementsRequest{Type: entity.MovementTypeUso})
	require.NoError(t, err)
	assert.Len(t, usos, 2)

	todos, err := f.uc.List(dto.ListMovementsRequest{})
	require.NoError(t, err)
	assert.Len(t, todos, 3)
}

func TestListFechaMalformadaEsErrorDeValidacion(t *testing.T) {
	f := newLedgerFixture(t, false)

	_, err := f.uc.List(dto.ListMovementsRequest{From: "31/05/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.List(dto.ListMovementsRequest{To: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Los formatos aceptados siguen pasando.
	_, err = f.uc.List(dto.ListMovementsRequest{From: "2026-05-01", To: "2026-05-31"})
	assert.NoError(t, err)
}

func TestListResuelveNombresDeProducto(t *testing.T) {
	f := newLedgerFixture(t, false)
	f.seedProduct(t, "p-agua", "Agua", "100", "2.5")

	_, err := f.uc.Register(context.Background(), dto.RegisterMovementRequest{
		Type:        entity.MovementTypeUso,
		Responsible: "Carlos",
		Lines:       []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: d("5")}},
	})
	require.NoError(t, err)

	out, err := f.uc.List(dto.ListMovementsRequest{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Agua", out[0].Lines[0].ProductName)
}

// ──────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────

func TestRegisterConcurrenteNoPierdeActualizaciones(t *testing.T) {
	f := newLedgerFixture(t, false)
	f.seedProduct(t, "p-agua", "Agua", "100", "1")

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Register(context.Background(), dto.RegisterMovementRequest{
				Type:        entity.MovementTypeUso,
				Responsible: "Carlos",
				Lines:       []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: d("10")}},
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, "50", f.currentStock(t, "p-agua"))
}

func TestRegisterConcurrenteRespetaElLimite(t *testing.T) {
	f := newLedgerFixture(t, false)
	f.seedProduct(t, "p-agua", "Agua", "100", "1")

	// Tres usos de 40 contra 100: exactamente dos caben.
	var wg sync.WaitGroup
	errs := make(chan error, 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Register(context.Background(), dto.RegisterMovementRequest{
				Type:        entity.MovementTypeUso,
				Responsible: "Carlos",
				Lines:       []dto.MovementLineRequest{{ProductID: "p-agua", Quantity: d("40")}},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var rejected int
	for err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			rejected++
		}
	}
	assert.Equal(t, 1, rejected)
	assert.Equal(t, "20", f.currentStock(t, "p-agua"))
}
