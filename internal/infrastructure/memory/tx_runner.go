package memory

import (
	"context"

	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

// Los TxRunner en memoria dan atomicidad por serialización: txMu garantiza que
// las transacciones no se intercalan, y un snapshot de los mapas tocados
// permite deshacer todo si la función falla. Como los repos reemplazan
// punteros en vez de mutar entidades en sitio, restaurar el mapa restaura el
// estado exacto previo a la transacción.

// LedgerTxRunner implementa el TxRunner del libro de movimientos.
type LedgerTxRunner struct {
	store *Store
}

// NewLedgerTxRunner crea el corredor de transacciones del libro.
func NewLedgerTxRunner(store *Store) *LedgerTxRunner {
	return &LedgerTxRunner{store: store}
}

// Run ejecuta fn con exclusividad total sobre el store; si fn devuelve error,
// productos, movimientos y saldos por locación vuelven al estado previo.
func (r *LedgerTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	locStockRepo repository.LocationStockRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	r.store.mu.Lock()
	products := copyMap(r.store.products)
	movements := copyMap(r.store.movements)
	stocks := copyMap(r.store.locationStocks)
	r.store.mu.Unlock()

	err := fn(
		NewMovementRepository(r.store),
		NewProductRepository(r.store),
		NewLocationStockRepository(r.store),
	)
	if err != nil {
		r.store.mu.Lock()
		r.store.products = products
		r.store.movements = movements
		r.store.locationStocks = stocks
		r.store.mu.Unlock()
	}
	return err
}

// ProcessTxRunner implementa el TxRunner de transiciones de etapas.
type ProcessTxRunner struct {
	store *Store
}

// NewProcessTxRunner crea el corredor de transacciones de etapas.
func NewProcessTxRunner(store *Store) *ProcessTxRunner {
	return &ProcessTxRunner{store: store}
}

// Run ejecuta fn con exclusividad total sobre el store; si fn devuelve error,
// etapas y sub-etapas vuelven al estado previo.
func (r *ProcessTxRunner) Run(ctx context.Context, fn func(
	stageRepo repository.StageRepository,
	substageRepo repository.SubstageRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	r.store.mu.Lock()
	stages := copyMap(r.store.stages)
	substages := copyMap(r.store.substages)
	r.store.mu.Unlock()

	err := fn(
		NewStageRepository(r.store),
		NewSubstageRepository(r.store),
	)
	if err != nil {
		r.store.mu.Lock()
		r.store.stages = stages
		r.store.substages = substages
		r.store.mu.Unlock()
	}
	return err
}
