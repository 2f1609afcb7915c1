package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cultivo-labs/cultivo-api/internal/application/ledger"
	"github.com/cultivo-labs/cultivo-api/internal/application/process"
	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*LedgerTxRunner)(nil)
var _ process.TxRunner = (*ProcessTxRunner)(nil)

// LedgerTxRunner ejecuta callbacks del libro de movimientos dentro de una
// transacción PostgreSQL.
type LedgerTxRunner struct {
	pool *pgxpool.Pool
}

// NewLedgerTxRunner construye el runner con el pool.
func NewLedgerTxRunner(pool *pgxpool.Pool) *LedgerTxRunner {
	return &LedgerTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *LedgerTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	locStockRepo repository.LocationStockRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewMovementRepository(tx)
	productRepo := NewProductRepository(tx)
	locStockRepo := NewLocationStockRepository(tx)

	if err := fn(movRepo, productRepo, locStockRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ProcessTxRunner ejecuta transiciones de etapas dentro de una transacción
// PostgreSQL. Los GetForUpdate de los repos atados a la tx bloquean la fila
// (SELECT FOR UPDATE), de modo que dos transiciones concurrentes sobre la
// misma etapa se serializan.
type ProcessTxRunner struct {
	pool *pgxpool.Pool
}

// NewProcessTxRunner construye el runner con el pool.
func NewProcessTxRunner(pool *pgxpool.Pool) *ProcessTxRunner {
	return &ProcessTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *ProcessTxRunner) Run(ctx context.Context, fn func(
	stageRepo repository.StageRepository,
	substageRepo repository.SubstageRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stageRepo := NewStageRepository(tx)
	substageRepo := NewSubstageRepository(tx)

	if err := fn(stageRepo, substageRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
