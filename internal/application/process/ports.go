package process

import (
	"context"

	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

// TxRunner ejecuta transiciones de ciclo de vida dentro de una transacción,
// con repositorios atados a ella. Dos start concurrentes sobre la misma etapa
// resultan en exactamente un éxito y un rechazo por conflicto de estado, y el
// chequeo de exclusividad de locación es atómico respecto a otras
// creaciones/ediciones de etapas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stageRepo repository.StageRepository,
		substageRepo repository.SubstageRepository,
	) error) error
}
