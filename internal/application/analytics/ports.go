package analytics

import (
	"context"

	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
)

// StageReportPDFGenerator colaborador externo que produce la versión
// imprimible del resumen de etapa.
type StageReportPDFGenerator interface {
	GenerateStageReportPDF(ctx context.Context, report *dto.StageReportDTO) ([]byte, error)
}
