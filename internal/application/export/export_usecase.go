// Package export arma el volcado completo del catálogo delegando el formato
// de planilla en un colaborador externo.
package export

import (
	"context"
	"errors"
	"time"

	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

// CatalogData snapshot de todas las colecciones a exportar.
type CatalogData struct {
	Products     []*entity.Product
	Locations    []*entity.Location
	Stages       []*entity.Stage
	Substages    []*entity.Substage
	Movements    []*entity.Movement
	PostIts      []*entity.PostIt
	Recipes      []*entity.Recipe
	RecipeImages []*entity.RecipeImage
}

// Exporter colaborador de formato de planillas. La implementación debe
// respetar el deadline del contexto.
type Exporter interface {
	// Export serializa el catálogo y devuelve el contenido del archivo.
	Export(ctx context.Context, data *CatalogData) ([]byte, error)
}

// ExportUseCase reúne las colecciones y produce el archivo de exportación con
// un tiempo acotado: si el colaborador no responde dentro del límite, se
// devuelve un error de timeout en lugar de colgar la petición.
type ExportUseCase struct {
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	stageRepo    repository.StageRepository
	substageRepo repository.SubstageRepository
	movementRepo repository.MovementRepository
	postitRepo   repository.PostItRepository
	recipeRepo   repository.RecipeRepository
	imageRepo    repository.RecipeImageRepository
	exporter     Exporter
	timeout      time.Duration
}

// NewExportUseCase construye el caso de uso. timeout acota la exportación.
func NewExportUseCase(
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	stageRepo repository.StageRepository,
	substageRepo repository.SubstageRepository,
	movementRepo repository.MovementRepository,
	postitRepo repository.PostItRepository,
	recipeRepo repository.RecipeRepository,
	imageRepo repository.RecipeImageRepository,
	exporter Exporter,
	timeout time.Duration,
) *ExportUseCase {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ExportUseCase{
		productRepo:  productRepo,
		locationRepo: locationRepo,
		stageRepo:    stageRepo,
		substageRepo: substageRepo,
		movementRepo: movementRepo,
		postitRepo:   postitRepo,
		recipeRepo:   recipeRepo,
		imageRepo:    imageRepo,
		exporter:     exporter,
		timeout:      timeout,
	}
}

// ExportCatalog produce el archivo con todas las colecciones.
func (uc *ExportUseCase) ExportCatalog(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	data := &CatalogData{}
	var err error
	if data.Products, err = uc.productRepo.List(); err != nil {
		return nil, err
	}
	if data.Locations, err = uc.locationRepo.List(); err != nil {
		return nil, err
	}
	if data.Stages, err = uc.stageRepo.List(); err != nil {
		return nil, err
	}
	if data.Substages, err = uc.substageRepo.List(); err != nil {
		return nil, err
	}
	if data.Movements, err = uc.movementRepo.List(repository.MovementFilter{}); err != nil {
		return nil, err
	}
	if data.PostIts, err = uc.postitRepo.List(); err != nil {
		return nil, err
	}
	if data.Recipes, err = uc.recipeRepo.List(); err != nil {
		return nil, err
	}
	if data.RecipeImages, err = uc.imageRepo.List(); err != nil {
		return nil, err
	}

	out, err := uc.exporter.Export(ctx, data)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.ErrTimeout
		}
		return nil, err
	}
	return out, nil
}
