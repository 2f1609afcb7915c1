// Package analytics deriva el tablero, los desgloses de consumo/gasto y las
// comparaciones de tiempo a partir de un snapshot del libro de movimientos.
// Todas las agregaciones son funciones puras del snapshot: sin efectos
// laterales, seguras de recalcular en cada lectura.
package analytics

import (
	"fmt"

	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

// Engine es el componente de solo lectura que agrega el libro.
type Engine struct {
	productRepo  repository.ProductRepository
	stageRepo    repository.StageRepository
	substageRepo repository.SubstageRepository
	locationRepo repository.LocationRepository
	movementRepo repository.MovementRepository
}

// NewEngine construye el motor de agregación.
func NewEngine(
	productRepo repository.ProductRepository,
	stageRepo repository.StageRepository,
	substageRepo repository.SubstageRepository,
	locationRepo repository.LocationRepository,
	movementRepo repository.MovementRepository,
) *Engine {
	return &Engine{
		productRepo:  productRepo,
		stageRepo:    stageRepo,
		substageRepo: substageRepo,
		locationRepo: locationRepo,
		movementRepo: movementRepo,
	}
}

// snapshot es la vista consistente de las colecciones sobre la que se agrega.
type snapshot struct {
	products  []*entity.Product
	stages    []*entity.Stage
	substages []*entity.Substage
	locations []*entity.Location
	movements []*entity.Movement

	productByID  map[string]*entity.Product
	stageByID    map[string]*entity.Stage
	substageByID map[string]*entity.Substage
	locationByID map[string]*entity.Location
}

// load carga las cinco colecciones en paralelo y arma los índices por id.
func (e *Engine) load() (*snapshot, error) {
	type result struct {
		name string
		err  error
	}
	s := &snapshot{}
	ch := make(chan result, 5)

	go func() {
		var err error
		s.products, err = e.productRepo.List()
		ch <- result{"productos", err}
	}()
	go func() {
		var err error
		s.stages, err = e.stageRepo.List()
		ch <- result{"etapas", err}
	}()
	go func() {
		var err error
		s.substages, err = e.substageRepo.List()
		ch <- result{"sub-etapas", err}
	}()
	go func() {
		var err error
		s.locations, err = e.locationRepo.List()
		ch <- result{"locaciones", err}
	}()
	go func() {
		var err error
		s.movements, err = e.movementRepo.List(repository.MovementFilter{})
		ch <- result{"movimientos", err}
	}()

	for i := 0; i < 5; i++ {
		r := <-ch
		if r.err != nil {
			return nil, fmt.Errorf("agregación: cargar %s: %w", r.name, r.err)
		}
	}

	s.productByID = make(map[string]*entity.Product, len(s.products))
	for _, p := range s.products {
		s.productByID[p.ID] = p
	}
	s.stageByID = make(map[string]*entity.Stage, len(s.stages))
	for _, st := range s.stages {
		s.stageByID[st.ID] = st
	}
	s.substageByID = make(map[string]*entity.Substage, len(s.substages))
	for _, ss := range s.substages {
		s.substageByID[ss.ID] = ss
	}
	s.locationByID = make(map[string]*entity.Location, len(s.locations))
	for _, l := range s.locations {
		s.locationByID[l.ID] = l
	}
	return s, nil
}

// locationLabel resuelve el nombre descriptivo de la locación de un movimiento.
func (s *snapshot) locationLabel(m *entity.Movement) string {
	if m.LocationName != "" {
		return m.LocationName
	}
	if m.LocationID != "" {
		if loc, ok := s.locationByID[m.LocationID]; ok {
			return loc.Name
		}
	}
	return "Sin especificar"
}
