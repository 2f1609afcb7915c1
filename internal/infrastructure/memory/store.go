// Package memory implementa los puertos de persistencia sobre mapas en
// memoria protegidos por mutex. Es el modo por defecto de la aplicación y el
// sustrato de los tests; el esquema y las garantías imitan al backend
// PostgreSQL (los repos devuelven copias, nunca aliasing del estado interno).
package memory

import (
	"sync"

	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
)

// Store es el estado compartido de todos los repositorios en memoria.
//
// mu protege el acceso a los mapas operación por operación. txMu serializa
// las transacciones completas: mientras un TxRunner ejecuta su función, ningún
// otro TxRunner puede intercalarse, lo que da a GetForUpdate la misma
// exclusividad que un SELECT FOR UPDATE.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	products       map[string]*entity.Product
	locations      map[string]*entity.Location
	stages         map[string]*entity.Stage
	substages      map[string]*entity.Substage
	movements      map[string]*entity.Movement
	locationStocks map[string]*entity.LocationStock // clave productID|locationID
	postits        map[string]*entity.PostIt
	recipes        map[string]*entity.Recipe
	recipeImages   map[string]*entity.RecipeImage
	responsibles   map[string]*entity.Responsible
}

// NewStore crea un estado vacío.
func NewStore() *Store {
	return &Store{
		products:       make(map[string]*entity.Product),
		locations:      make(map[string]*entity.Location),
		stages:         make(map[string]*entity.Stage),
		substages:      make(map[string]*entity.Substage),
		movements:      make(map[string]*entity.Movement),
		locationStocks: make(map[string]*entity.LocationStock),
		postits:        make(map[string]*entity.PostIt),
		recipes:        make(map[string]*entity.Recipe),
		recipeImages:   make(map[string]*entity.RecipeImage),
		responsibles:   make(map[string]*entity.Responsible),
	}
}

func stockKey(productID, locationID string) string {
	return productID + "|" + locationID
}

// copyMap duplica el mapa de punteros. Como los repos nunca mutan una entidad
// almacenada en sitio (siempre reemplazan el puntero con un clon), una copia
// superficial basta como snapshot restaurable.
func copyMap[T any](src map[string]*T) map[string]*T {
	dst := make(map[string]*T, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
