package ports

import "context"

// FileStorage colaborador externo de almacenamiento binario (documentos de
// recetas e imágenes). Las implementaciones deben acotar sus tiempos: toda
// llamada respeta el deadline del contexto y devuelve error de timeout en vez
// de colgarse.
type FileStorage interface {
	// Save guarda el contenido bajo la categoría dada y devuelve la ruta.
	Save(ctx context.Context, category, filename string, data []byte) (string, error)
	// Open recupera el contenido almacenado en la ruta.
	Open(ctx context.Context, path string) ([]byte, error)
	// Delete elimina el contenido de la ruta. Idempotente.
	Delete(ctx context.Context, path string) error
}
