// Package storage implementa el colaborador de archivos sobre disco local.
// Las rutas devueltas son relativas al directorio base, de modo que el
// directorio puede moverse sin invalidar las referencias persistidas.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cultivo-labs/cultivo-api/internal/application/ports"
	"github.com/cultivo-labs/cultivo-api/internal/domain"
)

var _ ports.FileStorage = (*LocalStorage)(nil)

// LocalStorage implementa ports.FileStorage sobre el sistema de archivos.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage crea el almacenamiento local bajo baseDir.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio base: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// Save guarda el contenido bajo category/filename y devuelve la ruta relativa.
func (s *LocalStorage) Save(ctx context.Context, category, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rel := filepath.Join(category, filepath.Base(filename))
	abs, err := s.resolve(rel)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("crear directorio: %w", err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return "", fmt.Errorf("guardar archivo: %w", err)
	}
	return rel, nil
}

// Open recupera el contenido almacenado en la ruta relativa.
func (s *LocalStorage) Open(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	abs, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("leer archivo: %w", err)
	}
	return data, nil
}

// Delete elimina el contenido de la ruta. Idempotente: borrar algo que no
// existe no es error.
func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	abs, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("eliminar archivo: %w", err)
	}
	return nil
}

// resolve convierte la ruta relativa en absoluta rechazando escapes del
// directorio base (ej. "../../etc/passwd").
func (s *LocalStorage) resolve(rel string) (string, error) {
	abs := filepath.Join(s.baseDir, rel)
	base, err := filepath.Abs(s.baseDir)
	if err != nil {
		return "", err
	}
	full, err := filepath.Abs(abs)
	if err != nil {
		return "", err
	}
	if full != base && !strings.HasPrefix(full, base+string(filepath.Separator)) {
		return "", domain.ErrInvalidInput
	}
	return full, nil
}
