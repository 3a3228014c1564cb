package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jfarias/agrolibro-api/internal/domain"
	"github.com/jfarias/agrolibro-api/internal/domain/state"
)

// Store persiste el documento de estado como un archivo JSON. La escritura es
// atómica (archivo temporal + rename) para que un corte a mitad de guardado
// nunca deje un documento corrupto.
type Store struct {
	path string
}

// New construye el store sobre la ruta dada.
func New(path string) *Store {
	return &Store{path: path}
}

// Load lee y deserializa el documento. Si el archivo no existe devuelve
// domain.ErrNotFound: el llamador arranca con un estado vacío migrado.
func (s *Store) Load(_ context.Context) (*state.State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("%w: leer %s: %v", domain.ErrPersistence, s.path, err)
	}
	var st state.State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("%w: documento inválido en %s: %v", domain.ErrPersistence, s.path, err)
	}
	return &st, nil
}

// Save serializa y escribe el documento completo de forma atómica.
func (s *Store) Save(_ context.Context, st *state.State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: serializar estado: %v", domain.ErrPersistence, err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".agrolibro-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}
