package ports

import (
	"context"

	"github.com/jfarias/agrolibro-api/internal/domain/state"
)

// StateStore es el puerto de persistencia del documento de estado. El motor
// solo exige este contrato de carga/guardado; la implementación (archivo
// JSON, PostgreSQL) se inyecta en el arranque.
type StateStore interface {
	// Load devuelve el documento guardado, o domain.ErrNotFound si nunca
	// se ha guardado uno.
	Load(ctx context.Context) (*state.State, error)
	// Save persiste el documento completo de forma atómica.
	Save(ctx context.Context, st *state.State) error
}
