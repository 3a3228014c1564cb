package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jfarias/agrolibro-api/internal/domain"
	"github.com/jfarias/agrolibro-api/internal/domain/state"
)

// Store persiste el documento de estado como una sola fila JSONB. El modelo
// de un escritor lógico hace innecesario el esquema relacional: el documento
// completo se guarda y se carga de una pieza.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore crea el store y garantiza la tabla.
func NewStore(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	const ddl = `
		CREATE TABLE IF NOT EXISTS farm_state (
			id         int PRIMARY KEY,
			doc        jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("%w: crear tabla farm_state: %v", domain.ErrPersistence, err)
	}
	return &Store{pool: pool}, nil
}

// Load carga el documento. Sin fila guardada devuelve domain.ErrNotFound.
func (s *Store) Load(ctx context.Context) (*state.State, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT doc FROM farm_state WHERE id = 1`).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: documento de estado", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: cargar documento: %v", domain.ErrPersistence, err)
	}
	var st state.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("%w: documento inválido: %v", domain.ErrPersistence, err)
	}
	return &st, nil
}

// Save guarda el documento completo (upsert de la fila única).
func (s *Store) Save(ctx context.Context, st *state.State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("%w: serializar estado: %v", domain.ErrPersistence, err)
	}
	const upsert = `
		INSERT INTO farm_state (id, doc, updated_at) VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`
	if _, err := s.pool.Exec(ctx, upsert, raw); err != nil {
		return fmt.Errorf("%w: guardar documento: %v", domain.ErrPersistence, err)
	}
	return nil
}
