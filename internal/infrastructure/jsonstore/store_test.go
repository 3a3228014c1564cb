package jsonstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfarias/agrolibro-api/internal/domain"
	"github.com/jfarias/agrolibro-api/internal/domain/entity"
	"github.com/jfarias/agrolibro-api/internal/domain/state"
	"github.com/jfarias/agrolibro-api/internal/domain/unit"
	"github.com/jfarias/agrolibro-api/internal/infrastructure/jsonstore"
)

func TestLoad_SinArchivoEsNotFound(t *testing.T) {
	s := jsonstore.New(filepath.Join(t.TempDir(), "estado.json"))
	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Guardar y recargar reproduce el documento, decimales incluidos.
func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estado.json")
	s := jsonstore.New(path)
	ctx := context.Background()

	st := state.New()
	st.Warehouses = append(st.Warehouses, entity.Warehouse{ID: "wh-1", Name: "Bodega Principal"})
	st.Items = append(st.Items, entity.Item{
		ID:              "i-1",
		Name:            "Fertilizante 10-30-10",
		WarehouseID:     "wh-1",
		BaseCategory:    unit.Masa,
		CurrentQuantity: decimal.NewFromInt(100000),
		AverageCost:     decimal.NewFromInt(3),
		Active:          true,
	})

	require.NoError(t, s.Save(ctx, st))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "Fertilizante 10-30-10", loaded.Items[0].Name)
	assert.True(t, loaded.Items[0].CurrentQuantity.Equal(decimal.NewFromInt(100000)))
	assert.True(t, loaded.Items[0].AverageCost.Equal(decimal.NewFromInt(3)))
}

// El guardado sobrescribe de forma atómica: el segundo Save reemplaza al primero.
func TestSave_Sobrescribe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estado.json")
	s := jsonstore.New(path)
	ctx := context.Background()

	st := state.New()
	require.NoError(t, s.Save(ctx, st))

	st.Lots = append(st.Lots, entity.Lot{ID: "lot-1", Name: "Lote La Esperanza"})
	require.NoError(t, s.Save(ctx, st))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Lots, 1)
}
