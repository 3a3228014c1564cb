package importer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfarias/agrolibro-api/internal/application/importer"
	"github.com/jfarias/agrolibro-api/internal/application/keeper"
	"github.com/jfarias/agrolibro-api/internal/domain/state"
	"github.com/jfarias/agrolibro-api/pkg/logger"
)

type nopStore struct{}

func (nopStore) Load(context.Context) (*state.State, error) { return nil, nil }
func (nopStore) Save(context.Context, *state.State) error   { return nil }

// Cada fila se valida de forma independiente: una mala no tumba el lote.
func TestImport_FilaMalaNoTumbaElLote(t *testing.T) {
	kp := keeper.New(state.New(), nopStore{}, logger.Nop())
	im := importer.New(kp, logger.Nop())

	results := im.Import([]importer.Entry{
		{Kind: importer.EntryWarehouse, Name: "Bodega Principal"},
		{Kind: importer.EntryLot, Name: "Lote La Esperanza", Crop: "café"},
		{Kind: importer.EntryWorker, Name: ""}, // inválida: sin nombre
		{Kind: "parcela", Name: "X"},           // clase desconocida
		{Kind: importer.EntryActivity, Name: "Poda"},
	})

	require.Len(t, results, 5)
	assert.True(t, results[0].OK)
	assert.True(t, results[1].OK)
	assert.False(t, results[2].OK)
	assert.NotEmpty(t, results[2].Error)
	assert.False(t, results[3].OK)
	assert.True(t, results[4].OK)

	st := kp.Snapshot()
	assert.Len(t, st.Warehouses, 1)
	assert.Len(t, st.Lots, 1)
	assert.Empty(t, st.Workers)
	assert.Len(t, st.Activities, 1)
}

// Las filas se aplican en orden: un ítem puede referenciar la bodega creada
// en una fila anterior del mismo lote.
func TestImport_Secuencial(t *testing.T) {
	kp := keeper.New(state.New(), nopStore{}, logger.Nop())
	im := importer.New(kp, logger.Nop())

	results := im.Import([]importer.Entry{
		{Kind: importer.EntryWarehouse, Name: "Bodega Principal"},
	})
	require.True(t, results[0].OK)
	whID := results[0].ID

	results = im.Import([]importer.Entry{
		{Kind: importer.EntryItem, Name: "Urea", WarehouseID: whID, Unit: "KILO"},
	})
	require.True(t, results[0].OK, "error: %s", results[0].Error)
	assert.Len(t, kp.Snapshot().Items, 1)
}
