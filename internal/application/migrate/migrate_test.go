package migrate_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfarias/agrolibro-api/internal/application/migrate"
	"github.com/jfarias/agrolibro-api/internal/domain/entity"
	"github.com/jfarias/agrolibro-api/internal/domain/state"
	"github.com/jfarias/agrolibro-api/internal/domain/unit"
)

// Un documento de esquema viejo (colecciones nil, sin bodegas ni catálogo)
// se rellena por ausencia de campos, sin número de versión.
func TestRun_DocumentoViejoSeRellena(t *testing.T) {
	st := &state.State{} // todo nil, como tras deserializar un documento antiguo

	applied := migrate.Run(st)
	assert.Len(t, applied, 4)

	assert.NotNil(t, st.Movements)
	assert.NotNil(t, st.LaborLogs)
	assert.NotNil(t, st.Budgets)

	require.Len(t, st.Warehouses, 1)
	assert.Equal(t, migrate.DefaultWarehouseName, st.Warehouses[0].Name)

	assert.NotEmpty(t, st.Activities, "catálogo de actividades sintetizado")
}

// Ítems anteriores al costo promedio: se les deriva uno de la última compra.
func TestRun_BootstrapDeCostoPromedio(t *testing.T) {
	st := &state.State{
		Items: []entity.Item{
			{
				ID:           "i-1",
				Name:         "Abono orgánico",
				AverageCost:  decimal.Zero,
				LastPurchase: entity.LastPurchase{Price: decimal.NewFromInt(5000), PriceUnit: unit.Kilo},
			},
			{
				ID:          "i-2",
				Name:        "Cal agrícola",
				AverageCost: decimal.NewFromInt(2),
			},
		},
	}

	migrate.Run(st)

	assert.True(t, st.Items[0].AverageCost.Equal(decimal.NewFromInt(5)), "5000/kg = 5/g")
	assert.True(t, st.Items[1].AverageCost.Equal(decimal.NewFromInt(2)), "un promedio existente no se toca")
}

// Cada paso es idempotente: correr la migración dos veces no cambia nada.
func TestRun_Idempotente(t *testing.T) {
	st := &state.State{}
	migrate.Run(st)

	warehouses := len(st.Warehouses)
	activities := len(st.Activities)

	migrate.Run(st)
	assert.Len(t, st.Warehouses, warehouses)
	assert.Len(t, st.Activities, activities)
}

// Un documento ya completo pasa intacto.
func TestRun_DocumentoCompletoIntacto(t *testing.T) {
	st := state.New()
	st.Warehouses = append(st.Warehouses, entity.Warehouse{ID: "wh-1", Name: "Bodega Norte"})
	st.Activities = append(st.Activities, entity.Activity{ID: "a-1", Name: "Injertación"})

	migrate.Run(st)

	require.Len(t, st.Warehouses, 1)
	assert.Equal(t, "Bodega Norte", st.Warehouses[0].Name)
	require.Len(t, st.Activities, 1)
	assert.Equal(t, "Injertación", st.Activities[0].Name)
}
