package migrate

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jfarias/agrolibro-api/internal/domain/costing"
	"github.com/jfarias/agrolibro-api/internal/domain/entity"
	"github.com/jfarias/agrolibro-api/internal/domain/state"
)

// Migración de carga: documentos producidos por esquemas viejos se detectan
// por ausencia de campos, nunca por número de versión. Cada paso es
// idempotente y rellena un hueco conocido; aplicar la lista completa sobre un
// documento ya migrado no cambia nada.

// Step es un paso de migración con nombre, para poder registrar qué se aplicó.
type Step struct {
	Name  string
	Apply func(*state.State)
}

// DefaultWarehouseName bodega sintetizada cuando el documento no trae ninguna.
const DefaultWarehouseName = "Bodega Principal"

// defaultActivities catálogo inicial de labores cuando el documento no trae uno.
var defaultActivities = []string{
	"Siembra",
	"Fertilización",
	"Fumigación",
	"Desyerba",
	"Poda",
	"Riego",
	"Recolección",
}

// Steps devuelve la lista ordenada de pasos de migración.
func Steps() []Step {
	return []Step{
		{Name: "colecciones-vacias", Apply: ensureCollections},
		{Name: "costo-promedio-desde-ultima-compra", Apply: backfillAverageCost},
		{Name: "bodega-por-defecto", Apply: ensureDefaultWarehouse},
		{Name: "catalogo-de-actividades", Apply: ensureActivityCatalog},
	}
}

// Run aplica todos los pasos en orden y devuelve los nombres aplicados.
func Run(st *state.State) []string {
	names := make([]string, 0, 4)
	for _, s := range Steps() {
		s.Apply(st)
		names = append(names, s.Name)
	}
	return names
}

// ensureCollections: las colecciones ausentes (nil tras deserializar un
// documento viejo) pasan a listas vacías.
func ensureCollections(st *state.State) {
	if st.Warehouses == nil {
		st.Warehouses = []entity.Warehouse{}
	}
	if st.Items == nil {
		st.Items = []entity.Item{}
	}
	if st.Movements == nil {
		st.Movements = []entity.Movement{}
	}
	if st.Lots == nil {
		st.Lots = []entity.Lot{}
	}
	if st.Workers == nil {
		st.Workers = []entity.Worker{}
	}
	if st.Activities == nil {
		st.Activities = []entity.Activity{}
	}
	if st.LaborLogs == nil {
		st.LaborLogs = []entity.LaborLog{}
	}
	if st.HarvestLogs == nil {
		st.HarvestLogs = []entity.HarvestLog{}
	}
	if st.ScheduledLabors == nil {
		st.ScheduledLabors = []entity.ScheduledLabor{}
	}
	if st.Budgets == nil {
		st.Budgets = []entity.Budget{}
	}
	if st.Observations == nil {
		st.Observations = []entity.Observation{}
	}
}

// backfillAverageCost: ítems anteriores al costo promedio (promedio en cero
// pero con última compra registrada) reciben el costo derivado de esa compra.
func backfillAverageCost(st *state.State) {
	for i := range st.Items {
		it := &st.Items[i]
		if it.AverageCost.GreaterThan(decimal.Zero) {
			continue
		}
		if boot := costing.EffectiveCost(*it); boot.GreaterThan(decimal.Zero) {
			it.AverageCost = boot
		}
	}
}

func ensureDefaultWarehouse(st *state.State) {
	if len(st.Warehouses) > 0 {
		return
	}
	st.Warehouses = append(st.Warehouses, entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      DefaultWarehouseName,
		CreatedAt: time.Now(),
	})
}

func ensureActivityCatalog(st *state.State) {
	if len(st.Activities) > 0 {
		return
	}
	now := time.Now()
	for _, name := range defaultActivities {
		st.Activities = append(st.Activities, entity.Activity{
			ID:        uuid.New().String(),
			Name:      name,
			CreatedAt: now,
		})
	}
}
