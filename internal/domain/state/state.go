package state

import (
	"github.com/jfarias/agrolibro-api/internal/domain/entity"
)

// State es el documento único de estado de la finca: todas las colecciones
// que el motor lee y escribe. Es inmutable por convención: toda operación del
// motor toma el estado actual y devuelve uno nuevo (ver Clone), de modo que
// el llamador confirma o descarta el resultado de forma atómica.
type State struct {
	Warehouses      []entity.Warehouse      `json:"warehouses"`
	Items           []entity.Item           `json:"items"`
	Movements       []entity.Movement       `json:"movements"`
	Lots            []entity.Lot            `json:"lots"`
	Workers         []entity.Worker         `json:"workers"`
	Activities      []entity.Activity       `json:"activities"`
	LaborLogs       []entity.LaborLog       `json:"labor_logs"`
	HarvestLogs     []entity.HarvestLog     `json:"harvest_logs"`
	ScheduledLabors []entity.ScheduledLabor `json:"scheduled_labors"`
	Budgets         []entity.Budget         `json:"budgets"`
	Observations    []entity.Observation    `json:"observations"`
}

// New devuelve un estado vacío con todas las colecciones inicializadas.
func New() *State {
	return &State{
		Warehouses:      []entity.Warehouse{},
		Items:           []entity.Item{},
		Movements:       []entity.Movement{},
		Lots:            []entity.Lot{},
		Workers:         []entity.Worker{},
		Activities:      []entity.Activity{},
		LaborLogs:       []entity.LaborLog{},
		HarvestLogs:     []entity.HarvestLog{},
		ScheduledLabors: []entity.ScheduledLabor{},
		Budgets:         []entity.Budget{},
		Observations:    []entity.Observation{},
	}
}

// Clone devuelve una copia del estado con todas las colecciones duplicadas.
// Las entidades son tipos valor; los punteros internos (fechas opcionales)
// nunca se mutan en sitio, así que la copia de slices basta para la pureza
// de las transiciones.
func (s *State) Clone() *State {
	c := &State{
		Warehouses:      make([]entity.Warehouse, len(s.Warehouses)),
		Items:           make([]entity.Item, len(s.Items)),
		Movements:       make([]entity.Movement, len(s.Movements)),
		Lots:            make([]entity.Lot, len(s.Lots)),
		Workers:         make([]entity.Worker, len(s.Workers)),
		Activities:      make([]entity.Activity, len(s.Activities)),
		LaborLogs:       make([]entity.LaborLog, len(s.LaborLogs)),
		HarvestLogs:     make([]entity.HarvestLog, len(s.HarvestLogs)),
		ScheduledLabors: make([]entity.ScheduledLabor, len(s.ScheduledLabors)),
		Budgets:         make([]entity.Budget, len(s.Budgets)),
		Observations:    make([]entity.Observation, len(s.Observations)),
	}
	copy(c.Warehouses, s.Warehouses)
	copy(c.Items, s.Items)
	copy(c.Movements, s.Movements)
	copy(c.Lots, s.Lots)
	copy(c.Workers, s.Workers)
	copy(c.Activities, s.Activities)
	copy(c.LaborLogs, s.LaborLogs)
	copy(c.HarvestLogs, s.HarvestLogs)
	copy(c.ScheduledLabors, s.ScheduledLabors)
	copy(c.Budgets, s.Budgets)
	copy(c.Observations, s.Observations)
	return c
}

// FindItem devuelve el índice del ítem o -1.
func (s *State) FindItem(id string) int {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// FindWarehouse devuelve el índice de la bodega o -1.
func (s *State) FindWarehouse(id string) int {
	for i := range s.Warehouses {
		if s.Warehouses[i].ID == id {
			return i
		}
	}
	return -1
}

// FindLot devuelve el índice del lote o -1.
func (s *State) FindLot(id string) int {
	for i := range s.Lots {
		if s.Lots[i].ID == id {
			return i
		}
	}
	return -1
}

// FindWorker devuelve el índice del trabajador o -1.
func (s *State) FindWorker(id string) int {
	for i := range s.Workers {
		if s.Workers[i].ID == id {
			return i
		}
	}
	return -1
}

// FindActivity devuelve el índice de la actividad o -1.
func (s *State) FindActivity(id string) int {
	for i := range s.Activities {
		if s.Activities[i].ID == id {
			return i
		}
	}
	return -1
}
