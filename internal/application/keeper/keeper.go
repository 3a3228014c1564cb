package keeper

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jfarias/agrolibro-api/internal/application/ledger"
	"github.com/jfarias/agrolibro-api/internal/application/lifecycle"
	"github.com/jfarias/agrolibro-api/internal/application/ports"
	"github.com/jfarias/agrolibro-api/internal/domain/entity"
	"github.com/jfarias/agrolibro-api/internal/domain/state"
	"github.com/jfarias/agrolibro-api/pkg/logger"
)

// Keeper es el único punto de entrada mutador del documento de estado: un
// escritor lógico. Cada operación invoca el motor puro, y solo si este
// devuelve un estado nuevo se confirma el cambio; en error el estado vigente
// queda intacto. Las lecturas entregan el snapshot vigente, inmutable por
// convención, y pueden correr concurrentes entre sí.
type Keeper struct {
	mu    sync.Mutex
	st    *state.State
	store ports.StateStore
	log   *logger.Logger

	saveTimeout time.Duration
}

// New construye el keeper sobre un estado ya cargado y migrado.
func New(st *state.State, store ports.StateStore, log *logger.Logger) *Keeper {
	return &Keeper{st: st, store: store, log: log, saveTimeout: 10 * time.Second}
}

// Snapshot devuelve el estado vigente. Los consumidores (reportes, UI) leen
// solo campos calculados; nunca necesitan reproducir el libro.
func (k *Keeper) Snapshot() *state.State {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.st
}

// commit reemplaza el estado vigente y dispara el guardado. La persistencia
// es fire-and-forget: un fallo se registra y se le advierte al operador,
// pero el estado en memoria sigue siendo autoritativo.
func (k *Keeper) commit(next *state.State) {
	k.st = next
	go func(st *state.State) {
		ctx, cancel := context.WithTimeout(context.Background(), k.saveTimeout)
		defer cancel()
		if err := k.store.Save(ctx, st); err != nil {
			k.log.Warn().Err(err).Msg("guardado del documento de estado falló; el estado en memoria sigue vigente")
		}
	}(next)
}

// RegisterMovement registra un movimiento de inventario.
func (k *Keeper) RegisterMovement(in ledger.MovementInput) (*entity.Movement, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	next, mov, err := ledger.ProcessMovement(k.st, in)
	if err != nil {
		return nil, err
	}
	k.commit(next)
	return mov, nil
}

// RegisterItem registra un insumo nuevo.
func (k *Keeper) RegisterItem(in ledger.ItemInput) (*entity.Item, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	next, item, err := ledger.RegisterItem(k.st, in)
	if err != nil {
		return nil, err
	}
	k.commit(next)
	return item, nil
}

// RetireItem retira un insumo del uso activo.
func (k *Keeper) RetireItem(itemID string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	next, err := ledger.RetireItem(k.st, itemID)
	if err != nil {
		return err
	}
	k.commit(next)
	return nil
}

// CreateWarehouse registra una bodega.
func (k *Keeper) CreateWarehouse(name, location string) (*entity.Warehouse, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	next, wh, err := lifecycle.CreateWarehouse(k.st, name, location)
	if err != nil {
		return nil, err
	}
	k.commit(next)
	return wh, nil
}

// CreateLot registra un lote/centro de costo.
func (k *Keeper) CreateLot(name, crop string, areaHa float64) (*entity.Lot, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	next, lot, err := lifecycle.CreateLot(k.st, name, crop, areaHa)
	if err != nil {
		return nil, err
	}
	k.commit(next)
	return lot, nil
}

// CreateWorker registra un trabajador.
func (k *Keeper) CreateWorker(name, document, phone string) (*entity.Worker, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	next, w, err := lifecycle.CreateWorker(k.st, name, document, phone)
	if err != nil {
		return nil, err
	}
	k.commit(next)
	return w, nil
}

// CreateActivity registra un tipo de labor.
func (k *Keeper) CreateActivity(name string) (*entity.Activity, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	next, a, err := lifecycle.CreateActivity(k.st, name)
	if err != nil {
		return nil, err
	}
	k.commit(next)
	return a, nil
}

// RecordLabor registra una labor ejecutada.
func (k *Keeper) RecordLabor(in lifecycle.LaborInput) (*entity.LaborLog, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	next, l, err := lifecycle.RecordLabor(k.st, in)
	if err != nil {
		return nil, err
	}
	k.commit(next)
	return l, nil
}

// PayLabor marca una labor como pagada.
func (k *Keeper) PayLabor(laborID string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	next, err := lifecycle.PayLabor(k.st, laborID)
	if err != nil {
		return err
	}
	k.commit(next)
	return nil
}

// RecordHarvest registra una cosecha o venta.
func (k *Keeper) RecordHarvest(in lifecycle.HarvestInput) (*entity.HarvestLog, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	next, h, err := lifecycle.RecordHarvest(k.st, in)
	if err != nil {
		return nil, err
	}
	k.commit(next)
	return h, nil
}

// RecordObservation registra una observación de campo.
func (k *Keeper) RecordObservation(date time.Time, obsType, lotID, detail string) (*entity.Observation, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	next, o, err := lifecycle.RecordObservation(k.st, date, obsType, lotID, detail)
	if err != nil {
		return nil, err
	}
	k.commit(next)
	return o, nil
}

// ScheduleLabor programa una labor futura.
func (k *Keeper) ScheduleLabor(in lifecycle.ScheduleInput) (*entity.ScheduledLabor, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	next, sl, err := lifecycle.ScheduleLabor(k.st, in)
	if err != nil {
		return nil, err
	}
	k.commit(next)
	return sl, nil
}

// CreateBudget registra un presupuesto de lote.
func (k *Keeper) CreateBudget(name, lotID string, year int, amount decimal.Decimal) (*entity.Budget, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	next, b, err := lifecycle.CreateBudget(k.st, name, lotID, year, amount)
	if err != nil {
		return nil, err
	}
	k.commit(next)
	return b, nil
}

// PlanDeletion genera el informe de impacto de eliminar una entidad.
func (k *Keeper) PlanDeletion(kind entity.Kind, id string) (*lifecycle.ImpactReport, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return lifecycle.PlanDeletion(k.st, kind, id)
}

// ExecuteDeletion ejecuta un plan de eliminación confirmado.
func (k *Keeper) ExecuteDeletion(kind entity.Kind, id string, confirmed lifecycle.ImpactReport) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	next, err := lifecycle.ExecuteDeletion(k.st, kind, id, confirmed)
	if err != nil {
		return err
	}
	k.commit(next)
	return nil
}
