package lifecycle

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jfarias/agrolibro-api/internal/domain"
	"github.com/jfarias/agrolibro-api/internal/domain/entity"
	"github.com/jfarias/agrolibro-api/internal/domain/state"
)

// Gestor de ciclo de vida de entidades de dimensión (lotes, trabajadores,
// actividades) y de los registros que las referencian. Igual que el motor de
// movimientos, toda operación es una transición pura sobre el estado.

// CreateWarehouse registra una bodega de la finca.
func CreateWarehouse(st *state.State, name, location string) (*state.State, *entity.Warehouse, error) {
	if name == "" {
		return nil, nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	wh := entity.Warehouse{ID: uuid.New().String(), Name: name, Location: location, CreatedAt: time.Now()}
	next := st.Clone()
	next.Warehouses = append(next.Warehouses, wh)
	return next, &wh, nil
}

// CreateLot registra un lote/centro de costo.
func CreateLot(st *state.State, name, crop string, areaHa float64) (*state.State, *entity.Lot, error) {
	if name == "" {
		return nil, nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	lot := entity.Lot{ID: uuid.New().String(), Name: name, Crop: crop, AreaHa: areaHa, CreatedAt: time.Now()}
	next := st.Clone()
	next.Lots = append(next.Lots, lot)
	return next, &lot, nil
}

// CreateWorker registra un trabajador en la nómina activa.
func CreateWorker(st *state.State, name, document, phone string) (*state.State, *entity.Worker, error) {
	if name == "" {
		return nil, nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	w := entity.Worker{ID: uuid.New().String(), Name: name, Document: document, Phone: phone, CreatedAt: time.Now()}
	next := st.Clone()
	next.Workers = append(next.Workers, w)
	return next, &w, nil
}

// CreateActivity registra un tipo de labor en el catálogo.
func CreateActivity(st *state.State, name string) (*state.State, *entity.Activity, error) {
	if name == "" {
		return nil, nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	a := entity.Activity{ID: uuid.New().String(), Name: name, CreatedAt: time.Now()}
	next := st.Clone()
	next.Activities = append(next.Activities, a)
	return next, &a, nil
}

// LaborInput entrada para registrar una labor ejecutada.
type LaborInput struct {
	Date       time.Time
	WorkerID   string
	LotID      string // opcional
	ActivityID string
	Days       decimal.Decimal
	Wage       decimal.Decimal
	Paid       bool
	Notes      string
}

// RecordLabor registra una labor ejecutada. La actividad obsoleta no es
// reutilizable en registros nuevos.
func RecordLabor(st *state.State, in LaborInput) (*state.State, *entity.LaborLog, error) {
	if !in.Days.GreaterThan(decimal.Zero) || in.Wage.LessThan(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: jornales o valor de jornal inválidos", domain.ErrInvalidInput)
	}
	wIdx := st.FindWorker(in.WorkerID)
	if wIdx < 0 {
		return nil, nil, fmt.Errorf("%w: trabajador %s", domain.ErrNotFound, in.WorkerID)
	}
	aIdx := st.FindActivity(in.ActivityID)
	if aIdx < 0 {
		return nil, nil, fmt.Errorf("%w: actividad %s", domain.ErrNotFound, in.ActivityID)
	}
	if st.Activities[aIdx].Obsolete {
		return nil, nil, fmt.Errorf("%w: la actividad %q es obsolescente", domain.ErrInvalidInput, st.Activities[aIdx].Name)
	}
	lotRef := entity.Ref{}
	if in.LotID != "" {
		lIdx := st.FindLot(in.LotID)
		if lIdx < 0 {
			return nil, nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, in.LotID)
		}
		lotRef = entity.NewRef(in.LotID, st.Lots[lIdx].Name)
	}

	now := time.Now()
	log := entity.LaborLog{
		ID:          uuid.New().String(),
		Date:        in.Date,
		WorkerRef:   entity.NewRef(in.WorkerID, st.Workers[wIdx].Name),
		LotRef:      lotRef,
		ActivityRef: entity.NewRef(in.ActivityID, st.Activities[aIdx].Name),
		Days:        in.Days,
		Wage:        in.Wage,
		Total:       in.Days.Mul(in.Wage),
		Paid:        in.Paid,
		Notes:       in.Notes,
		CreatedAt:   now,
	}
	if in.Paid {
		log.PaidAt = &now
	}
	next := st.Clone()
	next.LaborLogs = append(next.LaborLogs, log)
	return next, &log, nil
}

// PayLabor marca una labor como pagada. Es la vía para liberar la deuda que
// bloquea la eliminación de un trabajador.
func PayLabor(st *state.State, laborID string) (*state.State, error) {
	for i := range st.LaborLogs {
		if st.LaborLogs[i].ID == laborID {
			if st.LaborLogs[i].Paid {
				return nil, fmt.Errorf("%w: la labor ya está pagada", domain.ErrConflict)
			}
			next := st.Clone()
			now := time.Now()
			next.LaborLogs[i].Paid = true
			next.LaborLogs[i].PaidAt = &now
			return next, nil
		}
	}
	return nil, fmt.Errorf("%w: labor %s", domain.ErrNotFound, laborID)
}

// HarvestInput entrada para registrar una cosecha/venta.
type HarvestInput struct {
	Date     time.Time
	LotID    string
	Product  string
	Quantity decimal.Decimal
	Value    decimal.Decimal
	Buyer    string
}

// RecordHarvest registra una cosecha o venta de un lote.
func RecordHarvest(st *state.State, in HarvestInput) (*state.State, *entity.HarvestLog, error) {
	if in.Value.LessThan(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: valor negativo", domain.ErrInvalidInput)
	}
	lIdx := st.FindLot(in.LotID)
	if lIdx < 0 {
		return nil, nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, in.LotID)
	}
	h := entity.HarvestLog{
		ID:        uuid.New().String(),
		Date:      in.Date,
		LotRef:    entity.NewRef(in.LotID, st.Lots[lIdx].Name),
		Product:   in.Product,
		Quantity:  in.Quantity,
		Value:     in.Value,
		Buyer:     in.Buyer,
		CreatedAt: time.Now(),
	}
	next := st.Clone()
	next.HarvestLogs = append(next.HarvestLogs, h)
	return next, &h, nil
}

// RecordObservation registra una observación de campo (fenología, plaga, suelo).
func RecordObservation(st *state.State, date time.Time, obsType, lotID, detail string) (*state.State, *entity.Observation, error) {
	switch obsType {
	case entity.ObservationPhenology, entity.ObservationPest, entity.ObservationSoil:
	default:
		return nil, nil, fmt.Errorf("%w: tipo de observación %q", domain.ErrInvalidInput, obsType)
	}
	lIdx := st.FindLot(lotID)
	if lIdx < 0 {
		return nil, nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, lotID)
	}
	o := entity.Observation{
		ID:        uuid.New().String(),
		Date:      date,
		Type:      obsType,
		LotRef:    entity.NewRef(lotID, st.Lots[lIdx].Name),
		Detail:    detail,
		CreatedAt: time.Now(),
	}
	next := st.Clone()
	next.Observations = append(next.Observations, o)
	return next, &o, nil
}

// ScheduleInput entrada para programar una labor futura.
type ScheduleInput struct {
	Date       time.Time
	WorkerID   string // opcional
	LotID      string // opcional
	ActivityID string
	Notes      string
}

// ScheduleLabor programa una labor futura.
func ScheduleLabor(st *state.State, in ScheduleInput) (*state.State, *entity.ScheduledLabor, error) {
	aIdx := st.FindActivity(in.ActivityID)
	if aIdx < 0 {
		return nil, nil, fmt.Errorf("%w: actividad %s", domain.ErrNotFound, in.ActivityID)
	}
	if st.Activities[aIdx].Obsolete {
		return nil, nil, fmt.Errorf("%w: la actividad %q es obsolescente", domain.ErrInvalidInput, st.Activities[aIdx].Name)
	}
	sl := entity.ScheduledLabor{
		ID:          uuid.New().String(),
		Date:        in.Date,
		ActivityRef: entity.NewRef(in.ActivityID, st.Activities[aIdx].Name),
		Notes:       in.Notes,
		CreatedAt:   time.Now(),
	}
	if in.WorkerID != "" {
		wIdx := st.FindWorker(in.WorkerID)
		if wIdx < 0 {
			return nil, nil, fmt.Errorf("%w: trabajador %s", domain.ErrNotFound, in.WorkerID)
		}
		sl.WorkerRef = entity.NewRef(in.WorkerID, st.Workers[wIdx].Name)
	}
	if in.LotID != "" {
		lIdx := st.FindLot(in.LotID)
		if lIdx < 0 {
			return nil, nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, in.LotID)
		}
		sl.LotRef = entity.NewRef(in.LotID, st.Lots[lIdx].Name)
	}
	next := st.Clone()
	next.ScheduledLabors = append(next.ScheduledLabors, sl)
	return next, &sl, nil
}

// CreateBudget registra un presupuesto proyectado para un lote.
func CreateBudget(st *state.State, name, lotID string, year int, amount decimal.Decimal) (*state.State, *entity.Budget, error) {
	if name == "" {
		return nil, nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	lIdx := st.FindLot(lotID)
	if lIdx < 0 {
		return nil, nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, lotID)
	}
	b := entity.Budget{
		ID:        uuid.New().String(),
		Name:      name,
		LotRef:    entity.NewRef(lotID, st.Lots[lIdx].Name),
		Year:      year,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
	next := st.Clone()
	next.Budgets = append(next.Budgets, b)
	return next, &b, nil
}
