package lifecycle

import (
	"fmt"

	"github.com/jfarias/agrolibro-api/internal/domain"
	"github.com/jfarias/agrolibro-api/internal/domain/entity"
	"github.com/jfarias/agrolibro-api/internal/domain/state"
)

// Eliminación en dos fases. La eliminación de una entidad de dimensión nunca
// borra registros históricos: sus referencias se reescriben a lápida para que
// los agregados financieros (costos, ingresos) sean invariantes bajo la
// eliminación. Los registros prospectivos (labores programadas, presupuestos)
// sí se borran en cascada: codifican intención que deja de ser ejecutable.

// ImpactReport describe qué tocaría la eliminación de una entidad. Reemplaza
// el diálogo de confirmación de la UI: el operador pide el plan, lo revisa y
// lo devuelve confirmado a ExecuteDeletion.
type ImpactReport struct {
	Kind entity.Kind `json:"kind"`
	ID   string      `json:"id"`
	Name string      `json:"name"`

	// Referencias históricas: se preservan con lápida.
	Movements    int `json:"movements"`
	LaborLogs    int `json:"labor_logs"`
	HarvestLogs  int `json:"harvest_logs"`
	Observations int `json:"observations"`

	// Referencias prospectivas: se borran en cascada.
	ScheduledLabors int `json:"scheduled_labors"`
	Budgets         int `json:"budgets"`

	// Deuda que bloquea la eliminación (solo trabajadores).
	UnpaidLaborLogs int `json:"unpaid_labor_logs"`

	// La actividad referenciada no se borra: queda obsolescente.
	WouldObsolete bool `json:"would_obsolete,omitempty"`
}

// HistoricalRefs total de referencias históricas preservadas.
func (r ImpactReport) HistoricalRefs() int {
	return r.Movements + r.LaborLogs + r.HarvestLogs + r.Observations
}

// ForwardRefs total de registros prospectivos a borrar.
func (r ImpactReport) ForwardRefs() int {
	return r.ScheduledLabors + r.Budgets
}

// PlanDeletion escanea las dependencias de la entidad y devuelve el informe
// de impacto. No muta el estado.
func PlanDeletion(st *state.State, kind entity.Kind, id string) (*ImpactReport, error) {
	name, err := entityName(st, kind, id)
	if err != nil {
		return nil, err
	}
	r := scan(st, kind, id)
	r.Name = name
	if kind == entity.KindActivity && r.LaborLogs > 0 {
		r.WouldObsolete = true
	}
	return &r, nil
}

// ExecuteDeletion ejecuta el plan confirmado. Si las dependencias cambiaron
// desde que se generó el plan, devuelve ErrConflict y no toca nada; un
// trabajador con labores sin pagar devuelve ErrIntegrityBlocked.
func ExecuteDeletion(st *state.State, kind entity.Kind, id string, confirmed ImpactReport) (*state.State, error) {
	if _, err := entityName(st, kind, id); err != nil {
		return nil, err
	}
	current := scan(st, kind, id)
	if !sameImpact(current, confirmed) {
		return nil, fmt.Errorf("%w: el plan de eliminación quedó obsoleto, solicite uno nuevo", domain.ErrConflict)
	}
	if kind == entity.KindWorker && current.UnpaidLaborLogs > 0 {
		return nil, fmt.Errorf("%w: %d labores sin pagar", domain.ErrIntegrityBlocked, current.UnpaidLaborLogs)
	}

	next := st.Clone()
	switch kind {
	case entity.KindLot:
		deleteLot(next, id)
	case entity.KindWorker:
		deleteWorker(next, id)
	case entity.KindActivity:
		deleteActivity(next, id, current.LaborLogs > 0)
	default:
		return nil, fmt.Errorf("%w: clase de entidad %q", domain.ErrInvalidInput, kind)
	}
	return next, nil
}

func entityName(st *state.State, kind entity.Kind, id string) (string, error) {
	switch kind {
	case entity.KindLot:
		if i := st.FindLot(id); i >= 0 {
			return st.Lots[i].Name, nil
		}
	case entity.KindWorker:
		if i := st.FindWorker(id); i >= 0 {
			return st.Workers[i].Name, nil
		}
	case entity.KindActivity:
		if i := st.FindActivity(id); i >= 0 {
			return st.Activities[i].Name, nil
		}
	default:
		return "", fmt.Errorf("%w: clase de entidad %q", domain.ErrInvalidInput, kind)
	}
	return "", fmt.Errorf("%w: %s %s", domain.ErrNotFound, kind, id)
}

// scan cuenta dependencias. PlanDeletion y ExecuteDeletion usan el mismo
// escaneo: un plan viejo se detecta por diferencia de conteos.
func scan(st *state.State, kind entity.Kind, id string) ImpactReport {
	r := ImpactReport{Kind: kind, ID: id}

	refOf := func(m entity.Movement) entity.Ref {
		if kind == entity.KindWorker {
			return m.WorkerRef
		}
		return m.LotRef
	}
	if kind != entity.KindActivity {
		for _, m := range st.Movements {
			if refOf(m).Points(id) {
				r.Movements++
			}
		}
	}
	for _, l := range st.LaborLogs {
		hit := false
		switch kind {
		case entity.KindLot:
			hit = l.LotRef.Points(id)
		case entity.KindWorker:
			hit = l.WorkerRef.Points(id)
		case entity.KindActivity:
			hit = l.ActivityRef.Points(id)
		}
		if hit {
			r.LaborLogs++
			if !l.Paid && kind == entity.KindWorker {
				r.UnpaidLaborLogs++
			}
		}
	}
	if kind == entity.KindLot {
		for _, h := range st.HarvestLogs {
			if h.LotRef.Points(id) {
				r.HarvestLogs++
			}
		}
		for _, o := range st.Observations {
			if o.LotRef.Points(id) {
				r.Observations++
			}
		}
		for _, b := range st.Budgets {
			if b.LotRef.Points(id) {
				r.Budgets++
			}
		}
	}
	for _, sl := range st.ScheduledLabors {
		hit := false
		switch kind {
		case entity.KindLot:
			hit = sl.LotRef.Points(id)
		case entity.KindWorker:
			hit = sl.WorkerRef.Points(id)
		case entity.KindActivity:
			hit = sl.ActivityRef.Points(id)
		}
		if hit {
			r.ScheduledLabors++
		}
	}
	return r
}

func sameImpact(a, b ImpactReport) bool {
	return a.Movements == b.Movements &&
		a.LaborLogs == b.LaborLogs &&
		a.HarvestLogs == b.HarvestLogs &&
		a.Observations == b.Observations &&
		a.ScheduledLabors == b.ScheduledLabors &&
		a.Budgets == b.Budgets &&
		a.UnpaidLaborLogs == b.UnpaidLaborLogs
}

func deleteLot(st *state.State, id string) {
	for i := range st.Movements {
		if st.Movements[i].LotRef.Points(id) {
			st.Movements[i].LotRef = st.Movements[i].LotRef.Tombstone()
		}
	}
	for i := range st.LaborLogs {
		if st.LaborLogs[i].LotRef.Points(id) {
			st.LaborLogs[i].LotRef = st.LaborLogs[i].LotRef.Tombstone()
		}
	}
	for i := range st.HarvestLogs {
		if st.HarvestLogs[i].LotRef.Points(id) {
			st.HarvestLogs[i].LotRef = st.HarvestLogs[i].LotRef.Tombstone()
		}
	}
	for i := range st.Observations {
		if st.Observations[i].LotRef.Points(id) {
			st.Observations[i].LotRef = st.Observations[i].LotRef.Tombstone()
		}
	}
	st.ScheduledLabors = dropScheduled(st.ScheduledLabors, func(sl entity.ScheduledLabor) bool {
		return sl.LotRef.Points(id)
	})
	kept := st.Budgets[:0:0]
	for _, b := range st.Budgets {
		if !b.LotRef.Points(id) {
			kept = append(kept, b)
		}
	}
	st.Budgets = kept

	out := st.Lots[:0:0]
	for _, l := range st.Lots {
		if l.ID != id {
			out = append(out, l)
		}
	}
	st.Lots = out
}

func deleteWorker(st *state.State, id string) {
	for i := range st.Movements {
		if st.Movements[i].WorkerRef.Points(id) {
			st.Movements[i].WorkerRef = st.Movements[i].WorkerRef.Tombstone()
		}
	}
	for i := range st.LaborLogs {
		if st.LaborLogs[i].WorkerRef.Points(id) {
			st.LaborLogs[i].WorkerRef = st.LaborLogs[i].WorkerRef.Tombstone()
		}
	}
	st.ScheduledLabors = dropScheduled(st.ScheduledLabors, func(sl entity.ScheduledLabor) bool {
		return sl.WorkerRef.Points(id)
	})

	out := st.Workers[:0:0]
	for _, w := range st.Workers {
		if w.ID != id {
			out = append(out, w)
		}
	}
	st.Workers = out
}

// deleteActivity: referenciada por labores históricas queda obsolescente
// (no reutilizable, historia intacta); sin referencias se elimina físicamente.
func deleteActivity(st *state.State, id string, referenced bool) {
	st.ScheduledLabors = dropScheduled(st.ScheduledLabors, func(sl entity.ScheduledLabor) bool {
		return sl.ActivityRef.Points(id)
	})
	if referenced {
		i := st.FindActivity(id)
		if !st.Activities[i].Obsolete {
			st.Activities[i].Obsolete = true
			st.Activities[i].Name += entity.ObsoleteSuffix
		}
		return
	}
	out := st.Activities[:0:0]
	for _, a := range st.Activities {
		if a.ID != id {
			out = append(out, a)
		}
	}
	st.Activities = out
}

func dropScheduled(in []entity.ScheduledLabor, match func(entity.ScheduledLabor) bool) []entity.ScheduledLabor {
	out := in[:0:0]
	for _, sl := range in {
		if !match(sl) {
			out = append(out, sl)
		}
	}
	return out
}
