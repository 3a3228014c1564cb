package importer

import (
	"fmt"

	"github.com/jfarias/agrolibro-api/internal/application/keeper"
	"github.com/jfarias/agrolibro-api/internal/application/ledger"
	"github.com/jfarias/agrolibro-api/internal/domain"
	"github.com/jfarias/agrolibro-api/internal/domain/unit"
	"github.com/jfarias/agrolibro-api/pkg/logger"
)

// Importador por lotes: el extractor de documentos (colaborador externo)
// propone una secuencia de creaciones de entidades. Cada petición se valida
// y aplica de forma independiente y secuencial; una fila mala no tumba el
// lote. No hay todo-o-nada: el resultado reporta fila por fila.

// Clases de entidad aceptadas por el importador.
const (
	EntryWarehouse = "warehouse"
	EntryLot       = "lot"
	EntryWorker    = "worker"
	EntryActivity  = "activity"
	EntryItem      = "item"
)

// Entry es una petición de creación propuesta por el importador.
type Entry struct {
	Kind string `json:"kind"`
	Name string `json:"name"`

	// Campos opcionales según Kind.
	Crop        string  `json:"crop,omitempty"`
	AreaHa      float64 `json:"area_ha,omitempty"`
	Document    string  `json:"document,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Location    string  `json:"location,omitempty"`
	Category    string  `json:"category,omitempty"`
	WarehouseID string  `json:"warehouse_id,omitempty"`
	Unit        string  `json:"unit,omitempty"`
}

// Result es el desenlace de una petición del lote.
type Result struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	OK    bool   `json:"ok"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

// Importer aplica lotes de creaciones contra el keeper.
type Importer struct {
	keeper *keeper.Keeper
	log    *logger.Logger
}

// New construye el importador.
func New(k *keeper.Keeper, log *logger.Logger) *Importer {
	return &Importer{keeper: k, log: log}
}

// Import aplica las peticiones en orden y devuelve un resultado por fila.
func (im *Importer) Import(entries []Entry) []Result {
	results := make([]Result, 0, len(entries))
	for i, e := range entries {
		r := Result{Index: i, Kind: e.Kind}
		id, err := im.apply(e)
		if err != nil {
			r.Error = err.Error()
		} else {
			r.OK = true
			r.ID = id
		}
		results = append(results, r)
	}
	ok := 0
	for _, r := range results {
		if r.OK {
			ok++
		}
	}
	im.log.Info().Int("total", len(entries)).Int("aplicadas", ok).Msg("importación por lotes finalizada")
	return results
}

func (im *Importer) apply(e Entry) (string, error) {
	switch e.Kind {
	case EntryWarehouse:
		wh, err := im.keeper.CreateWarehouse(e.Name, e.Location)
		if err != nil {
			return "", err
		}
		return wh.ID, nil
	case EntryLot:
		lot, err := im.keeper.CreateLot(e.Name, e.Crop, e.AreaHa)
		if err != nil {
			return "", err
		}
		return lot.ID, nil
	case EntryWorker:
		w, err := im.keeper.CreateWorker(e.Name, e.Document, e.Phone)
		if err != nil {
			return "", err
		}
		return w.ID, nil
	case EntryActivity:
		a, err := im.keeper.CreateActivity(e.Name)
		if err != nil {
			return "", err
		}
		return a.ID, nil
	case EntryItem:
		item, err := im.keeper.RegisterItem(ledger.ItemInput{
			Name:        e.Name,
			Category:    e.Category,
			WarehouseID: e.WarehouseID,
			Unit:        unit.Unit(e.Unit),
		})
		if err != nil {
			return "", err
		}
		return item.ID, nil
	}
	return "", fmt.Errorf("%w: clase de entidad %q", domain.ErrInvalidInput, e.Kind)
}
