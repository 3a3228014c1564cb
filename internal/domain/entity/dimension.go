package entity

import "time"

// Kind identifica cada clase de entidad de dimensión para el ciclo de vida
// (planes de eliminación, lápidas).
type Kind string

const (
	KindLot      Kind = "lot"
	KindWorker   Kind = "worker"
	KindActivity Kind = "activity"
)

// Lot es un lote de cultivo que opera como centro de costo: movimientos,
// labores y cosechas se cargan contra él.
type Lot struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Crop      string    `json:"crop,omitempty"`    // cultivo sembrado
	AreaHa    float64   `json:"area_ha,omitempty"` // hectáreas
	CreatedAt time.Time `json:"created_at"`
}

// Worker es un trabajador de la nómina activa de la finca.
type Worker struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document,omitempty"` // cédula
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Activity es un tipo de labor del catálogo (siembra, fertilización...).
// Una actividad referenciada por labores históricas no se borra: queda
// marcada obsoleta para impedir su reutilización sin perder la historia.
type Activity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Obsolete  bool      `json:"obsolete,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
