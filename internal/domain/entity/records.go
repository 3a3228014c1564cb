package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LaborLog registra una labor ejecutada: quién la hizo, en qué lote, qué
// actividad y cuánto se pagó. Es un registro financiero histórico: sus
// referencias se preservan con lápida cuando la entidad apuntada se elimina.
type LaborLog struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	WorkerRef   Ref             `json:"worker_ref"`
	LotRef      Ref             `json:"lot_ref,omitempty"`
	ActivityRef Ref             `json:"activity_ref"`
	Days        decimal.Decimal `json:"days"`  // jornales
	Wage        decimal.Decimal `json:"wage"`  // valor del jornal
	Total       decimal.Decimal `json:"total"` // Days * Wage
	Paid        bool            `json:"paid"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// HarvestLog registra una cosecha o venta de producto de un lote.
type HarvestLog struct {
	ID        string          `json:"id"`
	Date      time.Time       `json:"date"`
	LotRef    Ref             `json:"lot_ref"`
	Product   string          `json:"product,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	Value     decimal.Decimal `json:"value"` // ingreso total de la cosecha/venta
	Buyer     string          `json:"buyer,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Tipos de observación de campo.
const (
	ObservationPhenology = "fenologia"
	ObservationPest      = "plaga"
	ObservationSoil      = "suelo"
)

// Observation es un registro secundario de campo (fenología, plaga o suelo)
// asociado a un lote. No es financiero, pero su historia también se preserva.
type Observation struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Type      string    `json:"type"` // fenologia | plaga | suelo
	LotRef    Ref       `json:"lot_ref"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// ScheduledLabor es una labor planificada a futuro. Codifica intención:
// si el lote, trabajador o actividad referenciada se elimina, el plan deja
// de ser ejecutable y se borra en cascada.
type ScheduledLabor struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	WorkerRef   Ref       `json:"worker_ref,omitempty"`
	LotRef      Ref       `json:"lot_ref,omitempty"`
	ActivityRef Ref       `json:"activity_ref"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Budget es un presupuesto proyectado para un lote. Registro prospectivo:
// se borra en cascada con su lote.
type Budget struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	LotRef    Ref             `json:"lot_ref"`
	Year      int             `json:"year"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}
