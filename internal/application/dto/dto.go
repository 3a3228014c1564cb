package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ErrorResponse respuesta de error uniforme de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LoginRequest credenciales del operador.
type LoginRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

// LoginResponse token emitido.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterItemRequest alta de un insumo.
type RegisterItemRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	WarehouseID string `json:"warehouse_id"`
	Unit        string `json:"unit"` // define la categoría base
}

// RegisterMovementRequest registro de un movimiento de inventario.
type RegisterMovementRequest struct {
	ItemID    string          `json:"item_id"`
	Type      string          `json:"type"` // IN | OUT
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"` // solo IN
	Date      time.Time       `json:"date"`
	Supplier  string          `json:"supplier,omitempty"`
	LotID     string          `json:"lot_id,omitempty"`
	WorkerID  string          `json:"worker_id,omitempty"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
}

// CreateWarehouseRequest alta de bodega.
type CreateWarehouseRequest struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// CreateLotRequest alta de lote/centro de costo.
type CreateLotRequest struct {
	Name   string  `json:"name"`
	Crop   string  `json:"crop,omitempty"`
	AreaHa float64 `json:"area_ha,omitempty"`
}

// CreateWorkerRequest alta de trabajador.
type CreateWorkerRequest struct {
	Name     string `json:"name"`
	Document string `json:"document,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// CreateActivityRequest alta de actividad.
type CreateActivityRequest struct {
	Name string `json:"name"`
}

// RecordLaborRequest registro de labor ejecutada.
type RecordLaborRequest struct {
	Date       time.Time       `json:"date"`
	WorkerID   string          `json:"worker_id"`
	LotID      string          `json:"lot_id,omitempty"`
	ActivityID string          `json:"activity_id"`
	Days       decimal.Decimal `json:"days"`
	Wage       decimal.Decimal `json:"wage"`
	Paid       bool            `json:"paid"`
	Notes      string          `json:"notes,omitempty"`
}

// RecordHarvestRequest registro de cosecha/venta.
type RecordHarvestRequest struct {
	Date     time.Time       `json:"date"`
	LotID    string          `json:"lot_id"`
	Product  string          `json:"product,omitempty"`
	Quantity decimal.Decimal `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
	Buyer    string          `json:"buyer,omitempty"`
}

// RecordObservationRequest registro de observación de campo.
type RecordObservationRequest struct {
	Date   time.Time `json:"date"`
	Type   string    `json:"type"` // fenologia | plaga | suelo
	LotID  string    `json:"lot_id"`
	Detail string    `json:"detail"`
}

// ScheduleLaborRequest programación de labor futura.
type ScheduleLaborRequest struct {
	Date       time.Time `json:"date"`
	WorkerID   string    `json:"worker_id,omitempty"`
	LotID      string    `json:"lot_id,omitempty"`
	ActivityID string    `json:"activity_id"`
	Notes      string    `json:"notes,omitempty"`
}

// CreateBudgetRequest alta de presupuesto de lote.
type CreateBudgetRequest struct {
	Name   string          `json:"name"`
	LotID  string          `json:"lot_id"`
	Year   int             `json:"year"`
	Amount decimal.Decimal `json:"amount"`
}
