package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jfarias/agrolibro-api/internal/domain/unit"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  = "IN"  // entrada (compra)
	MovementTypeOUT = "OUT" // salida (consumo)
)

// Movement es una entrada del libro de movimientos: un solo ingreso o consumo
// de un insumo. El libro es append-only: cantidad, costo y fecha son
// inmutables una vez registrados; solo las referencias de dimensión pueden
// reescribirse a lápida cuando su entidad se elimina.
type Movement struct {
	ID             string          `json:"id"`
	ItemID         string          `json:"item_id"`
	Type           string          `json:"type"` // IN | OUT
	Quantity       decimal.Decimal `json:"quantity"` // tal como la digitó el operador
	Unit           unit.Unit       `json:"unit"`
	UnitPrice      decimal.Decimal `json:"unit_price,omitempty"` // solo IN: precio por Unit
	CalculatedCost decimal.Decimal `json:"calculated_cost"`      // costo atribuido al movimiento
	Date           time.Time       `json:"date"`
	WarehouseID    string          `json:"warehouse_id"`
	Supplier       string          `json:"supplier,omitempty"`
	LotRef         Ref             `json:"lot_ref,omitempty"`    // centro de costo
	WorkerRef      Ref             `json:"worker_ref,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
