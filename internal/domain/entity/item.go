package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jfarias/agrolibro-api/internal/domain/unit"
)

// LastPurchase es la foto de la última compra de un insumo. Se sobrescribe en
// cada entrada: no hay historial por lote de compra, solo promedio móvil.
type LastPurchase struct {
	Price     decimal.Decimal `json:"price"`                // precio por PriceUnit
	PriceUnit unit.Unit       `json:"price_unit,omitempty"` // unidad en que se pactó el precio
	ExpiresAt *time.Time      `json:"expires_at,omitempty"` // vencimiento opcional
}

// Item representa un insumo del inventario de la finca.
// CurrentQuantity se lleva siempre en unidades base (gramos, mililitros o
// unidades); AverageCost es costo promedio ponderado por unidad base.
// Solo el motor de movimientos muta cantidad y costo.
type Item struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category,omitempty"` // fertilizante, fungicida, herramienta...
	WarehouseID     string          `json:"warehouse_id"`
	BaseCategory    unit.Category   `json:"base_category"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	AverageCost     decimal.Decimal `json:"average_cost"`
	LastPurchase    LastPurchase    `json:"last_purchase"`
	Active          bool            `json:"active"` // los ítems no se destruyen, se retiran
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
