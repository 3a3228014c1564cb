package entity

import "time"

// Warehouse representa una bodega de la finca donde se almacenan insumos.
type Warehouse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
