package entity

// Sufijos de etiqueta para referencias y entidades retiradas.
const (
	DeletedSuffix    = " (Eliminado)"
	ObsoleteSuffix   = " (Obsolescente)"
)

// Ref es una referencia etiquetada a una entidad de dimensión (lote, trabajador,
// actividad). Reemplaza el centinela de texto "deleted": una referencia viva y
// una lápida se distinguen por tipo, no por colisión de strings.
// El valor cero (ID vacío) significa "sin referencia".
type Ref struct {
	ID      string `json:"id,omitempty"`
	Label   string `json:"label,omitempty"`   // etiqueta cacheada para reportes
	Deleted bool   `json:"deleted,omitempty"` // true si la entidad fue eliminada
}

// NewRef crea una referencia viva.
func NewRef(id, label string) Ref {
	return Ref{ID: id, Label: label}
}

// IsZero indica ausencia de referencia.
func (r Ref) IsZero() bool { return r.ID == "" }

// Active indica si la referencia apunta a una entidad viva.
func (r Ref) Active() bool { return r.ID != "" && !r.Deleted }

// Points indica si la referencia apunta a la entidad dada (viva o no).
func (r Ref) Points(id string) bool { return r.ID == id }

// Tombstone devuelve la referencia marcada como eliminada, con la etiqueta
// sufijada para que los reportes históricos sigan siendo legibles.
func (r Ref) Tombstone() Ref {
	if r.IsZero() || r.Deleted {
		return r
	}
	return Ref{ID: r.ID, Label: r.Label + DeletedSuffix, Deleted: true}
}
