package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jfarias/agrolibro-api/internal/domain"
	"github.com/jfarias/agrolibro-api/internal/domain/costing"
	"github.com/jfarias/agrolibro-api/internal/domain/entity"
	"github.com/jfarias/agrolibro-api/internal/domain/state"
	"github.com/jfarias/agrolibro-api/internal/domain/unit"
)

// Motor del libro de movimientos: transiciones puras sobre el documento de
// estado. Cada función toma el estado actual y devuelve uno nuevo sin tocar
// el recibido; el llamador (keeper) confirma o descarta de forma atómica.

// MovementInput es la entrada para registrar un movimiento tal como la digita
// el operador: cantidad + unidad, y precio unitario para entradas.
type MovementInput struct {
	ItemID    string
	Type      string // IN | OUT
	Quantity  decimal.Decimal
	Unit      unit.Unit
	UnitPrice decimal.Decimal // obligatorio en IN: precio por Unit
	Date      time.Time
	Supplier  string
	LotID     string // opcional: centro de costo
	WorkerID  string // opcional
	ExpiresAt *time.Time
}

// ItemInput es la entrada para registrar un insumo nuevo.
type ItemInput struct {
	Name        string
	Category    string
	WarehouseID string
	Unit        unit.Unit // define la categoría base del ítem
}

// ProcessMovement aplica un movimiento al estado y devuelve el estado nuevo,
// el movimiento registrado (con su costo calculado) y error.
//
// IN: recalcula el promedio ponderado, suma la cantidad base y sobrescribe la
// foto de última compra. OUT: costea al promedio vigente (que no cambia) y
// descuenta la cantidad base. Un ítem inexistente falla con ErrNotFound; un
// consumo mayor al stock, con ErrInsufficientStock.
func ProcessMovement(st *state.State, in MovementInput) (*state.State, *entity.Movement, error) {
	if err := validateMovement(in); err != nil {
		return nil, nil, err
	}

	idx := st.FindItem(in.ItemID)
	if idx < 0 {
		return nil, nil, fmt.Errorf("%w: ítem %s", domain.ErrNotFound, in.ItemID)
	}

	lotRef, err := resolveLot(st, in.LotID)
	if err != nil {
		return nil, nil, err
	}
	workerRef, err := resolveWorker(st, in.WorkerID)
	if err != nil {
		return nil, nil, err
	}

	next := st.Clone()
	item := &next.Items[idx]

	now := time.Now()
	mov := entity.Movement{
		ID:          uuid.New().String(),
		ItemID:      in.ItemID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Unit:        in.Unit,
		Date:        in.Date,
		WarehouseID: item.WarehouseID,
		Supplier:    in.Supplier,
		LotRef:      lotRef,
		WorkerRef:   workerRef,
		CreatedAt:   now,
	}

	switch in.Type {
	case entity.MovementTypeIN:
		inflow := costing.WeightedAverageCost(item.CurrentQuantity, item.AverageCost, in.Quantity, in.Unit, in.UnitPrice)
		item.CurrentQuantity = item.CurrentQuantity.Add(inflow.BaseQuantity)
		item.AverageCost = inflow.NewAverage
		// Foto de última compra: se sobrescribe siempre, no hay historial por lote.
		item.LastPurchase = entity.LastPurchase{Price: in.UnitPrice, PriceUnit: in.Unit, ExpiresAt: in.ExpiresAt}
		mov.UnitPrice = in.UnitPrice
		mov.CalculatedCost = inflow.Value

	case entity.MovementTypeOUT:
		baseQty := unit.ToBase(in.Quantity, in.Unit)
		if item.CurrentQuantity.LessThan(baseQty) {
			return nil, nil, fmt.Errorf("%w: disponible %s, solicitado %s",
				domain.ErrInsufficientStock, item.CurrentQuantity.String(), baseQty.String())
		}
		// El consumo se costea al promedio vigente; solo las entradas mueven el promedio.
		mov.CalculatedCost = baseQty.Mul(costing.EffectiveCost(*item))
		item.CurrentQuantity = item.CurrentQuantity.Sub(baseQty)
	}

	item.UpdatedAt = now
	next.Movements = append(next.Movements, mov)
	return next, &mov, nil
}

// RegisterItem crea un insumo nuevo con cantidad y costo promedio en cero.
func RegisterItem(st *state.State, in ItemInput) (*state.State, *entity.Item, error) {
	if in.Name == "" {
		return nil, nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	if !in.Unit.Valid() {
		return nil, nil, fmt.Errorf("%w: unidad desconocida %q", domain.ErrInvalidInput, in.Unit)
	}
	if st.FindWarehouse(in.WarehouseID) < 0 {
		return nil, nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, in.WarehouseID)
	}

	now := time.Now()
	item := entity.Item{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Category:        in.Category,
		WarehouseID:     in.WarehouseID,
		BaseCategory:    in.Unit.BaseCategory(),
		CurrentQuantity: decimal.Zero,
		AverageCost:     decimal.Zero,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	next := st.Clone()
	next.Items = append(next.Items, item)
	return next, &item, nil
}

// RetireItem marca un ítem como retirado del uso activo. Los ítems nunca se
// destruyen: su historia de movimientos debe seguir siendo reproducible.
func RetireItem(st *state.State, itemID string) (*state.State, error) {
	idx := st.FindItem(itemID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: ítem %s", domain.ErrNotFound, itemID)
	}
	next := st.Clone()
	next.Items[idx].Active = false
	next.Items[idx].UpdatedAt = time.Now()
	return next, nil
}

// Replay reconstruye (cantidad, costo promedio) de un ítem aplicando toda su
// historia de movimientos desde (0, 0). Por determinismo del libro, el
// resultado debe coincidir exactamente con la aplicación incremental.
func Replay(movements []entity.Movement, itemID string) (qty, avg decimal.Decimal) {
	qty, avg = decimal.Zero, decimal.Zero
	for _, m := range movements {
		if m.ItemID != itemID {
			continue
		}
		switch m.Type {
		case entity.MovementTypeIN:
			inflow := costing.WeightedAverageCost(qty, avg, m.Quantity, m.Unit, m.UnitPrice)
			qty = qty.Add(inflow.BaseQuantity)
			avg = inflow.NewAverage
		case entity.MovementTypeOUT:
			qty = qty.Sub(unit.ToBase(m.Quantity, m.Unit))
		}
	}
	return qty, avg
}

func validateMovement(in MovementInput) error {
	if in.Type != entity.MovementTypeIN && in.Type != entity.MovementTypeOUT {
		return fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, in.Type)
	}
	if !in.Unit.Valid() {
		return fmt.Errorf("%w: unidad desconocida %q", domain.ErrInvalidInput, in.Unit)
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	if in.Type == entity.MovementTypeIN && in.UnitPrice.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: precio unitario negativo", domain.ErrInvalidInput)
	}
	return nil
}

func resolveLot(st *state.State, lotID string) (entity.Ref, error) {
	if lotID == "" {
		return entity.Ref{}, nil
	}
	idx := st.FindLot(lotID)
	if idx < 0 {
		return entity.Ref{}, fmt.Errorf("%w: lote %s", domain.ErrNotFound, lotID)
	}
	return entity.NewRef(lotID, st.Lots[idx].Name), nil
}

func resolveWorker(st *state.State, workerID string) (entity.Ref, error) {
	if workerID == "" {
		return entity.Ref{}, nil
	}
	idx := st.FindWorker(workerID)
	if idx < 0 {
		return entity.Ref{}, fmt.Errorf("%w: trabajador %s", domain.ErrNotFound, workerID)
	}
	return entity.NewRef(workerID, st.Workers[idx].Name), nil
}
