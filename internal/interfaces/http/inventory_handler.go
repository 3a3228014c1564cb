package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jfarias/agrolibro-api/internal/application/dto"
	"github.com/jfarias/agrolibro-api/internal/application/keeper"
	"github.com/jfarias/agrolibro-api/internal/application/ledger"
	"github.com/jfarias/agrolibro-api/internal/domain/unit"
)

// InventoryHandler maneja insumos y movimientos de inventario (protegido).
type InventoryHandler struct {
	keeper *keeper.Keeper
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(k *keeper.Keeper) *InventoryHandler {
	return &InventoryHandler{keeper: k}
}

// RegisterItem da de alta un insumo.
func (h *InventoryHandler) RegisterItem(c *fiber.Ctx) error {
	var in dto.RegisterItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.keeper.RegisterItem(ledger.ItemInput{
		Name:        in.Name,
		Category:    in.Category,
		WarehouseID: in.WarehouseID,
		Unit:        unit.Unit(in.Unit),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// ListItems devuelve los insumos con sus campos calculados
// (current_quantity, average_cost); los consumidores no reproducen el libro.
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	st := h.keeper.Snapshot()
	return c.JSON(fiber.Map{"total": len(st.Items), "items": st.Items})
}

// RetireItem retira un insumo del uso activo (los ítems no se destruyen).
func (h *InventoryHandler) RetireItem(c *fiber.Ctx) error {
	if err := h.keeper.RetireItem(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "ítem retirado"})
}

// RegisterMovement registra un movimiento IN/OUT.
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.keeper.RegisterMovement(ledger.MovementInput{
		ItemID:    in.ItemID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Unit:      unit.Unit(in.Unit),
		UnitPrice: in.UnitPrice,
		Date:      in.Date,
		Supplier:  in.Supplier,
		LotID:     in.LotID,
		WorkerID:  in.WorkerID,
		ExpiresAt: in.ExpiresAt,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mov)
}

// ListMovements devuelve el libro de movimientos, opcionalmente por ítem.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	st := h.keeper.Snapshot()
	itemID := c.Query("item_id")
	if itemID == "" {
		return c.JSON(fiber.Map{"total": len(st.Movements), "movements": st.Movements})
	}
	out := st.Movements[:0:0]
	for _, m := range st.Movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// ListUnits devuelve el catálogo fijo de unidades con categoría y factor.
func (h *InventoryHandler) ListUnits(c *fiber.Ctx) error {
	type unitInfo struct {
		Unit     unit.Unit     `json:"unit"`
		Category unit.Category `json:"category"`
		Factor   string        `json:"factor"`
	}
	units := make([]unitInfo, 0, len(unit.All()))
	for _, u := range unit.All() {
		units = append(units, unitInfo{Unit: u, Category: u.BaseCategory(), Factor: u.Factor().String()})
	}
	return c.JSON(units)
}
