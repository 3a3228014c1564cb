package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jfarias/agrolibro-api/internal/application/dto"
	"github.com/jfarias/agrolibro-api/internal/application/keeper"
	"github.com/jfarias/agrolibro-api/internal/application/lifecycle"
	"github.com/jfarias/agrolibro-api/internal/domain"
	"github.com/jfarias/agrolibro-api/internal/domain/entity"
)

// EntitiesHandler maneja bodegas y entidades de dimensión (lotes,
// trabajadores, actividades), incluida la eliminación en dos fases.
type EntitiesHandler struct {
	keeper *keeper.Keeper
}

// NewEntitiesHandler construye el handler.
func NewEntitiesHandler(k *keeper.Keeper) *EntitiesHandler {
	return &EntitiesHandler{keeper: k}
}

// CreateWarehouse da de alta una bodega.
func (h *EntitiesHandler) CreateWarehouse(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	wh, err := h.keeper.CreateWarehouse(in.Name, in.Location)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(wh)
}

// ListWarehouses lista las bodegas.
func (h *EntitiesHandler) ListWarehouses(c *fiber.Ctx) error {
	st := h.keeper.Snapshot()
	return c.JSON(fiber.Map{"total": len(st.Warehouses), "warehouses": st.Warehouses})
}

// CreateLot da de alta un lote.
func (h *EntitiesHandler) CreateLot(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lot, err := h.keeper.CreateLot(in.Name, in.Crop, in.AreaHa)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lot)
}

// ListLots lista los lotes.
func (h *EntitiesHandler) ListLots(c *fiber.Ctx) error {
	st := h.keeper.Snapshot()
	return c.JSON(fiber.Map{"total": len(st.Lots), "lots": st.Lots})
}

// CreateWorker da de alta un trabajador.
func (h *EntitiesHandler) CreateWorker(c *fiber.Ctx) error {
	var in dto.CreateWorkerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	w, err := h.keeper.CreateWorker(in.Name, in.Document, in.Phone)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(w)
}

// ListWorkers lista la nómina activa.
func (h *EntitiesHandler) ListWorkers(c *fiber.Ctx) error {
	st := h.keeper.Snapshot()
	return c.JSON(fiber.Map{"total": len(st.Workers), "workers": st.Workers})
}

// CreateActivity da de alta una actividad.
func (h *EntitiesHandler) CreateActivity(c *fiber.Ctx) error {
	var in dto.CreateActivityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	a, err := h.keeper.CreateActivity(in.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

// ListActivities lista el catálogo de actividades.
func (h *EntitiesHandler) ListActivities(c *fiber.Ctx) error {
	st := h.keeper.Snapshot()
	return c.JSON(fiber.Map{"total": len(st.Activities), "activities": st.Activities})
}

// PlanDeletion devuelve el informe de impacto de eliminar la entidad.
// Primera fase: el operador revisa qué se preserva con lápida y qué se borra.
func (h *EntitiesHandler) PlanDeletion(c *fiber.Ctx) error {
	kind, err := parseKind(c.Params("kind"))
	if err != nil {
		return respondError(c, err)
	}
	report, err := h.keeper.PlanDeletion(kind, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// ExecuteDeletion ejecuta un plan confirmado. El cuerpo es el informe tal
// como lo devolvió PlanDeletion; si quedó viejo la operación falla con 409.
func (h *EntitiesHandler) ExecuteDeletion(c *fiber.Ctx) error {
	kind, err := parseKind(c.Params("kind"))
	if err != nil {
		return respondError(c, err)
	}
	var confirmed lifecycle.ImpactReport
	if err := c.BodyParser(&confirmed); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se requiere el plan de eliminación confirmado"})
	}
	if err := h.keeper.ExecuteDeletion(kind, c.Params("id"), confirmed); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "entidad eliminada; la historia queda preservada"})
}

func parseKind(s string) (entity.Kind, error) {
	switch s {
	case "lots":
		return entity.KindLot, nil
	case "workers":
		return entity.KindWorker, nil
	case "activities":
		return entity.KindActivity, nil
	}
	return "", domain.ErrInvalidInput
}
