package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jfarias/agrolibro-api/internal/application/dto"
	"github.com/jfarias/agrolibro-api/internal/application/keeper"
	"github.com/jfarias/agrolibro-api/internal/application/lifecycle"
)

// RecordsHandler maneja los registros operativos: labores, cosechas,
// observaciones de campo, labores programadas y presupuestos.
type RecordsHandler struct {
	keeper *keeper.Keeper
}

// NewRecordsHandler construye el handler.
func NewRecordsHandler(k *keeper.Keeper) *RecordsHandler {
	return &RecordsHandler{keeper: k}
}

// RecordLabor registra una labor ejecutada.
func (h *RecordsHandler) RecordLabor(c *fiber.Ctx) error {
	var in dto.RecordLaborRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	log, err := h.keeper.RecordLabor(lifecycle.LaborInput{
		Date:       in.Date,
		WorkerID:   in.WorkerID,
		LotID:      in.LotID,
		ActivityID: in.ActivityID,
		Days:       in.Days,
		Wage:       in.Wage,
		Paid:       in.Paid,
		Notes:      in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(log)
}

// ListLabor lista las labores ejecutadas.
func (h *RecordsHandler) ListLabor(c *fiber.Ctx) error {
	st := h.keeper.Snapshot()
	return c.JSON(fiber.Map{"total": len(st.LaborLogs), "labor_logs": st.LaborLogs})
}

// PayLabor marca una labor como pagada (libera la deuda que bloquea la
// eliminación del trabajador).
func (h *RecordsHandler) PayLabor(c *fiber.Ctx) error {
	if err := h.keeper.PayLabor(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "labor pagada"})
}

// RecordHarvest registra una cosecha o venta.
func (h *RecordsHandler) RecordHarvest(c *fiber.Ctx) error {
	var in dto.RecordHarvestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	hv, err := h.keeper.RecordHarvest(lifecycle.HarvestInput{
		Date:     in.Date,
		LotID:    in.LotID,
		Product:  in.Product,
		Quantity: in.Quantity,
		Value:    in.Value,
		Buyer:    in.Buyer,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(hv)
}

// ListHarvests lista cosechas/ventas.
func (h *RecordsHandler) ListHarvests(c *fiber.Ctx) error {
	st := h.keeper.Snapshot()
	return c.JSON(fiber.Map{"total": len(st.HarvestLogs), "harvest_logs": st.HarvestLogs})
}

// RecordObservation registra una observación de campo.
func (h *RecordsHandler) RecordObservation(c *fiber.Ctx) error {
	var in dto.RecordObservationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	o, err := h.keeper.RecordObservation(in.Date, in.Type, in.LotID, in.Detail)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

// ScheduleLabor programa una labor futura.
func (h *RecordsHandler) ScheduleLabor(c *fiber.Ctx) error {
	var in dto.ScheduleLaborRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sl, err := h.keeper.ScheduleLabor(lifecycle.ScheduleInput{
		Date:       in.Date,
		WorkerID:   in.WorkerID,
		LotID:      in.LotID,
		ActivityID: in.ActivityID,
		Notes:      in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sl)
}

// CreateBudget registra un presupuesto de lote.
func (h *RecordsHandler) CreateBudget(c *fiber.Ctx) error {
	var in dto.CreateBudgetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	b, err := h.keeper.CreateBudget(in.Name, in.LotID, in.Year, in.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(b)
}
