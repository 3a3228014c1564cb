package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jfarias/agrolibro-api/internal/application/dto"
	"github.com/jfarias/agrolibro-api/internal/application/importer"
)

// ImportHandler recibe lotes de creaciones de entidades (salida del
// extractor de documentos u otra carga masiva).
type ImportHandler struct {
	importer *importer.Importer
}

// NewImportHandler construye el handler.
func NewImportHandler(im *importer.Importer) *ImportHandler {
	return &ImportHandler{importer: im}
}

// ImportBatch aplica las peticiones en secuencia, cada una validada de forma
// independiente; devuelve el desenlace fila por fila.
func (h *ImportHandler) ImportBatch(c *fiber.Ctx) error {
	var entries []importer.Entry
	if err := c.BodyParser(&entries); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se espera un arreglo de peticiones"})
	}
	results := h.importer.Import(entries)
	applied := 0
	for _, r := range results {
		if r.OK {
			applied++
		}
	}
	return c.JSON(fiber.Map{"total": len(results), "applied": applied, "results": results})
}
