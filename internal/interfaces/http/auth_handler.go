package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jfarias/agrolibro-api/internal/application/auth"
	"github.com/jfarias/agrolibro-api/internal/application/dto"
)

// AuthHandler maneja el login del operador.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login verifica credenciales y devuelve un JWT.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	token, err := h.uc.Login(in.User, in.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.LoginResponse{Token: token})
}
