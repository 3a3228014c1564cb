package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jfarias/agrolibro-api/internal/application/dto"
	"github.com/jfarias/agrolibro-api/pkg/jwt"
)

// LocalUser key del usuario operador en Fiber locals.
const LocalUser = "user"

// AuthMiddleware valida el Bearer Token JWT y deja el usuario en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		user, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// GetUser devuelve el usuario operador del contexto (después del middleware).
func GetUser(c *fiber.Ctx) string {
	v := c.Locals(LocalUser)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
