package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jfarias/agrolibro-api/internal/domain"
	"github.com/jfarias/agrolibro-api/pkg/jwt"
)

// Caso de uso de autenticación del operador. La finca tiene un solo usuario
// mutador; sus credenciales se provisionan por configuración (hash bcrypt),
// no hay tabla de usuarios.

// Config credenciales y parámetros de token.
type Config struct {
	User         string
	PasswordHash string // bcrypt
	JWTSecret    string
	JWTIssuer    string
	ExpMinutes   int
}

// UseCase valida credenciales y emite tokens.
type UseCase struct {
	cfg Config
}

// New construye el caso de uso de auth.
func New(cfg Config) *UseCase {
	return &UseCase{cfg: cfg}
}

// Login verifica usuario/clave contra la configuración y genera un JWT.
func (uc *UseCase) Login(user, password string) (string, error) {
	if user != uc.cfg.User || uc.cfg.PasswordHash == "" {
		return "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.cfg.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}
	return jwt.Generate(uc.cfg.JWTSecret, user, uc.cfg.JWTIssuer, uc.cfg.ExpMinutes)
}
