package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env
// y opcionalmente archivo .env).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Store    StoreConfig
	DB       DBConfig
	JWT      JWTConfig
	Operator OperatorConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig selecciona el almacén del documento de estado.
type StoreConfig struct {
	Driver string // json | postgres
	Path   string // ruta del archivo para el driver json
}

// DBConfig configuración de PostgreSQL (driver postgres).
// Si DatabaseURL no está vacío se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DatabaseURL si está definido, si no el construido.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN construye el connection string con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// OperatorConfig credenciales del operador de la finca (un solo usuario).
// PasswordHash es un hash bcrypt; se provisiona por variable de entorno.
type OperatorConfig struct {
	User         string
	PasswordHash string
}

// Load lee la configuración desde variables de entorno (y opcionalmente .env).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT,
// STORE_DRIVER, STORE_PATH, DB_HOST, JWT_SECRET, OPERATOR_USER, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "agrolibro"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Store: StoreConfig{
			Driver: getString(v, "STORE_DRIVER", "json"),
			Path:   getString(v, "STORE_PATH", "agrolibro-estado.json"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "agrolibro"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "agrolibro"),
		},
		Operator: OperatorConfig{
			User:         getString(v, "OPERATOR_USER", "operador"),
			PasswordHash: getString(v, "OPERATOR_PASSWORD_HASH", ""),
		},
	}

	if cfg.Store.Driver != "json" && cfg.Store.Driver != "postgres" {
		return nil, fmt.Errorf("STORE_DRIVER desconocido: %q", cfg.Store.Driver)
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		return v.GetInt(key)
	}
	return def
}
