package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jfarias/agrolibro-api/internal/application/auth"
	"github.com/jfarias/agrolibro-api/internal/application/importer"
	"github.com/jfarias/agrolibro-api/internal/application/keeper"
	"github.com/jfarias/agrolibro-api/internal/application/migrate"
	"github.com/jfarias/agrolibro-api/internal/application/ports"
	"github.com/jfarias/agrolibro-api/internal/domain"
	"github.com/jfarias/agrolibro-api/internal/domain/state"
	"github.com/jfarias/agrolibro-api/internal/infrastructure/jsonstore"
	"github.com/jfarias/agrolibro-api/internal/infrastructure/postgres"
	httprouter "github.com/jfarias/agrolibro-api/internal/interfaces/http"
	"github.com/jfarias/agrolibro-api/pkg/config"
	"github.com/jfarias/agrolibro-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var store ports.StateStore
	switch cfg.Store.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		store, err = postgres.NewStore(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("preparar almacén en PostgreSQL")
		}
	default:
		store = jsonstore.New(cfg.Store.Path)
	}

	// Cargar el documento de estado; si nunca se ha guardado, arrancar vacío.
	st, err := store.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Fatal().Err(err).Msg("cargar documento de estado")
		}
		st = state.New()
		log.Info().Msg("sin documento previo: se inicia un estado vacío")
	}

	// Migración tolerante: los campos ausentes se rellenan, nunca se rechazan.
	applied := migrate.Run(st)
	log.Info().Strs("pasos", applied).Msg("migración de carga aplicada")

	kp := keeper.New(st, store, log)
	im := importer.New(kp, log)
	authUC := auth.New(auth.Config{
		User:         cfg.Operator.User,
		PasswordHash: cfg.Operator.PasswordHash,
		JWTSecret:    cfg.JWT.Secret,
		JWTIssuer:    cfg.JWT.Issuer,
		ExpMinutes:   cfg.JWT.Expiration,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httprouter.Router(app, httprouter.RouterDeps{
		Keeper:    kp,
		Importer:  im,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Guardado final síncrono: no perder el trabajo de la sesión.
	saveCtx, cancelSave := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelSave()
	if err := store.Save(saveCtx, kp.Snapshot()); err != nil {
		log.Error().Err(err).Msg("guardado final del documento de estado")
	}

	log.Info().Msg("aplicación detenida")
}
