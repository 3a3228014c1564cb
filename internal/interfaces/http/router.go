package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jfarias/agrolibro-api/internal/application/auth"
	"github.com/jfarias/agrolibro-api/internal/application/importer"
	"github.com/jfarias/agrolibro-api/internal/application/keeper"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Keeper    *keeper.Keeper
	Importer  *importer.Importer
	AuthUC    *auth.UseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventario: insumos, movimientos, unidades
	inv := NewInventoryHandler(deps.Keeper)
	inventory := protected.Group("/inventory")
	inventory.Post("/items", inv.RegisterItem)
	inventory.Get("/items", inv.ListItems)
	inventory.Post("/items/:id/retire", inv.RetireItem)
	inventory.Post("/movements", inv.RegisterMovement)
	inventory.Get("/movements", inv.ListMovements)
	inventory.Get("/units", inv.ListUnits)

	// Bodegas y entidades de dimensión
	ent := NewEntitiesHandler(deps.Keeper)
	protected.Post("/warehouses", ent.CreateWarehouse)
	protected.Get("/warehouses", ent.ListWarehouses)
	protected.Post("/lots", ent.CreateLot)
	protected.Get("/lots", ent.ListLots)
	protected.Post("/workers", ent.CreateWorker)
	protected.Get("/workers", ent.ListWorkers)
	protected.Post("/activities", ent.CreateActivity)
	protected.Get("/activities", ent.ListActivities)

	// Eliminación en dos fases: plan + ejecución confirmada
	protected.Post("/:kind/:id/deletion-plan", ent.PlanDeletion)
	protected.Delete("/:kind/:id", ent.ExecuteDeletion)

	// Registros operativos
	rec := NewRecordsHandler(deps.Keeper)
	protected.Post("/labor", rec.RecordLabor)
	protected.Get("/labor", rec.ListLabor)
	protected.Post("/labor/:id/pay", rec.PayLabor)
	protected.Post("/harvests", rec.RecordHarvest)
	protected.Get("/harvests", rec.ListHarvests)
	protected.Post("/observations", rec.RecordObservation)
	protected.Post("/scheduled-labor", rec.ScheduleLabor)
	protected.Post("/budgets", rec.CreateBudget)

	// Importación por lotes (salida del extractor de documentos)
	imp := NewImportHandler(deps.Importer)
	protected.Post("/import/batch", imp.ImportBatch)
}
