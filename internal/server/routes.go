package server

import (
	"github.com/PanuLaosuwan/faststock-backend/internal/admin"
	"github.com/PanuLaosuwan/faststock-backend/internal/audit"
	"github.com/PanuLaosuwan/faststock-backend/internal/auth"
	"github.com/PanuLaosuwan/faststock-backend/internal/config"
	"github.com/PanuLaosuwan/faststock-backend/internal/inventory"
	"github.com/PanuLaosuwan/faststock-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func registerRoutes(app *fiber.App, cfg *config.Config, db *gorm.DB, log *logrus.Logger) {
	st := store.New(db)
	rec := audit.NewRecorder(db, log)
	rep := inventory.NewReporter(st, log)

	api := app.Group("/api")

	// Public
	api.Get("/health", healthHandler(db))
	api.Post("/auth/login", auth.LoginHandler(cfg, st))

	protected := api.Group("", auth.JWTMiddleware(cfg))
	protected.Get("/auth/me", auth.MeHandler(st))

	// Users
	protected.Get("/user", admin.ListUsersHandler(st))
	protected.Post("/user", admin.CreateUserHandler(st))
	protected.Get("/user/:id", admin.GetUserHandler(st))
	protected.Put("/user/:id", admin.ReplaceUserHandler(st))
	protected.Patch("/user/:id", admin.PatchUserHandler(st))
	protected.Delete("/user/:id", admin.DeleteUserHandler(st))

	// Events and their reports. Literal paths go before /event/:id.
	protected.Get("/event", admin.ListEventsHandler(st))
	protected.Post("/event", admin.CreateEventHandler(st))
	protected.Get("/event/inventory/:id", inventory.InventoryHandler(rep))
	protected.Get("/event/stock-summary/:id", inventory.StockSummaryHandler(rep))
	protected.Get("/event/:id", admin.GetEventHandler(st))
	protected.Put("/event/:id", admin.ReplaceEventHandler(st))
	protected.Patch("/event/:id", admin.PatchEventHandler(st))
	protected.Delete("/event/:id", admin.DeleteEventHandler(st))
	protected.Get("/event/:id/inventory", inventory.InventoryHandler(rep))
	protected.Get("/event/:id/stock-summary", inventory.StockSummaryHandler(rep))
	protected.Get("/event/:id/stock-summary/export", inventory.StockSummaryExportHandler(rep))
	protected.Get("/event/:eid/bars", admin.BarsByEventHandler(st))
	protected.Get("/event/:eid/prestock", inventory.PrestockByEventHandler(st))
	protected.Get("/event/:eid/lost", inventory.LostByEventHandler(st))

	// Bars
	protected.Get("/bars", admin.ListBarsHandler(st))
	protected.Post("/bars", admin.CreateBarHandler(st))
	protected.Get("/bars/:id", admin.GetBarHandler(st))
	protected.Put("/bars/:id", admin.ReplaceBarHandler(st))
	protected.Patch("/bars/:id", admin.PatchBarHandler(st))
	protected.Delete("/bars/:id", admin.DeleteBarHandler(st))

	// Products
	protected.Get("/products", admin.ListProductsHandler(st))
	protected.Post("/products", admin.CreateProductHandler(st))
	protected.Get("/products/:id", admin.GetProductHandler(st))
	protected.Put("/products/:id", admin.ReplaceProductHandler(st))
	protected.Patch("/products/:id", admin.PatchProductHandler(st))
	protected.Delete("/products/:id", admin.DeleteProductHandler(st))

	// Stock ledger
	protected.Get("/stock", inventory.ListStockHandler(st))
	protected.Get("/stock/bar/:barId", inventory.StockByBarHandler(st))
	protected.Get("/stock/event/:eid", inventory.StockByEventHandler(st))
	protected.Get("/bars/:barId/stock", inventory.StockByBarHandler(st))
	protected.Post("/bars/:barId/stock-initial", inventory.CreateInitialStockHandler(st, rec))
	protected.Post("/bars/:barId/stock-bulk", inventory.BulkUpsertStockHandler(st, rec))
	protected.Patch("/bars/:barId/stock/:pid/:sdate", inventory.PatchStockHandler(st, rec))
	protected.Delete("/bars/:barId/stock/:pid/:sdate", inventory.DeleteStockHandler(st, rec))

	// Prestock
	protected.Get("/prestock", inventory.ListPrestockHandler(st))
	protected.Post("/prestock", inventory.CreatePrestockHandler(st, rec))
	protected.Patch("/prestock/:eid/:pid", inventory.PatchPrestockHandler(st, rec))
	protected.Delete("/prestock/:eid/:pid", inventory.DeletePrestockHandler(st, rec))
	protected.Get("/prestock/byeid/:eid", inventory.PrestockByEventHandler(st))

	// Lost
	protected.Get("/lost", inventory.ListLostHandler(st))
	protected.Get("/bars/:barId/lost", inventory.LostByBarHandler(st))
	protected.Get("/lost/bybid/:barId", inventory.LostByBarHandler(st))
	protected.Get("/lost/bybcode/:barId", inventory.LostByBarHandler(st))
	protected.Get("/lost/byeid/:eid", inventory.LostByEventHandler(st))
	protected.Post("/bars/:barId/add-lost", inventory.CreateLostHandler(st, rec))
	protected.Patch("/bars/:barId/lost/:pid/:sdate", inventory.PatchLostHandler(st, rec))
	protected.Delete("/bars/:barId/lost/:pid/:sdate", inventory.DeleteLostHandler(st, rec))

	// Audit
	protected.Get("/audit-logs", audit.ListAuditLogsHandler(db))
}

// GET /api/health
func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
