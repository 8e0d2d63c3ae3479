package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rizwimohdaltamash/InventorySync/internal/application/analytics"
	"github.com/rizwimohdaltamash/InventorySync/internal/application/auth"
	"github.com/rizwimohdaltamash/InventorySync/internal/application/stock"
	"github.com/rizwimohdaltamash/InventorySync/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	StockEngine MovementEngine
	StockQuery  *stock.MovementQueryUseCase
	DashboardUC *analytics.DashboardUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/me", authHandler.Me)

	// Products (protegido). Las rutas fijas van antes que /:id.
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/dead-stock", productHandler.DeadStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Stock movements (protegido)
	stockHandler := NewStockHandler(deps.StockEngine, deps.StockQuery)
	stockGroup := protected.Group("/stock")
	stockGroup.Post("/in", stockHandler.StockIn)
	stockGroup.Post("/out", stockHandler.StockOut)
	stockGroup.Post("/damage", stockHandler.StockDamage)

	movements := protected.Group("/stock-movements")
	movements.Get("/", stockHandler.ListMovements)
	movements.Get("/product/:id", stockHandler.ListProductMovements)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/stats", dashboardHandler.Stats)
	dashboard.Get("/top-skus", dashboardHandler.TopSKUs)
	dashboard.Get("/trends", dashboardHandler.Trends)
}
