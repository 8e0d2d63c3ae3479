package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appanalytics "github.com/rizwimohdaltamash/InventorySync/internal/application/analytics"
	"github.com/rizwimohdaltamash/InventorySync/internal/application/auth"
	"github.com/rizwimohdaltamash/InventorySync/internal/application/stock"
	"github.com/rizwimohdaltamash/InventorySync/internal/application/usecase"
	"github.com/rizwimohdaltamash/InventorySync/internal/infrastructure/postgres"
	redisinfra "github.com/rizwimohdaltamash/InventorySync/internal/infrastructure/redis"
	httpRouter "github.com/rizwimohdaltamash/InventorySync/internal/interfaces/http"
	"github.com/rizwimohdaltamash/InventorySync/pkg/config"
	"github.com/rizwimohdaltamash/InventorySync/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := runMigrations(cfg.App.MigrationsPath, cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Métricas del motor de movimientos.
	appliedCounter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_movements_applied_total",
		Help: "Movimientos de stock confirmados, por tipo.",
	}, []string{"type"})
	rejectedCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stock_movements_rejected_total",
		Help: "Movimientos rechazados por validación.",
	})
	prometheus.MustRegister(appliedCounter, rejectedCounter)

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de agregados opcional: sin REDIS_ADDR se consulta directo a la DB.
	var cache appanalytics.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err := redisinfra.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, dashboard sin cache")
		} else {
			defer redisCache.Close()
			cache = redisCache
			log.Info().Str("addr", cfg.Redis.Addr).Msg("cache de agregados habilitado")
		}
	}

	applyMovementUC := stock.NewApplyMovementUseCase(txRunner, log, appliedCounter, rejectedCounter)
	movementQueryUC := stock.NewMovementQueryUseCase(movementRepo)
	productUC := usecase.NewProductUseCase(productRepo, analyticsRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(
		analyticsRepo, cache, time.Duration(cfg.Redis.TTLSeconds)*time.Second, log,
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "InventorySync API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		StockEngine: applyMovementUC,
		StockQuery:  movementQueryUC,
		DashboardUC: dashboardUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}

// runMigrations aplica las migraciones pendientes al arrancar.
func runMigrations(path, databaseURL string) error {
	m, err := migrate.New("file://"+path, databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
