package main

import (
	"context"
	"math/rand"
	"os"
	"time"

	"go-sales-dashboard/internal/config"
	"go-sales-dashboard/internal/handler"
	"go-sales-dashboard/internal/repository"
	"go-sales-dashboard/internal/scheduler"
	"go-sales-dashboard/internal/service"
	"go-sales-dashboard/internal/ws"
	"go-sales-dashboard/pkg/database"
	"go-sales-dashboard/pkg/logger"
	"go-sales-dashboard/pkg/metrics"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	serviceName     = "sales-dashboard"
	shutdownTimeout = 10 * time.Second
)

func main() {
	// 1. Load Env
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(serviceName, cfg.App.LogLevel)
	if envErr != nil {
		logger.Warn().Msg(".env file not found, relying on system env")
	}

	// 2. Setup Database
	db, err := database.Open(cfg.Database, serviceName)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	productRepo := repository.NewProductRepo(db)
	txRepo := repository.NewTransactionRepo(db)

	// 3. Schema and demo data
	ctx := context.Background()
	if cfg.Seed.DemoData {
		bootstrap := service.NewBootstrapService(db, productRepo, txRepo, cfg.Dashboard.Location, seedSource(cfg.Seed.RandomSeed))
		seeded, err := bootstrap.InitializeStore(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize store")
		}
		logger.Info().Bool("seeded", seeded).Msg("Store ready")
	} else if err := database.EnsureSchema(db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize schema")
	}

	// 4. Setup WebSocket Hub
	hubCtx, stopHub := context.WithCancel(ctx)
	wsHub := ws.NewHub()
	go wsHub.Run(hubCtx)

	// 5. Dependency Injection
	invService := service.NewInventoryService(productRepo, txRepo, db, wsHub)
	dashService := service.NewDashboardService(productRepo, txRepo, cfg.Dashboard.Location)
	exportService := service.NewExportService(txRepo, cfg.Dashboard.Location)

	invHandler := handler.NewInventoryHandler(invService)
	dashHandler := handler.NewDashboardHandler(dashService)
	exportHandler := handler.NewExportHandler(exportService)
	healthHandler := handler.NewHealthHandler(db)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(logger.FiberMiddleware())
	app.Use(metrics.FiberPrometheusMiddleware(serviceName))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// 7. Routes
	api := app.Group("/api/v1")

	api.Get("/health", healthHandler.Check)

	api.Get("/products", invHandler.GetProducts)
	api.Post("/products", invHandler.CreateProduct)
	api.Get("/products/:id", invHandler.GetProduct)
	api.Patch("/products/:id", invHandler.UpdateProduct)
	api.Delete("/products/:id", invHandler.DeleteProduct)
	api.Post("/products/:id/restock", invHandler.Restock)
	api.Get("/categories", invHandler.GetCategories)

	api.Post("/sales", invHandler.RecordSale)
	api.Get("/transactions", invHandler.GetTransactions)

	api.Get("/dashboard/overview", dashHandler.GetOverview)
	api.Get("/dashboard/daily-sales", dashHandler.GetDailySales)
	api.Get("/dashboard/predictions", dashHandler.GetPredictions)
	api.Get("/dashboard/stock", dashHandler.GetStockOverview)
	api.Get("/dashboard/top-products", dashHandler.GetTopProducts)

	api.Get("/export/transactions.csv", exportHandler.TransactionsCSV)
	api.Get("/export/transactions.xlsx", exportHandler.TransactionsXLSX)

	// WebSocket Route
	api.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	api.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Clients only listen; reading detects disconnects.
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Restock alerts
	var alerts *scheduler.AlertScheduler
	if cfg.Alerts.Schedule != "" {
		alerts = scheduler.NewAlertScheduler(dashService, wsHub)
		if err := alerts.Start(ctx, cfg.Alerts.Schedule); err != nil {
			logger.Fatal().Err(err).Msg("Failed to start restock alert scheduler")
		}
	}

	go func() {
		logger.Info().Str("addr", cfg.App.Address()).Msg("HTTP server listening")
		if err := app.Listen(cfg.App.Address()); err != nil {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// 9. Graceful Shutdown
	wait := gfshutdown.GracefulShutdown(ctx, shutdownTimeout, map[string]gfshutdown.Operation{
		"http": func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
		"scheduler": func(ctx context.Context) error {
			if alerts != nil {
				alerts.Stop()
			}
			return nil
		},
		"ws-hub": func(ctx context.Context) error {
			stopHub()
			return nil
		},
	})

	exitCode := <-wait
	if err := database.Close(db); err != nil {
		logger.Error().Err(err).Msg("Failed to close database")
	}
	logger.Info().Int("exit_code", exitCode).Msg("Server exited")
	os.Exit(exitCode)
}

// seedSource pins demo data to seed, or to the clock when seed is 0.
func seedSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
