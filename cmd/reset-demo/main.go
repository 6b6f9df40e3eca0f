package main

import (
	"context"
	"math/rand"
	"time"

	"go-sales-dashboard/internal/config"
	"go-sales-dashboard/internal/repository"
	"go-sales-dashboard/internal/service"
	"go-sales-dashboard/pkg/database"
	"go-sales-dashboard/pkg/logger"

	"github.com/joho/godotenv"
)

// reset-demo wipes every product and transaction and seeds the demo data again.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init("reset-demo", cfg.App.LogLevel)
	if envErr != nil {
		logger.Warn().Msg(".env file not found, relying on system env")
	}

	db, err := database.Open(cfg.Database, "reset-demo")
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	seed := cfg.Seed.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	bootstrap := service.NewBootstrapService(
		db,
		repository.NewProductRepo(db),
		repository.NewTransactionRepo(db),
		cfg.Dashboard.Location,
		rand.New(rand.NewSource(seed)),
	)

	result, err := bootstrap.ResetDemoData(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to reset demo data")
	}

	logger.Info().
		Int("products", result.Products).
		Int("transactions", result.Transactions).
		Int64("seed", seed).
		Msg("Demo data reset")
}
