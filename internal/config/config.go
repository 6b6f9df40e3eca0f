package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds every setting the dashboard reads from the environment.
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Dashboard DashboardConfig
	Seed      SeedConfig
	Alerts    AlertConfig
}

type AppConfig struct {
	Name     string
	Port     string
	LogLevel string
}

// DatabaseConfig selects the store. sqlite (a single local file) is the default;
// postgres is used when DB_DRIVER=postgres and DATABASE_URL is set.
type DatabaseConfig struct {
	Driver string
	Path   string
	URL    string
	Debug  bool
}

// DashboardConfig controls how calendar days are cut for daily and "today" figures.
type DashboardConfig struct {
	Location *time.Location
}

type SeedConfig struct {
	DemoData   bool
	RandomSeed int64 // 0 means seed from the clock
}

type AlertConfig struct {
	Schedule string // cron spec, empty disables the job
}

func Load() (*Config, error) {
	debug, err := strconv.ParseBool(getEnv("DB_DEBUG", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_DEBUG value: %w", err)
	}

	seedDemo, err := strconv.ParseBool(getEnv("SEED_DEMO_DATA", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_DEMO_DATA value: %w", err)
	}

	randomSeed, err := strconv.ParseInt(getEnv("SEED_RANDOM_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_RANDOM_SEED value: %w", err)
	}

	loc, err := loadLocation(getEnv("DASHBOARD_TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_TIMEZONE value: %w", err)
	}

	driver := strings.ToLower(getEnv("DB_DRIVER", DriverSQLite))
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("invalid DB_DRIVER value %q: expected %s or %s", driver, DriverSQLite, DriverPostgres)
	}

	cfg := &Config{
		App: AppConfig{
			Name:     getEnv("APP_NAME", "Sales Dashboard"),
			Port:     getEnv("PORT", "3000"),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Driver: driver,
			Path:   getEnv("DB_PATH", "inventory.db"),
			URL:    os.Getenv("DATABASE_URL"),
			Debug:  debug,
		},
		Dashboard: DashboardConfig{
			Location: loc,
		},
		Seed: SeedConfig{
			DemoData:   seedDemo,
			RandomSeed: randomSeed,
		},
		Alerts: AlertConfig{
			Schedule: os.Getenv("ALERT_SCHEDULE"),
		},
	}

	if cfg.Database.Driver == DriverPostgres && cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when DB_DRIVER=%s", DriverPostgres)
	}

	return cfg, nil
}

// Address returns the listen address for fiber.
func (c *AppConfig) Address() string {
	return ":" + c.Port
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
