package database

import (
	"fmt"

	"go-sales-dashboard/internal/model"
	"go-sales-dashboard/pkg/logger"

	"gorm.io/gorm"
)

// EnsureSchema creates the products and transactions tables when they are missing.
// Existing tables are left exactly as they are, so an older data file keeps working.
// Calling it again is a no-op.
func EnsureSchema(db *gorm.DB) error {
	m := db.Migrator()

	// products first: transactions references it.
	tables := []struct {
		name  string
		model interface{}
	}{
		{"products", &model.Product{}},
		{"transactions", &model.Transaction{}},
	}

	for _, t := range tables {
		if m.HasTable(t.model) {
			continue
		}
		if err := m.CreateTable(t.model); err != nil {
			return fmt.Errorf("failed to create %s table: %w", t.name, err)
		}
		logger.Info().Str("table", t.name).Msg("Created table")
	}

	return nil
}
