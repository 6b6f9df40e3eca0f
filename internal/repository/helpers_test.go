package repository

import (
	"testing"

	"go-sales-dashboard/internal/config"
	"go-sales-dashboard/internal/model"
	"go-sales-dashboard/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"}, "test")
	require.NoError(t, err)
	require.NoError(t, database.EnsureSchema(db))

	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func createProduct(t *testing.T, repo ProductRepository, name, category string, price, cost float64, stock int) *model.Product {
	t.Helper()

	p := &model.Product{Name: name, Category: category, Price: price, Cost: cost, Stock: stock}
	_, err := repo.Create(ctx, p)
	require.NoError(t, err)
	return p
}
