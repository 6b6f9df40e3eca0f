package service

import (
	"context"
	"testing"
	"time"

	"go-sales-dashboard/internal/config"
	"go-sales-dashboard/internal/model"
	"go-sales-dashboard/internal/repository"
	"go-sales-dashboard/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var ctx = context.Background()

type testStore struct {
	db       *gorm.DB
	products repository.ProductRepository
	txns     repository.TransactionRepository
}

func setupTestStore(t *testing.T) *testStore {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"}, "test")
	require.NoError(t, err)
	require.NoError(t, database.EnsureSchema(db))
	t.Cleanup(func() { _ = database.Close(db) })

	return &testStore{
		db:       db,
		products: repository.NewProductRepo(db),
		txns:     repository.NewTransactionRepo(db),
	}
}

func (s *testStore) addProduct(t *testing.T, name string, price, cost float64, stock int) *model.Product {
	t.Helper()

	p := &model.Product{Name: name, Category: "Accessories", Price: price, Cost: cost, Stock: stock}
	_, err := s.products.Create(ctx, p)
	require.NoError(t, err)
	return p
}

func (s *testStore) addSale(t *testing.T, productID uint, quantity int, total float64, at time.Time) {
	t.Helper()

	_, err := s.txns.Create(ctx, &model.Transaction{
		ProductID:       productID,
		Quantity:        quantity,
		TotalPrice:      total,
		Profit:          total / 4,
		TransactionDate: at,
	})
	require.NoError(t, err)
}
