package service

import (
	"math/rand"
	"testing"
	"time"

	"go-sales-dashboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBootstrap(s *testStore, seed int64) BootstrapService {
	return NewBootstrapService(s.db, s.products, s.txns, time.Local, rand.New(rand.NewSource(seed)))
}

func TestBootstrapService_InitializeStore_SeedsOnce(t *testing.T) {
	store := setupTestStore(t)
	svc := newBootstrap(store, 42)

	seeded, err := svc.InitializeStore(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = svc.InitializeStore(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	count, err := store.products.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(model.DemoCatalog)), count)
}

func TestBootstrapService_InitializeStore_LeavesExistingDataAlone(t *testing.T) {
	store := setupTestStore(t)
	store.addProduct(t, "Existing", 10, 5, 1)

	seeded, err := newBootstrap(store, 1).InitializeStore(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	count, err := store.products.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestBootstrapService_SeedDemoData(t *testing.T) {
	store := setupTestStore(t)
	svc := newBootstrap(store, 7)

	empty, err := svc.IsStoreEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	result, err := svc.SeedDemoData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, result.Products)
	assert.Positive(t, result.Transactions)
	assert.LessOrEqual(t, result.Transactions, 50)

	products, err := store.products.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, len(model.DemoCatalog))
	for i, p := range products {
		assert.Equal(t, model.DemoCatalog[i].Name, p.Name)
		assert.Equal(t, model.DemoCatalog[i].Price, p.Price)
		assert.GreaterOrEqual(t, p.Stock, 0)
	}

	now := time.Now()
	oldest := startOfDay(now.AddDate(0, 0, -7), time.Local)
	views, err := store.txns.FindSince(ctx, oldest.AddDate(0, 0, -1))
	require.NoError(t, err)
	require.Len(t, views, result.Transactions)

	sold := make(map[string]int)
	for _, v := range views {
		assert.False(t, v.TransactionDate.Before(oldest), "sale dated before the seed window: %s", v.TransactionDate)
		assert.False(t, v.TransactionDate.After(now), "sale dated in the future: %s", v.TransactionDate)
		assert.GreaterOrEqual(t, v.Quantity, 1)
		assert.LessOrEqual(t, v.Quantity, 3)
		sold[v.ProductName] += v.Quantity
	}

	for i, p := range products {
		assert.Equal(t, model.DemoCatalog[i].Stock-sold[p.Name], p.Stock, "stock of %s", p.Name)
	}

	empty, err = svc.IsStoreEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)
}

func TestBootstrapService_SeedDemoData_Deterministic(t *testing.T) {
	first := setupTestStore(t)
	second := setupTestStore(t)

	a, err := newBootstrap(first, 99).SeedDemoData(ctx)
	require.NoError(t, err)
	b, err := newBootstrap(second, 99).SeedDemoData(ctx)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	pa, err := first.products.FindAll(ctx)
	require.NoError(t, err)
	pb, err := second.products.FindAll(ctx)
	require.NoError(t, err)
	for i := range pa {
		assert.Equal(t, pa[i].Stock, pb[i].Stock)
	}
}

func TestBootstrapService_ResetDemoData(t *testing.T) {
	store := setupTestStore(t)
	svc := newBootstrap(store, 3)
	extra := store.addProduct(t, "Leftover", 10, 5, 1)

	result, err := svc.ResetDemoData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, result.Products)

	count, err := store.products.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), count)

	products, err := store.products.FindAll(ctx)
	require.NoError(t, err)
	for _, p := range products {
		assert.NotEqual(t, extra.Name, p.Name)
	}
}
