package service

import (
	"encoding/json"
	"testing"
	"time"

	"go-sales-dashboard/internal/model"
	"go-sales-dashboard/internal/repository"
	"go-sales-dashboard/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventory(s *testStore, hub *ws.Hub) InventoryService {
	return NewInventoryService(s.products, s.txns, s.db, hub)
}

func nextEvent(t *testing.T, hub *ws.Hub) map[string]interface{} {
	t.Helper()

	select {
	case msg := <-hub.Broadcast:
		var ev map[string]interface{}
		require.NoError(t, json.Unmarshal(msg, &ev))
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event published")
		return nil
	}
}

func TestInventoryService_RecordSale(t *testing.T) {
	store := setupTestStore(t)
	hub := ws.NewHub()
	svc := newInventory(store, hub)
	p := store.addProduct(t, "Mouse Logitech G502", 850000, 650000, 50)

	result, err := svc.RecordSale(ctx, SaleRequest{ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, 47, result.Product.Stock)
	assert.NotZero(t, result.Transaction.ID)
	assert.Equal(t, 2550000.0, result.Transaction.TotalPrice)
	assert.Equal(t, 600000.0, result.Transaction.Profit)

	stored, err := store.products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 47, stored.Stock)

	views, err := svc.GetTransactions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Mouse Logitech G502", views[0].ProductName)

	ev := nextEvent(t, hub)
	assert.Equal(t, string(ws.EventSaleRecorded), ev["type"])
}

func TestInventoryService_RecordSale_ExactSnapshots(t *testing.T) {
	store := setupTestStore(t)
	svc := newInventory(store, nil)
	p := store.addProduct(t, "Sticker", 0.1, 0.07, 10)

	result, err := svc.RecordSale(ctx, SaleRequest{ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, 0.3, result.Transaction.TotalPrice)
	assert.Equal(t, 0.09, result.Transaction.Profit)
}

func TestInventoryService_RecordSale_InsufficientStock(t *testing.T) {
	store := setupTestStore(t)
	svc := newInventory(store, nil)
	p := store.addProduct(t, "Webcam", 1200000, 900000, 2)

	_, err := svc.RecordSale(ctx, SaleRequest{ProductID: p.ID, Quantity: 3})
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)

	stored, err := store.products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Stock)

	views, err := svc.GetTransactions(ctx, 30)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestInventoryService_RecordSale_InvalidRequest(t *testing.T) {
	store := setupTestStore(t)
	svc := newInventory(store, nil)
	p := store.addProduct(t, "Webcam", 1200000, 900000, 2)

	_, err := svc.RecordSale(ctx, SaleRequest{ProductID: p.ID, Quantity: 0})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)

	_, err = svc.RecordSale(ctx, SaleRequest{Quantity: 1})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)

	_, err = svc.RecordSale(ctx, SaleRequest{ProductID: 999, Quantity: 1})
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestInventoryService_RecordSale_ExplicitDate(t *testing.T) {
	store := setupTestStore(t)
	svc := newInventory(store, nil)
	p := store.addProduct(t, "SSD", 1500000, 1100000, 10)

	at := time.Now().Add(-36 * time.Hour).Truncate(time.Second)
	result, err := svc.RecordSale(ctx, SaleRequest{ProductID: p.ID, Quantity: 1, TransactionDate: &at})
	require.NoError(t, err)
	assert.True(t, at.Equal(result.Transaction.TransactionDate))

	views, err := svc.GetTransactions(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, views)

	views, err = svc.GetTransactions(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, views, 1)
}

func TestInventoryService_CreateProduct(t *testing.T) {
	store := setupTestStore(t)
	hub := ws.NewHub()
	svc := newInventory(store, hub)

	created, err := svc.CreateProduct(ctx, &model.Product{Name: "Tripod", Category: "Accessories", Price: 300000, Cost: 350000, Stock: 4})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.MarginWarning())
	assert.Equal(t, model.StockLevelCritical, created.StockLevel())

	ev := nextEvent(t, hub)
	assert.Equal(t, string(ws.EventProductCreated), ev["type"])

	_, err = svc.CreateProduct(ctx, &model.Product{Name: "  ", Category: "Accessories"})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)

	_, err = svc.CreateProduct(ctx, &model.Product{Name: "Cable", Category: "Accessories", Price: -1})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestInventoryService_GetProducts_Filters(t *testing.T) {
	store := setupTestStore(t)
	svc := newInventory(store, nil)

	for _, p := range []model.Product{
		{Name: "Mouse Logitech G502", Category: "Accessories", Price: 1, Cost: 1, Stock: 1},
		{Name: "Webcam Logitech C920", Category: "Accessories", Price: 1, Cost: 1, Stock: 1},
		{Name: "SSD Samsung 1TB", Category: "Components", Price: 1, Cost: 1, Stock: 1},
	} {
		p := p
		_, err := store.products.Create(ctx, &p)
		require.NoError(t, err)
	}

	all, err := svc.GetProducts(ctx, ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	logitech, err := svc.GetProducts(ctx, ProductFilter{Query: "logitech"})
	require.NoError(t, err)
	assert.Len(t, logitech, 2)

	components, err := svc.GetProducts(ctx, ProductFilter{Category: "Components"})
	require.NoError(t, err)
	require.Len(t, components, 1)
	assert.Equal(t, "SSD Samsung 1TB", components[0].Name)

	none, err := svc.GetProducts(ctx, ProductFilter{Category: "Components", Query: "logitech"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestInventoryService_UpdateAndRestock(t *testing.T) {
	store := setupTestStore(t)
	hub := ws.NewHub()
	svc := newInventory(store, hub)
	p := store.addProduct(t, "Keyboard", 750000, 500000, 5)

	name := "Keyboard Mechanical RGB"
	updated, err := svc.UpdateProduct(ctx, p.ID, model.ProductPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, string(ws.EventProductUpdated), nextEvent(t, hub)["type"])

	restocked, err := svc.Restock(ctx, p.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, 25, restocked.Stock)
	assert.Equal(t, string(ws.EventStockRestocked), nextEvent(t, hub)["type"])

	_, err = svc.Restock(ctx, p.ID, -3)
	assert.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestInventoryService_DeleteProduct(t *testing.T) {
	store := setupTestStore(t)
	svc := newInventory(store, nil)
	p := store.addProduct(t, "Printer", 3200000, 2600000, 15)

	_, err := svc.RecordSale(ctx, SaleRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, p.ID))

	_, err = svc.GetProduct(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)

	views, err := svc.GetTransactions(ctx, 30)
	require.NoError(t, err)
	assert.Empty(t, views)

	assert.ErrorIs(t, svc.DeleteProduct(ctx, p.ID), repository.ErrProductNotFound)
}

func TestInventoryService_GetTransactions_NegativeWindow(t *testing.T) {
	svc := newInventory(setupTestStore(t), nil)

	_, err := svc.GetTransactions(ctx, -1)
	assert.ErrorIs(t, err, repository.ErrInvalidInput)
}
