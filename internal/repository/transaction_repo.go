package repository

import (
	"context"
	"time"

	"go-sales-dashboard/internal/model"

	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, txn *model.Transaction) (uint, error)
	FindSince(ctx context.Context, since time.Time) ([]model.TransactionView, error)
	SumBetween(ctx context.Context, from, to time.Time) (model.SalesSummary, error)
	ProductStatsSince(ctx context.Context, since time.Time) ([]ProductSalesStats, error)
	TopProductsSince(ctx context.Context, since time.Time, limit int) ([]model.ProductSales, error)
	WithTx(tx *gorm.DB) TransactionRepository
}

// ProductSalesStats is one product with its sales inside a window. Products without
// sales have zero totals.
type ProductSalesStats struct {
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	CurrentStock int     `json:"current_stock"`
	TotalSold    int64   `json:"total_sold"`
	AvgQuantity  float64 `json:"avg_quantity"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) WithTx(tx *gorm.DB) TransactionRepository {
	return &transactionRepo{tx}
}

// Create stores the row as given. TotalPrice and Profit are taken verbatim.
func (r *transactionRepo) Create(ctx context.Context, txn *model.Transaction) (uint, error) {
	if txn.ProductID == 0 {
		return 0, invalidInput("product_id is required")
	}
	if txn.Quantity <= 0 {
		return 0, invalidInput("quantity must be positive, got %d", txn.Quantity)
	}

	if txn.TransactionDate.IsZero() {
		txn.TransactionDate = time.Now()
	}
	txn.TransactionDate = txn.TransactionDate.UTC()

	if err := r.db.WithContext(ctx).Create(txn).Error; err != nil {
		return 0, storeError("create transaction", err)
	}
	return txn.ID, nil
}

// FindSince returns transactions dated at or after since, newest first.
func (r *transactionRepo) FindSince(ctx context.Context, since time.Time) ([]model.TransactionView, error) {
	var views []model.TransactionView
	err := r.db.WithContext(ctx).
		Table("transactions AS t").
		Select("t.id, t.product_id, p.name AS product_name, t.quantity, t.total_price, t.profit, t.transaction_date").
		Joins("JOIN products AS p ON p.id = t.product_id").
		Where("t.transaction_date >= ?", since.UTC()).
		Order("t.transaction_date DESC, t.id DESC").
		Scan(&views).Error
	if err != nil {
		return nil, storeError("list transactions", err)
	}
	return views, nil
}

// SumBetween totals transactions in [from, to).
func (r *transactionRepo) SumBetween(ctx context.Context, from, to time.Time) (model.SalesSummary, error) {
	var summary model.SalesSummary
	err := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Select(`
			COALESCE(SUM(total_price), 0) AS total_sales,
			COALESCE(SUM(profit), 0) AS total_profit,
			COALESCE(SUM(quantity), 0) AS total_items
		`).
		Where("transaction_date >= ? AND transaction_date < ?", from.UTC(), to.UTC()).
		Scan(&summary).Error
	if err != nil {
		return model.SalesSummary{}, storeError("sum transactions", err)
	}
	return summary, nil
}

func (r *transactionRepo) ProductStatsSince(ctx context.Context, since time.Time) ([]ProductSalesStats, error) {
	var stats []ProductSalesStats
	err := r.db.WithContext(ctx).
		Table("products AS p").
		Select(`
			p.id AS product_id,
			p.name AS product_name,
			p.stock AS current_stock,
			COALESCE(SUM(t.quantity), 0) AS total_sold,
			COALESCE(AVG(t.quantity), 0) AS avg_quantity
		`).
		Joins("LEFT JOIN transactions AS t ON t.product_id = p.id AND t.transaction_date >= ?", since.UTC()).
		Group("p.id, p.name, p.stock").
		Order("avg_quantity DESC, p.id ASC").
		Scan(&stats).Error
	if err != nil {
		return nil, storeError("aggregate product sales", err)
	}
	return stats, nil
}

func (r *transactionRepo) TopProductsSince(ctx context.Context, since time.Time, limit int) ([]model.ProductSales, error) {
	if limit <= 0 {
		return nil, invalidInput("limit must be positive, got %d", limit)
	}

	var top []model.ProductSales
	err := r.db.WithContext(ctx).
		Table("transactions AS t").
		Select(`
			p.id AS product_id,
			p.name AS product_name,
			COALESCE(SUM(t.quantity), 0) AS total_quantity,
			COALESCE(SUM(t.total_price), 0) AS total_sales,
			COALESCE(SUM(t.profit), 0) AS total_profit
		`).
		Joins("JOIN products AS p ON p.id = t.product_id").
		Where("t.transaction_date >= ?", since.UTC()).
		Group("p.id, p.name").
		Order("total_sales DESC, p.id ASC").
		Limit(limit).
		Scan(&top).Error
	if err != nil {
		return nil, storeError("rank products", err)
	}
	return top, nil
}
