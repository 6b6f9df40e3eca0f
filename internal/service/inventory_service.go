package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-sales-dashboard/internal/model"
	"go-sales-dashboard/internal/repository"
	"go-sales-dashboard/internal/ws"
	"go-sales-dashboard/pkg/logger"
	"go-sales-dashboard/pkg/metrics"
	"go-sales-dashboard/pkg/validator"

	"gorm.io/gorm"
)

// SaleRequest is a sale entered by the operator.
type SaleRequest struct {
	ProductID       uint       `json:"product_id" validate:"required"`
	Quantity        int        `json:"quantity" validate:"gt=0"`
	TransactionDate *time.Time `json:"transaction_date,omitempty"`
}

// SaleResult is the recorded transaction and the product as it is after the sale.
type SaleResult struct {
	Transaction model.Transaction `json:"transaction"`
	Product     model.Product     `json:"product"`
}

// ProductFilter narrows the product list. Empty fields match everything.
type ProductFilter struct {
	Category string
	Query    string
}

type InventoryService interface {
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	GetProducts(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uint, patch model.ProductPatch) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
	Restock(ctx context.Context, id uint, quantity int) (*model.Product, error)
	Categories(ctx context.Context) ([]string, error)
	RecordSale(ctx context.Context, req SaleRequest) (*SaleResult, error)
	GetTransactions(ctx context.Context, windowDays int) ([]model.TransactionView, error)
}

type inventoryService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	db              *gorm.DB
	wsHub           *ws.Hub
	now             func() time.Time
}

func NewInventoryService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, db *gorm.DB, hub *ws.Hub) InventoryService {
	return &inventoryService{
		productRepo:     pRepo,
		transactionRepo: tRepo,
		db:              db,
		wsHub:           hub,
		now:             time.Now,
	}
}

func (s *inventoryService) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if err := validator.Check(product, repository.ErrInvalidInput); err != nil {
		return nil, err
	}

	product.ID = 0
	if _, err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	logger.Info().
		Uint("product_id", product.ID).
		Str("name", product.Name).
		Msg("Product created")

	s.wsHub.Publish(ws.NewEvent(ws.EventProductCreated, product,
		fmt.Sprintf("Product '%s' added", product.Name)))

	return product, nil
}

func (s *inventoryService) GetProducts(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if filter.Category == "" && filter.Query == "" {
		return products, nil
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

func (s *inventoryService) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

func (s *inventoryService) UpdateProduct(ctx context.Context, id uint, patch model.ProductPatch) (*model.Product, error) {
	if err := validator.Check(patch, repository.ErrInvalidInput); err != nil {
		return nil, err
	}

	updated, err := s.productRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.NewEvent(ws.EventProductUpdated, updated,
		fmt.Sprintf("Product '%s' updated", updated.Name)))

	return updated, nil
}

func (s *inventoryService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Uint("product_id", id).Msg("Product deleted with its transactions")

	s.wsHub.Publish(ws.NewEvent(ws.EventProductDeleted, map[string]uint{"id": id}, ""))
	return nil
}

func (s *inventoryService) Restock(ctx context.Context, id uint, quantity int) (*model.Product, error) {
	updated, err := s.productRepo.Restock(ctx, id, quantity)
	if err != nil {
		return nil, err
	}

	metrics.RecordRestock(quantity)

	s.wsHub.Publish(ws.NewEvent(ws.EventStockRestocked, updated,
		fmt.Sprintf("Added %d units of '%s'", quantity, updated.Name)))

	return updated, nil
}

func (s *inventoryService) Categories(ctx context.Context) ([]string, error) {
	return s.productRepo.Categories(ctx)
}

// RecordSale decrements stock and stores the transaction in one store transaction.
// Price and cost are read inside that transaction, so the snapshot matches the row
// that was decremented.
func (s *inventoryService) RecordSale(ctx context.Context, req SaleRequest) (*SaleResult, error) {
	if err := validator.Check(req, repository.ErrInvalidInput); err != nil {
		return nil, err
	}

	date := s.now()
	if req.TransactionDate != nil && !req.TransactionDate.IsZero() {
		date = *req.TransactionDate
	}

	var result SaleResult
	err := repository.Transaction(ctx, s.db, "record sale", func(tx *gorm.DB) error {
		product, err := s.productRepo.WithTx(tx).DecrementStock(ctx, req.ProductID, req.Quantity)
		if err != nil {
			return err
		}

		totalPrice, profit := saleSnapshot(product.Price, product.Cost, req.Quantity)
		txn := model.Transaction{
			ProductID:       product.ID,
			Quantity:        req.Quantity,
			TotalPrice:      totalPrice,
			Profit:          profit,
			TransactionDate: date,
		}
		if _, err := s.transactionRepo.WithTx(tx).Create(ctx, &txn); err != nil {
			return err
		}

		result = SaleResult{Transaction: txn, Product: *product}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordSale(result.Transaction.TotalPrice)

	logger.Info().
		Uint("product_id", result.Product.ID).
		Int("quantity", req.Quantity).
		Float64("total_price", result.Transaction.TotalPrice).
		Int("stock_left", result.Product.Stock).
		Msg("Sale recorded")

	s.wsHub.Publish(ws.NewEvent(ws.EventSaleRecorded, result,
		fmt.Sprintf("Sold %d units of '%s'", req.Quantity, result.Product.Name)))

	return &result, nil
}

// GetTransactions returns sales from the last windowDays days, newest first.
func (s *inventoryService) GetTransactions(ctx context.Context, windowDays int) ([]model.TransactionView, error) {
	if windowDays < 0 {
		return nil, fmt.Errorf("%w: window must not be negative, got %d", repository.ErrInvalidInput, windowDays)
	}
	return s.transactionRepo.FindSince(ctx, s.now().AddDate(0, 0, -windowDays))
}
