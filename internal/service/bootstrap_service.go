package service

import (
	"context"
	"math/rand"
	"time"

	"go-sales-dashboard/internal/model"
	"go-sales-dashboard/internal/repository"
	"go-sales-dashboard/pkg/database"
	"go-sales-dashboard/pkg/logger"

	"gorm.io/gorm"
)

const (
	seedDays            = 8
	seedMaxTransactions = 50
	seedMinSalesPerDay  = 5
	seedMaxSalesPerDay  = 10
	seedMaxUnitsPerSale = 3
	seedOpeningHour     = 8
	seedClosingHour     = 20
)

// SeedResult reports what SeedDemoData inserted.
type SeedResult struct {
	Products     int `json:"products"`
	Transactions int `json:"transactions"`
}

type BootstrapService interface {
	IsStoreEmpty(ctx context.Context) (bool, error)
	SeedDemoData(ctx context.Context) (*SeedResult, error)
	InitializeStore(ctx context.Context) (bool, error)
	ResetDemoData(ctx context.Context) (*SeedResult, error)
}

type bootstrapService struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	loc         *time.Location
	rng         *rand.Rand
	now         func() time.Time
}

// NewBootstrapService seeds using rng; pass a fixed-seed source for a reproducible store.
func NewBootstrapService(db *gorm.DB, pRepo repository.ProductRepository, tRepo repository.TransactionRepository, loc *time.Location, rng *rand.Rand) BootstrapService {
	if loc == nil {
		loc = time.Local
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &bootstrapService{
		db:          db,
		productRepo: pRepo,
		txRepo:      tRepo,
		loc:         loc,
		rng:         rng,
		now:         time.Now,
	}
}

func (s *bootstrapService) IsStoreEmpty(ctx context.Context) (bool, error) {
	count, err := s.productRepo.Count(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// InitializeStore makes sure the schema exists and seeds demo data into an empty
// store. It returns true only when it seeded.
func (s *bootstrapService) InitializeStore(ctx context.Context) (bool, error) {
	if err := database.EnsureSchema(s.db.WithContext(ctx)); err != nil {
		return false, err
	}

	empty, err := s.IsStoreEmpty(ctx)
	if err != nil || !empty {
		return false, err
	}

	result, err := s.SeedDemoData(ctx)
	if err != nil {
		return false, err
	}

	logger.Info().
		Int("products", result.Products).
		Int("transactions", result.Transactions).
		Msg("Seeded demo data into empty store")

	return true, nil
}

// SeedDemoData inserts the demo catalog and up to seedMaxTransactions random sales
// spread over the last seedDays calendar days. Every sale goes through the normal
// stock decrement, so final stock equals catalog stock minus units sold.
func (s *bootstrapService) SeedDemoData(ctx context.Context) (*SeedResult, error) {
	result := &SeedResult{}

	err := repository.Transaction(ctx, s.db, "seed demo data", func(tx *gorm.DB) error {
		products := s.productRepo.WithTx(tx)
		txns := s.txRepo.WithTx(tx)

		ids := make([]uint, 0, len(model.DemoCatalog))
		for _, item := range model.DemoCatalog {
			p := item
			id, err := products.Create(ctx, &p)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		result.Products = len(ids)

		now := s.now()
		for offset := seedDays - 1; offset >= 0; offset-- {
			day := startOfDay(now.AddDate(0, 0, -offset), s.loc)
			attempts := seedMinSalesPerDay + s.rng.Intn(seedMaxSalesPerDay-seedMinSalesPerDay+1)

			for i := 0; i < attempts; i++ {
				if result.Transactions >= seedMaxTransactions {
					return nil
				}

				id := ids[s.rng.Intn(len(ids))]
				product, err := products.FindByID(ctx, id)
				if err != nil {
					return err
				}
				if product.Stock == 0 {
					continue
				}

				quantity := 1 + s.rng.Intn(min(seedMaxUnitsPerSale, product.Stock))
				at := day.Add(time.Duration(seedOpeningHour+s.rng.Intn(seedClosingHour-seedOpeningHour+1))*time.Hour +
					time.Duration(s.rng.Intn(60))*time.Minute)
				if at.After(now) {
					at = now
				}

				sold, err := products.DecrementStock(ctx, id, quantity)
				if err != nil {
					return err
				}

				totalPrice, profit := saleSnapshot(sold.Price, sold.Cost, quantity)
				if _, err := txns.Create(ctx, &model.Transaction{
					ProductID:       id,
					Quantity:        quantity,
					TotalPrice:      totalPrice,
					Profit:          profit,
					TransactionDate: at,
				}); err != nil {
					return err
				}
				result.Transactions++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ResetDemoData wipes every product and transaction and seeds again.
func (s *bootstrapService) ResetDemoData(ctx context.Context) (*SeedResult, error) {
	if err := database.EnsureSchema(s.db.WithContext(ctx)); err != nil {
		return nil, err
	}
	if err := s.productRepo.DeleteAll(ctx); err != nil {
		return nil, err
	}
	return s.SeedDemoData(ctx)
}
