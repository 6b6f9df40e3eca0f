package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go-sales-dashboard/internal/model"
	"go-sales-dashboard/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	predictionWindowDays = 3
	demandGrowthFactor   = 1.2
	// stock below demand*restockCoverage days needs a restock
	restockCoverage = 2
	// a restock should cover this many days of predicted demand
	recommendedCoverage = 3
)

type DashboardService interface {
	DailySales(ctx context.Context, windowDays int) ([]model.DailySales, error)
	TodaySummary(ctx context.Context) (model.SalesSummary, error)
	SalesPrediction(ctx context.Context) ([]model.StockPrediction, error)
	Overview(ctx context.Context) (*model.DashboardOverview, error)
	StockOverview(ctx context.Context) (*model.StockOverview, error)
	TopProducts(ctx context.Context, windowDays, limit int) ([]model.ProductSales, error)
}

type dashboardService struct {
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	loc         *time.Location
	now         func() time.Time
}

// NewDashboardService cuts calendar days in loc. A nil loc means the process zone.
func NewDashboardService(productRepo repository.ProductRepository, txRepo repository.TransactionRepository, loc *time.Location) DashboardService {
	if loc == nil {
		loc = time.Local
	}
	return &dashboardService{
		productRepo: productRepo,
		txRepo:      txRepo,
		loc:         loc,
		now:         time.Now,
	}
}

// DailySales totals each calendar day in the window, oldest first. Days without
// sales are omitted.
func (s *dashboardService) DailySales(ctx context.Context, windowDays int) ([]model.DailySales, error) {
	if windowDays < 0 {
		return nil, fmt.Errorf("%w: window must not be negative, got %d", repository.ErrInvalidInput, windowDays)
	}

	views, err := s.txRepo.FindSince(ctx, s.now().AddDate(0, 0, -windowDays))
	if err != nil {
		return nil, err
	}

	type bucket struct {
		sales, profit decimal.Decimal
		items         int64
	}
	buckets := make(map[string]*bucket)
	for _, v := range views {
		day := v.TransactionDate.In(s.loc).Format("2006-01-02")
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
		}
		b.sales = b.sales.Add(decimal.NewFromFloat(v.TotalPrice))
		b.profit = b.profit.Add(decimal.NewFromFloat(v.Profit))
		b.items += int64(v.Quantity)
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	result := make([]model.DailySales, 0, len(days))
	for _, day := range days {
		b := buckets[day]
		sales, _ := b.sales.Float64()
		profit, _ := b.profit.Float64()
		result = append(result, model.DailySales{
			Date:        day,
			TotalSales:  sales,
			TotalProfit: profit,
			TotalItems:  b.items,
		})
	}
	return result, nil
}

// TodaySummary totals the current calendar day. It is all zeros when nothing sold.
func (s *dashboardService) TodaySummary(ctx context.Context) (model.SalesSummary, error) {
	start := startOfDay(s.now(), s.loc)
	return s.txRepo.SumBetween(ctx, start, start.AddDate(0, 0, 1))
}

// SalesPrediction estimates demand from the average sale size over the last three
// days. Products with no recent sales are included with zero demand.
func (s *dashboardService) SalesPrediction(ctx context.Context) ([]model.StockPrediction, error) {
	stats, err := s.txRepo.ProductStatsSince(ctx, s.now().AddDate(0, 0, -predictionWindowDays))
	if err != nil {
		return nil, err
	}

	predictions := make([]model.StockPrediction, 0, len(stats))
	for _, st := range stats {
		predictions = append(predictions, predict(st))
	}
	return predictions, nil
}

func predict(st repository.ProductSalesStats) model.StockPrediction {
	demand := int(math.Round(st.AvgQuantity * demandGrowthFactor))

	status := model.StockStatusOK
	if st.CurrentStock < demand*restockCoverage {
		status = model.StockStatusNeedsRestock
	}

	return model.StockPrediction{
		ProductID:          st.ProductID,
		ProductName:        st.ProductName,
		CurrentStock:       st.CurrentStock,
		TotalSoldLast3Days: st.TotalSold,
		AvgDailySales:      st.AvgQuantity,
		PredictedDemand:    demand,
		StockStatus:        status,
		RecommendedRestock: max(0, demand*recommendedCoverage-st.CurrentStock),
	}
}

func (s *dashboardService) Overview(ctx context.Context) (*model.DashboardOverview, error) {
	today := startOfDay(s.now(), s.loc)
	yesterday := today.AddDate(0, 0, -1)

	todaySum, err := s.txRepo.SumBetween(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	yesterdaySum, err := s.txRepo.SumBetween(ctx, yesterday, today)
	if err != nil {
		return nil, err
	}

	overview := &model.DashboardOverview{
		Today:       todaySum,
		Yesterday:   yesterdaySum,
		SalesDelta:  todaySum.TotalSales - yesterdaySum.TotalSales,
		ProfitDelta: todaySum.TotalProfit - yesterdaySum.TotalProfit,
	}
	if todaySum.TotalItems > 0 {
		overview.AvgProfitPerItem = todaySum.TotalProfit / float64(todaySum.TotalItems)
	}
	return overview, nil
}

func (s *dashboardService) StockOverview(ctx context.Context) (*model.StockOverview, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	overview := &model.StockOverview{TotalProducts: int64(len(products))}
	value := decimal.Zero
	for _, p := range products {
		overview.TotalUnits += int64(p.Stock)
		value = value.Add(decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Stock))))

		switch p.StockLevel() {
		case model.StockLevelCritical:
			overview.CriticalCount++
		case model.StockLevelLow:
			overview.LowCount++
		default:
			overview.OKCount++
		}
	}
	overview.InventoryValue, _ = value.Float64()
	return overview, nil
}

func (s *dashboardService) TopProducts(ctx context.Context, windowDays, limit int) ([]model.ProductSales, error) {
	if windowDays < 0 {
		return nil, fmt.Errorf("%w: window must not be negative, got %d", repository.ErrInvalidInput, windowDays)
	}
	return s.txRepo.TopProductsSince(ctx, s.now().AddDate(0, 0, -windowDays), limit)
}
