package scheduler

import (
	"context"
	"fmt"

	"go-sales-dashboard/internal/model"
	"go-sales-dashboard/internal/service"
	"go-sales-dashboard/internal/ws"
	"go-sales-dashboard/pkg/logger"
	"go-sales-dashboard/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// AlertScheduler periodically checks the sales prediction and reports products that
// need a restock. It never writes to the store.
type AlertScheduler struct {
	cron      *cron.Cron
	dashboard service.DashboardService
	hub       *ws.Hub
}

func NewAlertScheduler(dashboard service.DashboardService, hub *ws.Hub) *AlertScheduler {
	c := cron.New(cron.WithLogger(cron.PrintfLogger(logger.Logger())))

	return &AlertScheduler{
		cron:      c,
		dashboard: dashboard,
		hub:       hub,
	}
}

// Start registers the check on schedule (a cron spec such as "@every 1h") and starts
// the scheduler.
func (s *AlertScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting restock alert scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		if _, err := s.CheckRestock(ctx); err != nil {
			logger.Error().Err(err).Msg("Restock check failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid alert schedule %q: %w", schedule, err)
	}

	s.cron.Start()
	return nil
}

func (s *AlertScheduler) Stop() {
	logger.Info().Msg("Stopping restock alert scheduler")
	<-s.cron.Stop().Done()
}

func (s *AlertScheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// CheckRestock returns the products whose stock is below twice their predicted demand.
func (s *AlertScheduler) CheckRestock(ctx context.Context) ([]model.StockPrediction, error) {
	predictions, err := s.dashboard.SalesPrediction(ctx)
	if err != nil {
		return nil, err
	}

	var needing []model.StockPrediction
	for _, p := range predictions {
		if p.StockStatus != model.StockStatusNeedsRestock {
			continue
		}
		needing = append(needing, p)
		logger.Warn().
			Uint("product_id", p.ProductID).
			Str("product", p.ProductName).
			Int("stock", p.CurrentStock).
			Int("predicted_demand", p.PredictedDemand).
			Int("recommended_restock", p.RecommendedRestock).
			Msg("Product needs restock")
	}

	metrics.ProductsNeedingRestock.Set(float64(len(needing)))

	if len(needing) > 0 {
		s.hub.Publish(ws.NewEvent(ws.EventRestockAlert, needing,
			fmt.Sprintf("%d products need restock", len(needing))))
	}

	return needing, nil
}
