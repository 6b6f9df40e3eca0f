package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP
// =============================================================================

// HttpRequestsTotal counts served requests.
// Labels: service, method, path, status
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Database
// =============================================================================

// DbQueryDuration is fed by the gorm callbacks in gorm.go.
var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Business
// =============================================================================

var SalesRecorded = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "sales_recorded_total",
		Help: "Total number of sale transactions recorded",
	},
)

var SalesRevenue = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "sales_revenue_total",
		Help: "Sum of total_price over recorded sales",
	},
)

var StockRestockedUnits = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "stock_restocked_units_total",
		Help: "Total number of units added through restock",
	},
)

// ProductsNeedingRestock is set by the restock alert job.
var ProductsNeedingRestock = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "products_needing_restock",
		Help: "Number of products whose stock is below twice the predicted demand",
	},
)
