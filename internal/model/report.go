package model

// DailySales is one calendar day with at least one sale.
type DailySales struct {
	Date        string  `json:"date"` // YYYY-MM-DD in the dashboard time zone
	TotalSales  float64 `json:"total_sales"`
	TotalProfit float64 `json:"total_profit"`
	TotalItems  int64   `json:"total_items"`
}

// SalesSummary totals a time range. Zero values mean no sales.
type SalesSummary struct {
	TotalSales  float64 `json:"total_sales"`
	TotalProfit float64 `json:"total_profit"`
	TotalItems  int64   `json:"total_items"`
}

// DashboardOverview compares today with yesterday.
type DashboardOverview struct {
	Today            SalesSummary `json:"today"`
	Yesterday        SalesSummary `json:"yesterday"`
	SalesDelta       float64      `json:"sales_delta"`
	ProfitDelta      float64      `json:"profit_delta"`
	AvgProfitPerItem float64      `json:"avg_profit_per_item"`
}

type StockStatus string

const (
	StockStatusOK           StockStatus = "OK"
	StockStatusNeedsRestock StockStatus = "Needs Restock"
)

// StockPrediction is the moving-average demand estimate for one product.
type StockPrediction struct {
	ProductID          uint        `json:"product_id"`
	ProductName        string      `json:"product_name"`
	CurrentStock       int         `json:"current_stock"`
	TotalSoldLast3Days int64       `json:"total_sold_last_3_days"`
	AvgDailySales      float64     `json:"avg_daily_sales"`
	PredictedDemand    int         `json:"predicted_demand"`
	StockStatus        StockStatus `json:"stock_status"`
	RecommendedRestock int         `json:"recommended_restock"`
}

// StockOverview summarizes the stock table.
type StockOverview struct {
	TotalProducts  int64   `json:"total_products"`
	TotalUnits     int64   `json:"total_units"`
	InventoryValue float64 `json:"inventory_value"`
	CriticalCount  int64   `json:"critical_count"`
	LowCount       int64   `json:"low_count"`
	OKCount        int64   `json:"ok_count"`
}

// ProductSales ranks a product by revenue over a window.
type ProductSales struct {
	ProductID     uint    `json:"product_id"`
	ProductName   string  `json:"product_name"`
	TotalQuantity int64   `json:"total_quantity"`
	TotalSales    float64 `json:"total_sales"`
	TotalProfit   float64 `json:"total_profit"`
}
