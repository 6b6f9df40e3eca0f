package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// saleSnapshot computes the values frozen into a transaction at sale time.
func saleSnapshot(price, cost float64, quantity int) (totalPrice, profit float64) {
	qty := decimal.NewFromInt(int64(quantity))
	p := decimal.NewFromFloat(price)
	c := decimal.NewFromFloat(cost)

	totalPrice, _ = p.Mul(qty).Float64()
	profit, _ = p.Sub(c).Mul(qty).Float64()
	return totalPrice, profit
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
