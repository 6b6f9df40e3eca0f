package model

import "time"

// Product is a sellable item. Stock never goes below zero through a sale.
type Product struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name" validate:"required,notblank"`
	Category  string    `gorm:"not null" json:"category" validate:"required,notblank"`
	Price     float64   `gorm:"not null" json:"price" validate:"gte=0"`
	Cost      float64   `gorm:"not null" json:"cost" validate:"gte=0"`
	Stock     int       `gorm:"not null" json:"stock" validate:"gte=0"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}

// MarginWarning reports the UI-level expectation price > cost being violated.
func (p *Product) MarginWarning() bool {
	return p.Price <= p.Cost
}

// StockLevel returns the badge shown next to the product in the stock table.
func (p *Product) StockLevel() StockLevel {
	return StockLevelOf(p.Stock)
}

// ProductPatch carries the fields of an edit. Nil fields keep their stored value.
type ProductPatch struct {
	Name     *string  `json:"name,omitempty" validate:"omitnil,min=1"`
	Category *string  `json:"category,omitempty" validate:"omitnil,min=1"`
	Price    *float64 `json:"price,omitempty" validate:"omitnil,gte=0"`
	Cost     *float64 `json:"cost,omitempty" validate:"omitnil,gte=0"`
	Stock    *int     `json:"stock,omitempty" validate:"omitnil,gte=0"`
}

// Empty reports whether the patch changes nothing.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Category == nil && p.Price == nil && p.Cost == nil && p.Stock == nil
}

// Apply copies the supplied fields onto product.
func (p ProductPatch) Apply(product *Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Cost != nil {
		product.Cost = *p.Cost
	}
	if p.Stock != nil {
		product.Stock = *p.Stock
	}
}

// Columns returns the column/value pairs for an UPDATE statement.
func (p ProductPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Category != nil {
		cols["category"] = *p.Category
	}
	if p.Price != nil {
		cols["price"] = *p.Price
	}
	if p.Cost != nil {
		cols["cost"] = *p.Cost
	}
	if p.Stock != nil {
		cols["stock"] = *p.Stock
	}
	return cols
}

type StockLevel string

const (
	StockLevelCritical StockLevel = "critical"
	StockLevelLow      StockLevel = "low"
	StockLevelOK       StockLevel = "ok"
)

const (
	criticalStockMax = 5
	lowStockMax      = 15
)

func StockLevelOf(stock int) StockLevel {
	switch {
	case stock <= criticalStockMax:
		return StockLevelCritical
	case stock <= lowStockMax:
		return StockLevelLow
	default:
		return StockLevelOK
	}
}
