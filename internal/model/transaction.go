package model

import "time"

// Transaction is a recorded sale. TotalPrice and Profit are snapshots taken at sale
// time and are never recomputed from the product's current price or cost.
type Transaction struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID       uint      `gorm:"not null;index" json:"product_id"`
	Product         *Product  `gorm:"foreignKey:ProductID;references:ID" json:"-"`
	Quantity        int       `gorm:"not null" json:"quantity"`
	TotalPrice      float64   `gorm:"not null" json:"total_price"`
	Profit          float64   `gorm:"not null" json:"profit"`
	TransactionDate time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"transaction_date"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// TransactionView is a transaction joined with the name of its product.
type TransactionView struct {
	ID              uint      `json:"id"`
	ProductID       uint      `json:"product_id"`
	ProductName     string    `json:"product_name"`
	Quantity        int       `json:"quantity"`
	TotalPrice      float64   `json:"total_price"`
	Profit          float64   `json:"profit"`
	TransactionDate time.Time `json:"transaction_date"`
}
