package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. Prices are fixed-precision decimals with at
// most two fractional digits.
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"index;size:200" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(20,2)" json:"price"`
	Image       string          `gorm:"size:1024" json:"image"` // URL to product image (optional)
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "product"
}
