package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order is an immutable checkout snapshot; total_amount is locked at
// creation time and never recomputed. Only the status field changes after
// creation.
type Order struct {
	ID              int64           `json:"id,string"`
	UserID          int64           `gorm:"index;not null" json:"user_id,string"`
	Status          string          `gorm:"size:32;default:'pending'" json:"status"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(20,2)" json:"total_amount"`
	ShippingAddress string          `gorm:"type:text" json:"shipping_address"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "store_order"
}

// OrderItem copies quantity and the product price at order-creation time so
// order history is independent of later price edits.
type OrderItem struct {
	ID        int64           `json:"id,string"`
	OrderID   int64           `gorm:"index;not null" json:"order_id,string"`
	ProductID int64           `gorm:"not null" json:"product_id"`
	Product   Product         `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(20,2)" json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName Specify table name
func (OrderItem) TableName() string {
	return "store_order_item"
}
