package domain

import (
	"time"
)

// Cart is owned by exactly one of an authenticated user or an anonymous
// session. The two columns are nullable with unique indexes; the shop layer
// only constructs carts through its CartOwner variant, so a row never has
// both or neither set.
type Cart struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *int64     `gorm:"uniqueIndex" json:"user_id,omitempty"`
	SessionID *string    `gorm:"uniqueIndex;size:64" json:"session_id,omitempty"`
	Items     []CartItem `gorm:"foreignKey:CartID" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName Specify table name
func (Cart) TableName() string {
	return "cart"
}

// CartItem holds at most one row per (cart, product); repeated adds merge
// into the quantity instead of duplicating the row.
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64     `gorm:"index;uniqueIndex:idx_cart_product;not null" json:"cart_id"`
	ProductID int64     `gorm:"uniqueIndex:idx_cart_product;not null" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (CartItem) TableName() string {
	return "cart_item"
}
