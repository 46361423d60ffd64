package shop

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eazybuy/storefront/internal/domain"
	"github.com/eazybuy/storefront/pkg/common"
)

// OrderService converts a non-empty cart into an immutable price-locked
// order and empties the cart in the same transaction.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CreateOrder snapshots the user's cart into an order: total, line items
// with current product prices, then clears the cart. The whole sequence is
// one transaction with the cart row locked, so a concurrent attempt on the
// same cart waits and then observes ErrCartEmpty.
func (s *OrderService) CreateOrder(ctx context.Context, userID int64, shippingAddress string) (*domain.Order, error) {
	shippingAddress = strings.TrimSpace(shippingAddress)
	if shippingAddress == "" {
		return nil, ErrShippingAddress
	}

	var order domain.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("user_id = ?", userID)
		// sqlite has no FOR UPDATE; its single-writer lock covers the race.
		if strings.EqualFold(tx.Name(), "postgres") {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var cart domain.Cart
		if err := q.First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartEmpty
			}
			return errors.Wrap(err, "query cart")
		}

		var items []domain.CartItem
		if err := tx.Where("cart_id = ?", cart.ID).Preload("Product").Order("id ASC").Find(&items).Error; err != nil {
			return errors.Wrap(err, "load cart items")
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		total := decimal.Zero
		for _, item := range items {
			total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		order = domain.Order{
			ID:              common.UUIDint64(),
			UserID:          userID,
			Status:          domain.OrderStatusPending,
			TotalAmount:     total,
			ShippingAddress: shippingAddress,
			CreatedAt:       time.Now(),
			UpdatedAt:       time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return errors.Wrap(err, "create order")
		}

		orderItems := make([]domain.OrderItem, 0, len(items))
		for _, item := range items {
			orderItems = append(orderItems, domain.OrderItem{
				ID:        common.UUIDint64(),
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
				CreatedAt: time.Now(),
			})
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return errors.Wrap(err, "create order items")
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&domain.CartItem{}).Error; err != nil {
			return errors.Wrap(err, "clear cart")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(ctx, userID, order.ID)
}

// ListOrders returns all orders owned by the user, newest first, with
// nested items.
func (s *OrderService) ListOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	var orders []domain.Order
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, errors.Wrap(err, "query orders")
	}
	return orders, nil
}

// GetOrder returns one order. Ownership is part of the lookup: an order
// that exists but belongs to someone else is indistinguishable from a
// missing one.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	var order domain.Order
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		Preload("Items.Product").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, errors.Wrap(err, "query order")
	}
	return &order, nil
}
