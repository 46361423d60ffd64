package shop

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eazybuy/storefront/internal/domain"
)

// CartLine is a cart item with its product detail and computed line total.
type CartLine struct {
	ID       int64           `json:"id"`
	Product  domain.Product  `json:"product"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

// CartView is the serialized cart: items plus the computed cart total.
type CartView struct {
	ID    int64           `json:"id"`
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// CartService resolves the active cart for a caller and applies item
// mutations with quantity-merging semantics.
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// ResolveCart fetches or lazily creates the cart keyed by owner. Concurrent
// first-touch calls race on the unique owner index; the loser re-reads the
// winner's row.
func (s *CartService) ResolveCart(ctx context.Context, owner CartOwner) (*domain.Cart, error) {
	db := s.db.WithContext(ctx)
	cond, arg := owner.where()

	var cart domain.Cart
	err := db.Where(cond, arg).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "query cart")
	}

	cart = owner.newCart()
	if err := db.Create(&cart).Error; err == nil {
		return &cart, nil
	}
	if err := db.Where(cond, arg).First(&cart).Error; err != nil {
		return nil, errors.Wrap(err, "get or create cart")
	}
	return &cart, nil
}

// GetCart returns the current cart view, creating the cart if needed.
func (s *CartService) GetCart(ctx context.Context, owner CartOwner) (*CartView, error) {
	cart, err := s.ResolveCart(ctx, owner)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cart.ID)
}

// AddItem adds quantity of a product to the cart. An existing row for the
// same product is incremented, not overwritten.
func (s *CartService) AddItem(ctx context.Context, owner CartOwner, productID int64, quantity int) (*CartView, error) {
	if quantity < 1 {
		quantity = 1
	}
	db := s.db.WithContext(ctx)

	var product domain.Product
	if err := db.Where("id = ?", productID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errors.Wrap(err, "query product")
	}

	cart, err := s.ResolveCart(ctx, owner)
	if err != nil {
		return nil, err
	}

	// Merge via upsert on the (cart_id, product_id) unique index so two
	// concurrent adds both land as increments.
	item := domain.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_item.quantity + ?", quantity),
			"updated_at": time.Now(),
		}),
	}).Create(&item).Error
	if err != nil {
		return nil, errors.Wrap(err, "add cart item")
	}

	s.touch(db, cart.ID)
	return s.view(ctx, cart.ID)
}

// UpdateItem sets the quantity of an existing cart item exactly. A quantity
// of zero or less removes the item.
func (s *CartService) UpdateItem(ctx context.Context, owner CartOwner, productID int64, quantity int) (*CartView, error) {
	db := s.db.WithContext(ctx)
	cart, err := s.ResolveCart(ctx, owner)
	if err != nil {
		return nil, err
	}

	var item domain.CartItem
	err = db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotInCart
		}
		return nil, errors.Wrap(err, "query cart item")
	}

	if quantity <= 0 {
		if err := db.Delete(&domain.CartItem{}, item.ID).Error; err != nil {
			return nil, errors.Wrap(err, "delete cart item")
		}
	} else {
		item.Quantity = quantity
		item.UpdatedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			return nil, errors.Wrap(err, "update cart item")
		}
	}

	s.touch(db, cart.ID)
	return s.view(ctx, cart.ID)
}

// RemoveItem deletes a cart item.
func (s *CartService) RemoveItem(ctx context.Context, owner CartOwner, productID int64) (*CartView, error) {
	db := s.db.WithContext(ctx)
	cart, err := s.ResolveCart(ctx, owner)
	if err != nil {
		return nil, err
	}

	res := db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).Delete(&domain.CartItem{})
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "delete cart item")
	}
	if res.RowsAffected == 0 {
		return nil, ErrItemNotInCart
	}

	s.touch(db, cart.ID)
	return s.view(ctx, cart.ID)
}

// ClearCart removes all items. An already empty cart is a valid end state.
func (s *CartService) ClearCart(ctx context.Context, owner CartOwner) (*CartView, error) {
	db := s.db.WithContext(ctx)
	cart, err := s.ResolveCart(ctx, owner)
	if err != nil {
		return nil, err
	}
	if err := db.Where("cart_id = ?", cart.ID).Delete(&domain.CartItem{}).Error; err != nil {
		return nil, errors.Wrap(err, "clear cart")
	}
	s.touch(db, cart.ID)
	return s.view(ctx, cart.ID)
}

func (s *CartService) touch(db *gorm.DB, cartID int64) {
	db.Model(&domain.Cart{}).Where("id = ?", cartID).Update("updated_at", time.Now())
}

func (s *CartService) view(ctx context.Context, cartID int64) (*CartView, error) {
	db := s.db.WithContext(ctx)
	var items []domain.CartItem
	if err := db.Where("cart_id = ?", cartID).Preload("Product").Order("id ASC").Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "load cart items")
	}

	view := &CartView{ID: cartID, Items: make([]CartLine, 0, len(items)), Total: decimal.Zero}
	for _, item := range items {
		lineTotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.Items = append(view.Items, CartLine{
			ID:       item.ID,
			Product:  item.Product,
			Quantity: item.Quantity,
			Total:    lineTotal,
		})
		view.Total = view.Total.Add(lineTotal)
	}
	return view, nil
}
