package shop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eazybuy/storefront/internal/domain"
)

func TestResolveCartReusesExisting(t *testing.T) {
	db := setupDB(t)
	svc := NewCartService(db)
	ctx := context.Background()

	first, err := svc.ResolveCart(ctx, UserOwner(7))
	require.NoError(t, err)
	second, err := svc.ResolveCart(ctx, UserOwner(7))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&domain.Cart{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolveCartSeparatesOwners(t *testing.T) {
	db := setupDB(t)
	svc := NewCartService(db)
	ctx := context.Background()

	userCart, err := svc.ResolveCart(ctx, UserOwner(1))
	require.NoError(t, err)
	guestCart, err := svc.ResolveCart(ctx, SessionOwner("sess-abc"))
	require.NoError(t, err)
	assert.NotEqual(t, userCart.ID, guestCart.ID)

	require.NotNil(t, userCart.UserID)
	assert.Nil(t, userCart.SessionID)
	require.NotNil(t, guestCart.SessionID)
	assert.Nil(t, guestCart.UserID)
}

func TestAddItemMergesQuantity(t *testing.T) {
	db := setupDB(t)
	svc := NewCartService(db)
	ctx := context.Background()
	product := seedProduct(t, db, "Wireless Earbuds", "89.99")
	owner := UserOwner(1)

	_, err := svc.AddItem(ctx, owner, product.ID, 2)
	require.NoError(t, err)
	view, err := svc.AddItem(ctx, owner, product.ID, 3)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)
	assert.True(t, view.Total.Equal(product.Price.Mul(decimalInt(5))),
		"total = %s", view.Total)

	var count int64
	require.NoError(t, db.Model(&domain.CartItem{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	db := setupDB(t)
	svc := NewCartService(db)
	ctx := context.Background()
	product := seedProduct(t, db, "USB-C Cable", "9.50")

	view, err := svc.AddItem(ctx, UserOwner(1), product.ID, 0)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := setupDB(t)
	svc := NewCartService(db)

	_, err := svc.AddItem(context.Background(), UserOwner(1), 9999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	var count int64
	require.NoError(t, db.Model(&domain.Cart{}).Count(&count).Error)
	assert.EqualValues(t, 0, count, "no cart should be created for a failed add")
}

func TestUpdateItemSetsExactQuantity(t *testing.T) {
	db := setupDB(t)
	svc := NewCartService(db)
	ctx := context.Background()
	product := seedProduct(t, db, "Notebook", "4.00")
	owner := SessionOwner("sess-1")

	_, err := svc.AddItem(ctx, owner, product.ID, 5)
	require.NoError(t, err)
	view, err := svc.UpdateItem(ctx, owner, product.ID, 2)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
}

func TestUpdateItemZeroRemoves(t *testing.T) {
	db := setupDB(t)
	svc := NewCartService(db)
	ctx := context.Background()
	product := seedProduct(t, db, "Notebook", "4.00")
	owner := UserOwner(3)

	_, err := svc.AddItem(ctx, owner, product.ID, 5)
	require.NoError(t, err)

	view, err := svc.UpdateItem(ctx, owner, product.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Total.IsZero())

	view, err = svc.AddItem(ctx, owner, product.ID, 1)
	require.NoError(t, err)
	view, err = svc.UpdateItem(ctx, owner, product.ID, -4)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestUpdateItemNotInCart(t *testing.T) {
	db := setupDB(t)
	svc := NewCartService(db)
	product := seedProduct(t, db, "Notebook", "4.00")

	_, err := svc.UpdateItem(context.Background(), UserOwner(1), product.ID, 2)
	assert.ErrorIs(t, err, ErrItemNotInCart)
}

func TestRemoveItem(t *testing.T) {
	db := setupDB(t)
	svc := NewCartService(db)
	ctx := context.Background()
	a := seedProduct(t, db, "Item A", "1.00")
	b := seedProduct(t, db, "Item B", "2.00")
	owner := UserOwner(1)

	_, err := svc.AddItem(ctx, owner, a.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, owner, b.ID, 1)
	require.NoError(t, err)

	view, err := svc.RemoveItem(ctx, owner, a.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, b.ID, view.Items[0].Product.ID)

	_, err = svc.RemoveItem(ctx, owner, a.ID)
	assert.ErrorIs(t, err, ErrItemNotInCart)
}

func TestClearCartIdempotent(t *testing.T) {
	db := setupDB(t)
	svc := NewCartService(db)
	ctx := context.Background()
	product := seedProduct(t, db, "Item", "1.00")
	owner := SessionOwner("sess-2")

	_, err := svc.AddItem(ctx, owner, product.ID, 3)
	require.NoError(t, err)

	view, err := svc.ClearCart(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	view, err = svc.ClearCart(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Total.IsZero())
}

func TestGetCartComputesLineTotals(t *testing.T) {
	db := setupDB(t)
	svc := NewCartService(db)
	ctx := context.Background()
	a := seedProduct(t, db, "Item A", "10.00")
	b := seedProduct(t, db, "Item B", "2.50")
	owner := UserOwner(1)

	_, err := svc.AddItem(ctx, owner, a.ID, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, owner, b.ID, 2)
	require.NoError(t, err)

	view, err := svc.GetCart(ctx, owner)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.True(t, view.Items[0].Total.Equal(a.Price.Mul(decimalInt(2))))
	assert.True(t, view.Items[1].Total.Equal(b.Price.Mul(decimalInt(2))))
	assert.True(t, view.Total.Equal(decimalStr("25.00")), "total = %s", view.Total)
}
