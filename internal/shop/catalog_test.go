package shop

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogService(db *gorm.DB) *CatalogService {
	return NewCatalogService(db, staticSettings{"catalog.popular_limit": 2})
}

func TestCatalogSearchCaseInsensitive(t *testing.T) {
	db := setupDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()
	seedProduct(t, db, "Smart Watch Series 7", "399.00")
	seedProduct(t, db, "Wireless Earbuds", "89.99")
	seedProduct(t, db, "Smartphone Stand", "15.00")

	products, total, err := svc.List(ctx, CatalogQuery{Search: "SMART"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.Contains(t, []string{"Smart Watch Series 7", "Smartphone Stand"}, p.Name)
	}
}

func TestCatalogSearchReturnsAllMatches(t *testing.T) {
	db := setupDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		seedProduct(t, db, fmt.Sprintf("Gadget %02d", i), "9.99")
	}
	seedProduct(t, db, "Unrelated", "1.00")

	// search is not paginated; more than a page of hits all come back
	products, err := svc.Search(ctx, "gadget")
	require.NoError(t, err)
	assert.Len(t, products, 25)

	products, err = svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCatalogSortByPrice(t *testing.T) {
	db := setupDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()
	seedProduct(t, db, "Mid", "50.00")
	seedProduct(t, db, "Cheap", "5.00")
	seedProduct(t, db, "Expensive", "500.00")

	products, _, err := svc.List(ctx, CatalogQuery{Sort: "price", Order: "asc"})
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Cheap", products[0].Name)
	assert.Equal(t, "Expensive", products[2].Name)
}

func TestCatalogSortWhitelistFallback(t *testing.T) {
	db := setupDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()
	seedProduct(t, db, "Item", "1.00")

	// an unknown sort column must not leak into the SQL
	products, _, err := svc.List(ctx, CatalogQuery{Sort: "price; DROP TABLE product"})
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestCatalogPagination(t *testing.T) {
	db := setupDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()
	seedProduct(t, db, "Item A", "1.00")
	seedProduct(t, db, "Item B", "2.00")
	seedProduct(t, db, "Item C", "3.00")

	products, total, err := svc.List(ctx, CatalogQuery{Sort: "name", Order: "asc", Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, products, 1)
	assert.Equal(t, "Item C", products[0].Name)
}

func TestCatalogPopularHonorsLimit(t *testing.T) {
	db := setupDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()
	seedProduct(t, db, "Item A", "1.00")
	seedProduct(t, db, "Item B", "2.00")
	seedProduct(t, db, "Item C", "3.00")

	products, err := svc.Popular(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestCatalogGetMissing(t *testing.T) {
	db := setupDB(t)
	svc := newCatalogService(db)

	_, err := svc.Get(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogCreateValidation(t *testing.T) {
	db := setupDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, ProductInput{Name: "", Price: decimal.NewFromInt(1)})
	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "name")

	_, err = svc.Create(ctx, ProductInput{Name: "Item", Price: decimal.NewFromInt(-1)})
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "price")

	_, err = svc.Create(ctx, ProductInput{Name: "Item", Price: decimal.RequireFromString("1.999")})
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "price")
}

func TestCatalogCreateUpdateDelete(t *testing.T) {
	db := setupDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, ProductInput{
		Name:  "  Laptop Pro  ",
		Price: decimal.RequireFromString("1299.99"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Laptop Pro", created.Name)
	assert.NotZero(t, created.ID)

	updated, err := svc.Update(ctx, created.ID, ProductInput{
		Name:  "Laptop Pro Max",
		Price: decimal.RequireFromString("1499.99"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Laptop Pro Max", updated.Name)
	assert.True(t, updated.Price.Equal(decimalStr("1499.99")))

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrProductNotFound)
}
