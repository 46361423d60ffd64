package shop

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/eazybuy/storefront/internal/domain"
)

// Settings exposes the runtime-tunable values services read from the
// settings table.
type Settings interface {
	GetSettingsInt64Value(category, key string) int64
}

const defaultPopularLimit = 8

// CatalogQuery carries list filters: case-insensitive name search, a
// whitelisted sort column and pagination.
type CatalogQuery struct {
	Search   string
	Sort     string
	Order    string
	Page     int
	PageSize int
}

type CatalogService struct {
	db       *gorm.DB
	settings Settings
}

func NewCatalogService(db *gorm.DB, settings Settings) *CatalogService {
	return &CatalogService{db: db, settings: settings}
}

// whitelist allowed sort columns to avoid SQL injection
var catalogSortColumns = map[string]string{
	"price":      "price",
	"created_at": "created_at",
	"name":       "name",
}

// List returns a product page, newest first by default.
func (s *CatalogService) List(ctx context.Context, query CatalogQuery) ([]domain.Product, int64, error) {
	db := s.db.WithContext(ctx).Model(&domain.Product{})

	if q := strings.TrimSpace(query.Search); q != "" {
		if strings.EqualFold(db.Name(), "postgres") {
			db = db.Where("name ILIKE ?", "%"+q+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}

	sortCol, ok := catalogSortColumns[query.Sort]
	if !ok {
		sortCol = "created_at"
	}
	order := strings.ToUpper(strings.TrimSpace(query.Order))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count products")
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 || pageSize > 500 {
		pageSize = 20
	}

	var products []domain.Product
	err := db.Order(sortCol + " " + order).Offset((page - 1) * pageSize).Limit(pageSize).Find(&products).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "query products")
	}
	return products, total, nil
}

// Search returns every product whose name contains the query,
// case-insensitive, newest first. Unlike List it is not paginated.
func (s *CatalogService) Search(ctx context.Context, q string) ([]domain.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []domain.Product{}, nil
	}

	db := s.db.WithContext(ctx)
	if strings.EqualFold(db.Name(), "postgres") {
		db = db.Where("name ILIKE ?", "%"+q+"%")
	} else {
		db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var products []domain.Product
	if err := db.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "search products")
	}
	return products, nil
}

// Popular returns the first N products in default collection order. Not a
// ranking, just a storefront placeholder.
func (s *CatalogService) Popular(ctx context.Context) ([]domain.Product, error) {
	limit := int(s.settings.GetSettingsInt64Value("catalog", "popular_limit"))
	if limit <= 0 {
		limit = defaultPopularLimit
	}
	var products []domain.Product
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&products).Error
	if err != nil {
		return nil, errors.Wrap(err, "query popular products")
	}
	return products, nil
}

// Get returns a single product by ID.
func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errors.Wrap(err, "query product")
	}
	return &product, nil
}

// ProductInput is the payload for catalog edits.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
}

func (in ProductInput) validate() (domain.Product, error) {
	fields := FieldErrors{}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		fields["name"] = "Name is required"
	}
	if in.Price.IsNegative() {
		fields["price"] = "Price must not be negative"
	} else if !in.Price.Equal(in.Price.Round(2)) {
		fields["price"] = "Price allows at most two decimal places"
	}
	if len(fields) > 0 {
		return domain.Product{}, fields
	}
	return domain.Product{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Image:       strings.TrimSpace(in.Image),
	}, nil
}

// Create adds a catalog product.
func (s *CatalogService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	product, err := in.validate()
	if err != nil {
		return nil, err
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, errors.Wrap(err, "create product")
	}
	return &product, nil
}

// Update replaces a product's editable fields.
func (s *CatalogService) Update(ctx context.Context, id int64, in ProductInput) (*domain.Product, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	product, err := in.validate()
	if err != nil {
		return nil, err
	}
	existing.Name = product.Name
	existing.Description = product.Description
	existing.Price = product.Price
	existing.Image = product.Image
	existing.UpdatedAt = time.Now()
	if err := s.db.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, errors.Wrap(err, "update product")
	}
	return existing, nil
}

// Delete removes a product from the catalog.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&domain.Product{}, id).Error; err != nil {
		return errors.Wrap(err, "delete product")
	}
	return nil
}
