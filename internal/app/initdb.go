package app

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/eazybuy/storefront/internal/domain"
)

type settingSchema struct {
	Type        string
	Name        string
	Default     string
	Description string
}

var settingSchemas = []settingSchema{
	{"auth", "token_expire_hours", "720", "Lifetime of issued auth tokens in hours"},
	{"cart", "guest_cart_ttl_days", "30", "Days of inactivity before a guest cart is purged"},
	{"catalog", "popular_limit", "8", "Number of products returned by the popular endpoint"},
}

// checkSettings initializes missing entries of the settings table
func (a *Application) checkSettings() {
	for sortid, schema := range settingSchemas {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", schema.Type, schema.Name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				Sort:   sortid,
				Type:   schema.Type,
				Name:   schema.Name,
				Value:  schema.Default,
				Remark: schema.Description,
			})
			zap.L().Info("initialized config",
				zap.String("key", schema.Type+"."+schema.Name),
				zap.String("default", schema.Default))
		}
	}
}

// checkProducts initializes sample catalog products on an empty store
func (a *Application) checkProducts() {
	defaultProducts := []domain.Product{
		{Name: "Smart Watch Series 7", Price: decimal.NewFromFloat(399.00)},
		{Name: "Urban Explorer Backpack", Price: decimal.NewFromFloat(89.50)},
		{Name: "Instax Mini 11 Camera", Price: decimal.NewFromFloat(69.00)},
		{Name: "Nike Metcon X Shoes", Price: decimal.NewFromFloat(120.00)},
		{Name: "Sony XM4 Headphones", Price: decimal.NewFromFloat(299.00)},
		{Name: "Leather Satchel Bag", Price: decimal.NewFromFloat(150.00)},
	}

	for _, p := range defaultProducts {
		var count int64
		a.gormDB.Model(&domain.Product{}).Where("name = ?", p.Name).Count(&count)
		if count == 0 {
			p.CreatedAt = time.Now()
			p.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("failed to create default product", zap.String("name", p.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default product", zap.String("name", p.Name))
			}
		}
	}
}
