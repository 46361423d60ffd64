package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/eazybuy/storefront/internal/domain"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@hourly", func() {
		a.PurgeExpiredTokens()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.PurgeStaleGuestCarts()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// PurgeExpiredTokens removes auth tokens past their expiry. A fresh token
// is minted on the next login.
func (a *Application) PurgeExpiredTokens() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	res := a.gormDB.Where("expires_at < ?", time.Now()).Delete(&domain.SysUserToken{})
	if res.Error != nil {
		zap.L().Error("failed to purge expired tokens", zap.Error(res.Error))
		return
	}
	if res.RowsAffected > 0 {
		zap.L().Info("purged expired tokens", zap.Int64("count", res.RowsAffected))
	}
}

// PurgeStaleGuestCarts deletes anonymous carts whose session has gone quiet
// longer than the configured TTL, items first.
func (a *Application) PurgeStaleGuestCarts() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	ttlDays := a.GetSettingsInt64Value("cart", "guest_cart_ttl_days")
	if ttlDays <= 0 {
		ttlDays = 30
	}
	cutoff := time.Now().Add(-time.Duration(ttlDays) * 24 * time.Hour)

	var cartIDs []int64
	a.gormDB.Model(&domain.Cart{}).
		Where("session_id IS NOT NULL AND updated_at < ?", cutoff).
		Pluck("id", &cartIDs)
	if len(cartIDs) == 0 {
		return
	}

	if err := a.gormDB.Where("cart_id IN ?", cartIDs).Delete(&domain.CartItem{}).Error; err != nil {
		zap.L().Error("failed to purge guest cart items", zap.Error(err))
		return
	}
	if err := a.gormDB.Where("id IN ?", cartIDs).Delete(&domain.Cart{}).Error; err != nil {
		zap.L().Error("failed to purge guest carts", zap.Error(err))
		return
	}
	zap.L().Info("purged stale guest carts", zap.Int("count", len(cartIDs)))
}
