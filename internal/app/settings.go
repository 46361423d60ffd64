package app

import (
	"sync"
	"time"

	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/eazybuy/storefront/internal/domain"
)

const settingsCacheTTL = 30 * time.Second

type cachedSetting struct {
	value    string
	loadedAt time.Time
}

// ConfigManager reads settings from sys_config with a short-lived cache so
// hot paths do not hit the database on every request.
type ConfigManager struct {
	db    *gorm.DB
	mu    sync.RWMutex
	cache map[string]cachedSetting
}

func NewConfigManager(a *Application) *ConfigManager {
	return &ConfigManager{db: a.gormDB, cache: make(map[string]cachedSetting)}
}

func (m *ConfigManager) get(category, key string) string {
	cacheKey := category + "." + key

	m.mu.RLock()
	if entry, ok := m.cache[cacheKey]; ok && time.Since(entry.loadedAt) < settingsCacheTTL {
		m.mu.RUnlock()
		return entry.value
	}
	m.mu.RUnlock()

	var cfg domain.SysConfig
	if err := m.db.Where("type = ? and name = ?", category, key).First(&cfg).Error; err != nil {
		return ""
	}

	m.mu.Lock()
	m.cache[cacheKey] = cachedSetting{value: cfg.Value, loadedAt: time.Now()}
	m.mu.Unlock()
	return cfg.Value
}

func (m *ConfigManager) GetString(category, key string) string {
	return m.get(category, key)
}

func (m *ConfigManager) GetInt64(category, key string) int64 {
	return cast.ToInt64(m.get(category, key))
}

func (m *ConfigManager) GetBool(category, key string) bool {
	return cast.ToBool(m.get(category, key))
}
