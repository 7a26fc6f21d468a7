package repository

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	Get(key, defaultValue string) (string, error)
	Set(key, value string) error
}

// CachedSettingsRepository fronts the settings table with a short TTL cache.
// Settings are read on every inbound event, so even a small TTL takes the
// table off the hot path. Set writes through the cache, keeping reads after
// a successful admin action consistent on this process.
type CachedSettingsRepository struct {
	db          *gorm.DB
	cache       sync.Map
	enableCache bool
}

type cachedValue struct {
	value     string
	found     bool
	expiresAt time.Time
}

const cacheTTL = 30 * time.Second

func NewSettingsRepository(db *gorm.DB, enableCache bool) SettingsRepository {
	return &CachedSettingsRepository{
		db:          db,
		enableCache: enableCache,
	}
}

func (r *CachedSettingsRepository) Get(key, defaultValue string) (string, error) {
	if r.enableCache {
		if val, ok := r.cache.Load(key); ok {
			entry := val.(*cachedValue)
			if time.Now().Before(entry.expiresAt) {
				if !entry.found {
					return defaultValue, nil
				}
				return entry.value, nil
			}
			r.cache.Delete(key)
		}
	}

	var setting Setting
	err := r.db.First(&setting, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if r.enableCache {
				r.cache.Store(key, &cachedValue{found: false, expiresAt: time.Now().Add(cacheTTL)})
			}
			return defaultValue, nil
		}
		return defaultValue, fmt.Errorf("failed to get setting %q: %w", key, err)
	}

	if r.enableCache {
		r.cache.Store(key, &cachedValue{value: setting.Value, found: true, expiresAt: time.Now().Add(cacheTTL)})
	}
	return setting.Value, nil
}

func (r *CachedSettingsRepository) Set(key, value string) error {
	setting := Setting{Key: key, Value: value}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}

	if r.enableCache {
		r.cache.Store(key, &cachedValue{value: value, found: true, expiresAt: time.Now().Add(cacheTTL)})
	}
	return nil
}
