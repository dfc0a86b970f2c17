package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/robfig/cron/v3"
	"github.com/suchimauz/photographer-availability-resolver/internal/config"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/domain"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/ports/out"
	"github.com/suchimauz/photographer-availability-resolver/internal/utils"
)

const janitorSchedule = "@every 1m"

type DaySlotsCacheEntry struct {
	Slots     []domain.AvailabilitySlot
	ExpiresAt time.Time
}

type CacheAdapter struct {
	cache  *lru.Cache[string, *DaySlotsCacheEntry]
	ttl    time.Duration
	mu     sync.RWMutex
	logger out.LoggerPort

	janitor *cron.Cron
	now     func() time.Time
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	cache, err := lru.New[string, *DaySlotsCacheEntry](cfg.Cache.Size)
	if err != nil {
		logger.Error("cache.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.Size,
		})
		return nil, err
	}

	return &CacheAdapter{
		cache:  cache,
		ttl:    cfg.Cache.TTL,
		logger: logger.WithModule("CacheAdapter"),
		now:    time.Now,
	}, nil
}

// Ключ записи: "<photographerId>|<YYYY-MM-DD>"
func daySlotsKey(photographerID domain.PhotographerID, date time.Time) string {
	return photographerKeyPrefix(photographerID) + utils.FormatDate(date)
}

func photographerKeyPrefix(photographerID domain.PhotographerID) string {
	return photographerID.String() + "|"
}

func (c *CacheAdapter) GetDaySlots(ctx context.Context, photographerID domain.PhotographerID, date time.Time) ([]domain.AvailabilitySlot, bool) {
	key := daySlotsKey(photographerID, date)

	c.mu.RLock()
	entry, exists := c.cache.Get(key)
	c.mu.RUnlock()

	if !exists {
		c.logger.Debug("cache.day_slots.get.miss", out.LogFields{
			"key": key,
		})
		return nil, false
	}

	if c.now().After(entry.ExpiresAt) {
		c.mu.Lock()
		c.cache.Remove(key)
		c.mu.Unlock()

		c.logger.Debug("cache.day_slots.get.expired", out.LogFields{
			"key":       key,
			"expiresAt": entry.ExpiresAt,
		})
		return nil, false
	}

	c.logger.Debug("cache.day_slots.get.hit", out.LogFields{
		"key":        key,
		"slotsCount": len(entry.Slots),
	})

	// Отдаем копию, чтобы вызывающий не мог испортить запись
	return append([]domain.AvailabilitySlot(nil), entry.Slots...), true
}

func (c *CacheAdapter) StoreDaySlots(ctx context.Context, photographerID domain.PhotographerID, date time.Time, slots []domain.AvailabilitySlot) {
	key := daySlotsKey(photographerID, date)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.day_slots.store", out.LogFields{
		"key":        key,
		"slotsCount": len(slots),
	})

	c.cache.Add(key, &DaySlotsCacheEntry{
		Slots:     append([]domain.AvailabilitySlot(nil), slots...),
		ExpiresAt: c.now().Add(c.ttl),
	})
}

func (c *CacheAdapter) InvalidatePhotographer(ctx context.Context, photographerID domain.PhotographerID) {
	prefix := photographerKeyPrefix(photographerID)

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for _, key := range c.cache.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Remove(key)
			removed++
		}
	}

	c.logger.Debug("cache.day_slots.invalidate", out.LogFields{
		"photographerId": photographerID,
		"removed":        removed,
	})
}

func (c *CacheAdapter) InvalidateAll(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Purge()
	c.logger.Debug("cache.day_slots.purge", out.LogFields{})
}

func (c *CacheAdapter) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache.Len()
}

// RemoveExpired удаляет записи с истекшим TTL, возвращает количество удаленных
func (c *CacheAdapter) RemoveExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for _, key := range c.cache.Keys() {
		entry, ok := c.cache.Peek(key)
		if ok && now.After(entry.ExpiresAt) {
			c.cache.Remove(key)
			removed++
		}
	}

	return removed
}

// StartJanitor раз в минуту чистит просроченные записи
func (c *CacheAdapter) StartJanitor() error {
	janitor := cron.New()
	_, err := janitor.AddFunc(janitorSchedule, func() {
		removed := c.RemoveExpired()
		if removed > 0 {
			c.logger.Debug("cache.janitor.removed", out.LogFields{
				"removed": removed,
			})
		}
	})
	if err != nil {
		c.logger.Error("cache.janitor.start_failed", out.LogFields{
			"error": err.Error(),
		})
		return err
	}

	janitor.Start()
	c.janitor = janitor

	c.logger.Info("cache.janitor.started", out.LogFields{
		"schedule": janitorSchedule,
		"ttl":      c.ttl.String(),
	})

	return nil
}

func (c *CacheAdapter) StopJanitor() {
	if c.janitor == nil {
		return
	}
	<-c.janitor.Stop().Done()
	c.janitor = nil
}
