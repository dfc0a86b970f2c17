package cache

import (
	"context"
	"testing"
	"time"

	"github.com/suchimauz/photographer-availability-resolver/internal/adapters/out/logger"
	"github.com/suchimauz/photographer-availability-resolver/internal/config"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/domain"
)

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time {
	return c.current
}

func newTestCache(t *testing.T, size int) (*CacheAdapter, *fakeClock) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Cache.Size = size
	cfg.Cache.TTL = 5 * time.Minute

	adapter, err := NewCacheAdapter(cfg, logger.NewNopLogger())
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}

	clock := &fakeClock{current: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
	adapter.now = clock.now

	return adapter, clock
}

var (
	day     = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	nextDay = day.AddDate(0, 0, 1)
	slots   = []domain.AvailabilitySlot{{StartTime: "09:00", EndTime: "12:00"}}
)

func TestDaySlotsStoreAndGet(t *testing.T) {
	adapter, _ := newTestCache(t, 10)
	ctx := context.Background()

	if _, ok := adapter.GetDaySlots(ctx, 5, day); ok {
		t.Fatal("empty cache must miss")
	}

	adapter.StoreDaySlots(ctx, 5, day, slots)

	got, ok := adapter.GetDaySlots(ctx, 5, day)
	if !ok || len(got) != 1 || got[0].StartTime != "09:00" {
		t.Fatalf("expected hit, got %v %+v", ok, got)
	}
	if _, ok := adapter.GetDaySlots(ctx, 5, nextDay); ok {
		t.Fatal("other date must miss")
	}
	if _, ok := adapter.GetDaySlots(ctx, 6, day); ok {
		t.Fatal("other photographer must miss")
	}

	// Изменение результата не портит запись
	got[0].StartTime = "10:00"
	again, _ := adapter.GetDaySlots(ctx, 5, day)
	if again[0].StartTime != "09:00" {
		t.Fatalf("cached entry was mutated: %+v", again)
	}
}

func TestDaySlotsEmptyListIsCached(t *testing.T) {
	adapter, _ := newTestCache(t, 10)
	ctx := context.Background()

	adapter.StoreDaySlots(ctx, 5, day, []domain.AvailabilitySlot{})

	got, ok := adapter.GetDaySlots(ctx, 5, day)
	if !ok || len(got) != 0 {
		t.Fatalf("expected cached empty list, got %v %+v", ok, got)
	}
}

func TestDaySlotsExpire(t *testing.T) {
	adapter, clock := newTestCache(t, 10)
	ctx := context.Background()

	adapter.StoreDaySlots(ctx, 5, day, slots)

	clock.current = clock.current.Add(4 * time.Minute)
	if _, ok := adapter.GetDaySlots(ctx, 5, day); !ok {
		t.Fatal("entry must be alive before ttl")
	}

	clock.current = clock.current.Add(2 * time.Minute)
	if _, ok := adapter.GetDaySlots(ctx, 5, day); ok {
		t.Fatal("entry must expire after ttl")
	}
	if adapter.Len() != 0 {
		t.Fatalf("expired entry must be removed, len=%d", adapter.Len())
	}
}

func TestRemoveExpired(t *testing.T) {
	adapter, clock := newTestCache(t, 10)
	ctx := context.Background()

	adapter.StoreDaySlots(ctx, 5, day, slots)
	clock.current = clock.current.Add(3 * time.Minute)
	adapter.StoreDaySlots(ctx, 6, day, slots)
	clock.current = clock.current.Add(3 * time.Minute)

	if removed := adapter.RemoveExpired(); removed != 1 {
		t.Fatalf("expected 1 removed entry, got %d", removed)
	}
	if _, ok := adapter.GetDaySlots(ctx, 6, day); !ok {
		t.Fatal("fresh entry must survive cleanup")
	}
}

func TestInvalidatePhotographer(t *testing.T) {
	adapter, _ := newTestCache(t, 10)
	ctx := context.Background()

	adapter.StoreDaySlots(ctx, 5, day, slots)
	adapter.StoreDaySlots(ctx, 5, nextDay, slots)
	adapter.StoreDaySlots(ctx, 55, day, slots)

	adapter.InvalidatePhotographer(ctx, 5)

	if _, ok := adapter.GetDaySlots(ctx, 5, day); ok {
		t.Fatal("photographer 5 must be invalidated")
	}
	if _, ok := adapter.GetDaySlots(ctx, 5, nextDay); ok {
		t.Fatal("all dates of photographer 5 must be invalidated")
	}
	if _, ok := adapter.GetDaySlots(ctx, 55, day); !ok {
		t.Fatal("photographer 55 must not be affected by prefix of 5")
	}
}

func TestInvalidateAll(t *testing.T) {
	adapter, _ := newTestCache(t, 10)
	ctx := context.Background()

	adapter.StoreDaySlots(ctx, 5, day, slots)
	adapter.StoreDaySlots(ctx, 6, day, slots)
	adapter.InvalidateAll(ctx)

	if adapter.Len() != 0 {
		t.Fatalf("expected empty cache, len=%d", adapter.Len())
	}
}

func TestLRUEviction(t *testing.T) {
	adapter, _ := newTestCache(t, 2)
	ctx := context.Background()

	adapter.StoreDaySlots(ctx, 1, day, slots)
	adapter.StoreDaySlots(ctx, 2, day, slots)
	adapter.GetDaySlots(ctx, 1, day)
	adapter.StoreDaySlots(ctx, 3, day, slots)

	if _, ok := adapter.GetDaySlots(ctx, 2, day); ok {
		t.Fatal("least recently used entry must be evicted")
	}
	if _, ok := adapter.GetDaySlots(ctx, 1, day); !ok {
		t.Fatal("recently used entry must stay")
	}
}

func TestJanitorStartStop(t *testing.T) {
	adapter, _ := newTestCache(t, 10)

	if err := adapter.StartJanitor(); err != nil {
		t.Fatalf("start janitor: %v", err)
	}
	adapter.StopJanitor()
	adapter.StopJanitor()
}

func TestNewCacheAdapterInvalidSize(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Size = 0

	if _, err := NewCacheAdapter(cfg, logger.NewNopLogger()); err == nil {
		t.Fatal("expected error for zero size")
	}
}
