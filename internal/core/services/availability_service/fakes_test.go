package availability_service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/suchimauz/photographer-availability-resolver/internal/adapters/out/logger"
	"github.com/suchimauz/photographer-availability-resolver/internal/config"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/domain"
)

var errBackendDown = errors.New("unexpected status code: 500")

type fakeBackend struct {
	mu sync.Mutex

	slots   map[domain.PhotographerID][]domain.AvailabilitySlot
	all     map[domain.PhotographerID][]domain.AvailabilitySlot
	errs    map[domain.PhotographerID]error
	panics  map[domain.PhotographerID]bool
	listErr error
	delay   time.Duration

	checkCalls  int
	listCalls   int
	inFlight    int
	maxInFlight int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		slots:  make(map[domain.PhotographerID][]domain.AvailabilitySlot),
		all:    make(map[domain.PhotographerID][]domain.AvailabilitySlot),
		errs:   make(map[domain.PhotographerID]error),
		panics: make(map[domain.PhotographerID]bool),
	}
}

func (f *fakeBackend) CheckAvailability(ctx context.Context, photographerID domain.PhotographerID, date time.Time) ([]domain.AvailabilitySlot, error) {
	f.mu.Lock()
	f.checkCalls++
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	delay := f.delay
	slots := append([]domain.AvailabilitySlot(nil), f.slots[photographerID]...)
	err := f.errs[photographerID]
	shouldPanic := f.panics[photographerID]
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if shouldPanic {
		panic("backend exploded")
	}
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (f *fakeBackend) ListAvailability(ctx context.Context, photographerID domain.PhotographerID) ([]domain.AvailabilitySlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.all[photographerID], nil
}

type fakeCache struct {
	mu          sync.Mutex
	entries     map[string][]domain.AvailabilitySlot
	invalidated []domain.PhotographerID
	purged      int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]domain.AvailabilitySlot)}
}

func fakeCacheKey(id domain.PhotographerID, date time.Time) string {
	return id.String() + "|" + date.Format("2006-01-02")
}

func (c *fakeCache) GetDaySlots(ctx context.Context, photographerID domain.PhotographerID, date time.Time) ([]domain.AvailabilitySlot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	slots, ok := c.entries[fakeCacheKey(photographerID, date)]
	return slots, ok
}

func (c *fakeCache) StoreDaySlots(ctx context.Context, photographerID domain.PhotographerID, date time.Time, slots []domain.AvailabilitySlot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fakeCacheKey(photographerID, date)] = slots
}

func (c *fakeCache) InvalidatePhotographer(ctx context.Context, photographerID domain.PhotographerID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, photographerID)
}

func (c *fakeCache) InvalidateAll(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purged++
}

func newTestConfig(maxConcurrency int) *config.Config {
	cfg := &config.Config{}
	cfg.Resolver.MaxConcurrency = maxConcurrency
	cfg.Resolver.NextTimesLimit = 3
	return cfg
}

func newTestService(backend *fakeBackend) *AvailabilityService {
	return NewAvailabilityService(backend, nil, logger.NewNopLogger(), newTestConfig(4))
}

func slot(start, end string, status domain.SlotStatus) domain.AvailabilitySlot {
	return domain.AvailabilitySlot{
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
}

var testDate = time.Date(2026, 10, 18, 0, 0, 0, 0, time.Local)
