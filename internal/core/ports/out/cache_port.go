package out

import (
	"context"
	"time"

	"github.com/suchimauz/photographer-availability-resolver/internal/core/domain"
)

type CachePort interface {
	// Кэширование слотов фотографа на дату
	GetDaySlots(ctx context.Context, photographerID domain.PhotographerID, date time.Time) ([]domain.AvailabilitySlot, bool)
	StoreDaySlots(ctx context.Context, photographerID domain.PhotographerID, date time.Time, slots []domain.AvailabilitySlot)

	InvalidatePhotographer(ctx context.Context, photographerID domain.PhotographerID)
	InvalidateAll(ctx context.Context)
}
