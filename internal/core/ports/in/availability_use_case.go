package in

import (
	"context"
	"time"

	"github.com/suchimauz/photographer-availability-resolver/internal/core/domain"
)

type AvailabilityUseCase interface {
	// Слоты и время начала на дату
	GetPhotographerAvailability(ctx context.Context, photographerID domain.PhotographerID, date time.Time, photographerName string) domain.AvailabilityResult

	// Проверка доступности в конкретное время
	CheckPhotographerAvailabilityAtTime(ctx context.Context, photographerID domain.PhotographerID, date time.Time, selectedTime string, photographerName string) domain.TimeCheckResult

	// Пакетная проверка нескольких фотографов
	GetPhotographersAvailability(ctx context.Context, photographerIDs []domain.PhotographerID, date time.Time, selectedTime string, photographerNames map[domain.PhotographerID]string) domain.BatchResult

	// Инвалидация кэша по событиям об изменении доступности
	InvalidatePhotographerCache(ctx context.Context, photographerID domain.PhotographerID) error
	InvalidateAllCache(ctx context.Context) error
}
