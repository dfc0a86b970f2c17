package availability_service

import (
	"context"

	"github.com/suchimauz/photographer-availability-resolver/internal/core/domain"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/ports/out"
)

// Инвалидация кэша по событиям из RabbitMQ

func (s *AvailabilityService) InvalidatePhotographerCache(ctx context.Context, photographerID domain.PhotographerID) error {
	if !s.cacheEnabled() {
		s.logger.Debug("cache.invalidate.disabled", out.LogFields{
			"photographerId": photographerID,
		})
		return nil
	}

	s.cachePort.InvalidatePhotographer(ctx, photographerID)
	s.logger.Info("cache.invalidate.photographer", out.LogFields{
		"photographerId": photographerID,
	})

	return nil
}

func (s *AvailabilityService) InvalidateAllCache(ctx context.Context) error {
	if !s.cacheEnabled() {
		s.logger.Debug("cache.invalidate_all.disabled", out.LogFields{})
		return nil
	}

	s.cachePort.InvalidateAll(ctx)
	s.logger.Info("cache.invalidate.all", out.LogFields{})

	return nil
}
