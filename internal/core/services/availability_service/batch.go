package availability_service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/domain"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/ports/out"
	"github.com/suchimauz/photographer-availability-resolver/internal/utils"
)

// GetPhotographersAvailability проверяет фотографов параллельно, не больше maxConcurrency запросов одновременно.
// Ошибка или паника по одному фотографу дает ему check_failed и не влияет на остальных.
func (s *AvailabilityService) GetPhotographersAvailability(ctx context.Context, photographerIDs []domain.PhotographerID, date time.Time, selectedTime string, photographerNames map[domain.PhotographerID]string) domain.BatchResult {
	logger := s.logger.WithFields(out.LogFields{
		"batchId":      uuid.NewString(),
		"date":         utils.FormatDate(date),
		"selectedTime": selectedTime,
	})

	uniqueIDs := uniquePhotographerIDs(photographerIDs)
	logger.Info("availability.batch.started", out.LogFields{
		"requested":      len(photographerIDs),
		"unique":         len(uniqueIDs),
		"maxConcurrency": s.maxConcurrency,
	})

	result := make(domain.BatchResult, len(uniqueIDs))

	// Используем мьютекс для безопасной записи в result
	// И группу ожидания для ожидания завершения всех горутин
	var mu sync.Mutex
	var wg sync.WaitGroup

	// Пул воркеров ограничивает количество одновременных запросов к бэкенду
	workerPool := make(chan struct{}, s.maxConcurrency)

	notStarted := func(from int, err error) {
		// Оставшихся фотографов не запускаем
		mu.Lock()
		for _, rest := range uniqueIDs[from:] {
			result[rest] = domain.FailedTimeCheckResult(err)
		}
		mu.Unlock()
		logger.Warn("availability.batch.cancelled", out.LogFields{
			"notStarted": len(uniqueIDs) - from,
			"error":      err.Error(),
		})
	}

schedule:
	for i, id := range uniqueIDs {
		if err := ctx.Err(); err != nil {
			notStarted(i, err)
			break
		}

		// Занимаем слот в пуле
		select {
		case workerPool <- struct{}{}:
		case <-ctx.Done():
			notStarted(i, ctx.Err())
			break schedule
		}

		wg.Add(1)
		go func(photographerID domain.PhotographerID) {
			defer func() {
				// Освобождаем слот в пуле
				<-workerPool
				wg.Done()
			}()

			check := s.safeCheck(ctx, logger, photographerID, date, selectedTime, photographerNames[photographerID])

			mu.Lock()
			result[photographerID] = check
			mu.Unlock()
		}(id)
	}

	wg.Wait()

	available := 0
	for _, check := range result {
		if check.IsAvailable {
			available++
		}
	}
	logger.Info("availability.batch.finished", out.LogFields{
		"total":     len(result),
		"available": available,
	})

	return result
}

func (s *AvailabilityService) safeCheck(ctx context.Context, logger out.LoggerPort, photographerID domain.PhotographerID, date time.Time, selectedTime string, photographerName string) (check domain.TimeCheckResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("availability.batch.check_panicked", out.LogFields{
				"photographerId": photographerID,
				"panic":          fmt.Sprint(r),
			})
			check = domain.FailedTimeCheckResult(fmt.Errorf("availability check panicked: %v", r))
		}
	}()

	return s.CheckPhotographerAvailabilityAtTime(ctx, photographerID, date, selectedTime, photographerName)
}

func uniquePhotographerIDs(ids []domain.PhotographerID) []domain.PhotographerID {
	seen := make(map[domain.PhotographerID]struct{}, len(ids))
	unique := make([]domain.PhotographerID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
