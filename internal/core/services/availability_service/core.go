package availability_service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/suchimauz/photographer-availability-resolver/internal/config"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/domain"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/ports/out"
	"github.com/suchimauz/photographer-availability-resolver/internal/utils"
)

type AvailabilityService struct {
	backendPort out.BackendPort
	cachePort   out.CachePort
	logger      out.LoggerPort
	cfg         *config.Config

	maxConcurrency int
	nextTimesLimit int
}

func NewAvailabilityService(
	backendPort out.BackendPort,
	cachePort out.CachePort,
	logger out.LoggerPort,
	cfg *config.Config,
) *AvailabilityService {
	return &AvailabilityService{
		backendPort:    backendPort,
		cachePort:      cachePort,
		logger:         logger.WithModule("AvailabilityService"),
		cfg:            cfg,
		maxConcurrency: max(1, cfg.Resolver.MaxConcurrency),
		nextTimesLimit: max(0, cfg.Resolver.NextTimesLimit),
	}
}

func (s *AvailabilityService) cacheEnabled() bool {
	return s.cachePort != nil && s.cfg.Cache.Enabled
}

// GetPhotographerAvailability никогда не возвращает ошибку:
// любой сбой запроса превращается в вердикт check_failed с пустыми списками
func (s *AvailabilityService) GetPhotographerAvailability(ctx context.Context, photographerID domain.PhotographerID, date time.Time, photographerName string) domain.AvailabilityResult {
	return s.getPhotographerAvailability(ctx, photographerID, date, photographerName, nil)
}

func (s *AvailabilityService) getPhotographerAvailability(ctx context.Context, photographerID domain.PhotographerID, date time.Time, photographerName string, debugInfo *availabilityDebug) domain.AvailabilityResult {
	logger := s.logger.WithFields(out.LogFields{
		"photographerId":   photographerID,
		"photographerName": photographerName,
		"date":             utils.FormatDate(date),
	})

	logger.Debug("availability.fetch.started", out.LogFields{})

	slots, err := s.getDaySlots(ctx, logger, photographerID, date, debugInfo)
	if err != nil {
		return domain.FailedAvailabilityResult(err)
	}

	availableSlots := make([]domain.AvailabilitySlot, 0, len(slots))
	for _, slot := range slots {
		if !slot.IsAvailable() {
			logger.Debug("availability.slot.skipped_unavailable", out.LogFields{
				"startTime": slot.StartTime,
				"endTime":   slot.EndTime,
			})
			continue
		}
		if isOvernightSlot(slot) {
			logger.Warn("availability.slot.overnight_unsupported", out.LogFields{
				"startTime": slot.StartTime,
				"endTime":   slot.EndTime,
			})
		}
		availableSlots = append(availableSlots, slot)
	}

	if len(availableSlots) == 0 {
		logger.Info("availability.fetch.no_slots", out.LogFields{
			"fetchedCount": len(slots),
		})
		s.logAvailabilityDiagnostics(ctx, logger, photographerID, date)
	}

	result := domain.AvailabilityResult{
		IsAvailable:        len(availableSlots) > 0,
		Verdict:            domain.VerdictUnavailable,
		NextAvailableTimes: collectStartTimes(availableSlots),
		AvailabilitySlots:  availableSlots,
	}
	if result.IsAvailable {
		result.Verdict = domain.VerdictAvailable
	}

	logger.Debug("availability.fetch.finished", out.LogFields{
		"fetchedCount":       len(slots),
		"availableCount":     len(availableSlots),
		"nextAvailableTimes": result.NextAvailableTimes,
	})

	return result
}

func (s *AvailabilityService) getDaySlots(ctx context.Context, logger out.LoggerPort, photographerID domain.PhotographerID, date time.Time, debugInfo *availabilityDebug) ([]domain.AvailabilitySlot, error) {
	// Проверяем кэш только если он включен
	if s.cacheEnabled() {
		if slots, exists := s.cachePort.GetDaySlots(ctx, photographerID, date); exists {
			logger.Debug("availability.fetch.cache.hit", out.LogFields{
				"slotsCount": len(slots),
			})
			return slots, nil
		}
		logger.Debug("availability.fetch.cache.miss", out.LogFields{})
	}

	fetchDebug := domain.NewDebugInfo("availability.fetch.backend")
	slots, err := s.backendPort.CheckAvailability(ctx, photographerID, date)
	fetchDebug.Elapse()
	debugInfo.AddDebugInfo(fetchDebug)

	if err != nil {
		logger.Error("availability.fetch.failed", out.LogFields{
			"error":    err.Error(),
			"timingMs": fetchDebug.Timing,
		})
		return nil, fmt.Errorf("availability.fetch.failed: %w", err)
	}

	logger.Debug("availability.fetch.success", out.LogFields{
		"slotsCount": len(slots),
		"timingMs":   fetchDebug.Timing,
	})

	if s.cacheEnabled() {
		s.cachePort.StoreDaySlots(ctx, photographerID, date, slots)
	}

	return slots, nil
}

// logAvailabilityDiagnostics только пишет в лог, результат проверки не меняется
func (s *AvailabilityService) logAvailabilityDiagnostics(ctx context.Context, logger out.LoggerPort, photographerID domain.PhotographerID, date time.Time) {
	allSlots, err := s.backendPort.ListAvailability(ctx, photographerID)
	if err != nil {
		logger.Warn("availability.diagnostics.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return
	}

	summary := summarizeSlots(allSlots, date)
	logger.Info("availability.diagnostics.summary", out.LogFields{
		"totalSlots":       summary.Total,
		"availableSlots":   summary.Available,
		"oneOffForDate":    summary.OneOffForDate,
		"recurringForDate": summary.RecurringForDate,
		"hasAnyAvailable":  summary.Available > 0,
	})
}

// collectStartTimes возвращает уникальные времена начала "HH:mm" по возрастанию.
// Сортировка строк "HH:mm" совпадает с хронологической в пределах дня.
func collectStartTimes(slots []domain.AvailabilitySlot) []string {
	seen := make(map[string]struct{}, len(slots))
	times := make([]string, 0, len(slots))

	for _, slot := range slots {
		start := canonicalTime(slot.StartTime)
		if start == "" {
			continue
		}
		if _, ok := seen[start]; ok {
			continue
		}
		seen[start] = struct{}{}
		times = append(times, start)
	}

	sort.Strings(times)
	return times
}

// canonicalTime дополняет час нулем ("9:00:00" -> "09:00"), нераспознанное время только нормализуется
func canonicalTime(t string) string {
	minutes, err := utils.ParseClock(t)
	if err != nil {
		return utils.NormalizeTime(t)
	}
	return utils.FormatClock(minutes)
}
