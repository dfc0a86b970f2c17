package availability_service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/suchimauz/photographer-availability-resolver/internal/core/domain"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/ports/out"
	"github.com/suchimauz/photographer-availability-resolver/internal/utils"
)

func (s *AvailabilityService) CheckPhotographerAvailabilityAtTime(ctx context.Context, photographerID domain.PhotographerID, date time.Time, selectedTime string, photographerName string) domain.TimeCheckResult {
	debugInfo := newAvailabilityDebug()
	logger := s.logger.WithFields(out.LogFields{
		"photographerId":   photographerID,
		"photographerName": photographerName,
		"date":             utils.FormatDate(date),
		"selectedTime":     selectedTime,
	})

	availability := s.getPhotographerAvailability(ctx, photographerID, date, photographerName, debugInfo)
	if availability.Verdict == domain.VerdictCheckFailed {
		logger.Warn("availability.check.failed", out.LogFields{
			"error": availability.Error,
			"debug": debugInfo.Data(),
		})
		return domain.FailedTimeCheckResult(errors.New(availability.Error))
	}

	queryTime, err := resolveQueryTime(selectedTime)
	if err != nil {
		logger.Warn("availability.check.invalid_time", out.LogFields{
			"error": err.Error(),
		})
		return domain.FailedTimeCheckResult(err)
	}

	matchDebug := domain.NewDebugInfo("availability.check.match")
	slot, matched := findMatchingSlot(queryTime, availability.AvailabilitySlots)
	matchDebug.Elapse()
	matchDebug.AddOption("slotsCount", strconv.Itoa(len(availability.AvailabilitySlots)))
	debugInfo.AddDebugInfo(matchDebug)

	if matched {
		logger.Info("availability.check.match_found", out.LogFields{
			"queryTime": queryTime,
			"slotStart": utils.NormalizeTime(slot.StartTime),
			"slotEnd":   utils.NormalizeTime(slot.EndTime),
		})
	} else {
		logger.Info("availability.check.no_match", out.LogFields{
			"queryTime":      queryTime,
			"availableCount": len(availability.AvailabilitySlots),
		})
	}

	result := domain.TimeCheckResult{
		IsAvailable:        matched,
		Verdict:            domain.VerdictUnavailable,
		NextAvailableTimes: s.nextAvailableTimes(availability.NextAvailableTimes, queryTime),
	}
	if matched {
		result.Verdict = domain.VerdictAvailable
	}

	logger.Debug("availability.check.finished", out.LogFields{
		"isAvailable": result.IsAvailable,
		"debug":       debugInfo.Data(),
	})

	return result
}

// resolveQueryTime приводит время к "HH:mm".
// Сначала пробуем 12-часовой формат, затем считаем, что время уже 24-часовое.
func resolveQueryTime(selectedTime string) (string, error) {
	t24, err := utils.ParseTime12(selectedTime)
	if err != nil {
		t24 = utils.NormalizeTime(strings.TrimSpace(selectedTime))
	}

	minutes, err := utils.ParseClock(t24)
	if err != nil {
		return "", err
	}

	return utils.FormatClock(minutes), nil
}

// nextAvailableTimes исключает запрошенное время и возвращает не больше nextTimesLimit вариантов в 12-часовом формате
func (s *AvailabilityService) nextAvailableTimes(startTimes []string, queryTime string) []string {
	times := make([]string, 0, s.nextTimesLimit)
	for _, start := range startTimes {
		if len(times) >= s.nextTimesLimit {
			break
		}
		if start == queryTime {
			continue
		}
		times = append(times, utils.To12Hour(start))
	}
	return times
}
