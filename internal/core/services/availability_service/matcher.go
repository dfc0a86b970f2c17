package availability_service

import (
	"github.com/suchimauz/photographer-availability-resolver/internal/core/domain"
	"github.com/suchimauz/photographer-availability-resolver/internal/utils"
)

// IsTimeInSlot проверяет попадание времени в слот включая обе границы, с точностью до минуты.
// Слоты через полночь (end < start) не поддерживаются и не совпадают никогда.
func IsTimeInSlot(t string, slot domain.AvailabilitySlot) bool {
	queryMinutes, err := utils.ParseClock(t)
	if err != nil {
		return false
	}
	startMinutes, err := utils.ParseClock(slot.StartTime)
	if err != nil {
		return false
	}
	endMinutes, err := utils.ParseClock(slot.EndTime)
	if err != nil {
		return false
	}

	if endMinutes < startMinutes {
		return false
	}

	// Точное совпадение с началом слота проверяем первым
	if queryMinutes == startMinutes {
		return true
	}

	return startMinutes <= queryMinutes && queryMinutes <= endMinutes
}

// findMatchingSlot: время доступно, если попадает хотя бы в один слот
func findMatchingSlot(t string, slots []domain.AvailabilitySlot) (domain.AvailabilitySlot, bool) {
	for _, slot := range slots {
		if IsTimeInSlot(t, slot) {
			return slot, true
		}
	}
	return domain.AvailabilitySlot{}, false
}

func isOvernightSlot(slot domain.AvailabilitySlot) bool {
	startMinutes, err := utils.ParseClock(slot.StartTime)
	if err != nil {
		return false
	}
	endMinutes, err := utils.ParseClock(slot.EndTime)
	if err != nil {
		return false
	}
	return endMinutes < startMinutes
}
