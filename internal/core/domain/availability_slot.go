package domain

import (
	"github.com/suchimauz/photographer-availability-resolver/internal/core/json_types"
)

type SlotStatus string

const (
	SlotStatusAvailable   SlotStatus = "available"
	SlotStatusUnavailable SlotStatus = "unavailable"
)

type DayOfWeek string

const (
	DayOfWeekMonday    DayOfWeek = "monday"
	DayOfWeekTuesday   DayOfWeek = "tuesday"
	DayOfWeekWednesday DayOfWeek = "wednesday"
	DayOfWeekThursday  DayOfWeek = "thursday"
	DayOfWeekFriday    DayOfWeek = "friday"
	DayOfWeekSaturday  DayOfWeek = "saturday"
	DayOfWeekSunday    DayOfWeek = "sunday"
)

// AvailabilitySlot: интервал доступности фотографа.
// Разовый слот задается Date, еженедельный задается DayOfWeek.
// Время приходит как "HH:mm" или "HH:mm:ss".
type AvailabilitySlot struct {
	ID             *int64                 `json:"id,omitempty"`
	PhotographerID PhotographerID         `json:"photographer_id"`
	Date           json_types.DateOrEmpty `json:"date"`
	DayOfWeek      DayOfWeek              `json:"day_of_week,omitempty"`
	StartTime      string                 `json:"start_time"`
	EndTime        string                 `json:"end_time"`
	Status         SlotStatus             `json:"status,omitempty"`
}

// IsAvailable: отсутствие статуса считается доступностью
func (s AvailabilitySlot) IsAvailable() bool {
	return s.Status != SlotStatusUnavailable
}

func (s AvailabilitySlot) IsRecurring() bool {
	return s.Date.IsZero() && s.DayOfWeek != ""
}
