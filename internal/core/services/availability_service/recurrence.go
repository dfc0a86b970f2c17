package availability_service

import (
	"strings"
	"time"

	"github.com/suchimauz/photographer-availability-resolver/internal/core/domain"
	"github.com/suchimauz/photographer-availability-resolver/internal/utils"
	"github.com/teambition/rrule-go"
)

var dayOfWeekMap = map[domain.DayOfWeek]rrule.Weekday{
	domain.DayOfWeekMonday:    rrule.MO,
	domain.DayOfWeekTuesday:   rrule.TU,
	domain.DayOfWeekWednesday: rrule.WE,
	domain.DayOfWeekThursday:  rrule.TH,
	domain.DayOfWeekFriday:    rrule.FR,
	domain.DayOfWeekSaturday:  rrule.SA,
	domain.DayOfWeekSunday:    rrule.SU,
}

type slotsSummary struct {
	Total            int
	Available        int
	OneOffForDate    int
	RecurringForDate int
}

func summarizeSlots(slots []domain.AvailabilitySlot, date time.Time) slotsSummary {
	summary := slotsSummary{Total: len(slots)}

	for _, slot := range slots {
		if !slot.IsAvailable() {
			continue
		}
		summary.Available++

		if !slotOccursOn(slot, date) {
			continue
		}
		if slot.IsRecurring() {
			summary.RecurringForDate++
		} else {
			summary.OneOffForDate++
		}
	}

	return summary
}

// slotOccursOn: разовый слот сравниваем по дате,
// еженедельный раскрываем правилом WEEKLY начиная за неделю до даты
func slotOccursOn(slot domain.AvailabilitySlot, date time.Time) bool {
	if !slot.Date.IsZero() {
		return slot.Date.String() == utils.FormatDate(date)
	}

	weekday, ok := dayOfWeekMap[domain.DayOfWeek(strings.ToLower(string(slot.DayOfWeek)))]
	if !ok {
		return false
	}

	dayStart := utils.StartCurrentDay(date)
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{weekday},
		Dtstart:   dayStart.AddDate(0, 0, -7),
	})
	if err != nil {
		return false
	}

	return len(rule.Between(dayStart, utils.StartNextDay(dayStart), true)) > 0
}
