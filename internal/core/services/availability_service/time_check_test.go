package availability_service

import (
	"context"
	"reflect"
	"testing"

	"github.com/suchimauz/photographer-availability-resolver/internal/core/domain"
)

func propertySlots() []domain.AvailabilitySlot {
	return []domain.AvailabilitySlot{
		slot("09:00", "12:00", ""),
		slot("13:00", "15:00", domain.SlotStatusUnavailable),
	}
}

func TestCheckPhotographerAvailabilityAtTime(t *testing.T) {
	backend := newFakeBackend()
	backend.slots[5] = propertySlots()
	service := newTestService(backend)

	inside := service.CheckPhotographerAvailabilityAtTime(context.Background(), 5, testDate, "10:00 AM", "Ann")
	if !inside.IsAvailable || inside.Verdict != domain.VerdictAvailable {
		t.Fatalf("10:00 AM must be available, got %+v", inside)
	}

	unavailable := service.CheckPhotographerAvailabilityAtTime(context.Background(), 5, testDate, "2:00 PM", "Ann")
	if unavailable.IsAvailable || unavailable.Verdict != domain.VerdictUnavailable {
		t.Fatalf("2:00 PM falls in an unavailable slot, got %+v", unavailable)
	}
	if !reflect.DeepEqual(unavailable.NextAvailableTimes, []string{"9:00 AM"}) {
		t.Fatalf("unexpected next times: %v", unavailable.NextAvailableTimes)
	}
}

func TestCheckPhotographerAvailabilityAtTimeAccepts24Hour(t *testing.T) {
	backend := newFakeBackend()
	backend.slots[5] = propertySlots()

	result := newTestService(backend).CheckPhotographerAvailabilityAtTime(context.Background(), 5, testDate, "11:30:00", "")
	if !result.IsAvailable {
		t.Fatalf("24-hour input must fall back to normalized form, got %+v", result)
	}
}

func TestCheckPhotographerAvailabilityAtTimeNextTimes(t *testing.T) {
	backend := newFakeBackend()
	backend.slots[5] = []domain.AvailabilitySlot{
		slot("08:00", "09:00", ""),
		slot("10:00", "11:00", ""),
		slot("12:00", "13:00", ""),
		slot("14:00", "15:00", ""),
		slot("16:00", "17:00", ""),
	}

	result := newTestService(backend).CheckPhotographerAvailabilityAtTime(context.Background(), 5, testDate, "10:00 AM", "")

	if !result.IsAvailable {
		t.Fatal("10:00 AM must be available")
	}
	want := []string{"8:00 AM", "12:00 PM", "2:00 PM"}
	if !reflect.DeepEqual(result.NextAvailableTimes, want) {
		t.Fatalf("expected %v, got %v", want, result.NextAvailableTimes)
	}
}

func TestCheckPhotographerAvailabilityAtTimeInvalidTime(t *testing.T) {
	backend := newFakeBackend()
	backend.slots[5] = propertySlots()

	result := newTestService(backend).CheckPhotographerAvailabilityAtTime(context.Background(), 5, testDate, "garbage", "")
	if result.IsAvailable || result.Verdict != domain.VerdictCheckFailed {
		t.Fatalf("garbage time must be check_failed, got %+v", result)
	}
	if result.Error == "" {
		t.Fatal("expected error description")
	}
}

func TestCheckPhotographerAvailabilityAtTimeBackendFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.errs[5] = errBackendDown

	result := newTestService(backend).CheckPhotographerAvailabilityAtTime(context.Background(), 5, testDate, "10:00 AM", "")
	if result.IsAvailable || result.Verdict != domain.VerdictCheckFailed {
		t.Fatalf("expected check_failed, got %+v", result)
	}
	if len(result.NextAvailableTimes) != 0 {
		t.Fatalf("expected no next times, got %v", result.NextAvailableTimes)
	}
}

func TestResolveQueryTime(t *testing.T) {
	cases := map[string]string{
		"10:00 AM": "10:00",
		"12:15 am": "00:15",
		"2:00PM":   "14:00",
		"14:00":    "14:00",
		"9:05:30":  "09:05",
	}
	for in, want := range cases {
		got, err := resolveQueryTime(in)
		if err != nil || got != want {
			t.Errorf("resolveQueryTime(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	for _, in := range []string{"", "noon", "25:00", "13:00 PM"} {
		if _, err := resolveQueryTime(in); err == nil {
			t.Errorf("resolveQueryTime(%q) expected error", in)
		}
	}
}
