package availability_service

import (
	"testing"

	"github.com/suchimauz/photographer-availability-resolver/internal/core/domain"
)

func TestIsTimeInSlot(t *testing.T) {
	workday := slot("09:00", "17:00", "")

	cases := []struct {
		time string
		want bool
	}{
		{"09:00", true},
		{"17:00", true},
		{"12:30", true},
		{"12:30:45", true},
		{"08:59", false},
		{"17:01", false},
		{"garbage", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsTimeInSlot(tc.time, workday); got != tc.want {
			t.Errorf("IsTimeInSlot(%q) = %v, want %v", tc.time, got, tc.want)
		}
	}
}

func TestIsTimeInSlotSecondsInSlotBounds(t *testing.T) {
	s := slot("09:00:00", "10:30:00", "")
	if !IsTimeInSlot("10:30", s) {
		t.Fatal("end bound with seconds must be inclusive")
	}
	if !IsTimeInSlot("9:00", s) {
		t.Fatal("single-digit hour must match")
	}
}

func TestIsTimeInSlotZeroLength(t *testing.T) {
	s := slot("12:00", "12:00", "")
	if !IsTimeInSlot("12:00", s) {
		t.Fatal("zero-length slot must match its own instant")
	}
	if IsTimeInSlot("12:01", s) || IsTimeInSlot("11:59", s) {
		t.Fatal("zero-length slot must match only its own instant")
	}
}

func TestIsTimeInSlotOvernightNeverMatches(t *testing.T) {
	s := slot("22:00", "02:00", "")
	for _, tm := range []string{"22:00", "23:00", "01:00", "02:00", "12:00"} {
		if IsTimeInSlot(tm, s) {
			t.Fatalf("overnight slot matched %s", tm)
		}
	}
	if !isOvernightSlot(s) {
		t.Fatal("expected overnight slot to be detected")
	}
}

func TestFindMatchingSlotUsesUnion(t *testing.T) {
	slots := []domain.AvailabilitySlot{
		slot("09:00", "10:00", ""),
		slot("09:30", "12:00", ""),
		slot("14:00", "15:00", ""),
	}

	matched, ok := findMatchingSlot("11:00", slots)
	if !ok || matched.StartTime != "09:30" {
		t.Fatalf("expected overlap slot to match, got %+v, %v", matched, ok)
	}
	if _, ok := findMatchingSlot("13:00", slots); ok {
		t.Fatal("gap between slots must not match")
	}
}
