package utils

import (
	"testing"
	"time"
)

func TestFormatDateUsesLocalCalendar(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	// 2026-10-18 22:00 по UTC-5 это уже 19 октября по UTC
	date := time.Date(2026, 10, 18, 22, 0, 0, 0, loc)
	if got := FormatDate(date); got != "2026-10-18" {
		t.Fatalf("expected local calendar date, got %s", got)
	}
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)

	d, err := ParseDate("2026-10-18", loc)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	if d.Location() != loc || d.Day() != 18 || d.Hour() != 0 {
		t.Fatalf("unexpected date: %s", d)
	}

	d, err = ParseDate("2026-10-18T10:30:00Z", loc)
	if err != nil {
		t.Fatalf("parse rfc3339: %v", err)
	}
	if d.Hour() != 10 || d.Minute() != 30 {
		t.Fatalf("unexpected time: %s", d)
	}

	if _, err := ParseDate("18/10/2026", loc); err == nil {
		t.Fatal("expected error for unsupported layout")
	}
}

func TestStartDays(t *testing.T) {
	d := time.Date(2026, 12, 31, 15, 4, 5, 0, time.UTC)
	if got := StartCurrentDay(d); !got.Equal(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start of day: %s", got)
	}
	if got := StartNextDay(d); !got.Equal(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected next day: %s", got)
	}
}
