package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// FormatDate форматирует дату по календарным полям ее собственной таймзоны, без перевода в UTC
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func StartCurrentDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartNextDay возвращает начало следующего дня в той же таймзоне
func StartNextDay(t time.Time) time.Time {
	newDate := t.AddDate(0, 0, 1)
	return time.Date(newDate.Year(), newDate.Month(), newDate.Day(), 0, 0, 0, 0, newDate.Location())
}

// ParseDate парсит дату из строки в формате RFC3339, если не удается, то пробует парсить дату без времени.
// Дата без таймзоны привязывается к location.
func ParseDate(str string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}

	parsedDate, err := time.Parse(time.RFC3339, str)
	if err == nil {
		return parsedDate, nil
	}

	parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, location)
	if err == nil {
		return parsedDate, nil
	}

	parsedDate, err = time.ParseInLocation(DateLayout, str, location)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date: %v", err)
	}

	return parsedDate, nil
}
