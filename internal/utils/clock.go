package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidTimeFormat = errors.New("invalid time format")

var time12Pattern = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})\s*(AM|PM)$`)

// NormalizeTime отрезает секунды: "14:30:00" -> "14:30". Диапазоны не проверяются.
func NormalizeTime(t string) string {
	if t == "" {
		return ""
	}

	parts := strings.Split(t, ":")
	if len(parts) < 2 {
		return t
	}

	return parts[0] + ":" + parts[1]
}

// To12Hour переводит "13:05" в "1:05 PM". Нераспознанная строка возвращается как есть.
func To12Hour(t24 string) string {
	parts := strings.Split(t24, ":")
	if len(parts) < 2 {
		return t24
	}

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return t24
	}

	minutes := strings.TrimSpace(parts[1])
	if len(minutes) < 2 {
		minutes = strings.Repeat("0", 2-len(minutes)) + minutes
	}

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}

	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}

	return fmt.Sprintf("%d:%s %s", hour12, minutes, period)
}

// To24Hour переводит "1:05 PM" в "13:05".
// Строка не по шаблону возвращается без изменений, для явной ошибки есть ParseTime12.
func To24Hour(t12 string) string {
	t24, err := ParseTime12(t12)
	if err != nil {
		return t12
	}
	return t24
}

func ParseTime12(t12 string) (string, error) {
	match := time12Pattern.FindStringSubmatch(strings.TrimSpace(t12))
	if match == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, t12)
	}

	hour, err := strconv.Atoi(match[1])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, t12)
	}

	period := strings.ToUpper(match[3])
	if period == "PM" && hour != 12 {
		hour += 12
	}
	if period == "AM" && hour == 12 {
		hour = 0
	}

	return fmt.Sprintf("%02d:%s", hour, match[2]), nil
}

// ParseClock возвращает количество минут от полуночи для "HH:mm" или "HH:mm:ss"
func ParseClock(t string) (int, error) {
	parts := strings.Split(NormalizeTime(t), ":")
	if len(parts) != 2 || parts[0] == "" || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, t)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, t)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, t)
	}

	return hour*60 + minute, nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
