package json_types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

func parseDate(str string) (time.Time, error) {
	parsedDate, err := time.Parse(dateLayout, str)
	if err != nil {
		// Бэкенд иногда отдает дату вместе со временем
		parsedDate, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %v", err)
		}
		parsedDate = time.Date(parsedDate.Year(), parsedDate.Month(), parsedDate.Day(), 0, 0, 0, 0, time.UTC)
	}

	return parsedDate, nil
}

// Date: календарная дата без времени в формате YYYY-MM-DD
type Date struct {
	Date time.Time
}

func (t *Date) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("failed to parse date: %v", err)
	}

	parsedDate, err := parseDate(str)
	if err != nil {
		return err
	}

	*t = Date{Date: parsedDate}
	return nil
}

func (t Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Date.Format(dateLayout))
}

func (t Date) String() string {
	return t.Date.Format(dateLayout)
}

// DateOrEmpty допускает null и пустую строку
type DateOrEmpty struct {
	Date time.Time
}

func (t *DateOrEmpty) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" || string(data) == `""` {
		*t = DateOrEmpty{}
		return nil
	}

	d := Date{}
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}

	*t = DateOrEmpty{Date: d.Date}
	return nil
}

func (t DateOrEmpty) MarshalJSON() ([]byte, error) {
	if t.Date.IsZero() {
		return json.Marshal(nil)
	}

	return json.Marshal(t.Date.Format(dateLayout))
}

func (t DateOrEmpty) IsZero() bool {
	return t.Date.IsZero()
}

func (t DateOrEmpty) String() string {
	if t.Date.IsZero() {
		return ""
	}
	return t.Date.Format(dateLayout)
}
