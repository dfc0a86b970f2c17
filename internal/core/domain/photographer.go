package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidPhotographerID = errors.New("invalid photographer id")

// PhotographerID: канонический идентификатор фотографа.
// На входе может прийти числом или строкой, внутри сервиса всегда int64.
type PhotographerID int64

func ParsePhotographerID(value any) (PhotographerID, error) {
	switch v := value.(type) {
	case PhotographerID:
		return v, nil
	case int:
		return PhotographerID(v), nil
	case int32:
		return PhotographerID(v), nil
	case int64:
		return PhotographerID(v), nil
	case uint:
		return PhotographerID(v), nil
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("%w: %v", ErrInvalidPhotographerID, v)
		}
		return PhotographerID(v), nil
	case json.Number:
		return ParsePhotographerID(v.String())
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPhotographerID, v)
		}
		return PhotographerID(id), nil
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidPhotographerID, value)
	}
}

func (id PhotographerID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func (id PhotographerID) Int() int64 {
	return int64(id)
}

func (id *PhotographerID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		parsed, err := ParsePhotographerID(str)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPhotographerID, string(data))
	}
	parsed, err := ParsePhotographerID(number)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id PhotographerID) MarshalJSON() ([]byte, error) {
	return []byte(id.String()), nil
}

// Как ключ map в JSON сериализуется строкой
func (id PhotographerID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *PhotographerID) UnmarshalText(text []byte) error {
	parsed, err := ParsePhotographerID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
