package out

import (
	"context"
	"encoding/json"
	"time"

	"github.com/suchimauz/photographer-availability-resolver/internal/core/domain"
)

type BackendPort interface {
	// Слоты фотографа на конкретную дату
	CheckAvailability(ctx context.Context, photographerID domain.PhotographerID, date time.Time) ([]domain.AvailabilitySlot, error)

	// Все слоты фотографа, используется только для диагностики
	ListAvailability(ctx context.Context, photographerID domain.PhotographerID) ([]domain.AvailabilitySlot, error)
}

// Общий конверт ответов бэкенда: {"data": [...]}
type BackendResponse struct {
	Data json.RawMessage `json:"data"`
}
