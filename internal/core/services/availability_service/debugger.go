package availability_service

import (
	"sync"

	"github.com/suchimauz/photographer-availability-resolver/internal/core/domain"
)

// availabilityDebug собирает замеры шагов одной проверки
type availabilityDebug struct {
	mu   sync.Mutex
	data []domain.DebugInfo
}

func newAvailabilityDebug() *availabilityDebug {
	return &availabilityDebug{data: make([]domain.DebugInfo, 0, 4)}
}

func (d *availabilityDebug) AddDebugInfo(info domain.DebugInfo) {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.data = append(d.data, info)
	d.mu.Unlock()
}

func (d *availabilityDebug) Data() []domain.DebugInfo {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.DebugInfo(nil), d.data...)
}
