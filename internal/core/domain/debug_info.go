package domain

import "time"

// DebugInfo: замер длительности одного шага проверки доступности
type DebugInfo struct {
	Event     string            `json:"event"`
	Timing    int64             `json:"timingMs"`
	StartTime time.Time         `json:"-"`
	Options   map[string]string `json:"options,omitempty"`
}

func NewDebugInfo(event string) DebugInfo {
	info := DebugInfo{Event: event}
	info.Start()
	return info
}

func (d *DebugInfo) Start() {
	d.StartTime = time.Now()
}

func (d *DebugInfo) Elapse() {
	d.Timing = time.Since(d.StartTime).Milliseconds()
}

func (d *DebugInfo) AddOption(key string, value string) {
	if d.Options == nil {
		d.Options = make(map[string]string)
	}
	d.Options[key] = value
}
