package domain

type Verdict string

const (
	VerdictAvailable   Verdict = "available"
	VerdictUnavailable Verdict = "unavailable"
	// Проверку выполнить не удалось, фотограф считается недоступным
	VerdictCheckFailed Verdict = "check_failed"
)

type AvailabilityResult struct {
	IsAvailable        bool               `json:"isAvailable"`
	Verdict            Verdict            `json:"verdict"`
	NextAvailableTimes []string           `json:"nextAvailableTimes"`
	AvailabilitySlots  []AvailabilitySlot `json:"availabilitySlots"`
	Error              string             `json:"error,omitempty"`
}

type TimeCheckResult struct {
	IsAvailable        bool     `json:"isAvailable"`
	Verdict            Verdict  `json:"verdict"`
	NextAvailableTimes []string `json:"nextAvailableTimes"`
	Error              string   `json:"error,omitempty"`
}

func FailedAvailabilityResult(err error) AvailabilityResult {
	result := AvailabilityResult{
		Verdict:            VerdictCheckFailed,
		NextAvailableTimes: []string{},
		AvailabilitySlots:  []AvailabilitySlot{},
	}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

func FailedTimeCheckResult(err error) TimeCheckResult {
	result := TimeCheckResult{
		Verdict:            VerdictCheckFailed,
		NextAvailableTimes: []string{},
	}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

// BatchResult: результаты пакетной проверки по каноническому идентификатору
type BatchResult map[PhotographerID]TimeCheckResult

// Get принимает идентификатор в любом виде: "5", 5, int64(5), PhotographerID(5)
func (r BatchResult) Get(id any) (TimeCheckResult, bool) {
	parsed, err := ParsePhotographerID(id)
	if err != nil {
		return TimeCheckResult{}, false
	}
	result, ok := r[parsed]
	return result, ok
}
