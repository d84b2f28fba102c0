package get_slot_grid

import (
	"time"

	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
	getSlotGrid "github.com/m04kA/OptiOR-SchedulingService/internal/usecase/get_slot_grid"
)

// SlotGridResponse HTTP response model
type SlotGridResponse struct {
	Date            string     `json:"date"`
	DurationMinutes int        `json:"durationMinutes"`
	Slots           []GridSlot `json:"slots"`
}

// GridSlot модель слота сетки
type GridSlot struct {
	Room      string `json:"room"`
	Hour      int    `json:"hour"`
	Time      string `json:"time"` // "09:00"
	Available bool   `json:"available"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(dateStr string, durationMinutes int, excludeCaseID *int64) (*getSlotGrid.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getSlotGrid.Request{
		Date:            date,
		DurationMinutes: durationMinutes,
		ExcludeCaseID:   excludeCaseID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlotGrid.Response) *SlotGridResponse {
	slots := make([]GridSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = GridSlot{
			Room:      slot.Room,
			Hour:      slot.Hour,
			Time:      slot.Start.Format(domain.TimeFormat),
			Available: slot.Available,
		}
	}

	return &SlotGridResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
