package get_free_surgeons

import (
	"time"

	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
	getFreeSurgeons "github.com/m04kA/OptiOR-SchedulingService/internal/usecase/get_free_surgeons"
)

// FreeSurgeonsResponse HTTP response model
type FreeSurgeonsResponse struct {
	Specialty string   `json:"specialty"`
	Surgeons  []string `json:"surgeons"`
	Filtered  bool     `json:"filtered"`
}

// ToUseCaseRequest создает запрос use case из query параметров
// Дата парсится только когда задана: без интервального фильтра она не нужна
func ToUseCaseRequest(specialty, dateStr string, hour, durationMinutes *int, excludeCaseID *int64) (*getFreeSurgeons.Request, error) {
	var date time.Time
	if dateStr != "" {
		parsed, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	return &getFreeSurgeons.Request{
		Specialty:       specialty,
		Date:            date,
		Hour:            hour,
		DurationMinutes: durationMinutes,
		ExcludeCaseID:   excludeCaseID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getFreeSurgeons.Response) *FreeSurgeonsResponse {
	return &FreeSurgeonsResponse{
		Specialty: resp.Specialty,
		Surgeons:  resp.Surgeons,
		Filtered:  resp.Filtered,
	}
}
