package availability

import (
	"time"

	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
)

// IsRoomFree проверяет, свободен ли зал для кандидата [start, start+duration)
//
// Кейс с id == excludeID пропускается: при редактировании кейс не должен
// конфликтовать сам с собой. excludeID == nil - без исключений.
//
// Кандидат с duration <= 0 задает пустой интервал, который не пересекается
// ни с чем - возвращаем true. Отклонять такие запросы должен вызывающий слой.
func (e *Engine) IsRoomFree(room string, start time.Time, durationMinutes int, cases []*domain.Case, excludeID *int64) bool {
	if durationMinutes <= 0 {
		return true
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	for _, c := range cases {
		if excludeID != nil && c.ID == *excludeID {
			continue
		}
		if c.ORSuite != room {
			continue
		}

		caseStart, caseEnd := e.EffectiveInterval(c)
		if overlaps(start, end, caseStart, caseEnd) {
			return false
		}
	}

	return true
}

// IsSurgeonFree проверяет, свободен ли хирург для кандидата [start, start+duration)
//
// Залы и хирурги - независимые оси: учитываются кейсы хирурга во ВСЕХ залах.
// Кейсы без назначенного хирурга никого не блокируют.
func (e *Engine) IsSurgeonFree(surgeon string, start time.Time, durationMinutes int, cases []*domain.Case, excludeID *int64) bool {
	if durationMinutes <= 0 {
		return true
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	for _, c := range cases {
		if excludeID != nil && c.ID == *excludeID {
			continue
		}
		if !c.HasSurgeon() || *c.DoctorName != surgeon {
			continue
		}

		caseStart, caseEnd := e.EffectiveInterval(c)
		if overlaps(start, end, caseStart, caseEnd) {
			return false
		}
	}

	return true
}

// FreeSurgeons фильтрует список хирургов, оставляя свободных в интервале кандидата
// Порядок исходного списка сохраняется
func (e *Engine) FreeSurgeons(roster []string, start time.Time, durationMinutes int, cases []*domain.Case, excludeID *int64) []string {
	free := make([]string, 0, len(roster))
	for _, surgeon := range roster {
		if e.IsSurgeonFree(surgeon, start, durationMinutes, cases, excludeID) {
			free = append(free, surgeon)
		}
	}
	return free
}
