package availability

import (
	"time"

	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
)

// EnumerateSlots строит сетку слотов на день: декартово произведение залов и часов
//
// Результат детерминирован: внешний порядок - залы как переданы, внутренний -
// часы по возрастанию. Длина результата ВСЕГДА len(rooms) * len(hours),
// занятые слоты помечаются Available=false, а не выбрасываются.
//
// Кандидат с duration <= 0 не задает осмысленного интервала - вся сетка
// помечается занятой. Вызывающий слой обязан отклонить такой запрос до
// построения сетки, здесь это только защитный барьер.
func (e *Engine) EnumerateSlots(
	date time.Time,
	rooms []string,
	hours []int,
	durationMinutes int,
	cases []*domain.Case,
	excludeID *int64,
) []domain.CandidateSlot {
	slots := make([]domain.CandidateSlot, 0, len(rooms)*len(hours))

	for _, room := range rooms {
		for _, hour := range hours {
			start := SlotStartAt(date, hour)

			available := false
			if durationMinutes > 0 {
				available = e.IsRoomFree(room, start, durationMinutes, cases, excludeID)
			}

			slots = append(slots, domain.CandidateSlot{
				Room:      room,
				Hour:      hour,
				Start:     start,
				Available: available,
			})
		}
	}

	return slots
}

// SlotEnd возвращает конец слота для заданной длительности
func SlotEnd(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}
