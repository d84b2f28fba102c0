package availability

import (
	"time"

	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
)

// EffectiveInterval вычисляет занимаемый кейсом интервал [start, end)
//
// Правила вывода конца интервала:
//  1. Если задан wheels_out - берем его как есть
//  2. Иначе, если задана actual_duration > 0 - start + max(duration, 1 мин)
//  3. Иначе - start + fallback (кейс без конца и длительности считается
//     занимающим зал стандартное время, а не нулевое)
//
// Интервалы абсолютные (time.Time), поэтому кейсы через полночь
// сравниваются корректно без дополнительной обработки.
func (e *Engine) EffectiveInterval(c *domain.Case) (start, end time.Time) {
	start = c.WheelsIn

	if c.WheelsOut != nil {
		return start, *c.WheelsOut
	}

	if c.HasActualDuration() {
		d := time.Duration(*c.ActualDuration * float64(time.Minute))
		if d < time.Minute {
			d = time.Minute
		}
		return start, start.Add(d)
	}

	return start, start.Add(e.fallback)
}

// overlaps проверяет РЕАЛЬНОЕ пересечение двух интервалов [aStart, aEnd) и [bStart, bEnd)
// Интервалы пересекаются, только если:
// - начало первого СТРОГО раньше конца второго И
// - конец первого СТРОГО позже начала второго
//
// Используем строгие неравенства (Before, After), чтобы граничные случаи не считались пересечением:
// - Кейс 09:00-10:00, кандидат 10:00-11:00 → НЕТ пересечения (граничат)
// - Кейс 09:00-10:00, кандидат 08:00-09:00 → НЕТ пересечения (граничат)
// - Кейс 09:00-10:00, кандидат 09:30-10:30 → ЕСТЬ пересечение (09:30-10:00)
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
