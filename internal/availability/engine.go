// Package availability реализует проверку занятости операционных залов и
// хирургов по списку кейсов, а также построение сетки слотов на день.
//
// Все функции чистые: работают только с переданным снапшотом кейсов и не
// обращаются ни к часам, ни к внешним сервисам. Один запрос - один снапшот.
package availability

import (
	"time"

	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
)

// Engine выполняет интервальные проверки над снапшотом кейсов
type Engine struct {
	// Длительность по умолчанию для кейсов без wheels_out и без actual_duration
	fallback time.Duration
}

// NewEngine создает движок проверки доступности
// fallbackMinutes - длительность кейса без конца и без длительности (минуты)
func NewEngine(fallbackMinutes int) *Engine {
	if fallbackMinutes <= 0 {
		fallbackMinutes = domain.DefaultFallbackCaseMinutes
	}
	return &Engine{
		fallback: time.Duration(fallbackMinutes) * time.Minute,
	}
}

// SlotStartAt возвращает начало слота: указанный час в указанный день
func SlotStartAt(date time.Time, hour int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, date.Location())
}
