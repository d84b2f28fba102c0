package get_slot_grid

import "time"

// Request модель запроса сетки слотов на день
type Request struct {
	Date            time.Time // Дата, на которую строится сетка (без времени)
	DurationMinutes int       // Длительность кандидата в минутах
	ExcludeCaseID   *int64    // ID кейса, исключаемого из проверок (режим редактирования)
}

// Response модель ответа с сеткой слотов
type Response struct {
	Date            time.Time // Дата, на которую строилась сетка
	DurationMinutes int       // Длительность кандидата
	Slots           []Slot    // Полная сетка: залы x часы
}

// Slot один слот сетки
type Slot struct {
	Room      string    // Операционный зал
	Hour      int       // Час начала слота
	Start     time.Time // Абсолютное время начала
	Available bool      // Свободен ли слот для кандидата
}
