package get_free_surgeons

import "time"

// Request модель запроса свободных хирургов
//
// Hour и DurationMinutes опциональны: без них возвращается полный ростер
// специальности, с ними - ростер, отфильтрованный по занятости на интервале
type Request struct {
	Specialty       string    // Специальность (ключ ростера)
	Date            time.Time // Дата интервала (требуется при фильтрации)
	Hour            *int      // Час начала кандидата
	DurationMinutes *int      // Длительность кандидата в минутах
	ExcludeCaseID   *int64    // ID кейса, исключаемого из проверок (режим редактирования)
}

// Response модель ответа со списком хирургов
type Response struct {
	Specialty string   // Специальность, по которой шел запрос
	Surgeons  []string // Хирурги в порядке ростера
	Filtered  bool     // Применялся ли фильтр занятости
}
