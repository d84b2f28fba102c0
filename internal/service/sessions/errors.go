package sessions

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("booking session not found")

	// ErrCaseNotFound возвращается, когда редактируемый кейс не найден
	ErrCaseNotFound = errors.New("case not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidState возвращается, когда событие недопустимо в текущем
	// состоянии сессии (например, выбор зала до получения длительности)
	ErrInvalidState = errors.New("event not allowed in current session state")

	// ErrVersionConflict возвращается, когда мутация несёт устаревшую версию
	// сессии и должна быть отброшена
	ErrVersionConflict = errors.New("session version conflict")

	// ErrUnknownSlot возвращается при выборе зала или часа вне настроенной сетки
	ErrUnknownSlot = errors.New("slot outside configured grid")

	// ErrUnknownSurgeon возвращается при выборе хирурга вне ростера специальности
	ErrUnknownSurgeon = errors.New("surgeon not in specialty roster")

	// ErrSlotTaken возвращается, когда выбранный слот занят по свежему списку кейсов
	ErrSlotTaken = errors.New("slot is no longer available")

	// ErrSurgeonBusy возвращается, когда выбранный хирург занят в выбранном слоте
	ErrSurgeonBusy = errors.New("surgeon is no longer available")

	// ErrCaseServiceUnavailable возвращается, когда CaseService недоступен
	ErrCaseServiceUnavailable = errors.New("case service unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
