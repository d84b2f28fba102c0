package submit_session

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_session: invalid input data")

	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("submit_session: session not found")

	// ErrVersionConflict возвращается, когда запрос несет устаревшую версию сессии
	ErrVersionConflict = errors.New("submit_session: session version conflict")

	// ErrSessionNotReady возвращается, когда в сессии не выбраны длительность, слот или хирург
	ErrSessionNotReady = errors.New("submit_session: session is not ready to submit")

	// ErrSlotTaken возвращается, когда выбранный слот занят по свежему снапшоту
	ErrSlotTaken = errors.New("submit_session: slot is no longer available")

	// ErrSurgeonBusy возвращается, когда выбранный хирург занят по свежему снапшоту
	ErrSurgeonBusy = errors.New("submit_session: surgeon is no longer available")

	// ErrCaseNotFound возвращается, когда редактируемый кейс не найден в CaseService
	ErrCaseNotFound = errors.New("submit_session: case not found")

	// ErrCaseServiceUnavailable возвращается, когда CaseService недоступен
	ErrCaseServiceUnavailable = errors.New("submit_session: case service unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_session: internal error")
)
