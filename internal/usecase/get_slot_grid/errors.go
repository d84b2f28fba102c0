package get_slot_grid

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_slot_grid: invalid input data")

	// ErrInvalidDuration возвращается при неположительной длительности кандидата
	ErrInvalidDuration = errors.New("get_slot_grid: duration must be positive")

	// ErrCaseServiceUnavailable возвращается, когда CaseService недоступен
	ErrCaseServiceUnavailable = errors.New("get_slot_grid: case service unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_slot_grid: internal error")
)
