package get_free_surgeons

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_free_surgeons: invalid input data")

	// ErrInvalidDuration возвращается при неположительной длительности кандидата
	ErrInvalidDuration = errors.New("get_free_surgeons: duration must be positive")

	// ErrCaseServiceUnavailable возвращается, когда CaseService недоступен
	ErrCaseServiceUnavailable = errors.New("get_free_surgeons: case service unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_free_surgeons: internal error")
)
