package calendar

import "errors"

var (
	// ErrCaseNotFound возвращается, когда кейс не найден
	ErrCaseNotFound = errors.New("case not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrCaseServiceUnavailable возвращается, когда CaseService недоступен
	ErrCaseServiceUnavailable = errors.New("case service unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
