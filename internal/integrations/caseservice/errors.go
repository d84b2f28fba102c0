package caseservice

import "errors"

var (
	// ErrCaseNotFound возвращается, когда кейс не найден в CaseService
	ErrCaseNotFound = errors.New("caseservice client: case not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("caseservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("caseservice client: invalid response")

	// ErrUnavailable возвращается, когда CaseService недоступен
	// (сетевая ошибка, timeout или 5xx). Ошибки доступности кейс-стора
	// никогда не должны выдаваться за занятость слота
	ErrUnavailable = errors.New("caseservice client: service unavailable")
)
