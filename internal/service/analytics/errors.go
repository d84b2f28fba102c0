package analytics

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrCaseServiceUnavailable возвращается, когда CaseService недоступен
	ErrCaseServiceUnavailable = errors.New("case service unavailable")

	// ErrPredictServiceUnavailable возвращается, когда PredictService недоступен
	ErrPredictServiceUnavailable = errors.New("predict service unavailable")

	// ErrTrainingFailed возвращается, когда переобучение модели не удалось
	ErrTrainingFailed = errors.New("model training failed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
